// Package config handles meshkit configuration loading and management.
package config

// Config holds all meshkit settings.
type Config struct {
	Parse   ParseConfig   `yaml:"parse" toml:"parse"`
	View    ViewConfig    `yaml:"view" toml:"view"`
	Export  ExportConfig  `yaml:"export" toml:"export"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ParseConfig holds model loading options.
type ParseConfig struct {
	SharedPools      bool `yaml:"shared_pools" toml:"shared_pools"`           // OBJ indices count from the start of the file
	CalculateNormals bool `yaml:"calculate_normals" toml:"calculate_normals"` // Fill flat normals when a file has none
	Workers          int  `yaml:"workers" toml:"workers"`                     // Concurrent loads, 0 means GOMAXPROCS
}

// ViewConfig holds terminal viewer settings.
type ViewConfig struct {
	FPS        int     `yaml:"fps" toml:"fps"`
	SpinSpeed  float64 `yaml:"spin_speed" toml:"spin_speed"` // radians per second around +Y
	Background string  `yaml:"background" toml:"background"` // "R,G,B"
	Wireframe  bool    `yaml:"wireframe" toml:"wireframe"`
	ShowBounds bool    `yaml:"show_bounds" toml:"show_bounds"`
	Watch      bool    `yaml:"watch" toml:"watch"` // Reload the model when the file changes
}

// ExportConfig holds converter output settings.
type ExportConfig struct {
	Dir       string `yaml:"dir" toml:"dir"`
	PNGWidth  int    `yaml:"png_width" toml:"png_width"`
	PNGHeight int    `yaml:"png_height" toml:"png_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			SharedPools:      false,
			CalculateNormals: true,
			Workers:          0,
		},
		View: ViewConfig{
			FPS:        30,
			SpinSpeed:  0.8,
			Background: "30,30,40",
		},
		Export: ExportConfig{
			Dir:       "",
			PNGWidth:  320,
			PNGHeight: 240,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
