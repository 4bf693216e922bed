package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file")
	flagSharedPools = flag.Bool("shared-pools", false, "Resolve OBJ indices against file-wide attribute pools")
	flagNoNormals   = flag.Bool("no-normals", false, "Do not generate normals for meshes without them")
	flagWorkers     = flag.Int("workers", 0, "Concurrent model loads")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagSharedPools {
		cfg.Parse.SharedPools = true
	}
	if *flagNoNormals {
		cfg.Parse.CalculateNormals = false
	}
	if *flagWorkers > 0 {
		cfg.Parse.Workers = *flagWorkers
	}
}
