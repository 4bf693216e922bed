package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parse.SharedPools {
		t.Error("expected shared pools to be off by default")
	}
	if !cfg.Parse.CalculateNormals {
		t.Error("expected normal generation to be on by default")
	}
	if cfg.View.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.View.FPS)
	}
	if cfg.View.Background != "30,30,40" {
		t.Errorf("expected background 30,30,40, got %s", cfg.View.Background)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshkit.yaml")
	content := `
parse:
  shared_pools: true
  workers: 4
view:
  fps: 60
  wireframe: true
logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !cfg.Parse.SharedPools || cfg.Parse.Workers != 4 {
		t.Errorf("unexpected parse config %+v", cfg.Parse)
	}
	if cfg.View.FPS != 60 || !cfg.View.Wireframe {
		t.Errorf("unexpected view config %+v", cfg.View)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}
	// Keys missing from the file keep their defaults.
	if !cfg.Parse.CalculateNormals {
		t.Error("expected calculate_normals to keep its default")
	}
	if cfg.View.SpinSpeed != 0.8 {
		t.Errorf("expected spin speed 0.8, got %v", cfg.View.SpinSpeed)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshkit.toml")
	content := `
[parse]
calculate_normals = false

[export]
dir = "out"
png_width = 64
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parse.CalculateNormals {
		t.Error("expected calculate_normals false")
	}
	if cfg.Export.Dir != "out" || cfg.Export.PNGWidth != 64 {
		t.Errorf("unexpected export config %+v", cfg.Export)
	}
	if cfg.Export.PNGHeight != 240 {
		t.Errorf("expected default png height, got %d", cfg.Export.PNGHeight)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("parse: [unclosed"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.yaml", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)

			cfg := Default()
			cfg.Parse.SharedPools = true
			cfg.View.Background = "0,0,0"
			cfg.Logging.LogFile = "/tmp/meshkit.log"

			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("failed to save config: %v", err)
			}

			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("failed to load saved config: %v", err)
			}
			if *loaded != *cfg {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
			}
		})
	}
}

func TestConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME only applies on unix-like systems")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "meshkit") {
		t.Errorf("expected XDG config dir, got %s", got)
	}
}
