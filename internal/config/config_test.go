package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Output.Format != "json" {
		t.Errorf("expected json format by default, got %s", cfg.Output.Format)
	}
	if cfg.Output.Pretty {
		t.Error("expected pretty to be false by default")
	}
	if cfg.Output.Indent != "  " {
		t.Errorf("expected two-space indent, got %q", cfg.Output.Indent)
	}
	if cfg.Mesh.GeometryID != "" {
		t.Errorf("expected empty geometry id, got %s", cfg.Mesh.GeometryID)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestJSONIndent(t *testing.T) {
	tests := []struct {
		name   string
		output OutputConfig
		want   string
	}{
		{"compact", OutputConfig{Pretty: false, Indent: "\t"}, ""},
		{"pretty", OutputConfig{Pretty: true, Indent: "\t"}, "\t"},
		{"pretty default indent", OutputConfig{Pretty: true}, "  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Output: tt.output}
			if got := cfg.JSONIndent(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
output:
  format: "cbor"
  pretty: true
  indent: "    "

mesh:
  geometry_id: "Cube-mesh"
  name: "Crate"

logging:
  level: "debug"
  log_file: "dae2json.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Output.Format != "cbor" {
		t.Errorf("expected cbor format, got %s", cfg.Output.Format)
	}
	if !cfg.Output.Pretty {
		t.Error("expected pretty to be true")
	}
	if cfg.Output.Indent != "    " {
		t.Errorf("expected four-space indent, got %q", cfg.Output.Indent)
	}
	if cfg.Mesh.GeometryID != "Cube-mesh" {
		t.Errorf("expected geometry Cube-mesh, got %s", cfg.Mesh.GeometryID)
	}
	if cfg.Mesh.Name != "Crate" {
		t.Errorf("expected name Crate, got %s", cfg.Mesh.Name)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "dae2json.log" {
		t.Errorf("expected log file 'dae2json.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("mesh:\n  name: Crate\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level, got %s", cfg.Logging.Level)
	}
	if cfg.Mesh.Name != "Crate" {
		t.Errorf("expected name Crate, got %s", cfg.Mesh.Name)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
output:
  pretty: not a bool
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "dae2json.yaml"), []byte("output:\n  pretty: true\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find dae2json.yaml in current directory")
	}
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "pretty flag",
			args: []string{"-pretty"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Output.Pretty {
					t.Error("expected pretty output")
				}
			},
		},
		{
			name: "format flag",
			args: []string{"-format", "cbor"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Format != "cbor" {
					t.Errorf("expected cbor format, got %s", cfg.Output.Format)
				}
			},
		},
		{
			name: "geometry and name flags",
			args: []string{"-geometry", "Cube-mesh", "-name", "Crate"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Mesh.GeometryID != "Cube-mesh" {
					t.Errorf("expected geometry Cube-mesh, got %s", cfg.Mesh.GeometryID)
				}
				if cfg.Mesh.Name != "Crate" {
					t.Errorf("expected name Crate, got %s", cfg.Mesh.Name)
				}
			},
		},
		{
			name: "log file flag",
			args: []string{"-log-file", "out.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "out.log" {
					t.Errorf("expected log file out.log, got %s", cfg.Logging.LogFile)
				}
			},
		},
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "info" || cfg.Output.Pretty || cfg.Output.Format != "json" {
					t.Error("expected defaults to be untouched")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags("dae2json", io.Discard)
			if err := flags.Parse(tt.args); err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestFlagsPositional(t *testing.T) {
	flags := NewFlags("dae2json", io.Discard)
	if err := flags.Parse([]string{"-pretty", "in.dae", "out.json"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	args := flags.Args()
	if len(args) != 2 || args[0] != "in.dae" || args[1] != "out.json" {
		t.Errorf("unexpected positional args %v", args)
	}
}

func TestFlagsUnknown(t *testing.T) {
	flags := NewFlags("dae2json", io.Discard)
	if err := flags.Parse([]string{"-binary"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
mesh:
  geometry_id: "FromFile"
  name: "FileName"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	flags := NewFlags("dae2json", io.Discard)
	if err := flags.Parse([]string{"-config", configPath, "-name", "FlagName"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Name from flag, not file
	if cfg.Mesh.Name != "FlagName" {
		t.Errorf("expected name FlagName from flag, got %s", cfg.Mesh.Name)
	}
	// Geometry from file since no flag override
	if cfg.Mesh.GeometryID != "FromFile" {
		t.Errorf("expected geometry FromFile from file, got %s", cfg.Mesh.GeometryID)
	}
}

func TestLoadBadExplicitPath(t *testing.T) {
	flags := NewFlags("dae2json", io.Discard)
	if err := flags.Parse([]string{"-config", "/nonexistent/dae2json.yaml"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if _, err := Load(flags); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Output.Pretty = true
	cfg.Mesh.Name = "Crate"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if !loaded.Output.Pretty || loaded.Mesh.Name != "Crate" {
		t.Errorf("saved config did not round trip: %+v", loaded)
	}
}
