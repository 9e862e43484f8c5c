// Package config handles converter configuration loading and management.
package config

// Config holds all converter settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "json" or "cbor"
	Pretty bool   `yaml:"pretty"`
	Indent string `yaml:"indent"` // JSON only, used when Pretty is set
}

// MeshConfig selects what is extracted from the input document.
type MeshConfig struct {
	GeometryID string `yaml:"geometry_id"` // empty selects the first geometry
	Name       string `yaml:"name"`        // overrides the output mesh name
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "json",
			Pretty: false,
			Indent: "  ",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// JSONIndent returns the indent string for the JSON encoder, empty for
// single-line output.
func (c *Config) JSONIndent() string {
	if !c.Output.Pretty {
		return ""
	}
	if c.Output.Indent == "" {
		return "  "
	}
	return c.Output.Indent
}
