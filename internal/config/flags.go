package config

import (
	"flag"
	"io"
)

// Flags holds the command-line options of the converter.
type Flags struct {
	fs *flag.FlagSet

	config      *string
	writeConfig *string
	debug       *bool
	format      *string
	pretty      *bool
	geometry    *string
	name        *string
	logFile     *string
}

// NewFlags registers the converter flags on a new flag set. Usage and parse
// errors go to output.
func NewFlags(name string, output io.Writer) *Flags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {} // callers print their own usage

	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "Path to config file"),
		writeConfig: fs.String("write-config", "", "Write the effective config to this path"),
		debug:       fs.Bool("debug", false, "Enable debug logging (one line per face vertex)"),
		format:      fs.String("format", "", "Output format: json or cbor (default: json)"),
		pretty:      fs.Bool("pretty", false, "Indent the JSON output"),
		geometry:    fs.String("geometry", "", "Geometry id to convert (default: first)"),
		name:        fs.String("name", "", "Mesh name written to the output (default: geometry id)"),
		logFile:     fs.String("log-file", "", "Also write logs to this file"),
	}
}

// Parse parses command-line arguments, not including the program name.
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// Args returns the positional arguments left after flag parsing.
func (f *Flags) Args() []string {
	return f.fs.Args()
}

// Usage prints the flag defaults.
func (f *Flags) Usage() {
	f.fs.PrintDefaults()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// WriteConfigPath returns the --write-config destination, if any.
func (f *Flags) WriteConfigPath() string {
	return *f.writeConfig
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.format != "" {
		cfg.Output.Format = *f.format
	}
	if *f.pretty {
		cfg.Output.Pretty = true
	}
	if *f.geometry != "" {
		cfg.Mesh.GeometryID = *f.geometry
	}
	if *f.name != "" {
		cfg.Mesh.Name = *f.name
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
