// dae2json converts a COLLADA mesh into a compact indexed JSON mesh.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/dae2json/internal/config"
	"github.com/Faultbox/dae2json/internal/convert"
	"github.com/Faultbox/dae2json/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer, flags *config.Flags) {
	fmt.Fprintln(w, `dae2json - COLLADA to JSON mesh converter

Usage:
  dae2json [options] <input.dae> <output>

Examples:
  dae2json cube.dae cube.json
  dae2json -pretty -name Crate cube.dae crate.json
  dae2json -geometry Cube-mesh -debug scene.dae cube.json
  dae2json -format cbor cube.dae cube.cbor

Options:`)
	flags.Usage()
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := config.NewFlags("dae2json", stderr)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, flags)
			return 0
		}
		printUsage(stderr, flags)
		return 2
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "Config error: %v\n", err)
		return 1
	}

	if path := flags.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(stderr, "Error writing config: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote config: %s\n", path)
		if len(flags.Args()) == 0 {
			return 0
		}
	}

	if len(flags.Args()) != 2 {
		printUsage(stderr, flags)
		return 2
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: stdout}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	input, output := flags.Args()[0], flags.Args()[1]
	_, err = convert.Run(input, output, convert.Options{
		GeometryID: cfg.Mesh.GeometryID,
		Name:       cfg.Mesh.Name,
		Indent:     cfg.JSONIndent(),
		Format:     cfg.Output.Format,
	})
	if err != nil {
		logger.Error("conversion failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}
