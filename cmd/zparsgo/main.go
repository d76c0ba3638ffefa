// Command zparsgo is the CLI adapter over package zparsgo: compress,
// decompress, roundtrip, inspect-zpaq, extract-zpaq-m0 and
// extract-zpaq, mirroring the clap Subcommand enum in the original
// Rust crate's main.rs.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	zlog "github.com/zparsgo/zparsgo/internal/log"
	"github.com/zparsgo/zparsgo/internal/zerr"
)

func main() {
	app := &cli.App{
		Name:  "zparsgo",
		Usage: "ZPS1 LZ77 codec and read-only ZPAQ -m0 extractor",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log verbosity: 0 = info, 1 or more = debug"},
			&cli.StringFlag{Name: "log-format", Value: "pretty", Usage: "pretty|json"},
		},
		Commands: []*cli.Command{
			{
				Name:   "compress",
				Flags:  compressionFlags,
				Action: runCompress,
			},
			{
				Name: "decompress",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true},
				},
				Action: runDecompress,
			},
			{
				Name:   "roundtrip",
				Flags:  compressionFlags,
				Action: runRoundtrip,
			},
			{
				Name: "inspect-zpaq",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
				},
				Action: runInspectZpaq,
			},
			{
				Name: "extract-zpaq-m0",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Required: true},
				},
				Action: runExtractZpaqM0,
			},
			{
				Name: "extract-zpaq",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true},
					&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Required: true},
					&cli.StringFlag{Name: "reference-bin", Value: "tmp/zpaq/zpaq"},
					&cli.BoolFlag{Name: "allow-reference-fallback", Value: true},
				},
				Action: runExtractZpaq,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, zerr.Format(err))
		os.Exit(1)
	}
}

// loggerFromContext builds the zap.Logger for this invocation from the
// top-level -v/--log-format flags, mirroring init_tracing in main.rs.
func loggerFromContext(c *cli.Context) *zap.Logger {
	format := zlog.Pretty
	if c.String("log-format") == "json" {
		format = zlog.JSON
	}
	logger, err := zlog.New(c.Int("verbose"), format)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
