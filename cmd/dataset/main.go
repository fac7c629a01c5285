package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rxtech-lab/argo-dataset/internal/config"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/internal/pipeline"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// buildConfig loads the config file when given, then applies the flags that were set.
func buildConfig(cmd *cli.Command) (config.Config, error) {
	cfg := config.EmptyConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}

		cfg = loaded
	}

	if cmd.IsSet("input") {
		cfg.Input = cmd.String("input")
	}

	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}

	if cmd.IsSet("forward-window") {
		cfg.Dataset.ForwardWindow = int(cmd.Int("forward-window"))
	}

	if cmd.IsSet("sheet") {
		cfg.Sheet = cmd.String("sheet")
	}

	if cmd.IsSet("skip-rows") {
		cfg.SkipRows = int(cmd.Int("skip-rows"))
	}

	if cmd.IsSet("symbol") {
		cfg.Symbol = cmd.String("symbol")
	}

	return cfg, nil
}

func printDistribution(w io.Writer, result pipeline.Result) {
	fmt.Fprintf(w, "Wrote %d of %d rows to %s\n", result.OutputRows, result.InputRows, result.OutputPath)
	fmt.Fprintln(w, "Action distribution:")

	for _, action := range types.Actions {
		fmt.Fprintf(w, "  %d %-4s %d\n", int(action), action.String(), result.Distribution[action])
	}
}

func buildAction(log *logger.Logger) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		result, err := pipeline.Run(ctx, cfg, log)
		if err != nil {
			return err
		}

		printDistribution(cmd.Root().Writer, result)

		return nil
	}
}

func newCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "dataset",
		Usage: "Prepare labeled feature tables from raw price tables",
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Label a raw price table with the optimal action and scaled indicators",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML config file; flags override its values",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Usage:   "Raw price table (.xlsx or .parquet)",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Labeled table to write (.xlsx or .parquet)",
					},
					&cli.IntFlag{
						Name:    "forward-window",
						Aliases: []string{"w"},
						Usage:   "Number of future rows used to label each row",
						Value:   3,
					},
					&cli.StringFlag{
						Name:  "sheet",
						Usage: "Spreadsheet sheet to read (defaults to the first sheet)",
					},
					&cli.IntFlag{
						Name:  "skip-rows",
						Usage: "Header rows above the data in a spreadsheet input",
						Value: config.DefaultSkipRows,
					},
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Only read rows of this symbol from a parquet input",
					},
				},
				Action: buildAction(log),
			},
		},
	}
}

func main() {
	log, err := logger.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	err = newCommand(log).Run(context.Background(), os.Args)
	if err != nil {
		log.Error("Dataset build failed", zap.Error(err))
	}

	_ = log.Sync()

	if err != nil {
		os.Exit(1)
	}
}
