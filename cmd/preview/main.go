package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-dataset/internal/exporter"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func previewAction(log *logger.Logger) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		target := cmd.Args().First()
		if target == "" {
			target = "."
		}

		files, err := FindFiles(target)
		if err != nil {
			return err
		}

		log.Debug("Opening previewer", zap.String("target", target), zap.Int("files", len(files)))

		program := tea.NewProgram(NewModel(files, exporter.ReadExcel), tea.WithAltScreen(), tea.WithContext(ctx))
		_, err = program.Run()

		return err
	}
}

func newCommand(log *logger.Logger) *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "Browse labeled tables and filter rows by action",
		ArgsUsage: "[FILE|DIR]",
		Action:    previewAction(log),
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
		log.Error("Preview failed", zap.Error(err))
	}

	_ = log.Sync()

	if err != nil {
		os.Exit(1)
	}
}
