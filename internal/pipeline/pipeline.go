// Package pipeline reads a raw price table, labels it and exports the result.
package pipeline

import (
	"context"

	"github.com/rxtech-lab/argo-dataset/internal/config"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/datasource"
	"github.com/rxtech-lab/argo-dataset/internal/exporter"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"go.uber.org/zap"
)

// Result summarizes one pipeline run.
type Result struct {
	OutputPath   string
	InputRows    int
	OutputRows   int
	Distribution map[types.Action]int
}

// Run builds the labeled table described by cfg.
func Run(ctx context.Context, cfg config.Config, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	source, err := datasource.NewSource(cfg.Input, datasource.Options{
		Sheet:    cfg.Sheet,
		SkipRows: cfg.SkipRows,
		Symbol:   cfg.Symbol,
	}, log)
	if err != nil {
		return Result{}, err
	}

	out, err := exporter.NewExporter(cfg.Output)
	if err != nil {
		return Result{}, err
	}

	log.Info("Loading raw table", zap.String("input", cfg.Input))

	return Execute(ctx, source, out, cfg.Dataset, log)
}

// Execute loads the raw table from source, builds the labeled table and
// exports it with out.
func Execute(ctx context.Context, source datasource.Source, out exporter.Exporter, datasetConfig dataset.Config, log *logger.Logger) (Result, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	builder, err := dataset.NewBuilder(datasetConfig)
	if err != nil {
		return Result{}, err
	}

	raw, err := source.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	table, err := builder.BuildRaw(raw)
	if err != nil {
		return Result{}, err
	}

	if table.IsEmpty() {
		log.Warn("No row survived labeling",
			zap.Int("input_rows", len(raw.Rows)),
			zap.Int("minimum_rows", datasetConfig.MinimumRows()),
		)
	}

	outputPath, err := out.Export(table)
	if err != nil {
		return Result{}, err
	}

	distribution := table.ActionDistribution()

	log.Info("Exported labeled table",
		zap.String("output", outputPath),
		zap.Int("input_rows", len(raw.Rows)),
		zap.Int("output_rows", table.Len()),
		zap.Int("sell", distribution[types.ActionSell]),
		zap.Int("buy", distribution[types.ActionBuy]),
		zap.Int("hold", distribution[types.ActionHold]),
	)

	return Result{
		OutputPath:   outputPath,
		InputRows:    len(raw.Rows),
		OutputRows:   table.Len(),
		Distribution: distribution,
	}, nil
}
