package pipeline

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/config"
	"github.com/rxtech-lab/argo-dataset/internal/exporter"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
)

type PipelineTestSuite struct {
	suite.Suite
	tempDir string
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (suite *PipelineTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

// writeInput writes a spreadsheet with three header rows and n daily bars.
func (suite *PipelineTestSuite) writeInput(n int) string {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{
		{"Price", "Close", "High", "Low", "Open", "Volume"},
		{"Ticker", "SPY", "SPY", "SPY", "SPY", "SPY"},
		{"Date"},
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	pattern := []float64{100, 102.5, 101, 98, 99.5, 103}

	for i := 0; i < n; i++ {
		c := pattern[i%len(pattern)] + float64(i)*0.25
		rows = append(rows, []any{base.AddDate(0, 0, i), c, c + 1, c - 1, c - 0.5, 1000 + i})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		suite.Require().NoError(err)
		suite.Require().NoError(f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(suite.tempDir, "SPY_data.xlsx")
	suite.Require().NoError(f.SaveAs(path))

	return path
}

func (suite *PipelineTestSuite) config(input, output string) config.Config {
	cfg := config.EmptyConfig()
	cfg.Input = input
	cfg.Output = output

	return cfg
}

func (suite *PipelineTestSuite) TestRun() {
	cfg := suite.config(suite.writeInput(40), filepath.Join(suite.tempDir, "labeled.xlsx"))

	result, err := Run(context.Background(), cfg, nil)
	suite.Require().NoError(err)

	suite.Equal(40, result.InputRows)
	suite.Equal(40-19-3, result.OutputRows)
	suite.Equal(cfg.Output, result.OutputPath)

	total := 0
	for _, count := range result.Distribution {
		total += count
	}
	suite.Equal(result.OutputRows, total)

	table, err := exporter.ReadExcel(result.OutputPath)
	suite.Require().NoError(err)
	suite.Equal(result.OutputRows, table.Len())
	suite.Equal(result.Distribution, table.ActionDistribution())
}

func (suite *PipelineTestSuite) TestRunTooShortExportsEmptyTable() {
	cfg := suite.config(suite.writeInput(10), filepath.Join(suite.tempDir, "labeled.xlsx"))

	result, err := Run(context.Background(), cfg, nil)
	suite.Require().NoError(err)
	suite.Equal(0, result.OutputRows)
	suite.Equal(map[types.Action]int{types.ActionSell: 0, types.ActionBuy: 0, types.ActionHold: 0}, result.Distribution)

	table, err := exporter.ReadExcel(result.OutputPath)
	suite.Require().NoError(err)
	suite.True(table.IsEmpty())
}

func (suite *PipelineTestSuite) TestRunParquetOutput() {
	cfg := suite.config(suite.writeInput(30), filepath.Join(suite.tempDir, "labeled.parquet"))

	result, err := Run(context.Background(), cfg, nil)
	suite.Require().NoError(err)
	suite.Equal(8, result.OutputRows)
	suite.FileExists(result.OutputPath)
}

func (suite *PipelineTestSuite) TestRunInvalidConfig() {
	_, err := Run(context.Background(), config.EmptyConfig(), nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *PipelineTestSuite) TestRunUnsupportedInput() {
	cfg := suite.config(filepath.Join(suite.tempDir, "in.csv"), filepath.Join(suite.tempDir, "out.xlsx"))

	_, err := Run(context.Background(), cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}
