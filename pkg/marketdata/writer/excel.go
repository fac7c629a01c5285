package writer

import (
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelHeaderRows is the number of header rows above the data written by ExcelWriter.
const ExcelHeaderRows = 3

const excelSheet = "Sheet1"

// ExcelWriter streams market data into a spreadsheet with the layout of a
// yfinance export: a Price row naming the columns, a Ticker row, a Date row,
// then one row per bar as date, close, high, low, open, volume.
type ExcelWriter struct {
	file       *excelize.File
	stream     *excelize.StreamWriter
	ticker     string
	row        int
	outputPath string
	logger     *logger.Logger
}

// NewExcelWriter creates a spreadsheet writer for ticker.
func NewExcelWriter(outputPath string, ticker string, log *logger.Logger) MarketDataWriter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ExcelWriter{
		ticker:     ticker,
		outputPath: outputPath,
		logger:     log,
	}
}

// Initialize creates the workbook and writes the header rows.
func (w *ExcelWriter) Initialize() error {
	w.file = excelize.NewFile()

	stream, err := w.file.NewStreamWriter(excelSheet)
	if err != nil {
		w.file.Close()
		w.file = nil

		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to create stream writer", err)
	}

	w.stream = stream

	header := [][]any{
		{"Price", "Close", "High", "Low", "Open", "Volume"},
		{"Ticker", w.ticker, w.ticker, w.ticker, w.ticker, w.ticker},
		{"Date"},
	}

	for _, row := range header {
		if err := w.setRow(row); err != nil {
			return err
		}
	}

	return nil
}

// Write appends a single bar.
func (w *ExcelWriter) Write(data types.MarketData) error {
	if w.stream == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or stream is nil")
	}

	return w.setRow([]any{data.Time, data.Close, data.High, data.Low, data.Open, data.Volume})
}

func (w *ExcelWriter) setRow(values []any) error {
	w.row++

	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "invalid cell", err)
	}

	if err := w.stream.SetRow(cell, values); err != nil {
		return errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to write row %d", w.row)
	}

	return nil
}

// Finalize flushes the rows and saves the workbook.
func (w *ExcelWriter) Finalize() (string, error) {
	if w.stream == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or stream is nil")
	}

	if err := w.stream.Flush(); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to flush rows", err)
	}

	w.stream = nil

	if err := w.file.SaveAs(w.outputPath); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to save %s", w.outputPath)
	}

	w.logger.Info("Exported market data",
		zap.String("path", w.outputPath),
		zap.Int("rows", w.row-ExcelHeaderRows),
	)

	return w.outputPath, nil
}

// Close releases the workbook.
func (w *ExcelWriter) Close() error {
	w.stream = nil

	if w.file == nil {
		return nil
	}

	err := w.file.Close()
	w.file = nil

	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close workbook", err)
	}

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *ExcelWriter) GetOutputPath() string {
	return w.outputPath
}
