package datasource

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelSource reads a spreadsheet laid out as date, close, high, low, open,
// volume below SkipRows header rows. Column headers are ignored.
type ExcelSource struct {
	path   string
	opts   Options
	logger *logger.Logger
}

// NewExcelSource creates a spreadsheet source.
func NewExcelSource(path string, opts Options, log *logger.Logger) *ExcelSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ExcelSource{
		path:   path,
		opts:   opts,
		logger: log,
	}
}

// Load implements Source.
func (s *ExcelSource) Load(ctx context.Context) (dataset.RawTable, error) {
	table := dataset.RawTable{Columns: dataset.RawColumns}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return table, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to open spreadsheet %s", s.path)
	}
	defer f.Close()

	sheet := s.opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return table, errors.Newf(errors.ErrCodeSourceReadFailed, "spreadsheet %s has no sheets", s.path)
		}

		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return table, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to read sheet %q of %s", sheet, s.path)
	}

	s.logger.Debug("Read spreadsheet",
		zap.String("path", s.path),
		zap.String("sheet", sheet),
		zap.Int("rows", len(rows)),
	)

	for i, row := range rows {
		if i < s.opts.SkipRows {
			continue
		}

		if err := ctx.Err(); err != nil {
			return table, err
		}

		if isEmptyRow(row) {
			continue
		}

		dataRow := len(table.Rows)

		if len(row) < len(dataset.RawColumns) {
			return table, errors.NewCellError(errors.ErrCodeMissingColumn, dataRow, dataset.RawColumns[len(row)], "", nil)
		}

		cells := make([]string, len(dataset.RawColumns))
		copy(cells, row)
		cells[0] = excelDate(cells[0])

		table.Rows = append(table.Rows, cells)
	}

	return table, nil
}

// excelDate converts a spreadsheet serial date to RFC 3339 and leaves any
// other text unchanged.
func excelDate(cell string) string {
	cell = strings.TrimSpace(cell)

	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return cell
	}

	return t.Format(time.RFC3339)
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
