// Package datasource loads raw price tables from spreadsheet and parquet files.
package datasource

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// Source reads a raw price table.
type Source interface {
	// Load reads the whole table. Values are returned as text; coercion is
	// left to dataset.ParseRawTable.
	Load(ctx context.Context) (dataset.RawTable, error)
}

// Options tune how a source reads its file.
type Options struct {
	// Sheet is the spreadsheet sheet to read. Empty selects the first sheet.
	Sheet string
	// SkipRows is the number of header rows above the data in a spreadsheet.
	SkipRows int
	// Symbol restricts a parquet source to one symbol. Empty reads every row.
	Symbol string
}

// NewSource picks a Source by the extension of path.
func NewSource(path string, opts Options, log *logger.Logger) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return NewExcelSource(path, opts, log), nil
	case ".parquet":
		return NewParquetSource(path, opts, log), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported input format %q", filepath.Ext(path))
	}
}
