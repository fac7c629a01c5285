// Package exporter persists labeled tables.
package exporter

import (
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// Metadata keys written next to the labeled rows.
const (
	MetadataSchemaVersion = "schema_version"
	MetadataForwardWindow = "forward_window"
	MetadataRows          = "rows"
	MetadataToolVersion   = "tool_version"
)

// Exporter writes a labeled table to a file.
type Exporter interface {
	// Export writes table and returns the written path.
	Export(table *dataset.Table) (string, error)
}

// NewExporter picks an Exporter by the extension of path.
func NewExporter(path string) (Exporter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return NewExcelExporter(path), nil
	case ".parquet":
		return NewParquetExporter(path), nil
	default:
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported output format %q", filepath.Ext(path))
	}
}
