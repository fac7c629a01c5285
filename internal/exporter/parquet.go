package exporter

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/version"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// ParquetExporter writes the labeled rows to a parquet file through an
// in-memory DuckDB table. The schema version and forward window are stored
// as parquet key/value metadata.
type ParquetExporter struct {
	path string
}

// NewParquetExporter creates a parquet exporter.
func NewParquetExporter(path string) *ParquetExporter {
	return &ParquetExporter{path: path}
}

// Export implements Exporter.
func (e *ParquetExporter) Export(table *dataset.Table) (string, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE labeled_data (
			date TIMESTAMP,
			close DOUBLE,
			high DOUBLE,
			low DOUBLE,
			open DOUBLE,
			volume DOUBLE,
			moving_average_7 DOUBLE,
			moving_average_20 DOUBLE,
			rsi_14 DOUBLE,
			bollinger_upper DOUBLE,
			bollinger_lower DOUBLE,
			action INTEGER
		)
	`)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create table", err)
	}

	if err := insertRecords(db, table); err != nil {
		return "", err
	}

	query := fmt.Sprintf(
		`COPY (SELECT * FROM labeled_data ORDER BY date) TO '%s' (FORMAT PARQUET, KV_METADATA {%s: '%s', %s: '%s'})`,
		strings.ReplaceAll(e.path, "'", "''"),
		MetadataSchemaVersion, version.SchemaVersion,
		MetadataForwardWindow, strconv.Itoa(table.ForwardWindow),
	)

	if _, err := db.Exec(query); err != nil {
		return "", errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to export to %s", e.path)
	}

	return e.path, nil
}

func insertRecords(db *sql.DB, table *dataset.Table) error {
	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to begin transaction", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO labeled_data (date, close, high, low, open, volume, moving_average_7,
			moving_average_20, rsi_14, bollinger_upper, bollinger_lower, action)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()

		return errors.Wrap(errors.ErrCodeExportFailed, "failed to prepare statement", err)
	}
	defer stmt.Close()

	for _, r := range table.Records {
		_, err := stmt.Exec(
			r.Time,
			r.Close,
			r.High,
			r.Low,
			r.Open,
			r.Volume,
			r.MovingAverage7,
			r.MovingAverage20,
			r.RSI14,
			r.BollingerUpper,
			r.BollingerLower,
			int(r.Action),
		)
		if err != nil {
			_ = tx.Rollback()

			return errors.Wrap(errors.ErrCodeExportFailed, "failed to insert record", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "failed to commit transaction", err)
	}

	return nil
}
