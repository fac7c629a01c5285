package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/logger"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"go.uber.org/zap"
)

// ParquetSource reads market data parquet files written by the download writers.
type ParquetSource struct {
	path   string
	opts   Options
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewParquetSource creates a parquet source.
func NewParquetSource(path string, opts Options, log *logger.Logger) *ParquetSource {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &ParquetSource{
		path:   path,
		opts:   opts,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Load implements Source.
func (s *ParquetSource) Load(ctx context.Context) (dataset.RawTable, error) {
	table := dataset.RawTable{Columns: append([]string{dataset.ColumnSymbol}, dataset.RawColumns...)}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return table, errors.Wrap(errors.ErrCodeSourceReadFailed, "failed to open duckdb", err)
	}
	defer db.Close()

	// squirrel has no CREATE VIEW
	escapedPath := strings.ReplaceAll(s.path, "'", "''")

	_, err = db.ExecContext(ctx, fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM read_parquet('%s');`, escapedPath))
	if err != nil {
		return table, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to read parquet %s", s.path)
	}

	builder := s.sq.
		Select(
			"symbol",
			"time",
			"CAST(close AS DOUBLE)",
			"CAST(high AS DOUBLE)",
			"CAST(low AS DOUBLE)",
			"CAST(open AS DOUBLE)",
			"CAST(volume AS DOUBLE)",
		).
		From("market_data").
		OrderBy("time ASC")

	if s.opts.Symbol != "" {
		builder = builder.Where(squirrel.Eq{"symbol": s.opts.Symbol})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return table, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	s.logger.Debug("Querying parquet source", zap.String("path", s.path), zap.String("query", query))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return table, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query market data", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			symbol                         string
			timestamp                      time.Time
			close, high, low, open, volume float64
		)

		if err := rows.Scan(&symbol, &timestamp, &close, &high, &low, &open, &volume); err != nil {
			return table, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan market data", err)
		}

		table.Rows = append(table.Rows, []string{
			symbol,
			timestamp.UTC().Format(time.RFC3339Nano),
			formatFloat(close),
			formatFloat(high),
			formatFloat(low),
			formatFloat(open),
			formatFloat(volume),
		})
	}

	if err := rows.Err(); err != nil {
		return table, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate market data", err)
	}

	return table, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
