package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/shopspring/decimal"
)

// RawTable is a price table as read from a source, before any coercion.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"02.01.2006",
}

// ParseDecimal converts numeric text to float64. A comma is accepted as the
// decimal separator.
func ParseDecimal(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")

	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}

// ParseDate parses the date formats found in exported spreadsheets.
func ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)

	var lastErr error

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t, nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}

// ParseRawTable coerces a raw table into market data sorted by ascending date.
// It fails on a missing required column, a malformed number or date, or a
// duplicate date.
func ParseRawTable(raw RawTable) ([]types.MarketData, error) {
	index := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range RawColumns {
		if _, ok := index[name]; !ok {
			return nil, errors.Newf(errors.ErrCodeMissingColumn, "missing required column %q", name)
		}
	}

	symbolIndex, hasSymbol := index[ColumnSymbol]

	data := make([]types.MarketData, 0, len(raw.Rows))

	for rowIndex, row := range raw.Rows {
		cell := func(column string) (string, error) {
			i := index[column]
			if i >= len(row) {
				return "", errors.NewCellError(errors.ErrCodeMissingColumn, rowIndex, column, "", nil)
			}

			return row[i], nil
		}

		number := func(column string) (float64, error) {
			text, err := cell(column)
			if err != nil {
				return 0, err
			}

			v, err := ParseDecimal(text)
			if err != nil {
				return 0, errors.NewCellError(errors.ErrCodeMalformedNumber, rowIndex, column, text, err)
			}

			return v, nil
		}

		dateText, err := cell(ColumnDate)
		if err != nil {
			return nil, err
		}

		date, err := ParseDate(dateText)
		if err != nil {
			return nil, errors.NewCellError(errors.ErrCodeInvalidDate, rowIndex, ColumnDate, dateText, err)
		}

		record := types.MarketData{Time: date}

		fields := []struct {
			column string
			target *float64
		}{
			{ColumnClose, &record.Close},
			{ColumnHigh, &record.High},
			{ColumnLow, &record.Low},
			{ColumnOpen, &record.Open},
			{ColumnVolume, &record.Volume},
		}

		for _, field := range fields {
			v, err := number(field.column)
			if err != nil {
				return nil, err
			}

			*field.target = v
		}

		if hasSymbol && symbolIndex < len(row) {
			record.Symbol = strings.TrimSpace(row[symbolIndex])
		}

		data = append(data, record)
	}

	return sortByDate(data)
}

// sortByDate returns a copy of data in ascending date order and rejects duplicate dates.
func sortByDate(data []types.MarketData) ([]types.MarketData, error) {
	sorted := make([]types.MarketData, len(data))
	copy(sorted, data)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Time.Equal(sorted[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeDuplicateDate, "duplicate date %s", sorted[i].Time.Format(time.RFC3339))
		}
	}

	return sorted, nil
}
