package exporter

import (
	"strconv"
	"strings"
	"time"

	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/internal/version"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Sheet names of an exported workbook.
const (
	DatasetSheet  = "dataset"
	MetadataSheet = "metadata"
)

// ExcelExporter writes the labeled rows to a "dataset" sheet and the schema
// version, forward window and scale ranges to a "metadata" sheet.
type ExcelExporter struct {
	path string
}

// NewExcelExporter creates an xlsx exporter.
func NewExcelExporter(path string) *ExcelExporter {
	return &ExcelExporter{path: path}
}

// Export implements Exporter.
func (e *ExcelExporter) Export(table *dataset.Table) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), DatasetSheet); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to name dataset sheet", err)
	}

	if _, err := f.NewSheet(MetadataSheet); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create metadata sheet", err)
	}

	header := make([]any, len(dataset.OutputColumns))
	for i, column := range dataset.OutputColumns {
		header[i] = column
	}

	if err := setRow(f, DatasetSheet, 1, header); err != nil {
		return "", err
	}

	for i, record := range table.Records {
		row := []any{
			record.Time,
			record.Close,
			record.High,
			record.Low,
			record.Open,
			record.Volume,
			record.MovingAverage7,
			record.MovingAverage20,
			record.RSI14,
			record.BollingerUpper,
			record.BollingerLower,
			int(record.Action),
		}

		if err := setRow(f, DatasetSheet, i+2, row); err != nil {
			return "", err
		}
	}

	metadata := [][]any{
		{MetadataSchemaVersion, version.SchemaVersion},
		{MetadataForwardWindow, table.ForwardWindow},
		{MetadataRows, table.Len()},
		{MetadataToolVersion, version.GetVersion()},
		{},
		{"column", "min", "max"},
	}

	for _, column := range dataset.ScaledColumns {
		r, ok := table.Scale[column]
		if !ok {
			continue
		}

		metadata = append(metadata, []any{column, r.Min, r.Max})
	}

	for i, row := range metadata {
		if err := setRow(f, MetadataSheet, i+1, row); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return "", errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to save %s", e.path)
	}

	return e.path, nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, "invalid cell", err)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to write row %d of sheet %s", row, sheet)
	}

	return nil
}

// ReadExcel reads a workbook written by ExcelExporter. It fails when the
// workbook's schema version is not compatible with this build.
func ReadExcel(path string) (*dataset.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to open %s", path)
	}
	defer f.Close()

	table := &dataset.Table{
		Records: []types.LabeledRecord{},
		Scale:   dataset.ScaleParams{},
	}

	if err := readMetadata(f, table); err != nil {
		return nil, err
	}

	rows, err := f.GetRows(DatasetSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to read sheet %s", DatasetSheet)
	}

	if len(rows) == 0 {
		return nil, errors.Newf(errors.ErrCodeMissingColumn, "sheet %s has no header", DatasetSheet)
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	for _, column := range dataset.OutputColumns {
		if _, ok := index[column]; !ok {
			return nil, errors.Newf(errors.ErrCodeMissingColumn, "missing column %q", column)
		}
	}

	for i, row := range rows[1:] {
		record, err := parseRecord(row, i, index)
		if err != nil {
			return nil, err
		}

		table.Records = append(table.Records, record)
	}

	return table, nil
}

func readMetadata(f *excelize.File, table *dataset.Table) error {
	rows, err := f.GetRows(MetadataSheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return errors.Wrapf(errors.ErrCodeSchemaVersionFailed, err, "failed to read sheet %s", MetadataSheet)
	}

	schemaVersion := ""

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		key := strings.TrimSpace(row[0])

		switch key {
		case MetadataSchemaVersion:
			schemaVersion = row[1]
		case MetadataForwardWindow:
			window, err := strconv.Atoi(strings.TrimSpace(row[1]))
			if err != nil {
				return errors.NewCellError(errors.ErrCodeMalformedNumber, 0, MetadataForwardWindow, row[1], err)
			}

			table.ForwardWindow = window
		default:
			if len(row) < 3 {
				continue
			}

			lo, errMin := dataset.ParseDecimal(row[1])
			hi, errMax := dataset.ParseDecimal(row[2])

			if errMin == nil && errMax == nil {
				table.Scale[key] = dataset.ColumnRange{Min: lo, Max: hi}
			}
		}
	}

	if schemaVersion == "" {
		return errors.New(errors.ErrCodeSchemaVersionFailed, "workbook has no schema version")
	}

	return version.CheckSchema(schemaVersion)
}

func parseRecord(row []string, rowIndex int, index map[string]int) (types.LabeledRecord, error) {
	var record types.LabeledRecord

	cell := func(column string) string {
		i := index[column]
		if i >= len(row) {
			return ""
		}

		return row[i]
	}

	dateText := cell(dataset.ColumnDate)

	date, err := parseCellDate(dateText)
	if err != nil {
		return record, errors.NewCellError(errors.ErrCodeInvalidDate, rowIndex, dataset.ColumnDate, dateText, err)
	}

	record.Time = date

	fields := []struct {
		column string
		target *float64
	}{
		{dataset.ColumnClose, &record.Close},
		{dataset.ColumnHigh, &record.High},
		{dataset.ColumnLow, &record.Low},
		{dataset.ColumnOpen, &record.Open},
		{dataset.ColumnVolume, &record.Volume},
		{dataset.ColumnMovingAverage7, &record.MovingAverage7},
		{dataset.ColumnMovingAverage20, &record.MovingAverage20},
		{dataset.ColumnRSI14, &record.RSI14},
		{dataset.ColumnBollingerUpper, &record.BollingerUpper},
		{dataset.ColumnBollingerLower, &record.BollingerLower},
	}

	for _, field := range fields {
		text := cell(field.column)

		v, err := dataset.ParseDecimal(text)
		if err != nil {
			return record, errors.NewCellError(errors.ErrCodeMalformedNumber, rowIndex, field.column, text, err)
		}

		*field.target = v
	}

	actionText := cell(dataset.ColumnAction)

	value, err := strconv.Atoi(strings.TrimSpace(actionText))
	if err != nil {
		return record, errors.NewCellError(errors.ErrCodeMalformedNumber, rowIndex, dataset.ColumnAction, actionText, err)
	}

	action, err := types.ParseAction(value)
	if err != nil {
		return record, errors.NewCellError(errors.ErrCodeInvalidType, rowIndex, dataset.ColumnAction, actionText, err)
	}

	record.Action = action

	return record, nil
}

// parseCellDate accepts a spreadsheet serial date or date text.
func parseCellDate(text string) (time.Time, error) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}

		// serial dates carry no more than millisecond precision
		return t.Round(time.Millisecond), nil
	}

	return dataset.ParseDate(text)
}
