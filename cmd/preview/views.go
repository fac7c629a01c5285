package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
)

// previewColumns are the numeric columns shown after the date.
var previewColumns = []string{
	dataset.ColumnClose,
	dataset.ColumnMovingAverage7,
	dataset.ColumnMovingAverage20,
	dataset.ColumnRSI14,
	dataset.ColumnBollingerUpper,
	dataset.ColumnBollingerLower,
}

// fileItem implements list.Item for labeled workbooks.
type fileItem struct {
	path string
}

func (i fileItem) Title() string       { return filepath.Base(i.path) }
func (i fileItem) Description() string { return filepath.Dir(i.path) }
func (i fileItem) FilterValue() string { return filepath.Base(i.path) }

// FindFiles returns target when it is a file, or the .xlsx workbooks inside
// target when it is a directory.
func FindFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to open %s", target)
	}

	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeSourceReadFailed, err, "failed to list %s", target)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xlsx") {
			continue
		}

		files = append(files, filepath.Join(target, entry.Name()))
	}

	if len(files) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no .xlsx files in %s", target)
	}

	return files, nil
}

// NewFileList creates a list for workbook selection.
func NewFileList(files []string) list.Model {
	items := make([]list.Item, 0, len(files))
	for _, file := range files {
		items = append(items, fileItem{path: file})
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Labeled Table"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewDataTable creates a table for labeled records.
func NewDataTable() table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Close", Width: 10},
		{Title: "MA 7", Width: 10},
		{Title: "MA 20", Width: 10},
		{Title: "RSI 14", Width: 10},
		{Title: "BB Upper", Width: 10},
		{Title: "BB Lower", Width: 10},
		{Title: "Action", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// NextFilter cycles ALL, SELL, BUY, HOLD and back to ALL.
func NextFilter(current types.Action) types.Action {
	for i, action := range types.Actions {
		if action == current {
			if i+1 < len(types.Actions) {
				return types.Actions[i+1]
			}

			return filterAll
		}
	}

	return types.Actions[0]
}

// FilterLabel names filter for display.
func FilterLabel(filter types.Action) string {
	if filter == filterAll {
		return "ALL"
	}

	return filter.String()
}

// VisibleRecords returns the records of t that pass filter.
func VisibleRecords(t *dataset.Table, filter types.Action) []types.LabeledRecord {
	if t == nil {
		return nil
	}

	if filter == filterAll {
		return t.Records
	}

	return t.Filter(filter)
}

// BuildRows renders records as table rows.
func BuildRows(records []types.LabeledRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))

	for _, record := range records {
		row := table.Row{record.Time.Format("2006-01-02")}

		for _, column := range previewColumns {
			value, _ := dataset.ColumnValue(record, column)
			row = append(row, fmt.Sprintf("%.4f", value))
		}

		rows = append(rows, append(row, record.Action.String()))
	}

	return rows
}

// UpdateTableRows replaces the rows of t with records.
func UpdateTableRows(t table.Model, records []types.LabeledRecord) table.Model {
	t.SetRows(BuildRows(records))

	return t
}
