package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/types"
	"github.com/rxtech-lab/argo-dataset/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewTable() *dataset.Table {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	actions := []types.Action{types.ActionHold, types.ActionBuy, types.ActionHold, types.ActionSell, types.ActionHold}

	records := make([]types.LabeledRecord, 0, len(actions))
	for i, action := range actions {
		records = append(records, types.LabeledRecord{
			MarketData: types.MarketData{
				Symbol: "SPY",
				Time:   start.AddDate(0, 0, i),
				Close:  float64(i) / 4,
			},
			RSI14:  0.5,
			Action: action,
		})
	}

	return &dataset.Table{Records: records, ForwardWindow: 3}
}

func staticLoader(table *dataset.Table) Loader {
	return func(string) (*dataset.Table, error) {
		return table, nil
	}
}

func waitFor(t *testing.T, tm *teatest.TestModel, texts ...string) {
	t.Helper()

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		for _, text := range texts {
			if !bytes.Contains(bts, []byte(text)) {
				return false
			}
		}

		return true
	}, teatest.WithDuration(2*time.Second))
}

func TestNewModel(t *testing.T) {
	t.Run("several files start at selection", func(t *testing.T) {
		m := NewModel([]string{"a.xlsx", "b.xlsx"}, staticLoader(previewTable()))

		assert.Equal(t, StateFileSelect, m.state)
		assert.Nil(t, m.Init())
	})

	t.Run("single file loads immediately", func(t *testing.T) {
		m := NewModel([]string{"a.xlsx"}, staticLoader(previewTable()))

		assert.Equal(t, StateLoading, m.state)
		assert.Equal(t, "a.xlsx", m.path)

		cmd := m.Init()
		require.NotNil(t, cmd)

		msg, ok := cmd().(TableLoadedMsg)
		require.True(t, ok)
		assert.Equal(t, "a.xlsx", msg.Path)
		assert.Equal(t, 5, msg.Table.Len())
	})
}

func TestNextFilter(t *testing.T) {
	tests := []struct {
		current  types.Action
		expected types.Action
	}{
		{filterAll, types.ActionSell},
		{types.ActionSell, types.ActionBuy},
		{types.ActionBuy, types.ActionHold},
		{types.ActionHold, filterAll},
	}

	for _, tt := range tests {
		t.Run(FilterLabel(tt.current), func(t *testing.T) {
			assert.Equal(t, tt.expected, NextFilter(tt.current))
		})
	}
}

func TestVisibleRecords(t *testing.T) {
	table := previewTable()

	assert.Len(t, VisibleRecords(table, filterAll), 5)
	assert.Len(t, VisibleRecords(table, types.ActionHold), 3)
	assert.Len(t, VisibleRecords(table, types.ActionSell), 1)
	assert.Nil(t, VisibleRecords(nil, filterAll))
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(previewTable().Filter(types.ActionSell))

	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-04", rows[0][0])
	assert.Equal(t, "0.7500", rows[0][1])
	assert.Equal(t, "0.5000", rows[0][4])
	assert.Equal(t, "SELL", rows[0][7])
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.xlsx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	t.Run("directory lists workbooks", func(t *testing.T) {
		files, err := FindFiles(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")}, files)
	})

	t.Run("file is returned as is", func(t *testing.T) {
		path := filepath.Join(dir, "notes.txt")
		files, err := FindFiles(path)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, files)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := FindFiles(t.TempDir())
		assert.True(t, errors.HasCode(err, errors.ErrCodeNoDataFound))
	})

	t.Run("missing target", func(t *testing.T) {
		_, err := FindFiles(filepath.Join(dir, "missing"))
		assert.True(t, errors.HasCode(err, errors.ErrCodeSourceReadFailed))
	})
}

func TestFileSelection(t *testing.T) {
	m := NewModel([]string{"data/spy_labeled.xlsx", "data/qqq_labeled.xlsx"}, staticLoader(previewTable()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "spy_labeled.xlsx")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	waitFor(t, tm, "Filter: ALL")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)

	assert.Equal(t, StateDataDisplay, final.state)
	assert.Equal(t, "data/spy_labeled.xlsx", final.path)
}

func TestDataDisplay(t *testing.T) {
	m := NewModel([]string{"spy_labeled.xlsx"}, staticLoader(previewTable()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "forward window 3", "SELL 1 | BUY 1 | HOLD 3", "2024-03-05")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestFilterCycling(t *testing.T) {
	m := NewModel([]string{"spy_labeled.xlsx"}, staticLoader(previewTable()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "Filter: ALL (5 of 5 rows)")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitFor(t, tm, "Filter: SELL (1 of 5 rows)")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitFor(t, tm, "Filter: BUY (1 of 5 rows)")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	waitFor(t, tm, "Filter: HOLD (3 of 5 rows)")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)

	assert.Equal(t, types.ActionHold, final.filter)
}

func TestEmptyTable(t *testing.T) {
	m := NewModel([]string{"empty.xlsx"}, staticLoader(&dataset.Table{}))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "No rows")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
}

func TestLoadError(t *testing.T) {
	load := func(path string) (*dataset.Table, error) {
		return nil, fmt.Errorf("cannot read %s", path)
	}

	m := NewModel([]string{"a.xlsx", "broken.xlsx"}, load)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "a.xlsx")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Error: cannot read a.xlsx")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)

	assert.Equal(t, StateFileSelect, final.state)
	assert.Error(t, final.err)
}

func TestEscReturnsToFileSelect(t *testing.T) {
	m := NewModel([]string{"a.xlsx", "b.xlsx"}, staticLoader(previewTable()))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	waitFor(t, tm, "a.xlsx")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Filter: ALL")

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	waitFor(t, tm, "Select Labeled Table")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(2*time.Second)).(Model)

	assert.Equal(t, StateFileSelect, final.state)
	assert.Equal(t, filterAll, final.filter)
	assert.Nil(t, final.table)
}
