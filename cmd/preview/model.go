package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-dataset/internal/dataset"
	"github.com/rxtech-lab/argo-dataset/internal/types"
)

// Application states.
const (
	StateFileSelect = iota
	StateLoading
	StateDataDisplay
)

// filterAll shows every record regardless of its action.
const filterAll types.Action = 0

// Loader reads a labeled table from path.
type Loader func(path string) (*dataset.Table, error)

// Model is the Bubble Tea model for browsing labeled tables.
type Model struct {
	state     int
	files     []string
	fileList  list.Model
	dataTable table.Model
	table     *dataset.Table
	path      string
	filter    types.Action
	load      Loader
	err       error
	width     int
	height    int
}

// NewModel creates a Model over files. A single file is loaded straight away.
func NewModel(files []string, load Loader) Model {
	m := Model{
		state:     StateFileSelect,
		files:     files,
		fileList:  NewFileList(files),
		dataTable: NewDataTable(),
		load:      load,
	}

	if len(files) == 1 {
		m.state = StateLoading
		m.path = files[0]
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.state == StateLoading {
		return m.loadTable(m.path)
	}

	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width, msg.Height-4)
		m.dataTable.SetWidth(msg.Width)
		m.dataTable.SetHeight(msg.Height - 8)
		return m, nil

	case TableLoadedMsg:
		m.table = msg.Table
		m.path = msg.Path
		m.filter = filterAll
		m.err = nil
		m.state = StateDataDisplay
		m.dataTable = UpdateTableRows(m.dataTable, VisibleRecords(m.table, m.filter))
		return m, nil

	case LoadErrorMsg:
		m.err = msg.Err
		m.state = StateFileSelect
		return m, nil
	}

	switch m.state {
	case StateFileSelect:
		return m.updateFileSelect(msg)
	case StateDataDisplay:
		return m.updateDataDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateDataDisplay && len(m.files) > 1 {
		m.table = nil
		m.filter = filterAll
		m.state = StateFileSelect
	}

	return m, nil
}

func (m Model) updateFileSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.fileList.SelectedItem().(fileItem); ok {
			m.path = item.path
			m.err = nil
			m.state = StateLoading
			return m, m.loadTable(item.path)
		}
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m Model) updateDataDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "tab" {
		m.filter = NextFilter(m.filter)
		m.dataTable = UpdateTableRows(m.dataTable, VisibleRecords(m.table, m.filter))
		m.dataTable.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.dataTable, cmd = m.dataTable.Update(msg)
	return m, cmd
}

func (m Model) loadTable(path string) tea.Cmd {
	load := m.load

	return func() tea.Msg {
		table, err := load(path)
		if err != nil {
			return LoadErrorMsg{Path: path, Err: err}
		}

		return TableLoadedMsg{Path: path, Table: table}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateFileSelect:
		s.WriteString(TitleStyle.Render("Argo Dataset - Preview"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		s.WriteString(m.fileList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to open, q to quit"))

	case StateLoading:
		s.WriteString(fmt.Sprintf("Loading %s...\n", filepath.Base(m.path)))

	case StateDataDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s (forward window %d)", filepath.Base(m.path), m.table.ForwardWindow)))
		s.WriteString("\n\n")
		s.WriteString(RenderDistribution(m.table))
		s.WriteString("\n")

		records := VisibleRecords(m.table, m.filter)
		s.WriteString(fmt.Sprintf("Filter: %s (%d of %d rows)\n\n", FilterLabel(m.filter), len(records), m.table.Len()))

		if len(records) == 0 {
			s.WriteString("No rows\n")
		} else {
			s.WriteString(m.dataTable.View())
		}

		s.WriteString("\n")

		help := "tab: filter | q: quit"
		if len(m.files) > 1 {
			help = "tab: filter | esc: back | q: quit"
		}

		s.WriteString(HelpStyle.Render(help))
	}

	return s.String()
}

// RenderDistribution renders the per-action row counts of t.
func RenderDistribution(t *dataset.Table) string {
	distribution := t.ActionDistribution()
	parts := make([]string, 0, len(types.Actions))

	for _, action := range types.Actions {
		parts = append(parts, ActionStyle(action).Render(fmt.Sprintf("%s %d", action, distribution[action])))
	}

	return strings.Join(parts, " | ")
}
