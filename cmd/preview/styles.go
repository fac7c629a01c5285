package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-dataset/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	sellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	buyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	holdStyle = lipgloss.NewStyle().Faint(true)
)

// ActionStyle returns the style used to render action.
func ActionStyle(action types.Action) lipgloss.Style {
	switch action {
	case types.ActionSell:
		return sellStyle
	case types.ActionBuy:
		return buyStyle
	default:
		return holdStyle
	}
}
