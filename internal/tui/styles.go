package tui

import (
	"charm.land/lipgloss/v2"
)

// Styles holds the lipgloss styles for the application chrome. There is no
// theme engine; these are plain styles components share.
type Styles struct {
	Header     lipgloss.Style
	Breadcrumb lipgloss.Style
	Helpline   lipgloss.Style
	Prompt     lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Selected   lipgloss.Style
	Dim        lipgloss.Style
	Border     lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		Breadcrumb: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		Helpline: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("36")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}
