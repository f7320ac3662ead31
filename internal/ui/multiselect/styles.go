package multiselect

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions of the widget
type Styles struct {
	Label          lipgloss.Style
	Hint           lipgloss.Style
	Trigger        lipgloss.Style
	TriggerFocused lipgloss.Style
	TriggerError   lipgloss.Style
	TriggerSuccess lipgloss.Style
	Panel          lipgloss.Style
	Closing        lipgloss.Style
	Legend         lipgloss.Style
	NavHint        lipgloss.Style
	Row            lipgloss.Style
	Cursor         lipgloss.Style
	Checked        lipgloss.Style
	Button         lipgloss.Style
	Disabled       lipgloss.Style
	NoResults      lipgloss.Style
	Scroll         lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	border := lipgloss.RoundedBorder()
	return &Styles{
		Label: lipgloss.NewStyle().Bold(true),
		Hint:  lipgloss.NewStyle().Faint(true),
		Trigger: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		TriggerFocused: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		TriggerError: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("203")). // red
			Padding(0, 1),
		TriggerSuccess: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("78")). // green
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		Closing:   lipgloss.NewStyle().Faint(true),
		Legend:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		NavHint:   lipgloss.NewStyle().Faint(true).Italic(true),
		Row:       lipgloss.NewStyle(),
		Cursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Disabled:  lipgloss.NewStyle().Faint(true),
		NoResults: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	}
}
