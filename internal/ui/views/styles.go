package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions of the host screen
type Styles struct {
	Title          lipgloss.Style
	Section        lipgloss.Style
	SectionFocused lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	StatusError    lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Section:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		SectionFocused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:            lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // red
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
