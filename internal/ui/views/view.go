package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionView is one titled widget
type SectionView struct {
	Title   string
	Body    string
	Focused bool
}

// ViewState contains all the state needed for rendering the screen
type ViewState struct {
	Width       int
	Height      int
	Title       string
	Sections    []SectionView
	Status      string
	StatusError bool
	Help        string
	QuitHint    string
}

// Layout tells where each section body landed in the last render
type Layout struct {
	Left int   // column of every body
	Tops []int // line of each body, by section
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view and its layout
func (r *Renderer) Render(state ViewState) (string, Layout) {
	var lines []string
	add := func(block string) int {
		top := len(lines)
		lines = append(lines, strings.Split(block, "\n")...)
		return top
	}

	add(r.styles.Title.Render(state.Title))

	layout := Layout{
		Left: r.styles.Main.GetPaddingLeft(),
		Tops: make([]int, len(state.Sections)),
	}
	top := r.styles.Main.GetPaddingTop()

	for i, s := range state.Sections {
		if i > 0 {
			add("")
		}
		title := r.styles.Section.Render(s.Title)
		if s.Focused {
			title = r.styles.SectionFocused.Render("› " + s.Title)
		}
		add(title)
		layout.Tops[i] = top + add(s.Body)
	}

	if state.Status != "" {
		style := r.styles.Status
		if state.StatusError {
			style = r.styles.StatusError
		}
		add(style.Render(state.Status))
	}

	footer := state.Help
	if state.QuitHint != "" {
		footer = lipgloss.JoinHorizontal(lipgloss.Top, footer, r.styles.Dim.Render("  "+state.QuitHint))
	}
	add("")
	add(r.styles.Help.Render(footer))

	return r.styles.Main.Render(strings.Join(lines, "\n")), layout
}
