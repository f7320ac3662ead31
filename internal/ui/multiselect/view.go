package multiselect

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// region is a rectangle of the last rendered view owned by an element
type region struct {
	id   string
	x, y int
	w, h int
}

func (r region) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// layout stacks rendered blocks and records their regions
type layout struct {
	lines   []string
	regions []region
}

// add appends a block owned by id and returns its first line
func (l *layout) add(block, id string) int {
	top := len(l.lines)
	l.regions = append(l.regions, region{
		id: id,
		y:  top,
		w:  lipgloss.Width(block),
		h:  lipgloss.Height(block),
	})
	l.lines = append(l.lines, strings.Split(block, "\n")...)
	return top
}

// mark records a one-line region inside an already added block
func (l *layout) mark(id string, x, y, w int) {
	l.regions = append(l.regions, region{id: id, x: x, y: y, w: w, h: 1})
}

func (l *layout) String() string {
	return strings.Join(l.lines, "\n")
}

// render draws vs and returns the regions for hit testing. Later regions
// are nested inside earlier ones.
func render(vs ViewState, st *Styles) (string, []region) {
	var l layout
	container := vs.ID + containerSuffix

	if vs.Label != "" {
		l.add(st.Label.Render(vs.Label), container)
	}
	if vs.Hint != "" {
		l.add(st.Hint.Render(vs.Hint), container)
	}

	l.add(renderTrigger(vs, st), vs.ID)

	if vs.Mounted {
		renderPanel(&l, vs, st)
	}

	switch {
	case vs.ErrorMessage != "":
		l.add(st.Error.Render(vs.ErrorMessage), container)
	case vs.SuccessMessage != "":
		l.add(st.Success.Render(vs.SuccessMessage), container)
	}

	return l.String(), l.regions
}

func renderTrigger(vs ViewState, st *Styles) string {
	style := st.Trigger
	switch {
	case vs.ErrorMessage != "":
		style = st.TriggerError
	case vs.SuccessMessage != "":
		style = st.TriggerSuccess
	case vs.Focused:
		style = st.TriggerFocused
	}

	arrow := "▾"
	if vs.Expanded {
		arrow = "▴"
	}

	inner := vs.Width - style.GetHorizontalFrameSize()
	if inner < 3 {
		inner = 3
	}
	text := lipgloss.NewStyle().MaxWidth(inner - 2).Render(vs.Trigger)
	gap := inner - lipgloss.Width(text) - 1
	if gap < 1 {
		gap = 1
	}
	return style.Render(text + strings.Repeat(" ", gap) + arrow)
}

type panelLine struct {
	text string
	id   string
}

func renderPanel(l *layout, vs ViewState, st *Styles) {
	panelID := vs.ID + panelSuffix
	style := st.Panel
	inner := vs.PanelWidth - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	fit := lipgloss.NewStyle().MaxWidth(inner)

	var lines []panelLine
	push := func(text, id string) {
		lines = append(lines, panelLine{text: fit.Render(text), id: id})
	}

	if vs.Legend != "" {
		push(st.Legend.Render(vs.Legend), panelID)
	}
	if vs.NavigationHint != "" {
		push(st.NavHint.Render(vs.NavigationHint), panelID)
	}

	if sa := vs.SelectAll; sa != nil {
		text := st.Button.Render("» " + sa.Label)
		if sa.Disabled {
			text = st.Disabled.Render("» " + sa.Label)
		} else if sa.Focused {
			text = st.Cursor.Render(text)
		}
		push(text, sa.ElementID)
	}
	if s := vs.Search; s != nil {
		push(s.View, s.ElementID)
	}

	if vs.Above > 0 {
		push(st.Scroll.Render(fmt.Sprintf("↑ (%d more above)", vs.Above)), panelID)
	}
	for _, row := range vs.Rows {
		box := "[ ]"
		if row.Checked {
			box = st.Checked.Render("[x]")
		}
		prefix, label := "  ", st.Row.Render(row.Label)
		if row.Focused {
			prefix, label = "› ", st.Cursor.Render(row.Label)
		}
		push(prefix+box+" "+label, row.ElementID)
	}
	if vs.Below > 0 {
		push(st.Scroll.Render(fmt.Sprintf("↓ (%d more below)", vs.Below)), panelID)
	}
	if vs.NoResults != "" {
		push(st.NoResults.Render(vs.NoResults), panelID)
	}

	texts := make([]string, len(lines))
	for i, ln := range lines {
		texts[i] = ln.text
	}

	style = style.Width(inner)
	if vs.Closing {
		style = style.Inherit(st.Closing)
	}
	top := l.add(style.Render(strings.Join(texts, "\n")), panelID)

	// content starts one cell in, below the top border
	for i, ln := range lines {
		if ln.id != panelID {
			l.mark(ln.id, 1, top+1+i, inner)
		}
	}
}
