package multiselect

import (
	"multiselect/internal/i18n"
	"multiselect/internal/lifecycle"
)

// ViewState contains all the state needed for rendering one widget
type ViewState struct {
	ID      string
	Label   string // empty when the label is not visible
	Hint    string
	Focused bool

	Trigger    string
	Expanded   bool
	Mounted    bool
	Closing    bool
	Width      int // trigger width
	PanelWidth int // trigger width captured when the panel opened

	Legend         string
	NavigationHint string
	SelectAll      *SelectAllState // nil when disabled by config
	Search         *SearchState    // nil when disabled by config
	Rows           []RowState      // the scrolled window of visible options
	Above          int             // visible options scrolled out above
	Below          int
	NoResults      string

	ErrorMessage   string
	SuccessMessage string
}

// SelectAllState is the select-all button
type SelectAllState struct {
	ElementID string
	Label     string
	Disabled  bool
	Focused   bool
}

// SearchState is the search input
type SearchState struct {
	ElementID string
	Value     string
	View      string
	Focused   bool
}

// RowState is one checkbox
type RowState struct {
	ElementID string
	Label     string
	Checked   bool
	Focused   bool
}

// buildViewState projects the widget state. It reads m and never mutates it.
func buildViewState(m *Model) ViewState {
	state := m.ctrl.State()
	vs := ViewState{
		ID:             m.id,
		Hint:           m.cfg.Hint,
		Focused:        m.focused,
		Trigger:        triggerLabel(m.cfg, m.loc, m.selection.Count()),
		Expanded:       state == lifecycle.Open,
		Mounted:        state != lifecycle.Closed,
		Closing:        state == lifecycle.Closing,
		Width:          m.width,
		PanelWidth:     m.ctrl.Width(),
		ErrorMessage:   m.cfg.ErrorMessage,
		SuccessMessage: m.cfg.SuccessMessage,
	}
	if m.cfg.LabelVisible {
		vs.Label = m.cfg.Label
	}
	if !vs.Mounted {
		return vs
	}

	vs.Legend = m.cfg.Legend
	vs.NavigationHint = m.loc.T(i18n.NavigationHint)

	if m.cfg.SelectAll {
		vs.SelectAll = &SelectAllState{
			ElementID: m.selectAllEl.ID,
			Label:     selectAllLabel(m.cfg, m.loc, m.allSelected),
			Disabled:  len(m.visibleIDs) == 0,
			Focused:   m.focused && m.cur.kind == focusSelectAll,
		}
	}
	if m.cfg.Search {
		vs.Search = &SearchState{
			ElementID: m.searchEl.ID,
			Value:     m.search.Value(),
			View:      m.search.View(),
			Focused:   m.focused && m.cur.kind == focusSearch,
		}
	}

	if len(m.visible) == 0 {
		vs.NoResults = m.loc.T(i18n.NoResults)
		return vs
	}

	start, end := m.window()
	vs.Above = start
	vs.Below = len(m.visible) - end
	vs.Rows = make([]RowState, 0, end-start)
	for pos := start; pos < end; pos++ {
		entry := m.entries[m.visible[pos]]
		vs.Rows = append(vs.Rows, RowState{
			ElementID: m.checkboxes[entry.ID].ID,
			Label:     entry.Label,
			Checked:   m.selection.IsSelected(entry.ID),
			Focused:   m.focused && m.cur == cursor{kind: focusRow, row: pos},
		})
	}
	return vs
}

// triggerLabel is the host label, or the localized count of selected options
func triggerLabel(cfg Config, loc *i18n.Localizer, count int) string {
	if cfg.ButtonLabel != "" {
		return cfg.ButtonLabel
	}
	if count == 0 {
		return loc.T(i18n.ButtonNone)
	}
	return loc.Plural(i18n.ButtonSelected, count)
}

func selectAllLabel(cfg Config, loc *i18n.Localizer, allSelected bool) string {
	labels := cfg.SelectAllLabels
	if labels[0] == "" && labels[1] == "" {
		labels = [2]string{loc.T(i18n.SelectAll), loc.T(i18n.DeselectAll)}
	}
	if allSelected {
		return labels[1]
	}
	return labels[0]
}
