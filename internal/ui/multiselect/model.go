// Package multiselect is a dropdown multi-selection widget for Bubble Tea.
//
// The widget is a trigger that opens a panel with an optional select-all
// button, an optional search input and one checkbox per visible option.
// It reports the selection to its host through Config.OnChange and a
// SelectionChangedEvent on the document bus. Outside clicks and the escape
// key reach it through the same bus, published by the host.
package multiselect

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
	"multiselect/internal/filter"
	"multiselect/internal/i18n"
	"multiselect/internal/lifecycle"
	"multiselect/internal/option"
	"multiselect/internal/selection"
)

// DefaultWidth is the trigger width when the host does not set one
const DefaultWidth = 40

// Element id suffixes
const (
	containerSuffix = "-container"
	panelSuffix     = "-collapse"
	selectAllSuffix = "-select-all"
	searchSuffix    = "-search"
	checkboxSuffix  = "-checkbox"
)

type focusKind int

const (
	focusTrigger focusKind = iota
	focusSelectAll
	focusSearch
	focusRow
)

// cursor is the keyboard position. row indexes the visible options.
type cursor struct {
	kind focusKind
	row  int
}

// Model is one multiselect widget
type Model struct {
	id     string
	cfg    Config
	bus    eventbus.EventBus
	logger *log.Logger
	loc    *i18n.Localizer
	sched  lifecycle.Scheduler
	ticks  *tickScheduler // nil when the host supplied a scheduler
	styles *Styles
	keys   KeyMap
	width  int

	norm    option.Normalizer
	raw     []interface{}
	entries []option.Entry

	// derived by refresh
	visible     []int // positions into entries
	visibleIDs  []domain.ID
	allSelected bool

	selection *selection.Service
	ctrl      *lifecycle.Controller
	search    textinput.Model

	parent      *domain.Element
	container   *domain.Element
	trigger     *domain.Element
	panel       *domain.Element
	selectAllEl *domain.Element
	searchEl    *domain.Element
	checkboxes  map[domain.ID]*domain.Element
	elements    map[string]*domain.Element

	focused bool
	cur     cursor
	offset  int
	regions []region
}

// New creates a closed widget. Options that do not resolve to an
// identifier and a label are rejected before anything is built.
func New(options []interface{}, cfg Config, opts ...Option) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	norm := option.NewNormalizer(cfg.IDField, cfg.LabelField)
	entries, err := norm.Normalize(options)
	if err != nil {
		return nil, err
	}

	m := &Model{
		cfg:   cfg,
		keys:  DefaultKeyMap(),
		width: DefaultWidth,
		norm:  norm,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.bus == nil {
		m.bus = eventbus.New(m.logger)
	}
	if m.loc == nil {
		m.loc = i18n.MustNew(i18n.DefaultLang)
	}
	if m.styles == nil {
		m.styles = NewStyles()
	}

	m.id = cfg.ID
	if m.id == "" {
		m.id = newID()
	}
	m.cfg.ID = m.id
	if m.sched == nil {
		m.ticks = newTickScheduler(m.id)
		m.sched = m.ticks
	}

	m.container = domain.NewElement(m.id+containerSuffix, m.parent)
	m.trigger = domain.NewElement(m.id, m.container)
	m.panel = domain.NewElement(m.id+panelSuffix, m.container)
	m.selectAllEl = domain.NewElement(m.id+selectAllSuffix, m.panel)
	m.searchEl = domain.NewElement(m.id+searchSuffix, m.panel)
	m.elements = make(map[string]*domain.Element)
	for _, el := range []*domain.Element{m.container, m.trigger, m.panel, m.selectAllEl, m.searchEl} {
		m.elements[el.ID] = el
	}

	m.search = textinput.New()
	m.search.Prompt = "⌕ "
	m.search.Placeholder = m.loc.T(i18n.SearchHolder)

	m.selection = selection.NewService(m.logger, cfg.Value...)
	m.selection.SetChangeHandler(m.selectionChanged)

	m.ctrl = lifecycle.New(m.bus, m.sched, m.trigger, m.panel, lifecycle.Options{
		ID:       m.id,
		Delay:    cfg.CloseDelay,
		Measure:  m.measure,
		Observer: m.visibilityChanged,
		Logger:   m.logger,
	})

	m.setEntries(options, entries)
	m.logger.Debug("widget created", "id", m.id, "options", len(entries))
	return m, nil
}

// ID returns the element id prefix
func (m *Model) ID() string { return m.id }

// Trigger returns the trigger element
func (m *Model) Trigger() *domain.Element { return m.trigger }

// Panel returns the panel element
func (m *Model) Panel() *domain.Element { return m.panel }

// Container returns the element holding the whole widget
func (m *Model) Container() *domain.Element { return m.container }

// State returns the panel visibility
func (m *Model) State() lifecycle.Visibility { return m.ctrl.State() }

// Selected returns the selection in insertion order
func (m *Model) Selected() []domain.ID { return m.selection.Selected() }

// Visible returns the identifiers of the options matching the search
func (m *Model) Visible() []domain.ID {
	return append([]domain.ID(nil), m.visibleIDs...)
}

// AllSelected reports whether every visible option is selected
func (m *Model) AllSelected() bool { return m.allSelected }

// Search returns the search text
func (m *Model) Search() string { return m.search.Value() }

// KeyMap returns the key bindings, for help rendering
func (m *Model) KeyMap() KeyMap { return m.keys }

// SetOptions replaces the options. On error nothing changes.
func (m *Model) SetOptions(options []interface{}) error {
	entries, err := m.norm.Normalize(options)
	if err != nil {
		return err
	}
	m.setEntries(options, entries)
	return nil
}

// SetConfig replaces the host configuration. The id and close delay are
// fixed at construction and kept. On error nothing changes.
func (m *Model) SetConfig(cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	norm := option.NewNormalizer(cfg.IDField, cfg.LabelField)
	entries, err := norm.Normalize(m.raw)
	if err != nil {
		return err
	}
	cfg.ID = m.id
	m.cfg = cfg
	m.norm = norm
	m.setEntries(m.raw, entries)
	return nil
}

// SetValue replaces the selection from outside. The host is not notified.
func (m *Model) SetValue(ids []domain.ID) {
	m.selection.Seed(ids)
	m.allSelected = m.selection.IsAllSelected(m.visibleIDs)
}

// SetSearch replaces the search text
func (m *Model) SetSearch(s string) {
	m.search.SetValue(s)
	m.refresh()
}

// SetWidth sets the trigger width. An open panel keeps the width it was
// opened with.
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.width = w
	}
}

// Focus gives the widget keyboard focus
func (m *Model) Focus() {
	m.focused = true
	if m.cur.kind == focusSearch {
		m.search.Focus()
	}
}

// Blur removes keyboard focus
func (m *Model) Blur() {
	m.focused = false
	m.search.Blur()
}

// Focused reports whether the widget has keyboard focus
func (m *Model) Focused() bool { return m.focused }

// Typing reports whether keys go to the search input
func (m *Model) Typing() bool {
	return m.focused && m.cur.kind == focusSearch && m.ctrl.Expanded()
}

// Activate is a trigger activation: opens, or starts closing
func (m *Model) Activate() tea.Cmd {
	m.ctrl.Activate()
	return m.Flush()
}

// Toggle flips one option
func (m *Model) Toggle(id domain.ID) {
	m.selection.Toggle(id)
}

// ToggleAll runs the select-all button. It does nothing while no option
// is visible.
func (m *Model) ToggleAll() {
	if len(m.visibleIDs) == 0 {
		return
	}
	m.selection.SelectAll(m.visibleIDs)
}

// Click performs the activation of el. Panel elements only react while
// the panel is open.
func (m *Model) Click(el *domain.Element) tea.Cmd {
	if el == nil {
		return nil
	}
	if el == m.trigger {
		m.cur = cursor{kind: focusTrigger}
		return m.Activate()
	}
	if !m.ctrl.Expanded() || el == m.panel || !m.panel.Contains(el) {
		return nil
	}

	switch el {
	case m.selectAllEl:
		if !m.cfg.SelectAll {
			return nil
		}
		m.cur = cursor{kind: focusSelectAll}
		m.ToggleAll()
	case m.searchEl:
		if m.cfg.Search {
			return m.focusSearch()
		}
	default:
		for pos, id := range m.visibleIDs {
			if m.checkboxes[id] == el {
				m.setCursor(cursor{kind: focusRow, row: pos})
				m.selection.Toggle(id)
				break
			}
		}
	}
	return nil
}

// ElementAt returns the element drawn at column x, line y of the last
// View, or nil when the cell is outside the widget
func (m *Model) ElementAt(x, y int) *domain.Element {
	for i := len(m.regions) - 1; i >= 0; i-- {
		if m.regions[i].contains(x, y) {
			return m.elements[m.regions[i].id]
		}
	}
	return nil
}

// Flush returns the close ticks scheduled outside Update, for instance by
// a document listener. Hosts call it after publishing on the bus.
func (m *Model) Flush() tea.Cmd {
	if m.ticks == nil {
		return nil
	}
	return m.ticks.drain()
}

// Teardown unmounts the widget and releases its document listeners
func (m *Model) Teardown() {
	m.ctrl.Teardown()
	m.search.Blur()
	m.logger.Debug("widget torn down", "id", m.id)
}

// Init starts nothing; the widget is driven by its host
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case closeDueMsg:
		if m.ticks != nil {
			m.ticks.fire(msg)
		}
		return m, m.Flush()

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.Flush())
	}

	if m.cur.kind == focusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the widget and records its layout for ElementAt
func (m *Model) View() string {
	out, regions := render(m.ViewState(), m.styles)
	m.regions = regions
	return out
}

// ViewState returns the current projection of the widget
func (m *Model) ViewState() ViewState {
	return buildViewState(m)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.cur.kind == focusSearch && msg.Type != tea.KeyUp && msg.Type != tea.KeyDown {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab:
			return nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.refresh()
		}
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return m.move(-1)
	case key.Matches(msg, m.keys.Down):
		return m.move(1)
	case key.Matches(msg, m.keys.Search):
		if m.ctrl.Expanded() && m.cfg.Search {
			return m.focusSearch()
		}
	case key.Matches(msg, m.keys.Activate):
		return m.activateCursor()
	}
	return nil
}

func (m *Model) activateCursor() tea.Cmd {
	switch m.cur.kind {
	case focusTrigger:
		return m.Activate()
	case focusSelectAll:
		m.ToggleAll()
	case focusRow:
		m.selection.Toggle(m.visibleIDs[m.cur.row])
	}
	return nil
}

// targets lists the keyboard stops in display order
func (m *Model) targets() []cursor {
	out := []cursor{{kind: focusTrigger}}
	if !m.ctrl.Expanded() {
		return out
	}
	if m.cfg.SelectAll && len(m.visibleIDs) > 0 {
		out = append(out, cursor{kind: focusSelectAll})
	}
	if m.cfg.Search {
		out = append(out, cursor{kind: focusSearch})
	}
	for pos := range m.visibleIDs {
		out = append(out, cursor{kind: focusRow, row: pos})
	}
	return out
}

func (m *Model) move(delta int) tea.Cmd {
	targets := m.targets()
	at := 0
	for i, t := range targets {
		if t == m.cur {
			at = i
			break
		}
	}
	at += delta
	if at < 0 {
		at = 0
	}
	if at >= len(targets) {
		at = len(targets) - 1
	}

	next := targets[at]
	if next.kind == focusSearch {
		return m.focusSearch()
	}
	m.setCursor(next)
	return nil
}

func (m *Model) focusSearch() tea.Cmd {
	m.cur = cursor{kind: focusSearch}
	return m.search.Focus()
}

func (m *Model) setCursor(c cursor) {
	if m.cur.kind == focusSearch && c.kind != focusSearch {
		m.search.Blur()
	}
	m.cur = c
	m.scroll()
}

// window returns the visible positions currently rendered
func (m *Model) window() (int, int) {
	n := len(m.visible)
	if m.cfg.MaxVisibleRows <= 0 || n <= m.cfg.MaxVisibleRows {
		return 0, n
	}
	end := m.offset + m.cfg.MaxVisibleRows
	if end > n {
		end = n
	}
	return m.offset, end
}

// scroll keeps the cursor row inside the window
func (m *Model) scroll() {
	rows := m.cfg.MaxVisibleRows
	n := len(m.visible)
	if rows <= 0 || n <= rows {
		m.offset = 0
		return
	}
	if m.cur.kind == focusRow {
		if m.cur.row < m.offset {
			m.offset = m.cur.row
		}
		if m.cur.row >= m.offset+rows {
			m.offset = m.cur.row - rows + 1
		}
	}
	if m.offset > n-rows {
		m.offset = n - rows
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) setEntries(raw []interface{}, entries []option.Entry) {
	for _, el := range m.checkboxes {
		delete(m.elements, el.ID)
	}
	m.raw = raw
	m.entries = entries
	m.checkboxes = make(map[domain.ID]*domain.Element, len(entries))
	for _, e := range entries {
		if _, ok := m.checkboxes[e.ID]; ok {
			continue
		}
		el := domain.NewElement(m.id+"-"+e.ID.String()+checkboxSuffix, m.panel)
		m.checkboxes[e.ID] = el
		m.elements[el.ID] = el
	}
	m.refresh()
}

// refresh recomputes everything derived from the options, the search text
// and the selection
func (m *Model) refresh() {
	m.visible = filter.Indices(m.raw, m.search.Value(), m.cfg.FilteringFields)
	m.visibleIDs = make([]domain.ID, len(m.visible))
	for i, pos := range m.visible {
		m.visibleIDs[i] = m.entries[pos].ID
	}
	m.allSelected = m.selection.IsAllSelected(m.visibleIDs)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	switch {
	case !m.ctrl.Expanded():
		m.cur = cursor{kind: focusTrigger}
	case m.cur.kind == focusSelectAll && len(m.visibleIDs) == 0:
		m.cur = m.fallbackCursor()
	case m.cur.kind == focusRow && m.cur.row >= len(m.visibleIDs):
		if len(m.visibleIDs) > 0 {
			m.cur.row = len(m.visibleIDs) - 1
		} else {
			m.cur = m.fallbackCursor()
		}
	}
	m.scroll()
}

func (m *Model) fallbackCursor() cursor {
	if m.cfg.Search {
		m.search.Focus()
		return cursor{kind: focusSearch}
	}
	return cursor{kind: focusTrigger}
}

func (m *Model) selectionChanged(ids []domain.ID) {
	m.allSelected = m.selection.IsAllSelected(m.visibleIDs)
	m.bus.Publish(domain.SelectionChangedEvent{Source: m.id, Selected: ids})
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(ids)
	}
}

// measure is the trigger width as rendered now
func (m *Model) measure() int {
	return lipgloss.Width(renderTrigger(buildViewState(m), m.styles))
}

func (m *Model) visibilityChanged(from, to lifecycle.Visibility) {
	if to == lifecycle.Open {
		m.offset = 0
		w := m.ctrl.Width() - m.styles.Panel.GetHorizontalFrameSize() - lipgloss.Width(m.search.Prompt) - 1
		if w > 0 {
			m.search.Width = w
		}
		return
	}
	if from == lifecycle.Open {
		m.search.Blur()
		m.cur = cursor{kind: focusTrigger}
	}
}
