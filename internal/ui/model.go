package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
	"multiselect/internal/i18n"
	"multiselect/internal/ui/multiselect"
	"multiselect/internal/ui/views"
)

// maxWidgetWidth caps the trigger width on wide terminals
const maxWidgetWidth = 60

// Section is a titled widget on the screen
type Section struct {
	Title  string
	Widget *multiselect.Model
}

// Result is the final selection of one section
type Result struct {
	Name     string
	Selected []domain.ID
}

// Options wires the host to its document
type Options struct {
	Bus       eventbus.EventBus
	Root      *domain.Element // document root, the target of clicks on empty space
	Localizer *i18n.Localizer
	Logger    *log.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	root   *domain.Element
	loc    *i18n.Localizer
	logger *log.Logger

	sections []Section
	focus    int

	width  int
	height int
	help   help.Model

	renderer *views.Renderer
	layout   views.Layout

	status    string
	statusErr bool
	quitting  bool

	unsubscribe []func()
}

// NewModel creates a new UI model. Every widget must use opts.Bus.
func NewModel(opts Options, sections ...Section) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Bus == nil {
		opts.Bus = eventbus.New(opts.Logger)
	}
	if opts.Root == nil {
		opts.Root = domain.NewElement("document", nil)
	}
	if opts.Localizer == nil {
		opts.Localizer = i18n.MustNew(i18n.DefaultLang)
	}

	m := &Model{
		bus:      opts.Bus,
		root:     opts.Root,
		loc:      opts.Localizer,
		logger:   opts.Logger,
		sections: sections,
		help:     help.New(),
		renderer: views.NewRenderer(),
	}

	m.unsubscribe = []func(){
		m.bus.Subscribe(eventbus.EventSelectionChanged, m.handleSelectionChanged),
		m.bus.Subscribe(eventbus.EventVisibilityChanged, m.handleVisibilityChanged),
	}

	if len(sections) > 0 {
		sections[0].Widget.Focus()
	}
	return m
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sections))
	for _, s := range m.sections {
		cmds = append(cmds, s.Widget.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		w := msg.Width - 4
		if w > maxWidgetWidth {
			w = maxWidgetWidth
		}
		for _, s := range m.sections {
			s.Widget.SetWidth(w)
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Error("help pager failed", "error", msg.err)
			m.setStatus(fmt.Sprintf("help: %v", msg.err), true)
		}
		return m, nil

	case EventMsg:
		m.bus.Publish(msg.Event)
		return m, m.flush()
	}

	// close ticks and cursor blinks
	cmds := make([]tea.Cmd, 0, len(m.sections))
	for _, s := range m.sections {
		_, cmd := s.Widget.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := make([]views.SectionView, len(m.sections))
	for i, s := range m.sections {
		sections[i] = views.SectionView{
			Title:   s.Title,
			Body:    s.Widget.View(),
			Focused: i == m.focus,
		}
	}

	state := views.ViewState{
		Width:       m.width,
		Height:      m.height,
		Title:       m.loc.T(i18n.AppTitle),
		Sections:    sections,
		Status:      m.status,
		StatusError: m.statusErr,
		QuitHint:    m.loc.T(i18n.AppQuitHint),
	}
	if w := m.focused(); w != nil {
		state.Help = m.help.View(w.KeyMap())
	}

	out, layout := m.renderer.Render(state)
	m.layout = layout
	return out
}

// Results returns the selection of every section, in screen order
func (m *Model) Results() []Result {
	out := make([]Result, len(m.sections))
	for i, s := range m.sections {
		out[i] = Result{Name: s.Title, Selected: s.Widget.Selected()}
	}
	return out
}

// Close tears down every widget and drops the host subscriptions
func (m *Model) Close() {
	for _, s := range m.sections {
		s.Widget.Teardown()
	}
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

func (m *Model) focused() *multiselect.Model {
	if m.focus < 0 || m.focus >= len(m.sections) {
		return nil
	}
	return m.sections[m.focus].Widget
}

func (m *Model) setFocus(i int) {
	if i == m.focus || i < 0 || i >= len(m.sections) {
		return
	}
	if w := m.focused(); w != nil {
		w.Blur()
	}
	m.focus = i
	m.sections[i].Widget.Focus()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	w := m.focused()
	typing := w != nil && w.Typing()

	switch {
	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	case !typing && msg.String() == "q":
		m.quitting = true
		return tea.Quit
	case !typing && msg.String() == "?":
		return showHelp(m.loc, m.width)
	case msg.Type == tea.KeyTab && len(m.sections) > 0:
		m.setFocus((m.focus + 1) % len(m.sections))
		return nil
	case msg.Type == tea.KeyShiftTab && len(m.sections) > 0:
		m.setFocus((m.focus - 1 + len(m.sections)) % len(m.sections))
		return nil
	}

	cmds := []tea.Cmd{}
	if w != nil {
		_, cmd := w.Update(msg)
		cmds = append(cmds, cmd)
	}
	// every key reaches the document, after the focused widget
	m.bus.Publish(domain.KeyDownEvent{Key: msg.String()})
	cmds = append(cmds, m.flush())
	return tea.Batch(cmds...)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	target, owner := m.elementAt(msg.X, msg.Y)
	cmds := []tea.Cmd{}
	if owner >= 0 {
		m.setFocus(owner)
		cmds = append(cmds, m.sections[owner].Widget.Click(target))
	}
	m.bus.Publish(domain.ClickEvent{Target: target})
	cmds = append(cmds, m.flush())
	return tea.Batch(cmds...)
}

// elementAt maps a screen cell to an element and the section owning it.
// Cells outside every widget belong to the document root.
func (m *Model) elementAt(x, y int) (*domain.Element, int) {
	for i, s := range m.sections {
		if i >= len(m.layout.Tops) {
			break
		}
		if el := s.Widget.ElementAt(x-m.layout.Left, y-m.layout.Tops[i]); el != nil {
			return el, i
		}
	}
	return m.root, -1
}

// flush collects the close ticks scheduled by document listeners
func (m *Model) flush() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sections))
	for _, s := range m.sections {
		cmds = append(cmds, s.Widget.Flush())
	}
	return tea.Batch(cmds...)
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func (m *Model) handleSelectionChanged(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.SelectionChangedEvent)
	if !ok {
		return
	}
	name := ev.Source
	for _, s := range m.sections {
		if s.Widget.ID() == ev.Source {
			name = s.Title
			break
		}
	}
	ids := make([]string, len(ev.Selected))
	for i, id := range ev.Selected {
		ids[i] = id.String()
	}
	m.logger.Debug("selection changed", "widget", ev.Source, "selected", ids)
	m.setStatus(fmt.Sprintf("%s: [%s]", name, strings.Join(ids, ", ")), false)
}

func (m *Model) handleVisibilityChanged(e eventbus.DomainEvent) {
	if ev, ok := e.(eventbus.VisibilityChangedEvent); ok {
		m.logger.Debug("visibility changed", "widget", ev.Source, "from", ev.From, "to", ev.To)
	}
}
