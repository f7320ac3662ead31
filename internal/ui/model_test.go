package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
	"multiselect/internal/i18n"
	"multiselect/internal/lifecycle"
	"multiselect/internal/ui/multiselect"
)

type app struct {
	m     *Model
	bus   eventbus.EventBus
	clock *lifecycle.ManualScheduler
	a, b  *multiselect.Model
}

func newApp(t *testing.T) *app {
	t.Helper()
	bus := eventbus.New(nil)
	clock := lifecycle.NewManualScheduler()
	root := domain.NewElement("document", nil)

	widget := func(id string, opts ...string) *multiselect.Model {
		values := make([]interface{}, len(opts))
		for i, o := range opts {
			values[i] = o
		}
		w, err := multiselect.New(values, multiselect.Config{ID: id, SelectAll: true, Search: true},
			multiselect.WithBus(bus), multiselect.WithScheduler(clock), multiselect.WithParent(root))
		require.NoError(t, err)
		return w
	}

	a := widget("cities", "Paris", "Lyon")
	b := widget("tags", "go", "rust")
	m := NewModel(Options{Bus: bus, Root: root},
		Section{Title: "Villes", Widget: a},
		Section{Title: "Tags", Widget: b},
	)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m.View()
	return &app{m: m, bus: bus, clock: clock, a: a, b: b}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestFirstSectionFocused(t *testing.T) {
	a := newApp(t)
	assert.True(t, a.a.Focused())
	assert.False(t, a.b.Focused())

	a.m.Update(key(tea.KeyTab))
	assert.False(t, a.a.Focused())
	assert.True(t, a.b.Focused())

	a.m.Update(key(tea.KeyShiftTab))
	assert.True(t, a.a.Focused())
}

func TestEscapeReachesDocument(t *testing.T) {
	a := newApp(t)
	a.m.Update(key(tea.KeyEnter))
	require.Equal(t, lifecycle.Open, a.a.State())

	a.m.Update(key(tea.KeyEsc))
	assert.Equal(t, lifecycle.Closing, a.a.State())

	a.clock.Advance(lifecycle.DefaultDelay)
	assert.Equal(t, lifecycle.Closed, a.a.State())
}

func TestMouseOpensAndOutsideClickCloses(t *testing.T) {
	a := newApp(t)
	x := a.m.layout.Left + 1
	y := a.m.layout.Tops[1] + 1

	a.m.Update(click(x, y))
	assert.Equal(t, lifecycle.Open, a.b.State())
	assert.True(t, a.b.Focused())
	assert.False(t, a.a.Focused())

	a.m.View()
	a.m.Update(click(0, 0))
	assert.Equal(t, lifecycle.Closing, a.b.State())
}

func TestClickOnOtherTriggerSwitches(t *testing.T) {
	a := newApp(t)
	a.m.Update(key(tea.KeyEnter))
	require.Equal(t, lifecycle.Open, a.a.State())

	// the open panel pushes the second widget down
	a.m.View()
	a.m.Update(click(a.m.layout.Left+1, a.m.layout.Tops[1]+1))
	assert.Equal(t, lifecycle.Closing, a.a.State())
	assert.Equal(t, lifecycle.Open, a.b.State())
}

func TestResultsAndStatus(t *testing.T) {
	a := newApp(t)
	a.b.Toggle(domain.StringID("rust"))

	results := a.m.Results()
	require.Len(t, results, 2)
	assert.Equal(t, "Villes", results[0].Name)
	assert.Empty(t, results[0].Selected)
	assert.Equal(t, []domain.ID{domain.StringID("rust")}, results[1].Selected)
	assert.Contains(t, a.m.View(), "Tags: [rust]")
}

func TestQKeyQuitsUnlessTyping(t *testing.T) {
	a := newApp(t)
	a.m.Update(key(tea.KeyEnter))
	a.m.Update(runes("/"))
	require.True(t, a.a.Typing())

	a.m.Update(runes("q"))
	assert.Equal(t, "q", a.a.Search())
	assert.NotEmpty(t, a.m.View())

	a.m.Update(key(tea.KeyEsc))
	_, cmd := a.m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "", a.m.View())
}

func TestCloseReleasesEverything(t *testing.T) {
	a := newApp(t)
	a.m.Update(key(tea.KeyEnter))
	a.m.Close()
	assert.Equal(t, lifecycle.Closed, a.a.State())
	assert.Equal(t, 0, a.bus.HandlerCount(eventbus.EventKeyDown))
	assert.Equal(t, 0, a.bus.HandlerCount(eventbus.EventSelectionChanged))
	assert.Equal(t, 0, a.clock.Pending())
}

func TestEventMsgPublishes(t *testing.T) {
	a := newApp(t)
	a.a.Activate()
	a.m.Update(EventMsg{Event: domain.ClickEvent{Target: a.m.root}})
	assert.Equal(t, lifecycle.Closing, a.a.State())
	a.clock.Advance(time.Second)
	assert.Equal(t, lifecycle.Closed, a.a.State())
}

func TestKeyReference(t *testing.T) {
	loc := i18n.MustNew("fr")
	md := KeyReference(loc)
	assert.Contains(t, md, "# Sélection multiple")
	assert.Contains(t, md, "`esc`")

	out, err := RenderKeyReference(loc, 80, "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "shift+tab")
}
