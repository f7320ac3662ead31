package multiselect

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"multiselect/internal/config"
	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
	"multiselect/internal/i18n"
	"multiselect/internal/lifecycle"
)

// Config is what the host tells the widget
type Config struct {
	ID           string // element id prefix, generated when empty
	Label        string
	LabelVisible bool
	Hint         string
	Legend       string

	// ButtonLabel replaces the "N options selected" trigger text
	ButtonLabel string

	SelectAll bool
	// SelectAllLabels are the select and deselect texts. Both empty means
	// localized defaults.
	SelectAllLabels [2]string

	Search          bool
	IDField         string
	LabelField      string
	FilteringFields []string

	MaxVisibleRows int           // 0 shows every row
	CloseDelay     time.Duration // lifecycle.DefaultDelay when zero

	ErrorMessage   string
	SuccessMessage string

	// Value seeds the selection
	Value []domain.ID
	// OnChange receives the full selection after every change made through
	// the widget
	OnChange func([]domain.ID)
}

// FromSettings builds a widget config from the config file section
func FromSettings(s config.WidgetSettings) Config {
	cfg := Config{
		LabelVisible:    s.LabelVisible,
		Hint:            s.Hint,
		Legend:          s.Legend,
		ButtonLabel:     s.ButtonLabel,
		SelectAll:       s.SelectAll,
		Search:          s.Search,
		IDField:         s.IDField,
		LabelField:      s.LabelField,
		FilteringFields: append([]string(nil), s.FilteringFields...),
		MaxVisibleRows:  s.MaxVisibleRows,
		CloseDelay:      s.CloseDelay(),
	}
	if len(s.SelectAllLabels) == 2 {
		cfg.SelectAllLabels = [2]string{s.SelectAllLabels[0], s.SelectAllLabels[1]}
	}
	return cfg
}

func (c Config) validate() error {
	if strings.ContainsAny(c.ID, " \t\n") {
		return fmt.Errorf("invalid widget id %q", c.ID)
	}
	if c.MaxVisibleRows < 0 {
		return fmt.Errorf("max visible rows must not be negative, got %d", c.MaxVisibleRows)
	}
	if c.CloseDelay < 0 {
		return fmt.Errorf("close delay must not be negative, got %s", c.CloseDelay)
	}
	return nil
}

// newID returns a default element id prefix
func newID() string {
	return "multiselect-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Option customizes a Model
type Option func(*Model)

// WithBus sets the document bus shared with the host and other widgets
func WithBus(bus eventbus.EventBus) Option {
	return func(m *Model) { m.bus = bus }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithLocalizer sets the translations used for default labels
func WithLocalizer(l *i18n.Localizer) Option {
	return func(m *Model) { m.loc = l }
}

// WithScheduler replaces the Bubble Tea tick scheduler for the close delay
func WithScheduler(s lifecycle.Scheduler) Option {
	return func(m *Model) { m.sched = s }
}

// WithParent attaches the widget elements under parent in the document tree
func WithParent(parent *domain.Element) Option {
	return func(m *Model) { m.parent = parent }
}

// WithStyles overrides the default styles
func WithStyles(s *Styles) Option {
	return func(m *Model) { m.styles = s }
}

// WithWidth sets the trigger width in cells
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}
