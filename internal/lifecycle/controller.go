// Package lifecycle implements the open/closing/closed state machine of a
// dropdown panel.
//
// While Open, the controller holds exactly one registration of two document
// subscriptions (outside click and escape key). The registration is released
// synchronously on any transition out of Open and on Teardown. Leaving Open
// schedules a single deferred Closing -> Closed transition; re-opening
// cancels it.
package lifecycle

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"multiselect/internal/domain"
	"multiselect/internal/eventbus"
)

// Visibility is the panel state
type Visibility int

const (
	Closed Visibility = iota
	Open
	Closing // still mounted, waiting for the close delay
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// DefaultDelay is how long a closing panel stays mounted
const DefaultDelay = 300 * time.Millisecond

// Options configures a Controller
type Options struct {
	ID       string                   // reported as Source in published events
	Delay    time.Duration            // close delay, DefaultDelay when zero
	Measure  func() int               // trigger width, captured on open
	Observer func(from, to Visibility) // called after every transition
	Logger   *log.Logger
}

// Controller owns the visibility state of one panel
type Controller struct {
	opts    Options
	state   Visibility
	doc     eventbus.EventBus
	sched   Scheduler
	trigger *domain.Element
	panel   *domain.Element
	width   int
	reg     *registration
	pending Timer
	gen     int // identifies the current pending close
	logger  *log.Logger
}

// registration is the scope of the document subscriptions held while Open
type registration struct {
	unsubscribe []func()
}

func (r *registration) release() {
	for _, unsub := range r.unsubscribe {
		unsub()
	}
	r.unsubscribe = nil
}

// New creates a closed controller. trigger and panel form the inside region
// for outside-click detection.
func New(doc eventbus.EventBus, sched Scheduler, trigger, panel *domain.Element, opts Options) *Controller {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		opts:    opts,
		state:   Closed,
		doc:     doc,
		sched:   sched,
		trigger: trigger,
		panel:   panel,
		logger:  logger,
	}
}

// State returns the current visibility
func (c *Controller) State() Visibility {
	return c.state
}

// Expanded reports whether the panel is open and interactive
func (c *Controller) Expanded() bool {
	return c.state == Open
}

// Mounted reports whether the panel should be rendered
func (c *Controller) Mounted() bool {
	return c.state != Closed
}

// Width returns the trigger width captured on the last open
func (c *Controller) Width() int {
	return c.width
}

// Listening reports whether the document subscriptions are attached
func (c *Controller) Listening() bool {
	return c.reg != nil
}

// ClosePending reports whether a deferred close is scheduled
func (c *Controller) ClosePending() bool {
	return c.pending != nil
}

// Activate handles activation of the trigger
func (c *Controller) Activate() {
	if c.state == Open {
		c.Close()
		return
	}
	c.Open()
}

// Open shows the panel. Re-opening while closing cancels the pending close.
func (c *Controller) Open() {
	if c.state == Open {
		return
	}
	c.cancelPending()
	if c.opts.Measure != nil {
		c.width = c.opts.Measure()
	}
	c.attach()
	c.set(Open)
}

// Close starts the close transition. The document subscriptions are
// released immediately; the panel unmounts after the delay.
func (c *Controller) Close() {
	if c.state != Open {
		return
	}
	c.detach()
	c.cancelPending()

	c.gen++
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.opts.Delay, func() { c.expire(gen) })
	c.set(Closing)
}

// Teardown releases everything held by the controller. Call it when the
// widget is destroyed, whatever its state.
func (c *Controller) Teardown() {
	c.detach()
	c.cancelPending()
	if c.state != Closed {
		c.set(Closed)
	}
}

func (c *Controller) expire(gen int) {
	// A superseded timer that slipped past Stop must not close a newer state
	if gen != c.gen || c.state != Closing {
		return
	}
	c.pending = nil
	c.set(Closed)
}

func (c *Controller) attach() {
	if c.reg != nil {
		return
	}
	c.reg = &registration{
		unsubscribe: []func(){
			c.doc.Subscribe(eventbus.EventClick, c.handleClick),
			c.doc.Subscribe(eventbus.EventKeyDown, c.handleKeyDown),
		},
	}
}

func (c *Controller) detach() {
	if c.reg == nil {
		return
	}
	c.reg.release()
	c.reg = nil
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.Stop()
	c.pending = nil
	c.gen++
}

func (c *Controller) handleClick(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.ClickEvent)
	if !ok || c.state != Open {
		return
	}
	if c.trigger.Contains(ev.Target) || c.panel.Contains(ev.Target) {
		return
	}
	c.logger.Debug("outside click", "id", c.opts.ID, "target", targetID(ev.Target))
	c.Close()
}

func (c *Controller) handleKeyDown(e eventbus.DomainEvent) {
	ev, ok := e.(eventbus.KeyDownEvent)
	if !ok || c.state != Open {
		return
	}
	if ev.Key == domain.KeyEscape {
		c.Close()
	}
}

func (c *Controller) set(to Visibility) {
	from := c.state
	c.state = to
	c.logger.Debug("visibility", "id", c.opts.ID, "from", from, "to", to)
	if c.opts.Observer != nil {
		c.opts.Observer(from, to)
	}
	c.doc.Publish(eventbus.VisibilityChangedEvent{
		Source: c.opts.ID,
		From:   from.String(),
		To:     to.String(),
	})
}

func targetID(el *domain.Element) string {
	if el == nil {
		return ""
	}
	return el.ID
}
