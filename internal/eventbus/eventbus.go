package eventbus

import (
	"io"
	"runtime/debug"
	"sync"

	"github.com/charmbracelet/log"

	"multiselect/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventClick             = domain.EventClick
	EventKeyDown           = domain.EventKeyDown
	EventSelectionChanged  = domain.EventSelectionChanged
	EventVisibilityChanged = domain.EventVisibilityChanged
)

// Re-export domain event types
type ClickEvent = domain.ClickEvent
type KeyDownEvent = domain.KeyDownEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type VisibilityChangedEvent = domain.VisibilityChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the document every widget listens on. Publish dispatches
// synchronously on the caller's goroutine, so a whole event turn (handler
// side effects included) completes before Publish returns.
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	HandlerCount(eventType EventType) int
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	logger   *log.Logger
}

// New creates a new event bus. A nil logger discards output.
func New(logger *log.Logger) EventBus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &bus{
		handlers: make(map[EventType][]subscription),
		logger:   logger,
	}
}

// Publish delivers an event to every handler subscribed at the time of the call
func (b *bus) Publish(event DomainEvent) {
	// Snapshot so handlers may unsubscribe (or subscribe) while we dispatch
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	switch event.Type() {
	case EventClick, EventKeyDown:
		// Too frequent to be useful
	default:
		b.logger.Debug("publishing event", "type", event.Type(), "handlers", len(subs))
	}

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function; calling it more than once is a no-op.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			subs := b.handlers[eventType]
			for i, s := range subs {
				if s.id == id {
					// Copy rather than append in place: a dispatch may hold the old slice
					next := make([]subscription, 0, len(subs)-1)
					next = append(next, subs[:i]...)
					next = append(next, subs[i+1:]...)
					b.handlers[eventType] = next
					break
				}
			}
			if len(b.handlers[eventType]) == 0 {
				delete(b.handlers, eventType)
			}
		})
	}
}

// HandlerCount returns the number of live subscriptions for an event type
func (b *bus) HandlerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
