package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventClick             EventType = "Click"
	EventKeyDown           EventType = "KeyDown"
	EventSelectionChanged  EventType = "SelectionChanged"
	EventVisibilityChanged EventType = "VisibilityChanged"
)

// KeyEscape is the key name carried by escape KeyDownEvents
const KeyEscape = "esc"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ClickEvent is published on the document when the user clicks anywhere
type ClickEvent struct {
	Target *Element
}

func (e ClickEvent) Type() EventType { return EventClick }

// KeyDownEvent is published on the document for keys not consumed by a widget
type KeyDownEvent struct {
	Key string
}

func (e KeyDownEvent) Type() EventType { return EventKeyDown }

// SelectionChangedEvent is emitted after every selection mutation
type SelectionChangedEvent struct {
	Source   string // widget id
	Selected []ID   // full selection, insertion order
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// VisibilityChangedEvent is emitted when a widget's panel changes state
type VisibilityChangedEvent struct {
	Source string
	From   string
	To     string
}

func (e VisibilityChangedEvent) Type() EventType { return EventVisibilityChanged }
