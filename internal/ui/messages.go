package ui

import (
	"multiselect/internal/eventbus"
)

// EventMsg wraps a document event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}
