package selection

import (
	"io"

	"github.com/charmbracelet/log"

	"multiselect/internal/domain"
)

// Service handles selection logic
type Service struct {
	set      *Set
	onChange func([]domain.ID) // host notification, called once per mutation
	logger   *log.Logger
}

// NewService creates a new selection service seeded with ids
func NewService(logger *log.Logger, seed ...domain.ID) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		set:    NewSet(seed...),
		logger: logger,
	}
}

// SetChangeHandler sets the function notified after every mutation
func (s *Service) SetChangeHandler(fn func([]domain.ID)) {
	s.onChange = fn
}

// Seed replaces the selection without notifying. Used for external changes
// coming from the host.
func (s *Service) Seed(ids []domain.ID) {
	s.set = NewSet(ids...)
}

// Toggle adds id if absent and removes it if present
func (s *Service) Toggle(id domain.ID) {
	if !s.set.Remove(id) {
		s.set.Add(id)
	}
	s.logger.Debug("toggled", "id", id.String(), "total", s.set.Len())
	s.notify()
}

// IsAllSelected reports whether every visible id is selected.
// An empty visible set is never all selected.
func (s *Service) IsAllSelected(visible []domain.ID) bool {
	if len(visible) == 0 {
		return false
	}
	for _, id := range visible {
		if !s.set.Has(id) {
			return false
		}
	}
	return true
}

// SelectAll selects every visible id, or deselects them all when they are
// already all selected. Ids outside visible are left untouched.
func (s *Service) SelectAll(visible []domain.ID) {
	if s.IsAllSelected(visible) {
		for _, id := range visible {
			s.set.Remove(id)
		}
		s.logger.Debug("deselected visible", "count", len(visible), "total", s.set.Len())
	} else {
		for _, id := range visible {
			s.set.Add(id)
		}
		s.logger.Debug("selected visible", "count", len(visible), "total", s.set.Len())
	}
	s.notify()
}

// IsSelected checks if an id is selected
func (s *Service) IsSelected(id domain.ID) bool {
	return s.set.Has(id)
}

// Selected returns the selection in insertion order
func (s *Service) Selected() []domain.ID {
	return s.set.Slice()
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return s.set.Len()
}

func (s *Service) notify() {
	if s.onChange != nil {
		s.onChange(s.set.Slice())
	}
}
