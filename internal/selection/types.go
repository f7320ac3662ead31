package selection

import "multiselect/internal/domain"

// Set is an insertion-ordered set of identifiers
type Set struct {
	order []domain.ID
	index map[domain.ID]int
}

// NewSet creates a set from ids, dropping duplicates
func NewSet(ids ...domain.ID) *Set {
	s := &Set{index: make(map[domain.ID]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports membership
func (s *Set) Has(id domain.ID) bool {
	_, ok := s.index[id]
	return ok
}

// Add appends id unless present; reports whether it was added
func (s *Set) Add(id domain.ID) bool {
	if s.Has(id) {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

// Remove deletes id, keeping the order of the rest; reports whether it was present
func (s *Set) Remove(id domain.ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.order = append(s.order[:i], s.order[i+1:]...)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
	return true
}

// Len returns the number of members
func (s *Set) Len() int {
	return len(s.order)
}

// Slice returns a copy of the members in insertion order
func (s *Set) Slice() []domain.ID {
	out := make([]domain.ID, len(s.order))
	copy(out, s.order)
	return out
}
