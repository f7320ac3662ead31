package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiselect/internal/domain"
)

func ids(values ...interface{}) []domain.ID {
	out := make([]domain.ID, 0, len(values))
	for _, v := range values {
		switch v := v.(type) {
		case string:
			out = append(out, domain.StringID(v))
		case int:
			out = append(out, domain.NumberID(float64(v)))
		}
	}
	return out
}

type recorder struct {
	calls [][]domain.ID
}

func (r *recorder) handle(sel []domain.ID) {
	r.calls = append(r.calls, sel)
}

func newRecorded(seed ...domain.ID) (*Service, *recorder) {
	s := NewService(nil, seed...)
	r := &recorder{}
	s.SetChangeHandler(r.handle)
	return s, r
}

func TestToggle(t *testing.T) {
	s, r := newRecorded()

	s.Toggle(domain.StringID("a"))
	s.Toggle(domain.StringID("b"))
	assert.Equal(t, ids("a", "b"), s.Selected())

	s.Toggle(domain.StringID("a"))
	assert.Equal(t, ids("b"), s.Selected())

	require.Len(t, r.calls, 3)
	assert.Equal(t, ids("a"), r.calls[0])
	assert.Equal(t, ids("a", "b"), r.calls[1])
	assert.Equal(t, ids("b"), r.calls[2])
}

func TestToggleTwiceRestores(t *testing.T) {
	s, _ := newRecorded(ids("x", 1, "y")...)
	before := s.Selected()

	for _, id := range ids("x", 2, "z") {
		s.Toggle(id)
		s.Toggle(id)
		assert.ElementsMatch(t, before, s.Selected())
	}
}

func TestSeedDedupsAndDoesNotNotify(t *testing.T) {
	s, r := newRecorded()
	s.Seed(ids("a", "b", "a"))
	assert.Equal(t, ids("a", "b"), s.Selected())
	assert.Empty(t, r.calls)
}

func TestInsertionOrderIsKept(t *testing.T) {
	s, _ := newRecorded()
	for _, id := range ids("c", "a", "b") {
		s.Toggle(id)
	}
	assert.Equal(t, ids("c", "a", "b"), s.Selected())
}

func TestIsAllSelected(t *testing.T) {
	s, _ := newRecorded(ids("a", "b")...)

	assert.True(t, s.IsAllSelected(ids("a", "b")))
	assert.True(t, s.IsAllSelected(ids("a")))
	assert.False(t, s.IsAllSelected(ids("a", "c")))
	assert.False(t, s.IsAllSelected(nil), "empty visible set is never all selected")
	assert.False(t, s.IsAllSelected([]domain.ID{}))
}

func TestSelectAllThenDeselect(t *testing.T) {
	s, r := newRecorded()
	visible := ids("a", "b", "c")

	s.SelectAll(visible)
	assert.Equal(t, ids("a", "b", "c"), s.Selected())

	s.SelectAll(visible)
	assert.Empty(t, s.Selected())

	require.Len(t, r.calls, 2)
	assert.Equal(t, ids("a", "b", "c"), r.calls[0])
	assert.Empty(t, r.calls[1])
}

func TestSelectAllIsScopedToVisible(t *testing.T) {
	s, _ := newRecorded(ids("z", "b")...)

	s.SelectAll(ids("a", "b"))
	assert.Equal(t, ids("z", "b", "a"), s.Selected(), "missing ids are appended, others untouched")

	s.SelectAll(ids("a", "b"))
	assert.Equal(t, ids("z"), s.Selected(), "only visible ids are removed")
}

func TestSelectAllTwiceRestoresVisible(t *testing.T) {
	visible := ids(1, 2, 3)
	// Starting points where the visible ids are either all or none selected
	seeds := [][]domain.ID{nil, ids(9), ids(1, 2, 3), ids(3, 9, 1, 2)}

	for _, seed := range seeds {
		s, _ := newRecorded(seed...)
		before := s.Selected()

		s.SelectAll(visible)
		s.SelectAll(visible)

		for _, id := range visible {
			assert.Equal(t, NewSet(before...).Has(id), s.IsSelected(id), "seed %v id %v", seed, id)
		}
		assert.Equal(t, len(before), s.Count(), "seed %v", seed)
	}
}

func TestSelectAllFromPartialSelectsEverything(t *testing.T) {
	s, _ := newRecorded(ids(2)...)
	s.SelectAll(ids(1, 2, 3))
	assert.Equal(t, ids(2, 1, 3), s.Selected())
}

func TestSelectAllEmptyVisibleStillNotifies(t *testing.T) {
	s, r := newRecorded(ids("a")...)
	s.SelectAll(nil)
	assert.Equal(t, ids("a"), s.Selected())
	assert.Len(t, r.calls, 1)
}

func TestNotificationIsACopy(t *testing.T) {
	s, r := newRecorded()
	s.Toggle(domain.StringID("a"))
	r.calls[0][0] = domain.StringID("mutated")
	assert.Equal(t, ids("a"), s.Selected())
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	set := NewSet(ids("a", "b", "c", "d")...)
	assert.True(t, set.Remove(domain.StringID("b")))
	assert.False(t, set.Remove(domain.StringID("b")))
	assert.True(t, set.Remove(domain.StringID("d")))
	assert.True(t, set.Add(domain.StringID("b")))
	assert.Equal(t, ids("a", "c", "b"), set.Slice())
	assert.True(t, set.Remove(domain.StringID("c")))
	assert.Equal(t, ids("a", "b"), set.Slice())
}
