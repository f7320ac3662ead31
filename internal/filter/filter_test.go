package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cities() []interface{} {
	return []interface{}{
		map[string]interface{}{"id": 1, "label": "Paris", "region": "Île-de-France"},
		map[string]interface{}{"id": 2, "label": "Lyon", "region": "Auvergne-Rhône-Alpes"},
		map[string]interface{}{"id": 3, "label": "Marseille", "region": "Provence"},
	}
}

func TestEmptySearchMatchesEverything(t *testing.T) {
	opts := []interface{}{"a", "b", 3}
	assert.Equal(t, opts, Apply(opts, "", nil))
}

func TestRecordSearchDefaultsToLabel(t *testing.T) {
	visible := Apply(cities(), "par", nil)
	assert.Len(t, visible, 1)
	assert.Equal(t, 1, visible[0].(map[string]interface{})["id"])
}

func TestCaseInsensitive(t *testing.T) {
	assert.Len(t, Apply(cities(), "LYON", nil), 1)
	assert.Len(t, Apply(cities(), "mArS", nil), 1)
	assert.Len(t, Apply(cities(), "île", []string{"region"}), 1)
	assert.Len(t, Apply(cities(), "ÎLE", []string{"region"}), 1)
}

func TestAnyFieldMatches(t *testing.T) {
	fields := []string{"label", "region"}
	assert.Equal(t, []int{1}, Indices(cities(), "rhône", fields))
	assert.Equal(t, []int{0, 2}, Indices(cities(), "r", []string{"label"}))
	assert.Equal(t, []int{0, 1, 2}, Indices(cities(), "r", fields))
}

func TestMissingFieldNeverMatches(t *testing.T) {
	assert.Empty(t, Apply(cities(), "x", []string{"nope"}))
}

func TestNumericFields(t *testing.T) {
	opts := []interface{}{
		map[string]interface{}{"id": 10, "label": "ten"},
		map[string]interface{}{"id": 20, "label": "twenty"},
	}
	assert.Equal(t, []int{0}, Indices(opts, "1", []string{"id"}))
}

func TestPrimitiveSearch(t *testing.T) {
	opts := []interface{}{"apple", "Banana", 123, 4.5}
	assert.Equal(t, []interface{}{"Banana"}, Apply(opts, "nan", nil))
	assert.Equal(t, []interface{}{123}, Apply(opts, "23", nil))
	assert.Equal(t, []interface{}{4.5}, Apply(opts, ".5", nil))
}

func TestPreservesOrder(t *testing.T) {
	opts := []interface{}{"cab", "abc", "bca", "xyz"}
	assert.Equal(t, []interface{}{"cab", "abc", "bca"}, Apply(opts, "a", nil))
}

func TestNoMatches(t *testing.T) {
	assert.Empty(t, Apply(cities(), "zzz", nil))
}

func TestIdempotent(t *testing.T) {
	opts := []interface{}{"alpha", "beta", "gamma", "delta"}
	once := Apply(opts, "ta", nil)
	twice := Apply(once, "ta", nil)
	assert.Equal(t, once, twice)
}

func TestMonotonicUnderPrefixExtension(t *testing.T) {
	opts := []interface{}{"paris", "parme", "pau", "lyon", "PARIS-SUD"}
	search := "paris-s"
	prev := len(opts)
	for i := 0; i <= len(search); i++ {
		n := len(Apply(opts, search[:i], nil))
		assert.LessOrEqual(t, n, prev, "search %q", search[:i])
		prev = n
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Hello", "ell", nil))
	assert.False(t, Matches("Hello", "xyz", nil))
	assert.True(t, Matches(map[string]interface{}{"label": "x"}, "", nil))
}
