package optionsource

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multiselect/internal/domain"
	"multiselect/internal/option"
)

func TestParseYAMLList(t *testing.T) {
	src, err := Parse([]byte("- a\n- b\n- 3\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", 3}, src.Options)
}

func TestParseYAMLDocument(t *testing.T) {
	src, err := Parse([]byte(`
label: Villes
hint: Choisissez
options:
  - {id: 1, label: Paris}
  - {id: 2, label: Lyon}
`), "yml")
	require.NoError(t, err)
	assert.Equal(t, "Villes", src.Label)
	assert.Equal(t, "Choisissez", src.Hint)
	require.Len(t, src.Options, 2)

	entries, err := option.NewNormalizer("", "").Normalize(src.Options)
	require.NoError(t, err)
	assert.Equal(t, domain.NumberID(1), entries[0].ID)
	assert.Equal(t, "Lyon", entries[1].Label)
}

func TestParseTOML(t *testing.T) {
	src, err := Parse([]byte(`
legend = "Tags"

[[options]]
id = "go"
label = "Go"

[[options]]
id = "rust"
label = "Rust"
`), "toml")
	require.NoError(t, err)
	assert.Equal(t, "Tags", src.Legend)

	entries, err := option.NewNormalizer("", "").Normalize(src.Options)
	require.NoError(t, err)
	assert.Equal(t, domain.StringID("go"), entries[0].ID)
	assert.Equal(t, "Rust", entries[1].Label)
}

func TestParseFilteringFields(t *testing.T) {
	src, err := Parse([]byte(`
filtering_fields = ["label", "family"]
options = [{ id = "go", label = "Go", family = "compiled" }]
`), "toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"label", "family"}, src.FilteringFields)

	_, err = Parse([]byte(`{"filtering_fields": [1], "options": []}`), "json")
	assert.Error(t, err)
}

func TestParseTOMLNumbers(t *testing.T) {
	src, err := Parse([]byte(`options = [1, 2, 3]`), "toml")
	require.NoError(t, err)
	id, err := option.NewNormalizer("", "").ID(src.Options[1])
	require.NoError(t, err)
	assert.Equal(t, domain.NumberID(2), id)
}

func TestParseJSONKeepsNumbers(t *testing.T) {
	src, err := Parse([]byte(`[{"id": 10, "label": "Ten"}, "x"]`), "json")
	require.NoError(t, err)
	rec := src.Options[0].(map[string]interface{})
	assert.Equal(t, json.Number("10"), rec["id"])

	id, err := option.NewNormalizer("", "").ID(rec)
	require.NoError(t, err)
	assert.Equal(t, domain.NumberID(10), id)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("a: b"), "yaml")
	assert.ErrorIs(t, err, ErrNoOptions)

	_, err = Parse([]byte("options: nope"), "yaml")
	assert.Error(t, err)

	_, err = Parse([]byte("42"), "json")
	assert.ErrorIs(t, err, ErrNoOptions)

	_, err = Parse([]byte("x"), "xml")
	assert.Error(t, err)

	_, err = Parse([]byte("{"), "json")
	assert.Error(t, err)
}

func TestLoadSetsName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- Paris\n- Lyon\n"), 0644))

	src, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cities", src.Name)
	assert.Len(t, src.Options, 2)
}
