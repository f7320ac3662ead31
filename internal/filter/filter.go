package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"multiselect/internal/option"
)

// DefaultFields are the record fields searched when none are configured
var DefaultFields = []string{option.DefaultLabelField}

// Apply returns the options whose text contains search, case-insensitively,
// in their original order. An empty search returns every option.
func Apply(opts []interface{}, search string, fields []string) []interface{} {
	idx := Indices(opts, search, fields)
	visible := make([]interface{}, len(idx))
	for i, j := range idx {
		visible[i] = opts[j]
	}
	return visible
}

// Indices is Apply returning positions into opts
func Indices(opts []interface{}, search string, fields []string) []int {
	m := newMatcher(search, fields)
	indices := make([]int, 0, len(opts))
	for i, opt := range opts {
		if m.match(opt) {
			indices = append(indices, i)
		}
	}
	return indices
}

// Matches checks a single option against the search text
func Matches(opt interface{}, search string, fields []string) bool {
	return newMatcher(search, fields).match(opt)
}

type matcher struct {
	fold   cases.Caser
	query  string
	fields []string
}

func newMatcher(search string, fields []string) *matcher {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	// A Caser carries state and is not safe for concurrent use; one per call
	fold := cases.Fold()
	return &matcher{
		fold:   fold,
		query:  fold.String(search),
		fields: fields,
	}
}

func (m *matcher) match(opt interface{}) bool {
	if m.query == "" {
		return true
	}

	// Records match if any configured field contains the query
	if option.IsRecord(opt) {
		for _, field := range m.fields {
			v, ok := option.Field(opt, field)
			if !ok {
				continue
			}
			if s, ok := option.Text(v); ok && m.contains(s) {
				return true
			}
		}
		return false
	}

	s, ok := option.Text(opt)
	return ok && m.contains(s)
}

func (m *matcher) contains(s string) bool {
	return strings.Contains(m.fold.String(s), m.query)
}
