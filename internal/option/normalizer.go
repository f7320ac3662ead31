// Package option turns heterogeneous option values into canonical
// identifiers and display labels.
//
// An option is either a primitive (a string or any Go number) or a record.
// Records are maps keyed by strings, structs (or pointers to structs), or
// values implementing Record. Struct fields are looked up by `option` tag,
// then `json` tag, then case-insensitive field name.
package option

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"multiselect/internal/domain"
)

// Default field names for records
const (
	DefaultIDField    = "id"
	DefaultLabelField = "label"
)

// Record is implemented by option types that resolve their own fields
type Record interface {
	Field(name string) (interface{}, bool)
}

// Entry is a normalized option
type Entry struct {
	ID    domain.ID
	Label string
	Value interface{} // the option as supplied by the host
}

// Normalizer extracts identifiers and labels using configured field names
type Normalizer struct {
	IDField    string
	LabelField string
}

// NewNormalizer creates a normalizer; empty field names fall back to the defaults
func NewNormalizer(idField, labelField string) Normalizer {
	n := Normalizer{IDField: idField, LabelField: labelField}
	if n.IDField == "" {
		n.IDField = DefaultIDField
	}
	if n.LabelField == "" {
		n.LabelField = DefaultLabelField
	}
	return n
}

// ID returns the option's identifier
func (n Normalizer) ID(opt interface{}) (domain.ID, error) {
	if IsRecord(opt) {
		field := n.idField()
		v, ok := Field(opt, field)
		if !ok {
			return domain.ID{}, invalid(field, "record has no identifier field")
		}
		id, ok := toID(v)
		if !ok {
			return domain.ID{}, invalid(field, fmt.Sprintf("identifier must be a string or number, got %s", describe(v)))
		}
		return id, nil
	}

	id, ok := toID(opt)
	if !ok {
		return domain.ID{}, invalid("", fmt.Sprintf("option must be a string, number or record, got %s", describe(opt)))
	}
	return id, nil
}

// Label returns the option's display label
func (n Normalizer) Label(opt interface{}) (string, error) {
	if IsRecord(opt) {
		field := n.labelField()
		v, ok := Field(opt, field)
		if !ok {
			return "", invalid(field, "record has no label field")
		}
		s, ok := Text(v)
		if !ok {
			return "", invalid(field, fmt.Sprintf("label is not displayable, got %s", describe(v)))
		}
		return s, nil
	}

	id, err := n.ID(opt)
	if err != nil {
		return "", err
	}
	if s, ok := Text(opt); ok {
		return s, nil
	}
	return id.String(), nil
}

// Entry normalizes a single option
func (n Normalizer) Entry(opt interface{}) (Entry, error) {
	id, err := n.ID(opt)
	if err != nil {
		return Entry{}, err
	}
	label, err := n.Label(opt)
	if err != nil {
		return Entry{}, err
	}
	return Entry{ID: id, Label: label, Value: opt}, nil
}

// Normalize normalizes a whole collection, failing on the first invalid option
func (n Normalizer) Normalize(opts []interface{}) ([]Entry, error) {
	entries := make([]Entry, 0, len(opts))
	for i, opt := range opts {
		e, err := n.Entry(opt)
		if err != nil {
			var ioe *InvalidOptionError
			if errors.As(err, &ioe) {
				ioe.Index = i
			}
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Duplicates returns identifiers shared by more than one entry, in first-seen order.
// Duplicates are not rejected by the widget; this is a diagnostic for hosts.
func Duplicates(entries []Entry) []domain.ID {
	seen := make(map[domain.ID]int, len(entries))
	var dups []domain.ID
	for _, e := range entries {
		seen[e.ID]++
		if seen[e.ID] == 2 {
			dups = append(dups, e.ID)
		}
	}
	return dups
}

func (n Normalizer) idField() string {
	if n.IDField == "" {
		return DefaultIDField
	}
	return n.IDField
}

func (n Normalizer) labelField() string {
	if n.LabelField == "" {
		return DefaultLabelField
	}
	return n.LabelField
}

// IsRecord reports whether opt is a structured record rather than a primitive
func IsRecord(opt interface{}) bool {
	if _, ok := opt.(Record); ok {
		return true
	}
	v := indirect(reflect.ValueOf(opt))
	if !v.IsValid() {
		return false
	}
	switch v.Kind() {
	case reflect.Map:
		return v.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	}
	return false
}

// Field resolves a named field of a record
func Field(opt interface{}, name string) (interface{}, bool) {
	if r, ok := opt.(Record); ok {
		return r.Field(name)
	}

	v := indirect(reflect.ValueOf(opt))
	if !v.IsValid() {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Map:
		keyType := v.Type().Key()
		if keyType.Kind() != reflect.String {
			return nil, false
		}
		fv := v.MapIndex(reflect.ValueOf(name).Convert(keyType))
		if !fv.IsValid() {
			return nil, false
		}
		return fv.Interface(), true

	case reflect.Struct:
		return structField(v, name)
	}
	return nil, false
}

func structField(v reflect.Value, name string) (interface{}, bool) {
	t := v.Type()
	byName := -1
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if tagName(f.Tag.Get("option")) == name || tagName(f.Tag.Get("json")) == name {
			return v.Field(i).Interface(), true
		}
		if byName < 0 && strings.EqualFold(f.Name, name) {
			byName = i
		}
	}
	if byName >= 0 {
		return v.Field(byName).Interface(), true
	}
	return nil, false
}

func tagName(tag string) string {
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "-" {
		return ""
	}
	return tag
}

// Text returns the string form of a primitive value
func Text(v interface{}) (string, bool) {
	if n, ok := v.(json.Number); ok {
		return n.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

// toID converts a string or number to an identifier
func toID(v interface{}) (domain.ID, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return domain.ID{}, false
		}
		return domain.NumberID(f), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return domain.StringID(rv.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.NumberID(float64(rv.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return domain.NumberID(float64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// NaN never equals itself and would break membership checks
		if math.IsNaN(f) {
			return domain.ID{}, false
		}
		return domain.NumberID(f), true
	}
	return domain.ID{}, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func describe(v interface{}) string {
	if v == nil {
		return "nil"
	}
	if f, ok := v.(float64); ok && math.IsNaN(f) {
		return "NaN"
	}
	return fmt.Sprintf("%T", v)
}
