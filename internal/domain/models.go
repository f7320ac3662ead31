package domain

import (
	"encoding/json"
	"strconv"
)

// ID identifies an option within its collection. It is either a string or a
// number; the two never compare equal, so "1" and 1 are distinct options.
// ID is comparable and can be used as a map key.
type ID struct {
	str   string
	num   float64
	isNum bool
}

// StringID returns a string identifier
func StringID(s string) ID {
	return ID{str: s}
}

// NumberID returns a numeric identifier
func NumberID(n float64) ID {
	return ID{num: n, isNum: true}
}

// IsNumber reports whether the identifier is numeric
func (id ID) IsNumber() bool {
	return id.isNum
}

// Number returns the numeric value (0 for string identifiers)
func (id ID) Number() float64 {
	return id.num
}

// Value returns the identifier as a string or float64
func (id ID) Value() interface{} {
	if id.isNum {
		return id.num
	}
	return id.str
}

// String returns the identifier's string form, numbers in their shortest
// decimal representation.
func (id ID) String() string {
	if id.isNum {
		return strconv.FormatFloat(id.num, 'f', -1, 64)
	}
	return id.str
}

// MarshalJSON emits the identifier as a JSON string or number
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Value())
}

// IDValues converts identifiers to plain values for serialization
func IDValues(ids []ID) []interface{} {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id.Value()
	}
	return values
}

// Element is a node of the host's widget tree. Click targets are elements;
// a region "contains" a target when the target is the region itself or one
// of its descendants.
type Element struct {
	ID     string
	parent *Element
}

// NewElement creates an element under parent (nil for a root)
func NewElement(id string, parent *Element) *Element {
	return &Element{ID: id, parent: parent}
}

// Parent returns the parent element, nil for roots
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Contains reports whether other is e or a descendant of e
func (e *Element) Contains(other *Element) bool {
	if e == nil {
		return false
	}
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}
