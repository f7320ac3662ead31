package option

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is returned when an option cannot yield a usable
// identifier or label. It signals a host misconfiguration.
var ErrInvalidOption = errors.New("invalid option")

// InvalidOptionError describes which option failed and why
type InvalidOptionError struct {
	Index  int    // position in the collection, -1 when unknown
	Field  string // configured field that failed to resolve, "" for primitives
	Reason string
}

func (e *InvalidOptionError) Error() string {
	msg := "invalid option"
	if e.Index >= 0 {
		msg = fmt.Sprintf("invalid option at index %d", e.Index)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	return msg + ": " + e.Reason
}

// Unwrap lets errors.Is match ErrInvalidOption
func (e *InvalidOptionError) Unwrap() error {
	return ErrInvalidOption
}

func invalid(field, reason string) *InvalidOptionError {
	return &InvalidOptionError{Index: -1, Field: field, Reason: reason}
}
