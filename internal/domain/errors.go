package domain

import (
	"fmt"
)

// ValidationError reports one rejected input field together with the range
// that would have been accepted.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %s)", e.Field, e.Message, e.Value)
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors extracts every ValidationError from err, walking both
// wrapped and joined error trees.
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidationError:
		out = append(out, e)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			out = append(out, ValidationErrors(inner)...)
		}
	case interface{ Unwrap() error }:
		out = append(out, ValidationErrors(e.Unwrap())...)
	}
	return out
}
