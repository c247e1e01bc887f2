package tickets

import (
	"fmt"
	"strings"
)

// ParseError reports malformed notes. Line is 1-based; 0 means the error is
// not tied to a single line (a missing section, for instance).
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("parse notes: %v", e.Err)
	}
	return fmt.Sprintf("parse notes: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError reports tickets of inconsistent length, or a rule count
// that differs from the column count.
type ShapeMismatchError struct {
	What string
	Want int
	Got  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: %s: want %d, got %d", e.What, e.Want, e.Got)
}

// UnsolvableError reports that elimination reached a fixed point with columns
// still unresolved.
type UnsolvableError struct {
	Unresolved []int
	Reason     string
}

func (e *UnsolvableError) Error() string {
	cols := make([]string, len(e.Unresolved))
	for i, c := range e.Unresolved {
		cols[i] = fmt.Sprint(c)
	}
	msg := "unsolvable assignment: columns [" + strings.Join(cols, " ") + "] unresolved"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
