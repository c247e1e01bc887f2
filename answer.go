package aoc

import (
	"fmt"
	"time"
)

// Part selects one half of a puzzle.
type Part int

const (
	PartOne Part = iota + 1
	PartTwo
)

func (p Part) String() string {
	return fmt.Sprintf("part %d", int(p))
}

// ParsePart turns a numeric part selection into the parts to run. Zero means
// both parts.
func ParsePart(n int) ([]Part, error) {
	switch n {
	case 0:
		return []Part{PartOne, PartTwo}, nil
	case 1:
		return []Part{PartOne}, nil
	case 2:
		return []Part{PartTwo}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidPart, n)
	}
}

// Answer is the solved value of one part of a puzzle.
type Answer struct {
	Year    int
	Day     int
	Part    Part
	Value   string
	Elapsed time.Duration
}

// Repr is the answer as printed on its own line.
func (a Answer) Repr() string {
	return a.Value
}

func (a Answer) DebugString() string {
	return fmt.Sprintf("Answer{year: %d, day: %d, part: %d, value: %q, elapsed: %v}", a.Year, a.Day, int(a.Part), a.Value, a.Elapsed)
}
