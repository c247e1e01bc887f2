package aoc

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNotImplemented  = errors.New("puzzle not implemented")
	ErrDuplicatePuzzle = errors.New("puzzle already registered")
	ErrInvalidPart     = errors.New("invalid part selection")
)

// SolveFunc computes the answer to one part of a puzzle from its raw input.
type SolveFunc func(ctx context.Context, input string) (string, error)

// Puzzle is one day's pair of solvers. Solvers are pure functions of their
// input and keep no state between calls.
type Puzzle struct {
	Year    int
	Day     int
	Title   string
	PartOne SolveFunc
	PartTwo SolveFunc
}

func (p Puzzle) solver(part Part) SolveFunc {
	if part == PartTwo {
		return p.PartTwo
	}
	return p.PartOne
}

// Key identifies a puzzle.
type Key struct {
	Year int
	Day  int
}

// Registry is the dispatch table from (year, day) to puzzle.
type Registry struct {
	puzzles map[Key]Puzzle
}

func NewRegistry() *Registry {
	return &Registry{puzzles: make(map[Key]Puzzle)}
}

// Register adds a puzzle. Registering the same (year, day) twice fails with
// ErrDuplicatePuzzle.
func (r *Registry) Register(p Puzzle) error {
	if p.PartOne == nil || p.PartTwo == nil {
		return fmt.Errorf("puzzle %d day %d: both parts must be set", p.Year, p.Day)
	}
	key := Key{Year: p.Year, Day: p.Day}
	if _, ok := r.puzzles[key]; ok {
		return fmt.Errorf("%w: %d day %d", ErrDuplicatePuzzle, p.Year, p.Day)
	}
	r.puzzles[key] = p
	return nil
}

// Lookup returns the puzzle for the given year and day.
func (r *Registry) Lookup(year, day int) (Puzzle, error) {
	p, ok := r.puzzles[Key{Year: year, Day: day}]
	if !ok {
		return Puzzle{}, fmt.Errorf("%w: %d day %d", ErrNotImplemented, year, day)
	}
	return p, nil
}

// Days returns the registered days of a year in ascending order.
func (r *Registry) Days(year int) []int {
	var days []int
	for key := range r.puzzles {
		if key.Year == year {
			days = append(days, key.Day)
		}
	}
	slices.Sort(days)
	return days
}

// All returns every registered puzzle ordered by year, then day.
func (r *Registry) All() []Puzzle {
	all := make([]Puzzle, 0, len(r.puzzles))
	for _, p := range r.puzzles {
		all = append(all, p)
	}
	slices.SortFunc(all, func(a, b Puzzle) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Day, b.Day))
	})
	return all
}
