package puzzles

import (
	"context"

	aoc "github.com/nicklasmoeller/adventofcode"
)

// Template is the starting point for a new day: both parts echo the input.
// It is registered as year 42 day 42.
func Template() aoc.Puzzle {
	echo := func(ctx context.Context, input string) (string, error) {
		return input, nil
	}
	return aoc.Puzzle{
		Year:    42,
		Day:     42,
		Title:   "Template",
		PartOne: echo,
		PartTwo: echo,
	}
}
