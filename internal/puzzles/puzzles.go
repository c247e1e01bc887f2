// Package puzzles holds the registered daily solvers.
package puzzles

import (
	"go.uber.org/zap"

	aoc "github.com/nicklasmoeller/adventofcode"
)

// DefaultTicketMarker selects the ticket fields multiplied together for
// 2020 day 16 part two.
const DefaultTicketMarker = "departure"

type Options struct {
	TicketMarker string
	Logger       *zap.Logger
}

// Register adds every known puzzle to reg.
func Register(reg *aoc.Registry, opts Options) error {
	if opts.TicketMarker == "" {
		opts.TicketMarker = DefaultTicketMarker
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	for _, p := range []aoc.Puzzle{
		TicketTranslation(opts),
		Template(),
	} {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// Default returns a registry holding every known puzzle.
func Default(opts Options) (*aoc.Registry, error) {
	reg := aoc.NewRegistry()
	if err := Register(reg, opts); err != nil {
		return nil, err
	}
	return reg, nil
}
