package puzzles

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	aoc "github.com/nicklasmoeller/adventofcode"
	"github.com/nicklasmoeller/adventofcode/internal/tickets"
)

type ticketTranslation struct {
	marker string
	logger *zap.Logger
}

// TicketTranslation is 2020 day 16. Part one sums the nearby ticket values no
// rule accepts. Part two multiplies the own ticket's values in the columns
// whose rule name starts with opts.TicketMarker.
func TicketTranslation(opts Options) aoc.Puzzle {
	d := ticketTranslation{marker: opts.TicketMarker, logger: opts.Logger}
	if d.marker == "" {
		d.marker = DefaultTicketMarker
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return aoc.Puzzle{
		Year:    2020,
		Day:     16,
		Title:   "Ticket Translation",
		PartOne: d.partOne,
		PartTwo: d.partTwo,
	}
}

func (d ticketTranslation) partOne(ctx context.Context, input string) (string, error) {
	notes, err := tickets.Parse(input)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(tickets.ErrorRate(notes.Rules, notes.Nearby)), nil
}

func (d ticketTranslation) partTwo(ctx context.Context, input string) (string, error) {
	notes, err := tickets.Parse(input)
	if err != nil {
		return "", err
	}

	valid := tickets.ValidTickets(notes.Rules, notes.Nearby)
	d.logger.Debug("filtered nearby tickets",
		zap.Int("nearby", len(notes.Nearby)),
		zap.Int("valid", len(valid)),
	)

	assignment, err := tickets.NewResolver(tickets.WithLogger(d.logger)).Resolve(notes.Rules, valid)
	if err != nil {
		return "", fmt.Errorf("resolve columns: %w", err)
	}

	cols := assignment.ColumnsWhere(tickets.HasPrefix(d.marker))
	if len(cols) == 0 {
		d.logger.Warn("no rule matches the ticket marker", zap.String("marker", d.marker))
	}

	product := 1
	for _, col := range cols {
		product *= notes.Own[col]
	}
	return strconv.Itoa(product), nil
}
