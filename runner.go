package aoc

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RunnerParams struct {
	// Parts to solve, in order. Empty means both.
	Parts []Part
	// Parallelism caps how many puzzles RunAll solves at once. Zero or less
	// means one.
	Parallelism int
	Logger      *zap.Logger
}

// Runner solves the selected parts of one puzzle.
type Runner struct {
	Puzzle Puzzle
	Parts  []Part

	logger *zap.Logger
}

func CreateRunner(p Puzzle, params RunnerParams) *Runner {
	parts := params.Parts
	if len(parts) == 0 {
		parts = []Part{PartOne, PartTwo}
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Puzzle: p,
		Parts:  parts,
		logger: logger.With(zap.Int("year", p.Year), zap.Int("day", p.Day)),
	}
}

// Answers solves each selected part in order. The sequence stops after the
// first error, which is yielded with a zero Answer.
func (r *Runner) Answers(ctx context.Context, input string) iter.Seq2[Answer, error] {
	return func(yield func(Answer, error) bool) {
		for _, part := range r.Parts {
			if err := ctx.Err(); err != nil {
				yield(Answer{}, err)
				return
			}

			start := time.Now()
			value, err := r.Puzzle.solver(part)(ctx, input)
			elapsed := time.Since(start)
			if err != nil {
				r.logger.Debug("solve failed", zap.Stringer("part", part), zap.Error(err))
				yield(Answer{}, fmt.Errorf("%d day %d %v: %w", r.Puzzle.Year, r.Puzzle.Day, part, err))
				return
			}

			r.logger.Debug("solved", zap.Stringer("part", part), zap.Duration("elapsed", elapsed))
			answer := Answer{
				Year:    r.Puzzle.Year,
				Day:     r.Puzzle.Day,
				Part:    part,
				Value:   value,
				Elapsed: elapsed,
			}
			if !yield(answer, nil) {
				return
			}
		}
	}
}

// InputLoader returns the raw input of a puzzle.
type InputLoader func(ctx context.Context, year, day int) (string, error)

// RunAll solves every registered puzzle of a year. Puzzles run concurrently,
// at most params.Parallelism at a time; the answers come back ordered by day,
// then part. The first failure cancels the remaining puzzles.
func RunAll(ctx context.Context, reg *Registry, year int, load InputLoader, params RunnerParams) ([]Answer, error) {
	days := reg.Days(year)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no puzzles for %d", ErrNotImplemented, year)
	}

	limit := params.Parallelism
	if limit <= 0 {
		limit = 1
	}

	results := make([][]Answer, len(days))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, day := range days {
		g.Go(func() error {
			p, err := reg.Lookup(year, day)
			if err != nil {
				return err
			}
			input, err := load(gctx, year, day)
			if err != nil {
				return fmt.Errorf("load input for %d day %d: %w", year, day, err)
			}

			for answer, err := range CreateRunner(p, params).Answers(gctx, input) {
				if err != nil {
					return err
				}
				results[i] = append(results[i], answer)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var answers []Answer
	for _, r := range results {
		answers = append(answers, r...)
	}
	return answers, nil
}
