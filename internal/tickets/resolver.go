package tickets

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/nicklasmoeller/adventofcode/pkg/primitives"
)

// Assignment maps every column (the slice index) to the name of the rule
// governing it.
type Assignment []string

// Column returns the column governed by the named rule.
func (a Assignment) Column(name string) (int, bool) {
	i := slices.Index(a, name)
	return i, i >= 0
}

// ColumnsWhere returns, in ascending order, the columns whose rule name
// satisfies match.
func (a Assignment) ColumnsWhere(match func(name string) bool) []int {
	var cols []int
	for col, name := range a {
		if match(name) {
			cols = append(cols, col)
		}
	}
	return cols
}

// HasPrefix is a ColumnsWhere predicate selecting rule names starting with
// prefix.
func HasPrefix(prefix string) func(string) bool {
	return func(name string) bool {
		return strings.HasPrefix(name, prefix)
	}
}

// Round describes the state after one elimination round. Round 0 is the
// initial candidate map, before anything is committed.
type Round struct {
	Number int
	// Committed maps the columns committed in this round to their rule.
	Committed map[int]string
	// Candidates holds the candidate set size of every column once the
	// round's eliminations are applied.
	Candidates []int
}

type Option func(*Resolver)

// WithLogger traces every elimination round at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithRoundObserver calls f after every round, starting with round 0.
func WithRoundObserver(f func(Round)) Option {
	return func(r *Resolver) {
		r.observe = f
	}
}

// Resolver determines which rule governs which column by repeatedly
// committing columns left with a single candidate rule.
//
// A Resolver holds no state between calls and may be reused.
type Resolver struct {
	logger  *zap.Logger
	observe func(Round)
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		logger:  zap.NewNop(),
		observe: func(Round) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve is NewResolver().Resolve.
func Resolve(rules *primitives.RuleSet, tickets []primitives.Ticket) (Assignment, error) {
	return NewResolver().Resolve(rules, tickets)
}

// Resolve computes the column to rule bijection for the given tickets. Tickets
// must already be filtered with ValidTickets.
//
// Every round commits all columns whose candidate set is a singleton, then
// strikes the committed rules from every other unresolved column. Candidate
// sets only ever shrink and every productive round commits at least one
// column, so at most one round per column is needed. When a round commits
// nothing before all columns are resolved, Resolve fails with an
// *UnsolvableError; it never guesses.
func (r *Resolver) Resolve(rules *primitives.RuleSet, tickets []primitives.Ticket) (Assignment, error) {
	candidates, err := BuildCandidates(rules, tickets)
	if err != nil {
		return nil, err
	}

	columns := len(candidates)
	assignment := make(Assignment, columns)
	resolved := make([]bool, columns)
	numResolved := 0

	r.observe(Round{Number: 0, Committed: map[int]string{}, Candidates: candidates.Counts()})

	for round := 1; round <= columns && numResolved < columns; round++ {
		// rule index -> column claiming it this round
		claims := make(map[int]int)
		for col, set := range candidates {
			if resolved[col] {
				continue
			}
			ruleIdx, ok := set.Single()
			if !ok {
				continue
			}
			if other, dup := claims[ruleIdx]; dup {
				return nil, &UnsolvableError{
					Unresolved: unresolvedColumns(resolved),
					Reason:     fmt.Sprintf("columns %d and %d both require rule %q", other, col, rules.Rule(ruleIdx).Name),
				}
			}
			claims[ruleIdx] = col
		}

		if len(claims) == 0 {
			r.logger.Debug("elimination stalled",
				zap.Int("round", round),
				zap.Ints("candidates", candidates.Counts()),
			)
			break
		}

		committed := make(map[int]string, len(claims))
		for ruleIdx, col := range claims {
			name := rules.Rule(ruleIdx).Name
			assignment[col] = name
			resolved[col] = true
			committed[col] = name
			numResolved++
		}

		for col, set := range candidates {
			if resolved[col] {
				continue
			}
			for ruleIdx := range claims {
				set.Remove(ruleIdx)
			}
		}

		counts := candidates.Counts()
		r.logger.Debug("elimination round",
			zap.Int("round", round),
			zap.Any("committed", committed),
			zap.Ints("candidates", counts),
		)
		r.observe(Round{Number: round, Committed: committed, Candidates: counts})
	}

	if numResolved < columns {
		return nil, &UnsolvableError{Unresolved: unresolvedColumns(resolved)}
	}
	return assignment, nil
}

func unresolvedColumns(resolved []bool) []int {
	var cols []int
	for col, ok := range resolved {
		if !ok {
			cols = append(cols, col)
		}
	}
	return cols
}
