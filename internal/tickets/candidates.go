package tickets

import (
	"fmt"

	"github.com/nicklasmoeller/adventofcode/pkg/primitives"
)

// CandidateMap holds, for each column, the set of rules not yet ruled out for
// it. Index i of the map is column i; members of each set are rule indices in
// the RuleSet the map was built from.
type CandidateMap []*primitives.NameSet

// Counts returns the candidate set size of every column.
func (m CandidateMap) Counts() []int {
	counts := make([]int, len(m))
	for col, set := range m {
		counts[col] = set.Count()
	}
	return counts
}

// Clone returns a deep copy of the map.
func (m CandidateMap) Clone() CandidateMap {
	clone := make(CandidateMap, len(m))
	for col, set := range m {
		clone[col] = set.Clone()
	}
	return clone
}

type candidateState struct {
	rules *primitives.RuleSet

	// Field values repeat heavily across tickets; remember who accepts what.
	memoizedAccepting map[int]*primitives.NameSet
}

func (s *candidateState) accepting(v int) *primitives.NameSet {
	memo, ok := s.memoizedAccepting[v]
	if ok {
		return memo
	}
	set := s.rules.Accepting(v)
	s.memoizedAccepting[v] = set
	return set
}

// checkShape returns the column count shared by every ticket, and fails
// unless the rule count equals it.
func checkShape(rules *primitives.RuleSet, tickets []primitives.Ticket) (int, error) {
	if len(tickets) == 0 {
		return 0, &ShapeMismatchError{What: "valid tickets", Want: 1, Got: 0}
	}

	columns := tickets[0].Len()
	for i, t := range tickets {
		if t.Len() != columns {
			return 0, &ShapeMismatchError{What: fmt.Sprintf("ticket %d length", i), Want: columns, Got: t.Len()}
		}
	}

	if rules.Len() != columns {
		return 0, &ShapeMismatchError{What: "rule count", Want: columns, Got: rules.Len()}
	}
	return columns, nil
}

// BuildCandidates computes, for every column, the rules that accept the value
// at that column on every ticket. The result does not depend on ticket order.
func BuildCandidates(rules *primitives.RuleSet, tickets []primitives.Ticket) (CandidateMap, error) {
	columns, err := checkShape(rules, tickets)
	if err != nil {
		return nil, err
	}

	state := candidateState{
		rules:             rules,
		memoizedAccepting: make(map[int]*primitives.NameSet),
	}

	candidates := make(CandidateMap, columns)
	for col := range candidates {
		candidates[col] = primitives.FullNameSet(rules.Len())
	}

	for _, t := range tickets {
		for col, v := range t {
			candidates[col].IntersectWith(state.accepting(v))
		}
	}
	return candidates, nil
}
