package tickets

import (
	"iter"

	"github.com/nicklasmoeller/adventofcode/pkg/primitives"
)

// InvalidValues yields every value, across all tickets, that no rule accepts.
// Values are produced lazily in ticket order.
func InvalidValues(rules *primitives.RuleSet, tickets []primitives.Ticket) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, t := range tickets {
			for _, v := range t {
				if rules.AnyAccepts(v) {
					continue
				}
				if !yield(v) {
					return
				}
			}
		}
	}
}

// IsFullyValid reports whether every value on the ticket is accepted by at
// least one rule.
func IsFullyValid(rules *primitives.RuleSet, t primitives.Ticket) bool {
	for _, v := range t {
		if !rules.AnyAccepts(v) {
			return false
		}
	}
	return true
}

// ValidTickets drops every ticket carrying a value no rule accepts. Resolution
// must only ever see the result: a single stray value would empty the
// candidate set of its column.
func ValidTickets(rules *primitives.RuleSet, tickets []primitives.Ticket) []primitives.Ticket {
	valid := make([]primitives.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if IsFullyValid(rules, t) {
			valid = append(valid, t)
		}
	}
	return valid
}

// ErrorRate is the sum of all invalid values.
func ErrorRate(rules *primitives.RuleSet, tickets []primitives.Ticket) int {
	sum := 0
	for v := range InvalidValues(rules, tickets) {
		sum += v
	}
	return sum
}
