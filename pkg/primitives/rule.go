package primitives

import (
	"fmt"
	"strings"
)

// Range is an inclusive span of integers.
type Range struct {
	Low  int
	High int
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v int) bool {
	return v >= r.Low && v <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("%d-%d", r.Low, r.High)
}

// Rule is a named predicate over integers: the union of its ranges.
//
// Rules are values and are never modified after NewRule returns them.
type Rule struct {
	Name   string
	Ranges []Range
}

// NewRule validates and returns a rule. Every range must satisfy Low <= High
// and at least one range is required.
func NewRule(name string, ranges ...Range) (Rule, error) {
	if name == "" {
		return Rule{}, fmt.Errorf("rule name is empty")
	}
	if len(ranges) == 0 {
		return Rule{}, fmt.Errorf("rule %q has no ranges", name)
	}
	for _, r := range ranges {
		if r.Low > r.High {
			return Rule{}, fmt.Errorf("rule %q has inverted range %d-%d", name, r.Low, r.High)
		}
	}
	return Rule{Name: name, Ranges: append([]Range(nil), ranges...)}, nil
}

// Accepts reports whether v falls in any of the rule's ranges.
func (r Rule) Accepts(v int) bool {
	for _, rng := range r.Ranges {
		if rng.Contains(v) {
			return true
		}
	}
	return false
}

func (r Rule) String() string {
	parts := make([]string, len(r.Ranges))
	for i, rng := range r.Ranges {
		parts[i] = rng.String()
	}
	return r.Name + ": " + strings.Join(parts, " or ")
}

// RuleSet is an ordered collection of uniquely named rules.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

// NewRuleSet returns a rule set preserving the given order. Duplicate names
// are rejected.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	rs := &RuleSet{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for _, r := range rules {
		if _, ok := rs.index[r.Name]; ok {
			return nil, fmt.Errorf("duplicate rule %q", r.Name)
		}
		rs.index[r.Name] = len(rs.rules)
		rs.rules = append(rs.rules, r)
	}
	return rs, nil
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.rules)
}

// Rule returns the i-th rule in insertion order.
func (rs *RuleSet) Rule(i int) Rule {
	return rs.rules[i]
}

// Index returns the position of the named rule.
func (rs *RuleSet) Index(name string) (int, bool) {
	i, ok := rs.index[name]
	return i, ok
}

// Names returns the rule names in insertion order.
func (rs *RuleSet) Names() []string {
	names := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		names[i] = r.Name
	}
	return names
}

// AnyAccepts reports whether at least one rule accepts v. This is global
// validity: it says nothing about which column v may sit in.
func (rs *RuleSet) AnyAccepts(v int) bool {
	for _, r := range rs.rules {
		if r.Accepts(v) {
			return true
		}
	}
	return false
}

// Accepting returns the set of rules that accept v.
func (rs *RuleSet) Accepting(v int) *NameSet {
	set := NewNameSet(len(rs.rules))
	for i, r := range rs.rules {
		if r.Accepts(v) {
			_ = set.Add(i)
		}
	}
	return set
}
