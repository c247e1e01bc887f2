// Package tickets implements ticket translation: parsing the notes, finding
// values no rule accepts and resolving which rule governs which column.
package tickets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nicklasmoeller/adventofcode/pkg/primitives"
)

const (
	headerOwn    = "your ticket:"
	headerNearby = "nearby tickets:"
)

// Notes is the parsed puzzle input.
type Notes struct {
	Rules  *primitives.RuleSet
	Own    primitives.Ticket
	Nearby []primitives.Ticket
}

type section int

const (
	sectionRules section = iota
	sectionOwn
	sectionNearby
)

// Parse reads the three sections of the notes: rule lines, "your ticket:" and
// "nearby tickets:". Every nearby ticket must have as many fields as the own
// ticket.
func Parse(input string) (*Notes, error) {
	lines := strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n")

	var (
		state   = sectionRules
		rules   []primitives.Rule
		seen    = make(map[string]int)
		own     primitives.Ticket
		haveOwn bool
		nearby  []primitives.Ticket
	)

	for i, raw := range lines {
		n := i + 1
		line := strings.TrimSpace(raw)

		switch line {
		case "":
			continue
		case headerOwn:
			if state != sectionRules {
				return nil, &ParseError{Line: n, Text: raw, Err: errors.New("unexpected section header")}
			}
			state = sectionOwn
			continue
		case headerNearby:
			if state != sectionOwn || !haveOwn {
				return nil, &ParseError{Line: n, Text: raw, Err: errors.New("nearby tickets before your ticket")}
			}
			state = sectionNearby
			continue
		}

		switch state {
		case sectionRules:
			r, err := parseRule(line)
			if err != nil {
				return nil, &ParseError{Line: n, Text: raw, Err: err}
			}
			if prev, ok := seen[r.Name]; ok {
				return nil, &ParseError{Line: n, Text: raw, Err: fmt.Errorf("duplicate rule %q, first defined on line %d", r.Name, prev)}
			}
			seen[r.Name] = n
			rules = append(rules, r)

		case sectionOwn:
			if haveOwn {
				return nil, &ParseError{Line: n, Text: raw, Err: errors.New("more than one ticket under your ticket")}
			}
			t, err := parseTicket(line)
			if err != nil {
				return nil, &ParseError{Line: n, Text: raw, Err: err}
			}
			own, haveOwn = t, true

		case sectionNearby:
			t, err := parseTicket(line)
			if err != nil {
				return nil, &ParseError{Line: n, Text: raw, Err: err}
			}
			nearby = append(nearby, t)
		}
	}

	switch {
	case len(rules) == 0:
		return nil, &ParseError{Err: errors.New("no rules")}
	case !haveOwn:
		return nil, &ParseError{Err: errors.New("missing your ticket section")}
	case state != sectionNearby:
		return nil, &ParseError{Err: errors.New("missing nearby tickets section")}
	}

	rs, err := primitives.NewRuleSet(rules...)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	for i, t := range nearby {
		if t.Len() != own.Len() {
			return nil, &ShapeMismatchError{What: fmt.Sprintf("nearby ticket %d length", i), Want: own.Len(), Got: t.Len()}
		}
	}

	return &Notes{Rules: rs, Own: own, Nearby: nearby}, nil
}

func parseRule(line string) (primitives.Rule, error) {
	name, spec, ok := strings.Cut(line, ":")
	if !ok {
		return primitives.Rule{}, errors.New("missing ':' after rule name")
	}

	var ranges []primitives.Range
	for _, part := range strings.Split(strings.TrimSpace(spec), " or ") {
		lo, hi, ok := strings.Cut(strings.TrimSpace(part), "-")
		if !ok {
			return primitives.Rule{}, fmt.Errorf("range %q is not of the form low-high", part)
		}
		low, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return primitives.Rule{}, fmt.Errorf("range %q: %w", part, err)
		}
		high, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return primitives.Rule{}, fmt.Errorf("range %q: %w", part, err)
		}
		ranges = append(ranges, primitives.Range{Low: low, High: high})
	}

	return primitives.NewRule(strings.TrimSpace(name), ranges...)
}

func parseTicket(line string) (primitives.Ticket, error) {
	fields := strings.Split(line, ",")
	t := make(primitives.Ticket, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("field %d: negative value %d", i, v)
		}
		t[i] = v
	}
	return t, nil
}
