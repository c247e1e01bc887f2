package primitives

import (
	"strconv"
	"strings"
)

// Ticket is an ordered sequence of field values, one per column.
type Ticket []int

// Len returns the number of columns on the ticket.
func (t Ticket) Len() int {
	return len(t)
}

func (t Ticket) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
