package primitives

import (
	"fmt"
	"iter"
	"math/bits"
)

// NameSet efficiently represents a set of rule indices.
//
// A NameSet is always tied to the RuleSet it was created for: index i stands
// for RuleSet.Rule(i). Two sets can only be combined if they share a capacity.
type NameSet struct {
	words    []uint64
	capacity int
	count    int
}

func NewNameSet(capacity int) *NameSet {
	return &NameSet{
		words:    make([]uint64, (capacity+63)/64),
		capacity: capacity,
		count:    0,
	}
}

// FullNameSet returns a set containing every index in [0, capacity).
func FullNameSet(capacity int) *NameSet {
	s := NewNameSet(capacity)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	if rem := capacity % 64; rem != 0 {
		s.words[len(s.words)-1] = (1 << uint(rem)) - 1
	}
	s.count = capacity
	return s
}

// Add adds an index to the set.
func (s *NameSet) Add(i int) error {
	if i < 0 || i >= s.capacity {
		return fmt.Errorf("index %d is out of range [0, %d)", i, s.capacity)
	}

	if s.Contains(i) {
		return nil
	}

	s.count++
	s.words[i/64] |= 1 << uint(i%64)
	return nil
}

// Remove removes an index from the set, reporting whether it was present.
func (s *NameSet) Remove(i int) bool {
	if !s.Contains(i) {
		return false
	}
	s.words[i/64] &^= 1 << uint(i%64)
	s.count--
	return true
}

// IntersectWith keeps only the indices that are also in other.
func (s *NameSet) IntersectWith(other *NameSet) {
	if s.capacity != other.capacity {
		panic(fmt.Sprintf("cannot intersect: name sets have different capacities, %d != %d", s.capacity, other.capacity))
	}

	if s.count == 0 || other.IsFull() {
		return
	}

	count := 0
	for i := range s.words {
		s.words[i] &= other.words[i]
		count += bits.OnesCount64(s.words[i])
	}
	s.count = count
}

// Contains checks if an index is in the set.
func (s *NameSet) Contains(i int) bool {
	if i < 0 || i >= s.capacity {
		return false
	}
	return s.words[i/64]&(1<<uint(i%64)) != 0
}

// Single returns the only member of the set. ok is false unless the set has
// exactly one member.
func (s *NameSet) Single() (index int, ok bool) {
	if s.count != 1 {
		return -1, false
	}
	for wi, w := range s.words {
		if w != 0 {
			return wi*64 + bits.TrailingZeros64(w), true
		}
	}
	return -1, false
}

// Members yields the indices in the set in ascending order.
func (s *NameSet) Members() iter.Seq[int] {
	return func(yield func(int) bool) {
		for wi, w := range s.words {
			for w != 0 {
				tz := bits.TrailingZeros64(w)
				if !yield(wi*64 + tz) {
					return
				}
				w &= w - 1
			}
		}
	}
}

// Clone returns an independent copy of the set.
func (s *NameSet) Clone() *NameSet {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &NameSet{words: words, capacity: s.capacity, count: s.count}
}

// IsFull checks if the set is full.
func (s *NameSet) IsFull() bool {
	return s.count == s.capacity
}

// Capacity returns the number of indices that can be added to the set.
func (s *NameSet) Capacity() int {
	return s.capacity
}

// Count returns the number of indices in the set.
func (s *NameSet) Count() int {
	return s.count
}
