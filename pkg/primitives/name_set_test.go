package primitives

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameSet_Add(t *testing.T) {
	ns := NewNameSet(3)

	tests := []struct {
		name      string
		index     int
		wantErr   bool
		wantCount int
	}{
		{"add 0", 0, false, 1},
		{"add 1", 1, false, 2},
		{"add 2", 2, false, 3},
		{"add 0 again", 0, false, 3}, // should not increase count
		{"add out of range low", -1, true, 3},
		{"add out of range high", 3, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ns.Add(tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
			if ns.Count() != tt.wantCount {
				t.Errorf("count = %d, want %d", ns.Count(), tt.wantCount)
			}
		})
	}
}

func TestNameSet_Remove(t *testing.T) {
	ns := FullNameSet(4)

	if !ns.Remove(2) {
		t.Error("Remove(2) = false, want true")
	}
	if ns.Remove(2) {
		t.Error("Remove(2) twice = true, want false")
	}
	if ns.Remove(10) {
		t.Error("Remove(10) = true, want false for out of range index")
	}
	if ns.Count() != 3 {
		t.Errorf("Count() = %d, want 3", ns.Count())
	}
	if ns.Contains(2) {
		t.Error("Contains(2) = true after Remove")
	}
}

func TestNameSet_IntersectWith(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() (*NameSet, *NameSet)
		expected []int
	}{
		{
			name: "full with partial",
			setup: func() (*NameSet, *NameSet) {
				ns1 := FullNameSet(5)
				ns2 := NewNameSet(5)
				ns2.Add(1)
				ns2.Add(3)
				return ns1, ns2
			},
			expected: []int{1, 3},
		},
		{
			name: "overlapping sets",
			setup: func() (*NameSet, *NameSet) {
				ns1 := NewNameSet(5)
				ns1.Add(0)
				ns1.Add(1)
				ns1.Add(2)
				ns2 := NewNameSet(5)
				ns2.Add(2)
				ns2.Add(4)
				return ns1, ns2
			},
			expected: []int{2},
		},
		{
			name: "disjoint sets",
			setup: func() (*NameSet, *NameSet) {
				ns1 := NewNameSet(5)
				ns1.Add(0)
				ns2 := NewNameSet(5)
				ns2.Add(4)
				return ns1, ns2
			},
			expected: nil,
		},
		{
			name: "partial with full",
			setup: func() (*NameSet, *NameSet) {
				ns1 := NewNameSet(5)
				ns1.Add(3)
				return ns1, FullNameSet(5)
			},
			expected: []int{3},
		},
		{
			name: "spans more than one word",
			setup: func() (*NameSet, *NameSet) {
				ns1 := FullNameSet(130)
				ns2 := NewNameSet(130)
				ns2.Add(0)
				ns2.Add(64)
				ns2.Add(129)
				return ns1, ns2
			},
			expected: []int{0, 64, 129},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns1, ns2 := tt.setup()
			ns1.IntersectWith(ns2)
			got := slices.Collect(ns1.Members())
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Members() mismatch (-want +got):\n%s", diff)
			}
			if ns1.Count() != len(tt.expected) {
				t.Errorf("count = %d, want %d", ns1.Count(), len(tt.expected))
			}
		})
	}

	t.Run("capacity mismatch panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("IntersectWith() did not panic on capacity mismatch")
			}
		}()
		NewNameSet(2).IntersectWith(NewNameSet(3))
	})
}

func TestNameSet_Single(t *testing.T) {
	ns := NewNameSet(70)
	if _, ok := ns.Single(); ok {
		t.Error("Single() ok = true for empty set")
	}

	ns.Add(66)
	if got, ok := ns.Single(); !ok || got != 66 {
		t.Errorf("Single() = (%d, %v), want (66, true)", got, ok)
	}

	ns.Add(3)
	if _, ok := ns.Single(); ok {
		t.Error("Single() ok = true for set with two members")
	}
}

func TestNameSet_Clone(t *testing.T) {
	ns := NewNameSet(4)
	ns.Add(1)

	clone := ns.Clone()
	clone.Add(2)

	if ns.Contains(2) {
		t.Error("mutating a clone changed the original")
	}
	if clone.Count() != 2 {
		t.Errorf("clone Count() = %d, want 2", clone.Count())
	}
}

func TestNameSet_IsFull(t *testing.T) {
	ns := NewNameSet(3)

	if ns.IsFull() {
		t.Error("IsFull() = true, want false for empty set")
	}

	ns.Add(0)
	if ns.IsFull() {
		t.Error("IsFull() = true, want false for partially filled set")
	}

	ns.Add(1)
	ns.Add(2)
	if !ns.IsFull() {
		t.Error("IsFull() = false, want true for full set")
	}

	if !FullNameSet(64).IsFull() {
		t.Error("FullNameSet(64).IsFull() = false")
	}
	if got := slices.Collect(FullNameSet(65).Members()); len(got) != 65 || got[64] != 64 {
		t.Errorf("FullNameSet(65) members = %v", got)
	}
}

func TestNameSet_Capacity(t *testing.T) {
	ns := NewNameSet(20)
	if ns.Capacity() != 20 {
		t.Errorf("Capacity() = %d, want 20", ns.Capacity())
	}
}
