// SPDX-License-Identifier: MIT
// Package: paramset/vtype
//
// composite.go — builtin composite types: StringSet and IntRange.
//
// Design:
//   • Composite values are immutable by convention after construction;
//     the engine copies them by reference on Instance.Clone.
//   • Set membership order is canonicalized (sorted ascending) when the
//     set decomposes back into atoms, so serialization is byte-stable.
//   • Range is contiguous and inclusive; FromAtoms takes one or two int
//     atoms (lo, hi). Decomposition emits both endpoints.

package vtype

import (
	"errors"
	"fmt"
	"sort"
)

// ErrBadAtoms indicates a composite constructor received an atom sequence
// it cannot assemble (wrong arity, wrong element type). SetComplement
// wraps it for values or universes of the wrong type.
// Usage: if errors.Is(err, vtype.ErrBadAtoms) { /* reject input */ }.
var ErrBadAtoms = errors.New("vtype: unsuitable atom sequence for composite")

// Set is an ordered, duplicate-free collection of string members.
// The zero value is an empty set; use NewSet to build populated ones.
type Set struct {
	members []string
	index   map[string]struct{}
}

// NewSet builds a Set from members, dropping duplicates while preserving
// first-occurrence order.
// Complexity: O(n) time, O(n) space.
func NewSet(members ...string) *Set {
	s := &Set{index: make(map[string]struct{}, len(members))}
	for _, m := range members {
		if _, dup := s.index[m]; dup {
			continue
		}
		s.index[m] = struct{}{}
		s.members = append(s.members, m)
	}
	return s
}

// Members returns the member list in first-occurrence order.
// The returned slice is a copy; mutating it does not affect the Set.
func (s *Set) Members() []string {
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Has reports membership. Complexity: O(1).
func (s *Set) Has(m string) bool {
	_, ok := s.index[m]
	return ok
}

// Len returns the member count.
func (s *Set) Len() int { return len(s.members) }

// Atoms decomposes the set into sorted string atoms (canonical order).
func (s *Set) Atoms() []any {
	sorted := s.Members()
	sort.Strings(sorted)
	out := make([]any, len(sorted))
	for i, m := range sorted {
		out[i] = m
	}
	return out
}

// Complement returns the set of universe members absent from s.
// Universe order is preserved; members of s outside the universe vanish,
// so Complement(Complement(s)) == s only for s ⊆ universe.
// Complexity: O(|universe|) time and space.
func (s *Set) Complement(universe *Set) *Set {
	out := NewSet()
	for _, m := range universe.members {
		if !s.Has(m) {
			out.index[m] = struct{}{}
			out.members = append(out.members, m)
		}
	}
	return out
}

// Equal reports value equality (same members, order-insensitive).
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for _, m := range s.members {
		if !o.Has(m) {
			return false
		}
	}
	return true
}

// StringSet is the composite adapter producing *Set values.
var StringSet Composite = stringSetAdapter{}

type stringSetAdapter struct{}

func (stringSetAdapter) Name() string { return "set" }

func (stringSetAdapter) Check(v any) bool {
	_, ok := v.(*Set)
	return ok
}

func (stringSetAdapter) Coerce(v any) (any, bool) {
	switch t := v.(type) {
	case *Set:
		return t, true
	case []string:
		return NewSet(t...), true
	default:
		return nil, false
	}
}

func (stringSetAdapter) FromAtoms(atoms []any) (any, error) {
	members := make([]string, 0, len(atoms))
	for i, a := range atoms {
		s, ok := a.(string)
		if !ok {
			return nil, fmt.Errorf("set atom %d: %T is not a string: %w", i, a, ErrBadAtoms)
		}
		members = append(members, s)
	}
	return NewSet(members...), nil
}

// Range is a contiguous inclusive span of int64 values.
type Range struct {
	Lo, Hi int64
}

// Len returns the element count of the span.
func (r Range) Len() int64 { return r.Hi - r.Lo + 1 }

// Contains reports whether n lies inside the span.
func (r Range) Contains(n int64) bool { return n >= r.Lo && n <= r.Hi }

// Atoms decomposes the range into its two endpoints.
func (r Range) Atoms() []any { return []any{r.Lo, r.Hi} }

// IntRange is the composite adapter producing Range values.
// FromAtoms accepts one atom (degenerate lo==hi span) or two endpoints in
// either order, so reversed wire forms reconstruct the same span.
var IntRange Composite = intRangeAdapter{}

type intRangeAdapter struct{}

func (intRangeAdapter) Name() string { return "range" }

func (intRangeAdapter) Check(v any) bool {
	_, ok := v.(Range)
	return ok
}

func (intRangeAdapter) Coerce(v any) (any, bool) {
	r, ok := v.(Range)
	if !ok {
		return nil, false
	}
	return r, true
}

func (intRangeAdapter) FromAtoms(atoms []any) (any, error) {
	ends := make([]int64, 0, 2)
	for i, a := range atoms {
		n, ok := a.(int64)
		if !ok {
			return nil, fmt.Errorf("range atom %d: %T is not an int: %w", i, a, ErrBadAtoms)
		}
		ends = append(ends, n)
	}
	switch len(ends) {
	case 1:
		return Range{Lo: ends[0], Hi: ends[0]}, nil
	case 2:
		if ends[1] < ends[0] {
			ends[0], ends[1] = ends[1], ends[0]
		}
		return Range{Lo: ends[0], Hi: ends[1]}, nil
	default:
		return nil, fmt.Errorf("range wants 1 or 2 atoms, got %d: %w", len(ends), ErrBadAtoms)
	}
}

// SetComplement adapts Set.Complement to the engine's complement-callback
// shape: value and universe both arrive as any. The universe may be a
// *Set or a []string (converted on the fly).
func SetComplement(value, universe any) (any, error) {
	s, ok := value.(*Set)
	if !ok {
		return nil, fmt.Errorf("complement value is %T, want *vtype.Set: %w", value, ErrBadAtoms)
	}
	var u *Set
	switch t := universe.(type) {
	case *Set:
		u = t
	case []string:
		u = NewSet(t...)
	default:
		return nil, fmt.Errorf("complement universe is %T, want *vtype.Set or []string: %w", universe, ErrBadAtoms)
	}
	return s.Complement(u), nil
}
