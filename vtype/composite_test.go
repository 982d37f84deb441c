// SPDX-License-Identifier: MIT
// Package vtype_test verifies the builtin composite types: Set semantics,
// Range assembly, and the complement helper.

package vtype_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paramset/vtype"
)

// TestSet_Basics verifies dedup, order preservation, and membership.
func TestSet_Basics(t *testing.T) {
	t.Parallel()

	s := vtype.NewSet("b", "a", "b", "c")
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b", "a", "c"}, s.Members(), "first-occurrence order")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))

	// Atoms canonicalize to sorted order for byte-stable serialization.
	assert.Equal(t, []any{"a", "b", "c"}, s.Atoms())
}

// TestSet_Complement verifies the set-theoretic complement and its
// involution property over subsets of the universe.
func TestSet_Complement(t *testing.T) {
	t.Parallel()

	universe := vtype.NewSet("a", "b", "c", "d", "e")
	s := vtype.NewSet("a", "c")

	comp := s.Complement(universe)
	assert.Equal(t, []string{"b", "d", "e"}, comp.Members())

	back := comp.Complement(universe)
	assert.True(t, back.Equal(s), "complement must be an involution over the universe")
}

// TestStringSet_FromAtoms verifies composite construction and rejection of
// non-string atoms.
func TestStringSet_FromAtoms(t *testing.T) {
	t.Parallel()

	v, err := vtype.StringSet.FromAtoms([]any{"x", "y", "x"})
	require.NoError(t, err)
	s, ok := v.(*vtype.Set)
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())

	_, err = vtype.StringSet.FromAtoms([]any{"x", int64(3)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, vtype.ErrBadAtoms))
}

// TestIntRange_FromAtoms covers span assembly: degenerate, ordered,
// reversed endpoint order, and wrong arity.
func TestIntRange_FromAtoms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		atoms []any
		want  vtype.Range
		fails bool
	}{
		{"two_endpoints", []any{int64(3), int64(7)}, vtype.Range{Lo: 3, Hi: 7}, false},
		{"degenerate", []any{int64(5)}, vtype.Range{Lo: 5, Hi: 5}, false},
		{"reversed_endpoints", []any{int64(7), int64(3)}, vtype.Range{Lo: 3, Hi: 7}, false},
		{"too_many", []any{int64(1), int64(2), int64(3)}, vtype.Range{}, true},
		{"not_int", []any{"3", int64(7)}, vtype.Range{}, true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := vtype.IntRange.FromAtoms(tc.atoms)
			if tc.fails {
				require.Error(t, err)
				assert.True(t, errors.Is(err, vtype.ErrBadAtoms))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
		})
	}
}

// TestRange_Queries anchors Len/Contains/Atoms on a small span.
func TestRange_Queries(t *testing.T) {
	t.Parallel()

	r := vtype.Range{Lo: 3, Hi: 7}
	assert.Equal(t, int64(5), r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(7))
	assert.False(t, r.Contains(8))
	assert.Equal(t, []any{int64(3), int64(7)}, r.Atoms())
}

// TestSetComplement_Helper verifies the engine-facing callback shape.
func TestSetComplement_Helper(t *testing.T) {
	t.Parallel()

	s := vtype.NewSet("a")
	got, err := vtype.SetComplement(s, vtype.NewSet("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, got.(*vtype.Set).Members())

	// []string universes convert on the fly.
	got, err = vtype.SetComplement(s, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got.(*vtype.Set).Members())

	_, err = vtype.SetComplement("nope", vtype.NewSet())
	require.Error(t, err)

	_, err = vtype.SetComplement(s, 42)
	require.Error(t, err)
}
