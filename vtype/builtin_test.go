// SPDX-License-Identifier: MIT
// Package vtype_test verifies the builtin atomic adapter contracts:
// canonical forms, coercion acceptance, and check strictness.

package vtype_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paramset/vtype"
)

// TestAtomicAdapters_Coerce locks in the canonical Go form each builtin
// adapter produces from wire strings.
func TestAtomicAdapters_Coerce(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		adapter vtype.Adapter
		in      any
		want    any
		ok      bool
	}{
		{"string_from_string", vtype.String, "abc", "abc", true},
		{"string_from_int", vtype.String, 42, "42", true},
		{"int_from_string", vtype.Int, "3", int64(3), true},
		{"int_from_int", vtype.Int, 7, int64(7), true},
		{"int_garbage", vtype.Int, "x7", nil, false},
		{"float_from_string", vtype.Float, "2.5", 2.5, true},
		{"float_garbage", vtype.Float, "two", nil, false},
		{"bool_true", vtype.Bool, "true", true, true},
		{"bool_one", vtype.Bool, "1", true, true},
		{"bool_garbage", vtype.Bool, "yep", nil, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tc.adapter.Coerce(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

// TestAtomicAdapters_Check verifies checks accept only canonical forms.
func TestAtomicAdapters_Check(t *testing.T) {
	t.Parallel()

	assert.True(t, vtype.String.Check("s"))
	assert.False(t, vtype.String.Check(3))

	assert.True(t, vtype.Int.Check(int64(3)))
	assert.False(t, vtype.Int.Check(3), "plain int is not the canonical form")
	assert.False(t, vtype.Int.Check("3"))

	assert.True(t, vtype.Float.Check(2.5))
	assert.False(t, vtype.Float.Check(float32(2.5)))

	assert.True(t, vtype.Bool.Check(true))
	assert.False(t, vtype.Bool.Check("true"))

	assert.True(t, vtype.Time.Check(time.Now()))
	assert.False(t, vtype.Time.Check("2024-01-02T00:00:00Z"))
}

// TestTimeAdapter_RFC3339 verifies the wire form survives a coerce round.
func TestTimeAdapter_RFC3339(t *testing.T) {
	t.Parallel()

	const wire = "2024-01-02T03:04:05Z"
	got, ok := vtype.Time.Coerce(wire)
	require.True(t, ok)
	ts, isTime := got.(time.Time)
	require.True(t, isTime)
	assert.Equal(t, wire, ts.Format(time.RFC3339))

	_, ok = vtype.Time.Coerce("not-a-time")
	assert.False(t, ok)
}

// TestAdapterNames anchors the names used in error messages and schemas.
func TestAdapterNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "string", vtype.String.Name())
	assert.Equal(t, "int", vtype.Int.Name())
	assert.Equal(t, "float", vtype.Float.Name())
	assert.Equal(t, "bool", vtype.Bool.Name())
	assert.Equal(t, "time", vtype.Time.Name())
}
