// SPDX-License-Identifier: MIT
// Package param_test verifies canonical serialization: ordering, empty
// forms, the complement byte-length rule, and URI construction.

package param_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/paramset/param"
	"github.com/katalvlaran/paramset/vtype"
)

// TestAsString_SequenceOrder: keys emit in declaration order regardless
// of input order.
func TestAsString_SequenceOrder(t *testing.T) {
	t.Parallel()

	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{Name: "a", Max: 1},
		{Name: "b", Max: 1},
		{Name: "c", Max: 1},
	}})
	inst, err := reg.ProcessQuery("c=3&a=1&b=2")
	require.NoError(t, err)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "a=1&b=2&c=3", out)
}

// TestAsString_EmptyInstance serializes to "".
func TestAsString_EmptyInstance(t *testing.T) {
	t.Parallel()

	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{Name: "a", Max: 1},
	}})
	inst, err := reg.ProcessQuery("")
	require.NoError(t, err)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

// TestAsString_PreservedNull: empty=true at max==1 emits "k=".
func TestAsString_PreservedNull(t *testing.T) {
	t.Parallel()

	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{Name: "k", Max: 1, Empty: true},
	}})
	inst, err := reg.ProcessQuery("k=")
	require.NoError(t, err)
	require.True(t, inst.Exists("k"))

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "k=", out)
}

// TestAsString_ComplementShorter: a large subset of the universe emits
// the complemented form plus the reserved key (§8 scenario 5).
func TestAsString_ComplementShorter(t *testing.T) {
	t.Parallel()

	reg := setRegistry(t, "a", "b", "c", "d", "e", "f")

	// Five of six members: complement {f} plus "complement=tags" is
	// shorter than five direct pairs.
	inst, err := reg.ProcessQuery("tags=a&tags=b&tags=c&tags=d&tags=e")
	require.NoError(t, err)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "tags=f&complement=tags", out)

	// Round-trip: processing the complemented form restores the value.
	back, err := reg.ProcessQuery(out)
	require.NoError(t, err)
	v, _ := back.Get("tags")
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, v.(*vtype.Set).Members())
}

// TestAsString_ComplementNotShorter keeps the direct form for small sets.
func TestAsString_ComplementNotShorter(t *testing.T) {
	t.Parallel()

	reg := setRegistry(t, "a", "b", "c", "d", "e", "f")
	inst, err := reg.ProcessQuery("tags=a")
	require.NoError(t, err)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "tags=a", out)
}

// TestAsString_ComplementByteRule: the reserved-key entry counts toward the
// complemented form's length, so a one-member complement that costs more
// bytes than the direct form keeps the direct form.
func TestAsString_ComplementByteRule(t *testing.T) {
	t.Parallel()

	// Universe of 2: direct {a} is "t=a" (3 bytes with name "t");
	// complement form would be "t=b&complement=t" — longer, stays direct.
	u := vtype.NewSet("a", "b")
	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{
			Name:       "t",
			Composite:  vtype.StringSet,
			Universe:   func() any { return u },
			Complement: vtype.SetComplement,
		},
	}})
	inst, err := reg.ProcessQuery("t=a")
	require.NoError(t, err)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "t=a", out)
}

// TestAsString_EmptySetSurvivesViaComplement: the full universe minus
// itself cannot serialize directly; the engine keeps the key alive by
// emitting the complement of the universe.
func TestAsString_EmptySetSurvivesViaComplement(t *testing.T) {
	t.Parallel()

	reg := setRegistry(t, "a", "b")

	// complement=tags over the full universe yields the empty set.
	inst, err := reg.ProcessQuery("tags=a&tags=b&complement=tags")
	require.NoError(t, err)
	v, _ := inst.Get("tags")
	require.Equal(t, 0, v.(*vtype.Set).Len())

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "tags=a&tags=b&complement=tags", out)

	back, err := reg.ProcessQuery(out)
	require.NoError(t, err)
	bv, ok := back.Get("tags")
	require.True(t, ok)
	assert.Equal(t, 0, bv.(*vtype.Set).Len())
}

// TestAsString_ReversedRangeRoundTrip: a reversed range serializes
// hi-first and still reconstructs the same span on re-parse.
func TestAsString_ReversedRangeRoundTrip(t *testing.T) {
	t.Parallel()

	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{Name: "r", Type: vtype.Int, Composite: vtype.IntRange, Reverse: true, Max: 2},
	}})
	inst, err := reg.ProcessQuery("r=3&r=7")
	require.NoError(t, err)
	v, _ := inst.Get("r")
	require.Equal(t, vtype.Range{Lo: 3, Hi: 7}, v)

	out, err := inst.AsString()
	require.NoError(t, err)
	assert.Equal(t, "r=7&r=3", out)

	back, err := reg.ProcessQuery(out)
	require.NoError(t, err)
	bv, ok := back.Get("r")
	require.True(t, ok)
	assert.Equal(t, v, bv)

	// Byte-stable across the round-trip.
	out2, err := back.AsString()
	require.NoError(t, err)
	assert.Equal(t, out, out2)
}

// TestMakeURI replaces only the query component on a clone.
func TestMakeURI(t *testing.T) {
	t.Parallel()

	reg := param.MustNew(param.Config{Params: []param.Descriptor{
		{Name: "foo", Type: vtype.Int, Max: 1},
	}})
	inst, err := reg.ProcessQuery("foo=3")
	require.NoError(t, err)

	base, err := url.Parse("https://example.com/search?stale=1#frag")
	require.NoError(t, err)

	got, err := inst.MakeURI(base)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/search?foo=3#frag", got.String())
	assert.Equal(t, "stale=1", base.RawQuery, "input URI untouched")
}
