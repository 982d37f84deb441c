// SPDX-License-Identifier: MIT
// Package: paramset/vtype
//
// builtin.go — builtin atomic adapters backed by spf13/cast.
//
// Contract:
//   • Each adapter has one canonical Go form (string, int64, float64,
//     bool, time.Time) so that processed instances compare by value.
//   • Coerce accepts anything cast can convert; Check accepts only the
//     canonical form. The engine always coerces before checking.

package vtype

import (
	"time"

	"github.com/spf13/cast"
)

// Builtin atomic adapters. Package-level values, safe to share.
var (
	// String accepts any string; coercion stringifies scalars via cast.
	String Adapter = stringAdapter{}

	// Int canonicalizes to int64.
	Int Adapter = intAdapter{}

	// Float canonicalizes to float64.
	Float Adapter = floatAdapter{}

	// Bool canonicalizes to bool ("1", "t", "true", ... on the wire).
	Bool Adapter = boolAdapter{}

	// Time canonicalizes to time.Time; RFC 3339 is the wire form.
	Time Adapter = timeAdapter{}
)

type stringAdapter struct{}

func (stringAdapter) Name() string { return "string" }

func (stringAdapter) Check(v any) bool {
	_, ok := v.(string)
	return ok
}

func (stringAdapter) Coerce(v any) (any, bool) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, false
	}
	return s, true
}

type intAdapter struct{}

func (intAdapter) Name() string { return "int" }

func (intAdapter) Check(v any) bool {
	_, ok := v.(int64)
	return ok
}

func (intAdapter) Coerce(v any) (any, bool) {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, false
	}
	return n, true
}

type floatAdapter struct{}

func (floatAdapter) Name() string { return "float" }

func (floatAdapter) Check(v any) bool {
	_, ok := v.(float64)
	return ok
}

func (floatAdapter) Coerce(v any) (any, bool) {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return nil, false
	}
	return f, true
}

type boolAdapter struct{}

func (boolAdapter) Name() string { return "bool" }

func (boolAdapter) Check(v any) bool {
	_, ok := v.(bool)
	return ok
}

func (boolAdapter) Coerce(v any) (any, bool) {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil, false
	}
	return b, true
}

type timeAdapter struct{}

func (timeAdapter) Name() string { return "time" }

func (timeAdapter) Check(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

func (timeAdapter) Coerce(v any) (any, bool) {
	if s, ok := v.(string); ok {
		// Prefer the wire form before cast's permissive layout list.
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return nil, false
	}
	return t, true
}
