// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// template.go — the frozen per-parameter schema and its value pipelines.
//
// Contract:
//   • Template is immutable after registry construction; all methods are
//     safe for concurrent read use.
//   • Process implements input→value (cap → empties → coerce+check →
//     compose → select) and never enforces Min; Min is a registry-level
//     invariant applied after cascading.
//   • Unprocess implements value→strings and reports whether the key
//     should be emitted at all (absent values of empty=false templates
//     are omitted).

package param

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/katalvlaran/paramset/vtype"
)

// Template is the frozen schema for a single parameter.
type Template struct {
	name       string
	typ        vtype.Adapter
	composite  vtype.Composite
	format     string
	formatFn   FormatFunc
	min, max   int
	shift      bool
	strict     bool
	empty      bool
	reverse    bool
	depends    []string
	conflicts  []string
	consumes   []string
	defaultFn  DefaultFunc
	consumerFn ConsumerFunc
	universeFn UniverseFunc
	complement ComplementFunc
	unwindFn   UnwindFunc
}

// Name returns the unique parameter name.
func (t *Template) Name() string { return t.name }

// TypeName returns the atomic adapter's human-readable name.
func (t *Template) TypeName() string { return t.typ.Name() }

// Min returns the least accepted atom count for a present parameter.
func (t *Template) Min() int { return t.min }

// Max returns the atom-count cap; Unbounded (0) means no cap.
func (t *Template) Max() int { return t.max }

// Empty reports whether null/"" atoms are preserved as meaningful.
func (t *Template) Empty() bool { return t.empty }

// Reverse reports whether canonical atom order is emitted reversed.
func (t *Template) Reverse() bool { return t.reverse }

// Depends returns a copy of the required-presence edge list.
func (t *Template) Depends() []string { return append([]string(nil), t.depends...) }

// Conflicts returns a copy of the forbidden-presence edge list, including
// mirrored edges installed at registry construction.
func (t *Template) Conflicts() []string { return append([]string(nil), t.conflicts...) }

// Consumes returns a copy of the consumed-input list, in call order.
func (t *Template) Consumes() []string { return append([]string(nil), t.consumes...) }

// HasComplement reports whether a complement function is defined.
func (t *Template) HasComplement() bool { return t.complement != nil }

// newTemplate freezes a fully merged descriptor, resolving deterministic
// defaults and validating the slots that can fail.
func newTemplate(d Descriptor) (*Template, error) {
	t := &Template{
		name:       d.Name,
		typ:        d.Type,
		format:     d.Format,
		formatFn:   d.FormatFunc,
		min:        d.Min,
		max:        d.Max,
		shift:      d.Shift,
		strict:     d.Strict,
		empty:      d.Empty,
		reverse:    d.Reverse,
		depends:    append([]string(nil), d.Depends...),
		conflicts:  append([]string(nil), d.Conflicts...),
		consumes:   append([]string(nil), d.Consumes...),
		defaultFn:  d.Default,
		consumerFn: d.Consumer,
		universeFn: d.Universe,
		complement: d.Complement,
		unwindFn:   d.Unwind,
	}
	if t.typ == nil {
		t.typ = vtype.String
	}
	if t.format == "" {
		t.format = "%s"
	}
	if t.formatFn == nil {
		if err := validateFormat(t.name, t.format); err != nil {
			return nil, err
		}
	}
	if t.max < 0 {
		t.max = Unbounded
	}
	if d.Composite != nil {
		comp, ok := d.Composite.(vtype.Composite)
		if !ok {
			return nil, fmt.Errorf("param: %s: %s: %w", d.Name, d.Composite.Name(), ErrUnknownComposite)
		}
		t.composite = comp
	}
	return t, nil
}

// validateFormat requires exactly one %s verb (ignoring %% escapes).
func validateFormat(name, format string) error {
	verbs := strings.Count(format, "%s")
	escapes := strings.Count(format, "%%")
	if verbs != 1 || strings.Count(format, "%")-escapes*2 != 1 {
		return fmt.Errorf("param: %s: %q: %w", name, format, ErrBadFormat)
	}
	return nil
}

// Process runs the input→value pipeline over raw atoms.
//
// Steps:
//  1. Cardinality cap: surplus atoms are truncated, keeping the rightmost
//     Max when shift is set, the leftmost otherwise.
//  2. Per-atom normalization: empty handling, coercion, type check.
//  3. Composite construction when a composite adapter is declared.
//  4. Scalar selection at Max == 1; ordered sequence otherwise.
//
// present is false when the surviving atom list is empty and empties are
// not preserved; the caller then leaves the parameter absent.
// Complexity: O(len(raw)) plus adapter cost.
func (t *Template) Process(raw []any) (value any, present bool, err error) {
	atoms := append([]any(nil), raw...)

	// 1. Cardinality cap.
	if t.max != Unbounded && len(atoms) > t.max {
		if t.strict {
			return nil, false, &CardinalityError{Name: t.name, Have: len(atoms), Bound: t.max}
		}
		if t.shift {
			atoms = atoms[len(atoms)-t.max:]
		} else {
			atoms = atoms[:t.max]
		}
	}

	// 2. Per-atom normalization.
	norm := atoms[:0]
	for i, a := range atoms {
		if isEmptyAtom(a) {
			if !t.empty {
				continue // dropped
			}
			norm = append(norm, nil) // preserved null
			continue
		}
		if coerced, ok := t.typ.Coerce(a); ok {
			a = coerced
		}
		if !t.typ.Check(a) {
			return nil, false, &BadAtomError{Name: t.name, Index: i, TypeName: t.typ.Name()}
		}
		norm = append(norm, a)
	}
	atoms = norm

	// Zero surviving atoms leaves the parameter absent; empty=true keeps
	// individual null atoms, not a null parameter.
	if len(atoms) == 0 {
		return nil, false, nil
	}

	// 3. Composite construction. No single atom position applies here;
	// Index is -1 and the composite's error travels as Cause.
	if t.composite != nil {
		v, cerr := t.composite.FromAtoms(atoms)
		if cerr != nil {
			return nil, false, &BadAtomError{Name: t.name, Index: -1, TypeName: t.composite.Name(), Cause: cerr}
		}
		return v, true, nil
	}

	// 4. Scalar selection.
	if t.max == 1 {
		return atoms[0], true, nil
	}
	return atoms, true, nil
}

// Unprocess runs the value→strings pipeline.
//
// Returns the formatted atom strings, whether the atoms describe the
// complemented form, and whether the key should be emitted at all.
// Absent values emit "k=" for empty=true scalars, nothing otherwise.
// Complexity: O(atom count) plus unwind cost.
func (t *Template) Unprocess(value any, present bool) (strs []string, complemented, emit bool, err error) {
	if !present {
		if t.empty && t.max == 1 {
			return []string{""}, false, true, nil
		}
		return nil, false, false, nil
	}

	var atoms []any
	switch {
	case t.unwindFn != nil:
		atoms, complemented, err = t.unwindFn(t, value)
		if err != nil {
			return nil, false, false, callbackError(t.name, "unwind", err)
		}
	default:
		atoms = t.decompose(value)
	}

	// Reverse is a set/range ordering flag: it flips canonical composite
	// decompositions only. Plain sequences keep input order so that
	// serialize/parse round-trips stay value-stable.
	if t.reverse && t.composite != nil {
		for i, j := 0, len(atoms)-1; i < j; i, j = i+1, j-1 {
			atoms[i], atoms[j] = atoms[j], atoms[i]
		}
	}

	strs = make([]string, len(atoms))
	for i, a := range atoms {
		strs[i] = t.formatAtom(a)
	}
	return strs, complemented, true, nil
}

// decompose flattens a processed value back into its atom sequence when no
// unwind callback is declared.
func (t *Template) decompose(value any) []any {
	switch v := value.(type) {
	case vtype.AtomSource:
		return v.Atoms()
	case []any:
		return append([]any(nil), v...)
	default:
		return []any{value}
	}
}

// atomCount reports how many atomic values stand behind a processed value;
// used for min-cardinality validation.
func (t *Template) atomCount(value any) int {
	switch v := value.(type) {
	case nil:
		return 1 // preserved null is a meaningful atom
	case []any:
		return len(v)
	case vtype.AtomSource:
		return len(v.Atoms())
	default:
		return 1
	}
}

// consume derives this parameter's value from the consumed inputs. The
// default consumer collects them into an ordered sequence.
func (t *Template) consume(values []any) (any, error) {
	if t.consumerFn == nil {
		return append([]any(nil), values...), nil
	}
	v, err := t.consumerFn(values...)
	if err != nil {
		return nil, callbackError(t.name, "consumer", err)
	}
	return v, nil
}

// formatAtom renders one atom to its wire string. Preserved nulls emit "".
func (t *Template) formatAtom(a any) string {
	if a == nil {
		return ""
	}
	if t.formatFn != nil {
		return t.formatFn(a)
	}
	s := atomString(a)
	if t.format == "%s" {
		return s
	}
	return fmt.Sprintf(t.format, s)
}

// atomString stringifies one atom in its canonical wire form.
func atomString(a any) string {
	if ts, ok := a.(time.Time); ok {
		return ts.Format(time.RFC3339)
	}
	return cast.ToString(a)
}

// isEmptyAtom reports whether a raw atom counts as empty input.
func isEmptyAtom(a any) bool {
	if a == nil {
		return true
	}
	s, ok := a.(string)
	return ok && s == ""
}
