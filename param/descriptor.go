// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// descriptor.go — the declarative per-parameter schema and its callbacks.
//
// Design:
//   • Descriptor is the construction-time input; Template is the frozen
//     runtime form. Descriptors merge through the Use reuse pointer
//     (zero-valued fields inherit from the referenced descriptor).
//   • Callback slots are plain function fields. They are invoked
//     synchronously from the pipeline and must be pure (or at least
//     re-entrant); they must not mutate the Registry.
//   • The YAML-visible subset carries tags; callback slots are resolved
//     by name through schema.Library instead (see schema.go).

package param

import (
	"github.com/katalvlaran/paramset/vtype"
)

// Unbounded marks an unlimited max cardinality. A Descriptor with Max <= 0
// accepts any number of values.
const Unbounded = 0

// DefaultComplementKey is the reserved parameter name that carries the
// list of complemented parameter names on the wire.
const DefaultComplementKey = "complement"

// Callback slots a Descriptor may carry. All are optional.
type (
	// DefaultFunc produces a value for an absent, non-conflicting
	// parameter when defaults are enabled.
	DefaultFunc func() any

	// ConsumerFunc derives this parameter from the consumed ones, in
	// declaration order. A nil ConsumerFunc with non-empty Consumes
	// collects the consumed values into an ordered []any.
	ConsumerFunc func(values ...any) (any, error)

	// UniverseFunc produces the universal set/range used for
	// complementing. Results are cached registry-side; Refresh recomputes.
	UniverseFunc func() any

	// ComplementFunc produces the set-theoretic complement of value
	// against universe. Must be an involution over subsets of the
	// universe for round-trips to hold.
	ComplementFunc func(value, universe any) (any, error)

	// UnwindFunc inverts composite construction: it decomposes value into
	// ordered atoms, reporting whether the atoms already describe the
	// complemented form. Optional; composite values implementing
	// vtype.AtomSource decompose without one.
	UnwindFunc func(t *Template, value any) (atoms []any, complemented bool, err error)

	// FormatFunc renders one atom to its wire string. Overrides the
	// printf-style Format pattern when set.
	FormatFunc func(atom any) string
)

// Descriptor declares a single parameter. The zero value of every field is
// "unset" for Use-merging purposes.
type Descriptor struct {
	// Name uniquely identifies the parameter inside its registry.
	Name string `yaml:"name"`

	// Use names another descriptor whose set fields fill this one's
	// unset fields (construction-time merge, not runtime inheritance).
	Use string `yaml:"use,omitempty"`

	// Type checks/coerces atomic values. Default: vtype.String.
	Type vtype.Adapter `yaml:"-"`

	// Composite, when set, assembles the atom sequence into one value.
	// Must implement vtype.Composite; anything else fails construction
	// with ErrUnknownComposite.
	Composite vtype.Adapter `yaml:"-"`

	// Format is a printf-style pattern with exactly one %s verb applied
	// to each atom on serialization. Default "%s".
	Format string `yaml:"format,omitempty"`

	// FormatFunc overrides Format with an arbitrary atom renderer.
	FormatFunc FormatFunc `yaml:"-"`

	// Min is the least number of atoms required once the parameter is
	// present (and, when Min > 0, the parameter itself is required).
	Min int `yaml:"min,omitempty"`

	// Max caps the atom count; surplus input is truncated. <= 0 means
	// unbounded. At Max == 1 the processed value is a scalar.
	Max int `yaml:"max,omitempty"`

	// Shift selects which side survives truncation: the rightmost Max
	// atoms when true, the leftmost when false.
	Shift bool `yaml:"shift,omitempty"`

	// Strict disables truncation: surplus input fails with ErrTooMany
	// instead of being capped.
	Strict bool `yaml:"strict,omitempty"`

	// Empty preserves null/"" atoms as meaningful when true; when false
	// they are dropped and fully-empty input leaves the parameter absent.
	Empty bool `yaml:"empty,omitempty"`

	// Reverse flips the canonical composite (set/range) atom order on
	// serialization. Plain sequences keep input order.
	Reverse bool `yaml:"reverse,omitempty"`

	// Depends lists parameters that must also be present.
	Depends []string `yaml:"depends,omitempty"`

	// Conflicts lists parameters that must not be present alongside this
	// one. Symmetric: the registry mirrors every edge.
	Conflicts []string `yaml:"conflicts,omitempty"`

	// Consumes lists the parameters whose values feed Consumer, in call
	// order. Consumption implies Depends (all inputs must be present to
	// fire) and Conflicts (inputs may not coexist with the derived
	// parameter in the output).
	Consumes []string `yaml:"consumes,omitempty"`

	// Groups lists the named groups this parameter joins, in addition to
	// any Config.Groups membership.
	Groups []string `yaml:"groups,omitempty"`

	Default    DefaultFunc    `yaml:"-"`
	Consumer   ConsumerFunc   `yaml:"-"`
	Universe   UniverseFunc   `yaml:"-"`
	Complement ComplementFunc `yaml:"-"`
	Unwind     UnwindFunc     `yaml:"-"`
}

// Config is the whole-registry construction input.
type Config struct {
	// Params declares the parameters; slice order defines the canonical
	// serialization sequence.
	Params []Descriptor `yaml:"params"`

	// Groups maps group names to member parameter names.
	Groups map[string][]string `yaml:"groups,omitempty"`

	// Complement overrides the reserved complement parameter name.
	// Default: "complement".
	Complement string `yaml:"complement,omitempty"`
}

// merge fills d's unset fields from base, honoring last-wins semantics of
// the Use chain resolved by the registry constructor.
func (d Descriptor) merge(base Descriptor) Descriptor {
	out := d
	if out.Type == nil {
		out.Type = base.Type
	}
	if out.Composite == nil {
		out.Composite = base.Composite
	}
	if out.Format == "" {
		out.Format = base.Format
	}
	if out.FormatFunc == nil {
		out.FormatFunc = base.FormatFunc
	}
	if out.Min == 0 {
		out.Min = base.Min
	}
	if out.Max == 0 {
		out.Max = base.Max
	}
	if !out.Shift {
		out.Shift = base.Shift
	}
	if !out.Strict {
		out.Strict = base.Strict
	}
	if !out.Empty {
		out.Empty = base.Empty
	}
	if !out.Reverse {
		out.Reverse = base.Reverse
	}
	if out.Depends == nil {
		out.Depends = base.Depends
	}
	if out.Conflicts == nil {
		out.Conflicts = base.Conflicts
	}
	if out.Consumes == nil {
		out.Consumes = base.Consumes
	}
	if out.Default == nil {
		out.Default = base.Default
	}
	if out.Consumer == nil {
		out.Consumer = base.Consumer
	}
	if out.Universe == nil {
		out.Universe = base.Universe
	}
	if out.Complement == nil {
		out.Complement = base.Complement
	}
	if out.Unwind == nil {
		out.Unwind = base.Unwind
	}
	return out
}
