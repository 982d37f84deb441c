// Package vtype defines the value-type façade consumed by the paramset
// evaluation engine, plus a catalogue of builtin atomic and composite types.
//
// ⚙️ The contract is deliberately minimal:
//
//	Adapter   — Check(v) bool, optional Coerce(v), human-readable Name().
//	Composite — Adapter plus FromAtoms([]any), building one value out of an
//	            ordered sequence of atoms (a set, a range, ...).
//
// Adapters are stateless. Check and Coerce never fail beyond returning
// false / no-coerce; FromAtoms and SetComplement reject unsuitable input
// with errors wrapping ErrBadAtoms, which the param package reports.
//
// Builtin atomic adapters (coercion backed by github.com/spf13/cast):
//   - String — any string-compatible value
//   - Int    — int64 canonical form
//   - Float  — float64 canonical form
//   - Bool   — bool canonical form
//   - Time   — time.Time, RFC 3339 on the wire
//
// Builtin composites:
//   - StringSet — ordered, duplicate-free member set (*Set values) with a
//     set-theoretic Complement helper
//   - IntRange  — contiguous inclusive int64 range (Range values)
package vtype
