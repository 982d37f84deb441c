// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// errors.go — sentinel errors and structured carriers for the engine.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed for branching.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Structured carriers (BadAtomError, ConflictError, ...) add the
//     offending names/positions; match them with errors.As when the
//     details matter, errors.Is when only the kind does.
//   • Processing and Set are atomic: any error leaves the Instance as it
//     was before the call.

package param

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for registry construction and evaluation.
var (
	// ErrBadAtom indicates an atom failed its type check after coercion.
	ErrBadAtom = errors.New("param: atom failed type check")

	// ErrTooFew indicates a parameter ended below its min cardinality.
	ErrTooFew = errors.New("param: too few values")

	// ErrTooMany indicates a parameter exceeded max with truncation disabled.
	ErrTooMany = errors.New("param: too many values")

	// ErrConflict indicates two mutually exclusive parameters were both present.
	ErrConflict = errors.New("param: conflicting parameters")

	// ErrMissingDependency indicates a depends edge left unsatisfied.
	ErrMissingDependency = errors.New("param: missing dependency")

	// ErrCycle indicates the depends/consumes graph is not a DAG.
	ErrCycle = errors.New("param: dependency cycle")

	// ErrUnknownComposite indicates a composite adapter without sequence coercion.
	ErrUnknownComposite = errors.New("param: composite lacks sequence coercion")

	// ErrBadComplement indicates complementing was requested for a template
	// that defines no complement function.
	ErrBadComplement = errors.New("param: no complement defined")

	// ErrUnknownUse indicates a `use` reuse pointer referencing no template.
	ErrUnknownUse = errors.New("param: unknown reuse reference")

	// ErrDuplicateName indicates two descriptors sharing one name.
	ErrDuplicateName = errors.New("param: duplicate parameter name")

	// ErrReservedName indicates a descriptor claiming the reserved complement name.
	ErrReservedName = errors.New("param: reserved parameter name")

	// ErrUnknownGroup indicates a group lookup for an unregistered group.
	ErrUnknownGroup = errors.New("param: unknown group")

	// ErrUnknownParam indicates a schema element referencing a parameter
	// name no descriptor declares (group members, nameless descriptors).
	ErrUnknownParam = errors.New("param: unknown parameter name")

	// ErrBadFormat indicates a format string without exactly one %s verb.
	ErrBadFormat = errors.New("param: malformed format string")

	// ErrUnknownReference indicates a schema file referencing an unregistered
	// callback, type, or composite name.
	ErrUnknownReference = errors.New("param: unknown schema reference")

	// ErrCallback tags an error raised inside a caller-provided callback.
	ErrCallback = errors.New("param: callback failed")
)

// BadAtomError reports the parameter, atom position and expected type of a
// failed per-atom check. Composite-construction failures span the whole
// atom sequence rather than one position; they carry Index == -1 and the
// composite's own error as Cause.
type BadAtomError struct {
	Name     string
	Index    int // atom position, or -1 when no single atom is at fault
	TypeName string
	Cause    error
}

func (e *BadAtomError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("param: %s: not a valid %s", e.Name, e.TypeName)
	}
	return fmt.Sprintf("param: %s[%d]: not a valid %s", e.Name, e.Index, e.TypeName)
}

func (e *BadAtomError) Is(target error) bool { return target == ErrBadAtom }

func (e *BadAtomError) Unwrap() error { return e.Cause }

// CardinalityError reports a min/max violation. Min violations satisfy
// errors.Is(err, ErrTooFew); max violations ErrTooMany.
type CardinalityError struct {
	Name  string
	Have  int
	Bound int
	Min   bool
}

func (e *CardinalityError) Error() string {
	if e.Min {
		return fmt.Sprintf("param: %s: %d value(s), need at least %d", e.Name, e.Have, e.Bound)
	}
	return fmt.Sprintf("param: %s: %d value(s), allow at most %d", e.Name, e.Have, e.Bound)
}

func (e *CardinalityError) Is(target error) bool {
	if e.Min {
		return target == ErrTooFew
	}
	return target == ErrTooMany
}

// ConflictError reports two parameters that ended up present together when
// one forbids the other. A is the template whose check fired; B the
// conflicting presence.
type ConflictError struct {
	A, B string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("param: %s conflicts with %s", e.A, e.B)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// MissingDependencyError reports a depends edge left unsatisfied at the
// end of the pipeline.
type MissingDependencyError struct {
	Name    string
	Missing string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("param: %s requires %s", e.Name, e.Missing)
}

func (e *MissingDependencyError) Is(target error) bool { return target == ErrMissingDependency }

// CycleError reports the names left unplaceable by rank stratification.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("param: dependency cycle through [%s]", strings.Join(e.Cycle, ", "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// BadComplementError reports a complement request against a template
// without a complement function.
type BadComplementError struct {
	Name string
}

func (e *BadComplementError) Error() string {
	return fmt.Sprintf("param: %s defines no complement", e.Name)
}

func (e *BadComplementError) Is(target error) bool { return target == ErrBadComplement }

// callbackError tags a caller-provided callback failure with the template
// name for context, preserving the original error for errors.Is/As.
func callbackError(name, slot string, err error) error {
	return fmt.Errorf("param: %s: %s: %w: %w", name, slot, ErrCallback, err)
}
