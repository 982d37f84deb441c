// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// process.go — the rank-ordered evaluation pipeline.
//
// Contract:
//   • evaluate never mutates its seed; callers swap the result in only on
//     success, which is what makes Process and Instance.Set atomic.
//   • Tie-breaks follow the registry contract: raw presence beats
//     consumer eligibility; consumers fire only when every input is
//     present; defaults fire only for absent, non-conflicting templates.
//   • Deletion marks are book-keeping: they hide consumed values from
//     conflict checks and final output, not from sibling consumers.

package param

import (
	"net/url"
)

// rawInput is the normalized processing input: name → ordered atoms.
type rawInput map[string][]any

// Process turns a raw key→values mapping into a validated Instance.
//
// The reserved complement key is extracted first; its values name the
// parameters to complement (unknown names are ignored, known names
// without a complement function fail with ErrBadComplement). Keys
// outside the registry are preserved verbatim in Instance.Other and
// never serialized.
//
// Errors: ErrBadAtom, ErrConflict, ErrTooFew, ErrMissingDependency,
// ErrBadComplement, plus tagged callback failures.
// Complexity: O(templates + atoms) plus callback cost.
func (r *Registry) Process(raw url.Values) (*Instance, error) {
	in := make(rawInput, len(raw))
	other := make(map[string][]string)
	var complemented map[string]bool

	for key, values := range raw {
		switch {
		case key == r.complementKey:
			names := make([]any, len(values))
			for i, v := range values {
				names[i] = v
			}
			var err error
			complemented, err = r.complementSet(names)
			if err != nil {
				return nil, err
			}
		case r.templates[key] != nil:
			atoms := make([]any, len(values))
			for i, v := range values {
				atoms[i] = v
			}
			in[key] = atoms
		default:
			other[key] = append([]string(nil), values...)
		}
	}

	content, err := r.evaluate(nil, in, complemented, true)
	if err != nil {
		return nil, err
	}
	return &Instance{registry: r, content: content, other: other}, nil
}

// ProcessQuery parses a raw query string with net/url semantics and
// processes the result.
func (r *Registry) ProcessQuery(query string) (*Instance, error) {
	raw, err := url.ParseQuery(query)
	if err != nil {
		return nil, err
	}
	return r.Process(raw)
}

// complementSet resolves the reserved complement parameter's values into
// the set of template names to complement. Unknown names are ignored
// silently; a known template without a complement function is an error.
func (r *Registry) complementSet(names []any) (map[string]bool, error) {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		name, ok := n.(string)
		if !ok {
			name = atomString(n)
		}
		t, known := r.templates[name]
		if !known {
			continue
		}
		if t.complement == nil {
			return nil, &BadComplementError{Name: name}
		}
		out[name] = true
	}
	return out, nil
}

// evaluate runs the rank-ordered pipeline over seed ∪ raw and returns the
// validated content map. seed holds already-processed values (Instance
// content on Set); raw holds unprocessed atom lists. complemented names
// are rewritten through their complement callback after assignment.
func (r *Registry) evaluate(seed map[string]any, raw rawInput, complemented map[string]bool, withDefaults bool) (map[string]any, error) {
	out := make(map[string]any, len(seed)+len(raw))
	for k, v := range seed {
		out[k] = v
	}
	doomed := make(map[string]bool)

	for _, rank := range r.ranks {
		// First sweep: explicit assignments (raw wins over consumers).
		for _, name := range rank {
			t := r.templates[name]
			assigned := false

			switch atoms, inRaw := raw[name]; {
			case inRaw:
				// 3a. Raw wins over consumer eligibility and defaults.
				v, present, err := t.Process(atoms)
				if err != nil {
					return nil, err
				}
				if !present {
					delete(out, name)
					break
				}
				out[name] = v
				for _, c := range t.consumes {
					doomed[c] = true
				}
				assigned = true

			case len(t.consumes) > 0 && allPresent(out, t.consumes):
				// 3b. Consumer fires once every input is processed.
				values := make([]any, len(t.consumes))
				for i, c := range t.consumes {
					values[i] = out[c]
				}
				v, err := t.consume(values)
				if err != nil {
					return nil, err
				}
				out[name] = v
				for _, c := range t.consumes {
					doomed[c] = true
				}
				assigned = true
			}

			// 3d. Conflict check after assignment.
			if assigned {
				if err := checkConflicts(out, doomed, t); err != nil {
					return nil, err
				}
			}

			// 3e. Complement application for any present value at its
			// rank slot, assigned this round or seeded.
			if _, present := out[name]; present && complemented[name] {
				v, err := r.complementValue(t, out[name])
				if err != nil {
					return nil, err
				}
				out[name] = v
			}
		}

		// Second sweep: defaults, once the rank's explicit state is
		// settled. A default never fires against a conflicting presence,
		// nor against conflicting raw input still pending in a later
		// rank, so explicit input always beats a default.
		if !withDefaults {
			continue
		}
		for _, name := range rank {
			t := r.templates[name]
			if t.defaultFn == nil {
				continue
			}
			if _, present := out[name]; present {
				continue
			}
			if _, pending := raw[name]; pending {
				continue // supplied but processed to absent; stays absent
			}
			if liveConflict(out, doomed, t.conflicts) || rawPending(raw, t.conflicts) {
				continue
			}
			out[name] = t.defaultFn()
			if err := checkConflicts(out, doomed, t); err != nil {
				return nil, err
			}
			if complemented[name] {
				v, err := r.complementValue(t, out[name])
				if err != nil {
					return nil, err
				}
				out[name] = v
			}
		}
	}

	// 4. Deferred deletions, all at once.
	for c := range doomed {
		delete(out, c)
	}

	// 5. Validation: min cardinality and depends satisfaction. A consumed
	// (doomed) name counts as satisfied on both.
	for _, name := range r.sequence {
		t := r.templates[name]
		v, present := out[name]
		if !present {
			if t.min > 0 && !doomed[name] {
				return nil, &CardinalityError{Name: name, Have: 0, Bound: t.min, Min: true}
			}
			continue
		}
		if t.min > 0 {
			if have := t.atomCount(v); have < t.min {
				return nil, &CardinalityError{Name: name, Have: have, Bound: t.min, Min: true}
			}
		}
		for _, d := range t.depends {
			if _, ok := out[d]; !ok && !doomed[d] {
				return nil, &MissingDependencyError{Name: name, Missing: d}
			}
		}
	}

	return out, nil
}

// checkConflicts is the after-assignment conflict check (3d): any live
// (non-doomed) conflicting presence alongside t fails.
func checkConflicts(out map[string]any, doomed map[string]bool, t *Template) error {
	for _, c := range t.conflicts {
		if _, present := out[c]; present && !doomed[c] {
			return &ConflictError{A: t.name, B: c}
		}
	}
	return nil
}

// rawPending reports whether any of names is still waiting in the raw
// input (supplied by the caller but not yet, or never, processed).
func rawPending(raw rawInput, names []string) bool {
	for _, n := range names {
		if _, ok := raw[n]; ok {
			return true
		}
	}
	return false
}

// allPresent reports whether every name is a key of out.
func allPresent(out map[string]any, names []string) bool {
	for _, n := range names {
		if _, ok := out[n]; !ok {
			return false
		}
	}
	return true
}

// liveConflict reports whether any conflicting name is present in out and
// not marked for deletion.
func liveConflict(out map[string]any, doomed map[string]bool, conflicts []string) bool {
	for _, c := range conflicts {
		if _, ok := out[c]; ok && !doomed[c] {
			return true
		}
	}
	return false
}

// atomsOf normalizes one Set/Clone override value into an atom sequence.
func atomsOf(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{nil}
	case []any:
		return append([]any(nil), t...)
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}
