// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// registry.go — registry construction: descriptor merging, symmetric
// edge normalization, ranking, groups, and the universe cache.
//
// Design:
//   • The Registry is immutable after New and freely shareable across
//     goroutines for read use; Process writes only into fresh Instances.
//   • All symmetric/implied edges (conflicts mirroring, consumes →
//     depends + conflicts) are normalized here so evaluation never does
//     cross-template lookups.
//   • Universe thunks are cached in a go-cache store keyed by template
//     name; Refresh recomputes every cached universe. Refresh must be
//     serialized externally with in-flight Process/AsString calls that
//     touch the same registry (call it during quiescence).

package param

import (
	"fmt"

	"github.com/patrickmn/go-cache"
)

// Registry is the whole-schema object: templates, canonical sequence,
// groups, the reserved complement name, and the evaluation ranks.
type Registry struct {
	templates     map[string]*Template
	sequence      []string
	groups        map[string][]string
	complementKey string
	ranks         [][]string
	universes     *cache.Cache
}

// New builds a Registry from cfg.
//
// Construction resolves Use reuse pointers (by-value descriptor merge),
// installs symmetric conflict edges, folds Consumes into Depends and
// Conflicts, registers group membership, and stratifies the result into
// evaluation ranks.
//
// Errors:
//   - ErrDuplicateName, ErrReservedName, ErrUnknownUse — bad descriptors.
//   - ErrUnknownComposite, ErrBadFormat — bad template slots.
//   - ErrCycle — depends/consumes is not a DAG.
//
// Complexity: O(T + E) plus ranking.
func New(cfg Config) (*Registry, error) {
	r := &Registry{
		templates:     make(map[string]*Template, len(cfg.Params)),
		sequence:      make([]string, 0, len(cfg.Params)),
		groups:        make(map[string][]string),
		complementKey: cfg.Complement,
		universes:     cache.New(cache.NoExpiration, 0),
	}
	if r.complementKey == "" {
		r.complementKey = DefaultComplementKey
	}

	// Resolve Use merges against earlier descriptors (by name).
	byName := make(map[string]Descriptor, len(cfg.Params))
	for _, d := range cfg.Params {
		if d.Name == "" {
			return nil, fmt.Errorf("param: descriptor without a name: %w", ErrUnknownParam)
		}
		if d.Name == r.complementKey {
			return nil, fmt.Errorf("param: %s: %w", d.Name, ErrReservedName)
		}
		if _, dup := byName[d.Name]; dup {
			return nil, fmt.Errorf("param: %s: %w", d.Name, ErrDuplicateName)
		}
		if d.Use != "" {
			base, ok := byName[d.Use]
			if !ok {
				return nil, fmt.Errorf("param: %s: use %q: %w", d.Name, d.Use, ErrUnknownUse)
			}
			d = d.merge(base)
		}
		byName[d.Name] = d

		t, err := newTemplate(d)
		if err != nil {
			return nil, err
		}
		r.templates[t.name] = t
		r.sequence = append(r.sequence, t.name)

		for _, g := range d.Groups {
			r.groups[g] = append(r.groups[g], t.name)
		}
	}

	// Registry-level group declarations extend descriptor-level ones.
	for g, members := range cfg.Groups {
		for _, m := range members {
			if _, ok := r.templates[m]; !ok {
				return nil, fmt.Errorf("param: group %s: member %s: %w", g, m, ErrUnknownParam)
			}
			if !containsName(r.groups[g], m) {
				r.groups[g] = append(r.groups[g], m)
			}
		}
	}

	// Consumption implies depends and conflicts on the consumer side.
	for _, t := range r.templates {
		for _, c := range t.consumes {
			if !containsName(t.depends, c) {
				t.depends = append(t.depends, c)
			}
			if !containsName(t.conflicts, c) {
				t.conflicts = append(t.conflicts, c)
			}
		}
	}

	// Mirror every conflict edge so each template carries a complete
	// local view.
	for _, name := range r.sequence {
		t := r.templates[name]
		for _, c := range t.conflicts {
			peer, ok := r.templates[c]
			if !ok {
				continue // conflicts with unknown names can never fire
			}
			if !containsName(peer.conflicts, name) {
				peer.conflicts = append(peer.conflicts, name)
			}
		}
	}

	ranks, err := stratify(r.templates, r.sequence)
	if err != nil {
		return nil, err
	}
	r.ranks = ranks

	return r, nil
}

// MustNew is New for static schemas; it panics on construction errors.
func MustNew(cfg Config) *Registry {
	r, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// Template returns the frozen template for name, if registered.
func (r *Registry) Template(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Sequence returns a copy of the canonical parameter order.
func (r *Registry) Sequence() []string {
	return append([]string(nil), r.sequence...)
}

// Groups returns a copy of the group-name catalogue.
func (r *Registry) Groups() []string {
	out := make([]string, 0, len(r.groups))
	for g := range r.groups {
		out = append(out, g)
	}
	return out
}

// ComplementKey returns the reserved complement parameter name.
func (r *Registry) ComplementKey() string { return r.complementKey }

// Ranks returns a deep copy of the evaluation stratification; exposed for
// diagnostics and tests.
func (r *Registry) Ranks() [][]string {
	out := make([][]string, len(r.ranks))
	for i, rank := range r.ranks {
		out[i] = append([]string(nil), rank...)
	}
	return out
}

// Refresh re-invokes every declared universe thunk and replaces the
// cached results. Serialize externally with in-flight evaluation.
func (r *Registry) Refresh() {
	for _, name := range r.sequence {
		t := r.templates[name]
		if t.universeFn == nil {
			continue
		}
		r.universes.Set(name, t.universeFn(), cache.NoExpiration)
	}
}

// universeOf returns the cached universe for name, computing and caching
// it on first use. Returns nil when no universe thunk is declared.
func (r *Registry) universeOf(name string) any {
	if u, ok := r.universes.Get(name); ok {
		return u
	}
	t, ok := r.templates[name]
	if !ok || t.universeFn == nil {
		return nil
	}
	u := t.universeFn()
	r.universes.Set(name, u, cache.NoExpiration)
	return u
}

// complementValue rewrites value through t's complement callback against
// the cached universe.
func (r *Registry) complementValue(t *Template, value any) (any, error) {
	if t.complement == nil {
		return nil, &BadComplementError{Name: t.name}
	}
	out, err := t.complement(value, r.universeOf(t.name))
	if err != nil {
		return nil, callbackError(t.name, "complement", err)
	}
	return out, nil
}

func containsName(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
