// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// instance.go — the validated, registry-bound value set.
//
// Contract:
//   • An Instance holds only values that passed the full pipeline, so
//     invariants I1..I4 of the engine hold between operations.
//   • Set and Clone are atomic: on failure the receiver's content is
//     untouched.
//   • Instances are not safe for concurrent mutation; concurrent readers
//     are safe while no writer exists. The Registry must outlive every
//     Instance it produced.

package param

// Instance is a validated value map bound to its Registry.
type Instance struct {
	registry *Registry
	content  map[string]any
	other    map[string][]string
}

// Registry returns the owning registry (non-owning back-reference).
func (i *Instance) Registry() *Registry { return i.registry }

// Get returns the processed value for key. The second result mirrors map
// semantics: present-but-null values (empty=true scalars) return (nil,
// true). Complexity: O(1).
func (i *Instance) Get(key string) (any, bool) {
	v, ok := i.content[key]
	return v, ok
}

// Exists reports presence of key in the validated content.
func (i *Instance) Exists(key string) bool {
	_, ok := i.content[key]
	return ok
}

// Len returns the number of present parameters.
func (i *Instance) Len() int { return len(i.content) }

// Other returns a copy of the raw key→values pairs that named no
// registered template. They survive processing verbatim and are never
// serialized by AsString.
func (i *Instance) Other() map[string][]string {
	out := make(map[string][]string, len(i.other))
	for k, v := range i.other {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// SetOption tunes a single Set call.
type SetOption func(*setConfig)

type setConfig struct {
	withDefaults bool
}

// WithDefaults makes Set run default thunks for absent, non-conflicting
// templates, as Process does. Off unless requested.
func WithDefaults() SetOption {
	return func(c *setConfig) { c.withDefaults = true }
}

// Set re-runs the rank pipeline seeded with the existing content plus the
// supplied raw overrides, honoring conflicts and cascading exactly like
// Process. Values may be single atoms, []string, or []any; a nil or
// all-empty override deletes the key (empty=false templates). The
// reserved complement key is honored like in Process.
//
// Atomic: on error the instance is left unchanged.
// Complexity: one full pipeline run.
func (i *Instance) Set(pairs map[string]any, opts ...SetOption) error {
	var cfg setConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	in := make(rawInput, len(pairs))
	otherUpdates := make(map[string][]string)
	var complemented map[string]bool
	for key, v := range pairs {
		if key == i.registry.complementKey {
			var err error
			complemented, err = i.registry.complementSet(atomsOf(v))
			if err != nil {
				return err
			}
			continue
		}
		// Overrides for unregistered names route into Other just like
		// Process routes them; they bypass the pipeline entirely.
		if _, known := i.registry.templates[key]; !known {
			otherUpdates[key] = stringsOf(atomsOf(v))
			continue
		}
		in[key] = atomsOf(v)
	}

	content, err := i.registry.evaluate(i.content, in, complemented, cfg.withDefaults)
	if err != nil {
		return err
	}
	i.content = content
	for k, v := range otherUpdates {
		i.other[k] = v
	}
	return nil
}

// Group returns a shallow mapping restricted to the template names listed
// under the named group, preserving Exists semantics: absent keys stay
// absent, present-but-null keys are included.
func (i *Instance) Group(name string) (map[string]any, error) {
	members, ok := i.registry.groups[name]
	if !ok {
		return nil, &groupError{name: name}
	}
	out := make(map[string]any, len(members))
	for _, m := range members {
		if v, present := i.content[m]; present {
			out[m] = v
		}
	}
	return out, nil
}

// Clone returns a structural copy of the instance, then applies overrides
// through Set. Composite values are copied by reference; callers must not
// mutate them in place. A nil overrides map clones verbatim.
func (i *Instance) Clone(overrides map[string]any, opts ...SetOption) (*Instance, error) {
	dup := &Instance{
		registry: i.registry,
		content:  make(map[string]any, len(i.content)),
		other:    make(map[string][]string, len(i.other)),
	}
	for k, v := range i.content {
		dup.content[k] = v
	}
	for k, v := range i.other {
		dup.other[k] = append([]string(nil), v...)
	}
	if overrides == nil {
		return dup, nil
	}
	if err := dup.Set(overrides, opts...); err != nil {
		return nil, err
	}
	return dup, nil
}

// groupError carries the unknown group name while matching ErrUnknownGroup.
type groupError struct{ name string }

func (e *groupError) Error() string { return "param: unknown group " + e.name }

func (e *groupError) Is(target error) bool { return target == ErrUnknownGroup }

// stringsOf renders override atoms for the Other side-channel.
func stringsOf(atoms []any) []string {
	out := make([]string, len(atoms))
	for i, a := range atoms {
		if a == nil {
			continue
		}
		out[i] = atomString(a)
	}
	return out
}
