// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// serialize.go — canonical query-string serialization.
//
// Contract:
//   • Output is byte-stable: sequence order for keys, canonical atom
//     order per key, the reserved complement key strictly last.
//   • The set-complement rewrite fires only when the complemented form is
//     strictly shorter in bytes (counting its complement-key entry), or
//     when the direct form would drop the key entirely (empty set).
//   • No percent-encoding is applied here; the caller owns encoding.

package param

import (
	"net/url"
	"strings"
)

// AsString serializes the instance into its canonical query string.
// Empty instances serialize to "". Complexity: O(total atoms) plus
// unwind/complement cost.
func (i *Instance) AsString() (string, error) {
	r := i.registry
	var pairs []string
	var complemented []string

	for _, name := range r.sequence {
		t := r.templates[name]
		v, present := i.content[name]
		strs, cflag, emit, err := t.Unprocess(v, present)
		if err != nil {
			return "", err
		}
		if !emit {
			continue
		}

		if !cflag && present && t.complement != nil && t.universeFn != nil {
			if alt, ok := i.shorterComplement(t, v, strs); ok {
				strs = alt
				cflag = true
			}
		}

		if cflag {
			complemented = append(complemented, name)
		}
		for _, s := range strs {
			pairs = append(pairs, name+"="+s)
		}
	}

	for _, name := range complemented {
		pairs = append(pairs, r.complementKey+"="+name)
	}
	return strings.Join(pairs, "&"), nil
}

// shorterComplement rewrites value into its complemented atom strings when
// that form wins the byte-length rule, or when the direct form would drop
// the key entirely (an empty set only survives as "complement of the
// universe"). Rewrite failures fall back to the direct form.
func (i *Instance) shorterComplement(t *Template, value any, direct []string) ([]string, bool) {
	altValue, err := i.registry.complementValue(t, value)
	if err != nil {
		return nil, false
	}
	alt, _, emit, err := t.Unprocess(altValue, true)
	if err != nil || !emit {
		return nil, false
	}
	if len(direct) == 0 {
		return alt, true
	}
	if len(alt) == 0 {
		// Complementing a full set would serialize to nothing and lose
		// the key on the wire; keep the direct form.
		return nil, false
	}
	altCost := pairsLen(t.name, alt) + 1 + len(i.registry.complementKey) + 1 + len(t.name)
	if altCost < pairsLen(t.name, direct) {
		return alt, true
	}
	return nil, false
}

// pairsLen is the byte length of the "k=v&k=v..." serialization of strs.
func pairsLen(name string, strs []string) int {
	n := 0
	for _, s := range strs {
		n += len(name) + 1 + len(s)
	}
	if len(strs) > 1 {
		n += len(strs) - 1 // "&" separators
	}
	return n
}

// MakeURI returns a clone of u with its query component replaced by the
// canonical serialization of the instance.
func (i *Instance) MakeURI(u *url.URL) (*url.URL, error) {
	q, err := i.AsString()
	if err != nil {
		return nil, err
	}
	dup := *u
	dup.RawQuery = q
	if dup.User != nil {
		userCopy := *u.User
		dup.User = &userCopy
	}
	return &dup, nil
}
