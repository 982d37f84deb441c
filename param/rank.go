// SPDX-License-Identifier: MIT
// Package: paramset/param
//
// rank.go — Kahn-style stratification of the depends/consumes DAG.
/*
Ranking

Description:
  Evaluation order is a stratification, not a flat topological order:
  rank 0 holds templates with no unresolved prerequisites, rank k holds
  templates whose prerequisites all live in ranks < k. Within a rank the
  original declaration sequence is preserved, which keeps serialization
  and evaluation deterministic.

Steps:
  1. Walk the declaration sequence, collecting every unplaced template
     whose prerequisites (depends ∪ consumes, restricted to known names)
     are all placed.
  2. Close the rank, mark its members placed, repeat.
  3. A pass that places nothing while templates remain is a cycle;
     construction fails with CycleError listing the leftovers.

Complexity: O(T·R + E) for T templates, R ranks, E edges. Graphs are
small (tens to hundreds of parameters), so the quadratic worst case is
irrelevant in practice.
*/

package param

// prereqs returns the union of depends and consumes, restricted by the
// caller to names that exist in the registry.
func (t *Template) prereqs() []string {
	out := make([]string, 0, len(t.depends)+len(t.consumes))
	seen := make(map[string]struct{}, cap(out))
	for _, lst := range [][]string{t.depends, t.consumes} {
		for _, name := range lst {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// stratify computes the evaluation ranks over templates, preserving
// sequence order inside each rank.
func stratify(templates map[string]*Template, sequence []string) ([][]string, error) {
	placed := make(map[string]bool, len(sequence))
	ranks := make([][]string, 0, 2)

	for len(placed) < len(sequence) {
		var rank []string
		for _, name := range sequence {
			if placed[name] {
				continue
			}
			ready := true
			for _, p := range templates[name].prereqs() {
				// Unknown prerequisites cannot gate ranking; they surface
				// later as MissingDependency at evaluation time.
				if _, known := templates[p]; known && !placed[p] {
					ready = false
					break
				}
			}
			if ready {
				rank = append(rank, name)
			}
		}
		if len(rank) == 0 {
			var cycle []string
			for _, name := range sequence {
				if !placed[name] {
					cycle = append(cycle, name)
				}
			}
			return nil, &CycleError{Cycle: cycle}
		}
		for _, name := range rank {
			placed[name] = true
		}
		ranks = append(ranks, rank)
	}
	return ranks, nil
}
