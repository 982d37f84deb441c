// Package paramset is a declarative registry and processor for named
// parameter sets drawn from URI query strings.
//
// 🚀 What is paramset?
//
//	A schema (the registry) describes each recognized parameter: its value
//	type, cardinality, interdependencies, derivation rules and
//	serialization format. paramset turns raw query input into a validated,
//	normalized in-memory value set (an instance), supports mutation with
//	the same guarantees, and re-serializes any instance into a canonical,
//	byte-stable query string. It's useful for:
//	  • Search/filter endpoints with interdependent parameters
//	  • Canonical URL generation (caching, deduplication, signing)
//	  • Derived parameters (year+month+day → date) with cascading cleanup
//	  • Compact set serialization via set-complement rewriting
//
// ✨ Key features:
//   - Per-parameter value pipeline: parse → coerce → constrain → compose
//   - Dependency/conflict/consumption DAG with rank-ordered evaluation
//   - Canonical serialization, including the set-complement optimization
//   - Declarative YAML schema loading with named callback resolution
//   - Pluggable value types behind a minimal Adapter façade
//
// Under the hood, everything is organized under two subpackages:
//
//	param/ — Template, Registry, Instance, ranking, serialization, errors
//	vtype/ — the value-type Adapter façade and builtin atomic/composite types
//
// Quick example:
//
//	reg, _ := param.New(param.Config{Params: []param.Descriptor{
//	  {Name: "foo", Type: vtype.Int, Max: 1},
//	}})
//	inst, _ := reg.ProcessQuery("foo=3")
//	s, _ := inst.AsString() // "foo=3"
//
// Dive into param/doc.go for the evaluation-order contract and
// vtype/doc.go for the adapter catalogue.
//
//	go get github.com/katalvlaran/paramset
package paramset
