// Package param implements the paramset evaluation engine: the Template
// schema model, the Registry with its rank-ordered dependency evaluation,
// and the validated Instance value set with canonical serialization.
/*
Evaluation — rank-ordered processing

Description:
  A Registry stratifies its templates over the depends ∪ consumes DAG into
  ranks: rank 0 holds templates with no prerequisites, rank k holds
  templates whose prerequisites all live in ranks < k. Processing walks the
  ranks in order so every consumer sees its inputs fully processed.

Steps (per template, per rank):
  1. Raw wins: if the input carries the name, run the Template pipeline
     (cardinality cap → empty handling → coerce+check → composite →
     scalar/sequence selection) and mark consumed inputs for deletion.
  2. Else, consumers: if every consumed name is already present, derive
     the value through the consumer callback and mark inputs for deletion.
  3. Else, defaults: when enabled, and the template has a default thunk,
     and no live (non-doomed) conflicting name is present.
  4. Conflict check: any live conflicting name alongside this one fails.
  5. Complement application: names listed under the reserved complement
     key are rewritten through their complement callback.
  Deletions are deferred until all ranks have run, so sibling consumers in
  the same rank still observe consumed values.

Validation after the walk: min cardinality (TooFew) and depends
satisfaction (MissingDependency; consumed-and-deleted inputs count as
satisfied).

Serialization:
  Instance.AsString walks the registry sequence, unprocesses each present
  value back into formatted atoms, and joins "k=v" pairs with "&". A
  set-valued parameter with a complement and a universe is rewritten into
  its complemented form when that form is strictly shorter in bytes; the
  rewritten names are listed under the reserved complement key, emitted
  last. Processing the result reverses the rewrite, so round-trips are
  value-stable.

Complexity: processing is O(T + A) for T templates and A input atoms,
plus callback cost; ranking is O(T·R) for R ranks at construction.
*/
package param
