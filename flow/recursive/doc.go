// Package recursive flattens a seed sequence and everything reachable from it
// through an expansion function into a single lazy sequence.
//
// Elements are visited breadth-first: every element of the seed is yielded,
// in seed order, before any of their children, and children are yielded in
// the order their parents were. The expansion of an element is requested at
// the moment the element is yielded, and a nested sequence is only started
// once it reaches the front of the queue, so the tree is never materialized.
//
// Three surfaces share one engine:
//
//   - Map and New work on iter.Seq and never fail.
//   - MapErr and NewFallible work on iter.Seq2[T, error]. The first error,
//     from a nested sequence or from the expansion function, ends the
//     traversal and is reported once. Nested sequences still queued are
//     dropped without being pulled.
//   - Transform is a core.Transformer for channel streams.
//
// Cycles are not detected. An expansion that reaches an ancestor again makes
// the output unbounded, just like an infinite tree; WithMaxDepth bounds it.
package recursive
