// Package placed implements placed neighboring fields: values annotated
// with the subset of a multi-tier device hierarchy on which they are defined
// (P) and the subset from which their neighbor data is sourced (Q).
//
// The package has three layers:
//
//   - Placement and Placed[T]: the value type, an optional payload whose
//     presence is pinned by the activity flag tier & P.
//   - Shape and Resolve: the inference engine unifying arbitrary mixed
//     shapes (scalars, fields, placed leaves, products, arrays) into one
//     placement, by intersecting P and uniting Q.
//   - Arg and the combinators (PMap, FoldHood, GetOr, named operators):
//     pointwise work gated by the inferred activity flag, short-circuiting
//     to empty results on inactive devices.
//
// There are no runtime error paths in the calculus itself: all rule
// violations (tier mixing, nesting, non-atomic tiers) are programmer errors
// surfaced as panics carrying *Error, and "absence" is an ordinary state
// every consumer handles through defaults.
package placed
