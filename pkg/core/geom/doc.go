// Package geom provides exact decomposition of axis-aligned boxes.
//
// # Overview
//
// The package works on half-open intervals and n-dimensional boxes
// (hyperrectangles) whose coordinates are plain float64 values. Nothing is
// approximated: every split point emitted by this package is one of the
// input coordinates, so decompositions are exact.
//
// Three routines build on each other:
//
//   - [SplitInterval] splits interval A by an overlapping interval B into at
//     most three pieces, each tagged inside or outside B.
//   - [SliceAxis] applies [SplitInterval] to a single axis of a box, copying
//     every other axis unchanged.
//   - [SplitBox] slices box A by clipping box B on every axis in turn,
//     producing disjoint pieces whose union is exactly A.
//
// # Containment Tracking
//
// [SplitBoxTagged] exposes the per-piece [Containment] state used while
// splitting. A piece starts [Pending]; a piece that ends up outside B on any
// axis becomes [Outside] and is never split again; pieces still pending
// after the last axis are [Inside]. [SplitBox] reports the same result as a
// boolean slice.
//
//	pieces, inside, err := geom.SplitBox(
//	    geom.Box{Start: []float64{0, 1}, End: []float64{2, 3}},
//	    geom.Box{Start: []float64{1, 1}, End: []float64{3, 2}},
//	)
//	// pieces: [0 1]..[1 3], [1 1]..[2 2], [1 2]..[2 3]
//	// inside: false, true, false
//
// # Preconditions
//
// Boxes must have equal dimensionality and a strictly positive extent on
// every axis. [SplitInterval] additionally requires its arguments to
// overlap. Violations are reported as *errors.Error values with the codes
// DIMENSION_MISMATCH, DEGENERATE_BOX and NON_OVERLAPPING_INTERVAL from
// package pkg/errors; no partial result is ever returned.
//
// # Concurrency
//
// All functions are pure and safe for concurrent use. Returned boxes never
// share backing arrays with their inputs.
package geom
