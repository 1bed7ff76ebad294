// Package sweep integrates a piecewise-constant step function along one axis.
//
// # Overview
//
// The function is described by a list of [Weighted] boxes. Wherever boxes
// overlap, the box that starts latest along the swept axis wins; ties are
// broken by input order, later entries winning. [Integrate] sweeps along the
// chosen axis and returns a partition of the cross-section (every axis
// except the swept one) into [Segment] cells, each carrying the exact
// integral of the function along the swept axis for every point of the cell.
//
//	segs, err := sweep.Integrate([]sweep.Weighted{
//	    {Box: geom.Box{Start: []float64{0, 0}, End: []float64{2, 6}}, Grad: 1},
//	    {Box: geom.Box{Start: []float64{2, 0}, End: []float64{6, 6}}, Grad: 2},
//	}, 0)
//	// one segment: patch [0]..[6], integral 1*2 + 2*4 = 10
//
// # Algorithm
//
// The input is relabelled so that the swept axis becomes axis 0 (an
// immutable copy; the caller's boxes are never touched). The partition
// starts as a single cell covering the bounding cross-section with gradient
// 0. Events are processed in ascending order of their axis-0 coordinate.
// At each event every cell first accumulates (position - last position) ×
// gradient, then cells overlapping the event box's cross-section are split
// with [geom.SplitBoxTagged] and the pieces inside it take on the new
// gradient. A zero-gradient sentinel event at the far end of the domain
// flushes the final stretch.
//
// # Modes
//
// [ModeCoverage] (the default) processes box ends as well as starts. Each
// cell remembers which boxes cover it, so when a box ends the cell falls back
// to the most recently started box still covering it, or to 0.
//
// [ModeStartEvents] processes box starts only: a gradient stays active
// until another box overrides it. This is the classic formulation and is
// cheaper, and both modes agree whenever every box either runs to the far
// end of the domain or is overridden where it ends.
//
// # Output Axes
//
// Patches keep the relabelled axis order. [CrossSectionAxes] maps every
// patch axis back to the original axis index.
//
// # Cost
//
// Every event can multiply the number of cells it touches by up to three
// per axis. [WithMaxCells] bounds the partition size and fails with
// CELL_LIMIT_EXCEEDED instead of exhausting memory.
package sweep
