package geom

import (
	"fmt"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// Interval is the half-open range [Start, End) on one axis.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Len returns End - Start.
func (i Interval) Len() float64 { return i.End - i.Start }

// Valid reports whether the interval has strictly positive length.
// NaN bounds are never valid.
func (i Interval) Valid() bool { return i.Start < i.End }

// Overlaps reports whether i and j share interior points.
// Intervals that only touch at a boundary do not overlap.
func (i Interval) Overlaps(j Interval) bool {
	return i.Start < j.End && j.Start < i.End
}

// String formats the interval as "[start, end)".
func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g)", i.Start, i.End)
}

// SplitInterval splits a by b into ordered, non-empty pieces whose union is
// exactly a. The parallel inside slice reports which pieces lie within the
// intersection of a and b.
//
// a is split only at the bounds of b that fall strictly inside a:
//
//	b covers a's start, ends inside:   [aS,bE) [bE,aE)         true  false
//	b covers a:                        [aS,aE)                 true
//	b starts inside, covers a's end:   [aS,bS) [bS,aE)         false true
//	b strictly inside a:               [aS,bS) [bS,bE) [bE,aE) false true false
//
// Calling SplitInterval with intervals that do not overlap breaks its
// precondition and returns an error with code NON_OVERLAPPING_INTERVAL.
// Empty or inverted intervals return DEGENERATE_BOX.
func SplitInterval(a, b Interval) ([]Interval, []bool, error) {
	if !a.Valid() {
		return nil, nil, errors.New(errors.ErrCodeDegenerateBox, "interval %v is empty", a)
	}
	if !b.Valid() {
		return nil, nil, errors.New(errors.ErrCodeDegenerateBox, "interval %v is empty", b)
	}
	if !a.Overlaps(b) {
		return nil, nil, errors.New(errors.ErrCodeNonOverlapping, "interval %v does not overlap %v", a, b)
	}

	left := b.Start <= a.Start
	right := b.End >= a.End

	switch {
	case left && right:
		return []Interval{a}, []bool{true}, nil
	case left:
		return []Interval{{a.Start, b.End}, {b.End, a.End}}, []bool{true, false}, nil
	case right:
		return []Interval{{a.Start, b.Start}, {b.Start, a.End}}, []bool{false, true}, nil
	default:
		return []Interval{{a.Start, b.Start}, {b.Start, b.End}, {b.End, a.End}},
			[]bool{false, true, false}, nil
	}
}
