package geom

import (
	"fmt"
	"slices"

	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// Box is an axis-aligned hyperrectangle spanning [Start[i], End[i]) on every
// axis i. A box with zero axes is a point; it has volume 1 and is contained
// in every other zero-axis box.
//
// The zero value is the zero-axis box.
type Box struct {
	Start []float64 `json:"start" toml:"start"`
	End   []float64 `json:"end" toml:"end"`
}

// NewBox builds a box from per-axis intervals.
func NewBox(axes ...Interval) Box {
	b := Box{Start: make([]float64, len(axes)), End: make([]float64, len(axes))}
	for i, iv := range axes {
		b.Start[i] = iv.Start
		b.End[i] = iv.End
	}
	return b
}

// Dim returns the number of axes.
func (b Box) Dim() int { return len(b.Start) }

// Axis returns the extent of b on axis d.
func (b Box) Axis(d int) Interval { return Interval{b.Start[d], b.End[d]} }

// Validate checks that Start and End have equal length and that every axis
// has strictly positive extent.
func (b Box) Validate() error {
	if len(b.Start) != len(b.End) {
		return errors.New(errors.ErrCodeDimensionMismatch,
			"box has %d start coordinates but %d end coordinates", len(b.Start), len(b.End))
	}
	for d := range b.Start {
		if !(b.Start[d] < b.End[d]) {
			return errors.New(errors.ErrCodeDegenerateBox, "box %v is empty on axis %d", b, d)
		}
	}
	return nil
}

// Clone returns a deep copy of b.
func (b Box) Clone() Box {
	return Box{Start: slices.Clone(b.Start), End: slices.Clone(b.End)}
}

// WithAxis returns a copy of b whose extent on axis d is iv.
func (b Box) WithAxis(d int, iv Interval) Box {
	c := b.Clone()
	c.Start[d] = iv.Start
	c.End[d] = iv.End
	return c
}

// Drop returns a copy of b without axis d.
func (b Box) Drop(d int) Box {
	return Box{
		Start: slices.Delete(slices.Clone(b.Start), d, d+1),
		End:   slices.Delete(slices.Clone(b.End), d, d+1),
	}
}

// Swap returns a copy of b with axes i and j exchanged.
func (b Box) Swap(i, j int) Box {
	c := b.Clone()
	c.Start[i], c.Start[j] = c.Start[j], c.Start[i]
	c.End[i], c.End[j] = c.End[j], c.End[i]
	return c
}

// Volume returns the product of the extents on every axis.
func (b Box) Volume() float64 {
	v := 1.0
	for d := range b.Start {
		v *= b.End[d] - b.Start[d]
	}
	return v
}

// Overlaps reports whether b and o share interior points on every axis.
// Both boxes must have the same dimensionality.
func (b Box) Overlaps(o Box) bool {
	for d := range b.Start {
		if !(b.Start[d] < o.End[d] && o.Start[d] < b.End[d]) {
			return false
		}
	}
	return true
}

// Contains reports whether o lies entirely within b.
func (b Box) Contains(o Box) bool {
	for d := range b.Start {
		if o.Start[d] < b.Start[d] || o.End[d] > b.End[d] {
			return false
		}
	}
	return true
}

// Equal reports whether b and o have identical coordinates.
func (b Box) Equal(o Box) bool {
	return slices.Equal(b.Start, o.Start) && slices.Equal(b.End, o.End)
}

// String formats the box as "[start...]..[end...]".
func (b Box) String() string {
	return fmt.Sprintf("%v..%v", b.Start, b.End)
}

// Bounds returns the smallest box containing every box in boxes.
// It returns an error if boxes is empty or dimensionalities differ.
func Bounds(boxes []Box) (Box, error) {
	if len(boxes) == 0 {
		return Box{}, errors.New(errors.ErrCodeEmptyInput, "cannot bound an empty set of boxes")
	}
	out := boxes[0].Clone()
	for i, b := range boxes[1:] {
		if b.Dim() != out.Dim() {
			return Box{}, errors.New(errors.ErrCodeDimensionMismatch,
				"box %d has %d axes, want %d", i+1, b.Dim(), out.Dim())
		}
		for d := range out.Start {
			out.Start[d] = min(out.Start[d], b.Start[d])
			out.End[d] = max(out.End[d], b.End[d])
		}
	}
	return out, nil
}
