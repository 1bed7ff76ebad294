package geom

import "github.com/matzehuels/hypercuboid/pkg/errors"

// Containment records where a piece produced by [SplitBoxTagged] lies
// relative to the clipping box.
type Containment uint8

const (
	// Pending marks a piece that has been inside the clip on every axis
	// processed so far.
	Pending Containment = iota
	// Inside marks a piece contained in the clip on every axis.
	Inside
	// Outside marks a piece that lies outside the clip on at least one axis.
	// Outside pieces are never split further.
	Outside
)

// String returns "pending", "inside" or "outside".
func (c Containment) String() string {
	switch c {
	case Pending:
		return "pending"
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	}
	return "unknown"
}

// SplitBox decomposes a into disjoint pieces whose union is exactly a, such
// that no face of b cuts through the interior of a piece. inside[i] is true
// iff pieces[i] is contained in b.
//
// If a and b do not overlap at all, a is returned whole and outside.
// Both boxes are validated first: differing dimensionality returns
// DIMENSION_MISMATCH and an empty axis returns DEGENERATE_BOX.
func SplitBox(a, b Box) (pieces []Box, inside []bool, err error) {
	pieces, tags, err := SplitBoxTagged(a, b)
	if err != nil {
		return nil, nil, err
	}
	inside = make([]bool, len(tags))
	for i, t := range tags {
		inside[i] = t == Inside
	}
	return pieces, inside, nil
}

// SplitBoxTagged is [SplitBox] reporting [Containment] tags. Every returned
// tag is either [Inside] or [Outside].
//
// The pieces are produced axis by axis: on axis d every still pending piece
// that overlaps b on all axes is sliced by b's extent on d. The first slice
// that lands outside b freezes that piece as [Outside].
func SplitBoxTagged(a, b Box) ([]Box, []Containment, error) {
	if a.Dim() != b.Dim() {
		return nil, nil, errors.New(errors.ErrCodeDimensionMismatch,
			"cannot split %d-dimensional box by %d-dimensional box", a.Dim(), b.Dim())
	}
	if err := a.Validate(); err != nil {
		return nil, nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}
	return splitBox(a, b)
}

// splitBox assumes both boxes are valid and of equal dimensionality.
func splitBox(a, b Box) ([]Box, []Containment, error) {
	if !a.Overlaps(b) {
		return []Box{a.Clone()}, []Containment{Outside}, nil
	}

	pieces := []Box{a.Clone()}
	tags := []Containment{Pending}

	for d := 0; d < a.Dim(); d++ {
		next := make([]Box, 0, len(pieces)+2)
		nextTags := make([]Containment, 0, len(pieces)+2)
		for i, p := range pieces {
			if tags[i] != Pending || !p.Overlaps(b) {
				next = append(next, p)
				nextTags = append(nextTags, Outside)
				continue
			}
			sub, in, err := SliceAxis(p, b.Axis(d), d)
			if err != nil {
				return nil, nil, err
			}
			for j := range sub {
				next = append(next, sub[j])
				if in[j] {
					nextTags = append(nextTags, Pending)
				} else {
					nextTags = append(nextTags, Outside)
				}
			}
		}
		pieces, tags = next, nextTags
	}

	for i := range tags {
		if tags[i] == Pending {
			tags[i] = Inside
		}
	}
	return pieces, tags, nil
}
