package sweep

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/errors"
)

type eventKind uint8

// Ends sort before starts at the same coordinate.
const (
	eventEnd eventKind = iota
	eventStart
)

type event struct {
	pos  float64
	kind eventKind
	id   int      // index into the relabelled input; len(input) for the sentinel
	clip geom.Box // cross-section of the box
}

// cell is a segment under construction. active lists the ids of the boxes
// covering the cell in start order and is only maintained in ModeCoverage.
type cell struct {
	patch    geom.Box
	grad     float64
	integral float64
	active   []int
}

// Integrate computes, for every cell of a partition of the cross-section
// orthogonal to axis, the integral along axis of the step function defined
// by boxes.
//
// All boxes must share a dimensionality n >= 1 and have positive extent on
// every axis, and 0 <= axis < n. Violations return DIMENSION_MISMATCH,
// DEGENERATE_BOX, INVALID_AXIS or EMPTY_INPUT errors before any work is
// done. boxes is not modified.
func Integrate(boxes []Weighted, axis int, opts ...Option) ([]Segment, error) {
	cfg := config{mode: ModeCoverage}
	for _, o := range opts {
		o(&cfg)
	}
	if err := validate(boxes, axis); err != nil {
		return nil, err
	}

	relabelled := relabel(boxes, axis)
	shapes := make([]geom.Box, len(relabelled))
	for i, w := range relabelled {
		shapes[i] = w.Box
	}
	bounds, err := geom.Bounds(shapes)
	if err != nil {
		return nil, err
	}

	s := &sweeper{
		cfg:   cfg,
		grads: make([]float64, len(relabelled)+1),
		cells: []*cell{{patch: bounds.Drop(0)}},
		last:  bounds.Start[0],
	}
	for i, w := range relabelled {
		s.grads[i] = w.Grad
	}

	for _, ev := range buildEvents(relabelled, bounds, cfg.mode) {
		if err := s.step(ev); err != nil {
			return nil, err
		}
	}

	out := make([]Segment, len(s.cells))
	for i, c := range s.cells {
		out[i] = Segment{Patch: c.patch, Grad: c.grad, Integral: c.integral}
	}
	if cfg.stats != nil {
		*cfg.stats = s.stats
		cfg.stats.Cells = len(out)
	}
	return out, nil
}

func validate(boxes []Weighted, axis int) error {
	if len(boxes) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "no boxes to integrate")
	}
	n := boxes[0].Box.Dim()
	if n < 1 {
		return errors.New(errors.ErrCodeDimensionMismatch, "boxes must have at least one axis")
	}
	for i, w := range boxes {
		if w.Box.Dim() != n || len(w.Box.End) != n {
			return errors.New(errors.ErrCodeDimensionMismatch,
				"box %d has %d start and %d end coordinates, want %d", i, w.Box.Dim(), len(w.Box.End), n)
		}
		if err := w.Box.Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "box %d", i)
		}
		if !finite(w.Grad) {
			return errors.New(errors.ErrCodeInvalidInput, "box %d has non-finite gradient %g", i, w.Grad)
		}
		for d := range n {
			if !finite(w.Box.Start[d]) || !finite(w.Box.End[d]) {
				return errors.New(errors.ErrCodeInvalidInput, "box %d has a non-finite bound on axis %d", i, d)
			}
		}
	}
	if axis < 0 || axis >= n {
		return errors.New(errors.ErrCodeInvalidAxis, "axis %d out of range for %d-dimensional boxes", axis, n)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// relabel returns copies of boxes with axis moved to position 0.
func relabel(boxes []Weighted, axis int) []Weighted {
	out := make([]Weighted, len(boxes))
	for i, w := range boxes {
		out[i] = Weighted{Box: w.Box.Swap(0, axis), Grad: w.Grad}
	}
	return out
}

// buildEvents lists the events of the relabelled boxes in processing order,
// followed by the zero-gradient sentinel at the far end of bounds.
func buildEvents(boxes []Weighted, bounds geom.Box, mode Mode) []event {
	events := make([]event, 0, 2*len(boxes)+1)
	for i, w := range boxes {
		clip := w.Box.Drop(0)
		events = append(events, event{pos: w.Box.Start[0], kind: eventStart, id: i, clip: clip})
		if mode == ModeCoverage {
			events = append(events, event{pos: w.Box.End[0], kind: eventEnd, id: i, clip: clip})
		}
	}
	slices.SortStableFunc(events, func(a, b event) int {
		if c := cmp.Compare(a.pos, b.pos); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})
	return append(events, event{
		pos:  bounds.End[0],
		kind: eventStart,
		id:   len(boxes),
		clip: bounds.Drop(0),
	})
}

type sweeper struct {
	cfg   config
	grads []float64
	cells []*cell
	last  float64
	stats Stats
}

func (s *sweeper) step(ev event) error {
	s.stats.Events++

	if delta := ev.pos - s.last; delta != 0 {
		for _, c := range s.cells {
			c.integral += delta * c.grad
		}
	}
	s.last = ev.pos

	next := make([]*cell, 0, len(s.cells))
	for _, c := range s.cells {
		switch {
		case !c.patch.Overlaps(ev.clip):
			next = append(next, c)
		case ev.clip.Contains(c.patch):
			s.apply(c, ev)
			next = append(next, c)
		default:
			s.stats.Splits++
			pieces, tags, err := geom.SplitBoxTagged(c.patch, ev.clip)
			if err != nil {
				return err
			}
			for i, p := range pieces {
				child := &cell{patch: p, grad: c.grad, integral: c.integral}
				if s.cfg.mode == ModeCoverage {
					child.active = slices.Clone(c.active)
				}
				if tags[i] == geom.Inside {
					s.apply(child, ev)
				}
				next = append(next, child)
			}
		}
	}
	s.cells = next

	if len(s.cells) > s.stats.PeakCells {
		s.stats.PeakCells = len(s.cells)
	}
	if s.cfg.maxCells > 0 && len(s.cells) > s.cfg.maxCells {
		return errors.New(errors.ErrCodeCellLimit,
			"partition grew to %d cells at position %g (limit %d)", len(s.cells), ev.pos, s.cfg.maxCells)
	}
	return nil
}

// apply updates a cell lying inside the event box's cross-section.
func (s *sweeper) apply(c *cell, ev event) {
	if s.cfg.mode != ModeCoverage {
		c.grad = s.grads[ev.id]
		return
	}
	switch ev.kind {
	case eventStart:
		c.active = append(c.active, ev.id)
	case eventEnd:
		if i := slices.Index(c.active, ev.id); i >= 0 {
			c.active = slices.Delete(c.active, i, i+1)
		}
	}
	c.grad = 0
	if n := len(c.active); n > 0 {
		c.grad = s.grads[c.active[n-1]]
	}
}
