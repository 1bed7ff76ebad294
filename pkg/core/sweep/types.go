package sweep

import (
	"fmt"
	"strings"

	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/errors"
)

// Weighted is a box carrying the gradient that is active inside it.
type Weighted struct {
	Box  geom.Box `json:"box"`
	Grad float64  `json:"grad"`
}

// Segment is one cell of the output partition.
type Segment struct {
	Patch    geom.Box `json:"patch"`    // cell in the cross-section
	Grad     float64  `json:"grad"`     // gradient active at the end of the sweep
	Integral float64  `json:"integral"` // integral along the swept axis
}

// Mode selects which events drive the sweep.
type Mode int

const (
	// ModeCoverage processes box starts and ends.
	ModeCoverage Mode = iota
	// ModeStartEvents processes box starts only.
	ModeStartEvents
)

var modeNames = map[Mode]string{
	ModeCoverage:    "coverage",
	ModeStartEvents: "start-events",
}

// String returns "coverage" or "start-events".
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name back into a Mode. The empty string maps to
// ModeCoverage.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "coverage":
		return ModeCoverage, nil
	case "start-events", "start", "reference":
		return ModeStartEvents, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "invalid sweep mode: %q (must be coverage or start-events)", s)
}

// Stats describes the work done by one call to [Integrate].
type Stats struct {
	Events    int // events processed, sentinel included
	Splits    int // cells handed to the box splitter
	PeakCells int // largest partition size reached
	Cells     int // final partition size
}

type config struct {
	mode     Mode
	maxCells int
	stats    *Stats
}

// Option configures [Integrate].
type Option func(*config)

// WithMode selects the event model. The default is ModeCoverage.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithMaxCells fails the sweep once the partition grows beyond n cells.
// n <= 0 means unlimited.
func WithMaxCells(n int) Option {
	return func(c *config) { c.maxCells = n }
}

// WithStats records work counters into s.
func WithStats(s *Stats) Option {
	return func(c *config) { c.stats = s }
}

// CrossSectionAxes returns, for each axis of an output patch, the index of
// the original input axis it corresponds to when integrating n-dimensional
// boxes along axis.
func CrossSectionAxes(n, axis int) []int {
	if n < 1 || axis < 0 || axis >= n {
		return nil
	}
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	perm[0], perm[axis] = perm[axis], perm[0]
	return perm[1:]
}

// Total returns the integral of the function over the whole domain: the sum
// of Integral × patch volume over all segments.
func Total(segs []Segment) float64 {
	var sum float64
	for _, s := range segs {
		sum += s.Integral * s.Patch.Volume()
	}
	return sum
}
