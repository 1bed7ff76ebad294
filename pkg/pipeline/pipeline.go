// Package pipeline runs integrations with caching, tracing and hooks.
//
// This package is the single entry point used by the CLI and the HTTP API
// to integrate a box set. It validates options, looks the result up in a
// [cache.Cache], runs [sweep.Integrate] on a miss and stores the encoded
// solution for next time.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, boxes, pipeline.Options{Axis: 1})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Solution.Total)
//
// # Caching
//
// The cache key is derived from a hash of the boxes (coordinates, gradients
// and order) plus the axis and mode. MaxCells is not part of the key: it can
// only turn a result into an error, and errors are never cached.
//
// # Tracing
//
// Execute opens an OpenTelemetry span per run and a child span for the
// sweep. Spans go to the globally registered tracer provider, which is a
// no-op unless the embedding program installs one.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypercuboid/pkg/cache"
	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxCells bounds the partition size of a single sweep. Each event
	// can triple the cells it touches per axis, so unbounded inputs can
	// exhaust memory.
	DefaultMaxCells = 1_000_000

	// DefaultMode is the default sweep mode.
	DefaultMode = sweep.ModeCoverage
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one integration.
// This struct supports JSON serialization for API requests.
type Options struct {
	Axis     int    `json:"axis"`
	Mode     string `json:"mode,omitempty"`      // "coverage" (default) or "start-events"
	MaxCells int    `json:"max_cells,omitempty"` // 0 means DefaultMaxCells
	Refresh  bool   `json:"refresh,omitempty"`   // skip the cache lookup

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	mode      sweep.Mode
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and traces.
	RunID string

	// ProblemHash is the content hash of the input boxes, empty when they
	// cannot be hashed.
	ProblemHash string

	// Solution holds the segments and their metadata.
	Solution hio.Solution

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the solution came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Sweep counters are zero
// when the solution came from the cache.
type Stats struct {
	Boxes     int
	Dim       int
	Events    int
	Splits    int
	PeakCells int
	Cells     int
	SweepTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	SolutionHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the mode and cell limit and applies defaults.
// The axis is checked against the boxes by the sweep itself.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	mode, err := sweep.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.mode = mode
	o.Mode = mode.String()

	if o.MaxCells < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max_cells must be >= 0, got %d", o.MaxCells)
	}
	if o.MaxCells == 0 {
		o.MaxCells = DefaultMaxCells
	}
	if o.Axis < 0 {
		return errors.New(errors.ErrCodeInvalidAxis, "axis must be >= 0, got %d", o.Axis)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SweepMode returns the parsed mode. Call ValidateAndSetDefaults first.
func (o *Options) SweepMode() sweep.Mode {
	return o.mode
}

// SolutionKeyOpts returns cache key options for the solution.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	return cache.SolutionKeyOpts{Axis: o.Axis, Mode: o.Mode}
}
