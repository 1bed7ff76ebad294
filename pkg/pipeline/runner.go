package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/hypercuboid/pkg/cache"
	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
	"github.com/matzehuels/hypercuboid/pkg/observability"
)

var tracer = otel.Tracer("github.com/matzehuels/hypercuboid/pkg/pipeline")

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL applies to stored solutions; zero means cache.TTLSolution.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute integrates boxes along opts.Axis, serving the result from the
// cache when possible.
func (r *Runner) Execute(ctx context.Context, boxes []sweep.Weighted, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx, span := tracer.Start(ctx, "pipeline.Runner.Execute",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("boxes", len(boxes)),
			attribute.Int("axis", opts.Axis),
			attribute.String("mode", opts.Mode),
		),
	)
	defer span.End()

	logger := opts.Logger.With("run", runID[:8])
	opts.Logger = logger

	hash, err := ProblemHash(boxes)
	if err != nil {
		logger.Debug("problem not hashable, bypassing cache", "err", err)
	}
	result := &Result{RunID: runID, ProblemHash: hash}
	result.Stats.Boxes = len(boxes)
	if len(boxes) > 0 {
		result.Stats.Dim = boxes[0].Box.Dim()
	}

	start := time.Now()
	sol, stats, hit, err := r.integrateWithCacheInfo(ctx, result.ProblemHash, boxes, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "integrate failed")
		return nil, err
	}
	result.Solution = sol
	result.CacheInfo.SolutionHit = hit
	result.Stats.SweepTime = time.Since(start)
	result.Stats.Events = stats.Events
	result.Stats.Splits = stats.Splits
	result.Stats.PeakCells = stats.PeakCells
	result.Stats.Cells = len(sol.Segments)

	span.SetAttributes(attribute.Bool("cache_hit", hit), attribute.Int("cells", result.Stats.Cells))
	span.SetStatus(codes.Ok, "")
	logger.Info("integrated boxes",
		"boxes", len(boxes),
		"axis", opts.Axis,
		"cells", result.Stats.Cells,
		"cached", hit,
		"duration", result.Stats.SweepTime)

	return result, nil
}

// IntegrateWithCacheInfo integrates with caching and returns cache hit info.
func (r *Runner) IntegrateWithCacheInfo(ctx context.Context, boxes []sweep.Weighted, opts Options) (hio.Solution, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return hio.Solution{}, false, err
	}
	hash, err := ProblemHash(boxes)
	if err != nil {
		opts.Logger.Debug("problem not hashable, bypassing cache", "err", err)
	}
	sol, _, hit, err := r.integrateWithCacheInfo(ctx, hash, boxes, opts)
	return sol, hit, err
}

// integrateWithCacheInfo skips the cache entirely when problemHash is empty.
func (r *Runner) integrateWithCacheInfo(ctx context.Context, problemHash string, boxes []sweep.Weighted, opts Options) (hio.Solution, sweep.Stats, bool, error) {
	if problemHash == "" {
		sol, stats, err := Integrate(ctx, boxes, opts)
		return sol, stats, false, err
	}
	key := r.Keyer.SolutionKey(problemHash, opts.SolutionKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			opts.Logger.Warn("cache lookup failed", "err", err)
		case hit:
			if sol, ok := decodeSolution(data, opts); ok {
				hooks.OnCacheHit(ctx, keyTypeSolution)
				return sol, sweep.Stats{}, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", key)
		}
		hooks.OnCacheMiss(ctx, keyTypeSolution)
	}

	sol, stats, err := Integrate(ctx, boxes, opts)
	if err != nil {
		return hio.Solution{}, stats, false, err
	}

	if data, err := encodeSolution(sol); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache store failed", "err", err)
		} else {
			hooks.OnCacheSet(ctx, keyTypeSolution, len(data))
		}
	}
	return sol, stats, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLSolution
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
