package pipeline

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/hypercuboid/pkg/cache"
	"github.com/matzehuels/hypercuboid/pkg/core/geom"
	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	"github.com/matzehuels/hypercuboid/pkg/observability"
)

func blocks() []sweep.Weighted {
	return []sweep.Weighted{
		{Box: geom.Box{Start: []float64{0, 0}, End: []float64{2, 6}}, Grad: 1},
		{Box: geom.Box{Start: []float64{4, 0}, End: []float64{6, 6}}, Grad: 2},
		{Box: geom.Box{Start: []float64{2, 0}, End: []float64{4, 3}}, Grad: 3},
		{Box: geom.Box{Start: []float64{2, 3}, End: []float64{4, 6}}, Grad: 4},
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.MaxCells != DefaultMaxCells {
		t.Errorf("MaxCells should be %d, got %d", DefaultMaxCells, opts.MaxCells)
	}
	if opts.Mode != "coverage" || opts.SweepMode() != DefaultMode {
		t.Errorf("Mode should default to coverage, got %q", opts.Mode)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}

	opts = Options{Mode: "reference"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if opts.Mode != "start-events" {
		t.Errorf("Mode should be normalized to start-events, got %q", opts.Mode)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad mode", Options{Mode: "sideways"}, errors.ErrCodeInvalidInput},
		{"negative max cells", Options{MaxCells: -1}, errors.ErrCodeInvalidInput},
		{"negative axis", Options{Axis: -1}, errors.ErrCodeInvalidAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateAndSetDefaults() = %v, want %s", err, tt.code)
			}
		})
	}
}

func mustHash(t *testing.T, boxes []sweep.Weighted) string {
	t.Helper()
	h, err := ProblemHash(boxes)
	if err != nil {
		t.Fatalf("ProblemHash: %v", err)
	}
	return h
}

func TestProblemHash(t *testing.T) {
	a := mustHash(t, blocks())
	if a != mustHash(t, blocks()) {
		t.Error("ProblemHash should be deterministic")
	}

	swapped := blocks()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if a == mustHash(t, swapped) {
		t.Error("ProblemHash should depend on box order")
	}

	regraded := blocks()
	regraded[3].Grad = 5
	if a == mustHash(t, regraded) {
		t.Error("ProblemHash should depend on gradients")
	}

	for _, g := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		boxes := blocks()
		boxes[0].Grad = g
		if h, err := ProblemHash(boxes); !errors.Is(err, errors.ErrCodeInvalidInput) || h != "" {
			t.Errorf("ProblemHash with grad %g = %q, %v; want INVALID_INPUT", g, h, err)
		}
	}
}

func TestNonFiniteProblemsBypassCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()
	ctx := context.Background()

	overridden := func(g float64) []sweep.Weighted {
		return []sweep.Weighted{
			{Box: geom.Box{Start: []float64{0}, End: []float64{1}}, Grad: math.Inf(1)},
			{Box: geom.Box{Start: []float64{0}, End: []float64{1}}, Grad: g},
		}
	}
	for _, g := range []float64{1, 5} {
		res, err := r.Execute(ctx, overridden(g), Options{})
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Fatalf("grad %g: Execute = %+v, %v; want INVALID_INPUT", g, res, err)
		}
	}

	entries, err := fc.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if entries != 0 {
		t.Errorf("cache holds %d entries, want none", entries)
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), blocks(), Options{Axis: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.RunID == "" || len(res.ProblemHash) != 64 {
		t.Errorf("RunID %q, ProblemHash %q", res.RunID, res.ProblemHash)
	}
	sol := res.Solution
	if sol.Total != 78 || len(sol.Segments) != 3 {
		t.Errorf("Solution = %+v, want 3 segments with total 78", sol)
	}
	if res.Stats.Boxes != 4 || res.Stats.Dim != 2 || res.Stats.Cells != 3 || res.Stats.Events == 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.CacheInfo.SolutionHit {
		t.Error("NullCache should never hit")
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(context.Background(), blocks(), Options{Axis: 2})
	if !errors.Is(err, errors.ErrCodeInvalidAxis) {
		t.Errorf("axis 2: error = %v, want INVALID_AXIS", err)
	}

	_, err = r.Execute(context.Background(), nil, Options{})
	if !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("no boxes: error = %v, want EMPTY_INPUT", err)
	}

	_, err = r.Execute(context.Background(), blocks(), Options{MaxCells: 1, Axis: 1})
	if !errors.Is(err, errors.ErrCodeCellLimit) {
		t.Errorf("max cells: error = %v, want CELL_LIMIT_EXCEEDED", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Execute(ctx, blocks(), Options{}); err != context.Canceled {
		t.Errorf("canceled: error = %v, want context.Canceled", err)
	}
}

// recordingCache wraps a Cache and counts writes.
type recordingCache struct {
	cache.Cache
	sets int
}

func (c *recordingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	rc := &recordingCache{Cache: fc}
	r := NewRunner(rc, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, blocks(), Options{Axis: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.SolutionHit || rc.sets != 1 {
		t.Fatalf("first run: hit %v, sets %d", first.CacheInfo.SolutionHit, rc.sets)
	}

	second, err := r.Execute(ctx, blocks(), Options{Axis: 1})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.SolutionHit {
		t.Error("second run should hit the cache")
	}
	if second.Solution.Total != first.Solution.Total || len(second.Solution.Segments) != len(first.Solution.Segments) {
		t.Errorf("cached solution %+v differs from %+v", second.Solution, first.Solution)
	}
	for i := range first.Solution.Segments {
		if !second.Solution.Segments[i].Patch.Equal(first.Solution.Segments[i].Patch) {
			t.Errorf("segment %d patch %v, want %v", i, second.Solution.Segments[i].Patch, first.Solution.Segments[i].Patch)
		}
	}
	if second.RunID == first.RunID {
		t.Error("each run should get its own RunID")
	}

	refreshed, err := r.Execute(ctx, blocks(), Options{Axis: 1, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.CacheInfo.SolutionHit || rc.sets != 2 {
		t.Errorf("refresh: hit %v, sets %d", refreshed.CacheInfo.SolutionHit, rc.sets)
	}

	other, err := r.Execute(ctx, blocks(), Options{Axis: 0})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if other.CacheInfo.SolutionHit {
		t.Error("different axis should miss")
	}
	if other.Solution.Total != first.Solution.Total {
		t.Errorf("total along axis 0 = %g, want %g", other.Solution.Total, first.Solution.Total)
	}
}

func TestCorruptCacheEntryIsRecomputed(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	opts := Options{Axis: 1}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	key := r.Keyer.SolutionKey(mustHash(t, blocks()), opts.SolutionKeyOpts())
	if err := fc.Set(ctx, key, []byte("not a solution"), 0); err != nil {
		t.Fatal(err)
	}

	sol, hit, err := r.IntegrateWithCacheInfo(ctx, blocks(), Options{Axis: 1})
	if err != nil {
		t.Fatalf("IntegrateWithCacheInfo: %v", err)
	}
	if hit || sol.Total != 78 {
		t.Errorf("hit %v, total %g; want recomputed total 78", hit, sol.Total)
	}
}

type countingHooks struct {
	observability.NoopSweepHooks
	observability.NoopCacheHooks
	starts, completes, hits, misses int
}

func (h *countingHooks) OnSweepStart(context.Context, int, int, string) { h.starts++ }
func (h *countingHooks) OnSweepComplete(context.Context, string, int, time.Duration, error) {
	h.completes++
}
func (h *countingHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestExecuteHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetSweepHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	for i := 0; i < 2; i++ {
		if _, err := r.Execute(context.Background(), blocks(), Options{}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("sweep hooks: %d starts, %d completes; want 1 each", hooks.starts, hooks.completes)
	}
	if hooks.hits != 1 || hooks.misses != 1 {
		t.Errorf("cache hooks: %d hits, %d misses; want 1 each", hooks.hits, hooks.misses)
	}
}
