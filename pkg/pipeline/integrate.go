package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matzehuels/hypercuboid/pkg/cache"
	"github.com/matzehuels/hypercuboid/pkg/core/sweep"
	"github.com/matzehuels/hypercuboid/pkg/errors"
	hio "github.com/matzehuels/hypercuboid/pkg/io"
	"github.com/matzehuels/hypercuboid/pkg/observability"
)

const keyTypeSolution = "solution"

// ProblemHash returns the content hash of boxes. Box order matters since it
// breaks ties between boxes starting at the same coordinate. Boxes holding
// values JSON cannot represent, such as NaN or ±Inf, return an error.
func ProblemHash(boxes []sweep.Weighted) (string, error) {
	data, err := json.Marshal(boxes)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "hash problem")
	}
	return cache.Hash(data), nil
}

// Integrate runs the sweep without caching and reports it to the sweep hooks.
func Integrate(ctx context.Context, boxes []sweep.Weighted, opts Options) (hio.Solution, sweep.Stats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return hio.Solution{}, sweep.Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return hio.Solution{}, sweep.Stats{}, err
	}

	ctx, span := tracer.Start(ctx, "sweep.Integrate",
		trace.WithAttributes(
			attribute.Int("boxes", len(boxes)),
			attribute.Int("axis", opts.Axis),
			attribute.String("mode", opts.Mode),
		),
	)
	defer span.End()

	hooks := observability.Sweep()
	hooks.OnSweepStart(ctx, len(boxes), opts.Axis, opts.Mode)

	var stats sweep.Stats
	start := time.Now()
	segs, err := sweep.Integrate(boxes, opts.Axis,
		sweep.WithMode(opts.SweepMode()),
		sweep.WithMaxCells(opts.MaxCells),
		sweep.WithStats(&stats),
	)
	elapsed := time.Since(start)
	hooks.OnSweepComplete(ctx, opts.Mode, len(segs), elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(errors.GetCode(err)))
		return hio.Solution{}, stats, err
	}

	span.SetAttributes(
		attribute.Int("cells", stats.Cells),
		attribute.Int("peak_cells", stats.PeakCells),
		attribute.Int("splits", stats.Splits),
	)
	span.SetStatus(codes.Ok, "")
	opts.Logger.Debug("sweep complete",
		"events", stats.Events,
		"splits", stats.Splits,
		"peak_cells", stats.PeakCells,
		"duration", elapsed)

	return hio.NewSolution(segs, boxes[0].Box.Dim(), opts.Axis, opts.SweepMode()), stats, nil
}

// decodeSolution reads a cached solution, rejecting entries whose metadata
// does not match the request.
func decodeSolution(data []byte, opts Options) (hio.Solution, bool) {
	sol, err := hio.ReadSolution(bytes.NewReader(data))
	if err != nil || sol.Axis != opts.Axis || sol.Mode != opts.Mode {
		return hio.Solution{}, false
	}
	return sol, true
}

func encodeSolution(sol hio.Solution) ([]byte, error) {
	var buf bytes.Buffer
	if err := hio.WriteSolution(sol, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
