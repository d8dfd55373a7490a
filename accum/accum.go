// SPDX-License-Identifier: MIT

package accum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/flowacc/flowdir"
	"github.com/katalvlaran/flowacc/raster"
)

// FromDirections computes single-direction flow accumulation: every routed
// cell counts itself plus all cells upstream of it.
//
// Stages:
//  1. Validate: nil input, reference shape, direction codes, uint32 capacity.
//  2. Scan: dependency counts, in parallel over row bands.
//  3. Drain: Kahn's algorithm from the headwaters.
//  4. Check: residual nodes mean a cycle; partial values are discarded.
//  5. Finalize: no-data input cells become CountNoData.
//
// Errors: ErrPrecondition family, ErrOverflowRisk, *CycleError
// (ErrCycleDetected), or the context error on cancellation.
// Complexity: O(W×H) time and memory.
func FromDirections(dirs *raster.Grid[uint8], opts ...Option) (*raster.Grid[uint32], error) {
	const op = "FromDirections"
	if dirs == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilGrid)
	}
	o := gatherOptions(opts...)
	if o.weights != nil {
		return nil, fmt.Errorf("%s: %w: weights require proportional mode", op, ErrPrecondition)
	}
	if err := validateShape(dirs.Shape(), o); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateDirections(dirs, o.conn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkCountCapacity(dirs.CountData()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data := dirs.Data()
	points := func(src int, d raster.Direction) bool {
		return raster.Direction(data[src]) == d
	}
	r := startRun(op, modeDirections, o, newTopology(dirs.Shape(), o.border, dirs.IsNoData), points)
	defer r.end()

	dr, err := r.schedule()
	if err != nil {
		return nil, r.fail(err)
	}
	acc := raster.NewLike[uint32](dirs, 0, CountNoData)
	residual, err := dr.drainDirections(data, acc.Data())
	if err != nil {
		return nil, r.fail(err)
	}
	if residual > 0 {
		return nil, r.cycle(dr, residual)
	}
	finalize(acc, dirs.IsNoData)
	r.succeed()

	return acc, nil
}

// FromProportions computes weighted flow accumulation over a
// multiple-flow-direction field. Each cell contributes 1 (or its weight
// under WithWeights) and forwards accumulation×fraction to each target.
// Stages and errors match FromDirections; no-data cells become WeightNoData.
// Complexity: O(W×H×8) time, O(W×H) memory.
func FromProportions(props *raster.Proportions, opts ...Option) (*raster.Grid[float64], error) {
	const op = "FromProportions"
	if props == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNilGrid)
	}
	o := gatherOptions(opts...)
	if err := validateShape(props.Shape(), o); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateProportions(props, o.conn, o.eps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateWeights(o.weights, props.Shape(), props.IsNoData); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := checkWeightCapacity(props.CountData()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	points := func(src int, d raster.Direction) bool {
		return props.Fraction(src, d) > 0
	}
	r := startRun(op, modeProportions, o, newTopology(props.Shape(), o.border, props.IsNoData), points)
	defer r.end()

	dr, err := r.schedule()
	if err != nil {
		return nil, r.fail(err)
	}
	acc, err := raster.New[float64](props.Width(), props.Height(), WeightNoData)
	if err != nil {
		return nil, r.fail(err)
	}
	var weights []float64
	if o.weights != nil {
		weights = o.weights.Data()
	}
	residual, err := dr.drainProportions(props, weights, acc.Data())
	if err != nil {
		return nil, r.fail(err)
	}
	if residual > 0 {
		return nil, r.cycle(dr, residual)
	}
	finalize(acc, props.IsNoData)
	r.succeed()

	return acc, nil
}

// FromElevation runs the single-direction pipeline: elevation → provider →
// FromDirections. The direction grid must match the elevation shape.
func FromElevation(elev *raster.Grid[float64], p flowdir.DirectionProvider, opts ...Option) (*raster.Grid[uint32], error) {
	if elev == nil || p == nil {
		return nil, fmt.Errorf("FromElevation: %w", ErrNilGrid)
	}
	o := gatherOptions(opts...)
	dirs, err := p.Directions(o.ctx, elev)
	if err != nil {
		return nil, fmt.Errorf("FromElevation: provider: %w", err)
	}

	return FromDirections(dirs, withReference(opts, elev.Shape())...)
}

// FromElevationProportional runs the proportional pipeline: elevation →
// provider → FromProportions.
func FromElevationProportional(elev *raster.Grid[float64], p flowdir.ProportionProvider, opts ...Option) (*raster.Grid[float64], error) {
	if elev == nil || p == nil {
		return nil, fmt.Errorf("FromElevationProportional: %w", ErrNilGrid)
	}
	o := gatherOptions(opts...)
	props, err := p.Proportions(o.ctx, elev)
	if err != nil {
		return nil, fmt.Errorf("FromElevationProportional: provider: %w", err)
	}

	return FromProportions(props, withReference(opts, elev.Shape())...)
}

// withReference appends WithReference without aliasing the caller's slice.
func withReference(opts []Option, s raster.Shape) []Option {
	return append(opts[:len(opts):len(opts)], WithReference(s))
}

// run carries the ambient state of one engine invocation: span, logger,
// metrics and timing.
type run struct {
	ctx    context.Context
	tracer trace.Tracer
	span   trace.Span
	o      Options
	op     string
	mode   string
	topo   *topology
	points pointsFunc
	start  time.Time
}

func startRun(op, mode string, o Options, t *topology, points pointsFunc) *run {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(o.ctx, "accum."+op, trace.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("border", o.border.String()),
		attribute.Int("width", t.shape.Width),
		attribute.Int("height", t.shape.Height),
		attribute.Int("nodes", t.nodes),
	))
	o.log.DebugWithContext(ctx, "flow accumulation started",
		zap.String("mode", mode),
		zap.Stringer("shape", t.shape),
		zap.Int("nodes", t.nodes),
	)

	return &run{ctx: ctx, tracer: tracer, span: span, o: o, op: op, mode: mode, topo: t, points: points, start: time.Now()}
}

// schedule builds the dependency counts and seeds the ready queue.
func (r *run) schedule() (*drainer, error) {
	_, span := r.tracer.Start(r.ctx, "accum.dependencies")
	deps, err := dependencies(r.ctx, r.topo, r.points, r.o.workers)
	span.End()
	if err != nil {
		return nil, err
	}
	dr := newDrainer(r.ctx, r.topo, deps, r.o.progress)
	sources := dr.seed()
	r.o.log.DebugWithContext(r.ctx, "source cells found", zap.String("mode", r.mode), zap.Int("sources", sources))

	return dr, nil
}

// fail records err on the span and wraps it with the operation name.
func (r *run) fail(err error) error {
	r.span.RecordError(err)
	r.span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.o.log.WarnWithContext(r.ctx, "flow accumulation cancelled; partial state discarded", zap.String("mode", r.mode))
	}

	return fmt.Errorf("%s: %w", r.op, err)
}

// cycle builds the CycleError for a drain that left residual nodes.
func (r *run) cycle(dr *drainer, residual int) error {
	cyclesDetectedCounter.WithLabelValues(r.mode).Inc()
	cerr := &CycleError{Residual: residual, Cycle: findCycle(r.topo, dr.deps, r.points)}
	r.o.log.ErrorWithContext(r.ctx, "flow field contains a cycle",
		zap.String("mode", r.mode),
		zap.Int("residual", residual),
		zap.Ints("cycle", cerr.Cycle),
	)

	return r.fail(cerr)
}

// succeed records metrics and the wall time of a completed run.
func (r *run) succeed() {
	elapsed := time.Since(r.start)
	cellsProcessedCounter.WithLabelValues(r.mode).Add(float64(r.topo.nodes))
	runDurationHistogram.WithLabelValues(r.mode).Observe(milliseconds(elapsed))
	r.o.log.InfoWithContext(r.ctx, "flow accumulation finished",
		zap.String("mode", r.mode),
		zap.Int("cells", r.topo.nodes),
		zap.Duration("wall_time", elapsed),
	)
}

func (r *run) end() {
	r.span.End()
}
