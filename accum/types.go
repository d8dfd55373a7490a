// SPDX-License-Identifier: MIT

package accum

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/katalvlaran/flowacc/logger"
	"github.com/katalvlaran/flowacc/raster"
)

// Sentinel errors. Every precondition error wraps ErrPrecondition, so callers
// may branch on the umbrella or on the specific sentinel with errors.Is.
var (
	// ErrPrecondition is the umbrella for inputs rejected before any mutation.
	ErrPrecondition = errors.New("accum: precondition violation")

	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = fmt.Errorf("%w: nil grid", ErrPrecondition)

	// ErrDimensionMismatch indicates grids of one run with differing shapes.
	ErrDimensionMismatch = fmt.Errorf("%w: grid dimensions differ", ErrPrecondition)

	// ErrInvalidDirection indicates a direction code outside 0..8, or a
	// diagonal code under Conn4.
	ErrInvalidDirection = fmt.Errorf("%w: direction code out of range", ErrPrecondition)

	// ErrInvalidFraction indicates a NaN, negative or >1 fraction, a cell whose
	// fractions sum above one, or a diagonal fraction under Conn4.
	ErrInvalidFraction = fmt.Errorf("%w: fraction out of range", ErrPrecondition)

	// ErrInvalidWeight indicates a negative, non-finite or no-data weight on a
	// data cell.
	ErrInvalidWeight = fmt.Errorf("%w: invalid weight", ErrPrecondition)

	// ErrCycleDetected indicates that routed cells were left with unresolved
	// dependencies after the ready queue drained.
	ErrCycleDetected = errors.New("accum: cycle detected")

	// ErrOverflowRisk indicates that the accumulation register could not hold
	// the largest possible value for the input.
	ErrOverflowRisk = errors.New("accum: accumulation may overflow")
)

// Output sentinels.
const (
	// CountNoData marks no-data cells in single-direction results. It is the
	// largest uint32, which is therefore never a legal count.
	CountNoData uint32 = math.MaxUint32

	// WeightNoData marks no-data cells in proportional results. Weights are
	// non-negative, so no data cell can reach it.
	WeightNoData float64 = -1

	// maxCountCells is the largest number of data cells counting mode accepts.
	maxCountCells = math.MaxUint32 - 1

	// maxWeightCells bounds the cell count in weighting mode so that unit
	// contributions stay exact in a float64 register.
	maxWeightCells = 1 << 53
)

// CycleError reports the residual state of a run that did not drain.
type CycleError struct {
	// Residual is the number of routed cells never finalized.
	Residual int
	// Cycle lists the cell indices of one cycle, in flow order.
	// It may be empty if no cycle could be isolated.
	Cycle []int
}

// Error implements error.
func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %d cells unresolved, cycle %v", ErrCycleDetected, e.Residual, e.Cycle)
}

// Unwrap lets errors.Is match ErrCycleDetected.
func (e *CycleError) Unwrap() error {
	return ErrCycleDetected
}

// BorderPolicy selects how cells on the outermost ring take part in a run.
type BorderPolicy int

const (
	// BorderRoute treats border cells like any other cell: they emit and
	// receive flow. Flow routed off the grid is lost through the outlet.
	BorderRoute BorderPolicy = iota

	// BorderIgnore runs on interior cells only. Border cells emit no
	// dependency edges, are never enqueued, receive no flow and keep value 0.
	// Interior flow routed into a border cell is dropped.
	BorderIgnore
)

// String returns "route" or "ignore".
func (b BorderPolicy) String() string {
	if b == BorderIgnore {
		return "ignore"
	}

	return "route"
}

// ParseBorderPolicy maps "route" / "ignore" to a BorderPolicy.
func ParseBorderPolicy(s string) (BorderPolicy, error) {
	switch strings.ToLower(s) {
	case "route", "":
		return BorderRoute, nil
	case "ignore":
		return BorderIgnore, nil
	default:
		return BorderRoute, fmt.Errorf("accum: unknown border policy %q", s)
	}
}

// ProgressFunc receives the number of finalized cells and the number of
// routed cells after every dequeue. It is advisory and must be cheap.
type ProgressFunc func(done, total int)

// Defaults.
const (
	// DefaultEpsilon is the tolerance on the per-cell fraction sum; fractions
	// are float32, so sums of exact thirds land slightly above one.
	DefaultEpsilon = 1e-5

	// DefaultBorder is BorderRoute.
	DefaultBorder = BorderRoute

	// DefaultConnectivity is Conn8.
	DefaultConnectivity = raster.Conn8
)

const (
	panicWorkersInvalid = "accum: WithWorkers: n must be >= 1"
	panicEpsilonInvalid = "accum: WithEpsilon: eps must be finite, non-negative"
)

// Option configures a run.
type Option func(*Options)

// Options holds the resolved configuration of a run.
type Options struct {
	ctx       context.Context
	progress  ProgressFunc
	log       logger.Logger
	workers   int
	border    BorderPolicy
	conn      raster.Connectivity
	reference *raster.Shape
	weights   *raster.Grid[float64]
	eps       float64
}

// DefaultOptions returns:
//   - Background context
//   - no-op progress and logger
//   - GOMAXPROCS workers for the dependency scan
//   - BorderRoute, Conn8, DefaultEpsilon
//   - no reference shape, unit weights
func DefaultOptions() Options {
	return Options{
		ctx:      context.Background(),
		progress: func(int, int) {},
		log:      logger.NewNoopLogger(),
		workers:  runtime.GOMAXPROCS(0),
		border:   DefaultBorder,
		conn:     DefaultConnectivity,
		eps:      DefaultEpsilon,
	}
}

func gatherOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithContext sets the context used for cancellation and tracing.
// Passing a nil context has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithProgress installs a progress callback. nil keeps the no-op default.
func WithProgress(fn ProgressFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.progress = fn
		}
	}
}

// WithLogger installs a logger. nil keeps the no-op default.
func WithLogger(l logger.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithWorkers bounds the goroutines used by the dependency scan.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) {
		o.workers = n
	}
}

// WithBorder selects the border policy.
func WithBorder(b BorderPolicy) Option {
	return func(o *Options) {
		o.border = b
	}
}

// WithConnectivity restricts legal flow codes. Under Conn4 diagonal codes
// and diagonal fractions are precondition violations.
func WithConnectivity(c raster.Connectivity) Option {
	return func(o *Options) {
		o.conn = c
	}
}

// WithReference requires the input to have the given shape, e.g. that of
// the DEM a flow field was derived from.
func WithReference(s raster.Shape) Option {
	return func(o *Options) {
		o.reference = &s
	}
}

// WithWeights replaces the unit self-contribution of each cell with its
// weight (rainfall, runoff coefficient, ...). Proportional mode only; the
// grid must match the input shape and hold finite values on data cells.
func WithWeights(w *raster.Grid[float64]) Option {
	return func(o *Options) {
		o.weights = w
	}
}

// WithEpsilon sets the tolerance on per-cell fraction sums.
// Panics if eps is negative, NaN or infinite.
func WithEpsilon(eps float64) Option {
	if eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) {
		o.eps = eps
	}
}
