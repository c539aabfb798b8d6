package geovec

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/arena"
	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/internal/resource"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

// Cells is an operand array: any shape, each element a geometry, a missing
// value or a plain scalar.
type Cells = ndarray.Array[ndarray.Cell]

// Scalar wraps one geometry as an implicit scalar operand. Results of calls
// whose operands are all implicit scalars report IsScalar.
func Scalar(g *geometry.Geometry) *Cells { return ndarray.ScalarGeometry(g) }

// Geometries returns a 1-d operand array; nil entries are missing.
func Geometries(gs ...*geometry.Geometry) *Cells { return ndarray.Geometries(gs...) }

// Engine evaluates geometry operations elementwise over arrays.
//
// An Engine is safe for concurrent use. Close must not run concurrently
// with other methods.
type Engine struct {
	kernel    kernel.Kernel
	resources *resource.Controller
	arena     *arena.Arena
	cfg       dispatch.Config
	metrics   MetricsCollector
	logger    *Logger
	closed    atomic.Bool
}

// New creates an Engine.
//
// Example:
//
//	eng, err := geovec.New(
//	    geovec.WithWorkers(8),
//	    geovec.WithLogLevel(slog.LevelDebug),
//	)
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
func New(optFns ...Option) (*Engine, error) {
	opts := applyOptions(optFns)

	if opts.memoryLimit < 0 {
		return nil, fmt.Errorf("geovec: negative memory limit %d", opts.memoryLimit)
	}
	if opts.grainSize < 0 {
		return nil, fmt.Errorf("geovec: negative grain size %d", opts.grainSize)
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: opts.memoryLimit,
		MaxWorkers:       int64(max(opts.workerBudget, 1)),
	})

	e := &Engine{
		kernel:    opts.kernel,
		resources: rc,
		arena:     arena.New(opts.arenaChunkLen, arena.WithMemoryAcquirer(rc)),
		cfg: dispatch.Config{
			Workers:   max(opts.workers, 1),
			GrainSize: opts.grainSize,
			Resources: rc,
		},
		metrics: opts.metricsCollector,
		logger:  opts.logger,
	}

	e.logger.Debug("engine created",
		"workers", e.cfg.Workers,
		"worker_budget", rc.MaxWorkers(),
		"memory_limit", opts.memoryLimit,
	)

	return e, nil
}

// Kernel returns the scalar kernel the engine evaluates with.
func (e *Engine) Kernel() kernel.Kernel { return e.kernel }

// MemoryUsage returns the bytes currently reserved by the coordinate arena.
func (e *Engine) MemoryUsage() int64 { return e.resources.MemoryUsage() }

// Close releases the coordinate arena. Geometries created by Transform stay
// valid. Calling Close more than once is a no-op.
func (e *Engine) Close() error {
	if e == nil || e.closed.Swap(true) {
		return nil
	}
	e.arena.Free()
	return nil
}

// result is a flat, C-ordered evaluation result.
type result[R any] struct {
	data   []R
	shape  []int
	scalar bool
}

// evaluate binds op to operands, runs check against the broadcast shape and
// evaluates every element. Errors are translated and recorded.
func evaluate[R any](ctx context.Context, e *Engine, op *dispatch.Op[R], check func(shape []int, scalar bool) error, operands ...*Cells) (*result[R], error) {
	start := time.Now()
	rec := CallRecord{Op: op.Name}

	res, stats, err := func() (*result[R], dispatch.Stats, error) {
		if e.closed.Load() {
			return nil, dispatch.Stats{}, ErrClosed
		}
		c, err := dispatch.Bind(op, operands...)
		if err != nil {
			return nil, dispatch.Stats{}, err
		}
		rec.Shape = c.Shape()
		if check != nil {
			if err := check(c.Shape(), c.IsScalar()); err != nil {
				return nil, dispatch.Stats{}, err
			}
		}
		data, stats, err := c.Run(ctx, e.cfg)
		if err != nil {
			return nil, stats, err
		}
		return &result[R]{data: data, shape: c.Shape(), scalar: c.IsScalar()}, stats, nil
	}()

	err = translateError(err)
	rec.Elements, rec.Missing = stats.Elements, stats.Missing
	rec.KernelCalls, rec.Workers = stats.KernelCalls, stats.Workers
	e.metrics.RecordCall(op.Name, rec.Elements, rec.Missing, time.Since(start), err)
	e.logger.LogCall(ctx, rec, err)
	return res, err
}

func toArray[R any](r *result[R]) *ndarray.Array[R] {
	out := ndarray.Make[R](r.shape, r.scalar)
	copy(out.Data(), r.data)
	return out
}

// evaluateBool runs a boolean op into the caller's sink or a new
// bit-packed array.
func evaluateBool(ctx context.Context, e *Engine, op *dispatch.Op[bool], optFns []CallOption, operands ...*Cells) (ndarray.BoolArray, error) {
	co := applyCallOptions(optFns)
	check := func(shape []int, _ bool) error {
		if co.out == nil {
			return nil
		}
		if got := co.out.Shape(); !slices.Equal(got, shape) {
			return &ndarray.ShapeError{Op: op.Name, Expected: shape, Actual: got, Reason: "output array has the wrong shape"}
		}
		return nil
	}
	r, err := evaluate(ctx, e, op, check, operands...)
	if err != nil {
		return nil, err
	}
	out := co.out
	if out == nil {
		out = ndarray.MakeBools(r.shape, r.scalar)
	}
	for i, v := range r.data {
		out.SetBool(i, v)
	}
	return out, nil
}

func geometryParam() dispatch.Param {
	return dispatch.Param{Name: "geometry", Kind: dispatch.GeometryParam}
}

func pairParams() []dispatch.Param {
	return []dispatch.Param{
		{Name: "a", Kind: dispatch.GeometryParam},
		{Name: "b", Kind: dispatch.GeometryParam},
	}
}
