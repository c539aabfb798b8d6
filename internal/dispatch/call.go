package dispatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geovec/internal/resource"
	"github.com/hupe1980/geovec/ndarray"
)

// DefaultGrainSize is the minimum number of elements per parallel chunk.
const DefaultGrainSize = 1024

// Config controls evaluation.
type Config struct {
	// Workers caps the goroutines of one call, including the caller's.
	// Zero means GOMAXPROCS.
	Workers int
	// GrainSize is the minimum chunk length. Zero means DefaultGrainSize.
	GrainSize int
	// Resources grants extra workers shared across calls. Nil grants all.
	Resources *resource.Controller
}

// Stats summarizes one evaluation.
type Stats struct {
	Elements    int
	Missing     int
	KernelCalls int
	Workers     int
}

// Call is a validated, broadcast operation ready to run.
type Call[R any] struct {
	op       *Op[R]
	operands []*ndarray.Array[ndarray.Cell]
	shape    []int
	scalar   bool
	size     int
	strides  [][]int
	outStr   []int
}

// Bind validates the operands of op and computes the broadcast result
// shape. All type and shape errors are reported here, before any element is
// evaluated.
func Bind[R any](op *Op[R], operands ...*ndarray.Array[ndarray.Cell]) (*Call[R], error) {
	if len(operands) != len(op.Params) {
		return nil, fmt.Errorf("%s: expected %d operands, got %d", op.Name, len(op.Params), len(operands))
	}
	for i, p := range op.Params {
		arr := operands[i]
		if arr == nil {
			return nil, &TypeError{Op: op.Name, Param: p.Name, Expected: p.Kind.String() + " array", Actual: "nil"}
		}
		if p.ScalarOnly && arr.Ndim() != 0 {
			return nil, &TypeError{
				Op:       op.Name,
				Param:    p.Name,
				Expected: "a 0-d value (only supports scalar " + p.Name + ")",
				Actual:   ndarray.FormatShape(arr.Shape()) + " array",
			}
		}
		for _, c := range arr.Data() {
			if !p.Kind.accepts(c) {
				return nil, &TypeError{Op: op.Name, Param: p.Name, Expected: p.Kind.String(), Actual: c.Kind().String()}
			}
		}
	}

	shapes := make([][]int, len(operands))
	scalar := true
	for i, arr := range operands {
		shapes[i] = arr.Shape()
		scalar = scalar && arr.IsScalar()
	}
	shape, err := ndarray.Broadcast(shapes...)
	if err != nil {
		var se *ndarray.ShapeError
		if errors.As(err, &se) {
			se.Op = op.Name
		}
		return nil, err
	}

	c := &Call[R]{
		op:       op,
		operands: operands,
		shape:    shape,
		scalar:   scalar,
		size:     ndarray.Size(shape),
		strides:  make([][]int, len(operands)),
		outStr:   ndarray.Strides(shape),
	}
	for i, s := range shapes {
		c.strides[i] = ndarray.BroadcastStrides(s, shape)
	}
	return c, nil
}

// Shape returns the broadcast result shape.
func (c *Call[R]) Shape() []int { return append([]int(nil), c.shape...) }

// Size returns the number of result elements.
func (c *Call[R]) Size() int { return c.size }

// IsScalar reports whether every operand was an implicit scalar.
func (c *Call[R]) IsScalar() bool { return c.scalar }

// Run evaluates all elements and returns them in C order. The first
// function error aborts the call; no partial result is returned.
func (c *Call[R]) Run(ctx context.Context, cfg Config) ([]R, Stats, error) {
	out := make([]R, c.size)
	stats := Stats{Elements: c.size, Workers: 1}

	grain := cfg.GrainSize
	if grain <= 0 {
		grain = DefaultGrainSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := (c.size + grain - 1) / grain
	workers = min(workers, chunks)

	if workers <= 1 {
		missing, calls, err := c.runRange(ctx, out, 0, c.size)
		stats.Missing, stats.KernelCalls = missing, calls
		if err != nil {
			return nil, stats, err
		}
		return out, stats, nil
	}

	extra := cfg.Resources.AcquireWorkers(workers - 1)
	defer cfg.Resources.ReleaseWorkers(extra)
	stats.Workers = extra + 1

	chunkLen := (c.size + stats.Workers - 1) / stats.Workers
	chunkLen = max(chunkLen, grain)
	n := (c.size + chunkLen - 1) / chunkLen
	missing := make([]int, n)
	calls := make([]int, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(stats.Workers)
	for k := range n {
		lo := k * chunkLen
		hi := min(lo+chunkLen, c.size)
		g.Go(func() error {
			var err error
			missing[k], calls[k], err = c.runRange(gctx, out, lo, hi)
			return err
		})
	}
	err := g.Wait()
	for k := range n {
		stats.Missing += missing[k]
		stats.KernelCalls += calls[k]
	}
	if err != nil {
		return nil, stats, err
	}
	return out, stats, nil
}

func (c *Call[R]) runRange(ctx context.Context, out []R, lo, hi int) (missing, calls int, err error) {
	pol := policies[c.op.Category]
	args := make(Args, len(c.operands))
	for i := lo; i < hi; i++ {
		if (i-lo)%DefaultGrainSize == 0 {
			if err := ctx.Err(); err != nil {
				return missing, calls, err
			}
		}
		skip := false
		hasMissing := false
		for k, arr := range c.operands {
			args[k] = arr.At(c.sourceIndex(k, i))
			if c.op.Params[k].Kind == GeometryParam && args[k].IsMissing() {
				hasMissing = true
				skip = skip || pol.skipMissing
			}
		}
		if hasMissing {
			missing++
		}
		if skip {
			out[i] = c.op.Fill
			continue
		}
		v, err := c.op.Fn(args)
		calls++
		if err != nil {
			return missing, calls, err
		}
		out[i] = v
	}
	return missing, calls, nil
}

// sourceIndex maps result element i to the flat index of operand k.
func (c *Call[R]) sourceIndex(k, i int) int {
	st := c.strides[k]
	idx := 0
	for d, os := range c.outStr {
		if st[d] != 0 {
			idx += (i / os % c.shape[d]) * st[d]
		}
	}
	return idx
}
