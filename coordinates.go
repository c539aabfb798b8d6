package geovec

import (
	"context"
	"time"

	"github.com/hupe1980/geovec/coords"
	"github.com/hupe1980/geovec/internal/dispatch"
)

// CountCoordinates returns the total number of points in arr. Missing
// elements count zero.
func (e *Engine) CountCoordinates(ctx context.Context, arr *Cells) (int, error) {
	if e.closed.Load() {
		return 0, ErrClosed
	}
	n, err := coords.Count(arr)
	err = translateError(err)
	e.logger.LogCoordinates(ctx, "count_coordinates", n, 0, err)
	return n, err
}

// GetCoordinates returns every point of arr as one (N, 2) buffer, or
// (N, 3) with includeZ where 2D geometries read NaN for z. With
// returnIndex the second result maps each row to the flat index of its
// source element.
func (e *Engine) GetCoordinates(ctx context.Context, arr *Cells, includeZ, returnIndex bool) (*coords.Buffer, []int, error) {
	if e.closed.Load() {
		return nil, nil, ErrClosed
	}
	buf, index, err := coords.Get(arr, includeZ, returnIndex)
	err = translateError(err)
	if err != nil {
		e.logger.LogCoordinates(ctx, "get_coordinates", 0, 0, err)
		return nil, nil, err
	}
	e.logger.LogCoordinates(ctx, "get_coordinates", buf.Rows, buf.Cols, nil)
	return buf, index, nil
}

// SetCoordinates overwrites the points of every geometry in arr, in place,
// in the order GetCoordinates returns them, and returns arr. buf must have
// exactly CountCoordinates rows and 2 or 3 columns, otherwise ErrShape is
// returned before any write. Two columns drop z from every geometry; three
// keep each geometry's dimension. Prepared geometries and members of
// prepared collections fail the call with ErrPreparedMutation, parts that
// share a parent's storage with ErrViewMutation, both before any write.
// Storage for dropped z values is reserved up front, so ErrMemoryLimit also
// leaves arr untouched.
func (e *Engine) SetCoordinates(ctx context.Context, arr *Cells, buf *coords.Buffer) (*Cells, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	err := translateError(coords.Set(arr, buf, e.arena))
	rows, cols := 0, 0
	if buf != nil {
		rows, cols = buf.Rows, buf.Cols
	}
	e.metrics.RecordCoordinateWrite(rows, time.Since(start), err)
	e.logger.LogCoordinates(ctx, "set_coordinates", rows, cols, err)
	if err != nil {
		return nil, err
	}
	return arr, nil
}

// Transform returns a copy of arr whose points are replaced by fn applied
// to the coordinate buffer. fn must return a buffer of the same shape,
// otherwise ErrTransformContract is returned. arr is left unchanged and
// missing elements stay missing. Copied coordinates live in the engine's
// arena.
func (e *Engine) Transform(ctx context.Context, arr *Cells, fn coords.Func, includeZ bool) (*Cells, error) {
	if e.closed.Load() {
		return nil, ErrClosed
	}
	start := time.Now()
	var rows, cols int
	out, err := coords.Transform(arr, func(in *coords.Buffer) (*coords.Buffer, error) {
		rows, cols = in.Rows, in.Cols
		return fn(in)
	}, includeZ, e.arena)
	err = translateError(err)
	e.metrics.RecordCoordinateWrite(rows, time.Since(start), err)
	e.logger.LogCoordinates(ctx, "transform", rows, cols, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Prepare attaches a prepared entry to every geometry of arr that has none.
// Later binary predicates with a prepared operand use it. Missing elements
// are ignored and already prepared geometries are left as they are, so
// Prepare is idempotent and safe to call concurrently on shared geometries.
//
// A prepared geometry can no longer be written by SetCoordinates.
func (e *Engine) Prepare(ctx context.Context, arr *Cells) error {
	start := time.Now()
	op := &dispatch.Op[bool]{
		Name:     "prepare",
		Category: dispatch.Predicate,
		Params:   []dispatch.Param{geometryParam()},
		Fn: func(a dispatch.Args) (bool, error) {
			g := a.Geom(0)
			if g.IsPrepared() {
				return false, nil
			}
			p, err := e.kernel.Prepare(g)
			if err != nil {
				return false, err
			}
			return g.AttachPrepared(p) == p, nil
		},
	}
	r, err := evaluate(ctx, e, op, nil, arr)

	prepared, skipped := 0, 0
	if r != nil {
		for _, ok := range r.data {
			if ok {
				prepared++
			} else {
				skipped++
			}
		}
	}
	e.metrics.RecordPrepare(prepared, time.Since(start), err)
	e.logger.LogPrepare(ctx, prepared, skipped, err)
	return err
}
