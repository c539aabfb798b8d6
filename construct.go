package geovec

import (
	"context"
	"math"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

func (e *Engine) construct(ctx context.Context, op *dispatch.Op[ndarray.Cell], operands ...*Cells) (*Cells, error) {
	op.Category = dispatch.Constructive
	op.Fill = ndarray.Missing()
	r, err := evaluate(ctx, e, op, nil, operands...)
	if err != nil {
		return nil, err
	}
	return toArray(r), nil
}

func (e *Engine) constructFn(op kernel.ConstructOp, params ...float64) func(dispatch.Args) (ndarray.Cell, error) {
	return func(a dispatch.Args) (ndarray.Cell, error) {
		g, err := e.kernel.Construct(op, a.Geom(0), params...)
		if err != nil {
			return ndarray.Missing(), err
		}
		return ndarray.Geom(g), nil
	}
}

func (e *Engine) constructUnary(ctx context.Context, op kernel.ConstructOp, arr *Cells) (*Cells, error) {
	return e.construct(ctx, &dispatch.Op[ndarray.Cell]{
		Name:   op.String(),
		Params: []dispatch.Param{geometryParam()},
		Fn:     e.constructFn(op),
	}, arr)
}

// Envelope returns the bounding box of each geometry as a polygon. A box
// collapsed to a line or a point is returned as such. Missing stays missing.
func (e *Engine) Envelope(ctx context.Context, arr *Cells) (*Cells, error) {
	return e.constructUnary(ctx, kernel.Envelope, arr)
}

// Centroid returns the centroid point of each geometry.
func (e *Engine) Centroid(ctx context.Context, arr *Cells) (*Cells, error) {
	return e.constructUnary(ctx, kernel.Centroid, arr)
}

// Boundary returns the topological boundary of each geometry. Geometry
// collections have no defined boundary and give missing.
func (e *Engine) Boundary(ctx context.Context, arr *Cells) (*Cells, error) {
	return e.constructUnary(ctx, kernel.Boundary, arr)
}

// Simplify returns each geometry simplified with the Douglas-Peucker
// algorithm. tolerance broadcasts with arr; a missing or NaN tolerance
// gives missing and a negative one fails with ErrDomain.
func (e *Engine) Simplify(ctx context.Context, arr, tolerance *Cells) (*Cells, error) {
	return e.construct(ctx, &dispatch.Op[ndarray.Cell]{
		Name: kernel.Simplify.String(),
		Params: []dispatch.Param{
			geometryParam(),
			{Name: "tolerance", Kind: dispatch.FloatParam},
		},
		Fn: func(a dispatch.Args) (ndarray.Cell, error) {
			tol := a.Float(1)
			if math.IsNaN(tol) {
				return ndarray.Missing(), nil
			}
			return e.constructFn(kernel.Simplify, tol)(a)
		},
	}, arr, tolerance)
}

// ClipByRect returns the part of each geometry inside the rectangle.
// Nothing inside gives an empty geometry collection.
func (e *Engine) ClipByRect(ctx context.Context, arr *Cells, xmin, ymin, xmax, ymax float64) (*Cells, error) {
	return e.construct(ctx, &dispatch.Op[ndarray.Cell]{
		Name:   kernel.ClipByRect.String(),
		Params: []dispatch.Param{geometryParam()},
		Fn:     e.constructFn(kernel.ClipByRect, xmin, ymin, xmax, ymax),
	}, arr)
}

// GetExteriorRing returns the shell of each polygon. Other kinds give
// missing.
func (e *Engine) GetExteriorRing(ctx context.Context, arr *Cells) (*Cells, error) {
	return e.construct(ctx, &dispatch.Op[ndarray.Cell]{
		Name:   "get_exterior_ring",
		Params: []dispatch.Param{geometryParam()},
		Fn: func(a dispatch.Args) (ndarray.Cell, error) {
			g := a.Geom(0)
			if g == nil {
				return ndarray.Missing(), nil
			}
			return ndarray.Geom(g.ExteriorRing()), nil
		},
	}, arr)
}

// GetGeometry returns part index of each geometry. Negative indices count
// from the end. A simple geometry is its own part 0 and -1. An index out of
// range gives missing.
func (e *Engine) GetGeometry(ctx context.Context, arr, index *Cells) (*Cells, error) {
	return e.construct(ctx, &dispatch.Op[ndarray.Cell]{
		Name: "get_geometry",
		Params: []dispatch.Param{
			geometryParam(),
			{Name: "index", Kind: dispatch.IntParam},
		},
		Fn: func(a dispatch.Args) (ndarray.Cell, error) {
			g := a.Geom(0)
			if g == nil {
				return ndarray.Missing(), nil
			}
			return ndarray.Geom(part(g, a.Int(1))), nil
		},
	}, arr, index)
}

func part(g *geometry.Geometry, i int) *geometry.Geometry {
	n := g.NumGeometries()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil
	}
	p, err := g.GeometryN(i)
	if err != nil {
		return nil
	}
	return p
}
