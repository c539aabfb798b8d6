package geovec

import (
	"context"
	"math"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

func (e *Engine) measure(ctx context.Context, op kernel.MeasureOp, arr *Cells) (*ndarray.Array[float64], error) {
	d := &dispatch.Op[float64]{
		Name:     op.String(),
		Category: dispatch.Measurement,
		Params:   []dispatch.Param{geometryParam()},
		Fill:     math.NaN(),
		Fn: func(a dispatch.Args) (float64, error) {
			return e.kernel.Measure(op, a.Geom(0))
		},
	}
	r, err := evaluate(ctx, e, d, nil, arr)
	if err != nil {
		return nil, err
	}
	return toArray(r), nil
}

// Area returns the planar area of each geometry; zero for points and lines,
// NaN for missing.
func (e *Engine) Area(ctx context.Context, arr *Cells) (*ndarray.Array[float64], error) {
	return e.measure(ctx, kernel.Area, arr)
}

// Length returns the length of each geometry, the perimeter for polygons.
func (e *Engine) Length(ctx context.Context, arr *Cells) (*ndarray.Array[float64], error) {
	return e.measure(ctx, kernel.Length, arr)
}

// GetX returns the x coordinate of each point; NaN for other kinds.
func (e *Engine) GetX(ctx context.Context, arr *Cells) (*ndarray.Array[float64], error) {
	return e.measure(ctx, kernel.X, arr)
}

// GetY returns the y coordinate of each point; NaN for other kinds.
func (e *Engine) GetY(ctx context.Context, arr *Cells) (*ndarray.Array[float64], error) {
	return e.measure(ctx, kernel.Y, arr)
}

// GetZ returns the z coordinate of each 3D point; NaN otherwise.
func (e *Engine) GetZ(ctx context.Context, arr *Cells) (*ndarray.Array[float64], error) {
	return e.measure(ctx, kernel.Z, arr)
}

// Distance returns the minimum planar distance between a and b. Empty or
// missing operands give NaN.
func (e *Engine) Distance(ctx context.Context, a, b *Cells) (*ndarray.Array[float64], error) {
	d := &dispatch.Op[float64]{
		Name:     "distance",
		Category: dispatch.Measurement,
		Params:   pairParams(),
		Fill:     math.NaN(),
		Fn: func(args dispatch.Args) (float64, error) {
			return e.kernel.Distance(args.Geom(0), args.Geom(1))
		},
	}
	r, err := evaluate(ctx, e, d, nil, a, b)
	if err != nil {
		return nil, err
	}
	return toArray(r), nil
}

// BoundsResult holds the four outputs of Bounds, each with the shape of
// the input.
type BoundsResult struct {
	XMin, YMin, XMax, YMax *ndarray.Array[float64]
}

// Bounds returns the bounding box of each geometry. Empty and missing
// geometries give NaN in all four outputs.
func (e *Engine) Bounds(ctx context.Context, arr *Cells) (*BoundsResult, error) {
	nan := math.NaN()
	d := &dispatch.Op[[4]float64]{
		Name:     "bounds",
		Category: dispatch.Measurement,
		Params:   []dispatch.Param{geometryParam()},
		Fill:     [4]float64{nan, nan, nan, nan},
		Fn: func(a dispatch.Args) ([4]float64, error) {
			return e.kernel.Bounds(a.Geom(0))
		},
	}
	r, err := evaluate(ctx, e, d, nil, arr)
	if err != nil {
		return nil, err
	}

	var outs [4]*ndarray.Array[float64]
	for k := range outs {
		outs[k] = ndarray.Make[float64](r.shape, r.scalar)
		data := outs[k].Data()
		for i, b := range r.data {
			data[i] = b[k]
		}
	}
	return &BoundsResult{XMin: outs[0], YMin: outs[1], XMax: outs[2], YMax: outs[3]}, nil
}

func (e *Engine) count(ctx context.Context, name string, fill int, fn func(*geometry.Geometry) int, arr *Cells) (*ndarray.Array[int], error) {
	d := &dispatch.Op[int]{
		Name:     name,
		Category: dispatch.Count,
		Params:   []dispatch.Param{geometryParam()},
		Fill:     fill,
		Fn: func(a dispatch.Args) (int, error) {
			return fn(a.Geom(0)), nil
		},
	}
	r, err := evaluate(ctx, e, d, nil, arr)
	if err != nil {
		return nil, err
	}
	return toArray(r), nil
}

// GetNumCoordinates returns the number of points of each geometry; zero
// for missing.
func (e *Engine) GetNumCoordinates(ctx context.Context, arr *Cells) (*ndarray.Array[int], error) {
	return e.count(ctx, "get_num_coordinates", 0, (*geometry.Geometry).NumCoords, arr)
}

// GetNumGeometries returns the number of parts of each geometry. A
// non-empty simple geometry has one part; missing gives zero.
func (e *Engine) GetNumGeometries(ctx context.Context, arr *Cells) (*ndarray.Array[int], error) {
	return e.count(ctx, "get_num_geometries", 0, (*geometry.Geometry).NumGeometries, arr)
}

// GetTypeID returns the kind id of each geometry, -1 for missing.
func (e *Engine) GetTypeID(ctx context.Context, arr *Cells) (*ndarray.Array[int], error) {
	return e.count(ctx, "get_type_id", -1, (*geometry.Geometry).TypeID, arr)
}

// GetCoordinateDimension returns 2 or 3 for each geometry, -1 for missing.
func (e *Engine) GetCoordinateDimension(ctx context.Context, arr *Cells) (*ndarray.Array[int], error) {
	return e.count(ctx, "get_coordinate_dimension", -1, (*geometry.Geometry).Dim, arr)
}
