package geovec

import (
	"context"
	"math"

	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/kernel"
	"github.com/hupe1980/geovec/ndarray"
)

func (e *Engine) unary(ctx context.Context, op kernel.UnaryOp, arr *Cells, optFns []CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     op.String(),
		Category: dispatch.Predicate,
		Params:   []dispatch.Param{geometryParam()},
		Fn: func(a dispatch.Args) (bool, error) {
			return e.kernel.Unary(op, a.Geom(0))
		},
	}
	return evaluateBool(ctx, e, d, optFns, arr)
}

// IsEmpty reports whether each geometry has no points. Missing gives false.
func (e *Engine) IsEmpty(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsEmpty, arr, optFns)
}

// IsSimple reports whether each geometry has no anomalous self-intersection.
func (e *Engine) IsSimple(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsSimple, arr, optFns)
}

// IsRing reports whether each geometry is a closed and simple line.
func (e *Engine) IsRing(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsRing, arr, optFns)
}

// IsClosed reports whether each linear geometry starts where it ends.
// Points and empty geometries are not closed.
func (e *Engine) IsClosed(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsClosed, arr, optFns)
}

// IsValid reports whether each geometry is topologically valid.
func (e *Engine) IsValid(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsValid, arr, optFns)
}

// IsCCW reports whether each closed linear geometry is counterclockwise.
func (e *Engine) IsCCW(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.IsCCW, arr, optFns)
}

// HasZ reports whether each geometry carries a third dimension.
func (e *Engine) HasZ(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.unary(ctx, kernel.HasZ, arr, optFns)
}

func classify(ctx context.Context, e *Engine, name string, kind dispatch.ParamKind, fn func(ndarray.Cell) bool, arr *Cells, optFns []CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     name,
		Category: dispatch.Classifier,
		Params:   []dispatch.Param{{Name: "geometry", Kind: kind}},
		Fn: func(a dispatch.Args) (bool, error) {
			return fn(a.Cell(0)), nil
		},
	}
	return evaluateBool(ctx, e, d, optFns, arr)
}

// IsMissing reports whether each element is the missing value. Elements of
// any kind are accepted.
func (e *Engine) IsMissing(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return classify(ctx, e, "is_missing", dispatch.AnyParam, ndarray.Cell.IsMissing, arr, optFns)
}

// IsGeometry reports whether each element is a geometry.
func (e *Engine) IsGeometry(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return classify(ctx, e, "is_geometry", dispatch.AnyParam, ndarray.Cell.IsGeometry, arr, optFns)
}

// IsValidInput reports whether each element is a geometry or missing, the
// two kinds geometry operands accept.
func (e *Engine) IsValidInput(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return classify(ctx, e, "is_valid_input", dispatch.AnyParam, func(c ndarray.Cell) bool {
		return c.IsGeometry() || c.IsMissing()
	}, arr, optFns)
}

// IsPrepared reports whether each geometry has a prepared entry attached.
// Missing gives false.
func (e *Engine) IsPrepared(ctx context.Context, arr *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return classify(ctx, e, "is_prepared", dispatch.GeometryParam, func(c ndarray.Cell) bool {
		return c.IsGeometry() && c.Geometry().IsPrepared()
	}, arr, optFns)
}

// binaryFn routes through a prepared entry of a, or of b via the converse
// predicate, and falls back to the plain kernel.
func (e *Engine) binaryFn(op kernel.BinaryOp) func(dispatch.Args) (bool, error) {
	conv, hasConverse := op.Converse()
	return func(args dispatch.Args) (bool, error) {
		a, b := args.Geom(0), args.Geom(1)
		if p := a.Prepared(); p != nil {
			return e.kernel.BinaryPrepared(op, p, b)
		}
		if hasConverse {
			if p := b.Prepared(); p != nil {
				return e.kernel.BinaryPrepared(conv, p, a)
			}
		}
		return e.kernel.Binary(op, a, b)
	}
}

func (e *Engine) binary(ctx context.Context, op kernel.BinaryOp, a, b *Cells, optFns []CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     op.String(),
		Category: dispatch.Predicate,
		Params:   pairParams(),
		Fn:       e.binaryFn(op),
	}
	return evaluateBool(ctx, e, d, optFns, a, b)
}

// Intersects reports whether a and b share at least one point, elementwise
// over the broadcast of a and b. A missing operand gives false.
func (e *Engine) Intersects(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Intersects, a, b, optFns)
}

// Disjoint reports whether a and b share no point.
func (e *Engine) Disjoint(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Disjoint, a, b, optFns)
}

// Touches reports whether a and b meet only at their boundaries.
func (e *Engine) Touches(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Touches, a, b, optFns)
}

// Crosses reports whether a and b cross.
func (e *Engine) Crosses(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Crosses, a, b, optFns)
}

// Within reports whether a lies inside b.
func (e *Engine) Within(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Within, a, b, optFns)
}

// Contains reports whether b lies inside a.
func (e *Engine) Contains(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Contains, a, b, optFns)
}

// ContainsProperly reports whether b lies in the interior of a, touching
// neither its boundary nor its exterior.
func (e *Engine) ContainsProperly(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.ContainsProperly, a, b, optFns)
}

// Overlaps reports whether a and b share interior points of their own
// dimension without either containing the other.
func (e *Engine) Overlaps(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Overlaps, a, b, optFns)
}

// Covers reports whether no point of b lies outside a.
func (e *Engine) Covers(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Covers, a, b, optFns)
}

// CoveredBy reports whether no point of a lies outside b.
func (e *Engine) CoveredBy(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.CoveredBy, a, b, optFns)
}

// Equals reports whether a and b are topologically equal.
func (e *Engine) Equals(ctx context.Context, a, b *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	return e.binary(ctx, kernel.Equals, a, b, optFns)
}

// EqualsExact reports whether a and b have the same structure and every
// pair of corresponding vertices lies within tolerance. tolerance
// broadcasts with a and b; a missing or NaN tolerance gives false.
func (e *Engine) EqualsExact(ctx context.Context, a, b, tolerance *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     "equals_exact",
		Category: dispatch.Predicate,
		Params:   append(pairParams(), dispatch.Param{Name: "tolerance", Kind: dispatch.FloatParam}),
		Fn: func(args dispatch.Args) (bool, error) {
			return e.kernel.EqualsExact(args.Geom(0), args.Geom(1), args.Float(2))
		},
	}
	return evaluateBool(ctx, e, d, optFns, a, b, tolerance)
}

// DWithin reports whether a and b are within distance of each other.
// distance broadcasts with a and b; a missing or NaN distance gives false.
// A prepared operand on either side is used.
func (e *Engine) DWithin(ctx context.Context, a, b, distance *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     "dwithin",
		Category: dispatch.Predicate,
		Params:   append(pairParams(), dispatch.Param{Name: "distance", Kind: dispatch.FloatParam}),
		Fn: func(args dispatch.Args) (bool, error) {
			ga, gb, dist := args.Geom(0), args.Geom(1), args.Float(2)
			if math.IsNaN(dist) {
				return false, nil
			}
			if p := ga.Prepared(); p != nil {
				return e.kernel.DWithinPrepared(p, gb, dist)
			}
			if p := gb.Prepared(); p != nil {
				return e.kernel.DWithinPrepared(p, ga, dist)
			}
			return e.kernel.DWithin(ga, gb, dist)
		},
	}
	return evaluateBool(ctx, e, d, optFns, a, b, distance)
}

// RelatePattern reports whether the DE-9IM matrix of a and b matches
// pattern. pattern must be a 0-d string array of length 9 over the
// characters T, F, *, 0, 1 and 2.
func (e *Engine) RelatePattern(ctx context.Context, a, b, pattern *Cells, optFns ...CallOption) (ndarray.BoolArray, error) {
	d := &dispatch.Op[bool]{
		Name:     "relate_pattern",
		Category: dispatch.Predicate,
		Params: append(pairParams(), dispatch.Param{
			Name:       "pattern",
			Kind:       dispatch.StringParam,
			ScalarOnly: true,
		}),
		Fn: func(args dispatch.Args) (bool, error) {
			return e.kernel.RelatePattern(args.Geom(0), args.Geom(1), args.String(2))
		},
	}
	return evaluateBool(ctx, e, d, optFns, a, b, pattern)
}

// Relate returns the DE-9IM matrix of a and b as a 9-character string
// cell. A missing operand gives a missing cell.
func (e *Engine) Relate(ctx context.Context, a, b *Cells) (*Cells, error) {
	d := &dispatch.Op[ndarray.Cell]{
		Name:     "relate",
		Category: dispatch.Text,
		Params:   pairParams(),
		Fill:     ndarray.Missing(),
		Fn: func(args dispatch.Args) (ndarray.Cell, error) {
			m, err := e.kernel.Relate(args.Geom(0), args.Geom(1))
			if err != nil {
				return ndarray.Missing(), err
			}
			return ndarray.String(m), nil
		},
	}
	r, err := evaluate(ctx, e, d, nil, a, b)
	if err != nil {
		return nil, err
	}
	return toArray(r), nil
}
