package kernel

import (
	"fmt"
	"math"

	"github.com/hupe1980/geovec/geometry"
)

// Planar is the default Kernel. It works in the XY plane; z ordinates are
// carried by geometries but ignored by every predicate and measure.
type Planar struct{}

// NewPlanar returns the planar kernel.
func NewPlanar() *Planar { return &Planar{} }

var _ Kernel = (*Planar)(nil)

// Unary evaluates a unary predicate.
func (k *Planar) Unary(op UnaryOp, g *geometry.Geometry) (bool, error) {
	switch op {
	case IsEmpty:
		return g.IsEmpty(), nil
	case IsSimple:
		return isSimple(g), nil
	case IsRing:
		return isRing(g), nil
	case IsClosed:
		return isClosed(g), nil
	case IsValid:
		return isValid(g), nil
	case IsCCW:
		return isCCW(g), nil
	case HasZ:
		return g.HasZ(), nil
	default:
		return false, fmt.Errorf("kernel: unknown unary op %v", op)
	}
}

// Binary evaluates a binary predicate from the relate matrix of a and b.
func (k *Planar) Binary(op BinaryOp, a, b *geometry.Geometry) (bool, error) {
	sa, sb := newShape(a), newShape(b)
	return binary(op, sa, sb, scanAll(sa))
}

func binary(op BinaryOp, a, b *shape, cand candidateFunc) (bool, error) {
	if int(op) >= len(binaryNames) {
		return false, fmt.Errorf("kernel: unknown binary op %v", op)
	}
	if op == Equals && a.empty && b.empty {
		return true, nil
	}
	return relate(a, b, cand).evaluate(op, a.dim, b.dim), nil
}

// Prepare builds a PreparedGeometry for g.
func (k *Planar) Prepare(g *geometry.Geometry) (geometry.Prepared, error) {
	return newPreparedGeometry(g)
}

// BinaryPrepared evaluates op(p.Source(), b). Entries not built by this
// kernel fall back to Binary.
func (k *Planar) BinaryPrepared(op BinaryOp, p geometry.Prepared, b *geometry.Geometry) (bool, error) {
	pg, ok := p.(*PreparedGeometry)
	if !ok {
		return k.Binary(op, p.Source(), b)
	}
	sb := newShape(b)
	if int(op) < len(binaryNames) && !pg.shape.empty && !sb.empty {
		eps := tolerance(pg.shape, sb)
		if !boundsOverlap(pad(pg.shape.bound, eps), sb.bound) {
			return op == Disjoint, nil
		}
	}
	return binary(op, pg.shape, sb, pg.grid.candidates)
}

// DWithin reports whether a and b are within distance of each other. A NaN
// distance or an empty operand gives false.
func (k *Planar) DWithin(a, b *geometry.Geometry, distance float64) (bool, error) {
	sa, sb := newShape(a), newShape(b)
	return dwithin(sa, sb, scanAll(sa), distance), nil
}

// DWithinPrepared is DWithin with a prepared first operand.
func (k *Planar) DWithinPrepared(p geometry.Prepared, b *geometry.Geometry, distance float64) (bool, error) {
	pg, ok := p.(*PreparedGeometry)
	if !ok {
		return k.DWithin(p.Source(), b, distance)
	}
	sb := newShape(b)
	if !pg.shape.empty && !sb.empty && boundDistance(pg.shape.bound, sb.bound) > distance+tolerance(pg.shape, sb) {
		return false, nil
	}
	return dwithin(pg.shape, sb, pg.grid.candidates, distance), nil
}

func dwithin(a, b *shape, cand candidateFunc, d float64) bool {
	if math.IsNaN(d) || a.empty || b.empty {
		return false
	}
	return distance(a, b, relate(a, b, cand)) <= d
}

// EqualsExact reports whether a and b have the same structure and every
// pair of corresponding points lies within tolerance.
func (k *Planar) EqualsExact(a, b *geometry.Geometry, tolerance float64) (bool, error) {
	return geometry.EqualExact(a, b, tolerance), nil
}

// Relate returns the DE-9IM matrix of a and b as a nine-character string.
func (k *Planar) Relate(a, b *geometry.Geometry) (string, error) {
	sa, sb := newShape(a), newShape(b)
	return relate(sa, sb, scanAll(sa)).String(), nil
}

// RelatePattern matches the DE-9IM matrix of a and b against pattern.
func (k *Planar) RelatePattern(a, b *geometry.Geometry, pattern string) (bool, error) {
	if err := validatePattern(pattern); err != nil {
		return false, err
	}
	sa, sb := newShape(a), newShape(b)
	return relate(sa, sb, scanAll(sa)).Matches(pattern)
}

// Measure evaluates a scalar measurement.
func (k *Planar) Measure(op MeasureOp, g *geometry.Geometry) (float64, error) {
	switch op {
	case Area:
		return area(g), nil
	case Length:
		return length(g), nil
	case X:
		return g.X(), nil
	case Y:
		return g.Y(), nil
	case Z:
		return g.Z(), nil
	default:
		return math.NaN(), fmt.Errorf("kernel: unknown measure %v", op)
	}
}

// Distance returns the minimum planar distance, NaN when either operand is
// empty.
func (k *Planar) Distance(a, b *geometry.Geometry) (float64, error) {
	sa, sb := newShape(a), newShape(b)
	if sa.empty || sb.empty {
		return math.NaN(), nil
	}
	return distance(sa, sb, relate(sa, sb, scanAll(sa))), nil
}

// Bounds returns xmin, ymin, xmax, ymax, all NaN for an empty geometry.
func (k *Planar) Bounds(g *geometry.Geometry) ([4]float64, error) {
	return bounds(g), nil
}

// Construct evaluates a geometry-producing operation. A nil g yields nil.
func (k *Planar) Construct(op ConstructOp, g *geometry.Geometry, params ...float64) (*geometry.Geometry, error) {
	if g == nil {
		return nil, nil
	}
	switch op {
	case Envelope:
		return envelope(g)
	case Centroid:
		return centroid(g)
	case Boundary:
		return boundary(g)
	case Simplify:
		if len(params) != 1 {
			return nil, fmt.Errorf("kernel: %v takes 1 parameter, got %d", op, len(params))
		}
		return simplifyGeometry(g, params[0])
	case ClipByRect:
		if len(params) != 4 {
			return nil, fmt.Errorf("kernel: %v takes 4 parameters, got %d", op, len(params))
		}
		return clipByRect(g, params[0], params[1], params[2], params[3])
	default:
		return nil, fmt.Errorf("kernel: unknown constructive op %v", op)
	}
}
