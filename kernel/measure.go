package kernel

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/hupe1980/geovec/geometry"
)

// area sums polygon areas; holes are subtracted regardless of their
// orientation.
func area(g *geometry.Geometry) float64 {
	switch g.Kind() {
	case geometry.Polygon:
		var a float64
		for i := range g.NumRings() {
			r, _ := g.Ring(i)
			ra := math.Abs(planar.Area(orb.Ring(linePoints(r))))
			if i == 0 {
				a += ra
			} else {
				a -= ra
			}
		}
		return a
	case geometry.MultiPolygon, geometry.GeometryCollection:
		var a float64
		for m := range g.Geoms().All() {
			a += area(m)
		}
		return a
	default:
		return 0
	}
}

func length(g *geometry.Geometry) float64 {
	if g.IsEmpty() {
		return 0
	}
	return planar.Length(g.ToOrb())
}

func bounds(g *geometry.Geometry) [4]float64 {
	b := [4]float64{math.NaN(), math.NaN(), math.NaN(), math.NaN()}
	first := true
	for c := range g.Coords() {
		if first {
			b = [4]float64{c.X, c.Y, c.X, c.Y}
			first = false
			continue
		}
		b[0], b[1] = math.Min(b[0], c.X), math.Min(b[1], c.Y)
		b[2], b[3] = math.Max(b[2], c.X), math.Max(b[3], c.Y)
	}
	return b
}

// distance returns the minimum planar distance between a and b, 0 when they
// intersect and NaN when either is empty.
func distance(a, b *shape, m Matrix) float64 {
	if a.empty || b.empty {
		return math.NaN()
	}
	if m.Intersects() {
		return 0
	}
	d := math.Inf(1)
	pointTo := func(p orb.Point, s *shape) {
		for _, q := range s.points {
			d = math.Min(d, planar.Distance(p, q))
		}
		for _, sg := range s.segs {
			d = math.Min(d, planar.DistanceFromSegment(sg.a, sg.b, p))
		}
	}
	a.vertices(func(p orb.Point) { pointTo(p, b) })
	b.vertices(func(p orb.Point) { pointTo(p, a) })
	return d
}

// boundDistance is a lower bound of the distance between two shapes.
func boundDistance(a, b orb.Bound) float64 {
	dx := math.Max(0, math.Max(a.Min[0]-b.Max[0], b.Min[0]-a.Max[0]))
	dy := math.Max(0, math.Max(a.Min[1]-b.Max[1], b.Min[1]-a.Max[1]))
	return math.Hypot(dx, dy)
}
