package kernel

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/hupe1980/geovec/geometry"
)

// segment is one edge of a line or polygon ring.
type segment struct {
	a, b orb.Point
	ring bool
}

func (s segment) bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(s.a[0], s.b[0]), math.Min(s.a[1], s.b[1])},
		Max: orb.Point{math.Max(s.a[0], s.b[0]), math.Max(s.a[1], s.b[1])},
	}
}

// endpoint counts how many non-closed lines start or end at a point.
type endpoint struct {
	p     orb.Point
	count int
}

// shape is the topology decomposition of a geometry.
type shape struct {
	points []orb.Point
	segs   []segment
	lines  []orb.LineString
	polys  []orb.Polygon
	ends   []endpoint
	bound  orb.Bound
	dim    int
	empty  bool
}

func newShape(g *geometry.Geometry) *shape {
	s := &shape{dim: -1, empty: true}
	s.add(g.ToOrb())
	return s
}

func (s *shape) add(og orb.Geometry) {
	switch v := og.(type) {
	case orb.Point:
		s.addPoint(v)
	case orb.MultiPoint:
		for _, p := range v {
			s.addPoint(p)
		}
	case orb.LineString:
		s.addLine(v)
	case orb.MultiLineString:
		for _, l := range v {
			s.addLine(l)
		}
	case orb.Polygon:
		s.addPolygon(v)
	case orb.MultiPolygon:
		for _, p := range v {
			s.addPolygon(p)
		}
	case orb.Collection:
		for _, m := range v {
			s.add(m)
		}
	}
}

func (s *shape) extend(p orb.Point) {
	if s.empty {
		s.bound = orb.Bound{Min: p, Max: p}
		s.empty = false
		return
	}
	s.bound = s.bound.Extend(p)
}

func (s *shape) addPoint(p orb.Point) {
	s.points = append(s.points, p)
	s.dim = max(s.dim, 0)
	s.extend(p)
}

func (s *shape) addLine(ls orb.LineString) {
	if len(ls) == 0 {
		return
	}
	n := 0
	for i := 1; i < len(ls); i++ {
		if ls[i] != ls[i-1] {
			s.segs = append(s.segs, segment{a: ls[i-1], b: ls[i]})
			n++
		}
	}
	for _, p := range ls {
		s.extend(p)
	}
	if n == 0 {
		// All vertices coincide.
		s.addPoint(ls[0])
		return
	}
	s.lines = append(s.lines, ls)
	s.dim = max(s.dim, 1)
	if first, last := ls[0], ls[len(ls)-1]; first != last {
		s.addEnd(first)
		s.addEnd(last)
	}
}

func (s *shape) addEnd(p orb.Point) {
	for i := range s.ends {
		if s.ends[i].p == p {
			s.ends[i].count++
			return
		}
	}
	s.ends = append(s.ends, endpoint{p: p, count: 1})
}

func (s *shape) addPolygon(p orb.Polygon) {
	if len(p) == 0 || len(p[0]) == 0 {
		return
	}
	for _, r := range p {
		for i := 1; i < len(r); i++ {
			if r[i] != r[i-1] {
				s.segs = append(s.segs, segment{a: r[i-1], b: r[i], ring: true})
			}
		}
		for _, v := range r {
			s.extend(v)
		}
	}
	s.polys = append(s.polys, p)
	s.dim = 2
}

// vertices calls fn for every segment endpoint and point.
func (s *shape) vertices(fn func(orb.Point)) {
	for _, p := range s.points {
		fn(p)
	}
	for _, sg := range s.segs {
		fn(sg.a)
		fn(sg.b)
	}
}

// locate returns the location of p. Polygon interiors take precedence over
// polygon boundaries, which take precedence over lines and points.
func (s *shape) locate(p orb.Point, eps float64) Location {
	if s.empty || !inBound(s.bound, p, eps) {
		return Exterior
	}

	onArea := false
	for _, poly := range s.polys {
		switch locatePolygon(poly, p, eps) {
		case Interior:
			return Interior
		case OnBoundary:
			onArea = true
		}
	}
	if onArea {
		return OnBoundary
	}

	onLine := false
	for _, sg := range s.segs {
		if sg.ring || !onSegment(p, sg.a, sg.b, eps) {
			continue
		}
		if !near(p, sg.a, eps) && !near(p, sg.b, eps) {
			return Interior
		}
		onLine = true
	}
	if onLine {
		// Mod-2 rule: a vertex is boundary when it ends an odd number of lines.
		for _, e := range s.ends {
			if near(p, e.p, eps) {
				if e.count%2 == 1 {
					return OnBoundary
				}
				break
			}
		}
		return Interior
	}

	for _, q := range s.points {
		if near(p, q, eps) {
			return Interior
		}
	}
	return Exterior
}

func locatePolygon(poly orb.Polygon, p orb.Point, eps float64) Location {
	for _, r := range poly {
		for i := 1; i < len(r); i++ {
			if onSegment(p, r[i-1], r[i], eps) {
				return OnBoundary
			}
		}
	}
	if planar.PolygonContains(poly, p) {
		return Interior
	}
	return Exterior
}

func inBound(b orb.Bound, p orb.Point, eps float64) bool {
	return p[0] >= b.Min[0]-eps && p[0] <= b.Max[0]+eps &&
		p[1] >= b.Min[1]-eps && p[1] <= b.Max[1]+eps
}

func pad(b orb.Bound, d float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - d, b.Min[1] - d},
		Max: orb.Point{b.Max[0] + d, b.Max[1] + d},
	}
}

func boundsOverlap(a, b orb.Bound) bool {
	return a.Min[0] <= b.Max[0] && b.Min[0] <= a.Max[0] &&
		a.Min[1] <= b.Max[1] && b.Min[1] <= a.Max[1]
}

func near(p, q orb.Point, eps float64) bool {
	return math.Abs(p[0]-q[0]) <= eps && math.Abs(p[1]-q[1]) <= eps
}

func onSegment(p, a, b orb.Point, eps float64) bool {
	if p[0] < math.Min(a[0], b[0])-eps || p[0] > math.Max(a[0], b[0])+eps ||
		p[1] < math.Min(a[1], b[1])-eps || p[1] > math.Max(a[1], b[1])+eps {
		return false
	}
	return planar.DistanceFromSegment(a, b, p) <= eps
}

// tolerance returns the snapping distance for comparing a and b, relative
// to the magnitude of their coordinates.
func tolerance(shapes ...*shape) float64 {
	scale := 1.0
	for _, s := range shapes {
		if s.empty {
			continue
		}
		for _, v := range []float64{s.bound.Min[0], s.bound.Min[1], s.bound.Max[0], s.bound.Max[1]} {
			scale = math.Max(scale, math.Abs(v))
		}
	}
	return scale * 1e-10
}
