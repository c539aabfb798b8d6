package kernel

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"

	"github.com/hupe1980/geovec/geometry"
)

func envelope(g *geometry.Geometry) (*geometry.Geometry, error) {
	if g.IsEmpty() {
		return geometry.NewEmpty(geometry.Polygon), nil
	}
	b := bounds(g)
	switch {
	case b[0] == b[2] && b[1] == b[3]:
		return geometry.NewPoint(b[0], b[1]), nil
	case b[0] == b[2] || b[1] == b[3]:
		return geometry.NewLineString(geometry.XY, []float64{b[0], b[1], b[2], b[3]})
	default:
		return geometry.Box(b[0], b[1], b[2], b[3]), nil
	}
}

func centroid(g *geometry.Geometry) (*geometry.Geometry, error) {
	if g.IsEmpty() {
		return geometry.NewEmpty(geometry.Point), nil
	}
	c, _ := planar.CentroidArea(g.ToOrb())
	return geometry.NewPoint(c[0], c[1]), nil
}

// boundary returns the topological boundary. Collections have none and
// yield nil.
func boundary(g *geometry.Geometry) (*geometry.Geometry, error) {
	switch g.Kind() {
	case geometry.Point, geometry.MultiPoint:
		return geometry.NewEmpty(geometry.GeometryCollection), nil
	case geometry.LineString, geometry.LinearRing, geometry.MultiLineString:
		s := newShape(g)
		var flat []float64
		for _, e := range s.ends {
			if e.count%2 == 1 {
				flat = append(flat, e.p[0], e.p[1])
			}
		}
		return geometry.NewMultiPoint(geometry.XY, flat)
	case geometry.Polygon:
		if g.NumRings() == 1 {
			r, _ := g.Ring(0)
			return geometry.NewLineString(geometry.XY, xyFlat(r))
		}
		return ringLines(g)
	case geometry.MultiPolygon:
		return ringLines(g.Geoms().ToSlice()...)
	default:
		return nil, nil
	}
}

// ringLines collects every ring of the given polygons into one
// MultiLineString.
func ringLines(polys ...*geometry.Geometry) (*geometry.Geometry, error) {
	var lines [][]float64
	for _, p := range polys {
		for i := range p.NumRings() {
			r, _ := p.Ring(i)
			lines = append(lines, xyFlat(r))
		}
	}
	return geometry.NewMultiLineString(geometry.XY, lines...)
}

func xyFlat(g *geometry.Geometry) []float64 {
	flat := make([]float64, 0, 2*g.NumCoords())
	for c := range g.Coords() {
		flat = append(flat, c.X, c.Y)
	}
	return flat
}

func simplifyGeometry(g *geometry.Geometry, tolerance float64) (*geometry.Geometry, error) {
	if math.IsNaN(tolerance) || tolerance < 0 {
		return nil, &DomainError{Op: Simplify.String(), Msg: fmt.Sprintf("tolerance must be non-negative, got %v", tolerance)}
	}
	if g.IsEmpty() {
		return g, nil
	}
	og := simplify.DouglasPeucker(tolerance).Simplify(g.ToOrb())
	return fromOrb(g.Kind(), sanitize(og))
}

func clipByRect(g *geometry.Geometry, xmin, ymin, xmax, ymax float64) (*geometry.Geometry, error) {
	if g.IsEmpty() {
		return geometry.NewEmpty(geometry.GeometryCollection), nil
	}
	b := orb.Bound{Min: orb.Point{xmin, ymin}, Max: orb.Point{xmax, ymax}}
	og := sanitize(clip.Geometry(b, g.ToOrb()))
	if og == nil {
		return geometry.NewEmpty(geometry.GeometryCollection), nil
	}
	return fromOrb(g.Kind(), og)
}

// fromOrb converts a result back, keeping kind for an empty result.
func fromOrb(kind geometry.Kind, og orb.Geometry) (*geometry.Geometry, error) {
	if og == nil {
		if kind == geometry.LinearRing {
			kind = geometry.LineString
		}
		return geometry.NewEmpty(kind), nil
	}
	return geometry.FromOrb(og)
}

// sanitize drops parts that collapsed below their minimum point count:
// lines under 2 points and rings under 4. Polygons without a shell are
// removed. It returns nil when nothing is left.
func sanitize(og orb.Geometry) orb.Geometry {
	switch v := og.(type) {
	case nil:
		return nil
	case orb.LineString:
		if len(v) < 2 {
			return nil
		}
		return v
	case orb.Ring:
		if len(v) < 4 {
			return nil
		}
		return v
	case orb.MultiLineString:
		out := v[:0]
		for _, l := range v {
			if len(l) >= 2 {
				out = append(out, l)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case orb.Polygon:
		p := sanitizePolygon(v)
		if p == nil {
			return nil
		}
		return p
	case orb.MultiPolygon:
		out := v[:0]
		for _, p := range v {
			if sp := sanitizePolygon(p); sp != nil {
				out = append(out, sp)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case orb.Collection:
		out := v[:0]
		for _, m := range v {
			if sm := sanitize(m); sm != nil {
				out = append(out, sm)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return og
	}
}

func sanitizePolygon(p orb.Polygon) orb.Polygon {
	if len(p) == 0 || len(p[0]) < 4 {
		return nil
	}
	out := p[:1]
	for _, r := range p[1:] {
		if len(r) >= 4 {
			out = append(out, r)
		}
	}
	return out
}
