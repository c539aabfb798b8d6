package kernel

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/hupe1980/geovec/geometry"
)

func isClosed(g *geometry.Geometry) bool {
	switch g.Kind() {
	case geometry.LineString, geometry.LinearRing:
		return !g.IsEmpty() && closedPoints(linePoints(g))
	case geometry.MultiLineString:
		if g.IsEmpty() {
			return false
		}
		for part := range g.Geoms().All() {
			if !closedPoints(linePoints(part)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func closedPoints(pts []orb.Point) bool {
	return len(pts) > 0 && pts[0] == pts[len(pts)-1]
}

func linePoints(g *geometry.Geometry) []orb.Point {
	pts := make([]orb.Point, 0, g.NumCoords())
	for c := range g.Coords() {
		pts = append(pts, orb.Point{c.X, c.Y})
	}
	return pts
}

func isRing(g *geometry.Geometry) bool {
	switch g.Kind() {
	case geometry.LineString, geometry.LinearRing:
		return isClosed(g) && isSimpleLine(linePoints(g))
	default:
		return false
	}
}

func isCCW(g *geometry.Geometry) bool {
	switch g.Kind() {
	case geometry.LineString, geometry.LinearRing:
	default:
		return false
	}
	pts := linePoints(g)
	if len(pts) < 4 || !closedPoints(pts) {
		return false
	}
	return orb.Ring(pts).Orientation() == orb.CCW
}

func isSimple(g *geometry.Geometry) bool {
	switch g.Kind() {
	case geometry.Point:
		return true
	case geometry.MultiPoint:
		seen := make(map[orb.Point]struct{}, g.NumCoords())
		for c := range g.Coords() {
			p := orb.Point{c.X, c.Y}
			if _, dup := seen[p]; dup {
				return false
			}
			seen[p] = struct{}{}
		}
		return true
	case geometry.LineString, geometry.LinearRing:
		return isSimpleLine(linePoints(g))
	case geometry.MultiLineString:
		return isSimpleMultiLine(g)
	case geometry.Polygon:
		for i := range g.NumRings() {
			r, _ := g.Ring(i)
			if !isSimpleLine(linePoints(r)) {
				return false
			}
		}
		return true
	default:
		for m := range g.Geoms().All() {
			if !isSimple(m) {
				return false
			}
		}
		return true
	}
}

// dedup drops consecutive repeated points.
func dedup(pts []orb.Point) []orb.Point {
	out := make([]orb.Point, 0, len(pts))
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}

func lineEps(pts []orb.Point) float64 {
	scale := 1.0
	for _, p := range pts {
		scale = math.Max(scale, math.Max(math.Abs(p[0]), math.Abs(p[1])))
	}
	return scale * 1e-10
}

// isSimpleLine reports whether a line touches itself only where adjacent
// segments share a vertex, or at the closing vertex of a closed line.
func isSimpleLine(pts []orb.Point) bool {
	pts = dedup(pts)
	n := len(pts) - 1
	if n < 1 {
		return true
	}
	eps := lineEps(pts)
	closed := n > 1 && pts[0] == pts[n]
	for i := range n {
		for j := i + 1; j < n; j++ {
			hits := intersectSegments(pts[i], pts[i+1], pts[j], pts[j+1], eps)
			if len(hits) == 0 {
				continue
			}
			var shared orb.Point
			switch {
			case j == i+1:
				shared = pts[j]
			case closed && i == 0 && j == n-1:
				shared = pts[0]
			default:
				return false
			}
			for _, h := range hits {
				if !near(h, shared, eps) {
					return false
				}
			}
		}
	}
	return true
}

// isSimpleMultiLine requires every line to be simple and lines to meet only
// at their end points.
func isSimpleMultiLine(g *geometry.Geometry) bool {
	lines := make([][]orb.Point, 0, g.NumGeometries())
	var all []orb.Point
	for part := range g.Geoms().All() {
		pts := dedup(linePoints(part))
		if !isSimpleLine(pts) {
			return false
		}
		lines = append(lines, pts)
		all = append(all, pts...)
	}
	eps := lineEps(all)
	isEnd := func(pts []orb.Point, p orb.Point) bool {
		if closedPoints(pts) {
			return false
		}
		return near(p, pts[0], eps) || near(p, pts[len(pts)-1], eps)
	}
	for i := range lines {
		for j := i + 1; j < len(lines); j++ {
			a, b := lines[i], lines[j]
			for s := 0; s+1 < len(a); s++ {
				for t := 0; t+1 < len(b); t++ {
					for _, h := range intersectSegments(a[s], a[s+1], b[t], b[t+1], eps) {
						if !isEnd(a, h) || !isEnd(b, h) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}

func isValid(g *geometry.Geometry) bool {
	for c := range g.Coords() {
		if math.IsNaN(c.X) || math.IsInf(c.X, 0) || math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
			return false
		}
	}
	switch g.Kind() {
	case geometry.Point, geometry.MultiPoint:
		return true
	case geometry.LineString:
		return g.IsEmpty() || len(dedup(linePoints(g))) >= 2
	case geometry.LinearRing:
		return g.IsEmpty() || isValidRing(linePoints(g))
	case geometry.MultiLineString:
		for part := range g.Geoms().All() {
			if len(dedup(linePoints(part))) < 2 {
				return false
			}
		}
		return true
	case geometry.Polygon:
		return isValidPolygon(g)
	case geometry.MultiPolygon:
		parts := g.Geoms().ToSlice()
		for _, p := range parts {
			if !isValidPolygon(p) {
				return false
			}
		}
		for i := range parts {
			for j := i + 1; j < len(parts); j++ {
				a, b := newShape(parts[i]), newShape(parts[j])
				m := relate(a, b, scanAll(a))
				if m[Interior][Interior] >= 0 || m[OnBoundary][OnBoundary] > 0 {
					return false
				}
			}
		}
		return true
	default:
		for m := range g.Geoms().All() {
			if !isValid(m) {
				return false
			}
		}
		return true
	}
}

func isValidRing(pts []orb.Point) bool {
	return len(pts) >= 4 && closedPoints(pts) && len(dedup(pts)) >= 4 && isSimpleLine(pts)
}

// isValidPolygon checks ring validity, that holes lie inside the shell and
// outside each other, and that any two rings touch in at most one point.
func isValidPolygon(g *geometry.Geometry) bool {
	if g.IsEmpty() {
		return true
	}
	rings := make([][]orb.Point, g.NumRings())
	var all []orb.Point
	for i := range rings {
		r, _ := g.Ring(i)
		rings[i] = dedup(linePoints(r))
		if !isValidRing(linePoints(r)) {
			return false
		}
		all = append(all, rings[i]...)
	}
	eps := lineEps(all)

	shell := orb.Polygon{orb.Ring(rings[0])}
	for _, h := range rings[1:] {
		inside := false
		for _, p := range h {
			switch locatePolygon(shell, p, eps) {
			case Exterior:
				return false
			case Interior:
				inside = true
			}
		}
		if !inside {
			return false
		}
	}

	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			if touchPoints(rings[i], rings[j], eps) > 1 {
				return false
			}
			if i == 0 {
				continue
			}
			hole := orb.Polygon{orb.Ring(rings[i])}
			for _, p := range rings[j] {
				if locatePolygon(hole, p, eps) == Interior {
					return false
				}
			}
			other := orb.Polygon{orb.Ring(rings[j])}
			for _, p := range rings[i] {
				if locatePolygon(other, p, eps) == Interior {
					return false
				}
			}
		}
	}
	return true
}

// touchPoints counts the distinct points shared by two rings.
func touchPoints(a, b []orb.Point, eps float64) int {
	var pts []orb.Point
	for s := 0; s+1 < len(a); s++ {
		for t := 0; t+1 < len(b); t++ {
			for _, h := range intersectSegments(a[s], a[s+1], b[t], b[t+1], eps) {
				dup := false
				for _, p := range pts {
					if near(p, h, eps) {
						dup = true
						break
					}
				}
				if !dup {
					pts = append(pts, h)
				}
			}
		}
	}
	return len(pts)
}
