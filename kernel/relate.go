package kernel

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// candidateFunc calls fn, in ascending order, with the index of every
// segment of the indexed shape whose bound may overlap q.
type candidateFunc func(q orb.Bound, fn func(i int))

// scanAll is the unindexed candidateFunc: every segment, in order.
func scanAll(s *shape) candidateFunc {
	return func(_ orb.Bound, fn func(i int)) {
		for i := range s.segs {
			fn(i)
		}
	}
}

// relate computes the DE-9IM matrix of a and b. Segments of a are looked up
// through cand so that an index can replace the full scan; the result does
// not depend on which candidateFunc is used as long as it returns a superset
// of the overlapping segments in ascending order.
func relate(a, b *shape, cand candidateFunc) Matrix {
	eps := tolerance(a, b)
	m := newMatrix()

	nodesA := make([][]orb.Point, len(a.segs))
	nodesB := make([][]orb.Point, len(b.segs))
	var crossings []orb.Point

	for j, sb := range b.segs {
		q := pad(sb.bound(), eps)
		cand(q, func(i int) {
			sa := a.segs[i]
			if !boundsOverlap(sa.bound(), q) {
				return
			}
			for _, p := range intersectSegments(sa.a, sa.b, sb.a, sb.b, eps) {
				nodesA[i] = append(nodesA[i], p)
				nodesB[j] = append(nodesB[j], p)
				crossings = append(crossings, p)
			}
		})
	}

	// Isolated points split the segments they lie on.
	for _, p := range b.points {
		q := pad(orb.Bound{Min: p, Max: p}, eps)
		cand(q, func(i int) {
			sa := a.segs[i]
			if boundsOverlap(sa.bound(), q) && onSegment(p, sa.a, sa.b, eps) {
				nodesA[i] = append(nodesA[i], p)
			}
		})
	}
	for _, p := range a.points {
		for j, sb := range b.segs {
			if onSegment(p, sb.a, sb.b, eps) {
				nodesB[j] = append(nodesB[j], p)
			}
		}
	}

	label := func(p orb.Point, dim int8) {
		m.set(a.locate(p, eps), b.locate(p, eps), dim)
	}
	labelArea := func(p orb.Point) {
		la, lb := a.locate(p, eps), b.locate(p, eps)
		if la == OnBoundary || lb == OnBoundary {
			return
		}
		if (la == Interior && a.dim < 2) || (lb == Interior && b.dim < 2) {
			return
		}
		m.set(la, lb, 2)
	}
	labelPieces := func(segs []segment, nodes [][]orb.Point) {
		for i, sg := range segs {
			for _, pc := range split(sg, nodes[i], eps) {
				mid := orb.Point{(pc[0][0] + pc[1][0]) / 2, (pc[0][1] + pc[1][1]) / 2}
				label(mid, 1)
				if !sg.ring {
					continue
				}
				l, r := offsets(pc[0], pc[1], eps)
				labelArea(l)
				labelArea(r)
			}
		}
	}

	vertex := func(p orb.Point) { label(p, 0) }
	a.vertices(vertex)
	b.vertices(vertex)
	for _, p := range crossings {
		label(p, 0)
	}
	labelPieces(a.segs, nodesA)
	labelPieces(b.segs, nodesB)
	return m
}

// split cuts sg at the given nodes and returns the pieces in order from
// sg.a to sg.b. Nodes closer than eps collapse into one.
func split(sg segment, nodes []orb.Point, eps float64) [][2]orb.Point {
	if len(nodes) == 0 {
		return [][2]orb.Point{{sg.a, sg.b}}
	}
	type node struct {
		t float64
		p orb.Point
	}
	dx, dy := sg.b[0]-sg.a[0], sg.b[1]-sg.a[1]
	l2 := dx*dx + dy*dy
	pts := make([]node, 0, len(nodes)+2)
	pts = append(pts, node{0, sg.a})
	for _, p := range nodes {
		t := ((p[0]-sg.a[0])*dx + (p[1]-sg.a[1])*dy) / l2
		pts = append(pts, node{math.Max(0, math.Min(1, t)), p})
	}
	pts = append(pts, node{1, sg.b})
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].t < pts[j].t })

	pieces := make([][2]orb.Point, 0, len(pts)-1)
	prev := pts[0].p
	for _, n := range pts[1:] {
		if near(prev, n.p, eps) {
			continue
		}
		pieces = append(pieces, [2]orb.Point{prev, n.p})
		prev = n.p
	}
	if len(pieces) > 0 {
		// The last piece always ends exactly at sg.b.
		pieces[len(pieces)-1][1] = sg.b
	}
	return pieces
}

// offsets returns two points beside the middle of p-q, one on each side.
func offsets(p, q orb.Point, eps float64) (orb.Point, orb.Point) {
	dx, dy := q[0]-p[0], q[1]-p[1]
	l := math.Hypot(dx, dy)
	d := math.Max(l*1e-4, 100*eps)
	nx, ny := -dy/l*d, dx/l*d
	mx, my := (p[0]+q[0])/2, (p[1]+q[1])/2
	return orb.Point{mx + nx, my + ny}, orb.Point{mx - nx, my - ny}
}

// intersectSegments returns the intersection points of p0-p1 and q0-q1.
// Collinear overlaps are reported by their end points.
func intersectSegments(p0, p1, q0, q1 orb.Point, eps float64) []orb.Point {
	if math.Max(p0[0], p1[0])+eps < math.Min(q0[0], q1[0]) ||
		math.Max(q0[0], q1[0])+eps < math.Min(p0[0], p1[0]) ||
		math.Max(p0[1], p1[1])+eps < math.Min(q0[1], q1[1]) ||
		math.Max(q0[1], q1[1])+eps < math.Min(p0[1], p1[1]) {
		return nil
	}

	var out []orb.Point
	add := func(p orb.Point) {
		for _, o := range out {
			if near(o, p, eps) {
				return
			}
		}
		out = append(out, p)
	}
	if onSegment(p0, q0, q1, eps) {
		add(p0)
	}
	if onSegment(p1, q0, q1, eps) {
		add(p1)
	}
	if onSegment(q0, p0, p1, eps) {
		add(q0)
	}
	if onSegment(q1, p0, p1, eps) {
		add(q1)
	}
	if len(out) > 0 {
		return out
	}

	rx, ry := p1[0]-p0[0], p1[1]-p0[1]
	sx, sy := q1[0]-q0[0], q1[1]-q0[1]
	den := rx*sy - ry*sx
	if den == 0 {
		return nil
	}
	wx, wy := q0[0]-p0[0], q0[1]-p0[1]
	ta := (wx*sy - wy*sx) / den
	tb := (wx*ry - wy*rx) / den
	if ta <= 0 || ta >= 1 || tb <= 0 || tb >= 1 {
		return nil
	}
	return []orb.Point{{p0[0] + ta*rx, p0[1] + ta*ry}}
}
