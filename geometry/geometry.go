package geometry

import (
	"iter"
	"math"
	"slices"
	"sync/atomic"
)

// Geometry is an immutable geometry handle.
//
// Storage layout per kind:
//
//	Point, LineString, LinearRing, MultiPoint   flat
//	Polygon                                     flat + ends (cumulative points per ring)
//	MultiLineString                             flat + ends (cumulative points per line)
//	MultiPolygon                                flat + ends (per ring) + parts (cumulative rings per polygon)
//	GeometryCollection                          geoms
//
// A Geometry must not be copied by value.
type Geometry struct {
	kind   Kind
	layout Layout
	flat   []float64
	ends   []int
	parts  []int
	geoms  []*Geometry

	// parent is set on views that share another geometry's storage.
	parent *Geometry

	prepared atomic.Pointer[preparedSlot]
	// pinned marks members of a prepared collection.
	pinned atomic.Bool
}

var nan = math.NaN()

// Coord is one coordinate. Z is NaN for XY geometries.
type Coord struct {
	X, Y, Z float64
}

// Kind returns the geometry type tag.
func (g *Geometry) Kind() Kind { return g.kind }

// TypeID returns the numeric type id.
func (g *Geometry) TypeID() int { return g.kind.TypeID() }

// Layout returns the coordinate layout.
func (g *Geometry) Layout() Layout { return g.layout }

// Dim returns the coordinate dimension, 2 or 3.
func (g *Geometry) Dim() int { return g.layout.Stride() }

// HasZ reports whether the geometry stores z values.
func (g *Geometry) HasZ() bool { return g.layout == XYZ }

// IsEmpty reports whether the geometry has no points.
func (g *Geometry) IsEmpty() bool {
	if g.kind == GeometryCollection {
		for _, m := range g.geoms {
			if !m.IsEmpty() {
				return false
			}
		}
		return true
	}
	return len(g.flat) == 0
}

// NumCoords returns the total number of points, recursing into collections.
func (g *Geometry) NumCoords() int {
	if g.kind == GeometryCollection {
		n := 0
		for _, m := range g.geoms {
			n += m.NumCoords()
		}
		return n
	}
	return len(g.flat) / g.layout.Stride()
}

// NumGeometries returns the number of parts of a multi-geometry or
// collection. A simple geometry counts as one part unless it is empty.
func (g *Geometry) NumGeometries() int {
	if g.kind.IsCollection() {
		return g.numParts()
	}
	if g.IsEmpty() {
		return 0
	}
	return 1
}

// GeometryN returns part i. Simple geometries return themselves for index 0.
func (g *Geometry) GeometryN(i int) (*Geometry, error) {
	if !g.kind.IsCollection() {
		if i == 0 && !g.IsEmpty() {
			return g, nil
		}
		return nil, &IndexError{Index: i, Len: g.NumGeometries()}
	}
	n := g.numParts()
	if i < 0 || i >= n {
		return nil, &IndexError{Index: i, Len: n}
	}
	return g.part(i), nil
}

func (g *Geometry) numParts() int {
	switch g.kind {
	case MultiPoint:
		return len(g.flat) / g.layout.Stride()
	case MultiLineString:
		return len(g.ends)
	case MultiPolygon:
		return len(g.parts)
	case GeometryCollection:
		return len(g.geoms)
	default:
		return 0
	}
}

// part returns child i without bounds checking. Children of flat-storage
// kinds share the parent's coordinate slice and refuse write views.
func (g *Geometry) part(i int) *Geometry {
	s := g.layout.Stride()
	switch g.kind {
	case MultiPoint:
		return &Geometry{kind: Point, layout: g.layout, flat: g.flat[i*s : (i+1)*s : (i+1)*s], parent: g}
	case MultiLineString:
		start, end := span(g.ends, i)
		return &Geometry{kind: LineString, layout: g.layout, flat: g.flat[start*s : end*s : end*s], parent: g}
	case MultiPolygon:
		r0, r1 := span(g.parts, i)
		p0 := 0
		if r0 > 0 {
			p0 = g.ends[r0-1]
		}
		p1 := p0
		if r1 > 0 {
			p1 = g.ends[r1-1]
		}
		ends := make([]int, r1-r0)
		for k := r0; k < r1; k++ {
			ends[k-r0] = g.ends[k] - p0
		}
		return &Geometry{kind: Polygon, layout: g.layout, flat: g.flat[p0*s : p1*s : p1*s], ends: ends, parent: g}
	case GeometryCollection:
		return g.geoms[i]
	default:
		return nil
	}
}

// span returns [start, end) of entry i in a cumulative offset table.
func span(ends []int, i int) (int, int) {
	start := 0
	if i > 0 {
		start = ends[i-1]
	}
	return start, ends[i]
}

// NumRings returns the number of rings of a polygon, 0 for other kinds.
func (g *Geometry) NumRings() int {
	if g.kind != Polygon {
		return 0
	}
	return len(g.ends)
}

// Ring returns ring i of a polygon as a read-only LinearRing view. Ring 0 is
// the shell.
func (g *Geometry) Ring(i int) (*Geometry, error) {
	if g.kind != Polygon || i < 0 || i >= len(g.ends) {
		return nil, &IndexError{Index: i, Len: g.NumRings()}
	}
	s := g.layout.Stride()
	start, end := span(g.ends, i)
	return &Geometry{kind: LinearRing, layout: g.layout, flat: g.flat[start*s : end*s : end*s], parent: g}, nil
}

// ExteriorRing returns the shell of a polygon. An empty polygon yields an
// empty LinearRing; other kinds yield nil.
func (g *Geometry) ExteriorRing() *Geometry {
	if g.kind != Polygon {
		return nil
	}
	if len(g.ends) == 0 {
		return &Geometry{kind: LinearRing, layout: g.layout, parent: g}
	}
	r, _ := g.Ring(0)
	return r
}

// NumInteriorRings returns the number of holes of a polygon.
func (g *Geometry) NumInteriorRings() int {
	if n := g.NumRings(); n > 0 {
		return n - 1
	}
	return 0
}

// InteriorRingN returns hole i of a polygon.
func (g *Geometry) InteriorRingN(i int) (*Geometry, error) {
	if i < 0 || i >= g.NumInteriorRings() {
		return nil, &IndexError{Index: i, Len: g.NumInteriorRings()}
	}
	return g.Ring(i + 1)
}

// Coords iterates all coordinates in canonical order: shells before holes,
// parts in order, collections depth-first.
func (g *Geometry) Coords() iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		g.walkCoords(yield)
	}
}

func (g *Geometry) walkCoords(yield func(Coord) bool) bool {
	if g.kind == GeometryCollection {
		for _, m := range g.geoms {
			if !m.walkCoords(yield) {
				return false
			}
		}
		return true
	}
	s := g.layout.Stride()
	for i := 0; i+s <= len(g.flat); i += s {
		c := Coord{X: g.flat[i], Y: g.flat[i+1], Z: nan}
		if s == 3 {
			c.Z = g.flat[i+2]
		}
		if !yield(c) {
			return false
		}
	}
	return true
}

// CoordN returns point i of a flat-storage geometry.
func (g *Geometry) CoordN(i int) (Coord, error) {
	n := len(g.flat) / g.layout.Stride()
	if g.kind == GeometryCollection || i < 0 || i >= n {
		return Coord{}, &IndexError{Index: i, Len: n}
	}
	s := g.layout.Stride()
	c := Coord{X: g.flat[i*s], Y: g.flat[i*s+1], Z: nan}
	if s == 3 {
		c.Z = g.flat[i*s+2]
	}
	return c, nil
}

// X returns the x coordinate of a point, NaN for empty points and other kinds.
func (g *Geometry) X() float64 { return g.pointOrdinate(0) }

// Y returns the y coordinate of a point, NaN for empty points and other kinds.
func (g *Geometry) Y() float64 { return g.pointOrdinate(1) }

// Z returns the z coordinate of a point, NaN when absent.
func (g *Geometry) Z() float64 { return g.pointOrdinate(2) }

func (g *Geometry) pointOrdinate(k int) float64 {
	if g.kind != Point || len(g.flat) == 0 || k >= g.layout.Stride() {
		return math.NaN()
	}
	return g.flat[k]
}

// Members returns the member handles of a GeometryCollection.
func (g *Geometry) Members() []*Geometry {
	if g.kind != GeometryCollection {
		return nil
	}
	return append([]*Geometry(nil), g.geoms...)
}

// Equal reports whether a and b have the same kind, layout, topology and
// coordinates. NaN ordinates compare equal to NaN. Prepared state is ignored.
func Equal(a, b *Geometry) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.layout != b.layout {
		return false
	}
	if a.kind == GeometryCollection {
		if len(a.geoms) != len(b.geoms) {
			return false
		}
		for i := range a.geoms {
			if !Equal(a.geoms[i], b.geoms[i]) {
				return false
			}
		}
		return true
	}
	if !slices.Equal(a.ends, b.ends) || !slices.Equal(a.parts, b.parts) || len(a.flat) != len(b.flat) {
		return false
	}
	for i, v := range a.flat {
		w := b.flat[i]
		if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
			return false
		}
	}
	return true
}

// EqualExact reports whether a and b have the same kind and structure and
// each pair of corresponding points is within tolerance in the XY plane.
// Layouts may differ. A NaN tolerance never matches.
func EqualExact(a, b *Geometry, tolerance float64) bool {
	if a == nil || b == nil || math.IsNaN(tolerance) {
		return false
	}
	if a.kind != b.kind {
		return false
	}
	if a.kind == GeometryCollection {
		if len(a.geoms) != len(b.geoms) {
			return false
		}
		for i := range a.geoms {
			if !EqualExact(a.geoms[i], b.geoms[i], tolerance) {
				return false
			}
		}
		return true
	}
	if !slices.Equal(a.ends, b.ends) || !slices.Equal(a.parts, b.parts) {
		return false
	}
	sa, sb := a.layout.Stride(), b.layout.Stride()
	n := len(a.flat) / sa
	if n != len(b.flat)/sb {
		return false
	}
	for i := range n {
		dx := a.flat[i*sa] - b.flat[i*sb]
		dy := a.flat[i*sa+1] - b.flat[i*sb+1]
		if !(math.Hypot(dx, dy) <= tolerance) {
			return false
		}
	}
	return true
}
