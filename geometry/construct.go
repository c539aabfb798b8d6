package geometry

import (
	"fmt"
	"slices"
)

// NewPoint returns an XY point.
func NewPoint(x, y float64) *Geometry {
	return &Geometry{kind: Point, layout: XY, flat: []float64{x, y}}
}

// NewPointZ returns an XYZ point.
func NewPointZ(x, y, z float64) *Geometry {
	return &Geometry{kind: Point, layout: XYZ, flat: []float64{x, y, z}}
}

// NewEmpty returns the empty geometry of the given kind with an XY layout.
func NewEmpty(kind Kind) *Geometry {
	return &Geometry{kind: kind, layout: XY}
}

// NewLineString returns a line string from flat coordinates. The input is
// copied. A line string has zero or at least two points.
func NewLineString(layout Layout, flat []float64) (*Geometry, error) {
	n, err := countPoints(layout, flat)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return nil, fmt.Errorf("%w: line string needs at least 2 points, got 1", ErrInvalidCoordinates)
	}
	return &Geometry{kind: LineString, layout: layout, flat: slices.Clone(flat)}, nil
}

// NewLinearRing returns a closed ring. An open input is closed by repeating
// its first point. A non-empty ring has at least four points.
func NewLinearRing(layout Layout, flat []float64) (*Geometry, error) {
	ring, err := closeRing(layout, flat)
	if err != nil {
		return nil, err
	}
	return &Geometry{kind: LinearRing, layout: layout, flat: ring}, nil
}

// NewPolygon returns a polygon from a shell and optional holes. Rings are
// closed like NewLinearRing. No rings gives the empty polygon.
func NewPolygon(layout Layout, rings ...[]float64) (*Geometry, error) {
	g := &Geometry{kind: Polygon, layout: layout}
	if !layout.valid() {
		return nil, fmt.Errorf("%w: layout %v", ErrInvalidCoordinates, layout)
	}
	for i, r := range rings {
		ring, err := closeRing(layout, r)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		if len(ring) == 0 {
			if len(rings) == 1 {
				return g, nil
			}
			return nil, fmt.Errorf("%w: ring %d is empty", ErrInvalidCoordinates, i)
		}
		g.flat = append(g.flat, ring...)
		g.ends = append(g.ends, len(g.flat)/layout.Stride())
	}
	return g, nil
}

// NewMultiPoint returns a multi point, one point per stride in flat.
func NewMultiPoint(layout Layout, flat []float64) (*Geometry, error) {
	if _, err := countPoints(layout, flat); err != nil {
		return nil, err
	}
	return &Geometry{kind: MultiPoint, layout: layout, flat: slices.Clone(flat)}, nil
}

// NewMultiLineString returns a multi line string with one part per slice.
func NewMultiLineString(layout Layout, lines ...[]float64) (*Geometry, error) {
	children := make([]*Geometry, 0, len(lines))
	for i, l := range lines {
		ls, err := NewLineString(layout, l)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		children = append(children, ls)
	}
	return NewMulti(MultiLineString, children...)
}

// NewMultiPolygon returns a multi polygon; each entry lists the rings of one
// polygon.
func NewMultiPolygon(layout Layout, polygons ...[][]float64) (*Geometry, error) {
	children := make([]*Geometry, 0, len(polygons))
	for i, rings := range polygons {
		p, err := NewPolygon(layout, rings...)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}
		children = append(children, p)
	}
	g, err := NewMulti(MultiPolygon, children...)
	if err != nil {
		return nil, err
	}
	// NewMulti derives the layout from its children; keep the requested one
	// for an empty result.
	if len(children) == 0 {
		g.layout = layout
	}
	return g, nil
}

// NewCollection returns a geometry collection holding the given handles.
// Members are shared, not copied. The collection is XYZ when any member is.
func NewCollection(members ...*Geometry) (*Geometry, error) {
	return NewMulti(GeometryCollection, members...)
}

// NewMulti builds a geometry of a collection kind from child geometries.
//
// MultiPoint, MultiLineString and MultiPolygon copy their children's
// coordinates into one flat slice; the result is XYZ only when every child
// is. GeometryCollection shares its members. No children gives the empty
// geometry of kind.
func NewMulti(kind Kind, children ...*Geometry) (*Geometry, error) {
	if !kind.IsCollection() {
		return nil, fmt.Errorf("%w: %v is not a collection kind", ErrKindMismatch, kind)
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: child %d is nil", ErrInvalidCoordinates, i)
		}
	}

	if kind == GeometryCollection {
		g := &Geometry{kind: GeometryCollection, layout: XY, geoms: slices.Clone(children)}
		for _, c := range children {
			if c.layout == XYZ {
				g.layout = XYZ
			}
		}
		return g, nil
	}

	member, _ := kind.member()
	g := &Geometry{kind: kind, layout: XY}
	if len(children) == 0 {
		return g, nil
	}

	g.layout = XYZ
	for i, c := range children {
		if c.kind != member && !(member == LineString && c.kind == LinearRing) {
			return nil, fmt.Errorf("%w: child %d of %v is a %v", ErrKindMismatch, i, kind, c.kind)
		}
		if kind == MultiPoint && c.IsEmpty() {
			return nil, fmt.Errorf("%w: child %d of %v is empty", ErrInvalidCoordinates, i, kind)
		}
		if c.layout != XYZ {
			g.layout = XY
		}
	}

	stride := g.layout.Stride()
	for _, c := range children {
		base := len(g.flat) / stride
		g.flat = appendRows(g.flat, c.flat, c.layout.Stride(), stride)
		switch kind {
		case MultiLineString:
			g.ends = append(g.ends, len(g.flat)/stride)
		case MultiPolygon:
			for _, e := range c.ends {
				g.ends = append(g.ends, base+e)
			}
			g.parts = append(g.parts, len(g.ends))
		}
	}
	return g, nil
}

// Box returns the rectangle polygon with a counter-clockwise shell starting
// at (xmax, ymin).
func Box(xmin, ymin, xmax, ymax float64) *Geometry {
	return &Geometry{
		kind:   Polygon,
		layout: XY,
		flat:   []float64{xmax, ymin, xmax, ymax, xmin, ymax, xmin, ymin, xmax, ymin},
		ends:   []int{5},
	}
}

// Must panics if err is non-nil and returns g otherwise. Use it for
// literals known to be valid.
func Must(g *Geometry, err error) *Geometry {
	if err != nil {
		panic(err)
	}
	return g
}

func countPoints(layout Layout, flat []float64) (int, error) {
	if !layout.valid() {
		return 0, fmt.Errorf("%w: layout %v", ErrInvalidCoordinates, layout)
	}
	s := layout.Stride()
	if len(flat)%s != 0 {
		return 0, fmt.Errorf("%w: %d values is not a multiple of stride %d", ErrInvalidCoordinates, len(flat), s)
	}
	return len(flat) / s, nil
}

func closeRing(layout Layout, flat []float64) ([]float64, error) {
	n, err := countPoints(layout, flat)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	s := layout.Stride()
	ring := slices.Clone(flat)
	if !slices.Equal(flat[:s], flat[len(flat)-s:]) {
		ring = append(ring, flat[:s]...)
		n++
	}
	if n < 4 {
		return nil, fmt.Errorf("%w: ring needs at least 4 points, got %d", ErrInvalidCoordinates, n)
	}
	return ring, nil
}

// appendRows appends src (stride from) to dst (stride to), dropping z or
// padding it with NaN when the strides differ.
func appendRows(dst, src []float64, from, to int) []float64 {
	if from == to {
		return append(dst, src...)
	}
	for i := 0; i+from <= len(src); i += from {
		dst = append(dst, src[i], src[i+1])
		if to == 3 {
			dst = append(dst, nan)
		}
	}
	return dst
}
