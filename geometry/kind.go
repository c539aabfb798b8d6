package geometry

import "fmt"

// Kind is the geometry type tag.
type Kind uint8

// Geometry kinds. The numeric values are the stable type ids reported by
// TypeID.
const (
	Point Kind = iota
	LineString
	LinearRing
	Polygon
	MultiPoint
	MultiLineString
	MultiPolygon
	GeometryCollection
)

var kindNames = [...]string{
	Point:              "Point",
	LineString:         "LineString",
	LinearRing:         "LinearRing",
	Polygon:            "Polygon",
	MultiPoint:         "MultiPoint",
	MultiLineString:    "MultiLineString",
	MultiPolygon:       "MultiPolygon",
	GeometryCollection: "GeometryCollection",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// TypeID returns the numeric type id of the kind.
func (k Kind) TypeID() int { return int(k) }

// IsCollection reports whether geometries of this kind have child geometries.
func (k Kind) IsCollection() bool {
	return k >= MultiPoint && k <= GeometryCollection
}

// member returns the kind of the children a multi kind holds.
func (k Kind) member() (Kind, bool) {
	switch k {
	case MultiPoint:
		return Point, true
	case MultiLineString:
		return LineString, true
	case MultiPolygon:
		return Polygon, true
	default:
		return 0, false
	}
}

// Layout is the coordinate dimensionality of a geometry.
type Layout uint8

const (
	// XY stores two values per point.
	XY Layout = 2
	// XYZ stores three values per point.
	XYZ Layout = 3
)

// Stride returns the number of float64 values per point.
func (l Layout) Stride() int { return int(l) }

func (l Layout) String() string {
	switch l {
	case XY:
		return "XY"
	case XYZ:
		return "XYZ"
	default:
		return fmt.Sprintf("Layout(%d)", uint8(l))
	}
}

func (l Layout) valid() bool { return l == XY || l == XYZ }
