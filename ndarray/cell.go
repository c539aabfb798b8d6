package ndarray

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/geovec/geometry"
)

// Kind is the tag of a Cell.
type Kind uint8

// Cell kinds.
const (
	KindMissing Kind = iota
	KindGeometry
	KindBool
	KindInt
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindGeometry:
		return "geometry"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Cell is one element of an operand array. The zero Cell is missing.
type Cell struct {
	kind Kind
	geom *geometry.Geometry
	num  float64
	i    int64
	str  string
}

// Missing returns the missing sentinel.
func Missing() Cell { return Cell{} }

// Geom wraps a geometry handle; nil gives the missing sentinel.
func Geom(g *geometry.Geometry) Cell {
	if g == nil {
		return Cell{}
	}
	return Cell{kind: KindGeometry, geom: g}
}

// Bool wraps a boolean.
func Bool(b bool) Cell {
	c := Cell{kind: KindBool}
	if b {
		c.i = 1
	}
	return c
}

// Int wraps an integer.
func Int(i int64) Cell { return Cell{kind: KindInt, i: i} }

// Float wraps a float.
func Float(f float64) Cell { return Cell{kind: KindFloat, num: f} }

// String wraps a string.
func String(s string) Cell { return Cell{kind: KindString, str: s} }

// Kind returns the cell's tag.
func (c Cell) Kind() Kind { return c.kind }

// IsMissing reports whether the cell is the missing sentinel.
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// IsGeometry reports whether the cell holds a geometry.
func (c Cell) IsGeometry() bool { return c.kind == KindGeometry }

// Geometry returns the geometry, or nil for any other kind.
func (c Cell) Geometry() *geometry.Geometry { return c.geom }

// AsFloat returns the numeric value; ints are converted.
func (c Cell) AsFloat() (float64, bool) {
	switch c.kind {
	case KindFloat:
		return c.num, true
	case KindInt:
		return float64(c.i), true
	default:
		return 0, false
	}
}

// AsInt returns the integer value. Floats with an integral value convert.
func (c Cell) AsInt() (int64, bool) {
	switch c.kind {
	case KindInt:
		return c.i, true
	case KindFloat:
		if c.num == float64(int64(c.num)) {
			return int64(c.num), true
		}
	}
	return 0, false
}

// AsBool returns the boolean value.
func (c Cell) AsBool() (bool, bool) {
	if c.kind != KindBool {
		return false, false
	}
	return c.i == 1, true
}

// AsString returns the string value.
func (c Cell) AsString() (string, bool) {
	if c.kind != KindString {
		return "", false
	}
	return c.str, true
}

func (c Cell) String() string {
	switch c.kind {
	case KindMissing:
		return "<missing>"
	case KindGeometry:
		return c.geom.String()
	case KindBool:
		return strconv.FormatBool(c.i == 1)
	case KindInt:
		return strconv.FormatInt(c.i, 10)
	case KindFloat:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	default:
		return strconv.Quote(c.str)
	}
}

// Geometries returns a 1-d cell array; nil entries are missing.
func Geometries(gs ...*geometry.Geometry) *Array[Cell] {
	a := New[Cell](len(gs))
	for i, g := range gs {
		a.data[i] = Geom(g)
	}
	return a
}

// Floats returns a 1-d cell array of floats.
func Floats(vs ...float64) *Array[Cell] {
	a := New[Cell](len(vs))
	for i, v := range vs {
		a.data[i] = Float(v)
	}
	return a
}

// Cells returns a 1-d cell array of the given cells.
func Cells(cs ...Cell) *Array[Cell] { return Of(cs...) }

// GeometryGrid returns a cell array of the given shape filled in C order.
func GeometryGrid(shape []int, gs ...*geometry.Geometry) (*Array[Cell], error) {
	cells := make([]Cell, len(gs))
	for i, g := range gs {
		cells[i] = Geom(g)
	}
	return FromSlice(cells, shape...)
}

// ScalarGeometry returns an implicit scalar holding g (missing when nil).
func ScalarGeometry(g *geometry.Geometry) *Array[Cell] { return Scalar(Geom(g)) }

// ScalarFloat returns an implicit scalar float.
func ScalarFloat(v float64) *Array[Cell] { return Scalar(Float(v)) }

// ScalarString returns an implicit scalar string.
func ScalarString(s string) *Array[Cell] { return Scalar(String(s)) }

// ScalarInt returns an implicit scalar int.
func ScalarInt(i int64) *Array[Cell] { return Scalar(Int(i)) }
