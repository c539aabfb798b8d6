package dispatch

import (
	"fmt"
	"math"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/ndarray"
)

// Category selects the missing-value policy of an operation.
type Category uint8

// Operation categories.
const (
	// Predicate results are false when any geometry operand is missing.
	Predicate Category = iota
	// Classifier functions see missing cells and answer for them.
	Classifier
	// Measurement results are NaN for missing operands.
	Measurement
	// Count results take the operation's declared fill value.
	Count
	// Constructive functions receive nil for missing operands.
	Constructive
	// Text results are missing for missing operands.
	Text
)

func (c Category) String() string {
	switch c {
	case Predicate:
		return "predicate"
	case Classifier:
		return "classifier"
	case Measurement:
		return "measurement"
	case Count:
		return "count"
	case Constructive:
		return "constructive"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

type policy struct {
	// skipMissing short-circuits to the fill value instead of calling Fn
	// when a geometry operand is missing.
	skipMissing bool
}

var policies = [...]policy{
	Predicate:    {skipMissing: true},
	Classifier:   {skipMissing: false},
	Measurement:  {skipMissing: true},
	Count:        {skipMissing: true},
	Constructive: {skipMissing: false},
	Text:         {skipMissing: true},
}

// ParamKind is the accepted cell kind of an operand.
type ParamKind uint8

// Parameter kinds.
const (
	// GeometryParam accepts geometries and missing cells.
	GeometryParam ParamKind = iota
	// FloatParam accepts floats and ints; missing reads as NaN.
	FloatParam
	// IntParam accepts ints and integral floats.
	IntParam
	// StringParam accepts strings only.
	StringParam
	// AnyParam accepts every cell.
	AnyParam
)

func (k ParamKind) String() string {
	switch k {
	case GeometryParam:
		return "geometry"
	case FloatParam:
		return "float"
	case IntParam:
		return "int"
	case StringParam:
		return "string"
	default:
		return "any"
	}
}

func (k ParamKind) accepts(c ndarray.Cell) bool {
	switch k {
	case GeometryParam:
		return c.IsGeometry() || c.IsMissing()
	case FloatParam:
		if c.IsMissing() {
			return true
		}
		_, ok := c.AsFloat()
		return ok
	case IntParam:
		_, ok := c.AsInt()
		return ok
	case StringParam:
		_, ok := c.AsString()
		return ok
	default:
		return true
	}
}

// Param declares one operand.
type Param struct {
	Name string
	Kind ParamKind
	// ScalarOnly operands must be 0-d.
	ScalarOnly bool
}

// Op is a scalar function lifted over arrays.
type Op[R any] struct {
	Name     string
	Category Category
	Params   []Param
	// Fill is the result for skipped missing elements.
	Fill R
	Fn   func(Args) (R, error)
}

// Args holds the operands of one element.
type Args []ndarray.Cell

// Geom returns operand i as a geometry, nil when missing.
func (a Args) Geom(i int) *geometry.Geometry { return a[i].Geometry() }

// Float returns operand i as a float, NaN when missing.
func (a Args) Float(i int) float64 {
	v, ok := a[i].AsFloat()
	if !ok {
		return math.NaN()
	}
	return v
}

// Int returns operand i as an int.
func (a Args) Int(i int) int {
	v, _ := a[i].AsInt()
	return int(v)
}

// String returns operand i as a string.
func (a Args) String(i int) string {
	s, _ := a[i].AsString()
	return s
}

// Cell returns operand i unchanged.
func (a Args) Cell(i int) ndarray.Cell { return a[i] }

// TypeError reports an operand of the wrong kind.
type TypeError struct {
	Op       string
	Param    string
	Expected string
	Actual   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: argument %q: expected %s, got %s", e.Op, e.Param, e.Expected, e.Actual)
}
