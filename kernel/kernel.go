package kernel

import (
	"fmt"

	"github.com/hupe1980/geovec/geometry"
)

// UnaryOp is a unary predicate.
type UnaryOp uint8

// Unary predicates.
const (
	IsEmpty UnaryOp = iota
	IsSimple
	IsRing
	IsClosed
	IsValid
	IsCCW
	HasZ
)

var unaryNames = [...]string{
	IsEmpty:  "is_empty",
	IsSimple: "is_simple",
	IsRing:   "is_ring",
	IsClosed: "is_closed",
	IsValid:  "is_valid",
	IsCCW:    "is_ccw",
	HasZ:     "has_z",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", uint8(op))
}

// BinaryOp is a binary spatial predicate.
type BinaryOp uint8

// Binary predicates.
const (
	Intersects BinaryOp = iota
	Disjoint
	Touches
	Crosses
	Within
	Contains
	ContainsProperly
	Overlaps
	Covers
	CoveredBy
	Equals
)

var binaryNames = [...]string{
	Intersects:       "intersects",
	Disjoint:         "disjoint",
	Touches:          "touches",
	Crosses:          "crosses",
	Within:           "within",
	Contains:         "contains",
	ContainsProperly: "contains_properly",
	Overlaps:         "overlaps",
	Covers:           "covers",
	CoveredBy:        "covered_by",
	Equals:           "equals",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", uint8(op))
}

// Converse returns the predicate q with op(a, b) == q(b, a). Contains
// properly has no converse among the predicates.
func (op BinaryOp) Converse() (BinaryOp, bool) {
	switch op {
	case Contains:
		return Within, true
	case Within:
		return Contains, true
	case Covers:
		return CoveredBy, true
	case CoveredBy:
		return Covers, true
	case ContainsProperly:
		return 0, false
	default:
		return op, true
	}
}

// MeasureOp is a scalar measurement.
type MeasureOp uint8

// Measurements.
const (
	Area MeasureOp = iota
	Length
	X
	Y
	Z
)

var measureNames = [...]string{Area: "area", Length: "length", X: "get_x", Y: "get_y", Z: "get_z"}

func (op MeasureOp) String() string {
	if int(op) < len(measureNames) {
		return measureNames[op]
	}
	return fmt.Sprintf("MeasureOp(%d)", uint8(op))
}

// ConstructOp is a geometry-producing operation.
type ConstructOp uint8

// Constructive operations.
const (
	Envelope ConstructOp = iota
	Centroid
	Boundary
	Simplify   // params: tolerance
	ClipByRect // params: xmin, ymin, xmax, ymax
)

var constructNames = [...]string{
	Envelope:   "envelope",
	Centroid:   "centroid",
	Boundary:   "boundary",
	Simplify:   "simplify",
	ClipByRect: "clip_by_rect",
}

func (op ConstructOp) String() string {
	if int(op) < len(constructNames) {
		return constructNames[op]
	}
	return fmt.Sprintf("ConstructOp(%d)", uint8(op))
}

// Kernel evaluates scalar geometry operations. Geometry arguments are never
// nil except for Construct, which receives nil for a missing operand and
// must return nil for it.
type Kernel interface {
	Unary(op UnaryOp, g *geometry.Geometry) (bool, error)
	Binary(op BinaryOp, a, b *geometry.Geometry) (bool, error)

	// Prepare builds an acceleration entry for g. It does not attach it.
	Prepare(g *geometry.Geometry) (geometry.Prepared, error)
	// BinaryPrepared evaluates op(p.Source(), b) and must agree with Binary.
	BinaryPrepared(op BinaryOp, p geometry.Prepared, b *geometry.Geometry) (bool, error)

	DWithin(a, b *geometry.Geometry, distance float64) (bool, error)
	DWithinPrepared(p geometry.Prepared, b *geometry.Geometry, distance float64) (bool, error)
	EqualsExact(a, b *geometry.Geometry, tolerance float64) (bool, error)

	Relate(a, b *geometry.Geometry) (string, error)
	RelatePattern(a, b *geometry.Geometry, pattern string) (bool, error)

	Measure(op MeasureOp, g *geometry.Geometry) (float64, error)
	Distance(a, b *geometry.Geometry) (float64, error)
	Bounds(g *geometry.Geometry) ([4]float64, error)

	Construct(op ConstructOp, g *geometry.Geometry, params ...float64) (*geometry.Geometry, error)
}

// DomainError is a rejection of structurally valid but semantically invalid
// input, such as a malformed relate pattern.
type DomainError struct {
	Op  string
	Msg string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}
