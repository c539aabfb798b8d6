package kernel

import "fmt"

// Location is the position of a point relative to a geometry.
type Location uint8

// Locations, in matrix row/column order.
const (
	Interior Location = iota
	OnBoundary
	Exterior
)

func (l Location) String() string {
	switch l {
	case Interior:
		return "I"
	case OnBoundary:
		return "B"
	default:
		return "E"
	}
}

const dimFalse int8 = -1

// Matrix is a DE-9IM intersection matrix. Entry [i][j] is the dimension of
// the intersection of location i of the first geometry with location j of
// the second, or -1 when empty.
type Matrix [3][3]int8

func newMatrix() Matrix {
	var m Matrix
	for i := range m {
		for j := range m[i] {
			m[i][j] = dimFalse
		}
	}
	m[Exterior][Exterior] = 2
	return m
}

// set raises entry [a][b] to dim.
func (m *Matrix) set(a, b Location, dim int8) {
	if dim > m[a][b] {
		m[a][b] = dim
	}
}

// String returns the nine-character form, e.g. "FF0FFF0F2".
func (m Matrix) String() string {
	buf := make([]byte, 0, 9)
	for i := range m {
		for j := range m[i] {
			buf = append(buf, dimChar(m[i][j]))
		}
	}
	return string(buf)
}

func dimChar(d int8) byte {
	if d < 0 {
		return 'F'
	}
	return '0' + byte(d)
}

// Matches reports whether m satisfies a nine-character pattern of
// T, F, *, 0, 1 and 2. The whole pattern is validated before matching.
func (m Matrix) Matches(pattern string) (bool, error) {
	if err := validatePattern(pattern); err != nil {
		return false, err
	}
	for k := range 9 {
		d := m[k/3][k%3]
		switch c := pattern[k]; c {
		case 'T', 't':
			if d < 0 {
				return false, nil
			}
		case 'F', 'f':
			if d >= 0 {
				return false, nil
			}
		case '0', '1', '2':
			if d != int8(c-'0') {
				return false, nil
			}
		}
	}
	return true, nil
}

func validatePattern(pattern string) error {
	if len(pattern) != 9 {
		return &DomainError{Op: "relate_pattern", Msg: fmt.Sprintf("Should be length 9, got %d", len(pattern))}
	}
	for k := range 9 {
		switch c := pattern[k]; c {
		case '*', 'T', 't', 'F', 'f', '0', '1', '2':
		default:
			return &DomainError{Op: "relate_pattern", Msg: fmt.Sprintf("invalid pattern character %q", c)}
		}
	}
	return nil
}

func (m Matrix) matches(pattern string) bool {
	ok, _ := m.Matches(pattern)
	return ok
}

func (m Matrix) matchesAny(patterns ...string) bool {
	for _, p := range patterns {
		if m.matches(p) {
			return true
		}
	}
	return false
}

// Intersects reports whether the geometries share any point.
func (m Matrix) Intersects() bool { return !m.matches("FF*FF****") }

// evaluate applies a binary predicate to the matrix. dimA and dimB are the
// topological dimensions of the operands (-1 when empty).
func (m Matrix) evaluate(op BinaryOp, dimA, dimB int) bool {
	switch op {
	case Intersects:
		return m.Intersects()
	case Disjoint:
		return !m.Intersects()
	case Contains:
		return m.matches("T*****FF*")
	case Within:
		return m.matches("T*F**F***")
	case ContainsProperly:
		return m.matches("T**FF*FF*")
	case Covers:
		return m.matchesAny("T*****FF*", "*T****FF*", "***T**FF*", "****T*FF*")
	case CoveredBy:
		return m.matchesAny("T*F**F***", "*TF**F***", "**FT*F***", "**F*TF***")
	case Touches:
		if dimA == 0 && dimB == 0 {
			return false
		}
		return m.matchesAny("FT*******", "F**T*****", "F***T****")
	case Crosses:
		switch {
		case dimA < 0 || dimB < 0:
			return false
		case dimA == 1 && dimB == 1:
			return m.matches("0********")
		case dimA < dimB:
			return m.matches("T*T******")
		case dimA > dimB:
			return m.matches("T*****T**")
		default:
			return false
		}
	case Overlaps:
		switch {
		case dimA != dimB || dimA < 0:
			return false
		case dimA == 1:
			return m.matches("1*T***T**")
		default:
			return m.matches("T*T***T**")
		}
	case Equals:
		return m.matches("T*F**FFF*")
	default:
		return false
	}
}
