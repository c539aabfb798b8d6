package ndarray

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/geovec/internal/conv"
)

// ShapeError reports incompatible shapes.
type ShapeError struct {
	Op       string
	Expected []int
	Actual   []int
	Reason   string
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString("expected shape ")
	b.WriteString(FormatShape(e.Expected))
	b.WriteString(", got ")
	b.WriteString(FormatShape(e.Actual))
	if e.Reason != "" {
		b.WriteString(" (")
		b.WriteString(e.Reason)
		b.WriteString(")")
	}
	return b.String()
}

// FormatShape renders a shape as (d0, d1, ...).
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Size returns the number of elements of shape. It panics on negative
// dimensions or overflow.
func Size(shape []int) int {
	n, err := conv.Product(shape)
	if err != nil {
		panic(fmt.Sprintf("ndarray: invalid shape %v: %v", shape, err))
	}
	return n
}

// Strides returns the C-order element strides of shape.
func Strides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Broadcast returns the broadcast shape of all inputs.
func Broadcast(shapes ...[]int) ([]int, error) {
	ndim := 0
	for _, s := range shapes {
		ndim = max(ndim, len(s))
	}
	out := make([]int, ndim)
	for i := range out {
		out[i] = 1
	}
	for k, s := range shapes {
		off := ndim - len(s)
		for i, d := range s {
			switch o := out[off+i]; {
			case d == o || d == 1:
			case o == 1:
				out[off+i] = d
			default:
				return nil, &ShapeError{
					Expected: slices.Clone(shapes[0]),
					Actual:   slices.Clone(s),
					Reason:   fmt.Sprintf("operand %d could not be broadcast to %s", k, FormatShape(out)),
				}
			}
		}
	}
	return out, nil
}

// BroadcastStrides returns element strides for reading an array of shape
// in as if it had shape out. Broadcast dimensions get stride 0.
func BroadcastStrides(in, out []int) []int {
	strides := make([]int, len(out))
	inStrides := Strides(in)
	off := len(out) - len(in)
	for i, d := range in {
		if d != 1 {
			strides[off+i] = inStrides[i]
		}
	}
	return strides
}
