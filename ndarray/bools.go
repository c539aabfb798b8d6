package ndarray

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// BoolArray is a boolean result container. Engine predicates write into a
// BoolArray and return it; callers pass their own through an output option
// to control the storage.
type BoolArray interface {
	Shape() []int
	Size() int
	IsScalar() bool
	At(i int) bool
	SetBool(i int, v bool)
}

// Bools stores one bit per element.
type Bools struct {
	shape  []int
	bits   *bitset.BitSet
	scalar bool
}

// NewBools returns an all-false array of the given shape.
func NewBools(shape ...int) *Bools {
	return &Bools{shape: slices.Clone(shape), bits: bitset.New(uint(Size(shape)))}
}

// MakeBools returns an all-false array with an explicit scalar flag. The
// flag only sticks for 0-d shapes.
func MakeBools(shape []int, scalar bool) *Bools {
	b := NewBools(shape...)
	b.scalar = scalar && len(shape) == 0
	return b
}

// BoolsOf returns a 1-d array of the given values.
func BoolsOf(values ...bool) *Bools {
	b := NewBools(len(values))
	for i, v := range values {
		b.SetBool(i, v)
	}
	return b
}

// Shape returns a copy of the shape.
func (b *Bools) Shape() []int { return slices.Clone(b.shape) }

// Size returns the number of elements.
func (b *Bools) Size() int { return Size(b.shape) }

// IsScalar reports whether the array is an implicit scalar.
func (b *Bools) IsScalar() bool { return b.scalar }

// At returns element i.
func (b *Bools) At(i int) bool { return b.bits.Test(uint(i)) }

// SetBool stores element i.
func (b *Bools) SetBool(i int, v bool) { b.bits.SetTo(uint(i), v) }

// Count returns the number of true elements.
func (b *Bools) Count() int { return int(b.bits.Count()) }

// Any reports whether any element is true.
func (b *Bools) Any() bool { return b.bits.Any() }

// All reports whether every element is true.
func (b *Bools) All() bool { return b.Count() == b.Size() }

// Indices returns the flat indices of true elements in ascending order.
func (b *Bools) Indices() []int {
	out := make([]int, 0, b.Count())
	for i, ok := b.bits.NextSet(0); ok; i, ok = b.bits.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

// Slice returns the elements as a []bool in C order.
func (b *Bools) Slice() []bool {
	out := make([]bool, b.Size())
	for _, i := range b.Indices() {
		out[i] = true
	}
	return out
}

// Item returns the only element of a size-1 array.
func (b *Bools) Item() (bool, error) {
	if b.Size() != 1 {
		return false, &ShapeError{Op: "item", Expected: []int{}, Actual: b.Shape(), Reason: "array must have exactly one element"}
	}
	return b.At(0), nil
}

// ByteBools stores one byte per element, 0 or 1.
type ByteBools struct {
	shape []int
	data  []uint8
}

// NewByteBools returns an all-false byte array of the given shape.
func NewByteBools(shape ...int) *ByteBools {
	return &ByteBools{shape: slices.Clone(shape), data: make([]uint8, Size(shape))}
}

// Shape returns a copy of the shape.
func (b *ByteBools) Shape() []int { return slices.Clone(b.shape) }

// Size returns the number of elements.
func (b *ByteBools) Size() int { return len(b.data) }

// IsScalar is always false; byte arrays are explicit containers.
func (b *ByteBools) IsScalar() bool { return false }

// At returns element i.
func (b *ByteBools) At(i int) bool { return b.data[i] != 0 }

// SetBool stores element i.
func (b *ByteBools) SetBool(i int, v bool) {
	if v {
		b.data[i] = 1
	} else {
		b.data[i] = 0
	}
}

// Data returns the backing bytes.
func (b *ByteBools) Data() []uint8 { return b.data }
