package ndarray

import (
	"fmt"
	"slices"

	"github.com/hupe1980/geovec/internal/conv"
)

// Array is a C-contiguous n-dimensional array.
type Array[T any] struct {
	shape  []int
	data   []T
	scalar bool
}

// New returns a zero-filled array of the given shape. It panics on negative
// dimensions.
func New[T any](shape ...int) *Array[T] {
	return &Array[T]{shape: slices.Clone(shape), data: make([]T, Size(shape))}
}

// FromSlice wraps data, which must hold exactly the number of elements of
// shape. Without a shape the array is 1-d. The array takes ownership of data.
func FromSlice[T any](data []T, shape ...int) (*Array[T], error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	n, err := conv.Product(shape)
	if err != nil {
		return nil, &ShapeError{Op: "from_slice", Actual: slices.Clone(shape), Reason: err.Error()}
	}
	if n != len(data) {
		return nil, &ShapeError{
			Op:       "from_slice",
			Expected: slices.Clone(shape),
			Actual:   []int{len(data)},
			Reason:   fmt.Sprintf("%d elements do not fill the shape", len(data)),
		}
	}
	return &Array[T]{shape: slices.Clone(shape), data: data}, nil
}

// Of returns a 1-d array of the given values.
func Of[T any](values ...T) *Array[T] {
	return &Array[T]{shape: []int{len(values)}, data: slices.Clone(values)}
}

// Scalar returns an implicit scalar: a 0-d array built from a bare value.
func Scalar[T any](v T) *Array[T] {
	return &Array[T]{shape: []int{}, data: []T{v}, scalar: true}
}

// ZeroDim returns an explicit 0-d array.
func ZeroDim[T any](v T) *Array[T] {
	return &Array[T]{shape: []int{}, data: []T{v}}
}

// Shape returns a copy of the shape.
func (a *Array[T]) Shape() []int { return slices.Clone(a.shape) }

// Ndim returns the number of dimensions.
func (a *Array[T]) Ndim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return len(a.data) }

// IsScalar reports whether the array is an implicit scalar.
func (a *Array[T]) IsScalar() bool { return a.scalar }

// Data returns the backing slice in C order.
func (a *Array[T]) Data() []T { return a.data }

// At returns element i in C order.
func (a *Array[T]) At(i int) T { return a.data[i] }

// Set stores element i in C order.
func (a *Array[T]) Set(i int, v T) { a.data[i] = v }

// Index converts a multi-index to a flat C-order index.
func (a *Array[T]) Index(idx ...int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, &ShapeError{
			Op:       "index",
			Expected: a.Shape(),
			Actual:   slices.Clone(idx),
			Reason:   fmt.Sprintf("%d indices for %d dimensions", len(idx), len(a.shape)),
		}
	}
	flat := 0
	for k, i := range idx {
		d := a.shape[k]
		if i < 0 {
			i += d
		}
		if i < 0 || i >= d {
			return 0, &ShapeError{
				Op:       "index",
				Expected: a.Shape(),
				Actual:   slices.Clone(idx),
				Reason:   fmt.Sprintf("index %d out of range for axis %d", idx[k], k),
			}
		}
		flat = flat*d + i
	}
	return flat, nil
}

// Get returns the element at a multi-index.
func (a *Array[T]) Get(idx ...int) (T, error) {
	i, err := a.Index(idx...)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[i], nil
}

// Put stores v at a multi-index.
func (a *Array[T]) Put(v T, idx ...int) error {
	i, err := a.Index(idx...)
	if err != nil {
		return err
	}
	a.data[i] = v
	return nil
}

// Item returns the only element of a size-1 array.
func (a *Array[T]) Item() (T, error) {
	if len(a.data) != 1 {
		var zero T
		return zero, &ShapeError{Op: "item", Expected: []int{}, Actual: a.Shape(), Reason: "array must have exactly one element"}
	}
	return a.data[0], nil
}

// Reshape returns a view with a new shape sharing the data.
func (a *Array[T]) Reshape(shape ...int) (*Array[T], error) {
	n, err := conv.Product(shape)
	if err != nil || n != len(a.data) {
		return nil, &ShapeError{Op: "reshape", Expected: a.Shape(), Actual: slices.Clone(shape), Reason: "size changes"}
	}
	return &Array[T]{shape: slices.Clone(shape), data: a.data}, nil
}

// Clone returns a copy with its own data slice. Element values are copied
// shallowly.
func (a *Array[T]) Clone() *Array[T] {
	return &Array[T]{shape: a.Shape(), data: slices.Clone(a.data), scalar: a.scalar}
}

// Like returns a zero-filled array with the shape and scalar flag of a.
func Like[T, U any](a *Array[U]) *Array[T] {
	out := New[T](a.shape...)
	out.scalar = a.scalar
	return out
}

// Make returns a zero-filled array of shape with an explicit scalar flag.
func Make[T any](shape []int, scalar bool) *Array[T] {
	out := New[T](shape...)
	out.scalar = scalar && len(shape) == 0
	return out
}
