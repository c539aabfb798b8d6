package coords

import (
	"fmt"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/dispatch"
	"github.com/hupe1980/geovec/ndarray"
)

// Buffer is a row-major (Rows, Cols) coordinate matrix.
type Buffer struct {
	Rows int
	Cols int
	Data []float64
}

// NewBuffer returns a zero-filled buffer.
func NewBuffer(rows, cols int) *Buffer {
	return &Buffer{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// Row returns row i as a slice of the backing data.
func (b *Buffer) Row(i int) []float64 {
	return b.Data[i*b.Cols : (i+1)*b.Cols : (i+1)*b.Cols]
}

// Shape returns (Rows, Cols).
func (b *Buffer) Shape() []int { return []int{b.Rows, b.Cols} }

// geometries returns the geometry of every cell in C order, nil for missing.
// Cells of any other kind are a type error.
func geometries(op string, arr *ndarray.Array[ndarray.Cell]) ([]*geometry.Geometry, error) {
	if arr == nil {
		return nil, &dispatch.TypeError{Op: op, Param: "geometry", Expected: "geometry array", Actual: "nil"}
	}
	gs := make([]*geometry.Geometry, arr.Size())
	for i, c := range arr.Data() {
		switch {
		case c.IsGeometry():
			gs[i] = c.Geometry()
		case c.IsMissing():
		default:
			return nil, &dispatch.TypeError{Op: op, Param: "geometry", Expected: "geometry", Actual: c.Kind().String()}
		}
	}
	return gs, nil
}

// Count returns the total number of coordinate points in arr. Missing cells
// count zero.
func Count(arr *ndarray.Array[ndarray.Cell]) (int, error) {
	gs, err := geometries("count_coordinates", arr)
	if err != nil {
		return 0, err
	}
	return count(gs), nil
}

func count(gs []*geometry.Geometry) int {
	n := 0
	for _, g := range gs {
		if g != nil {
			n += g.NumCoords()
		}
	}
	return n
}

// Get extracts every coordinate of arr into one buffer, in cell order and
// canonical order within each geometry. With includeZ the buffer has three
// columns and XY sources read NaN for z; otherwise it has two. With
// returnIndex the second result holds, per row, the flat index of the cell
// the row came from.
func Get(arr *ndarray.Array[ndarray.Cell], includeZ, returnIndex bool) (*Buffer, []int, error) {
	gs, err := geometries("get_coordinates", arr)
	if err != nil {
		return nil, nil, err
	}
	cols := 2
	if includeZ {
		cols = 3
	}
	buf := NewBuffer(count(gs), cols)
	var index []int
	if returnIndex {
		index = make([]int, 0, buf.Rows)
	}

	row := 0
	for i, g := range gs {
		if g == nil {
			continue
		}
		for c := range g.Coords() {
			r := buf.Row(row)
			r[0], r[1] = c.X, c.Y
			if includeZ {
				// Coords reports NaN z for XY geometries and members.
				r[2] = c.Z
			}
			if returnIndex {
				index = append(index, i)
			}
			row++
		}
	}
	return buf, index, nil
}

// Set overwrites the coordinates of every geometry in arr from buf, in the
// order Get emits them. The geometries are mutated in place.
//
// buf must have exactly Count(arr) rows and 2 or 3 columns, otherwise a
// *ndarray.ShapeError is returned before anything is written. Two columns
// turn every target into XY; three columns keep each target's layout.
// Prepared targets are rejected with geometry.ErrPreparedMutation, also
// before any write. alloc supplies storage for layout changes; nil uses the
// heap.
func Set(arr *ndarray.Array[ndarray.Cell], buf *Buffer, alloc geometry.Allocator) error {
	const op = "set_coordinates"
	gs, err := geometries(op, arr)
	if err != nil {
		return err
	}
	if buf == nil {
		return &ndarray.ShapeError{Op: op, Reason: "nil coordinate buffer"}
	}
	if buf.Cols != 2 && buf.Cols != 3 {
		return &ndarray.ShapeError{Op: op, Expected: []int{buf.Rows, 3}, Actual: buf.Shape(), Reason: "coordinates must have 2 or 3 columns"}
	}
	if buf.Rows < 0 || len(buf.Data) != buf.Rows*buf.Cols {
		return &ndarray.ShapeError{Op: op, Expected: buf.Shape(), Actual: []int{len(buf.Data)}, Reason: "data length does not match rows and columns"}
	}
	if n := count(gs); buf.Rows != n {
		return &ndarray.ShapeError{Op: op, Expected: []int{n, buf.Cols}, Actual: buf.Shape(), Reason: "row count must equal the number of coordinates"}
	}

	views := make([]*geometry.Mutable, len(gs))
	for i, g := range gs {
		if g == nil {
			continue
		}
		m, err := g.Mutable(alloc)
		if err != nil {
			return fmt.Errorf("%s: element %d: %w", op, i, err)
		}
		views[i] = m
	}
	// Storage for layout changes is allocated before the first write so a
	// failed allocation leaves every geometry untouched.
	for i, m := range views {
		if m == nil {
			continue
		}
		if err := m.Reserve(buf.Cols); err != nil {
			return fmt.Errorf("%s: element %d: %w", op, i, err)
		}
	}

	off := 0
	for i, m := range views {
		if m == nil {
			continue
		}
		n, err := m.SetCoords(buf.Data[off*buf.Cols:], buf.Cols)
		if err != nil {
			return fmt.Errorf("%s: element %d: %w", op, i, err)
		}
		off += n
	}
	return nil
}

// TransformContractError reports a transform function whose result does
// not match the buffer it was given.
type TransformContractError struct {
	Expected []int
	Actual   []int
	Reason   string
}

func (e *TransformContractError) Error() string {
	return fmt.Sprintf("transform: function returned %s, expected %s: %s",
		ndarray.FormatShape(e.Actual), ndarray.FormatShape(e.Expected), e.Reason)
}

// Func maps a coordinate buffer to a new one of the same shape.
type Func func(*Buffer) (*Buffer, error)

// Transform applies fn to the coordinates of a private copy of arr and
// returns the copy. arr and its geometries are not modified. The result of
// fn must have the same rows and columns as its input, else a
// *TransformContractError is returned and nothing is written.
func Transform(arr *ndarray.Array[ndarray.Cell], fn Func, includeZ bool, alloc geometry.Allocator) (*ndarray.Array[ndarray.Cell], error) {
	gs, err := geometries("transform", arr)
	if err != nil {
		return nil, err
	}
	out := ndarray.Like[ndarray.Cell](arr)
	for i, g := range gs {
		if g == nil {
			continue
		}
		c, err := g.Clone(alloc)
		if err != nil {
			return nil, err
		}
		out.Set(i, ndarray.Geom(c))
	}

	in, _, err := Get(out, includeZ, false)
	if err != nil {
		return nil, err
	}
	want := in.Shape()
	res, err := fn(in)
	if err != nil {
		return nil, err
	}
	switch {
	case res == nil:
		return nil, &TransformContractError{Expected: want, Actual: []int{}, Reason: "nil buffer"}
	case res.Rows != in.Rows || res.Cols != in.Cols:
		return nil, &TransformContractError{Expected: want, Actual: res.Shape(), Reason: "shape changed"}
	case len(res.Data) != res.Rows*res.Cols:
		return nil, &TransformContractError{Expected: want, Actual: []int{len(res.Data)}, Reason: "data length does not match rows and columns"}
	}

	if err := Set(out, res, alloc); err != nil {
		return nil, err
	}
	return out, nil
}
