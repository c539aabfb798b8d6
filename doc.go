// Package geovec evaluates geometry operations elementwise over arrays of
// geometries.
//
// Operands are n-dimensional arrays of cells. A cell holds a geometry, the
// missing value, or a plain scalar such as a tolerance or a relate pattern.
// Every operation broadcasts its operands NumPy style and applies a scalar
// kernel to each element. The missing value never fails a call; it
// propagates according to the kind of operation:
//
//	predicates                false
//	is_missing and friends    answer for the missing cell
//	measurements              NaN
//	counts                    0, or -1 for type id and dimension
//	constructive, relate      missing
//
// # Quick Start
//
//	eng, err := geovec.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	box := geovec.Scalar(geometry.Box(0, 0, 10, 10))
//	pts := geovec.Geometries(geometry.NewPoint(1, 1), nil, geometry.NewPoint(20, 20))
//
//	in, _ := eng.Contains(ctx, box, pts) // [true false false]
//
// # Prepared Geometries
//
// Prepare attaches an acceleration entry to each geometry. Binary
// predicates with a prepared operand on either side use it and return
// exactly what the unprepared evaluation would:
//
//	_ = eng.Prepare(ctx, box)
//	in, _ = eng.Contains(ctx, box, pts)
//
// A prepared geometry is frozen: SetCoordinates refuses to write it.
//
// # Coordinates
//
// GetCoordinates, SetCoordinates and Transform read and write the points
// of a whole array through one (N, 2) or (N, 3) buffer:
//
//	shifted, err := eng.Transform(ctx, pts, func(b *coords.Buffer) (*coords.Buffer, error) {
//	    for i := 0; i < b.Rows; i++ {
//	        b.Row(i)[0] += 100
//	    }
//	    return b, nil
//	}, false)
//
// # Errors
//
// Shape and type problems are reported before any element is evaluated
// and match ErrShape and ErrType with errors.Is; the detailed error is
// available with errors.As. Evaluation is all-or-nothing: the first kernel
// error aborts the call and no partial result is returned.
//
// SetCoordinates writes through to the geometries in place. Parts returned
// by GetGeometry share their parent's storage and fail with
// ErrViewMutation; a failed write leaves every geometry unchanged.
package geovec
