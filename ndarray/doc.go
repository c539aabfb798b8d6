// Package ndarray provides the n-dimensional containers the engine
// operates on.
//
// Array[T] is a C-contiguous array of any shape, including 0-d. Operand
// arrays hold Cell values, a tagged union of geometry, missing, bool, int,
// float and string. Boolean results are packed one bit per element in Bools.
//
// An array remembers whether it was built from a bare value (Scalar) or as an
// explicit container (ZeroDim, FromSlice, ...). The engine returns implicit
// scalars when every operand was one, so callers can unwrap them with Item.
//
// Broadcasting follows the usual rules: shapes are aligned from the right and
// each dimension must match or be 1.
package ndarray
