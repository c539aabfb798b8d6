// Package conv provides checked integer conversions.
//
// The engine converts between Go's platform int and fixed-width integers in a
// few places: segment ids stored in roaring bitmaps (uint32) and array shape
// products. These helpers return an error instead of silently wrapping.
//
// For conversions that are provably safe (loop indices, bounded counters),
// use direct casts instead.
package conv
