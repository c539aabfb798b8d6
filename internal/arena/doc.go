// Package arena provides a chunked float64 allocator for coordinate storage.
//
// Geometries cloned by the engine (transform copies, coordinate rewrites that
// change dimensionality) draw their flat coordinate slices from one arena per
// Engine instead of issuing one heap allocation per geometry.
//
// # Features
//
//   - Lock-free CAS bump allocation inside the current chunk
//   - 64Ki float64 values (512 KiB) per chunk by default
//   - Oversized requests get a dedicated slab
//   - Optional memory accounting through a MemoryAcquirer
//
// Slices handed out are capacity-capped, so appending to one can never
// overwrite a neighbouring allocation.
package arena
