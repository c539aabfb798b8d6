// Package testutil provides testing utilities for geovec.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for random geometries and
// geometry arrays.
//
// # Random Geometry Generation
//
//	rng := testutil.NewRNG(seed)
//	p := rng.Polygon(5, 5, 2, 8) // star-shaped, always valid
//	gs := rng.Geometries(100, 10, 0.1) // ~10% nil
//	arr := rng.Cells(100, 10, 0.1)     // missing cells for nil
package testutil
