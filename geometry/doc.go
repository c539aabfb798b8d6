// Package geometry defines the geometry handle processed by the engine.
//
// A *Geometry stores its coordinates in one flat float64 slice with a stride
// of two (XY) or three (XYZ) values per point, plus small offset tables that
// describe rings, parts and polygons. Child geometries (the parts of a
// multi-geometry, the rings of a polygon) are views that share the parent's
// coordinate storage.
//
// Handles are read-only. The only way to change coordinates is the explicit
// write view returned by Mutable. It refuses prepared geometries, including
// members of a prepared collection. It also refuses child views; Clone a
// child to get a writable copy.
//
//	ls := geometry.Must(geometry.NewLineString(geometry.XY, []float64{0, 0, 1, 1, 2, 0}))
//	mp := geometry.Must(geometry.NewMultiPoint(geometry.XY, []float64{0, 0, 1, 1}))
//
//	for p := range mp.Geoms().All() {
//	    fmt.Println(p)
//	}
//
// Text and binary forms delegate to github.com/paulmach/orb; they carry XY
// coordinates only.
package geometry
