// Package kernel implements the scalar geometry operations the engine lifts
// over arrays.
//
// Kernel is the boundary the engine calls through; Planar is the default
// implementation. Planar delegates measurement, point-in-polygon, centroid,
// simplification and clipping math to github.com/paulmach/orb and evaluates
// spatial predicates from DE-9IM intersection matrices.
//
// # Relate
//
// Both operands are decomposed into points, segments and polygons. Segments
// are noded against each other, and the matrix is filled by locating
// representative points in both operands:
//
//   - nodes (vertices, intersections, points) contribute dimension 0
//   - midpoints of noded segments contribute dimension 1
//   - points just off either side of noded ring segments contribute dimension 2
//
// # Prepared geometries
//
// Prepare caches the decomposition of one operand together with a uniform
// grid over its segments. Grid cells are roaring bitmaps of segment ids, so
// noding against the cached side only visits segments whose cells overlap
// the query. Prepared and unprepared evaluation produce identical matrices.
//
// All operations run in the XY plane; z values are ignored.
package kernel
