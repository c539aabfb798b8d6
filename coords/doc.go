// Package coords reads and writes the coordinates of geometry arrays as one
// flat (N, 2) or (N, 3) buffer.
//
// Rows follow cell order and, within a geometry, canonical order: polygon
// shells before holes, parts in order, collections depth first. Missing
// cells contribute no rows.
package coords
