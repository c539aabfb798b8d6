package kernel

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/paulmach/orb"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/internal/conv"
)

// maxGridSide caps the number of grid cells per axis.
const maxGridSide = 256

// PreparedGeometry is the acceleration entry built by Planar.Prepare. It
// caches the topology decomposition of its source and a uniform grid over
// the source's segments.
type PreparedGeometry struct {
	src   *geometry.Geometry
	shape *shape
	grid  *segmentGrid
}

// Source returns the geometry the entry was built from.
func (p *PreparedGeometry) Source() *geometry.Geometry { return p.src }

// NumSegments returns the number of indexed segments.
func (p *PreparedGeometry) NumSegments() int { return len(p.shape.segs) }

func newPreparedGeometry(g *geometry.Geometry) (*PreparedGeometry, error) {
	s := newShape(g)
	grid, err := newSegmentGrid(s.segs, s.bound)
	if err != nil {
		return nil, err
	}
	return &PreparedGeometry{src: g, shape: s, grid: grid}, nil
}

// segmentGrid buckets segment ids by the grid cells their bounds cover.
type segmentGrid struct {
	bound  orb.Bound
	nx, ny int
	cw, ch float64
	cells  []*roaring.Bitmap
}

func newSegmentGrid(segs []segment, bound orb.Bound) (*segmentGrid, error) {
	side := int(math.Ceil(math.Sqrt(float64(len(segs)))))
	side = max(1, min(side, maxGridSide))

	g := &segmentGrid{bound: bound, nx: side, ny: side}
	g.cw = cellSize(bound.Max[0]-bound.Min[0], side)
	g.ch = cellSize(bound.Max[1]-bound.Min[1], side)
	g.cells = make([]*roaring.Bitmap, side*side)

	for i, sg := range segs {
		id, err := conv.IntToUint32(i)
		if err != nil {
			return nil, err
		}
		x0, y0, x1, y1 := g.cellRange(sg.bound())
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c := y*g.nx + x
				if g.cells[c] == nil {
					g.cells[c] = roaring.New()
				}
				g.cells[c].Add(id)
			}
		}
	}
	for _, c := range g.cells {
		if c != nil {
			c.RunOptimize()
		}
	}
	return g, nil
}

func cellSize(extent float64, n int) float64 {
	if extent <= 0 {
		return 1
	}
	return extent / float64(n)
}

func (g *segmentGrid) cellRange(b orb.Bound) (x0, y0, x1, y1 int) {
	return g.col(b.Min[0]), g.row(b.Min[1]), g.col(b.Max[0]), g.row(b.Max[1])
}

func (g *segmentGrid) col(x float64) int {
	return clampCell(math.Floor((x-g.bound.Min[0])/g.cw), g.nx)
}

func (g *segmentGrid) row(y float64) int {
	return clampCell(math.Floor((y-g.bound.Min[1])/g.ch), g.ny)
}

func clampCell(v float64, n int) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v >= float64(n):
		return n - 1
	default:
		return int(v)
	}
}

// candidates implements candidateFunc over the grid.
func (g *segmentGrid) candidates(q orb.Bound, fn func(i int)) {
	if !boundsOverlap(g.bound, q) {
		return
	}
	x0, y0, x1, y1 := g.cellRange(q)
	hits := make([]*roaring.Bitmap, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if c := g.cells[y*g.nx+x]; c != nil {
				hits = append(hits, c)
			}
		}
	}
	if len(hits) == 0 {
		return
	}
	roaring.FastOr(hits...).Iterate(func(id uint32) bool {
		fn(int(id))
		return true
	})
}
