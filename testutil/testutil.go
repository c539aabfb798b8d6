package testutil

import (
	"math"
	"math/rand"
	"sync"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/ndarray"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0,1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Coords fills dst with values in [minVal, maxVal). Values are snapped to a
// 1/64 grid so that generated shapes share vertices and edges often enough
// to exercise touching and collinear cases.
func (r *RNG) Coords(dst []float64, minVal, maxVal float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coordsLocked(dst, minVal, maxVal)
}

func (r *RNG) coordsLocked(dst []float64, minVal, maxVal float64) {
	span := maxVal - minVal
	for i := range dst {
		dst[i] = minVal + math.Floor(r.rand.Float64()*span*64)/64
	}
}

// Point returns a random point in [0, extent)².
func (r *RNG) Point(extent float64) *geometry.Geometry {
	var xy [2]float64
	r.Coords(xy[:], 0, extent)
	return geometry.NewPoint(xy[0], xy[1])
}

// LineString returns a random line with n ≥ 2 points in [0, extent)².
func (r *RNG) LineString(n int, extent float64) *geometry.Geometry {
	n = max(n, 2)
	flat := make([]float64, 2*n)
	r.Coords(flat, 0, extent)
	return geometry.Must(geometry.NewLineString(geometry.XY, flat))
}

// Polygon returns a random star-shaped polygon with n ≥ 3 shell vertices
// around (cx, cy). The shell is simple, so the polygon is valid.
func (r *RNG) Polygon(cx, cy, radius float64, n int) *geometry.Geometry {
	n = max(n, 3)
	r.mu.Lock()
	defer r.mu.Unlock()

	flat := make([]float64, 0, 2*n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		rad := radius * (0.5 + 0.5*r.rand.Float64())
		flat = append(flat, cx+rad*math.Cos(a), cy+rad*math.Sin(a))
	}
	return geometry.Must(geometry.NewPolygon(geometry.XY, flat))
}

// Box returns a random axis-aligned rectangle in [0, extent)².
func (r *RNG) Box(extent float64) *geometry.Geometry {
	var c [4]float64
	r.Coords(c[:], 0, extent)
	xmin, xmax := math.Min(c[0], c[2]), math.Max(c[0], c[2])
	ymin, ymax := math.Min(c[1], c[3]), math.Max(c[1], c[3])
	if xmin == xmax {
		xmax += 1.0 / 64
	}
	if ymin == ymax {
		ymax += 1.0 / 64
	}
	return geometry.Box(xmin, ymin, xmax, ymax)
}

// Geometry returns a random point, line string, box or polygon within
// [0, extent)².
func (r *RNG) Geometry(extent float64) *geometry.Geometry {
	switch r.Intn(5) {
	case 0:
		return r.Point(extent)
	case 1:
		return r.LineString(2+r.Intn(4), extent)
	case 2:
		return r.Box(extent)
	case 3:
		var c [2]float64
		r.Coords(c[:], extent/4, 3*extent/4)
		return r.Polygon(c[0], c[1], extent/4, 3+r.Intn(6))
	default:
		ps := []*geometry.Geometry{r.Point(extent), r.Point(extent)}
		return geometry.Must(geometry.NewMulti(geometry.MultiPoint, ps...))
	}
}

// Geometries returns n random geometries; each is nil with probability
// missingRate.
func (r *RNG) Geometries(n int, extent, missingRate float64) []*geometry.Geometry {
	gs := make([]*geometry.Geometry, n)
	for i := range gs {
		if r.Float64() < missingRate {
			continue
		}
		gs[i] = r.Geometry(extent)
	}
	return gs
}

// Cells returns n random geometry cells as a 1-d array; nil geometries
// become missing cells.
func (r *RNG) Cells(n int, extent, missingRate float64) *ndarray.Array[ndarray.Cell] {
	return ndarray.Geometries(r.Geometries(n, extent, missingRate)...)
}
