package kernel

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/testutil"
)

var allBinaryOps = []BinaryOp{
	Intersects, Disjoint, Touches, Crosses, Within, Contains,
	ContainsProperly, Overlaps, Covers, CoveredBy, Equals,
}

func TestPrepare(t *testing.T) {
	k := NewPlanar()
	box := geometry.Box(0, 0, 2, 2)

	p, err := k.Prepare(box)
	require.NoError(t, err)
	assert.Same(t, box, p.Source())

	pg, ok := p.(*PreparedGeometry)
	require.True(t, ok)
	assert.Equal(t, 4, pg.NumSegments())

	got, err := k.BinaryPrepared(Contains, p, geometry.NewPoint(1, 1))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = k.BinaryPrepared(Disjoint, p, geometry.NewPoint(10, 10))
	require.NoError(t, err)
	assert.True(t, got)
}

type foreignPrepared struct{ src *geometry.Geometry }

func (f foreignPrepared) Source() *geometry.Geometry { return f.src }

func TestBinaryPreparedForeignEntry(t *testing.T) {
	k := NewPlanar()
	p := foreignPrepared{src: geometry.Box(0, 0, 2, 2)}

	got, err := k.BinaryPrepared(Covers, p, geometry.NewPoint(0, 1))
	require.NoError(t, err)
	assert.True(t, got)

	ok, err := k.DWithinPrepared(p, geometry.NewPoint(3, 1), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSegmentGridCandidates(t *testing.T) {
	rng := testutil.NewRNG(7)
	g := rng.LineString(200, 100)
	s := newShape(g)
	grid, err := newSegmentGrid(s.segs, s.bound)
	require.NoError(t, err)

	for range 50 {
		var c [4]float64
		rng.Coords(c[:], 0, 100)
		q := orb.Bound{
			Min: orb.Point{min(c[0], c[2]), min(c[1], c[3])},
			Max: orb.Point{max(c[0], c[2]), max(c[1], c[3])},
		}

		var want []int
		for i, sg := range s.segs {
			if boundsOverlap(sg.bound(), q) {
				want = append(want, i)
			}
		}
		var got []int
		grid.candidates(q, func(i int) {
			if boundsOverlap(s.segs[i].bound(), q) {
				got = append(got, i)
			}
		})
		assert.Equal(t, want, got)
	}
}

func TestPreparedEquivalence(t *testing.T) {
	k := NewPlanar()
	rng := testutil.NewRNG(4711)

	for i := range 150 {
		a, b := rng.Geometry(10), rng.Geometry(10)
		p, err := k.Prepare(a)
		require.NoError(t, err)

		for _, op := range allBinaryOps {
			want, err := k.Binary(op, a, b)
			require.NoError(t, err)
			got, err := k.BinaryPrepared(op, p, b)
			require.NoError(t, err)
			assert.Equal(t, want, got, fmt.Sprintf("case %d: %v(%v, %v)", i, op, a, b))
		}

		for _, d := range []float64{0, 0.5, 3} {
			want, err := k.DWithin(a, b, d)
			require.NoError(t, err)
			got, err := k.DWithinPrepared(p, b, d)
			require.NoError(t, err)
			assert.Equal(t, want, got, fmt.Sprintf("case %d: dwithin %v", i, d))
		}
	}
}

func TestConverseAgreement(t *testing.T) {
	k := NewPlanar()
	rng := testutil.NewRNG(99)

	for range 100 {
		a, b := rng.Geometry(10), rng.Geometry(10)
		for _, op := range allBinaryOps {
			conv, ok := op.Converse()
			if !ok {
				continue
			}
			want, err := k.Binary(op, a, b)
			require.NoError(t, err)
			got, err := k.Binary(conv, b, a)
			require.NoError(t, err)
			assert.Equal(t, want, got, fmt.Sprintf("%v(%v, %v)", op, a, b))
		}
	}
}
