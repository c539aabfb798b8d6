package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOrb(t *testing.T) {
	t.Run("polygon", func(t *testing.T) {
		p := Must(NewPolygon(XYZ, []float64{0, 0, 9, 1, 0, 9, 1, 1, 9, 0, 0, 9}))
		og, ok := p.ToOrb().(orb.Polygon)
		require.True(t, ok)
		require.Len(t, og, 1)
		assert.Equal(t, orb.Point{1, 1}, og[0][2])
	})

	t.Run("linear ring is a line string", func(t *testing.T) {
		r := Must(NewLinearRing(XY, []float64{0, 0, 1, 0, 1, 1}))
		_, ok := r.ToOrb().(orb.LineString)
		assert.True(t, ok)
	})

	t.Run("collection skips empty points", func(t *testing.T) {
		gc := Must(NewCollection(NewEmpty(Point), NewPoint(1, 2)))
		c, ok := gc.ToOrb().(orb.Collection)
		require.True(t, ok)
		assert.Equal(t, orb.Collection{orb.Point{1, 2}}, c)
	})
}

func TestFromOrb(t *testing.T) {
	tests := []struct {
		name string
		in   orb.Geometry
		kind Kind
		n    int
	}{
		{"point", orb.Point{1, 2}, Point, 1},
		{"ring", orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, LinearRing, 4},
		{"bound", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, Polygon, 5},
		{"multilinestring", orb.MultiLineString{{{0, 0}, {1, 1}}, {{2, 2}, {3, 3}}}, MultiLineString, 4},
		{"collection", orb.Collection{orb.Point{0, 0}, orb.LineString{{0, 0}, {1, 1}}}, GeometryCollection, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromOrb(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, g.Kind())
			assert.Equal(t, tt.n, g.NumCoords())
		})
	}

	_, err := FromOrb(nil)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestWKT(t *testing.T) {
	assert.Equal(t, "POINT EMPTY", NewEmpty(Point).String())
	assert.Equal(t, "GEOMETRYCOLLECTION EMPTY", NewEmpty(GeometryCollection).String())
	assert.Equal(t, "POINT(1 2)", NewPoint(1, 2).String())

	r := Must(NewLinearRing(XY, []float64{0, 0, 1, 0, 1, 1}))
	assert.Contains(t, r.String(), "LINEARRING")

	g, err := ParseWKT("polygon empty")
	require.NoError(t, err)
	assert.Equal(t, Polygon, g.Kind())
	assert.True(t, g.IsEmpty())

	_, err = ParseWKT("BLOB EMPTY")
	assert.ErrorIs(t, err, ErrKindMismatch)

	p := MustParseWKT("POINT(3 4)")
	assert.Equal(t, 3.0, p.X())
}

func TestWKBRoundTrip(t *testing.T) {
	orig := Must(NewPolygon(XY, square(0, 0, 4), square(1, 1, 1)))
	data, err := orig.MarshalWKB()
	require.NoError(t, err)

	got, err := UnmarshalWKB(data)
	require.NoError(t, err)
	assert.True(t, Equal(orig, got))
}
