package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/geometry"
)

func wkt(s string) *geometry.Geometry { return geometry.MustParseWKT(s) }

func TestRelate(t *testing.T) {
	k := NewPlanar()

	tests := []struct {
		name string
		a, b *geometry.Geometry
		want string
	}{
		{"disjoint points", geometry.NewPoint(0, 0), geometry.NewPoint(1, 1), "FF0FFF0F2"},
		{"equal points", geometry.NewPoint(1, 1), geometry.NewPoint(1, 1), "0FFFFFFF2"},
		{"line along box edge", wkt("LINESTRING (0 0, 1 0, 1 1)"), geometry.Box(0, 0, 2, 2), "11F00F212"},
		{"point in box", geometry.NewPoint(1, 1), geometry.Box(0, 0, 2, 2), "0FFFFF212"},
		{"point on box edge", geometry.NewPoint(0, 1), geometry.Box(0, 0, 2, 2), "F0FFFF212"},
		{"same box", geometry.Box(0, 0, 2, 2), geometry.Box(0, 0, 2, 2), "2FFF1FFF2"},
		{"overlapping boxes", geometry.Box(0, 0, 2, 2), geometry.Box(1, 1, 3, 3), "212101212"},
		{"adjacent boxes", geometry.Box(0, 0, 1, 1), geometry.Box(1, 0, 2, 1), "FF2F11212"},
		{"crossing lines", wkt("LINESTRING (0 0, 2 2)"), wkt("LINESTRING (0 2, 2 0)"), "0F1FF0102"},
		{"line inside box", wkt("LINESTRING (0.5 0.5, 1.5 1.5)"), geometry.Box(0, 0, 2, 2), "1FF0FF212"},
		{"empty vs empty", geometry.NewEmpty(geometry.Polygon), geometry.NewEmpty(geometry.Point), "FFFFFFFF2"},
		{"empty vs box", geometry.NewEmpty(geometry.LineString), geometry.Box(0, 0, 1, 1), "FFFFFF212"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Relate(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinary(t *testing.T) {
	k := NewPlanar()
	box := geometry.Box(0, 0, 2, 2)
	inner := geometry.Box(0.5, 0.5, 1.5, 1.5)
	edge := wkt("LINESTRING (0 0, 2 0)")
	through := wkt("LINESTRING (-1 1, 3 1)")

	tests := []struct {
		name string
		op   BinaryOp
		a, b *geometry.Geometry
		want bool
	}{
		{"contains inner", Contains, box, inner, true},
		{"within outer", Within, inner, box, true},
		{"contains itself", Contains, box, box, true},
		{"contains properly itself", ContainsProperly, box, box, false},
		{"contains properly inner", ContainsProperly, box, inner, true},
		{"does not contain edge", Contains, box, edge, false},
		{"covers edge", Covers, box, edge, true},
		{"edge covered by", CoveredBy, edge, box, true},
		{"edge touches", Touches, edge, box, true},
		{"line crosses", Crosses, through, box, true},
		{"polygon crossed by line", Crosses, box, through, true},
		{"overlaps", Overlaps, box, geometry.Box(1, 1, 3, 3), true},
		{"nested do not overlap", Overlaps, box, inner, false},
		{"equals reordered shell", Equals, box, wkt("POLYGON ((0 0, 2 0, 2 2, 0 2, 0 0))"), true},
		{"equals empty", Equals, geometry.NewEmpty(geometry.Point), geometry.NewEmpty(geometry.Polygon), true},
		{"intersects", Intersects, through, box, true},
		{"disjoint", Disjoint, geometry.NewPoint(5, 5), box, true},
		{"empty intersects nothing", Intersects, geometry.NewEmpty(geometry.Polygon), box, false},
		{"points do not touch", Touches, geometry.NewPoint(0, 0), geometry.NewPoint(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Binary(tt.op, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelatePattern(t *testing.T) {
	k := NewPlanar()
	empty := geometry.NewEmpty(geometry.Point)

	ok, err := k.RelatePattern(empty, empty, "*********")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = k.RelatePattern(geometry.NewPoint(1, 1), geometry.Box(0, 0, 2, 2), "0FFFFF212")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = k.RelatePattern(empty, empty, "**")
	var de *DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "relate_pattern: Should be length 9, got 2", de.Error())
}

func TestUnary(t *testing.T) {
	k := NewPlanar()
	ring := wkt("LINEARRING (0 0, 1 0, 1 1, 0 1, 0 0)")
	bowtie := wkt("LINESTRING (0 0, 2 2, 0 2, 2 0)")
	holed := geometry.Must(geometry.NewPolygon(geometry.XY,
		[]float64{0, 0, 4, 0, 4, 4, 0, 4},
		[]float64{1, 1, 1, 2, 2, 2, 2, 1},
	))
	holeOutside := geometry.Must(geometry.NewPolygon(geometry.XY,
		[]float64{0, 0, 4, 0, 4, 4, 0, 4},
		[]float64{5, 5, 5, 6, 6, 6, 6, 5},
	))

	tests := []struct {
		name string
		op   UnaryOp
		g    *geometry.Geometry
		want bool
	}{
		{"empty", IsEmpty, geometry.NewEmpty(geometry.LineString), true},
		{"point not empty", IsEmpty, geometry.NewPoint(0, 0), false},
		{"simple line", IsSimple, wkt("LINESTRING (0 0, 1 0, 1 1)"), true},
		{"bowtie not simple", IsSimple, bowtie, false},
		{"backtracking line not simple", IsSimple, wkt("LINESTRING (0 0, 2 0, 1 0)"), false},
		{"ring simple", IsSimple, ring, true},
		{"duplicate multipoint", IsSimple, geometry.Must(geometry.NewMultiPoint(geometry.XY, []float64{0, 0, 1, 1, 0, 0})), false},
		{"lines meeting at ends", IsSimple, wkt("MULTILINESTRING ((0 0, 1 1), (1 1, 2 0))"), true},
		{"lines crossing", IsSimple, wkt("MULTILINESTRING ((0 0, 2 2), (0 2, 2 0))"), false},
		{"ring is ring", IsRing, ring, true},
		{"open line not ring", IsRing, wkt("LINESTRING (0 0, 1 0, 1 1)"), false},
		{"closed bowtie not ring", IsRing, wkt("LINESTRING (0 0, 2 2, 0 2, 2 0, 0 0)"), false},
		{"ring closed", IsClosed, ring, true},
		{"point not closed", IsClosed, geometry.NewPoint(0, 0), false},
		{"empty not closed", IsClosed, geometry.NewEmpty(geometry.LineString), false},
		{"box valid", IsValid, geometry.Box(0, 0, 1, 1), true},
		{"holed valid", IsValid, holed, true},
		{"hole outside invalid", IsValid, holeOutside, false},
		{"bowtie polygon invalid", IsValid, wkt("POLYGON ((0 0, 2 2, 2 0, 0 2, 0 0))"), false},
		{"overlapping multipolygon invalid", IsValid, geometry.Must(geometry.NewMulti(geometry.MultiPolygon, geometry.Box(0, 0, 2, 2), geometry.Box(1, 1, 3, 3))), false},
		{"empty valid", IsValid, geometry.NewEmpty(geometry.Polygon), true},
		{"nan invalid", IsValid, geometry.NewPoint(math.NaN(), 0), false},
		{"box shell ccw", IsCCW, geometry.Box(0, 0, 1, 1).ExteriorRing(), true},
		{"clockwise ring", IsCCW, wkt("LINEARRING (0 0, 0 1, 1 1, 1 0, 0 0)"), false},
		{"polygon not ccw", IsCCW, geometry.Box(0, 0, 1, 1), false},
		{"has z", HasZ, geometry.NewPointZ(0, 0, 0), true},
		{"no z", HasZ, geometry.NewPoint(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Unary(tt.op, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMeasure(t *testing.T) {
	k := NewPlanar()
	holed := geometry.Must(geometry.NewPolygon(geometry.XY,
		[]float64{0, 0, 4, 0, 4, 4, 0, 4},
		[]float64{1, 1, 1, 2, 2, 2, 2, 1},
	))

	tests := []struct {
		name string
		op   MeasureOp
		g    *geometry.Geometry
		want float64
	}{
		{"box area", Area, geometry.Box(0, 0, 2, 2), 4},
		{"holed area", Area, holed, 15},
		{"line area", Area, wkt("LINESTRING (0 0, 3 4)"), 0},
		{"line length", Length, wkt("LINESTRING (0 0, 3 4)"), 5},
		{"box perimeter", Length, geometry.Box(0, 0, 2, 2), 8},
		{"x", X, geometry.NewPoint(1, 2), 1},
		{"y", Y, geometry.NewPoint(1, 2), 2},
		{"z", Z, geometry.NewPointZ(1, 2, 3), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := k.Measure(tt.op, tt.g)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	z, err := k.Measure(Z, geometry.NewPoint(1, 2))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(z))

	x, err := k.Measure(X, wkt("LINESTRING (0 0, 1 1)"))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(x))
}

func TestDistance(t *testing.T) {
	k := NewPlanar()

	d, err := k.Distance(geometry.NewPoint(0, 0), geometry.NewPoint(3, 4))
	require.NoError(t, err)
	assert.InDelta(t, 5, d, 1e-12)

	d, err = k.Distance(geometry.NewPoint(1, 3), wkt("LINESTRING (0 0, 2 0)"))
	require.NoError(t, err)
	assert.InDelta(t, 3, d, 1e-12)

	d, err = k.Distance(geometry.NewPoint(1, 1), geometry.Box(0, 0, 2, 2))
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = k.Distance(geometry.NewEmpty(geometry.Point), geometry.NewPoint(0, 0))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(d))

	ok, err := k.DWithin(geometry.NewPoint(0, 0), geometry.NewPoint(3, 4), 5)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = k.DWithin(geometry.NewPoint(0, 0), geometry.NewPoint(3, 4), 4.9)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = k.DWithin(geometry.NewPoint(0, 0), geometry.NewPoint(0, 0), math.NaN())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	k := NewPlanar()

	b, err := k.Bounds(wkt("LINESTRING (0 5, 3 -1, 2 2)"))
	require.NoError(t, err)
	assert.Equal(t, [4]float64{0, -1, 3, 5}, b)

	b, err = k.Bounds(geometry.NewEmpty(geometry.Polygon))
	require.NoError(t, err)
	for _, v := range b {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEqualsExact(t *testing.T) {
	k := NewPlanar()
	a := geometry.NewPoint(0, 0)

	ok, err := k.EqualsExact(a, geometry.NewPoint(0, 0.05), 0.1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = k.EqualsExact(a, geometry.NewPoint(0, 0.05), math.NaN())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConstruct(t *testing.T) {
	k := NewPlanar()

	t.Run("nil passes through", func(t *testing.T) {
		g, err := k.Construct(Envelope, nil)
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("envelope", func(t *testing.T) {
		g, err := k.Construct(Envelope, wkt("LINESTRING (0 0, 2 1)"))
		require.NoError(t, err)
		assert.True(t, geometry.Equal(geometry.Box(0, 0, 2, 1), g))

		g, err = k.Construct(Envelope, geometry.NewPoint(1, 1))
		require.NoError(t, err)
		assert.Equal(t, geometry.Point, g.Kind())

		g, err = k.Construct(Envelope, wkt("LINESTRING (0 0, 2 0)"))
		require.NoError(t, err)
		assert.Equal(t, geometry.LineString, g.Kind())

		g, err = k.Construct(Envelope, geometry.NewEmpty(geometry.LineString))
		require.NoError(t, err)
		assert.Equal(t, "POLYGON EMPTY", g.String())
	})

	t.Run("centroid", func(t *testing.T) {
		g, err := k.Construct(Centroid, geometry.Box(0, 0, 2, 2))
		require.NoError(t, err)
		assert.InDelta(t, 1, g.X(), 1e-12)
		assert.InDelta(t, 1, g.Y(), 1e-12)

		g, err = k.Construct(Centroid, geometry.NewEmpty(geometry.Polygon))
		require.NoError(t, err)
		assert.Equal(t, "POINT EMPTY", g.String())
	})

	t.Run("boundary", func(t *testing.T) {
		g, err := k.Construct(Boundary, wkt("LINESTRING (0 0, 1 1, 2 0)"))
		require.NoError(t, err)
		assert.Equal(t, geometry.MultiPoint, g.Kind())
		assert.True(t, geometry.Equal(geometry.Must(geometry.NewMultiPoint(geometry.XY, []float64{0, 0, 2, 0})), g))

		g, err = k.Construct(Boundary, wkt("LINEARRING (0 0, 1 0, 1 1, 0 0)"))
		require.NoError(t, err)
		assert.Equal(t, "MULTIPOINT EMPTY", g.String())

		g, err = k.Construct(Boundary, geometry.Box(0, 0, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, geometry.LineString, g.Kind())
		assert.Equal(t, 5, g.NumCoords())

		g, err = k.Construct(Boundary, geometry.NewPoint(0, 0))
		require.NoError(t, err)
		assert.Equal(t, "GEOMETRYCOLLECTION EMPTY", g.String())

		g, err = k.Construct(Boundary, geometry.Must(geometry.NewCollection(geometry.NewPoint(0, 0))))
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("simplify", func(t *testing.T) {
		g, err := k.Construct(Simplify, wkt("LINESTRING (0 0, 1 0.01, 2 0)"), 0.1)
		require.NoError(t, err)
		assert.Equal(t, 2, g.NumCoords())

		_, err = k.Construct(Simplify, wkt("LINESTRING (0 0, 1 1)"), -1)
		var de *DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "simplify", de.Op)

		_, err = k.Construct(Simplify, wkt("LINESTRING (0 0, 1 1)"))
		require.Error(t, err)
	})

	t.Run("clip by rect", func(t *testing.T) {
		g, err := k.Construct(ClipByRect, wkt("LINESTRING (0 0, 4 0)"), 1, -1, 2, 1)
		require.NoError(t, err)
		assert.Equal(t, geometry.LineString, g.Kind())
		l, err := k.Measure(Length, g)
		require.NoError(t, err)
		assert.InDelta(t, 1, l, 1e-12)

		g, err = k.Construct(ClipByRect, geometry.Box(0, 0, 1, 1), 5, 5, 6, 6)
		require.NoError(t, err)
		assert.Equal(t, "GEOMETRYCOLLECTION EMPTY", g.String())
	})
}
