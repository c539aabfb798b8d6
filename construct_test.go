package geovec

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geovec/geometry"
	"github.com/hupe1980/geovec/ndarray"
)

func TestConstructive(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)
	arr := Geometries(geometry.Box(0, 0, 2, 2), line(0, 0, 3, 0), nil)

	t.Run("centroid", func(t *testing.T) {
		got, err := eng.Centroid(ctx, arr)
		require.NoError(t, err)
		c := got.At(0).Geometry()
		assert.InDelta(t, 1.0, c.X(), 1e-12)
		assert.InDelta(t, 1.0, c.Y(), 1e-12)
		assert.InDelta(t, 1.5, got.At(1).Geometry().X(), 1e-12)
		assert.True(t, got.At(2).IsMissing())
	})

	t.Run("boundary", func(t *testing.T) {
		got, err := eng.Boundary(ctx, arr)
		require.NoError(t, err)
		assert.Equal(t, geometry.LineString, got.At(0).Geometry().Kind())
		assert.Equal(t, geometry.MultiPoint, got.At(1).Geometry().Kind())
		assert.True(t, got.At(2).IsMissing())

		coll := geometry.Must(geometry.NewCollection(geometry.NewPoint(0, 0)))
		got, err = eng.Boundary(ctx, Scalar(coll))
		require.NoError(t, err)
		assert.True(t, got.At(0).IsMissing())
	})

	t.Run("exterior ring", func(t *testing.T) {
		got, err := eng.GetExteriorRing(ctx, arr)
		require.NoError(t, err)
		assert.Equal(t, geometry.LinearRing, got.At(0).Geometry().Kind())
		assert.True(t, got.At(1).IsMissing())
		assert.True(t, got.At(2).IsMissing())
	})

	t.Run("simplify", func(t *testing.T) {
		wiggle := line(0, 0, 1, 0.01, 2, 0, 3, 0.01, 4, 0)
		got, err := eng.Simplify(ctx, Geometries(wiggle, nil), ndarray.ScalarFloat(0.1))
		require.NoError(t, err)
		assert.Equal(t, 2, got.At(0).Geometry().NumCoords())
		assert.True(t, got.At(1).IsMissing())

		got, err = eng.Simplify(ctx, Scalar(wiggle), ndarray.Cells(ndarray.Missing(), ndarray.Float(0)))
		require.NoError(t, err)
		assert.True(t, got.At(0).IsMissing())
		assert.Equal(t, 5, got.At(1).Geometry().NumCoords())

		_, err = eng.Simplify(ctx, Scalar(wiggle), ndarray.ScalarFloat(-1))
		require.ErrorIs(t, err, ErrDomain)
	})

	t.Run("clip by rect", func(t *testing.T) {
		got, err := eng.ClipByRect(ctx, arr, 1, 1, 5, 5)
		require.NoError(t, err)
		area, err := eng.Area(ctx, got)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, area.At(0), 1e-12)
		assert.True(t, got.At(1).Geometry().IsEmpty())
		assert.True(t, got.At(2).IsMissing())
	})
}

func TestGetGeometry(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	multi := geometry.Must(geometry.NewMultiPoint(geometry.XY, []float64{0, 0, 1, 1, 2, 2}))
	p := geometry.NewPoint(5, 5)

	tests := []struct {
		name  string
		g     *geometry.Geometry
		index int64
		wantX float64
	}{
		{"first part", multi, 0, 0},
		{"last part", multi, -1, 2},
		{"wrapped", multi, -3, 0},
		{"out of range", multi, 3, math.NaN()},
		{"too negative", multi, -4, math.NaN()},
		{"simple zero", p, 0, 5},
		{"simple minus one", p, -1, 5},
		{"simple one", p, 1, math.NaN()},
		{"empty", geometry.NewEmpty(geometry.Point), 0, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.GetGeometry(ctx, Scalar(tt.g), ndarray.ScalarInt(tt.index))
			require.NoError(t, err)
			c, err := got.Item()
			require.NoError(t, err)
			if math.IsNaN(tt.wantX) {
				assert.True(t, c.IsMissing())
				return
			}
			require.True(t, c.IsGeometry())
			assert.Equal(t, tt.wantX, c.Geometry().X())
		})
	}

	t.Run("simple geometry is its own part", func(t *testing.T) {
		got, err := eng.GetGeometry(ctx, Scalar(p), ndarray.ScalarInt(0))
		require.NoError(t, err)
		assert.Same(t, p, got.At(0).Geometry())
	})

	t.Run("broadcast indices", func(t *testing.T) {
		got, err := eng.GetGeometry(ctx, Scalar(multi), ndarray.Cells(ndarray.Int(0), ndarray.Int(1), ndarray.Int(2)))
		require.NoError(t, err)
		assert.Equal(t, []int{3}, got.Shape())
		assert.Equal(t, 1.0, got.At(1).Geometry().Y())
	})
}

func TestBounds(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	arr, err := ndarray.GeometryGrid([]int{2, 2},
		geometry.Box(0, 1, 2, 3), nil,
		line(-1, -2, 4, 5), geometry.NewEmpty(geometry.Polygon),
	)
	require.NoError(t, err)

	got, err := eng.Bounds(ctx, arr)
	require.NoError(t, err)
	for _, out := range []*ndarray.Array[float64]{got.XMin, got.YMin, got.XMax, got.YMax} {
		assert.Equal(t, []int{2, 2}, out.Shape())
		assert.True(t, math.IsNaN(out.At(1)))
		assert.True(t, math.IsNaN(out.At(3)))
	}
	assert.Equal(t, []float64{0, 1, 2, 3}, []float64{got.XMin.At(0), got.YMin.At(0), got.XMax.At(0), got.YMax.At(0)})
	assert.Equal(t, []float64{-1, -2, 4, 5}, []float64{got.XMin.At(2), got.YMin.At(2), got.XMax.At(2), got.YMax.At(2)})
}
