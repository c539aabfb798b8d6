package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	mp := Must(NewMultiPoint(XY, []float64{0, 0, 1, 1, 2, 2, 3, 3}))
	seq := mp.Geoms()

	t.Run("Len", func(t *testing.T) {
		assert.Equal(t, 4, seq.Len())
		assert.Equal(t, 0, NewPoint(0, 0).Geoms().Len())
		assert.Equal(t, 0, Sequence{}.Len())
	})

	t.Run("At wraps negative indices", func(t *testing.T) {
		for i := -4; i < 4; i++ {
			g, err := seq.At(i)
			require.NoError(t, err)
			want := i
			if want < 0 {
				want += 4
			}
			assert.Equal(t, float64(want), g.X())
		}
	})

	t.Run("At out of range", func(t *testing.T) {
		for _, i := range []int{4, -5, 100} {
			_, err := seq.At(i)
			var ie *IndexError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, i, ie.Index)
			assert.Equal(t, 4, ie.Len)
		}
	})

	t.Run("children share storage", func(t *testing.T) {
		g, err := seq.At(1)
		require.NoError(t, err)
		assert.Same(t, &mp.flat[2], &g.flat[0])
	})

	t.Run("Slice", func(t *testing.T) {
		tests := []struct {
			name              string
			start, stop, step int
			want              []float64
		}{
			{"full", 0, 4, 1, []float64{0, 1, 2, 3}},
			{"middle", 1, 3, 1, []float64{1, 2}},
			{"negative bounds", -3, -1, 1, []float64{1, 2}},
			{"step", 0, 4, 2, []float64{0, 2}},
			{"reverse", 3, -5, -1, []float64{3, 2, 1, 0}},
			{"clamped", -100, 100, 1, []float64{0, 1, 2, 3}},
			{"empty", 2, 2, 1, nil},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := seq.Slice(tt.start, tt.stop, tt.step)
				require.NoError(t, err)
				assert.Equal(t, MultiPoint, got.Kind())
				var xs []float64
				for p := range got.Geoms().All() {
					xs = append(xs, p.X())
				}
				assert.Equal(t, tt.want, xs)
			})
		}
	})

	t.Run("empty slice is canonical empty of kind", func(t *testing.T) {
		got, err := seq.Slice(3, 1, 1)
		require.NoError(t, err)
		assert.True(t, got.IsEmpty())
		assert.Equal(t, MultiPoint, got.Kind())
	})

	t.Run("zero step", func(t *testing.T) {
		_, err := seq.Slice(0, 4, 0)
		assert.ErrorIs(t, err, ErrZeroStep)
	})

	t.Run("All is restartable", func(t *testing.T) {
		count := func() int {
			n := 0
			for range seq.All() {
				n++
			}
			return n
		}
		assert.Equal(t, 4, count())
		assert.Equal(t, 4, count())
		assert.Len(t, seq.ToSlice(), 4)
	})
}

func TestSequenceMultiPolygonSlice(t *testing.T) {
	mp := Must(NewMultiPolygon(XY,
		[][]float64{square(0, 0, 1)},
		[][]float64{square(5, 5, 2), square(5.5, 5.5, 0.5)},
		[][]float64{square(10, 10, 1)},
	))

	got, err := mp.Geoms().Slice(1, 3, 1)
	require.NoError(t, err)
	require.Equal(t, 2, got.NumGeometries())

	first, err := got.Geoms().At(0)
	require.NoError(t, err)
	second, err := mp.Geoms().At(1)
	require.NoError(t, err)
	assert.True(t, Equal(first, second))
	assert.Equal(t, 2, first.NumRings())
}

func TestSequenceCollection(t *testing.T) {
	p := NewPoint(1, 1)
	ls := Must(NewLineString(XY, []float64{0, 0, 1, 1}))
	gc := Must(NewCollection(p, ls))

	got, err := gc.Geoms().At(-1)
	require.NoError(t, err)
	assert.Same(t, ls, got)

	sub, err := gc.Geoms().Slice(0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, GeometryCollection, sub.Kind())
	assert.Equal(t, 1, sub.NumGeometries())
}
