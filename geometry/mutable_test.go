package geometry

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAllocator struct{ calls int }

func (c *countingAllocator) Alloc(n int) ([]float64, error) {
	c.calls++
	return make([]float64, n), nil
}

var errOutOfStorage = errors.New("out of storage")

// budgetAllocator fails once more than limit allocations were requested.
type budgetAllocator struct {
	limit int
	calls int
}

func (b *budgetAllocator) Alloc(n int) ([]float64, error) {
	if b.calls >= b.limit {
		return nil, errOutOfStorage
	}
	b.calls++
	return make([]float64, n), nil
}

func TestMutableSetCoords(t *testing.T) {
	t.Run("same layout writes in place", func(t *testing.T) {
		ls := Must(NewLineString(XY, []float64{0, 0, 1, 1}))
		m, err := ls.Mutable(nil)
		require.NoError(t, err)

		n, err := m.SetCoords([]float64{5, 6, 7, 8}, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, []float64{5, 6, 7, 8}, ls.flat)
	})

	t.Run("two columns downgrade XYZ", func(t *testing.T) {
		p := NewPointZ(1, 2, 3)
		alloc := &countingAllocator{}
		m, err := p.Mutable(alloc)
		require.NoError(t, err)

		_, err = m.SetCoords([]float64{9, 8}, 2)
		require.NoError(t, err)
		assert.Equal(t, XY, p.Layout())
		assert.Equal(t, 9.0, p.X())
		assert.True(t, math.IsNaN(p.Z()))
		assert.Equal(t, 1, alloc.calls)
	})

	t.Run("three columns keep XY", func(t *testing.T) {
		p := NewPoint(1, 2)
		m, err := p.Mutable(nil)
		require.NoError(t, err)

		_, err = m.SetCoords([]float64{4, 5, 6}, 3)
		require.NoError(t, err)
		assert.Equal(t, XY, p.Layout())
		assert.Equal(t, 4.0, p.X())
		assert.Equal(t, 5.0, p.Y())
	})

	t.Run("collection members in order", func(t *testing.T) {
		a := NewPointZ(0, 0, 0)
		b := Must(NewLineString(XY, []float64{0, 0, 1, 1}))
		gc := Must(NewCollection(a, b))

		m, err := gc.Mutable(nil)
		require.NoError(t, err)
		n, err := m.SetCoords([]float64{1, 1, 1, 2, 2, 2, 3, 3, 3}, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, 1.0, a.Z())
		assert.Equal(t, []float64{2, 2, 3, 3}, b.flat)
	})

	t.Run("short buffer", func(t *testing.T) {
		ls := Must(NewLineString(XY, []float64{0, 0, 1, 1}))
		m, err := ls.Mutable(nil)
		require.NoError(t, err)
		_, err = m.SetCoords([]float64{1, 2}, 2)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)

		_, err = m.SetCoords([]float64{1, 2, 3, 4}, 4)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})
}

func TestMutableRefusesPrepared(t *testing.T) {
	p := NewPoint(0, 0)
	p.AttachPrepared(stubPrepared{src: p})

	_, err := p.Mutable(nil)
	assert.ErrorIs(t, err, ErrPreparedMutation)

	gc := Must(NewCollection(NewPoint(1, 1), p))
	_, err = gc.Mutable(nil)
	assert.ErrorIs(t, err, ErrPreparedMutation)
}

func TestMutableAllocationFailureLeavesGeometryUntouched(t *testing.T) {
	a := NewPointZ(1, 1, 1)
	b := NewPoint(2, 2)
	c := NewPointZ(3, 3, 3)
	gc := Must(NewCollection(a, b, c))

	alloc := &budgetAllocator{limit: 1}
	m, err := gc.Mutable(alloc)
	require.NoError(t, err)

	_, err = m.SetCoords([]float64{7, 7, 8, 8, 9, 9}, 2)
	require.ErrorIs(t, err, errOutOfStorage)

	assert.Equal(t, []float64{1, 1, 1}, a.flat)
	assert.Equal(t, []float64{2, 2}, b.flat)
	assert.Equal(t, []float64{3, 3, 3}, c.flat)
	assert.True(t, a.HasZ())
	assert.True(t, c.HasZ())
	assert.True(t, gc.HasZ())
}

func TestMutableReserve(t *testing.T) {
	a := NewPointZ(1, 1, 1)
	c := NewPointZ(3, 3, 3)
	gc := Must(NewCollection(a, NewPoint(2, 2), c))

	alloc := &countingAllocator{}
	m, err := gc.Mutable(alloc)
	require.NoError(t, err)
	require.NoError(t, m.Reserve(2))
	assert.Equal(t, 2, alloc.calls)

	n, err := m.SetCoords([]float64{7, 7, 8, 8, 9, 9}, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, alloc.calls)
	assert.Equal(t, []float64{7, 7}, a.flat)
	assert.Equal(t, []float64{9, 9}, c.flat)
	assert.False(t, gc.HasZ())

	assert.ErrorIs(t, m.Reserve(4), ErrInvalidCoordinates)
}

func TestMutableRefusesViews(t *testing.T) {
	mp := Must(NewMultiPolygon(XY,
		[][]float64{{0, 0, 10, 0, 10, 10, 0, 10, 0, 0}},
		[][]float64{{20, 20, 30, 20, 30, 30, 20, 30, 20, 20}},
	))
	before := slices.Clone(mp.flat)

	part, err := mp.GeometryN(0)
	require.NoError(t, err)
	_, err = part.Mutable(nil)
	assert.ErrorIs(t, err, ErrViewMutation)

	shell := part.ExteriorRing()
	_, err = shell.Mutable(nil)
	assert.ErrorIs(t, err, ErrViewMutation)

	gc := Must(NewCollection(NewPoint(1, 1), part))
	_, err = gc.Mutable(nil)
	assert.ErrorIs(t, err, ErrViewMutation)

	assert.Equal(t, before, mp.flat)

	c, err := part.Clone(nil)
	require.NoError(t, err)
	m, err := c.Mutable(nil)
	require.NoError(t, err)
	_, err = m.SetCoords(make([]float64, c.NumCoords()*2), 2)
	require.NoError(t, err)
	assert.Equal(t, before, mp.flat)
}

func TestMutableRefusesPreparedCollectionMembers(t *testing.T) {
	inner := NewPoint(1, 1)
	nested := Must(NewCollection(inner))
	member := NewPoint(2, 2)
	gc := Must(NewCollection(member, nested))
	gc.AttachPrepared(stubPrepared{src: gc})

	_, err := member.Mutable(nil)
	assert.ErrorIs(t, err, ErrPreparedMutation)
	_, err = nested.Mutable(nil)
	assert.ErrorIs(t, err, ErrPreparedMutation)
	_, err = inner.Mutable(nil)
	assert.ErrorIs(t, err, ErrPreparedMutation)

	c, err := member.Clone(nil)
	require.NoError(t, err)
	_, err = c.Mutable(nil)
	assert.NoError(t, err)
}

func TestClone(t *testing.T) {
	orig := Must(NewMultiPolygon(XYZ, [][]float64{{0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1, 0, 0, 1}}))
	orig.AttachPrepared(stubPrepared{src: orig})

	alloc := &countingAllocator{}
	c, err := orig.Clone(alloc)
	require.NoError(t, err)
	assert.True(t, Equal(orig, c))
	assert.False(t, c.IsPrepared())
	assert.Equal(t, 1, alloc.calls)

	c.flat[0] = 42
	assert.Equal(t, 0.0, orig.flat[0])
}
