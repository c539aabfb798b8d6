package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBools(t *testing.T) {
	b := NewBools(2, 3)
	assert.Equal(t, 6, b.Size())
	assert.False(t, b.Any())

	b.SetBool(1, true)
	b.SetBool(5, true)
	assert.True(t, b.At(1))
	assert.False(t, b.At(2))
	assert.Equal(t, 2, b.Count())
	assert.Equal(t, []int{1, 5}, b.Indices())
	assert.Equal(t, []bool{false, true, false, false, false, true}, b.Slice())
	assert.False(t, b.All())

	b.SetBool(1, false)
	assert.Equal(t, 1, b.Count())

	_, err := b.Item()
	assert.Error(t, err)
}

func TestBoolsScalar(t *testing.T) {
	s := MakeBools([]int{}, true)
	assert.True(t, s.IsScalar())
	s.SetBool(0, true)
	v, err := s.Item()
	require.NoError(t, err)
	assert.True(t, v)

	assert.False(t, MakeBools([]int{1}, true).IsScalar())
	assert.True(t, BoolsOf(true, true).All())
}

func TestByteBools(t *testing.T) {
	var out BoolArray = NewByteBools(3)
	out.SetBool(0, true)
	out.SetBool(2, true)
	out.SetBool(2, false)

	bb := out.(*ByteBools)
	assert.Equal(t, []uint8{1, 0, 0}, bb.Data())
	assert.True(t, out.At(0))
	assert.False(t, out.IsScalar())
	assert.Equal(t, []int{3}, out.Shape())
}
