package ndarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcast(t *testing.T) {
	tests := []struct {
		name   string
		shapes [][]int
		want   []int
	}{
		{"scalars", [][]int{{}, {}}, []int{}},
		{"scalar and vector", [][]int{{}, {3}}, []int{3}},
		{"equal", [][]int{{2, 3}, {2, 3}}, []int{2, 3}},
		{"column and row", [][]int{{2, 1}, {1, 3}}, []int{2, 3}},
		{"trailing", [][]int{{4, 2, 3}, {3}}, []int{4, 2, 3}},
		{"zero length", [][]int{{0}, {1}}, []int{0}},
		{"three operands", [][]int{{2, 1}, {3}, {}}, []int{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Broadcast(tt.shapes...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBroadcastMismatch(t *testing.T) {
	_, err := Broadcast([]int{2}, []int{3})
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []int{2}, se.Expected)
	assert.Equal(t, []int{3}, se.Actual)
	assert.Contains(t, err.Error(), "(2,)")
	assert.Contains(t, err.Error(), "(3,)")
}

func TestStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Strides([]int{2, 3, 4}))
	assert.Equal(t, []int{}, Strides([]int{}))
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1}, BroadcastStrides([]int{3}, []int{2, 3}))
	assert.Equal(t, []int{1, 0}, BroadcastStrides([]int{2, 1}, []int{2, 3}))
	assert.Equal(t, []int{0, 0}, BroadcastStrides([]int{}, []int{2, 3}))
}

func TestFormatShape(t *testing.T) {
	assert.Equal(t, "()", FormatShape(nil))
	assert.Equal(t, "(5,)", FormatShape([]int{5}))
	assert.Equal(t, "(2, 3)", FormatShape([]int{2, 3}))
}
