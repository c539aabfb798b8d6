//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := IntToUint32(123)
		assert.NoError(t, err)
		assert.Equal(t, uint32(123), got)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.Error(t, err)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.Error(t, err)
	})
}

func TestMulInt(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int
		want    int
		wantErr bool
	}{
		{"zero", 0, 17, 0, false},
		{"small", 6, 7, 42, false},
		{"overflow", math.MaxInt/2 + 1, 2, 0, true},
		{"negative", -1, 3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulInt(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProduct(t *testing.T) {
	got, err := Product(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = Product([]int{2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, 24, got)

	got, err = Product([]int{2, 0, 4})
	assert.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = Product([]int{math.MaxInt, 2})
	assert.Error(t, err)
}
