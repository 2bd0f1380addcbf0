package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffset(t *testing.T) {
	tests := []struct {
		addr, width, want uintptr
	}{
		{0, 32, 0},
		{1, 32, 31},
		{31, 32, 1},
		{32, 32, 0},
		{33, 32, 31},
		{0x1000, 4096, 0},
		{0x1001, 4096, 4095},
		{7, 8, 1},
		{5, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Offset(tt.addr, tt.width), "Offset(%d, %d)", tt.addr, tt.width)
		assert.True(t, IsAligned(tt.addr+Offset(tt.addr, tt.width), tt.width))
	}
}

func TestUpDown(t *testing.T) {
	assert.Equal(t, uintptr(32), Up(1, 32))
	assert.Equal(t, uintptr(32), Up(32, 32))
	assert.Equal(t, uintptr(64), Up(33, 32))
	assert.Equal(t, uintptr(0), Up(0, 32))

	assert.Equal(t, uintptr(0), Down(31, 32))
	assert.Equal(t, uintptr(32), Down(32, 32))
	assert.Equal(t, uintptr(32), Down(63, 32))
}

func TestTail(t *testing.T) {
	for addr := uintptr(0); addr < 256; addr++ {
		assert.Equal(t, addr, Down(addr, 32)+Tail(addr, 32))
		if Tail(addr, 32) != 0 {
			assert.Equal(t, Up(addr, 32)-addr, Offset(addr, 32))
		}
	}
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned(0, 16))
	assert.True(t, IsAligned(64, 32))
	assert.False(t, IsAligned(65, 32))
	assert.False(t, IsAligned(16, 32))
}
