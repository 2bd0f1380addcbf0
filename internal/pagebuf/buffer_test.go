package pagebuf

import (
	"errors"
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink byte

func TestNewRejectsBadSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := New(size)
		require.ErrorIs(t, err, ErrSize)
	}
}

func TestNewIsPageAligned(t *testing.T) {
	ps := os.Getpagesize()
	b, err := New(100)
	require.NoError(t, err)
	defer b.Close()

	data := b.Bytes()
	assert.Equal(t, ps, len(data))
	assert.Equal(t, ps, b.Len())
	assert.Zero(t, uintptr(unsafe.Pointer(&data[0]))%uintptr(ps))
	for i, c := range data {
		if c != 0 {
			t.Fatalf("byte %d not zeroed: %#x", i, c)
		}
	}

	// Whole region is writable.
	for i := range data {
		data[i] = byte(i)
	}
}

func TestNewRoundsUpToPages(t *testing.T) {
	ps := os.Getpagesize()
	b, err := New(ps + 1)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, 2*ps, b.Len())
}

func TestTailAbutsEnd(t *testing.T) {
	b, err := New(64)
	require.NoError(t, err)
	defer b.Close()

	tail := b.Tail(10)
	require.Len(t, tail, 10)
	data := b.Bytes()
	assert.Equal(t, unsafe.Pointer(&data[len(data)-10]), unsafe.Pointer(&tail[0]))
}

func TestCloseIdempotent(t *testing.T) {
	b, err := New(1)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Nil(t, b.Bytes())
}

func TestGuardPagesFault(t *testing.T) {
	b, err := New(1)
	require.NoError(t, err)
	defer b.Close()
	if !b.Guarded() {
		t.Skip("no guard pages on this platform")
	}

	data := b.Bytes()
	base := unsafe.Pointer(&data[0])

	tests := []struct {
		name string
		off  int
	}{
		{"before", -1},
		{"after", len(data)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Catch(func() {
				sink = *(*byte)(unsafe.Add(base, tt.off))
			})
			var fault *FaultError
			require.True(t, errors.As(err, &fault), "expected FaultError, got %v", err)
			assert.Equal(t, uintptr(base)+uintptr(tt.off), fault.Addr)
		})
	}
}

func TestCatchNoFault(t *testing.T) {
	ran := false
	require.NoError(t, Catch(func() { ran = true }))
	assert.True(t, ran)
}

func TestCatchRepanicsOtherPanics(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = Catch(func() { panic("boom") })
	})
}
