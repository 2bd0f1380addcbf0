package bench

import (
	"context"
	"os"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Run_Disjoint(t *testing.T) {
	results, err := Run(context.Background(), Options{
		Sizes:       []int{8, 300, 40000},
		MinDuration: time.Millisecond,
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "8-16", results[0].Class)
	assert.Equal(t, "small", results[0].Path)
	assert.Equal(t, "257+", results[1].Class)
	assert.Equal(t, "disjoint", results[1].Path)
	assert.Equal(t, "streaming", results[2].Path)

	for _, r := range results {
		assert.Positive(t, r.Iterations)
		assert.GreaterOrEqual(t, r.Elapsed, time.Millisecond)
		assert.Positive(t, r.BytesPerSec)
		assert.Positive(t, r.BaselineBytesPerSec)
		assert.Positive(t, r.Ratio())
	}
}

func Test_Run_Misaligned(t *testing.T) {
	results, err := Run(context.Background(), Options{
		Sizes:       []int{40000},
		SrcAlign:    1,
		MinDuration: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, "disjoint", results[0].Path)
}

func Test_Run_Overlap(t *testing.T) {
	tests := []struct {
		shift int
		path  string
	}{
		{10, "backward"},
		{-10, "forward"},
		{1000, "disjoint"},
	}
	for _, tt := range tests {
		results, err := Run(context.Background(), Options{
			Sizes:       []int{990},
			Shift:       tt.shift,
			MinDuration: time.Millisecond,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.path, results[0].Path, "shift %d", tt.shift)
	}
}

func Test_Run_Errors(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	require.ErrorIs(t, err, ErrNoSizes)

	_, err = Run(context.Background(), Options{Sizes: []int{16, 0}, MinDuration: time.Millisecond})
	require.ErrorIs(t, err, ErrBadSize)

	_, err = Run(context.Background(), Options{Sizes: []int{16}, SrcAlign: -8})
	require.ErrorIs(t, err, ErrBadAlign)
	_, err = Run(context.Background(), Options{Sizes: []int{16}, DstAlign: -1})
	require.ErrorIs(t, err, ErrBadAlign)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, Options{Sizes: []int{16}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func Test_Result_Ratio(t *testing.T) {
	assert.Zero(t, Result{BytesPerSec: 10}.Ratio())
	assert.InDelta(t, 2.0, Result{BytesPerSec: 10, BaselineBytesPerSec: 5}.Ratio(), 1e-9)
}

func Test_Windows_ShiftKeepsLowerAlignment(t *testing.T) {
	page := uintptr(os.Getpagesize())
	pageOff := func(b []byte) uintptr {
		return uintptr(unsafe.Pointer(unsafe.SliceData(b))) % page
	}

	tests := []struct {
		name             string
		opts             Options
		wantSrc, wantDst uintptr
	}{
		{"disjoint", Options{SrcAlign: 3, DstAlign: 7}, 3, 7},
		{"dst above src", Options{Shift: 5, SrcAlign: 3, DstAlign: 7}, 3, 8},
		{"dst below src", Options{Shift: -5, SrcAlign: 3, DstAlign: 2}, 7, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, src, release, err := windows(tt.opts, 300)
			require.NoError(t, err)
			defer release()

			require.Len(t, dst, 300)
			require.Len(t, src, 300)
			assert.Equal(t, tt.wantSrc, pageOff(src))
			assert.Equal(t, tt.wantDst, pageOff(dst))
		})
	}
}
