package verify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/movekit/move"
)

func smallConfig() Config {
	return Config{
		MaxSmall:  40,
		AlignSpan: 8,
		Large:     []int{257, 1000, 32768},
		Shifts:    []int{1, 33, 300},
	}
}

// forwardOnly walks low to high a byte at a time, which corrupts overlaps
// where src < dst.
type forwardOnly struct{}

func (forwardOnly) Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	for i := uintptr(0); i < n; i++ {
		*(*byte)(unsafe.Add(dst, i)) = *(*byte)(unsafe.Add(src, i))
	}
	return dst
}

func (forwardOnly) Path(dst, src unsafe.Pointer, n uintptr) move.Path {
	return move.Engine{}.Path(dst, src, n)
}

// wrongReturn moves correctly but returns src.
type wrongReturn struct{ move.Engine }

func (w wrongReturn) Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	w.Engine.Move(dst, src, n)
	return src
}

// overrun writes one byte past the destination window.
type overrun struct{ move.Engine }

func (o overrun) Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	o.Engine.Move(dst, src, n)
	*(*byte)(unsafe.Add(dst, n)) = 0
	return dst
}

// shortLarge drops the last byte of every large move.
type shortLarge struct{ move.Engine }

func (s shortLarge) Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	if n > 256 {
		n--
	}
	s.Engine.Move(dst, src, n)
	return dst
}

func Test_Run_DefaultEnginePasses(t *testing.T) {
	report, err := Run(context.Background(), smallConfig())
	require.NoError(t, err)
	require.NoError(t, report.Err())
	assert.Empty(t, report.Failures)
	assert.Zero(t, report.Dropped)
	assert.Positive(t, report.Elapsed)

	for _, c := range []Check{CheckDisjoint, CheckOverlap, CheckSame, CheckStreaming, CheckFault} {
		assert.Positive(t, report.ByCheck[c], "no cases ran for %s", c)
	}
	total := 0
	for _, n := range report.ByCheck {
		total += n
	}
	assert.Equal(t, report.Cases, total)
}

func Test_Run_DefaultConfig(t *testing.T) {
	if testing.Short() {
		t.Skip("full sweep")
	}
	report, err := Run(context.Background(), Config{})
	require.NoError(t, err)
	require.NoError(t, report.Err(), "%v", report.Failures)
}

func Test_Run_DetectsOverlapCorruption(t *testing.T) {
	cfg := smallConfig()
	cfg.Engine = forwardOnly{}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.ErrorIs(t, report.Err(), ErrMismatch)

	checks := map[Check]bool{}
	for _, f := range report.Failures {
		checks[f.Check] = true
		assert.GreaterOrEqual(t, f.Index, 0)
	}
	assert.Empty(t, cmp.Diff(map[Check]bool{CheckOverlap: true}, checks))
}

func Test_Run_DetectsWrongReturn(t *testing.T) {
	cfg := smallConfig()
	cfg.Engine = wrongReturn{}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.Error(t, report.Err())
	require.NotEmpty(t, report.Failures)
	assert.Equal(t, CheckReturn, report.Failures[0].Check)
}

func Test_Run_DetectsOverrun(t *testing.T) {
	cfg := smallConfig()
	cfg.Engine = overrun{}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.ErrorIs(t, report.Err(), ErrMismatch)
	require.NotEmpty(t, report.Failures)
	assert.Equal(t, CheckBounds, report.Failures[0].Check)
	assert.Equal(t, maxFailures, len(report.Failures))
	assert.Positive(t, report.Dropped)
}

func Test_Run_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, smallConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func Test_Run_LogsFailures(t *testing.T) {
	var out bytes.Buffer
	cfg := smallConfig()
	cfg.Engine = forwardOnly{}
	cfg.Logger = slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "check failed")
	assert.Contains(t, out.String(), "check=overlap")
	assert.Contains(t, out.String(), "phase complete")
}

func Test_Failure_String(t *testing.T) {
	f := Failure{Check: CheckOverlap, N: 300, DstOff: 1, SrcOff: 0, Path: "backward", Index: 17}
	assert.Equal(t, "overlap: n=300 dst+1 src+0 path=backward first mismatch at 17", f.String())

	f = Failure{Check: CheckFault, N: 4, Path: "small", Index: -1, Detail: "boom"}
	assert.Equal(t, "fault: n=4 dst+0 src+0 path=small: boom", f.String())
}

func Test_Config_Defaults(t *testing.T) {
	c := Config{AlignSpan: 1 << 20}.withDefaults(4096)
	assert.Equal(t, DefaultMaxSmall, c.MaxSmall)
	assert.Equal(t, 4096, c.AlignSpan)
	assert.Equal(t, DefaultLarge(), c.Large)
	assert.Equal(t, DefaultShifts(), c.Shifts)
	assert.NotNil(t, c.Engine)
	assert.NotNil(t, c.Logger)
}

func Test_Run_StreamingChecksConfiguredEngine(t *testing.T) {
	cfg := smallConfig()
	cfg.Large = []int{32768}
	cfg.Shifts = []int{1}
	cfg.Engine = shortLarge{}

	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.ErrorIs(t, report.Err(), ErrMismatch)

	var streaming []Failure
	for _, f := range report.Failures {
		if f.Check == CheckStreaming {
			streaming = append(streaming, f)
		}
	}
	require.NotEmpty(t, streaming)
	assert.Equal(t, "engine differs from the streaming and ordinary loops", streaming[0].Detail)
	assert.Equal(t, streaming[0].DstOff+streaming[0].N-1, streaming[0].Index)
}

func Test_Run_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		large  []int
		shifts []int
	}{
		{"negative large", []int{300, -5}, []int{1}},
		{"negative shift", []int{300}, []int{1, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{MaxSmall: 4, AlignSpan: 2, Large: tt.large, Shifts: tt.shifts}
			var err error
			require.NotPanics(t, func() { _, err = Run(context.Background(), cfg) })
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}
