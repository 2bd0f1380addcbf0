// Package bench measures copy engine throughput per length against the
// builtin copy.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"github.com/joshuapare/movekit/internal/pagebuf"
	"github.com/joshuapare/movekit/internal/pattern"
	"github.com/joshuapare/movekit/move"
)

var (
	// ErrNoSizes indicates Options.Sizes was empty.
	ErrNoSizes = errors.New("bench: no sizes given")

	// ErrBadSize indicates a non-positive size.
	ErrBadSize = errors.New("bench: size must be positive")

	// ErrBadAlign indicates a negative SrcAlign or DstAlign.
	ErrBadAlign = errors.New("bench: alignment offset must not be negative")
)

// DefaultMinDuration is how long each measurement runs when
// Options.MinDuration is zero.
const DefaultMinDuration = 100 * time.Millisecond

// Options configures Run.
type Options struct {
	// Sizes lists the copy lengths to measure.
	Sizes []int

	// Shift selects overlapping windows in one buffer: dst = src + Shift.
	// Zero measures disjoint buffers.
	Shift int

	// SrcAlign and DstAlign offset each window from a page boundary. With a
	// Shift, the window at the lower address sits at its own offset and the
	// other follows Shift bytes away, so only the lower window's offset
	// applies.
	SrcAlign int
	DstAlign int

	// MinDuration is the minimum measured time per size and contender.
	MinDuration time.Duration

	Engine move.Engine

	// Logger receives one Debug record per size. Nil discards.
	Logger *slog.Logger
}

// Result is one size's measurement.
type Result struct {
	Size                int           `json:"size"`
	Class               string        `json:"class"`
	Path                string        `json:"path"`
	Iterations          int           `json:"iterations"`
	Elapsed             time.Duration `json:"elapsed_ns"`
	BytesPerSec         float64       `json:"bytes_per_sec"`
	BaselineBytesPerSec float64       `json:"baseline_bytes_per_sec"`
}

// Ratio returns engine throughput over builtin copy throughput.
func (r Result) Ratio() float64 {
	if r.BaselineBytesPerSec == 0 {
		return 0
	}
	return r.BytesPerSec / r.BaselineBytesPerSec
}

// Run measures every size in opts.Sizes in order. It stops early with
// ctx.Err() when ctx is cancelled.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if len(opts.Sizes) == 0 {
		return nil, ErrNoSizes
	}
	if opts.SrcAlign < 0 || opts.DstAlign < 0 {
		return nil, fmt.Errorf("%w: src %d dst %d", ErrBadAlign, opts.SrcAlign, opts.DstAlign)
	}
	if opts.MinDuration <= 0 {
		opts.MinDuration = DefaultMinDuration
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, 0, len(opts.Sizes))
	for _, n := range opts.Sizes {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if n <= 0 {
			return results, fmt.Errorf("%w: %d", ErrBadSize, n)
		}
		res, err := runSize(ctx, opts, n)
		if err != nil {
			return results, fmt.Errorf("bench: size %d: %w", n, err)
		}
		log.Debug("measured", "size", n, "path", res.Path, "bytes_per_sec", res.BytesPerSec, "ratio", res.Ratio())
		results = append(results, res)
	}
	return results, nil
}

func runSize(ctx context.Context, opts Options, n int) (Result, error) {
	dst, src, release, err := windows(opts, n)
	if err != nil {
		return Result{}, err
	}
	defer release()

	d := unsafe.Pointer(unsafe.SliceData(dst))
	s := unsafe.Pointer(unsafe.SliceData(src))
	size := uintptr(n)
	e := opts.Engine

	iters, elapsed, err := measure(ctx, opts.MinDuration, func() { e.Move(d, s, size) })
	if err != nil {
		return Result{}, err
	}
	baseIters, baseElapsed, err := measure(ctx, opts.MinDuration, func() { copy(dst, src) })
	if err != nil {
		return Result{}, err
	}

	return Result{
		Size:                n,
		Class:               move.ClassOf(size).String(),
		Path:                e.Path(d, s, size).String(),
		Iterations:          iters,
		Elapsed:             elapsed,
		BytesPerSec:         throughput(n, iters, elapsed),
		BaselineBytesPerSec: throughput(n, baseIters, baseElapsed),
	}, nil
}

// windows returns the dst and src windows for n bytes and a release func.
func windows(opts Options, n int) (dst, src []byte, release func(), err error) {
	if opts.Shift != 0 {
		shift := opts.Shift
		if shift < 0 {
			shift = -shift
		}
		// dst = src + Shift: src is the lower window for a positive shift.
		srcOff, dstOff := opts.SrcAlign, opts.SrcAlign+shift
		if opts.Shift < 0 {
			dstOff, srcOff = opts.DstAlign, opts.DstAlign+shift
		}
		buf, err := pagebuf.New(max(srcOff, dstOff) + n)
		if err != nil {
			return nil, nil, nil, err
		}
		b := buf.Bytes()
		pattern.Fill(b, 1)
		return b[dstOff : dstOff+n], b[srcOff : srcOff+n], func() { buf.Close() }, nil
	}

	sb, err := pagebuf.New(opts.SrcAlign + n)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := pagebuf.New(opts.DstAlign + n)
	if err != nil {
		sb.Close()
		return nil, nil, nil, err
	}
	pattern.Fill(sb.Bytes(), 1)
	release = func() {
		sb.Close()
		db.Close()
	}
	return db.Bytes()[opts.DstAlign : opts.DstAlign+n], sb.Bytes()[opts.SrcAlign : opts.SrcAlign+n], release, nil
}

// measure runs fn in doubling batches until at least minDur has elapsed.
func measure(ctx context.Context, minDur time.Duration, fn func()) (int, time.Duration, error) {
	total := 0
	var elapsed time.Duration
	for batch := 1; elapsed < minDur; batch *= 2 {
		if err := ctx.Err(); err != nil {
			return total, elapsed, err
		}
		start := time.Now()
		for range batch {
			fn()
		}
		elapsed += time.Since(start)
		total += batch
	}
	return total, elapsed, nil
}

func throughput(n, iters int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) * float64(iters) / elapsed.Seconds()
}
