package verify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"
	"unsafe"

	"github.com/joshuapare/movekit/internal/pagebuf"
	"github.com/joshuapare/movekit/internal/pattern"
	"github.com/joshuapare/movekit/move"
)

const (
	poison = 0xA5
	guard  = 64
)

var largeOffsets = []int{0, 1, 7, 31}

type runner struct {
	cfg    Config
	log    *slog.Logger
	report Report
}

// Run executes every check in cfg and returns the report. The error is
// non-nil only when ctx is cancelled or a buffer cannot be allocated; check
// failures are reported through Report.Err.
func Run(ctx context.Context, cfg Config) (Report, error) {
	start := time.Now()
	cfg = cfg.withDefaults(os.Getpagesize())
	if err := cfg.validate(); err != nil {
		return Report{ByCheck: make(map[Check]int)}, err
	}
	r := &runner{
		cfg:    cfg,
		log:    cfg.Logger,
		report: Report{ByCheck: make(map[Check]int)},
	}

	phases := []struct {
		name string
		run  func(context.Context) error
	}{
		{"disjoint-small", r.disjointSmall},
		{"disjoint-large", r.disjointLarge},
		{"overlap", r.overlap},
		{"same", r.same},
		{"streaming", r.streaming},
	}
	for _, p := range phases {
		before := r.report.Cases
		err := p.run(ctx)
		r.report.Elapsed = time.Since(start)
		if err != nil {
			return r.report, fmt.Errorf("verify: %s: %w", p.name, err)
		}
		r.log.Debug("phase complete", "phase", p.name, "cases", r.report.Cases-before)
	}
	return r.report, nil
}

func (r *runner) count(c Check) {
	r.report.Cases++
	r.report.ByCheck[c]++
}

func (r *runner) fail(f Failure) {
	r.log.Warn("check failed",
		"check", string(f.Check), "n", f.N, "dst_off", f.DstOff, "src_off", f.SrcOff,
		"path", f.Path, "index", f.Index, "detail", f.Detail)
	if len(r.report.Failures) >= maxFailures {
		r.report.Dropped++
		return
	}
	r.report.Failures = append(r.report.Failures, f)
}

// guarded runs fn and records a fault failure if it touched a guard page.
func (r *runner) guarded(f Failure, fn func()) bool {
	if err := pagebuf.Catch(fn); err != nil {
		f.Check = CheckFault
		f.Index = -1
		f.Detail = err.Error()
		r.fail(f)
		return false
	}
	return true
}

func (r *runner) disjointSmall(ctx context.Context) error {
	span, maxN := r.cfg.AlignSpan, r.cfg.MaxSmall

	src, err := pagebuf.New(span + maxN)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := pagebuf.New(span + maxN + 2*guard)
	if err != nil {
		return err
	}
	defer dst.Close()

	pattern.Fill(src.Bytes(), 1)
	for n := 0; n <= maxN; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for so := 0; so < span; so++ {
			for do := guard; do < guard+span; do++ {
				r.disjointCase(dst.Bytes(), src.Bytes(), do, so, n)
			}
		}
	}
	return nil
}

func (r *runner) disjointLarge(ctx context.Context) error {
	if len(r.cfg.Large) == 0 {
		return nil
	}
	maxN := slices.Max(r.cfg.Large)

	src, err := pagebuf.New(maxN + guard)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := pagebuf.New(maxN + 3*guard)
	if err != nil {
		return err
	}
	defer dst.Close()

	pattern.Fill(src.Bytes(), 2)
	for _, n := range r.cfg.Large {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, so := range largeOffsets {
			for _, d := range largeOffsets {
				r.disjointCase(dst.Bytes(), src.Bytes(), guard+d, so, n)
			}
		}
		r.edgeCase(dst, src, n)
	}
	return nil
}

// disjointCase copies src[srcOff:srcOff+n] to dst[dstOff:] and checks the
// window, the bytes around it and the return value.
func (r *runner) disjointCase(dst, src []byte, dstOff, srcOff, n int) {
	r.count(CheckDisjoint)
	fill(dst[dstOff-guard:dstOff+n+guard], poison)

	e := r.cfg.Engine
	d, s := ptrAt(dst, dstOff), ptrAt(src, srcOff)
	f := Failure{N: n, DstOff: dstOff, SrcOff: srcOff, Path: e.Path(d, s, uintptr(n)).String(), Index: -1}

	var got unsafe.Pointer
	if !r.guarded(f, func() { got = e.Move(d, s, uintptr(n)) }) {
		return
	}
	if got != d {
		f.Check = CheckReturn
		r.fail(f)
	}
	if i := pattern.FirstDiff(dst[dstOff:dstOff+n], src[srcOff:srcOff+n]); i >= 0 {
		f.Check = CheckDisjoint
		f.Index = i
		r.fail(f)
		f.Index = -1
	}
	if !allEqual(dst[dstOff-guard:dstOff], poison) || !allEqual(dst[dstOff+n:dstOff+n+guard], poison) {
		f.Check = CheckBounds
		r.fail(f)
	}
}

// edgeCase copies between windows that end exactly at a trailing guard page,
// so any overrun faults.
func (r *runner) edgeCase(dst, src *pagebuf.Buffer, n int) {
	r.count(CheckFault)
	sw, dw := src.Tail(n), dst.Tail(n)
	e := r.cfg.Engine
	d, s := ptrAt(dw, 0), ptrAt(sw, 0)
	f := Failure{
		N:      n,
		DstOff: dst.Len() - n,
		SrcOff: src.Len() - n,
		Path:   e.Path(d, s, uintptr(n)).String(),
		Index:  -1,
	}
	if !r.guarded(f, func() { e.Move(d, s, uintptr(n)) }) {
		return
	}
	if i := pattern.FirstDiff(dw, sw); i >= 0 {
		f.Check = CheckDisjoint
		f.Index = i
		r.fail(f)
	}
}

func (r *runner) overlap(ctx context.Context) error {
	if len(r.cfg.Shifts) == 0 {
		return nil
	}
	lengths := make([]int, 0, r.cfg.MaxSmall+len(r.cfg.Large))
	for n := 1; n <= r.cfg.MaxSmall; n++ {
		lengths = append(lengths, n)
	}
	lengths = append(lengths, r.cfg.Large...)
	bases := []int{0, 1, 31}

	size := slices.Max(lengths) + slices.Max(r.cfg.Shifts) + guard
	buf, err := pagebuf.New(size)
	if err != nil {
		return err
	}
	defer buf.Close()
	b := buf.Bytes()
	want := make([]byte, len(b))

	e := r.cfg.Engine
	for _, n := range lengths {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, shift := range r.cfg.Shifts {
			for _, base := range bases {
				for _, right := range []bool{true, false} {
					r.count(CheckOverlap)
					total := base + n + shift
					dstOff, srcOff := base, base+shift
					if right {
						dstOff, srcOff = srcOff, dstOff
					}

					pattern.Fill(b[:total], byte(n^shift))
					copy(want[:total], b[:total])
					pattern.ReferenceMove(want, dstOff, srcOff, n)

					d, s := ptrAt(b, dstOff), ptrAt(b, srcOff)
					f := Failure{N: n, DstOff: dstOff, SrcOff: srcOff, Path: e.Path(d, s, uintptr(n)).String(), Index: -1}

					var got unsafe.Pointer
					if !r.guarded(f, func() { got = e.Move(d, s, uintptr(n)) }) {
						continue
					}
					if got != d {
						f.Check = CheckReturn
						r.fail(f)
					}
					if i := pattern.FirstDiff(b[:total], want[:total]); i >= 0 {
						f.Check = CheckOverlap
						f.Index = i
						r.fail(f)
					}
				}
			}
		}
	}
	return nil
}

func (r *runner) same(ctx context.Context) error {
	lengths := append([]int{0, 1, r.cfg.MaxSmall}, r.cfg.Large...)

	buf, err := pagebuf.New(slices.Max(lengths) + guard)
	if err != nil {
		return err
	}
	defer buf.Close()
	b := buf.Bytes()
	want := make([]byte, len(b))

	e := r.cfg.Engine
	for _, n := range lengths {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, off := range []int{0, 3} {
			r.count(CheckSame)
			pattern.Fill(b, byte(n))
			copy(want, b)

			p := ptrAt(b, off)
			f := Failure{N: n, DstOff: off, SrcOff: off, Path: e.Path(p, p, uintptr(n)).String(), Index: -1}
			var got unsafe.Pointer
			if !r.guarded(f, func() { got = e.Move(p, p, uintptr(n)) }) {
				continue
			}
			if got != p {
				f.Check = CheckReturn
				r.fail(f)
			}
			if i := pattern.FirstDiff(b, want); i >= 0 {
				f.Check = CheckSame
				f.Index = i
				r.fail(f)
			}
		}
	}
	return nil
}

// streaming compares the streaming bulk loop against the ordinary one, checks
// the configured engine against both, and checks that a misaligned source
// never selects streaming.
func (r *runner) streaming(ctx context.Context) error {
	var lengths []int
	for _, n := range r.cfg.Large {
		if n > 256 {
			lengths = append(lengths, n)
		}
	}
	if len(lengths) == 0 {
		return nil
	}
	size := slices.Max(lengths) + 2*guard

	src, err := pagebuf.New(size)
	if err != nil {
		return err
	}
	defer src.Close()
	a, err := pagebuf.New(size)
	if err != nil {
		return err
	}
	defer a.Close()
	b, err := pagebuf.New(size)
	if err != nil {
		return err
	}
	defer b.Close()

	pattern.Fill(src.Bytes(), 3)
	streamer := move.Engine{StreamThreshold: 257}
	ordinary := move.Engine{StreamThreshold: move.NoStreaming}

	for _, n := range lengths {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, off := range []int{0, 5, 32} {
			r.count(CheckStreaming)
			sb, ab, bb := src.Bytes(), a.Bytes(), b.Bytes()
			s := ptrAt(sb, off)
			p := streamer.Path(ptrAt(ab, off), s, uintptr(n))
			f := Failure{N: n, DstOff: off, SrcOff: off, Path: p.String(), Index: -1}

			if p != move.PathStreaming {
				f.Check = CheckStreaming
				f.Detail = "aligned source did not select streaming"
				r.fail(f)
				continue
			}

			fill(ab[:off+n+guard], poison)
			fill(bb[:off+n+guard], poison)
			if !r.guarded(f, func() {
				streamer.Move(ptrAt(ab, off), s, uintptr(n))
				ordinary.Move(ptrAt(bb, off), s, uintptr(n))
			}) {
				continue
			}
			if i := pattern.FirstDiff(ab[:off+n+guard], bb[:off+n+guard]); i >= 0 {
				f.Check = CheckStreaming
				f.Index = i
				f.Detail = "streaming and ordinary results differ"
				r.fail(f)
				continue
			}

			// The engine under test must agree with the pair.
			fill(ab[:off+n+guard], poison)
			f.Path = r.cfg.Engine.Path(ptrAt(ab, off), s, uintptr(n)).String()
			if !r.guarded(f, func() { r.cfg.Engine.Move(ptrAt(ab, off), s, uintptr(n)) }) {
				continue
			}
			if i := pattern.FirstDiff(ab[:off+n+guard], bb[:off+n+guard]); i >= 0 {
				f.Check = CheckStreaming
				f.Index = i
				f.Detail = "engine differs from the streaming and ordinary loops"
				r.fail(f)
			}
		}

		r.count(CheckStreaming)
		d, s := ptrAt(a.Bytes(), 0), ptrAt(src.Bytes(), 1)
		if p := r.cfg.Engine.Path(d, s, uintptr(n)); p == move.PathStreaming {
			r.fail(Failure{
				Check: CheckStreaming, N: n, DstOff: 0, SrcOff: 1, Path: p.String(), Index: -1,
				Detail: "misaligned source selected streaming",
			})
		}
	}
	return nil
}

func ptrAt(b []byte, off int) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), off)
}

func fill(b []byte, c byte) {
	for i := range b {
		b[i] = c
	}
}

func allEqual(b []byte, c byte) bool {
	for _, x := range b {
		if x != c {
			return false
		}
	}
	return true
}
