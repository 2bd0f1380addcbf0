package move

import (
	"unsafe"

	"github.com/joshuapare/movekit/internal/align"
)

const (
	// DefaultStreamThreshold is the length at which disjoint copies switch to
	// streaming stores when no Engine threshold is set. The value suits a
	// last-level cache in the low megabytes; tune it per machine through
	// Engine.StreamThreshold.
	DefaultStreamThreshold uintptr = 32 << 10

	// NoStreaming as an Engine threshold disables the streaming path.
	NoStreaming = ^uintptr(0)
)

// Engine is a copy engine with a tunable streaming threshold. The zero value
// uses DefaultStreamThreshold. Engine is a plain value and carries no state
// between calls.
type Engine struct {
	// StreamThreshold is the minimum length for streaming stores. Zero
	// means DefaultStreamThreshold.
	StreamThreshold uintptr
}

// Copy copies n bytes from src to dst and returns dst. It is the same routine
// as Move, so overlapping ranges are handled as a move.
func Copy(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	return Engine{}.move(dst, src, n)
}

// Move copies n bytes from src to dst, tolerating any overlap, and returns
// dst.
func Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	return Engine{}.move(dst, src, n)
}

// MoveBytes moves min(len(dst), len(src)) bytes from src to dst and returns
// the count, like the builtin copy.
func MoveBytes(dst, src []byte) int {
	return Engine{}.MoveBytes(dst, src)
}

// Copy is the strict-copy entry point of e. See the package Copy.
func (e Engine) Copy(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	return e.move(dst, src, n)
}

// Move is the move entry point of e. See the package Move.
func (e Engine) Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	return e.move(dst, src, n)
}

// MoveBytes is the slice form of e.Move.
func (e Engine) MoveBytes(dst, src []byte) int {
	n := min(len(dst), len(src))
	if n == 0 {
		return 0
	}
	e.move(unsafe.Pointer(unsafe.SliceData(dst)), unsafe.Pointer(unsafe.SliceData(src)), uintptr(n))
	return n
}

// Path reports which stage e would run for the request without touching
// memory.
func (e Engine) Path(dst, src unsafe.Pointer, n uintptr) Path {
	return e.route(uintptr(dst), uintptr(src), n)
}

func (e Engine) threshold() uintptr {
	if e.StreamThreshold == 0 {
		return DefaultStreamThreshold
	}
	return e.StreamThreshold
}

func (e Engine) route(d, s, n uintptr) Path {
	if n == 0 || d == s {
		return PathNoop
	}
	if n <= smallMax {
		return PathSmall
	}
	switch relate(d, s, n) {
	case Disjoint:
		// Streaming loads need src aligned where the bulk loop starts,
		// which is the first vector boundary of dst.
		if n >= e.threshold() && align.IsAligned(s+align.Offset(d, vecSize), vecSize) {
			return PathStreaming
		}
		return PathDisjoint
	case ForwardOverlap:
		return PathBackward
	default:
		return PathForward
	}
}

func (e Engine) move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer {
	switch e.route(uintptr(dst), uintptr(src), n) {
	case PathSmall:
		moveSmall(dst, src, n)
	case PathDisjoint:
		copyDisjoint(dst, src, n, false)
	case PathStreaming:
		copyDisjoint(dst, src, n, true)
	case PathForward:
		moveForward(dst, src, n)
	case PathBackward:
		moveBackward(dst, src, n)
	}
	return dst
}
