package move

import (
	"fmt"
	"unsafe"
)

// Relation describes how a source range sits relative to a destination range
// of the same length.
type Relation uint8

const (
	// Disjoint ranges share no byte. Ranges that only touch at an endpoint
	// are disjoint.
	Disjoint Relation = iota
	// ForwardOverlap means src < dst and the ranges overlap. The copy has
	// to walk from high addresses to low.
	ForwardOverlap
	// BackwardOverlap means src > dst and the ranges overlap. The copy
	// walks from low addresses to high.
	BackwardOverlap
	// Same means src == dst.
	Same
)

// Relate classifies the ranges [dst, dst+n) and [src, src+n).
func Relate(dst, src unsafe.Pointer, n uintptr) Relation {
	return relate(uintptr(dst), uintptr(src), n)
}

func relate(d, s, n uintptr) Relation {
	switch {
	case d == s:
		return Same
	case s+n <= d || d+n <= s:
		return Disjoint
	case s < d:
		return ForwardOverlap
	default:
		return BackwardOverlap
	}
}

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "disjoint"
	case ForwardOverlap:
		return "forward-overlap"
	case BackwardOverlap:
		return "backward-overlap"
	case Same:
		return "same"
	default:
		return fmt.Sprintf("Relation(%d)", uint8(r))
	}
}

// Path is the terminal stage the router hands a request to.
type Path uint8

const (
	PathNoop Path = iota
	PathSmall
	PathDisjoint
	PathStreaming
	// PathForward walks low to high (BackwardOverlap).
	PathForward
	// PathBackward walks high to low (ForwardOverlap).
	PathBackward
)

func (p Path) String() string {
	switch p {
	case PathNoop:
		return "noop"
	case PathSmall:
		return "small"
	case PathDisjoint:
		return "disjoint"
	case PathStreaming:
		return "streaming"
	case PathForward:
		return "forward"
	case PathBackward:
		return "backward"
	default:
		return fmt.Sprintf("Path(%d)", uint8(p))
	}
}
