// Package pattern generates recognizable byte sequences and the reference
// results copy routines are checked against.
package pattern

// Fill writes a deterministic pseudo-random sequence derived from seed into b.
// The sequence has no short period, so a window shifted by any small distance
// does not compare equal to the original.
func Fill(b []byte, seed byte) {
	x := uint32(seed)*2654435761 + 1
	for i := range b {
		x = x*1664525 + 1013904223
		b[i] = byte(x >> 24)
	}
}

// ReferenceMove moves n bytes inside buf from srcOff to dstOff by reading all
// of them into scratch space before writing any. It is the behavior every
// move must reproduce.
func ReferenceMove(buf []byte, dstOff, srcOff, n int) {
	scratch := make([]byte, n)
	for i := range scratch {
		scratch[i] = buf[srcOff+i]
	}
	for i, c := range scratch {
		buf[dstOff+i] = c
	}
}

// FirstDiff returns the first index at which a and b differ, or -1 if they
// are equal. A length mismatch counts as a difference at the shorter length.
func FirstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
