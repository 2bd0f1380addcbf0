package move

import (
	"unsafe"
)

// ptr returns the address of b[off] without a bounds check, so off may equal
// len(b).
func ptr(b []byte, off int) unsafe.Pointer {
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
