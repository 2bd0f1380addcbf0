package move

import (
	"unsafe"

	"github.com/joshuapare/movekit/internal/align"
)

// Both walkers capture the first and last source block before touching the
// destination and store them after the bulk loop. Inside the loop each block
// is fully loaded before it is stored, so a block never reads bytes its own
// store (or an earlier one) has replaced.

// moveForward walks low to high. It is only correct when src > dst.
func moveForward(dst, src unsafe.Pointer, n uintptr) {
	head := loadBlock(src, 0)
	tail := loadBlock(src, n-blockSize)

	off := align.Offset(uintptr(dst), vecSize)
	for ; n-off >= blockSize; off += blockSize {
		storeBlock(dst, off, loadBlock(src, off))
	}

	storeBlock(dst, n-blockSize, tail)
	storeBlock(dst, 0, head)
}

// moveBackward walks high to low. It is only correct when src < dst.
func moveBackward(dst, src unsafe.Pointer, n uintptr) {
	head := loadBlock(src, 0)
	tail := loadBlock(src, n-blockSize)

	// dst+end is the last vector boundary at or below dst+n.
	end := n - align.Tail(uintptr(dst)+n, vecSize)
	for ; end >= blockSize; end -= blockSize {
		storeBlock(dst, end-blockSize, loadBlock(src, end-blockSize))
	}

	storeBlock(dst, 0, head)
	storeBlock(dst, n-blockSize, tail)
}
