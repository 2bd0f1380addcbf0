package move

import (
	"unsafe"

	"github.com/joshuapare/movekit/internal/align"
)

// copyDisjoint handles n > 256 for ranges that do not overlap (touching at an
// endpoint is allowed).
//
// The first block is stored as soon as it is loaded. The last block is held
// until the bulk loop is done and then stored unaligned at n-128, covering
// whatever the loop left behind.
func copyDisjoint(dst, src unsafe.Pointer, n uintptr, stream bool) {
	head := loadBlock(src, 0)
	tail := loadBlock(src, n-blockSize)
	storeBlock(dst, 0, head)

	// The head already covers [0, off), so the loop starts on the first
	// vector boundary of dst.
	off := align.Offset(uintptr(dst), vecSize)

	if stream {
		blocks := (n - off) / blockSize
		streamBlocks(unsafe.Add(dst, off), unsafe.Add(src, off), blocks)
		off += blocks * blockSize
	}

	for ; n-off >= blockSize; off += blockSize {
		storeBlock(dst, off, loadBlock(src, off))
	}

	storeBlock(dst, n-blockSize, tail)
}
