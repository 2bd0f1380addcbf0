//go:build !amd64 || purego

package move

import "unsafe"

// streamBlocks falls back to ordinary stores, which need no fence.
func streamBlocks(dst, src unsafe.Pointer, blocks uintptr) {
	for off := uintptr(0); blocks > 0; blocks-- {
		storeBlock(dst, off, loadBlock(src, off))
		off += blockSize
	}
}
