//go:build amd64 && !purego

package move

import "unsafe"

// streamBlocks copies blocks*128 bytes using non-temporal stores and issues
// SFENCE before returning, so the streamed bytes are visible to any ordinary
// access that follows. dst and src must both be 16-byte aligned.
//
//go:noescape
func streamBlocks(dst, src unsafe.Pointer, blocks uintptr)
