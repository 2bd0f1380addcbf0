// Package align provides power-of-two alignment arithmetic on raw addresses.
//
// All widths passed to these helpers must be powers of two; the results are
// meaningless otherwise.
package align

// Offset returns the distance from addr to the next multiple of width.
// It returns 0 when addr is already aligned.
//
// Example:
//
//	Offset(0x1000, 32) = 0
//	Offset(0x1001, 32) = 31
//	Offset(0x101f, 32) = 1
func Offset(addr, width uintptr) uintptr {
	return -addr & (width - 1)
}

// Up returns addr rounded up to the next multiple of width.
//
// Example:
//
//	Up(1, 32)  = 32
//	Up(32, 32) = 32
//	Up(33, 32) = 64
func Up(addr, width uintptr) uintptr {
	return (addr + width - 1) &^ (width - 1)
}

// Down returns addr rounded down to a multiple of width.
//
// Example:
//
//	Down(31, 32) = 0
//	Down(32, 32) = 32
//	Down(63, 32) = 32
func Down(addr, width uintptr) uintptr {
	return addr &^ (width - 1)
}

// Tail returns how far addr sits past the previous multiple of width.
func Tail(addr, width uintptr) uintptr {
	return addr & (width - 1)
}

// IsAligned reports whether addr is a multiple of width.
func IsAligned(addr, width uintptr) bool {
	return addr&(width-1) == 0
}
