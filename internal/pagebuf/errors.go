package pagebuf

import (
	"errors"
	"fmt"
)

var (
	// ErrSize indicates a non-positive buffer size.
	ErrSize = errors.New("pagebuf: size must be positive")

	// ErrMap indicates the anonymous mapping could not be created.
	ErrMap = errors.New("pagebuf: mmap failed")

	// ErrProtect indicates a guard page could not be made inaccessible.
	ErrProtect = errors.New("pagebuf: mprotect failed")
)

// FaultError reports a memory fault caught by Catch.
type FaultError struct {
	// Addr is the faulting address as reported by the runtime.
	Addr uintptr
	Err  error
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("pagebuf: memory fault at %#x: %v", e.Addr, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}
