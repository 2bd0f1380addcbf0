//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package pagebuf

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/movekit/internal/align"
)

// New returns a page-aligned heap region of at least size bytes. There are
// no guard pages on this platform.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	ps := os.Getpagesize()
	usable := pagesFor(size, ps) * ps

	raw := make([]byte, usable+ps)
	off := int(align.Offset(uintptr(unsafe.Pointer(&raw[0])), uintptr(ps)))
	return &Buffer{
		mapping: raw,
		data:    raw[off : off+usable : off+usable],
	}, nil
}

// Close drops the buffer. Calling it again is a no-op.
func (b *Buffer) Close() error {
	b.mapping, b.data = nil, nil
	return nil
}
