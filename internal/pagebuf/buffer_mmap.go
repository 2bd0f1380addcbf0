//go:build linux || darwin || freebsd || netbsd || openbsd

package pagebuf

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// New maps at least size bytes of zeroed memory between two guard pages.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSize, size)
	}
	ps := unix.Getpagesize()
	usable := pagesFor(size, ps) * ps

	mapping, err := unix.Mmap(-1, 0, usable+2*ps, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMap, err)
	}
	if err := unix.Mprotect(mapping[:ps], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, fmt.Errorf("%w: leading guard: %w", ErrProtect, err)
	}
	if err := unix.Mprotect(mapping[ps+usable:], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mapping)
		return nil, fmt.Errorf("%w: trailing guard: %w", ErrProtect, err)
	}

	return &Buffer{
		mapping: mapping,
		data:    mapping[ps : ps+usable : ps+usable],
		guarded: true,
	}, nil
}

// Close unmaps the buffer. Calling it again is a no-op.
func (b *Buffer) Close() error {
	if b.mapping == nil {
		return nil
	}
	err := unix.Munmap(b.mapping)
	b.mapping, b.data = nil, nil
	if errors.Is(err, unix.EINVAL) {
		// Already gone.
		return nil
	}
	return err
}
