package pagebuf

// Buffer is a page-aligned region. Close releases it; the slices returned by
// Bytes and Tail must not be used afterwards.
type Buffer struct {
	mapping []byte
	data    []byte
	guarded bool
}

// Bytes returns the usable region. Its length is the requested size rounded
// up to whole pages and its first byte is page aligned.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Tail returns the last n bytes of the usable region, so that the byte after
// the returned slice is the first byte of the trailing guard page.
func (b *Buffer) Tail(n int) []byte {
	return b.data[len(b.data)-n:]
}

// Len returns len(b.Bytes()).
func (b *Buffer) Len() int {
	return len(b.data)
}

// Guarded reports whether the region is bounded by inaccessible pages.
func (b *Buffer) Guarded() bool {
	return b.guarded
}

func pagesFor(size, pageSize int) int {
	return (size + pageSize - 1) / pageSize
}
