package move

import "unsafe"

// chunk is a fixed-width head/tail unit for the tiny size classes.
type chunk interface {
	[2]byte | [4]byte | [8]byte | [16]byte
}

// moveEnds copies n bytes, w <= n <= 2w, as one head and one tail chunk of
// width w. Both chunks are loaded before either is stored.
func moveEnds[T chunk](dst, src unsafe.Pointer, n uintptr) {
	var zero T
	w := unsafe.Sizeof(zero)
	head := *(*T)(src)
	tail := *(*T)(unsafe.Add(src, n-w))
	*(*T)(dst) = head
	*(*T)(unsafe.Add(dst, n-w)) = tail
}

// moveSmall handles 1 <= n <= 256. Every class reads all of its source bytes
// before writing any, which makes it a correct move for aliasing ranges.
func moveSmall(dst, src unsafe.Pointer, n uintptr) {
	switch {
	case n > 192:
		head := loadBlock(src, 0)
		tail := loadBlock(src, n-blockSize)
		storeBlock(dst, 0, head)
		storeBlock(dst, n-blockSize, tail)
	case n > 128:
		head := loadBlock(src, 0)
		t0 := loadVec(src, n-2*vecSize)
		t1 := loadVec(src, n-vecSize)
		storeBlock(dst, 0, head)
		storeVec(dst, n-2*vecSize, t0)
		storeVec(dst, n-vecSize, t1)
	case n > 64:
		h0 := loadVec(src, 0)
		h1 := loadVec(src, vecSize)
		t0 := loadVec(src, n-2*vecSize)
		t1 := loadVec(src, n-vecSize)
		storeVec(dst, 0, h0)
		storeVec(dst, vecSize, h1)
		storeVec(dst, n-2*vecSize, t0)
		storeVec(dst, n-vecSize, t1)
	case n > 32:
		head := loadVec(src, 0)
		tail := loadVec(src, n-vecSize)
		storeVec(dst, 0, head)
		storeVec(dst, n-vecSize, tail)
	case n > 16:
		moveEnds[[16]byte](dst, src, n)
	case n >= 8:
		moveEnds[[8]byte](dst, src, n)
	case n >= 4:
		moveEnds[[4]byte](dst, src, n)
	case n >= 2:
		moveEnds[[2]byte](dst, src, n)
	default:
		*(*byte)(dst) = *(*byte)(src)
	}
}
