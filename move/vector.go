package move

import "unsafe"

const (
	vecSize   = 32
	blockSize = 4 * vecSize

	// smallMax is the largest length served by the small handler.
	smallMax = 256
)

// vec is one vector-width chunk. It has byte alignment, so loads and stores
// through it never assume an aligned address.
type vec [vecSize]byte

// block is four vectors, the unit of every bulk loop.
type block [4]vec

func loadVec(p unsafe.Pointer, off uintptr) vec {
	return *(*vec)(unsafe.Add(p, off))
}

func storeVec(p unsafe.Pointer, off uintptr, v vec) {
	*(*vec)(unsafe.Add(p, off)) = v
}

func loadBlock(p unsafe.Pointer, off uintptr) block {
	return block{
		loadVec(p, off),
		loadVec(p, off+vecSize),
		loadVec(p, off+2*vecSize),
		loadVec(p, off+3*vecSize),
	}
}

func storeBlock(p unsafe.Pointer, off uintptr, b block) {
	storeVec(p, off, b[0])
	storeVec(p, off+vecSize, b[1])
	storeVec(p, off+2*vecSize, b[2])
	storeVec(p, off+3*vecSize, b[3])
}
