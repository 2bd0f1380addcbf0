package move

import "fmt"

// SizeClass is one of the length ranges the router binds to a single code
// path. A boundary length belongs to the lower class: 32 is Class17To32.
type SizeClass uint8

const (
	ClassZero SizeClass = iota
	ClassOne
	Class2To3
	Class4To7
	Class8To16
	Class17To32
	Class33To64
	Class65To128
	Class129To192
	Class193To256
	ClassLarge

	numClasses = int(ClassLarge) + 1
)

// ClassOf returns the size class that serves a copy of n bytes.
func ClassOf(n uintptr) SizeClass {
	switch {
	case n > smallMax:
		return ClassLarge
	case n > 192:
		return Class193To256
	case n > 128:
		return Class129To192
	case n > 64:
		return Class65To128
	case n > 32:
		return Class33To64
	case n > 16:
		return Class17To32
	case n >= 8:
		return Class8To16
	case n >= 4:
		return Class4To7
	case n >= 2:
		return Class2To3
	case n == 1:
		return ClassOne
	default:
		return ClassZero
	}
}

// Bounds returns the inclusive length range of the class. ClassLarge reports
// a maximum of ^uintptr(0).
func (c SizeClass) Bounds() (lo, hi uintptr) {
	switch c {
	case ClassZero:
		return 0, 0
	case ClassOne:
		return 1, 1
	case Class2To3:
		return 2, 3
	case Class4To7:
		return 4, 7
	case Class8To16:
		return 8, 16
	case Class17To32:
		return 17, 32
	case Class33To64:
		return 33, 64
	case Class65To128:
		return 65, 128
	case Class129To192:
		return 129, 192
	case Class193To256:
		return 193, 256
	default:
		return smallMax + 1, ^uintptr(0)
	}
}

// String renders the class as its length range, e.g. "17-32" or "257+".
func (c SizeClass) String() string {
	if c > ClassLarge {
		return fmt.Sprintf("SizeClass(%d)", uint8(c))
	}
	lo, hi := c.Bounds()
	switch {
	case c == ClassLarge:
		return fmt.Sprintf("%d+", lo)
	case lo == hi:
		return fmt.Sprintf("%d", lo)
	default:
		return fmt.Sprintf("%d-%d", lo, hi)
	}
}

// Classes lists every size class in ascending order.
func Classes() []SizeClass {
	out := make([]SizeClass, numClasses)
	for i := range out {
		out[i] = SizeClass(i)
	}
	return out
}
