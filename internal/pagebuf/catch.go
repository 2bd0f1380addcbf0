package pagebuf

import "runtime/debug"

// Catch runs fn with panic-on-fault enabled for the calling goroutine. A
// memory fault inside fn is returned as a *FaultError; any other panic is
// re-raised.
func Catch(fn func()) (err error) {
	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if fault, ok := r.(interface {
			error
			Addr() uintptr
		}); ok {
			err = &FaultError{Addr: fault.Addr(), Err: fault}
			return
		}
		panic(r)
	}()

	fn()
	return nil
}
