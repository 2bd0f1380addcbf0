// Package pagebuf allocates page-aligned byte regions fenced by inaccessible
// guard pages, and runs code with memory faults turned into errors.
//
// On Linux, macOS and the BSDs a Buffer is an anonymous mapping laid out as
//
//	[guard page][usable pages ...][guard page]
//
// so any access one byte before Bytes() or one byte past its end faults.
// Catch converts such a fault into a *FaultError instead of crashing the
// process. Other platforms get an aligned heap slice with no guards; Guarded
// reports which one was produced.
package pagebuf
