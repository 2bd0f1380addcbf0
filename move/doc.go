// Package move implements a byte-range copy engine that satisfies both the
// strict copy contract and the overlap-tolerant move contract with one body.
//
// # Overview
//
// Copy and Move are the same routine. Disjoint ranges are copied the way a
// tuned memcpy would copy them; aliasing ranges produce the same bytes as if
// every source byte had been read before any destination byte was written.
// Callers that use Copy where they meant Move therefore keep working.
//
//	buf := make([]byte, 1000)
//	base := unsafe.Pointer(&buf[0])
//
//	// Shift the first 990 bytes right by 10.
//	move.Move(unsafe.Add(base, 10), base, 990)
//
// # Dispatch
//
// Every call is routed in a fixed number of comparisons:
//
//	n == 0 or dst == src   no-op
//	n <= 256               small handler (one path per size class)
//	n >  256, disjoint     aligned bulk copy, optionally streaming
//	n >  256, src < dst    bulk copy walking high to low
//	n >  256, src > dst    bulk copy walking low to high
//
// Size classes are 0, 1, 2-3, 4-7, 8-16, 17-32, 33-64, 65-128, 129-192,
// 193-256 and 257+. Each small class loads a head chunk and a tail chunk of a
// fixed width (the chunks may overlap) and stores them only after both are
// held in locals, so small copies are overlap-safe without a direction test.
//
// # Large copies
//
// Large copies work on 32-byte vectors, four to a 128-byte block. The first
// and last block of the source are captured before the bulk loop runs, the
// loop stores to a 32-byte aligned destination, and the captured edges are
// written after it. Loads are never assumed aligned.
//
// Disjoint copies of at least Engine.StreamThreshold bytes (32 KiB by default)
// whose source lines up with the aligned destination use non-temporal stores
// followed by a store fence on amd64. Everywhere else, and under the purego
// build tag, the ordinary loop runs instead.
//
// # Preconditions
//
// Nothing is validated. Both ranges must be valid for n bytes. The engine
// moves raw bytes without write barriers, so the memory must not contain
// pointers the garbage collector tracks.
//
// # Thread Safety
//
// The engine holds no state and allocates nothing. Concurrent calls are safe
// under the ordinary data race rules.
package move
