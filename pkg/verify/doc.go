// Package verify runs the copy engine through its correctness properties and
// reports every violation it finds.
//
// # Checks
//
//   - disjoint: every length up to Config.MaxSmall between every pair of
//     byte offsets in [0, Config.AlignSpan), plus each Config.Large length at
//     a few offsets, must reproduce the source window exactly
//   - bounds: bytes next to the destination window must be left untouched
//   - overlap: overlapping windows shifted by each Config.Shifts distance,
//     in both directions, must match a read-all-then-write-all reference
//   - same: src == dst must leave the buffer unchanged
//   - return: every call must return its dst argument
//   - streaming: the streaming and ordinary bulk loops must agree byte for
//     byte
//   - fault: no access may reach the guard pages around a buffer
//
// # Usage
//
//	report, err := verify.Run(ctx, verify.Config{})
//	if err != nil {
//	    return err // cancelled, or buffers could not be mapped
//	}
//	if err := report.Err(); err != nil {
//	    for _, f := range report.Failures {
//	        fmt.Println(f)
//	    }
//	}
package verify
