package verify

import (
	"errors"
	"fmt"
	"time"
)

// ErrMismatch indicates at least one check failed.
var ErrMismatch = errors.New("verify: copy mismatch")

// Check names one property.
type Check string

const (
	CheckDisjoint  Check = "disjoint"
	CheckBounds    Check = "bounds"
	CheckOverlap   Check = "overlap"
	CheckSame      Check = "same"
	CheckReturn    Check = "return"
	CheckStreaming Check = "streaming"
	CheckFault     Check = "fault"
)

// Failure describes one failed case.
type Failure struct {
	Check  Check  `json:"check"`
	N      int    `json:"n"`
	DstOff int    `json:"dst_off"`
	SrcOff int    `json:"src_off"`
	Path   string `json:"path"`
	// Index is the first wrong byte relative to the checked window, or -1.
	Index  int    `json:"index"`
	Detail string `json:"detail,omitempty"`
}

func (f Failure) String() string {
	s := fmt.Sprintf("%s: n=%d dst+%d src+%d path=%s", f.Check, f.N, f.DstOff, f.SrcOff, f.Path)
	if f.Index >= 0 {
		s += fmt.Sprintf(" first mismatch at %d", f.Index)
	}
	if f.Detail != "" {
		s += ": " + f.Detail
	}
	return s
}

// Report is the outcome of Run.
type Report struct {
	Cases    int           `json:"cases"`
	ByCheck  map[Check]int `json:"by_check"`
	Failures []Failure     `json:"failures"`
	Dropped  int           `json:"dropped"`
	Elapsed  time.Duration `json:"elapsed_ns"`
}

// Err returns nil when every case passed and an error wrapping ErrMismatch
// otherwise.
func (r Report) Err() error {
	failed := len(r.Failures) + r.Dropped
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d cases failed", ErrMismatch, failed, r.Cases)
}
