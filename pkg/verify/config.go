package verify

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/movekit/move"
)

// ErrConfig indicates a Config value Run cannot sweep.
var ErrConfig = errors.New("verify: invalid config")

const (
	// DefaultMaxSmall covers the small handler and the first large lengths.
	DefaultMaxSmall = 260

	// DefaultAlignSpan covers every residue modulo the vector and cache line
	// widths.
	DefaultAlignSpan = 64

	// maxFailures caps how many failures a report keeps.
	maxFailures = 100
)

// DefaultLarge returns the large lengths checked when Config.Large is nil.
func DefaultLarge() []int {
	return []int{257, 300, 511, 512, 1000, 4095, 4096, 32767, 32768, 32769, 65536 + 77, 1<<20 + 13}
}

// DefaultShifts returns the overlap distances checked when Config.Shifts is
// nil.
func DefaultShifts() []int {
	return []int{1, 2, 7, 8, 15, 16, 31, 32, 33, 64, 127, 128, 129, 255, 256, 257, 1000}
}

// Mover is the engine surface Run exercises. move.Engine implements it.
type Mover interface {
	Move(dst, src unsafe.Pointer, n uintptr) unsafe.Pointer
	Path(dst, src unsafe.Pointer, n uintptr) move.Path
}

// Config selects what Run checks. The zero value runs the default sweep
// against the default engine.
type Config struct {
	// MaxSmall is the largest length swept at every alignment pair.
	MaxSmall int

	// AlignSpan is the number of byte offsets tried for each pointer in the
	// small sweep. Values above the page size are clamped to it.
	AlignSpan int

	// Large lists additional lengths checked disjoint and overlapping.
	Large []int

	// Shifts lists the distances between overlapping windows.
	Shifts []int

	// Engine is the engine under test. Nil means move.Engine{}. The
	// streaming check also runs its own streaming and non-streaming
	// move.Engine pair to compare the two bulk loops, and checks Engine
	// against their result.
	Engine Mover

	// Logger receives progress at Debug and failures at Warn. Nil discards.
	Logger *slog.Logger
}

func (c Config) withDefaults(pageSize int) Config {
	if c.MaxSmall <= 0 {
		c.MaxSmall = DefaultMaxSmall
	}
	if c.AlignSpan <= 0 {
		c.AlignSpan = DefaultAlignSpan
	}
	if c.AlignSpan > pageSize {
		c.AlignSpan = pageSize
	}
	if c.Large == nil {
		c.Large = DefaultLarge()
	}
	if c.Shifts == nil {
		c.Shifts = DefaultShifts()
	}
	if c.Engine == nil {
		c.Engine = move.Engine{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// validate rejects lengths and shifts that cannot address a window.
func (c Config) validate() error {
	for _, n := range c.Large {
		if n < 0 {
			return fmt.Errorf("%w: large length %d is negative", ErrConfig, n)
		}
	}
	for _, shift := range c.Shifts {
		if shift < 0 {
			return fmt.Errorf("%w: shift %d is negative", ErrConfig, shift)
		}
	}
	return nil
}
