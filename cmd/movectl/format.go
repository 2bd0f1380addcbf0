package main

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// numbers formats counts with digit grouping.
var numbers = message.NewPrinter(language.English)

// formatBytes renders n as grouped bytes with a binary-unit hint for large
// values, e.g. "1,048,576 B (1.0 MiB)".
func formatBytes[T int | uint64](n T) string {
	s := numbers.Sprintf("%d B", n)
	switch {
	case n >= 1<<30:
		s += numbers.Sprintf(" (%.1f GiB)", float64(n)/(1<<30))
	case n >= 1<<20:
		s += numbers.Sprintf(" (%.1f MiB)", float64(n)/(1<<20))
	case n >= 1<<10:
		s += numbers.Sprintf(" (%.1f KiB)", float64(n)/(1<<10))
	}
	return s
}

// formatRate renders bytes per second in MB/s with grouping.
func formatRate(bps float64) string {
	return numbers.Sprintf("%.1f MB/s", bps/1e6)
}

// formatCount renders n with digit grouping.
func formatCount(n int) string {
	return numbers.Sprintf("%d", n)
}
