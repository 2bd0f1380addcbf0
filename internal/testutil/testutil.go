// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/movekit/internal/pagebuf"
	"github.com/joshuapare/movekit/internal/pattern"
)

// Guarded returns a page-aligned region of at least size bytes bounded by
// guard pages where the platform supports them. The region is released when
// the test finishes.
//
// Example:
//
//	buf := testutil.Guarded(t, 8192)
//	dst := buf[len(buf)-n:] // last byte abuts the trailing guard
func Guarded(t testing.TB, size int) []byte {
	t.Helper()
	b, err := pagebuf.New(size)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, b.Close())
	})
	return b.Bytes()
}

// Filled is Guarded with the region filled by pattern.Fill(seed).
func Filled(t testing.TB, size int, seed byte) []byte {
	t.Helper()
	buf := Guarded(t, size)
	pattern.Fill(buf, seed)
	return buf
}

// NoFault runs fn and fails the test if it touches an inaccessible page.
func NoFault(t testing.TB, fn func()) {
	t.Helper()
	require.NoError(t, pagebuf.Catch(fn))
}
