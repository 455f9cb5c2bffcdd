package testutil

import (
	"testing"

	"github.com/roach88/todolor/internal/store"
)

// NewStore opens a store over a fresh temp directory.
// Locking is left on so tests exercise the same path as the CLI.
func NewStore(t testing.TB) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	return s
}

// Ptr returns a pointer to v. Handy for optional task fields.
func Ptr[T any](v T) *T {
	return &v
}
