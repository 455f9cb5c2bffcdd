package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/todolor/internal/cipher"
)

// createTestStore creates a store over a fresh temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

// writeRawFile writes plain (unencoded) content for typ, encoding it the
// way the store does.
func writeRawFile(t *testing.T, s *Store, typ string, plain []byte) {
	t.Helper()
	path := filepath.Join(s.Dir(), typ)
	if err := os.WriteFile(path, cipher.Encode(plain), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// readRawFile returns the decoded content of typ's file.
func readRawFile(t *testing.T, s *Store, typ string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(s.Dir(), typ))
	if err != nil {
		t.Fatalf("read %s: %v", typ, err)
	}
	return cipher.Decode(data)
}

// mustJSON renders v as JSON for order-insensitive comparisons.
func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	return string(data)
}
