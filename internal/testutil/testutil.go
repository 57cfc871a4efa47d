// Package testutil provides shared test helpers for setting up a temporary
// tutorial library.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/sowilo/internal/storage"
	"github.com/starford/sowilo/internal/tutorials"
)

// TestStore creates a metadata store backed by a temporary library that is
// cleaned up with the test.
func TestStore(t *testing.T) *tutorials.Store {
	t.Helper()
	dir := t.TempDir()
	content, err := storage.NewFS(filepath.Join(dir, "tutorials"))
	if err != nil {
		t.Fatal(err)
	}
	return tutorials.NewStore(filepath.Join(dir, "data", "tutorials.json"), content)
}
