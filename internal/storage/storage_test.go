package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sample struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	in := sample{Name: "scratch", Items: []string{"a", "b"}}

	if err := SaveJSON(path, in); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}

	var out sample
	if err := LoadJSON(path, &out); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the state file to remain, got %d entries", len(entries))
	}
}

func TestLoadJSON_Missing(t *testing.T) {
	t.Parallel()

	var out sample
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadJSON() error = %v, want os.ErrNotExist", err)
	}
}
