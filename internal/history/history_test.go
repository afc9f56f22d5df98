package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestRecordAccess(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")

	if err := RecordAccess("/tmp/t/scratch", "scratch", historyFile); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}
	if err := RecordAccess("/tmp/t/scratch", "scratch", historyFile); err != nil {
		t.Fatalf("RecordAccess failed: %v", err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(h.Entries))
	}
	e := h.Entries[0]
	if e.Name != "scratch" || e.AccessCount != 2 || e.LastAccess.IsZero() {
		t.Errorf("unexpected entry %+v", e)
	}
}

func TestLoad_Corrupted(t *testing.T) {
	t.Parallel()

	historyFile := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(historyFile, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	h, err := Load(historyFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(h.Entries) != 0 {
		t.Errorf("expected empty history, got %d entries", len(h.Entries))
	}
}

func TestRecord_MaxCap(t *testing.T) {
	t.Parallel()

	h := &History{}
	base := time.Now().Add(-time.Hour)
	for i := range maxEntries {
		h.Record(filepath.Join("/tmp/t", "dir", string(rune('a'+i%26)), string(rune('0'+i/26))), "x", base.Add(time.Duration(i)*time.Second))
	}
	oldest := h.Entries[0].Path

	h.Record("/tmp/t/new", "new", time.Now())

	if len(h.Entries) != maxEntries {
		t.Fatalf("expected %d entries, got %d", maxEntries, len(h.Entries))
	}
	if h.FindByPath("/tmp/t/new") == nil {
		t.Error("new entry missing after eviction")
	}
	if h.FindByPath(oldest) != nil {
		t.Errorf("oldest entry %q should have been evicted", oldest)
	}
}

func TestRemoveStaleAndRemove(t *testing.T) {
	t.Parallel()

	valid := t.TempDir()
	now := time.Now()
	h := &History{Entries: []Entry{
		{Path: valid, Name: "valid", LastAccess: now, AccessCount: 1},
		{Path: "/nonexistent/t/gone", Name: "gone", LastAccess: now, AccessCount: 1},
	}}

	if removed := h.RemoveStale(); removed != 1 {
		t.Errorf("RemoveStale() = %d, want 1", removed)
	}
	if !h.Remove(valid) {
		t.Error("Remove(valid) = false, want true")
	}
	if h.Remove(valid) {
		t.Error("second Remove(valid) = true, want false")
	}
}

func TestSortByRecency(t *testing.T) {
	t.Parallel()

	now := time.Now()
	h := &History{Entries: []Entry{
		{Path: "/a", LastAccess: now.Add(-2 * time.Hour)},
		{Path: "/b", LastAccess: now},
		{Path: "/c", LastAccess: now.Add(-time.Hour)},
	}}
	h.SortByRecency()

	var got []string
	for _, e := range h.Entries {
		got = append(got, e.Path)
	}
	if diff := cmp.Diff([]string{"/b", "/c", "/a"}, got); diff != "" {
		t.Errorf("SortByRecency() mismatch (-want +got):\n%s", diff)
	}
}

func TestMostRecent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	historyFile := filepath.Join(dir, "history.json")
	older := filepath.Join(dir, "older")
	if err := os.Mkdir(older, 0o755); err != nil {
		t.Fatal(err)
	}

	h := &History{Entries: []Entry{
		{Path: older, Name: "older", LastAccess: time.Now().Add(-time.Minute), AccessCount: 1},
		{Path: filepath.Join(dir, "removed"), Name: "removed", LastAccess: time.Now(), AccessCount: 1},
	}}
	if err := h.Save(historyFile); err != nil {
		t.Fatal(err)
	}

	e, err := MostRecent(historyFile)
	if err != nil {
		t.Fatalf("MostRecent failed: %v", err)
	}
	if e == nil || e.Path != older {
		t.Fatalf("MostRecent() = %+v, want %q (stale entry skipped)", e, older)
	}

	none, err := MostRecent(filepath.Join(dir, "missing.json"))
	if err != nil || none != nil {
		t.Errorf("MostRecent(missing) = %+v, %v; want nil, nil", none, err)
	}
}
