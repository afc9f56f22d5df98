// Package history tracks which tempdirs were visited and when.
//
// `t last` returns the most recent entry and the interactive picker orders
// tempdirs by recency. History is best effort: callers log failures as
// warnings and carry on.
package history

import (
	"errors"
	"os"
	"slices"
	"time"

	"github.com/raphi011/t/internal/storage"
)

// maxEntries caps the history file; the least recently used entries are evicted.
const maxEntries = 100

// Entry records visits to one tempdir path.
type Entry struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	LastAccess  time.Time `json:"last_access"`
	AccessCount int       `json:"access_count"`
}

// History is the on-disk list of visited tempdirs.
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history file. A missing or corrupted file yields an empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history atomically.
func (h *History) Save(path string) error {
	return storage.SaveJSON(path, h)
}

// FindByPath returns the entry for path, or nil.
func (h *History) FindByPath(path string) *Entry {
	for i := range h.Entries {
		if h.Entries[i].Path == path {
			return &h.Entries[i]
		}
	}
	return nil
}

// Record marks path as accessed now.
func (h *History) Record(path, name string, now time.Time) {
	if e := h.FindByPath(path); e != nil {
		e.Name = name
		e.LastAccess = now
		e.AccessCount++
		return
	}
	h.Entries = append(h.Entries, Entry{Path: path, Name: name, LastAccess: now, AccessCount: 1})
	if len(h.Entries) > maxEntries {
		h.SortByRecency()
		h.Entries = h.Entries[:maxEntries]
	}
}

// Remove drops the entry for path. Returns true if an entry was removed.
func (h *History) Remove(path string) bool {
	n := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool { return e.Path == path })
	return len(h.Entries) != n
}

// RemoveStale drops entries whose directory no longer exists and returns
// how many were removed.
func (h *History) RemoveStale() int {
	n := len(h.Entries)
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool {
		info, err := os.Stat(e.Path)
		return err != nil || !info.IsDir()
	})
	return n - len(h.Entries)
}

// SortByRecency orders entries most recent first.
func (h *History) SortByRecency() {
	slices.SortStableFunc(h.Entries, func(a, b Entry) int {
		return b.LastAccess.Compare(a.LastAccess)
	})
}

// RecordAccess loads the history at historyPath, records path and saves it.
func RecordAccess(path, name, historyPath string) error {
	h, err := Load(historyPath)
	if err != nil {
		return err
	}
	h.Record(path, name, time.Now())
	return h.Save(historyPath)
}

// MostRecent returns the most recently accessed entry whose directory still
// exists, or nil. Stale entries are dropped and the file rewritten.
func MostRecent(historyPath string) (*Entry, error) {
	h, err := Load(historyPath)
	if err != nil {
		return nil, err
	}
	if h.RemoveStale() > 0 {
		if err := h.Save(historyPath); err != nil {
			return nil, err
		}
	}
	if len(h.Entries) == 0 {
		return nil, nil
	}
	h.SortByRecency()
	e := h.Entries[0]
	return &e, nil
}
