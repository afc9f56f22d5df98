package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeAt(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Run("xdg wins", func(t *testing.T) {
		t.Setenv("XDG_DOWNLOAD_DIR", "/xdg/downloads")
		got, err := ResolveDir("/configured")
		if err != nil || got != "/xdg/downloads" {
			t.Errorf("ResolveDir() = %q, %v", got, err)
		}
	})

	t.Run("configured", func(t *testing.T) {
		t.Setenv("XDG_DOWNLOAD_DIR", "")
		got, err := ResolveDir("/configured")
		if err != nil || got != "/configured" {
			t.Errorf("ResolveDir() = %q, %v", got, err)
		}
	})

	t.Run("falls back to ~/dl", func(t *testing.T) {
		t.Setenv("XDG_DOWNLOAD_DIR", "")
		got, err := ResolveDir("")
		if err != nil || got != filepath.Join(home, "dl") {
			t.Errorf("ResolveDir() = %q, %v", got, err)
		}
	})

	t.Run("prefers ~/Downloads when present", func(t *testing.T) {
		t.Setenv("XDG_DOWNLOAD_DIR", "")
		if err := os.Mkdir(filepath.Join(home, "Downloads"), 0o755); err != nil {
			t.Fatal(err)
		}
		got, err := ResolveDir("")
		if err != nil || got != filepath.Join(home, "Downloads") {
			t.Errorf("ResolveDir() = %q, %v", got, err)
		}
	})
}

func TestNewest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	now := time.Now()
	writeAt(t, filepath.Join(dir, "old.txt"), now.Add(-2*time.Hour))
	writeAt(t, filepath.Join(dir, "new.pdf"), now.Add(-time.Minute))
	writeAt(t, filepath.Join(dir, "middle.zip"), now.Add(-time.Hour))
	// directories are ignored even when newer
	if err := os.Mkdir(filepath.Join(dir, "folder"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Newest(context.Background(), dir)
	if err != nil {
		t.Fatalf("Newest() error = %v", err)
	}
	if want := filepath.Join(dir, "new.pdf"); got != want {
		t.Errorf("Newest() = %q, want %q", got, want)
	}
}

func TestNewest_Empty(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "only-a-dir"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Newest(context.Background(), dir); !errors.Is(err, ErrNoDownloads) {
		t.Errorf("Newest() error = %v, want ErrNoDownloads", err)
	}
	if _, err := Newest(context.Background(), filepath.Join(dir, "missing")); err == nil || errors.Is(err, ErrNoDownloads) {
		t.Errorf("Newest(missing) error = %v, want read error", err)
	}
}

func TestImport(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := t.TempDir()
	dst := t.TempDir()
	file := filepath.Join(src, "report.pdf")
	writeAt(t, file, time.Now())

	got, err := Import(ctx, file, dst, false)
	if err != nil {
		t.Fatalf("Import(copy) error = %v", err)
	}
	if got != filepath.Join(dst, "report.pdf") {
		t.Errorf("Import() = %q", got)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("copy should keep the original: %v", err)
	}

	again, err := Import(ctx, file, dst, false)
	if err != nil {
		t.Fatalf("importing the same file again: %v", err)
	}
	if again != got {
		t.Errorf("second Import() = %q, want the existing %q", again, got)
	}
	if _, err := os.Stat(filepath.Join(dst, "report-1.pdf")); !os.IsNotExist(err) {
		t.Errorf("identical re-import must not duplicate, stat err = %v", err)
	}

	// a different file with the same name gets a fresh name
	writeAt(t, file, time.Now().Add(time.Minute))
	renamed, err := Import(ctx, file, dst, false)
	if err != nil {
		t.Fatalf("Import() of a changed file: %v", err)
	}
	if renamed != filepath.Join(dst, "report-1.pdf") {
		t.Errorf("Import() of a changed file = %q, want report-1.pdf", renamed)
	}

	other := t.TempDir()
	if _, err := Import(ctx, file, other, true); err != nil {
		t.Fatalf("Import(move) error = %v", err)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("move should remove the original, stat err = %v", err)
	}
}

func TestFreeName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	for _, name := range []string{"a.tar.gz", "a.tar-1.gz", "notes"} {
		writeAt(t, filepath.Join(dir, name), time.Now())
	}

	tests := []struct {
		name string
		want string
	}{
		{"new.txt", "new.txt"},
		{"a.tar.gz", "a.tar-2.gz"},
		{"notes", "notes-1"},
	}
	for _, tt := range tests {
		got, err := freeName(filepath.Join(dir, tt.name))
		if err != nil {
			t.Fatalf("freeName(%q) error = %v", tt.name, err)
		}
		if got != filepath.Join(dir, tt.want) {
			t.Errorf("freeName(%q) = %q, want %q", tt.name, filepath.Base(got), tt.want)
		}
	}
}
