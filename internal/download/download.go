// Package download finds the most recent download and imports it into a
// tempdir.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/t/internal/fsutil"
	"github.com/raphi011/t/internal/log"
)

// ErrNoDownloads is returned when the download directory holds no regular files.
var ErrNoDownloads = errors.New("no downloads")

// ResolveDir picks the download directory: $XDG_DOWNLOAD_DIR, then the
// configured directory, then ~/Downloads if it exists, then ~/dl.
func ResolveDir(configured string) (string, error) {
	if dir := os.Getenv("XDG_DOWNLOAD_DIR"); dir != "" {
		return dir, nil
	}
	if configured != "" {
		return configured, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve download directory: %w", err)
	}
	fallback := filepath.Join(home, "Downloads")
	if _, err := os.Stat(fallback); err != nil {
		fallback = filepath.Join(home, "dl")
	}
	return fallback, nil
}

// Newest returns the regular file in dir with the latest modification time.
// Entries whose metadata can't be read are skipped with a notice.
func Newest(ctx context.Context, dir string) (string, error) {
	l := log.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read download directory: %w", err)
	}

	var (
		newest  string
		newestT time.Time
	)
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		info, err := e.Info()
		if err != nil {
			l.Printf("couldn't read file metadata of %s; skipping\n", path)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if newest == "" || info.ModTime().After(newestT) {
			newest, newestT = path, info.ModTime()
		}
	}

	if newest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoDownloads, dir)
	}
	return newest, nil
}

// Import copies (or with move, moves) the file src into dir and returns the
// new path. If dir already holds the same file (same size and modification
// time) it is left alone and its path returned. A different file of the same
// name makes the import use the next free "name-N.ext".
func Import(ctx context.Context, src, dir string, move bool) (string, error) {
	l := log.FromContext(ctx)

	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("import download: %w", err)
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if sameFile(info, dst) {
		l.Printf("%s was already imported into %s\n", filepath.Base(src), dir)
		return dst, nil
	}
	if dst, err = freeName(dst); err != nil {
		return "", fmt.Errorf("import download: %w", err)
	}

	if move {
		l.Printf("moving %s to %s\n", src, dst)
		err = fsutil.Move(src, dst)
	} else {
		l.Printf("copying %s to %s\n", src, dst)
		err = fsutil.CopyFile(src, dst)
	}
	if err != nil {
		return "", fmt.Errorf("import download: %w", err)
	}
	return dst, nil
}

// sameFile reports whether path is a regular file matching src's size and
// modification time. Copies keep the source mtime, so this recognises an
// earlier import.
func sameFile(src os.FileInfo, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Size() == src.Size() && info.ModTime().Equal(src.ModTime())
}

// freeName returns path, or "stem-N.ext" with the lowest N that does not exist.
func freeName(path string) (string, error) {
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for n := 1; n < 1000; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", stem, n, ext))
		if _, err := os.Lstat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %s in %s", base, dir)
}
