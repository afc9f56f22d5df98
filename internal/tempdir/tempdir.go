package tempdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/raphi011/t/internal/lock"
	"github.com/raphi011/t/internal/log"
)

const (
	unnamedPrefix = "unnamed_"
	hiddenPrefix  = "hidden-"
	lockName      = ".t.lock"
)

var (
	ErrInvalidName  = errors.New("invalid tempdir name")
	ErrNotFound     = errors.New("tempdir not found")
	ErrExists       = errors.New("tempdir already exists")
	ErrNotInTempdir = errors.New("not in a tempdir")
)

// Dir describes one tempdir.
type Dir struct {
	Name       string
	Path       string // real directory; this is what callers cd into
	Link       string // entry in the links directory, empty when hidden
	Persistent bool   // real directory lives in the links directory
	Hidden     bool   // no link
	ModTime    time.Time
}

// Kind returns a short label for listings.
func (d Dir) Kind() string {
	switch {
	case d.Persistent:
		return "persistent"
	case d.Hidden:
		return "hidden"
	default:
		return "temporary"
	}
}

// Store manages the tempdirs below Root and their links in Links.
type Store struct {
	Root  string
	Links string

	// symlink-resolved variants used to recognise working directories
	rootReal  string
	linksReal string

	lock *lock.FileLock
}

// Open creates the root and links directories if needed and removes stale
// links. It is safe to call concurrently from several processes.
func Open(ctx context.Context, root, links string) (*Store, error) {
	if !filepath.IsAbs(root) || !filepath.IsAbs(links) {
		return nil, fmt.Errorf("temp root %q and tempdirs %q must be absolute", root, links)
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("create temp root: %w", err)
	}
	if err := os.MkdirAll(links, 0o755); err != nil {
		return nil, fmt.Errorf("create tempdirs (%s): %w", links, err)
	}

	s := &Store{
		Root:  filepath.Clean(root),
		Links: filepath.Clean(links),
		lock:  lock.New(filepath.Join(root, lockName)),
	}
	s.rootReal = evalOr(s.Root)
	s.linksReal = evalOr(s.Links)

	if err := s.cleanupStale(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Peek returns a store for read-only lookups. Unlike Open it creates no
// directories and leaves stale links alone, so it is safe to use from shell
// completion. Listing fails if the links directory does not exist yet.
func Peek(root, links string) *Store {
	s := &Store{
		Root:  filepath.Clean(root),
		Links: filepath.Clean(links),
		lock:  lock.New(filepath.Join(root, lockName)),
	}
	s.rootReal = evalOr(s.Root)
	s.linksReal = evalOr(s.Links)
	return s
}

func evalOr(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}
	return path
}

// ValidateName rejects names that are empty, contain a path separator,
// start with "." or are otherwise unusable as a single directory name.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name must not be empty", ErrInvalidName)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w %q: must not contain a path separator", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w %q: must not start with '.'", ErrInvalidName, name)
	case strings.ContainsRune(name, 0) || strings.ContainsAny(name, "\n\r"):
		return fmt.Errorf("%w %q: must not contain control characters", ErrInvalidName, name)
	}
	return nil
}

// withLock runs fn while holding the store lock.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := s.lock.Lock(ctx); err != nil {
		return err
	}
	defer s.lock.Unlock()
	return fn()
}

// cleanupStale removes links whose target is gone.
func (s *Store) cleanupStale(ctx context.Context) error {
	l := log.FromContext(ctx)

	entries, err := os.ReadDir(s.Links)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Links, err)
	}
	for _, e := range entries {
		if e.Type()&fs.ModeSymlink == 0 {
			continue
		}
		link := filepath.Join(s.Links, e.Name())
		if _, err := os.Stat(link); err == nil || !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		l.Printf("cleaning up stale symlink %s\n", link)
		if err := os.Remove(link); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale symlink: %w", err)
		}
	}
	return nil
}

// Get looks up a tempdir by name.
func (s *Store) Get(name string) (Dir, error) {
	if err := ValidateName(name); err != nil {
		return Dir{}, err
	}

	link := filepath.Join(s.Links, name)
	if info, err := os.Lstat(link); err == nil {
		return s.dirFromLink(name, link, info)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Dir{}, err
	}

	path := filepath.Join(s.Root, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Dir{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Dir{}, err
	}
	if !info.IsDir() {
		return Dir{}, fmt.Errorf("%s exists and is not a directory", path)
	}
	return Dir{Name: name, Path: path, Hidden: true, ModTime: info.ModTime()}, nil
}

// dirFromLink interprets an entry in the links directory.
func (s *Store) dirFromLink(name, link string, info fs.FileInfo) (Dir, error) {
	if info.IsDir() {
		return Dir{Name: name, Path: link, Link: link, Persistent: true, ModTime: info.ModTime()}, nil
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return Dir{}, fmt.Errorf("%s exists and is not a tempdir", link)
	}

	target, err := os.Readlink(link)
	if err != nil {
		return Dir{}, fmt.Errorf("read link: %w", err)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.Links, target)
	}
	tinfo, err := os.Stat(target)
	if errors.Is(err, fs.ErrNotExist) {
		return Dir{}, fmt.Errorf("%w: %s (link target %s is gone)", ErrNotFound, name, target)
	}
	if err != nil {
		return Dir{}, err
	}
	if !tinfo.IsDir() {
		return Dir{}, fmt.Errorf("%s points to %s which is not a directory", link, target)
	}
	return Dir{Name: name, Path: target, Link: link, ModTime: tinfo.ModTime()}, nil
}

// List returns all linked and persistent tempdirs sorted by name. With
// includeHidden, tempdirs in the root without a link are included too.
func (s *Store) List(includeHidden bool) ([]Dir, error) {
	var dirs []Dir
	linked := map[string]bool{}

	entries, err := os.ReadDir(s.Links)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Links, err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		link := filepath.Join(s.Links, e.Name())
		info, err := os.Lstat(link)
		if err != nil {
			continue
		}
		d, err := s.dirFromLink(e.Name(), link, info)
		if err != nil {
			// unrelated files in the links directory are not ours
			continue
		}
		dirs = append(dirs, d)
		if !d.Persistent {
			linked[filepath.Base(d.Path)] = true
		}
	}

	if includeHidden {
		entries, err := os.ReadDir(s.Root)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", s.Root, err)
		}
		for _, e := range entries {
			if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || linked[e.Name()] {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			dirs = append(dirs, Dir{
				Name:    e.Name(),
				Path:    filepath.Join(s.Root, e.Name()),
				Hidden:  true,
				ModTime: info.ModTime(),
			})
		}
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	return dirs, nil
}

// Current returns the tempdir containing the working directory. The logical
// $PWD is checked before the physical cwd so that a shell sitting in a link
// is recognised. Returns ErrNotInTempdir if neither is inside a tempdir.
func (s *Store) Current(cwd, pwd string) (Dir, error) {
	for _, p := range []string{pwd, cwd} {
		if p == "" {
			continue
		}
		for _, base := range []string{s.Links, s.linksReal, s.Root, s.rootReal} {
			name, ok := firstComponent(base, p)
			if !ok || strings.HasPrefix(name, ".") {
				continue
			}
			d, err := s.Get(name)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return Dir{}, err
			}
			return d, nil
		}
	}
	return Dir{}, ErrNotInTempdir
}

// firstComponent returns the first path element of p below base.
func firstComponent(base, p string) (string, bool) {
	rel, err := filepath.Rel(base, filepath.Clean(p))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	name, _, _ := strings.Cut(rel, string(filepath.Separator))
	return name, true
}
