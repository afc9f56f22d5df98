package tempdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/raphi011/t/internal/fsutil"
	"github.com/raphi011/t/internal/log"
)

// Create resolves the tempdir called name, creating it when it does not
// exist yet. An empty name allocates the next unnamed_N. The returned bool
// reports whether a new directory was created.
func (s *Store) Create(ctx context.Context, name string) (Dir, bool, error) {
	if name != "" {
		if err := ValidateName(name); err != nil {
			return Dir{}, false, err
		}
	}

	var (
		d       Dir
		created bool
	)
	err := s.withLock(ctx, func() error {
		var err error
		if name == "" {
			d, err = s.allocate()
			created = err == nil
			return err
		}
		d, created, err = s.ensure(name)
		return err
	})
	if err != nil {
		return Dir{}, false, err
	}

	l := log.FromContext(ctx)
	if created {
		l.Debug("created tempdir", "name", d.Name, "path", d.Path)
	} else {
		l.Debug("reusing tempdir", "name", d.Name, "path", d.Path)
	}
	return d, created, nil
}

// ensure returns the existing tempdir name or creates it. Caller holds the lock.
func (s *Store) ensure(name string) (Dir, bool, error) {
	d, err := s.Get(name)
	switch {
	case err == nil && (d.Persistent || d.Link != ""):
		return d, false, nil
	case err == nil:
		// unlinked directory in the root: give it its link back
		if err := s.link(name); err != nil {
			return Dir{}, false, err
		}
		d.Link = filepath.Join(s.Links, name)
		d.Hidden = false
		return d, false, nil
	case !errors.Is(err, ErrNotFound):
		return Dir{}, false, err
	}

	// A dangling link for name would make the symlink below fail.
	if err := removeDanglingLink(filepath.Join(s.Links, name)); err != nil {
		return Dir{}, false, err
	}

	path := filepath.Join(s.Root, name)
	if err := os.Mkdir(path, 0o755); err != nil && !errors.Is(err, fs.ErrExist) {
		return Dir{}, false, fmt.Errorf("create tempdir %q: %w", name, err)
	}
	if err := s.link(name); err != nil {
		return Dir{}, false, err
	}
	d, err = s.Get(name)
	return d, err == nil, err
}

// allocate creates the next free unnamed_N. Caller holds the lock.
func (s *Store) allocate() (Dir, error) {
	n, err := s.highestUnnamed()
	if err != nil {
		return Dir{}, err
	}
	for {
		n++
		name := unnamedPrefix + strconv.Itoa(n)
		if _, err := os.Lstat(filepath.Join(s.Links, name)); err == nil {
			continue
		}
		err := os.Mkdir(filepath.Join(s.Root, name), 0o755)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return Dir{}, fmt.Errorf("create tempdir %q: %w", name, err)
		}
		if err := s.link(name); err != nil {
			return Dir{}, err
		}
		return s.Get(name)
	}
}

// highestUnnamed returns the highest N among unnamed_N entries in the root
// and links directories.
func (s *Store) highestUnnamed() (int, error) {
	highest := 0
	for _, dir := range []string{s.Root, s.Links} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, e := range entries {
			rest, ok := strings.CutPrefix(e.Name(), unnamedPrefix)
			if !ok {
				continue
			}
			if n, err := strconv.Atoi(rest); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest, nil
}

// link creates <links>/name -> <root>/name.
func (s *Store) link(name string) error {
	link := filepath.Join(s.Links, name)
	target := filepath.Join(s.Root, name)
	err := os.Symlink(target, link)
	if errors.Is(err, fs.ErrExist) {
		if existing, rerr := os.Readlink(link); rerr == nil && existing == target {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrExists, link)
	}
	if err != nil {
		return fmt.Errorf("create symlink: %w", err)
	}
	return nil
}

// restoreLink puts the link for name back after a failed move so the
// tempdir stays reachable. Failure leaves the tempdir hidden and is reported.
func (s *Store) restoreLink(ctx context.Context, name string) {
	if err := s.link(name); err != nil {
		log.FromContext(ctx).Warnf("failed to restore link for %s, it is now only reachable as %s: %v",
			name, filepath.Join(s.Root, name), err)
	}
}

func removeDanglingLink(link string) error {
	info, err := os.Lstat(link)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	if _, err := os.Stat(link); errors.Is(err, fs.ErrNotExist) {
		return os.Remove(link)
	}
	return nil
}

// CreateHidden creates a tempdir without a link, named hidden-<id>.
func (s *Store) CreateHidden(ctx context.Context) (Dir, error) {
	var d Dir
	err := s.withLock(ctx, func() error {
		for {
			name := hiddenPrefix + uuid.NewString()[:8]
			path := filepath.Join(s.Root, name)
			err := os.Mkdir(path, 0o755)
			if errors.Is(err, fs.ErrExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("create hidden tempdir: %w", err)
			}
			d, err = s.Get(name)
			return err
		}
	})
	if err != nil {
		return Dir{}, err
	}
	log.FromContext(ctx).Debug("created hidden tempdir", "path", d.Path)
	return d, nil
}

// Persist moves the tempdir out of the temp root into the links directory.
// The bool reports whether the tempdir was already persistent.
func (s *Store) Persist(ctx context.Context, name string) (Dir, bool, error) {
	var (
		d       Dir
		already bool
	)
	err := s.withLock(ctx, func() error {
		cur, err := s.Get(name)
		if err != nil {
			return err
		}
		if cur.Persistent {
			d, already = cur, true
			return nil
		}

		dst := filepath.Join(s.Links, name)
		if cur.Link != "" {
			if err := os.Remove(cur.Link); err != nil {
				return fmt.Errorf("unlink %s: %w", cur.Link, err)
			}
		}
		log.FromContext(ctx).Printf("moving %s to %s\n", cur.Path, dst)
		if err := fsutil.Move(cur.Path, dst); err != nil {
			if cur.Link != "" {
				s.restoreLink(ctx, name)
			}
			return fmt.Errorf("persist %s: %w", name, err)
		}
		d, err = s.Get(name)
		return err
	})
	return d, already, err
}

// Rename renames a tempdir. The target name must be free.
func (s *Store) Rename(ctx context.Context, from, to string) (Dir, error) {
	if err := ValidateName(to); err != nil {
		return Dir{}, err
	}

	var d Dir
	err := s.withLock(ctx, func() error {
		cur, err := s.Get(from)
		if err != nil {
			return err
		}
		for _, p := range []string{filepath.Join(s.Links, to), filepath.Join(s.Root, to)} {
			if _, err := os.Lstat(p); err == nil {
				return fmt.Errorf("%w: can't rename to %s", ErrExists, p)
			}
		}

		l := log.FromContext(ctx)
		switch {
		case cur.Persistent:
			l.Printf("renaming persistent tempdir %s to %s\n", from, to)
			if err := os.Rename(cur.Path, filepath.Join(s.Links, to)); err != nil {
				return fmt.Errorf("rename: %w", err)
			}
		default:
			l.Printf("renaming tempdir %s to %s\n", from, to)
			if err := os.Rename(cur.Path, filepath.Join(s.Root, to)); err != nil {
				return fmt.Errorf("rename: %w", err)
			}
			if cur.Link != "" {
				if err := os.Remove(cur.Link); err != nil {
					return fmt.Errorf("unlink old: %w", err)
				}
				if err := s.link(to); err != nil {
					return err
				}
			}
		}
		d, err = s.Get(to)
		return err
	})
	return d, err
}

// Delete removes a tempdir and its link.
func (s *Store) Delete(ctx context.Context, name string) (Dir, error) {
	var d Dir
	err := s.withLock(ctx, func() error {
		var err error
		d, err = s.Get(name)
		if err != nil {
			return err
		}
		return s.remove(ctx, d)
	})
	return d, err
}

// remove deletes d from disk. Caller holds the lock.
func (s *Store) remove(ctx context.Context, d Dir) error {
	l := log.FromContext(ctx)
	if d.Persistent {
		l.Printf("deleting %s (persistent)\n", d.Path)
	} else {
		l.Printf("deleting %s\n", d.Name)
	}

	if d.Link != "" && !d.Persistent {
		if err := os.Remove(d.Link); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove symlink %s: %w", d.Link, err)
		}
	}
	if err := os.RemoveAll(d.Path); err != nil {
		return fmt.Errorf("remove %s: %w", d.Path, err)
	}
	return nil
}

// DeleteAll removes every non-persistent tempdir, including hidden ones.
func (s *Store) DeleteAll(ctx context.Context) ([]Dir, error) {
	return s.removeMatching(ctx, false, func(Dir) bool { return true })
}

// Prune removes non-persistent tempdirs not modified since cutoff. With
// dryRun nothing is removed; the candidates are returned either way.
func (s *Store) Prune(ctx context.Context, cutoff time.Time, dryRun bool) ([]Dir, error) {
	return s.removeMatching(ctx, dryRun, func(d Dir) bool { return d.ModTime.Before(cutoff) })
}

func (s *Store) removeMatching(ctx context.Context, dryRun bool, match func(Dir) bool) ([]Dir, error) {
	var removed []Dir
	err := s.withLock(ctx, func() error {
		dirs, err := s.List(true)
		if err != nil {
			return err
		}
		for _, d := range dirs {
			if d.Persistent || !match(d) {
				continue
			}
			if !dryRun {
				if err := s.remove(ctx, d); err != nil {
					return err
				}
			}
			removed = append(removed, d)
		}
		return nil
	})
	return removed, err
}
