// Package lock serializes t invocations that mutate the temp root.
//
// Two shells running `t` at the same moment must not both allocate the same
// unnamed_N directory or prune a directory the other is creating. A FileLock
// holds an exclusive flock(2) on a file inside the temp root for the
// duration of such an operation.
package lock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// pollInterval is how often a blocked Lock retries.
const pollInterval = 20 * time.Millisecond

// FileLock provides exclusive file-based locking using flock.
type FileLock struct {
	path string
	file *os.File
}

// New creates a new file lock for the given path.
// The lock file is created on first Lock.
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock acquires an exclusive lock, waiting until it is free or ctx is done.
func (l *FileLock) Lock(ctx context.Context) error {
	if l.file != nil {
		return fmt.Errorf("lock %s: already held", l.path)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			l.file = f
			return nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			f.Close()
			return fmt.Errorf("lock %s: %w", l.path, err)
		}

		select {
		case <-ctx.Done():
			f.Close()
			return fmt.Errorf("lock %s: %w", l.path, ctx.Err())
		case <-time.After(pollInterval):
		}
	}
}

// Unlock releases the lock and closes the file. Unlocking a lock that is not
// held is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	f := l.file
	l.file = nil
	if err := unix.Flock(int(f.Fd()), unix.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
