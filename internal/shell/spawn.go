package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/raphi011/t/internal/log"
)

// fallbacks are tried in order when neither config nor $SHELL name a shell.
var fallbacks = []string{"/bin/zsh", "/bin/bash", "/bin/sh"}

// Resolve picks the shell to spawn: the configured one, then $SHELL, then
// the first existing fallback.
func Resolve(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, nil
	}
	for _, sh := range fallbacks {
		if _, err := os.Stat(sh); err == nil {
			return sh, nil
		}
	}
	return "", errors.New("no shell found: set $SHELL or shell in the config")
}

// Spawn runs shellPath inside dir and waits for it to exit. The shell reads
// from stdin and writes both its output streams to stderr. A non-zero exit
// of the shell is not an error; it usually reflects the last command typed.
//
// The shell is not bound to ctx: Ctrl-C inside the sub-shell reaches t too
// and must not end the session.
func Spawn(ctx context.Context, shellPath, dir string, stdin io.Reader, stderr io.Writer) error {
	l := log.FromContext(ctx)

	cmd := exec.Command(shellPath)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "PWD="+dir)
	cmd.Stdin = stdin
	cmd.Stdout = stderr
	cmd.Stderr = stderr

	done := l.Command(dir, shellPath)
	start := time.Now()
	err := cmd.Run()
	done(time.Since(start))

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		l.Debug("shell exited", "code", exitErr.ExitCode())
		return nil
	}
	if err != nil {
		return fmt.Errorf("run shell %s: %w", shellPath, err)
	}
	return nil
}
