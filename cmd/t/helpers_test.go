package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/t/internal/config"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// testEnv is an isolated temp root, links directory and history file.
type testEnv struct {
	base string
	cfg  *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base := resolvePath(t, t.TempDir())

	cfg := config.Default()
	cfg.TempRoot = filepath.Join(base, "root")
	cfg.Tempdirs = filepath.Join(base, "tempdirs")
	cfg.HistoryPath = filepath.Join(base, "history.json")
	cfg.DownloadDir = filepath.Join(base, "Downloads")
	cfg.Shell = "/bin/sh"

	return &testEnv{base: base, cfg: &cfg}
}

func (e *testEnv) root() string  { return e.cfg.TempRoot }
func (e *testEnv) links() string { return e.cfg.Tempdirs }

// result is the outcome of one invocation.
type result struct {
	stdout string
	stderr string
	err    error
}

// last returns the final stdout line, which is what the shell wrapper cds into.
func (r result) last() string {
	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	return lines[len(lines)-1]
}

// run executes t with args from workDir.
func (e *testEnv) run(t *testing.T, workDir string, args ...string) result {
	t.Helper()
	return e.runWithInput(t, workDir, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, workDir, stdin string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	ctx := e.context(workDir, &stdout, &stderr)

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// context is what Execute would hand the command tree, with stdout and
// stderr redirected. An empty workDir means the test base directory.
func (e *testEnv) context(workDir string, stdout, stderr io.Writer) context.Context {
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(stderr, false, false))
	ctx = output.WithPrinter(ctx, stdout)
	ctx = config.WithConfig(ctx, e.cfg)
	if workDir == "" {
		workDir = e.base
	}
	return config.WithWorkDir(ctx, workDir)
}

func mustRun(t *testing.T, e *testEnv, workDir string, args ...string) result {
	t.Helper()
	r := e.run(t, workDir, args...)
	if r.err != nil {
		t.Fatalf("t %v failed: %v\nstderr:\n%s", args, r.err, r.stderr)
	}
	return r
}

func assertIsDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected directory %s: %v", path, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", path)
	}
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("%s should not exist (lstat err = %v)", path, err)
	}
}

