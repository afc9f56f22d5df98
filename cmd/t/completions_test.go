package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompleteTempdirs(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	mustRun(t, env, "", "scratch")
	mustRun(t, env, "", "notes")
	gone := mustRun(t, env, "", "gone").last()
	if err := os.RemoveAll(gone); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetContext(env.context("", &stdout, &stderr))

	got, _ := completeTempdirs(cmd, nil, "")
	if diff := cmp.Diff([]string{"notes", "scratch"}, got); diff != "" {
		t.Errorf("completion mismatch (-want +got):\n%s", diff)
	}
	if got, _ := completeTempdirs(cmd, nil, "sc"); !cmp.Equal(got, []string{"scratch"}) {
		t.Errorf("completion for %q = %v", "sc", got)
	}

	// completion must not clean up or print anything
	if _, err := os.Lstat(filepath.Join(env.links(), "gone")); err != nil {
		t.Errorf("stale link removed during completion: %v", err)
	}
	if stderr.Len() != 0 || stdout.Len() != 0 {
		t.Errorf("completion wrote output: stdout=%q stderr=%q", stdout.String(), stderr.String())
	}
}

func TestCompleteTempdirs_NoDirectories(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	cmd := newRootCmd()
	cmd.SetContext(env.context("", &bytes.Buffer{}, &bytes.Buffer{}))

	if got, _ := completeTempdirs(cmd, nil, ""); len(got) != 0 {
		t.Errorf("completion = %v, want none", got)
	}
	for _, dir := range []string{env.root(), env.links()} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("completion created %s (stat err = %v)", dir, err)
		}
	}
}
