package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestScript(t *testing.T) {
	t.Parallel()

	for _, name := range Supported {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			script, err := Script(name)
			if err != nil {
				t.Fatalf("Script(%q) error = %v", name, err)
			}
			for _, want := range []string{"command t", "--help", "completion", "cd "} {
				if !strings.Contains(script, want) {
					t.Errorf("Script(%q) missing %q", name, want)
				}
			}
		})
	}

	if _, err := Script("powershell"); err == nil {
		t.Error("Script(powershell) should fail")
	}
}

// TestScript_Bash runs the bash wrapper against a fake t binary and checks
// that it changes into the printed directory.
func TestScript_Bash(t *testing.T) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not installed")
	}
	t.Parallel()

	bin := t.TempDir()
	target := t.TempDir()
	fake := "#!/bin/sh\necho 'noise' >&2\necho 'not a dir'\necho '" + target + "'\n"
	if err := os.WriteFile(filepath.Join(bin, "t"), []byte(fake), 0o755); err != nil {
		t.Fatal(err)
	}

	script, err := Script("bash")
	if err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command(bash, "-c", script+"\nt foo >/dev/null && pwd -P")
	cmd.Env = append(os.Environ(), "PATH="+bin+":"+os.Getenv("PATH"))
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("bash wrapper failed: %v", err)
	}

	want, _ := filepath.EvalSymlinks(target)
	if got := strings.TrimSpace(string(out)); got != want {
		t.Errorf("wrapper cd'd to %q, want %q", got, want)
	}
}

func TestResolve(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/fish")

	if got, _ := Resolve("/bin/custom"); got != "/bin/custom" {
		t.Errorf("Resolve(configured) = %q", got)
	}
	if got, _ := Resolve(""); got != "/usr/bin/fish" {
		t.Errorf("Resolve($SHELL) = %q", got)
	}

	t.Setenv("SHELL", "")
	got, err := Resolve("")
	if err != nil {
		t.Skipf("no fallback shell available: %v", err)
	}
	if got != "/bin/zsh" && got != "/bin/bash" && got != "/bin/sh" {
		t.Errorf("Resolve(fallback) = %q", got)
	}
}

func TestSpawn(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	t.Parallel()

	dir := t.TempDir()
	var stderr bytes.Buffer
	stdin := strings.NewReader("echo hello\necho \"$PWD\"\nexit 3\n")

	if err := Spawn(context.Background(), "/bin/sh", dir, stdin, &stderr); err != nil {
		t.Fatalf("Spawn() error = %v", err)
	}

	out := stderr.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("shell output not forwarded to stderr: %q", out)
	}
	if !strings.Contains(out, dir) {
		t.Errorf("PWD not set to %q: %q", dir, out)
	}
}

func TestSpawn_MissingShell(t *testing.T) {
	t.Parallel()

	err := Spawn(context.Background(), "/nonexistent/shell", t.TempDir(), strings.NewReader(""), &bytes.Buffer{})
	if err == nil {
		t.Error("Spawn() with a missing shell should fail")
	}
}
