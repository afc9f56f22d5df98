package hooks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/raphi011/t/internal/config"
	"github.com/raphi011/t/internal/log"
)

// Event identifies the lifecycle event that triggers a hook
type Event string

const (
	EventCreate  Event = "create"
	EventPersist Event = "persist"
	EventDelete  Event = "delete"
)

// Context holds the values for placeholder substitution
type Context struct {
	Path    string // absolute tempdir path
	Name    string // tempdir name
	Link    string // link path, empty for hidden tempdirs
	Trigger Event
}

// HookMatch represents a hook selected to run
type HookMatch struct {
	Name string
	Hook config.Hook
}

// shellQuote wraps s in single quotes, escaping embedded single quotes.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// SelectHooks determines which hooks to run.
// If hookName is set only that hook runs, regardless of its "on" list.
// Otherwise all hooks whose "on" list contains event (or "all") run,
// ordered by name.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, event Event) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, ok := cfg.Hooks[hookName]
		if !ok {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Name: hookName, Hook: hook}}, nil
	}

	var matches []HookMatch
	for name, hook := range cfg.Hooks {
		for _, on := range hook.On {
			if on == "all" || on == string(event) {
				matches = append(matches, HookMatch{Name: name, Hook: hook})
				break
			}
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches, nil
}

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values.
func SubstitutePlaceholders(command string, hctx Context) string {
	r := strings.NewReplacer(
		"{path}", shellQuote(hctx.Path),
		"{name}", shellQuote(hctx.Name),
		"{link}", shellQuote(hctx.Link),
		"{trigger}", shellQuote(string(hctx.Trigger)),
	)
	return r.Replace(command)
}

// RunAll runs every matched hook in workDir. Failures are logged as warnings
// and do not stop the remaining hooks; the number of failed hooks is returned.
func RunAll(ctx context.Context, matches []HookMatch, hctx Context, workDir string) int {
	l := log.FromContext(ctx)
	failed := 0
	for _, m := range matches {
		if err := run(ctx, m, hctx, workDir); err != nil {
			l.Warnf("hook %q failed: %v", m.Name, err)
			failed++
		}
	}
	return failed
}

func run(ctx context.Context, m HookMatch, hctx Context, workDir string) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(m.Hook.Command, hctx)

	l.Printf("Running hook '%s'...\n", m.Name)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = l.Writer()
	cmd.Stderr = l.Writer()

	done := l.Command(workDir, "sh", "-c", command)
	start := time.Now()
	err := cmd.Run()
	done(time.Since(start))
	if err != nil {
		return err
	}

	if m.Hook.Description != "" {
		l.Successf("  ✓ %s", m.Hook.Description)
	}
	return nil
}
