package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/raphi011/t/internal/config"
	"github.com/raphi011/t/internal/history"
	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/prompt"
)

var (
	errNoTarget  = errors.New("not in a tempdir and no tempdir specified")
	errCancelled = errors.New("cancelled")
)

type pwdKey struct{}
type hookOptsKey struct{}

// hookOptions carries the --hook and --no-hook flags to subcommands.
type hookOptions struct {
	name   string
	noHook bool
}

// withPWD attaches the logical working directory ($PWD) to the context.
func withPWD(ctx context.Context, pwd string) context.Context {
	return context.WithValue(ctx, pwdKey{}, pwd)
}

func pwdFromContext(ctx context.Context) string {
	pwd, _ := ctx.Value(pwdKey{}).(string)
	return pwd
}

func withHookOptions(ctx context.Context, opts hookOptions) context.Context {
	return context.WithValue(ctx, hookOptsKey{}, opts)
}

func hookOptionsFromContext(ctx context.Context) hookOptions {
	opts, _ := ctx.Value(hookOptsKey{}).(hookOptions)
	return opts
}

// configFromContext returns the config on ctx, or the defaults.
func configFromContext(ctx context.Context) *config.Config {
	if cfg := config.FromContext(ctx); cfg != nil {
		return cfg
	}
	cfg := config.Default()
	return &cfg
}

// origDir is where the invocation started: the logical $PWD when known,
// otherwise the physical working directory.
func origDir(ctx context.Context) string {
	if pwd := pwdFromContext(ctx); pwd != "" && filepath.IsAbs(pwd) {
		return pwd
	}
	return config.WorkDirFromContext(ctx)
}

// openStore opens the tempdir store described by the config on ctx.
func openStore(ctx context.Context) (*tempdir.Store, error) {
	cfg := configFromContext(ctx)
	if cfg.TempRoot == cfg.Tempdirs {
		return nil, fmt.Errorf("temp root and tempdirs must differ, both are %q", cfg.TempRoot)
	}
	return tempdir.Open(ctx, cfg.TempRoot, cfg.Tempdirs)
}

// peekStore is openStore without side effects, for shell completion.
func peekStore(ctx context.Context) *tempdir.Store {
	cfg := configFromContext(ctx)
	return tempdir.Peek(cfg.TempRoot, cfg.Tempdirs)
}

// currentTempdir returns the tempdir the invocation runs in.
func currentTempdir(ctx context.Context, store *tempdir.Store) (tempdir.Dir, error) {
	return store.Current(config.WorkDirFromContext(ctx), pwdFromContext(ctx))
}

// resolveTarget picks the tempdir a command operates on: the current
// tempdir if there is one, otherwise the explicitly named one.
func resolveTarget(ctx context.Context, store *tempdir.Store, name string) (tempdir.Dir, error) {
	cur, err := currentTempdir(ctx, store)
	switch {
	case err == nil:
		if name != "" && name != cur.Name {
			log.FromContext(ctx).Warnf("ignoring %q, operating on the current tempdir %q", name, cur.Name)
		}
		return cur, nil
	case !errors.Is(err, tempdir.ErrNotInTempdir):
		return tempdir.Dir{}, err
	case name != "":
		return store.Get(name)
	default:
		return tempdir.Dir{}, errNoTarget
	}
}

// isWithin reports whether path is dir or below it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// printPath records the tempdir in the history, optionally copies the path
// to the clipboard and prints it as the final stdout line.
func printPath(ctx context.Context, d tempdir.Dir, copyPath bool) error {
	l := log.FromContext(ctx)
	cfg := configFromContext(ctx)

	if cfg.HistoryPath != "" {
		if err := history.RecordAccess(d.Path, d.Name, cfg.HistoryPath); err != nil {
			l.Warnf("failed to record history: %v", err)
		}
	}

	if copyPath {
		if err := clipboard.WriteAll(d.Path); err != nil {
			l.Warnf("failed to copy to clipboard: %v", err)
		}
	}

	return output.FromContext(ctx).Path(d.Path)
}

// runHooks runs the hooks configured for event in workDir. Hooks only run
// when the event happened, except for a hook named with --hook.
func runHooks(ctx context.Context, event hooks.Event, d tempdir.Dir, happened bool, workDir string) {
	opts := hookOptionsFromContext(ctx)
	if !happened && opts.name == "" {
		return
	}

	l := log.FromContext(ctx)
	matches, err := hooks.SelectHooks(configFromContext(ctx).Hooks, opts.name, opts.noHook, event)
	if err != nil {
		l.Warnf("%v", err)
		return
	}
	if len(matches) == 0 {
		return
	}

	hctx := hooks.Context{Path: d.Path, Name: d.Name, Link: d.Link, Trigger: event}
	hooks.RunAll(ctx, matches, hctx, workDir)
}

// confirmed lists dirs and asks question on the terminal unless force is
// set or no terminal is attached, in which case the answer is yes.
func confirmed(force bool, question string, dirs []tempdir.Dir) (bool, error) {
	if force || !ui.IsInteractive() {
		return true, nil
	}
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.Name
	}
	res, err := prompt.Confirm(question, names)
	if err != nil {
		return false, err
	}
	return res.Confirmed && !res.Cancelled, nil
}
