package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/shell"
	"github.com/raphi011/t/internal/tempdir"
)

func newShellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "shell [name]",
		Short:             "Start a shell in a tempdir and delete it on exit",
		GroupID:           GroupCore,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTempdirs,
		Long: `Start a sub-shell inside a tempdir. When the shell exits the tempdir is
deleted, unless it was persisted with 't persist' in the meantime. A tempdir
that already existed is never deleted.

The shell is taken from the config (shell), $SHELL, or the first of
/bin/zsh, /bin/bash and /bin/sh that exists. Its output goes to stderr; after
it exits the original working directory is printed.`,
		Example: `  t shell           # throwaway shell in a new tempdir
  t shell scratch   # shell in the tempdir "scratch"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := configFromContext(ctx)

			sh, err := shell.Resolve(cfg.Shell)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}
			d, created, err := store.Create(ctx, name)
			if err != nil {
				return err
			}
			runHooks(ctx, hooks.EventCreate, d, created, d.Path)

			l.Printf("starting %s in %s (exit to delete it, 't persist' keeps it)\n", sh, d.Path)
			if err := shell.Spawn(ctx, sh, d.Path, cmd.InOrStdin(), cmd.ErrOrStderr()); err != nil {
				return err
			}

			if created {
				// Ctrl-C in the sub-shell also cancels ctx; cleanup must still run.
				cleanupShellTempdir(context.WithoutCancel(ctx), store, d)
			} else {
				l.Printf("%s existed before the shell started, keeping it\n", d.Path)
			}

			return output.FromContext(ctx).Path(origDir(ctx))
		},
	}

	return cmd
}

// cleanupShellTempdir deletes the tempdir of a finished shell session unless
// it was persisted, renamed or already deleted from inside the shell.
func cleanupShellTempdir(ctx context.Context, store *tempdir.Store, d tempdir.Dir) {
	l := log.FromContext(ctx)

	cur, err := store.Get(d.Name)
	switch {
	case errors.Is(err, tempdir.ErrNotFound):
		l.Printf("%s is gone, nothing to clean up\n", d.Name)
		return
	case err != nil:
		l.Warnf("failed to look up %s: %v", d.Name, err)
		return
	case cur.Persistent:
		l.Printf("%s was persisted, keeping it\n", cur.Path)
		return
	case cur.Path != d.Path:
		l.Printf("%s now refers to %s, keeping it\n", d.Name, cur.Path)
		return
	}

	if _, err := store.Delete(ctx, d.Name); err != nil {
		l.Warnf("failed to delete %s: %v", d.Name, err)
		return
	}
	runHooks(ctx, hooks.EventDelete, cur, true, store.Links)
}
