package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/prompt"
)

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "rename <from> [to]",
		Short:             "Rename the current or a named tempdir",
		GroupID:           GroupManage,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeTempdirs,
		Long: `Rename a tempdir.

With one argument inside a tempdir, the current tempdir is renamed to it.
Outside a tempdir the argument names the tempdir to rename and the new name
is asked for interactively. With two arguments, <from> is renamed to <to>.

When the current tempdir is renamed its new path is printed, so the shell
wrapper follows it.`,
		Example: `  t rename notes          # rename the tempdir you are in to "notes"
  t rename unnamed_3 api  # rename unnamed_3 to api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			cur, curErr := currentTempdir(ctx, store)
			if curErr != nil && !errors.Is(curErr, tempdir.ErrNotInTempdir) {
				return curErr
			}
			inTempdir := curErr == nil

			var from, to string
			switch {
			case len(args) == 2:
				from, to = args[0], args[1]
			case inTempdir:
				from, to = cur.Name, args[0]
			default:
				from = args[0]
				if !ui.IsInteractive() {
					return errNoTarget
				}
				res, err := prompt.Name("Rename "+from+" to:", from, tempdir.ValidateName)
				if err != nil {
					return err
				}
				if res.Cancelled || res.Value == "" {
					return errCancelled
				}
				to = res.Value
			}

			d, err := store.Rename(ctx, from, to)
			if err != nil {
				return err
			}
			l.Successf("renamed %s to %s", from, to)

			if inTempdir && cur.Name == from {
				return printPath(ctx, d, false)
			}
			return out.Path(origDir(ctx))
		},
	}

	return cmd
}
