package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/hooks"
)

func newHiddenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hidden",
		Short:   "Create a tempdir that is not linked into the tempdirs directory",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Create a tempdir that does not show up in the tempdirs directory.

Hidden tempdirs are only listed by 't status' and are removed by
't delete --all' and 't prune' like any other non-persistent tempdir.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			d, err := store.CreateHidden(ctx)
			if err != nil {
				return err
			}
			runHooks(ctx, hooks.EventCreate, d, true, d.Path)
			return printPath(ctx, d, false)
		},
	}

	return cmd
}
