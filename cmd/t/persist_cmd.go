package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
)

func newPersistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "persist [name]",
		Short:             "Move a tempdir out of the temp root so it is kept",
		GroupID:           GroupManage,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTempdirs,
		Long: `Persist the current tempdir, or the named one when not inside a tempdir.

The directory is moved from the temp root into the tempdirs directory,
replacing its link. Persistent tempdirs survive reboots, 't delete --all'
and 't prune'. This also keeps a 't shell' session's tempdir.`,
		Example: `  t persist            # persist the tempdir you are in
  t persist scratch    # persist "scratch"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}
			target, err := resolveTarget(ctx, store, name)
			if err != nil {
				return err
			}

			d, already, err := store.Persist(ctx, target.Name)
			if err != nil {
				return err
			}
			if already {
				l.Printf("%s was already persistent\n", d.Path)
			} else {
				l.Successf("%s is now persistent", d.Path)
			}
			runHooks(ctx, hooks.EventPersist, d, !already, d.Path)

			return printPath(ctx, d, false)
		},
	}

	return cmd
}
