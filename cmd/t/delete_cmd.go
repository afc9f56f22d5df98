package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
)

func newDeleteCmd() *cobra.Command {
	var (
		all   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:               "delete [name]",
		Aliases:           []string{"d"},
		Short:             "Delete the current, a named or all tempdirs",
		GroupID:           GroupManage,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTempdirs,
		Long: `Delete the current tempdir, or the named one when not inside a tempdir.

With --all every non-persistent tempdir (linked and hidden) is deleted. To
delete persistent tempdirs, delete them by name. --all asks for confirmation
on a terminal unless --force is given.

The tempdirs directory is printed so the shell leaves a deleted directory.`,
		Example: `  t delete            # delete the tempdir you are in
  t d scratch         # delete "scratch"
  t delete --all -f   # delete all non-persistent tempdirs without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			if all && len(args) > 0 {
				return fmt.Errorf("--all can't be combined with a name")
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			if all {
				dirs, err := store.List(true)
				if err != nil {
					return err
				}
				var doomed []tempdir.Dir
				for _, d := range dirs {
					if !d.Persistent {
						doomed = append(doomed, d)
					}
				}
				if len(doomed) == 0 {
					l.Printf("no tempdirs to delete\n")
					return out.Path(store.Links)
				}

				ok, err := confirmed(force, fmt.Sprintf("Delete %d tempdirs?", len(doomed)), doomed)
				if err != nil {
					return err
				}
				if !ok {
					return errCancelled
				}
				removed, err := store.DeleteAll(ctx)
				if err != nil {
					return err
				}
				for _, d := range removed {
					runHooks(ctx, hooks.EventDelete, d, true, store.Links)
				}
				l.Successf("deleted %d tempdirs", len(removed))
				return out.Path(store.Links)
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}
			target, err := resolveTarget(ctx, store, name)
			if err != nil {
				return err
			}
			d, err := store.Delete(ctx, target.Name)
			if err != nil {
				return err
			}
			runHooks(ctx, hooks.EventDelete, d, true, store.Links)

			return out.Path(store.Links)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Delete all non-persistent tempdirs")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't ask for confirmation")

	return cmd
}
