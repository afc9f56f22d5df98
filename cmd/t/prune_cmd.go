package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/config"
	"github.com/raphi011/t/internal/format"
	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui/static"
)

func newPruneCmd() *cobra.Command {
	var (
		olderThan string
		dryRun    bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "prune",
		Short:   "Delete tempdirs that haven't been modified for a while",
		GroupID: GroupManage,
		Args:    cobra.NoArgs,
		Long: `Delete non-persistent tempdirs whose modification time is older than
--older-than (default: prune_after from the config, 7d).

Asks for confirmation on a terminal unless --force is given. Use --dry-run to
only list what would be deleted.`,
		Example: `  t prune -n                 # show what would be pruned
  t prune --older-than 36h   # prune tempdirs untouched for 36 hours
  t prune -f                 # prune without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := configFromContext(ctx)

			age := time.Duration(cfg.PruneAfter)
			if olderThan != "" {
				var err error
				if age, err = config.ParseDuration(olderThan); err != nil {
					return fmt.Errorf("--older-than: %w", err)
				}
			}
			cutoff := time.Now().Add(-age)

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			candidates, err := store.Prune(ctx, cutoff, true)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				l.Printf("nothing to prune\n")
				return output.FromContext(ctx).Path(origDir(ctx))
			}

			now := time.Now()
			rows := make([][]string, len(candidates))
			for i, d := range candidates {
				rows[i] = static.TempdirTableRow(d, now, false, 0)
			}
			l.Printf("%s", static.RenderTable(static.TempdirHeaders(false), rows, -1))

			if dryRun {
				l.Printf("would prune %d tempdirs older than %s\n", len(candidates), format.Age(cutoff, now))
				return output.FromContext(ctx).Path(origDir(ctx))
			}

			ok, err := confirmed(force, fmt.Sprintf("Delete %d tempdirs?", len(candidates)), candidates)
			if err != nil {
				return err
			}
			if !ok {
				return errCancelled
			}

			removed, err := store.Prune(ctx, cutoff, false)
			if err != nil {
				return err
			}
			for _, d := range removed {
				runHooks(ctx, hooks.EventDelete, d, true, store.Links)
			}
			l.Successf("pruned %d tempdirs", len(removed))

			return output.FromContext(ctx).Path(pruneDestination(ctx, store, removed))
		},
	}

	cmd.Flags().StringVar(&olderThan, "older-than", "", "Minimum age, e.g. 7d or 36h")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only show what would be deleted")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Don't ask for confirmation")

	return cmd
}

// pruneDestination is the directory to print after pruning: the links
// directory when the invocation ran inside a pruned tempdir, otherwise the
// original working directory.
func pruneDestination(ctx context.Context, store *tempdir.Store, removed []tempdir.Dir) string {
	orig := origDir(ctx)
	cwd := config.WorkDirFromContext(ctx)
	for _, d := range removed {
		for _, p := range []string{orig, cwd} {
			if isWithin(p, d.Path) || (d.Link != "" && isWithin(p, d.Link)) {
				return store.Links
			}
		}
	}
	return orig
}
