package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/download"
	"github.com/raphi011/t/internal/format"
	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/tempdir"
)

func newDlCmd() *cobra.Command {
	var move bool

	cmd := &cobra.Command{
		Use:     "dl [name]",
		Short:   "Create a tempdir holding the most recent download",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Copy the most recently downloaded file into a tempdir.

The download directory is $XDG_DOWNLOAD_DIR, the configured download_dir,
~/Downloads or ~/dl, in that order. The newest regular file (by modification
time) is picked. The tempdir is named after the file unless a name is given.`,
		Example: `  t dl              # tempdir named after the newest download
  t dl -m invoices  # move it into the tempdir "invoices"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			cfg := configFromContext(ctx)

			dir, err := download.ResolveDir(cfg.DownloadDir)
			if err != nil {
				return err
			}
			l.Debug("resolved download directory", "dir", dir)

			file, err := download.Newest(ctx, dir)
			if err != nil {
				return err
			}
			l.Printf("most recently downloaded file: %s\n", file)

			name := format.NameFromFile(file)
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				return fmt.Errorf("%w: can't derive a name from %s, pass one explicitly", tempdir.ErrInvalidName, file)
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			d, created, err := store.Create(ctx, name)
			if err != nil {
				return err
			}
			if _, err := download.Import(ctx, file, d.Path, move); err != nil {
				return err
			}
			runHooks(ctx, hooks.EventCreate, d, created, d.Path)

			return printPath(ctx, d, false)
		},
	}

	cmd.Flags().BoolVarP(&move, "move", "m", false, "Move the file instead of copying it")

	return cmd
}
