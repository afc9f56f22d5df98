package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui/static"
	"github.com/raphi011/t/internal/ui/styles"
)

func newStatusCmd() *cobra.Command {
	var withSize bool

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"s", "list", "l", "ls"},
		Short:   "Show the current tempdir and list all tempdirs",
		GroupID: GroupManage,
		Args:    cobra.NoArgs,
		Long: `Show whether you are in a tempdir and list all tempdirs, including hidden
ones. The report goes to stderr.`,
		Example: `  t status          # list tempdirs
  t ls --size       # include disk usage`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w := log.FromContext(ctx).Writer()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			cur, err := currentTempdir(ctx, store)
			inTempdir := err == nil
			if err != nil && !errors.Is(err, tempdir.ErrNotInTempdir) {
				return err
			}
			writeCurrent(w, cur, inTempdir)

			dirs, err := store.List(true)
			if err != nil {
				return err
			}
			if len(dirs) == 0 {
				fmt.Fprintln(w, styles.Muted().Render("no active tempdirs"))
				return output.FromContext(ctx).Path(origDir(ctx))
			}

			var sizes []int64
			if withSize {
				sizes = tempdir.Sizes(ctx, dirs)
			}

			now := time.Now()
			highlight := -1
			rows := make([][]string, len(dirs))
			for i, d := range dirs {
				var size int64
				if withSize {
					size = sizes[i]
				}
				rows[i] = static.TempdirTableRow(d, now, withSize, size)
				if inTempdir && d.Path == cur.Path {
					highlight = i
				}
			}

			fmt.Fprintln(w)
			fmt.Fprint(w, static.RenderTable(static.TempdirHeaders(withSize), rows, highlight))

			return output.FromContext(ctx).Path(origDir(ctx))
		},
	}

	cmd.Flags().BoolVar(&withSize, "size", false, "Show the disk usage of each tempdir")

	return cmd
}

// writeCurrent reports which tempdir the invocation runs in.
func writeCurrent(w io.Writer, cur tempdir.Dir, inTempdir bool) {
	if !inTempdir {
		fmt.Fprintln(w, "currently not in a tempdir")
		return
	}

	marker := styles.CurrentSymbols().Current
	switch {
	case cur.Persistent:
		fmt.Fprintf(w, "%s currently in persistent tempdir %s\n", marker, styles.Title().Render(cur.Path))
	case cur.Hidden:
		fmt.Fprintf(w, "%s currently in hidden tempdir %s\n", marker, styles.Title().Render(cur.Path))
	default:
		fmt.Fprintf(w, "%s currently in tempdir %s\n", marker, styles.Title().Render(cur.Link))
		fmt.Fprintf(w, "  which is a symlink to %s\n", cur.Path)
	}
	fmt.Fprintf(w, "  kind: %s\n", styles.FormatKind(cur.Kind()))
}
