package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/history"
	"github.com/raphi011/t/internal/tempdir"
)

func newLastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "last",
		Short:   "Print the most recently visited tempdir",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			if cfg.HistoryPath == "" {
				return errors.New("history is disabled (history_path is empty)")
			}

			entry, err := history.MostRecent(cfg.HistoryPath)
			if err != nil {
				return fmt.Errorf("load history: %w", err)
			}
			if entry == nil {
				return errors.New("no tempdir history (run t first)")
			}

			name := entry.Name
			if name == "" {
				name = filepath.Base(entry.Path)
			}
			return printPath(ctx, tempdir.Dir{Name: name, Path: entry.Path}, false)
		},
	}

	return cmd
}
