package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/shell"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Output shell wrapper function",
		GroupID:   GroupConfig,
		ValidArgs: shell.Supported,
		Args:      cobra.ExactArgs(1),
		Long: `Output shell wrapper function that makes t change directories.

Without this wrapper, t only prints the path (since subprocesses
cannot change the parent shell's directory). The wrapper captures the
last line t prints and cds into it.`,
		Example: `  eval "$(t init bash)"           # add to ~/.bashrc
  eval "$(t init zsh)"            # add to ~/.zshrc
  t init fish | source            # add to ~/.config/fish/config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.Script(args[0])
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Printf("%s", script)
			return nil
		},
	}

	return cmd
}
