package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// completeTempdirs completes the first argument with tempdir names.
func completeTempdirs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Name() != "rename" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	if ctx == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dirs, err := peekStore(ctx).List(false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var names []string
	for _, d := range dirs {
		if strings.HasPrefix(d.Name, toComplete) {
			names = append(names, d.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeHooks completes --hook with the configured hook names.
func completeHooks(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if cmd.Context() == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg := configFromContext(cmd.Context())

	var names []string
	for name, hook := range cfg.Hooks.Hooks {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name+"\t"+hook.Description)
		}
	}
	sort.Strings(names)
	return names, cobra.ShellCompDirectiveNoFileComp
}
