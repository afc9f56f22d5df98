package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/t/internal/config"
	"github.com/raphi011/t/internal/format"
	"github.com/raphi011/t/internal/history"
	"github.com/raphi011/t/internal/hooks"
	"github.com/raphi011/t/internal/log"
	"github.com/raphi011/t/internal/output"
	"github.com/raphi011/t/internal/tempdir"
	"github.com/raphi011/t/internal/ui"
	"github.com/raphi011/t/internal/ui/picker"
	"github.com/raphi011/t/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupManage = "manage"
	GroupConfig = "config"
)

// rootFlags are the flags shared by every command.
type rootFlags struct {
	verbose  bool
	quiet    bool
	tempdirs string
	hook     string
	noHook   bool
}

func newRootCmd() *cobra.Command {
	var (
		flags       rootFlags
		interactive bool
		copyPath    bool
	)

	cmd := &cobra.Command{
		Use:   "t [name]",
		Short: "Create and jump into temporary directories",
		Long: `t creates a temporary directory (or reuses the one called name) and prints
its path as the last line of stdout. The shell wrapper installed with
't init <shell>' changes into it.

Tempdirs live below the temp root and are linked into ~/tempdirs so they are
easy to find. 't persist' moves one out of the temp root so it survives
reboots and pruning.`,
		Example: `  t                 # new unnamed tempdir
  t scratch         # create or reuse the tempdir "scratch"
  t -i              # pick a tempdir with fuzzy search
  t --copy scratch  # also copy the path to the clipboard`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTempdirs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if flags.verbose || flags.quiet {
				l := log.FromContext(ctx)
				ctx = log.WithLogger(ctx, log.New(l.Writer(), flags.verbose, flags.quiet))
			}

			if flags.tempdirs != "" {
				cfg := *configFromContext(ctx)
				if err := cfg.SetTempdirs(flags.tempdirs); err != nil {
					return err
				}
				ctx = config.WithConfig(ctx, &cfg)
			}

			ctx = withHookOptions(ctx, hookOptions{name: flags.hook, noHook: flags.noHook})
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			if interactive {
				picked, create, err := pickTempdir(ctx, store)
				if err != nil {
					return err
				}
				if create == "" {
					return printPath(ctx, picked, copyPath)
				}
				name = create
			}

			d, created, err := store.Create(ctx, name)
			if err != nil {
				return err
			}
			runHooks(ctx, hooks.EventCreate, d, created, d.Path)
			return printPath(ctx, d, copyPath)
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show debug output and external commands")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output except warnings")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.PersistentFlags().StringVar(&flags.tempdirs, "tempdirs", "", "Directory the tempdirs are linked into (env: TEMPDIRS)")
	cmd.PersistentFlags().StringVar(&flags.hook, "hook", "", "Run only the named hook")
	cmd.PersistentFlags().BoolVar(&flags.noHook, "no-hook", false, "Don't run any hooks")
	cmd.MarkFlagsMutuallyExclusive("hook", "no-hook")
	cmd.RegisterFlagCompletionFunc("hook", completeHooks)

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick a tempdir with fuzzy search")
	cmd.Flags().BoolVar(&copyPath, "copy", false, "Copy the path to the clipboard")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupManage, Title: "Management Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	cmd.AddCommand(newHiddenCmd())
	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newDlCmd())
	cmd.AddCommand(newLastCmd())

	// Management commands
	cmd.AddCommand(newPersistCmd())
	cmd.AddCommand(newRenameCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newPruneCmd())

	// Config commands
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newCompletionCmd())

	return cmd
}

// pickTempdir runs the fuzzy picker over the existing tempdirs, most
// recently visited first. It returns either the picked tempdir or the name
// of a tempdir to create.
func pickTempdir(ctx context.Context, store *tempdir.Store) (tempdir.Dir, string, error) {
	l := log.FromContext(ctx)
	cfg := configFromContext(ctx)

	dirs, err := store.List(false)
	if err != nil {
		return tempdir.Dir{}, "", err
	}

	hist, err := history.Load(cfg.HistoryPath)
	if err != nil {
		l.Warnf("failed to load history: %v", err)
		hist = &history.History{}
	}
	sortByRecency(dirs, hist)

	now := time.Now()
	items := make([]picker.Item, len(dirs))
	for i, d := range dirs {
		items[i] = picker.Item{
			Name:   d.Name,
			Detail: styles.KindSymbol(d.Kind()) + " " + format.Age(d.ModTime, now),
		}
	}

	res, err := picker.Pick(items, true)
	if err != nil {
		return tempdir.Dir{}, "", err
	}
	switch {
	case res.Cancelled:
		return tempdir.Dir{}, "", errCancelled
	case res.Create != "":
		return tempdir.Dir{}, res.Create, nil
	default:
		return dirs[res.Index], "", nil
	}
}

// sortByRecency orders tempdirs with history first (most recent first),
// then the rest by name.
func sortByRecency(dirs []tempdir.Dir, hist *history.History) {
	last := func(d tempdir.Dir) time.Time {
		if e := hist.FindByPath(d.Path); e != nil {
			return e.LastAccess
		}
		return time.Time{}
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		li, lj := last(dirs[i]), last(dirs[j])
		if !li.Equal(lj) {
			return li.After(lj)
		}
		return dirs[i].Name < dirs[j].Name
	})
}

// Execute builds the command tree and runs it with signal handling.
func Execute() {
	// Load config
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	styles.Init(loadedCfg.Theme)

	// Get working directory
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "t: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics, styling downsampled for pipes)
	ctx = log.WithLogger(ctx, log.New(ui.StyledWriter(os.Stderr), false, false))

	// Add output printer (stdout is reserved for the resolved path)
	ctx = output.WithPrinter(ctx, os.Stdout)

	ctx = config.WithConfig(ctx, &loadedCfg)
	ctx = config.WithWorkDir(ctx, workDir)
	ctx = withPWD(ctx, os.Getenv("PWD"))

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 't -h' for help")
		cancel()
		os.Exit(1)
	}
}
