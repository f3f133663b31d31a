package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/raphi011/cdh/internal/config"
	"github.com/raphi011/cdh/internal/log"
	"github.com/raphi011/cdh/internal/navigate"
	"github.com/raphi011/cdh/internal/output"
	"github.com/raphi011/cdh/internal/ui/styles"
)

// rootFlags holds the flags of the single cdh command.
type rootFlags struct {
	list        bool
	interactive bool
	copy        bool
	json        bool
	initShell   string
	initConfig  bool
	force       bool
	verbose     bool
	quiet       bool
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "cdh [ref]",
		Short: "Change to a directory from your history",
		Long: `cdh remembers the directories you change to and lets you go back.

A reference selects the target:
  -, --, ---     the previous, second previous, ... directory
  -N             the Nth previous directory
  N              the directory with history id N
  %suffix        most recent directory ending in suffix
  %text%         most recent directory containing text
  path           an existing directory

"--" always means the second previous directory and never ends the flag
list, so "cdh -- foo" passes two references and is rejected.

Without a reference cdh changes to your home directory. cdh prints a cd
command on stdout; install the shell wrapper so it takes effect.`,
		Example: `  eval "$(cdh --init bash)"   # add to ~/.bashrc
  cdh --list                  # show the history with ids
  cdh 12                      # change to entry 12
  cdh --                      # change to the second previous directory
  cdh %src                    # most recent directory ending in "src"
  cdh -i                      # pick interactively`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = log.WithLogger(ctx, log.New(cmd.ErrOrStderr(), f.verbose, f.quiet))
			ctx = output.WithPrinter(ctx, cmd.OutOrStdout())
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), &f, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.list, "list", "l", false, "List the history with ids")
	flags.BoolVarP(&f.interactive, "interactive", "i", false, "Pick a directory with fuzzy search")
	flags.BoolVar(&f.copy, "copy", false, "Also copy the target path to the clipboard")
	flags.BoolVar(&f.json, "json", false, "Output the listing as JSON (with --list)")
	flags.StringVar(&f.initShell, "init", "", "Output shell wrapper function (bash, zsh, fish)")
	flags.BoolVar(&f.initConfig, "init-config", false, "Write a default config file")
	flags.BoolVar(&f.force, "force", false, "Overwrite an existing config file (with --init-config)")
	cmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Show debug output")
	cmd.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "Suppress informational output")

	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	cmd.MarkFlagsMutuallyExclusive("list", "interactive", "init", "init-config")
	cmd.MarkFlagsMutuallyExclusive("list", "copy")

	_ = cmd.RegisterFlagCompletionFunc("init", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return shells, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

func runRoot(ctx context.Context, f *rootFlags, args []string) error {
	if f.json && !f.list {
		return errors.New("--json requires --list")
	}
	if f.force && !f.initConfig {
		return errors.New("--force requires --init-config")
	}
	if len(args) > 0 && (f.list || f.interactive || f.initShell != "" || f.initConfig) {
		return fmt.Errorf("unexpected argument %q", args[0])
	}

	switch {
	case f.initShell != "":
		return runInit(ctx, f.initShell)
	case f.initConfig:
		return runInitConfig(ctx, f.force)
	}

	cfg := config.FromContext(ctx)
	historyFile, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	nav := navigate.New(navigate.Options{
		HistoryFile: historyFile,
		MaxHistory:  cfg.MaxHistory,
	})

	if f.list {
		return runList(ctx, nav, f.json)
	}

	var res navigate.Result
	if f.interactive {
		res, err = runInteractive(ctx, nav)
	} else {
		var ref string
		if len(args) == 1 {
			ref = args[0]
		}
		res, err = nav.Navigate(ctx, ref)
	}
	if err != nil {
		return err
	}

	if f.copy {
		copyPath(ctx, res.Entry.Path)
	}
	return nil
}

// recencyRef matches references pflag would mistake for flags.
var recencyRef = regexp.MustCompile(`^-(-*|\d+)$`)

// splitRefArgs moves recency references behind a "--" terminator so they
// reach the command as positional arguments. "--" itself is a reference.
func splitRefArgs(args []string) []string {
	var flags, refs []string
	for _, a := range args {
		if recencyRef.MatchString(a) {
			refs = append(refs, a)
		} else {
			flags = append(flags, a)
		}
	}
	if len(refs) == 0 {
		return args
	}
	return append(append(flags, "--"), refs...)
}

// Execute runs the root command with the process arguments and exits on
// failure.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%sconfig: %v\n", log.Prefix, err)
	}
	styles.Init(cfg.Theme)

	ctx := config.WithConfig(context.Background(), &cfg)

	cmd := newRootCmd()
	cmd.SetArgs(splitRefArgs(os.Args[1:]))

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, navigate.ErrCancelled) {
			fmt.Fprintf(os.Stderr, "%s%v\n", log.Prefix, err)
		}
		os.Exit(1)
	}
}
