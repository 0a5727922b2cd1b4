package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/afevis/modcheck/internal/app"
	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/version"
)

// Options holds CLI-level configuration. Flags override these defaults, so
// the environment-derived values from main act as a baseline.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCmd wires the cobra root command. Running the bare binary performs
// one verification pass, the same entry point the game loader invokes at
// startup. The dependency container is built after flag parsing, in the
// persistent pre-run hook, so --config and --verbose take effect.
func NewRootCmd(opts Options) *cobra.Command {
	var container *app.Container

	root := &cobra.Command{
		Use:           "modcheck",
		Short:         "Mod installation diagnostics",
		Long:          "modcheck verifies a game mod installation against known-bad file states and surfaces throttled warnings.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.BuildContainer(cmd.Context(), opts.ConfigPath, opts.Verbose)
			if err != nil {
				return err
			}
			container = c
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "Configuration file (default ~/.modcheck/config.yaml)")
	root.PersistentFlags().BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Enable debug logging")

	get := func() *app.Container { return container }

	checkCmd := newCheckCommand(get)
	root.RunE = checkCmd.RunE
	root.Flags().AddFlagSet(checkCmd.Flags())

	root.AddCommand(checkCmd)
	root.AddCommand(newCacheCommand(get))
	root.AddCommand(newHistoryCommand(get))
	root.AddCommand(newVersionCommand())
	return root
}

func newCheckCommand(get func() *app.Container) *cobra.Command {
	var (
		dir    string
		silent bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the installation checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			container := get()
			svc := *container.VerifyService
			svc.ConfigProvider = app.WithInstallDir(container.ConfigProvider, dir)
			if !silent {
				svc.Prompter = NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				svc.Links = NewLinkOpener(container.Logger)
			}
			report, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Install directory to check (default from config, falling back to the working directory)")
	cmd.Flags().BoolVar(&silent, "silent", false, "Report problems without prompting or consuming warning budget")
	return cmd
}

func newCacheCommand(get func() *app.Container) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the warning throttle cache",
	}

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cached fingerprint and per-condition counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCache(cmd.OutOrStdout(), get())
		},
	})
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the warning cache file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return get().CacheStore.Clear()
		},
	})
	return cacheCmd
}

func newHistoryCommand(get func() *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently surfaced warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := get().History.Recent(limit)
			if err != nil {
				return fmt.Errorf("read warning history: %w", err)
			}
			if len(events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No warnings recorded.")
				return nil
			}
			for _, event := range events {
				answer := "dismissed"
				if event.Accepted {
					answer = "opened link"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s | %s | %s phase | %s\n",
					event.Timestamp.Format(time.RFC3339), event.Key, event.Phase, answer)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of events to show")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show modcheck version information",
		// Version does not need configuration loaded.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "modcheck version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.BuildDate != "" {
				fmt.Fprintf(out, "Built: %s\n", version.BuildDate)
			}
			return nil
		},
	}
}

func showCache(out io.Writer, container *app.Container) error {
	cache := container.CacheStore.Load()
	fmt.Fprintf(out, "Cache file: %s\n", container.CacheStore.Path())
	fmt.Fprintf(out, "Install path: %s\n", cache.InstallPath)
	fmt.Fprintf(out, "Install date: %s\n", cache.InstallDate)
	if len(cache.Entries) == 0 {
		fmt.Fprintln(out, "No warning entries.")
		return nil
	}

	keys := make([]string, 0, len(cache.Entries))
	for key := range cache.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry := cache.Entries[key]
		last := "never"
		if entry.LastShownUnix > 0 {
			last = time.Unix(int64(entry.LastShownUnix), 0).Format(time.RFC3339)
		}
		phase := domain.PhaseInitial
		if entry.InitialPhaseDone {
			phase = domain.PhaseCooldown
		}
		fmt.Fprintf(out, "%s | shown %d | last %s | %s phase\n", key, entry.ShownCount, last, phase)
	}
	return nil
}

func renderReport(out io.Writer, report domain.VerifyReport) {
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case domain.CheckOK:
			fmt.Fprintf(out, "ok   %s\n", outcome.Title)
		case domain.CheckPrompted:
			fmt.Fprintf(out, "warn %s: %s (prompted, %s phase)\n", outcome.Title, outcome.Detail, outcome.Phase)
		case domain.CheckSuppressed:
			fmt.Fprintf(out, "warn %s: %s (reminder throttled)\n", outcome.Title, outcome.Detail)
		case domain.CheckDetected:
			fmt.Fprintf(out, "warn %s: %s\n", outcome.Title, outcome.Detail)
		}
	}
	if report.Triggered() == 0 {
		fmt.Fprintln(out, "No installation problems detected.")
	}
}
