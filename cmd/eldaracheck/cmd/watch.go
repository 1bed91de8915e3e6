package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/worldofeldara/eldaracheck/internal/config"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
	"github.com/worldofeldara/eldaracheck/internal/output"
	"github.com/worldofeldara/eldaracheck/internal/validator"
	"github.com/worldofeldara/eldaracheck/internal/watcher"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var rootDir string
	var poll bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-check the project whenever a checked file changes",
		Long: `Watch checks the project once, then re-checks it each time the
descriptor, a required file, the build file, the engine ini or the
rulebook itself changes. Press Ctrl+C to stop.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			root, err := resolveProjectRoot(rootDir)
			if err != nil {
				return err
			}
			opts := watcher.DefaultOptions()
			opts.ForcePolling = poll
			if debounce > 0 {
				opts.DebounceWindow = debounce
			}
			return runWatch(ctx, cmd, g, root, opts)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Project root to watch (default: discovered from the current directory)")
	cmd.Flags().BoolVar(&poll, "poll", false, "Poll for changes instead of using filesystem events")
	cmd.Flags().DurationVar(&debounce, "debounce", 0, "Quiet period before re-checking (default 300ms)")

	return cmd
}

// runWatch prints one report, then one more per debounced batch of changes
// until ctx is cancelled. When a change alters the set of watched files the
// watcher is rebuilt from the reloaded rulebook.
func runWatch(ctx context.Context, cmd *cobra.Command, g *globalFlags, root string, opts watcher.Options) error {
	rules, err := loadRules(root)
	if err != nil {
		return err
	}

	color := output.UseColor(cmd.OutOrStdout(), g.noColor) && output.UseColor(cmd.ErrOrStderr(), g.noColor)
	status := output.New(cmd.OutOrStdout())

	check := func() {
		checker := validator.New(
			validator.WithRules(rules),
			validator.WithLogger(slog.Default()),
			validator.WithOutput(cmd.OutOrStdout()),
			validator.WithErrOutput(cmd.ErrOrStderr()),
			validator.WithColor(color),
		)
		checker.PrintReport(checker.Run(ctx, root))
	}

	check()

	for {
		paths := rules.WatchedPaths()
		w, err := watcher.New(root, paths, opts)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		status.Statusf("👀", "Watching %d files in %s", len(paths), root)

		runCtx, cancel := context.WithCancel(ctx)
		rebuild := false
		err = w.Run(runCtx, func(events []watcher.FileEvent) {
			status.Newline()
			status.Statusf("🔄", "Changed: %s", describeEvents(events))

			next, loadErr := config.Load(root)
			if loadErr != nil {
				// Keep checking with the last good rulebook.
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), cerrors.FormatForCLI(
					cerrors.RulebookError(loadErr.Error(), loadErr)))
			} else {
				rules = next
			}

			check()

			if !slices.Equal(rules.WatchedPaths(), paths) {
				rebuild = true
				cancel()
			}
		})
		cancel()

		if err != nil {
			return err
		}
		if !rebuild || ctx.Err() != nil {
			return nil
		}
	}
}

// describeEvents renders a batch as "path (OP), ...".
func describeEvents(events []watcher.FileEvent) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = fmt.Sprintf("%s (%s)", e.Path, e.Operation)
	}
	return strings.Join(parts, ", ")
}
