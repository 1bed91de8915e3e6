// Package cmd provides the CLI commands for eldaracheck.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/worldofeldara/eldaracheck/internal/config"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
	"github.com/worldofeldara/eldaracheck/internal/logging"
	"github.com/worldofeldara/eldaracheck/pkg/version"
)

// ErrCheckFailed is returned when at least one project failed validation.
// The report has already been printed when it is returned.
var ErrCheckFailed = errors.New("project check failed")

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	debug   bool
	noColor bool

	loggingCleanup func()
}

// NewRootCmd creates the root command for the eldaracheck CLI.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}
	var rootDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "eldaracheck",
		Short: "Validate Unreal Engine project configuration",
		Long: `eldaracheck validates that an Unreal Engine project is configured the
way the project expects: descriptor fields, target files, module
dependencies and engine settings.

Run 'eldaracheck' in the project directory to check it once.`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveProjectRoot(rootDir)
			if err != nil {
				return err
			}
			return runCheck(cmd, g, []string{root}, jsonOutput)
		},
	}

	cmd.SetVersionTemplate("eldaracheck version {{.Version}}\n")

	cmd.Flags().StringVar(&rootDir, "root", "", "Project root to check (default: discovered from the current directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")

	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "Enable debug logging to ~/.eldaracheck/logs/")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable styled output")

	cmd.PersistentPreRunE = g.startLogging
	cmd.PersistentPostRunE = g.stopLogging

	cmd.AddCommand(newCheckCmd(g))
	cmd.AddCommand(newWatchCmd(g))
	cmd.AddCommand(newServeCmd(g))
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging installs the debug file logger when --debug is set.
func (g *globalFlags) startLogging(_ *cobra.Command, _ []string) error {
	if !g.debug {
		return nil
	}
	cleanup, err := logging.SetupDefault(logging.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to setup debug logging: %w", err)
	}
	g.loggingCleanup = cleanup
	slog.Info("Debug logging enabled",
		slog.String("log_file", logging.DefaultLogPath()),
		slog.String("version", version.Version))
	return nil
}

// stopLogging flushes and closes the debug log file.
func (g *globalFlags) stopLogging(_ *cobra.Command, _ []string) error {
	if g.loggingCleanup != nil {
		slog.Info("Debug logging stopped")
		g.loggingCleanup()
		g.loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// resolveProjectRoot returns dir when set, otherwise the discovered root
// of the current directory.
func resolveProjectRoot(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		return "", cerrors.InternalError("could not determine the project root", err)
	}
	return root, nil
}

// loadRules loads the rulebook for root as a tool-level error on failure.
func loadRules(root string) (*config.Rulebook, error) {
	rules, err := config.Load(root)
	if err != nil {
		return nil, cerrors.RulebookError(err.Error(), err).
			WithPath(root).
			WithSuggestion("Fix .eldaracheck.yaml or remove it to use the defaults.")
	}
	return rules, nil
}
