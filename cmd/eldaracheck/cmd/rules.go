package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/worldofeldara/eldaracheck/configs"
	"github.com/worldofeldara/eldaracheck/internal/config"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
	"github.com/worldofeldara/eldaracheck/internal/output"
)

func newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect or create the project rulebook",
	}

	cmd.AddCommand(newRulesShowCmd())
	cmd.AddCommand(newRulesInitCmd())

	return cmd
}

func newRulesShowCmd() *cobra.Command {
	var rootDir string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective rulebook",
		Long:  `Show prints the built-in defaults merged with the project's .eldaracheck.yaml.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveProjectRoot(rootDir)
			if err != nil {
				return err
			}
			rules, err := loadRules(root)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rules)
			}

			data, err := yaml.Marshal(rules)
			if err != nil {
				return fmt.Errorf("failed to marshal rulebook: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Project root (default: discovered from the current directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the rulebook as JSON")

	return cmd
}

func newRulesInitCmd() *cobra.Command {
	var rootDir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default rulebook to .eldaracheck.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := resolveProjectRoot(rootDir)
			if err != nil {
				return err
			}
			return runRulesInit(cmd, root, force)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Project root (default: discovered from the current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing rulebook")

	return cmd
}

// runRulesInit writes the commented template so the file documents itself.
func runRulesInit(cmd *cobra.Command, root string, force bool) error {
	out := output.New(cmd.OutOrStdout())
	path := filepath.Join(root, config.RulebookFile)

	if _, err := os.Stat(path); err == nil && !force {
		// main prints this once, hint included.
		return cerrors.RulebookError(fmt.Sprintf("rulebook already exists: %s", path), nil).
			WithPath(path).
			WithSuggestion("Use --force to overwrite")
	}

	if err := os.WriteFile(path, []byte(configs.RulebookTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write rulebook: %w", err)
	}

	out.Successf("Created %s", path)
	out.Status("", "Edit it to match your project, then run 'eldaracheck'.")
	return nil
}
