package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldofeldara/eldaracheck/internal/config"
	"github.com/worldofeldara/eldaracheck/pkg/version"
)

// versionReport is the --json shape: build info plus the rulebook format
// this binary reads.
type versionReport struct {
	version.BuildInfo
	RulebookVersion int    `json:"rulebook_version"`
	RulebookFile    string `json:"rulebook_file"`
}

func newVersionCmd() *cobra.Command {
	var asJSON, short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the eldaracheck version, commit, build date and Go version.
--json also reports the rulebook format version this binary understands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			switch {
			case short:
				_, err := fmt.Fprintln(w, version.Short())
				return err
			case asJSON:
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(versionReport{
					BuildInfo:       version.GetInfo(),
					RulebookVersion: config.NewRulebook().Version,
					RulebookFile:    config.RulebookFile,
				})
			default:
				_, err := fmt.Fprintf(w, "%s\nrulebook: %s (format v%d)\n",
					version.String(), config.RulebookFile, config.NewRulebook().Version)
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build and rulebook info as JSON")
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number (overrides --json)")

	return cmd
}
