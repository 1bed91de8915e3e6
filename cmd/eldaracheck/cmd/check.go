package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/worldofeldara/eldaracheck/internal/output"
	"github.com/worldofeldara/eldaracheck/internal/validator"
)

// maxParallelChecks bounds how many project roots are validated at once.
const maxParallelChecks = 4

func newCheckCmd(g *globalFlags) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "check [ROOT...]",
		Short: "Check one or more project roots",
		Long: `Check validates each given project root against its rulebook.
With no arguments the project root is discovered from the current directory.

Reports are printed in argument order. The command fails if any project fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				root, err := resolveProjectRoot("")
				if err != nil {
					return err
				}
				roots = []string{root}
			}
			return runCheck(cmd, g, roots, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print reports as JSON")

	return cmd
}

// checkedProject is one validated root and the checker that produced it.
type checkedProject struct {
	checker *validator.Checker
	report  *validator.Report
}

// runCheck validates roots concurrently, then prints every report in
// argument order. It returns ErrCheckFailed when any report failed.
func runCheck(cmd *cobra.Command, g *globalFlags, roots []string, jsonOutput bool) error {
	projects, err := checkRoots(cmd.Context(), cmd, g, roots)
	if err != nil {
		return err
	}

	failed := false
	for _, p := range projects {
		if !p.report.Passed() {
			failed = true
		}
		if jsonOutput {
			if err := p.report.WriteJSON(cmd.OutOrStdout()); err != nil {
				return err
			}
			continue
		}
		p.checker.PrintReport(p.report)
	}

	if failed {
		return ErrCheckFailed
	}
	return nil
}

// checkRoots runs one validation per root with bounded parallelism.
// A rulebook error for any root aborts the whole command.
func checkRoots(ctx context.Context, cmd *cobra.Command, g *globalFlags, roots []string) ([]checkedProject, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	color := output.UseColor(cmd.OutOrStdout(), g.noColor) && output.UseColor(cmd.ErrOrStderr(), g.noColor)

	projects := make([]checkedProject, len(roots))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxParallelChecks)

	for i, root := range roots {
		eg.Go(func() error {
			rules, err := loadRules(root)
			if err != nil {
				return err
			}
			checker := validator.New(
				validator.WithRules(rules),
				validator.WithLogger(slog.Default()),
				validator.WithOutput(cmd.OutOrStdout()),
				validator.WithErrOutput(cmd.ErrOrStderr()),
				validator.WithColor(color),
			)
			projects[i] = checkedProject{checker: checker, report: checker.Run(ctx, root)}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return projects, nil
}
