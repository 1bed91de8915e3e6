package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/worldofeldara/eldaracheck/internal/logging"
	"github.com/worldofeldara/eldaracheck/internal/mcp"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var rootDir string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Long: `Serve exposes the project check to MCP clients over stdio as the
check_project tool. stdout carries only protocol messages; logs go to
~/.eldaracheck/logs/eldaracheck.log.`,
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
			if g.debug {
				logLevel = "debug"
			}
			return runServe(ctx, root, logLevel)
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", "", "Default project root for tool calls")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	return cmd
}

// runServe starts the MCP server with file-only logging.
func runServe(ctx context.Context, root, logLevel string) error {
	logger, cleanup, err := logging.Setup(logging.ServeConfig(logLevel))
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer cleanup()

	server, err := mcp.NewServer(root, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Serve(ctx)
}
