package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/worldofeldara/eldaracheck/internal/config"
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
	"github.com/worldofeldara/eldaracheck/internal/validator"
	"github.com/worldofeldara/eldaracheck/pkg/version"
)

// Server is the MCP server for eldaracheck.
// It exposes the project validator to AI clients over stdio.
type Server struct {
	mcp      *mcp.Server
	rootPath string
	logger   *slog.Logger
}

// NewServer creates a new MCP server for the project at rootPath.
func NewServer(rootPath string, logger *slog.Logger) (*Server, error) {
	if rootPath == "" {
		return nil, errors.New("root path is required")
	}
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		rootPath: abs,
		logger:   logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "eldaracheck",
			Version: version.Version,
		},
		nil, // capabilities are inferred from registered tools/resources
	)

	s.registerTools()
	s.registerResources()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Info returns the server name and version.
func (s *Server) Info() (name, ver string) {
	return "eldaracheck", version.Version
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return []ToolInfo{
		{Name: toolCheckProject, Description: descCheckProject},
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        toolCheckProject,
		Description: descCheckProject,
	}, s.mcpCheckProjectHandler)
	s.logger.Debug("Registered tool", slog.String("name", toolCheckProject))
}

func (s *Server) registerResources() {
	s.mcp.AddResource(
		&mcp.Resource{
			Name:        "rulebook",
			URI:         rulebookURI,
			Description: "Effective rulebook for the server's project root",
			MIMEType:    "application/json",
		},
		s.handleRulebookResource,
	)
}

// mcpCheckProjectHandler is the MCP SDK handler for the check_project tool.
func (s *Server) mcpCheckProjectHandler(ctx context.Context, _ *mcp.CallToolRequest, input CheckProjectInput) (
	*mcp.CallToolResult,
	CheckProjectOutput,
	error,
) {
	out, err := s.CheckProject(ctx, input)
	if err != nil {
		return nil, CheckProjectOutput{}, MapError(err)
	}
	return nil, out, nil
}

// CheckProject runs the validator for input.Root with its rulebook.
func (s *Server) CheckProject(ctx context.Context, input CheckProjectInput) (CheckProjectOutput, error) {
	if err := ctx.Err(); err != nil {
		return CheckProjectOutput{}, err
	}

	start := time.Now()
	requestID := generateRequestID()

	root, err := s.resolveRoot(input.Root)
	if err != nil {
		return CheckProjectOutput{}, err
	}

	rules, err := config.Load(root)
	if err != nil {
		return CheckProjectOutput{}, cerrors.RulebookError(err.Error(), err).
			WithSuggestion("Fix .eldaracheck.yaml or remove it to use the defaults.")
	}

	checker := validator.New(validator.WithRules(rules), validator.WithLogger(s.logger))
	report := checker.Run(ctx, root)

	s.logger.Info("check_project completed",
		slog.String("request_id", requestID),
		slog.String("root", root),
		slog.Bool("passed", report.Passed()),
		slog.Int("diagnostics", len(report.Diagnostics)),
		slog.Duration("duration", time.Since(start)))

	jr := report.ToJSON()
	out := CheckProjectOutput{
		Passed:      report.Passed(),
		Root:        root,
		Diagnostics: jr.Diagnostics,
		Warnings:    report.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return out, nil
}

// resolveRoot returns the absolute directory a tool call refers to.
func (s *Server) resolveRoot(root string) (string, error) {
	if root == "" {
		root = s.rootPath
	} else if !filepath.IsAbs(root) {
		root = filepath.Join(s.rootPath, root)
	}
	root = filepath.Clean(root)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return "", NewProjectNotFoundError(root)
	}
	return root, nil
}

// handleRulebookResource returns the effective rulebook as JSON.
func (s *Server) handleRulebookResource(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rules, err := config.Load(s.rootPath)
	if err != nil {
		return nil, MapError(cerrors.RulebookError(err.Error(), err))
	}

	content, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return nil, MapError(err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      rulebookURI,
				MIMEType: "application/json",
				Text:     string(content),
			},
		},
	}, nil
}

// Serve runs the server over stdio until ctx is canceled or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server",
		slog.String("transport", "stdio"),
		slog.String("root", s.rootPath))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
