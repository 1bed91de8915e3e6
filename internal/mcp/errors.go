// Package mcp implements the Model Context Protocol (MCP) server for eldaracheck.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
)

// Custom MCP error codes for eldaracheck.
const (
	// ErrCodeProjectNotFound indicates the requested root does not exist.
	ErrCodeProjectNotFound = -32001

	// ErrCodeRulebookInvalid indicates the project's rulebook could not be loaded.
	ErrCodeRulebookInvalid = -32002

	// ErrCodeTimeout indicates the request timed out or was canceled.
	ErrCodeTimeout = -32003

	// Standard JSON-RPC error codes.
	ErrCodeMethodNotFound = -32601
	ErrCodeInvalidParams  = -32602
	ErrCodeInternalError  = -32603
)

// MCPError represents an MCP protocol error with code and message.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// MapError converts internal errors to MCP errors.
func MapError(err error) *MCPError {
	if err == nil {
		return nil
	}

	var mcpErr *MCPError
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	var d *cerrors.Diagnostic
	if errors.As(err, &d) {
		return mapDiagnostic(d)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request timed out."}
	case errors.Is(err, context.Canceled):
		return &MCPError{Code: ErrCodeTimeout, Message: "Request was canceled."}
	case errors.Is(err, fs.ErrNotExist):
		return &MCPError{Code: ErrCodeProjectNotFound, Message: err.Error()}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: "Internal server error."}
	}
}

// NewInvalidParamsError creates an error for invalid parameters with a custom message.
func NewInvalidParamsError(msg string) *MCPError {
	return &MCPError{Code: ErrCodeInvalidParams, Message: msg}
}

// NewProjectNotFoundError reports a root that is not a directory.
func NewProjectNotFoundError(root string) *MCPError {
	return &MCPError{
		Code:    ErrCodeProjectNotFound,
		Message: fmt.Sprintf("Project root '%s' not found.", root),
	}
}

// mapDiagnostic converts a tool-level Diagnostic to an MCPError.
func mapDiagnostic(d *cerrors.Diagnostic) *MCPError {
	message := d.Message
	if d.Suggestion != "" {
		message = fmt.Sprintf("%s %s", d.Message, d.Suggestion)
	}

	switch d.Code {
	case cerrors.ErrCodeRulebookInvalid:
		return &MCPError{Code: ErrCodeRulebookInvalid, Message: message}
	default:
		return &MCPError{Code: ErrCodeInternalError, Message: message}
	}
}
