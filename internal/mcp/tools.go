package mcp

import (
	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
)

// CheckProjectInput defines the input schema for the check_project tool.
type CheckProjectInput struct {
	Root string `json:"root,omitempty" jsonschema:"project root to check; relative paths resolve against the server root, empty means the server root"`
}

// CheckProjectOutput defines the output schema for the check_project tool.
type CheckProjectOutput struct {
	Passed      bool                     `json:"passed" jsonschema:"true when no diagnostic was reported"`
	Root        string                   `json:"root" jsonschema:"absolute project root that was checked"`
	Diagnostics []cerrors.JSONDiagnostic `json:"diagnostics" jsonschema:"failed checks in check order"`
	Warnings    []string                 `json:"warnings" jsonschema:"non-fatal findings"`
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

const (
	toolCheckProject = "check_project"
	descCheckProject = "Validate an Unreal Engine project's configuration against its rulebook: " +
		"descriptor fields, required modules and platforms, target files, build dependencies and DefaultEngine.ini keys. " +
		"Returns every failed check, not just the first."

	rulebookURI = "eldaracheck://rulebook"
)
