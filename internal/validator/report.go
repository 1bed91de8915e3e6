package validator

import (
	"encoding/json"
	"io"

	cerrors "github.com/worldofeldara/eldaracheck/internal/errors"
)

// Report is the outcome of one validation run.
// Diagnostics and Warnings are append-only and keep check order.
type Report struct {
	Root        string
	Diagnostics []*cerrors.Diagnostic
	Warnings    []string
}

// Passed returns true when no diagnostic was recorded.
// Warnings never affect the verdict.
func (r *Report) Passed() bool {
	return len(r.Diagnostics) == 0
}

// ExitCode returns the process exit code for the report.
func (r *Report) ExitCode() int {
	if r.Passed() {
		return 0
	}
	return 1
}

// Messages returns the diagnostic messages in report order.
func (r *Report) Messages() []string {
	msgs := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		msgs[i] = d.Message
	}
	return msgs
}

// merge appends the results of one check.
func (r *Report) merge(res result) {
	r.Diagnostics = append(r.Diagnostics, res.diagnostics...)
	r.Warnings = append(r.Warnings, res.warnings...)
}

// result is what a single check returns to the orchestrator.
type result struct {
	diagnostics []*cerrors.Diagnostic
	warnings    []string
}

func (res *result) fail(d *cerrors.Diagnostic) {
	res.diagnostics = append(res.diagnostics, d)
}

func (res *result) warn(msg string) {
	res.warnings = append(res.warnings, msg)
}

// JSONReport is the structure for JSON output.
type JSONReport struct {
	Status      string                   `json:"status"`
	Root        string                   `json:"root"`
	Diagnostics []cerrors.JSONDiagnostic `json:"diagnostics"`
	Warnings    []string                 `json:"warnings,omitempty"`
}

// ToJSON converts the report to its JSON structure.
func (r *Report) ToJSON() JSONReport {
	out := JSONReport{
		Status:      "pass",
		Root:        r.Root,
		Diagnostics: make([]cerrors.JSONDiagnostic, 0, len(r.Diagnostics)),
		Warnings:    r.Warnings,
	}
	if !r.Passed() {
		out.Status = "fail"
	}
	for _, d := range r.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, cerrors.ToJSON(d))
	}
	return out
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.ToJSON())
}
