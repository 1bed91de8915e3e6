package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	d, ok := err.(*Diagnostic)
	if !ok {
		d = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", d.Message))
	if d.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", d.Suggestion))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", d.Code))

	return sb.String()
}

// JSONDiagnostic is the JSON representation of a diagnostic.
type JSONDiagnostic struct {
	Code       string            `json:"code"`
	Kind       string            `json:"kind"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Path       string            `json:"path,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
}

// ToJSON converts an error into its JSON representation.
// Non-Diagnostic errors are wrapped as internal errors.
func ToJSON(err error) JSONDiagnostic {
	d, ok := err.(*Diagnostic)
	if !ok {
		d = Wrap(ErrCodeInternal, err)
	}

	jd := JSONDiagnostic{
		Code:       d.Code,
		Kind:       string(d.Kind),
		Message:    d.Message,
		Category:   string(d.Category),
		Severity:   string(d.Severity),
		Path:       d.Path,
		Details:    d.Details,
		Suggestion: d.Suggestion,
	}
	if d.Cause != nil {
		jd.Cause = d.Cause.Error()
	}
	return jd
}

// FormatJSON returns a JSON representation of the error.
// Suitable for machine consumption and structured logging.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(ToJSON(err))
}

// FormatForLog formats an error for structured logging.
// Returns key-value pairs suitable for slog attributes.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	d, ok := err.(*Diagnostic)
	if !ok {
		return map[string]any{
			"error": err.Error(),
		}
	}

	result := map[string]any{
		"error_code": d.Code,
		"kind":       string(d.Kind),
		"message":    d.Message,
		"category":   string(d.Category),
		"severity":   string(d.Severity),
	}

	if d.Path != "" {
		result["path"] = d.Path
	}

	if d.Cause != nil {
		result["cause"] = d.Cause.Error()
	}

	if d.Suggestion != "" {
		result["suggestion"] = d.Suggestion
	}

	for k, v := range d.Details {
		result["detail_"+k] = v
	}

	return result
}
