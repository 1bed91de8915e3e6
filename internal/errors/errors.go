package errors

import (
	"fmt"
)

// Diagnostic is the structured error type for eldaracheck.
// Every failed check produces one; tool-level failures reuse the same type.
type Diagnostic struct {
	// Code is the unique error code (e.g., "ERR_201_MISSING_FILE").
	Code string

	// Kind is the diagnostic class (ParseError, MissingFileError, ...).
	Kind Kind

	// Message is the human-readable diagnostic, printed verbatim in reports.
	Message string

	// Category is the error category derived from the code.
	Category Category

	// Severity is the diagnostic severity level.
	Severity Severity

	// Path is the project-relative file the diagnostic refers to, if any.
	Path string

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this diagnostic.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Diagnostic) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with Diagnostic.
func (e *Diagnostic) Is(target error) bool {
	if t, ok := target.(*Diagnostic); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the diagnostic.
// Returns the diagnostic for method chaining.
func (e *Diagnostic) WithDetail(key, value string) *Diagnostic {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithPath records the project-relative file the diagnostic refers to.
func (e *Diagnostic) WithPath(path string) *Diagnostic {
	e.Path = path
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the diagnostic for method chaining.
func (e *Diagnostic) WithSuggestion(suggestion string) *Diagnostic {
	e.Suggestion = suggestion
	return e
}

// New creates a new Diagnostic with the given code and message.
// Kind and category are derived from the code.
func New(code string, message string, cause error) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Kind:     kindFromCode(code),
		Message:  message,
		Category: categoryFromCode(code),
		Severity: SeverityError,
		Cause:    cause,
	}
}

// Newf is New with a formatted message and no cause.
func Newf(code string, format string, args ...any) *Diagnostic {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Wrap creates a Diagnostic from an existing error.
// The error's message becomes the Diagnostic message.
func Wrap(code string, err error) *Diagnostic {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ParseError reports a descriptor that is absent or cannot be decoded.
func ParseError(message string, cause error) *Diagnostic {
	return New(ErrCodeDescriptorParse, message, cause)
}

// MissingFileError reports a required file that does not exist.
func MissingFileError(message, path string) *Diagnostic {
	return New(ErrCodeMissingFile, message, nil).WithPath(path)
}

// RulebookError reports an invalid rulebook file.
func RulebookError(message string, cause error) *Diagnostic {
	return New(ErrCodeRulebookInvalid, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *Diagnostic {
	return New(ErrCodeInternal, message, cause)
}

// GetCode extracts the error code from a Diagnostic.
// Returns empty string if not a Diagnostic.
func GetCode(err error) string {
	if d, ok := err.(*Diagnostic); ok {
		return d.Code
	}
	return ""
}

// GetKind extracts the kind from a Diagnostic.
// Returns empty string if not a Diagnostic.
func GetKind(err error) Kind {
	if d, ok := err.(*Diagnostic); ok {
		return d.Kind
	}
	return ""
}
