// Package output provides consistent CLI output formatting for check reports.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Writer provides formatted output for CLI.
// Errors from writing are intentionally ignored for console output.
type Writer struct {
	out    io.Writer
	styles Styles
}

// New creates a new plain output Writer.
func New(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		styles: NoColorStyles(),
	}
}

// NewStyled creates a Writer that colors report headers when color is true.
func NewStyled(out io.Writer, color bool) *Writer {
	if !color {
		return New(out)
	}
	return &Writer{
		out:    out,
		styles: DefaultStyles(out),
	}
}

// Pass prints a "[PASS] msg" header line.
func (w *Writer) Pass(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.styles.Pass.Render("[PASS]"), msg)
}

// Fail prints a "[FAIL] msg" header line.
func (w *Writer) Fail(msg string) {
	_, _ = fmt.Fprintf(w.out, "%s %s\n", w.styles.Fail.Render("[FAIL]"), msg)
}

// Bullet prints one " - msg" list item.
func (w *Writer) Bullet(msg string) {
	_, _ = fmt.Fprintf(w.out, " - %s\n", msg)
}

// Line prints msg followed by a newline.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Heading prints a section heading such as "Warnings:".
func (w *Writer) Heading(msg string) {
	_, _ = fmt.Fprintln(w.out, w.styles.Warning.Render(msg))
}

// Status prints a status message with an icon.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Successf prints a formatted success message.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", msg)
}

// Errorf prints a formatted error message.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Code prints a code block with indentation.
func (w *Writer) Code(content string) {
	_, _ = fmt.Fprintln(w.out)
	for _, line := range strings.Split(content, "\n") {
		_, _ = fmt.Fprintf(w.out, "  %s\n", line)
	}
	_, _ = fmt.Fprintln(w.out)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
