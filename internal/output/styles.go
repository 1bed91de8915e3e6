package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette
const (
	ColorGreen  = "154"
	ColorRed    = "196"
	ColorYellow = "220"
)

// Styles holds the styles applied to report output.
type Styles struct {
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns colored styles rendered for out's terminal.
func DefaultStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)
	return Styles{
		Pass:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorGreen)),
		Fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Warning: r.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	return Styles{
		Pass:    lipgloss.NewStyle(),
		Fail:    lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
	}
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// UseColor reports whether output to w should be styled.
func UseColor(w io.Writer, noColor bool) bool {
	return !noColor && IsTTY(w)
}
