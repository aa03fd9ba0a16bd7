package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	hderrors "github.com/rileyhilliard/hostdash/internal/errors"
)

var (
	failStyle       = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	causeStyle      = lipgloss.NewStyle().Foreground(ColorPrimary)
	suggestionStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// FormatError renders an error for the terminal: a red failure line, then the
// cause and the suggestion indented beneath it.
func FormatError(err error) string {
	lines := hderrors.Lines(err)
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(failStyle.Render(SymbolFail + " " + lines[0]))

	var hdErr *hderrors.Error
	hasCause := errors.As(err, &hdErr) && hdErr.Cause != nil
	for i, line := range lines[1:] {
		b.WriteString("\n  ")
		if i == 0 && hasCause {
			b.WriteString(causeStyle.Render(line))
			continue
		}
		b.WriteString(suggestionStyle.Render(line))
	}
	return b.String()
}

// FormatSuccess renders a green success line.
func FormatSuccess(msg string) string {
	return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess + " " + msg)
}
