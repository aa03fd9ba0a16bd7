package monitor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/hostdash/internal/screen"
)

// Dashboard color palette
const (
	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextMuted   = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent = lipgloss.Color("#FF2E97") // Neon pink

	// Graph colors
	ColorGraph = lipgloss.Color("#00FFFF") // Neon cyan

	// Menu highlight defaults: black on cyan
	ColorHighlight     = lipgloss.Color("#00FFFF")
	ColorHighlightText = lipgloss.Color("#000000")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Theme holds the user-configurable colors.
type Theme struct {
	Highlight     lipgloss.Color
	HighlightText lipgloss.Color
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Highlight:     ColorHighlight,
		HighlightText: ColorHighlightText,
	}
}

// Styles maps surface attributes to lipgloss styles for the theme.
func (t Theme) Styles() screen.Styles {
	highlight := t.Highlight
	if highlight == "" {
		highlight = ColorHighlight
	}
	text := t.HighlightText
	if text == "" {
		text = ColorHighlightText
	}

	return screen.Styles{
		screen.AttrHighlight: lipgloss.NewStyle().Foreground(text).Background(highlight),
		screen.AttrTitle:     lipgloss.NewStyle().Foreground(ColorAccent).Bold(true),
		screen.AttrGraph:     lipgloss.NewStyle().Foreground(ColorGraph),
		screen.AttrError:     lipgloss.NewStyle().Foreground(ColorCritical),
		screen.AttrMuted:     lipgloss.NewStyle().Foreground(ColorTextMuted),
		screen.AttrWarning:   lipgloss.NewStyle().Foreground(ColorWarning),
		screen.AttrHealthy:   lipgloss.NewStyle().Foreground(ColorHealthy),
	}
}

// MetricAttr returns the surface attribute for a percentage-based metric.
// Uses threshold-based coloring: green < 70%, amber 70-90%, red >= 90%.
func MetricAttr(percent float64) screen.Attr {
	switch {
	case percent >= CriticalThreshold:
		return screen.AttrError
	case percent >= WarningThreshold:
		return screen.AttrWarning
	default:
		return screen.AttrHealthy
	}
}
