// Package tui provides the terminal dashboard for studytrack.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/studytrack/internal/model"
)

// Color palette for the TUI dashboard.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#10B981") // Green
	ColorMuted     = lipgloss.Color("#6B7280") // Gray
	ColorWarning   = lipgloss.Color("#F59E0B") // Yellow
	ColorError     = lipgloss.Color("#EF4444") // Red
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorActive    = lipgloss.Color("#3B82F6") // Blue
	ColorBorder    = lipgloss.Color("#4B5563") // Dark gray
)

// Base styles for the TUI.
var (
	// StyleTitle is used for section titles.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMetric is used for metric labels in the stats box.
	StyleMetric = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// StyleValue is used for numbers: streak days, averages.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	StyleMotivation = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	StyleActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	StyleInactive = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleHelp is used for help text at the bottom.
	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1)

	StyleHelpKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	StyleHelpDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleMuted is an alias for StyleSubtitle.
	StyleMuted = StyleSubtitle
)

// Box styles for the dashboard sections.
var (
	StyleStreakBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	// StyleActiveStreakBox is used once today has been logged.
	StyleActiveStreakBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorSuccess).
				Padding(1, 2).
				MarginBottom(1)

	StyleStatsBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2).
			MarginBottom(1)

	StyleInsightsBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(1, 2).
				MarginBottom(1)
)

var categoryStyles = map[model.Category]lipgloss.Style{
	model.CategoryPositive:   StyleSuccess,
	model.CategorySuggestion: StyleWarning,
	model.CategoryInsight:    lipgloss.NewStyle().Foreground(ColorActive),
}

var categoryIcons = map[model.Category]string{
	model.CategoryPositive:   "+",
	model.CategorySuggestion: "!",
	model.CategoryInsight:    "*",
}

// CategoryMarker renders the colored marker shown before an insight.
func CategoryMarker(c model.Category) string {
	icon, ok := categoryIcons[c]
	if !ok {
		return StyleMuted.Render("-")
	}
	return categoryStyles[c].Render(icon)
}

// ProgressBar creates a progress bar string.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", empty))
}
