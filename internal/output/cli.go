package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/service"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Yellow
	colorError   = lipgloss.Color("#EF4444") // Red
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleValue = lipgloss.NewStyle().
			Bold(true)

	styleReflection = lipgloss.NewStyle().
			Italic(true).
			Foreground(colorMuted)
)

// categoryStyles colors insights by category.
var categoryStyles = map[model.Category]lipgloss.Style{
	model.CategoryPositive:   lipgloss.NewStyle().Foreground(colorSuccess),
	model.CategorySuggestion: lipgloss.NewStyle().Foreground(colorWarning),
	model.CategoryInsight:    lipgloss.NewStyle().Foreground(colorInfo),
}

var categoryIcons = map[model.Category]string{
	model.CategoryPositive:   "✓",
	model.CategorySuggestion: "→",
	model.CategoryInsight:    "•",
}

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// Value formats an emphasised value.
func (c *CLIFormatter) Value(text string) string {
	return c.render(styleValue, text)
}

// Wrap wraps text to the terminal width minus indent.
func (c *CLIFormatter) Wrap(text string, indent int) string {
	width := c.Width() - indent
	if width < 20 {
		return text
	}
	lines := strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n"+strings.Repeat(" ", indent))
}

// PrintEntry prints a single entry after it was logged.
func (c *CLIFormatter) PrintEntry(e *model.DailyEntry, created bool) {
	if created {
		c.Success("Logged " + e.Date.String())
	} else {
		c.Success("Updated " + e.Date.String())
	}
	c.Printf("  Study:  %s\n", c.Value(FormatFloat(e.StudyHours, FormatHours)))
	c.Printf("  Break:  %s\n", c.Value(FormatFloat(e.BreakTime, FormatMinutes)))
	c.Printf("  Sleep:  %s\n", c.Value(FormatFloat(e.Sleep, FormatHours)))
	c.Printf("  Stress: %s\n", c.Value(FormatLevel(e.StressLevel)))
	c.Printf("  Focus:  %s\n", c.Value(FormatLevel(e.Focus)))
	if e.Reflection != "" {
		c.Printf("  Note:   %s\n", c.render(styleReflection, c.Wrap(e.Reflection, 10)))
	}
}

// PrintEntries prints entries as a table.
func (c *CLIFormatter) PrintEntries(entries []model.DailyEntry) {
	if len(entries) == 0 {
		c.Muted("No entries found.")
		c.Muted("Use 'studytrack log --study 2h' to record today.")
		return
	}

	headers := []string{"DATE", "STUDY", "BREAK", "SLEEP", "STRESS", "FOCUS"}
	rows := make([]TableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TableRow{Columns: []string{
			e.Date.String(),
			FormatFloat(e.StudyHours, FormatHours),
			FormatFloat(e.BreakTime, FormatMinutes),
			FormatFloat(e.Sleep, FormatHours),
			FormatLevel(e.StressLevel),
			FormatLevel(e.Focus),
		}})
	}
	c.PrintTable(headers, rows)
	c.Muted(fmt.Sprintf("\n%d entries", len(entries)))
}

// PrintStreak prints the current and longest streak.
func (c *CLIFormatter) PrintStreak(rec *model.StreakRecord) {
	c.Title("Study streak")
	c.Printf("  Current: %s\n", c.Value(pluralDays(rec.Current)))
	c.Printf("  Longest: %s\n", c.Value(pluralDays(rec.Longest)))
	if msg := analytics.MotivationFor(rec.Current); msg != "" {
		c.Println()
		c.Println("  " + c.Wrap(msg, 2))
	} else {
		c.Println()
		c.Muted("  Log today to start a new streak.")
	}
}

// PrintInsights prints an insight report.
func (c *CLIFormatter) PrintInsights(report *model.InsightReport, minEntries int) {
	c.Title("Insights")
	c.Muted(fmt.Sprintf("  %s to %s, %d entries", report.WindowFrom, report.WindowTo, report.EntryCount))
	c.Println()

	if len(report.Insights) == 0 {
		if report.EntryCount < minEntries {
			c.Muted(fmt.Sprintf("  Log at least %d days to unlock insights (%d so far).", minEntries, report.EntryCount))
		} else {
			c.Muted("  Nothing stands out. Keep going!")
		}
		return
	}

	for _, in := range report.Insights {
		icon := categoryIcons[in.Category]
		if icon == "" {
			icon = "•"
		}
		line := c.render(categoryStyles[in.Category], icon) + " " + c.Wrap(in.Message, 4)
		c.Println("  " + line)
	}
}

// PrintStats prints aggregates, trend and week progress.
func (c *CLIFormatter) PrintStats(s *service.Stats) {
	c.Title(fmt.Sprintf("Last %d days", s.Window.Days()))
	c.Muted(fmt.Sprintf("  %s to %s, %d entries", s.Window.From, s.Window.To, s.Summary.Count))
	c.Println()

	rows := []TableRow{
		{Columns: []string{"Study", FormatHours(s.Summary.StudyHours), trendCell(s.Trend, func(t *analytics.Trend) float64 { return t.StudyHours })}},
		{Columns: []string{"Break", FormatMinutes(s.Summary.BreakTime), trendCell(s.Trend, func(t *analytics.Trend) float64 { return t.BreakTime })}},
		{Columns: []string{"Sleep", FormatHours(s.Summary.Sleep), trendCell(s.Trend, func(t *analytics.Trend) float64 { return t.Sleep })}},
		{Columns: []string{"Stress", fmt.Sprintf("%.1f", s.Summary.Stress), trendCell(s.Trend, func(t *analytics.Trend) float64 { return t.Stress })}},
		{Columns: []string{"Focus", fmt.Sprintf("%.1f", s.Summary.Focus), trendCell(s.Trend, func(t *analytics.Trend) float64 { return t.Focus })}},
	}
	c.PrintTable([]string{"METRIC", "DAILY AVG", "VS PREVIOUS"}, rows)

	c.Println()
	c.Printf("This week  %s  %d/7\n", WeekBar(s.Week), s.Week.Tracked)
}

// PrintConfig prints key/value configuration pairs.
func (c *CLIFormatter) PrintConfig(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		value := p[1]
		if value == "" {
			value = "-"
		}
		c.Printf("%-*s  %s\n", width, p[0], value)
	}
}

// WeekBar renders Monday..Sunday as filled or empty cells.
func WeekBar(wp analytics.WeekProgress) string {
	var sb strings.Builder
	for i, done := range wp.Days {
		if i > 0 {
			sb.WriteString(" ")
		}
		if done {
			sb.WriteString("■")
		} else {
			sb.WriteString("□")
		}
	}
	return sb.String()
}

// TrendArrow returns an arrow for a trend direction.
func TrendArrow(delta float64) string {
	switch analytics.Direction(delta) {
	case "up":
		return "↑"
	case "down":
		return "↓"
	default:
		return "→"
	}
}

func trendCell(t *analytics.Trend, pick func(*analytics.Trend) float64) string {
	if t == nil {
		return "-"
	}
	d := pick(t)
	return fmt.Sprintf("%s %+.1f", TrendArrow(d), d)
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]) + "  ")
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]) + "  ")
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}

// pad left-aligns s to width display cells.
func pad(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
