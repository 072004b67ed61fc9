package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/service"
)

// StreakComponent displays the current streak and this week's progress.
type StreakComponent struct {
	Record      *model.StreakRecord
	Week        analytics.WeekProgress
	LoggedToday bool
	Width       int
}

// NewStreakComponent creates a new streak component.
func NewStreakComponent(rec *model.StreakRecord, week analytics.WeekProgress, loggedToday bool, width int) *StreakComponent {
	return &StreakComponent{
		Record:      rec,
		Week:        week,
		LoggedToday: loggedToday,
		Width:       width,
	}
}

// View renders the streak component.
func (sc *StreakComponent) View() string {
	var content strings.Builder

	if sc.Record == nil || sc.Record.Current == 0 {
		content.WriteString(StyleInactive.Render("No active streak"))
		if sc.Record != nil && sc.Record.Longest > 0 {
			content.WriteString("\n")
			content.WriteString(StyleSubtitle.Render(fmt.Sprintf("Longest: %s", days(sc.Record.Longest))))
		}
		content.WriteString("\n\n")
		content.WriteString(sc.weekLine())
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Log today to start a new streak"))

		return StyleStreakBox.Width(sc.Width - 4).Render(content.String())
	}

	header := StyleValue.Render(days(sc.Record.Current)) + " streak"
	if sc.LoggedToday {
		header = StyleActive.Render("● ") + header
	}
	content.WriteString(header)
	content.WriteString("\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("Longest: %s", days(sc.Record.Longest))))
	content.WriteString("\n\n")
	content.WriteString(sc.weekLine())

	if msg := analytics.MotivationFor(sc.Record.Current); msg != "" {
		content.WriteString("\n\n")
		content.WriteString(StyleMotivation.Render(msg))
	}

	box := StyleStreakBox
	if sc.LoggedToday {
		box = StyleActiveStreakBox
	}
	return box.Width(sc.Width - 4).Render(content.String())
}

func (sc *StreakComponent) weekLine() string {
	return fmt.Sprintf("This week  %s  %d/7", output.WeekBar(sc.Week), sc.Week.Tracked)
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// StatsComponent displays averages for the stats window and their trend.
type StatsComponent struct {
	Stats *service.Stats
	Width int
}

// NewStatsComponent creates a new stats component.
func NewStatsComponent(stats *service.Stats, width int) *StatsComponent {
	return &StatsComponent{Stats: stats, Width: width}
}

// View renders the stats component.
func (sc *StatsComponent) View() string {
	var content strings.Builder

	if sc.Stats == nil {
		content.WriteString(StyleTitle.Render("Averages"))
		content.WriteString("\n")
		content.WriteString(StyleMuted.Render("No stats yet"))
		return StyleStatsBox.Width(sc.Width - 4).Render(content.String())
	}

	content.WriteString(StyleTitle.Render(fmt.Sprintf("Last %d days", sc.Stats.Window.Days())))
	content.WriteString("\n")

	if sc.Stats.Summary.Count == 0 {
		content.WriteString(StyleMuted.Render("No entries in this window"))
		return StyleStatsBox.Width(sc.Width - 4).Render(content.String())
	}

	s, t := sc.Stats.Summary, sc.Stats.Trend
	rows := []struct {
		label string
		value string
		delta func(*analytics.Trend) float64
	}{
		{"Study", output.FormatHours(s.StudyHours), func(t *analytics.Trend) float64 { return t.StudyHours }},
		{"Break", output.FormatMinutes(s.BreakTime), func(t *analytics.Trend) float64 { return t.BreakTime }},
		{"Sleep", output.FormatHours(s.Sleep), func(t *analytics.Trend) float64 { return t.Sleep }},
		{"Stress", fmt.Sprintf("%.1f", s.Stress), func(t *analytics.Trend) float64 { return t.Stress }},
		{"Focus", fmt.Sprintf("%.1f", s.Focus), func(t *analytics.Trend) float64 { return t.Focus }},
	}

	for i, r := range rows {
		if i > 0 {
			content.WriteString("\n")
		}
		line := StyleMetric.Render(fmt.Sprintf("%-7s", r.label)) + StyleValue.Render(fmt.Sprintf("%-8s", r.value))
		if t != nil {
			d := r.delta(t)
			line += StyleSubtitle.Render(fmt.Sprintf("%s %+.1f", output.TrendArrow(d), d))
		}
		content.WriteString(line)
	}

	content.WriteString("\n\n")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d entries", s.Count)))

	return StyleStatsBox.Width(sc.Width - 4).Render(content.String())
}

// InsightsComponent displays the latest insight report.
type InsightsComponent struct {
	Report     *model.InsightReport
	Insights   []model.Insight
	MinEntries int
	Width      int
	Limit      int
}

// NewInsightsComponent creates a new insights component showing at most limit insights.
func NewInsightsComponent(report *model.InsightReport, minEntries, width, limit int) *InsightsComponent {
	ic := &InsightsComponent{
		Report:     report,
		MinEntries: minEntries,
		Width:      width,
		Limit:      limit,
	}
	if report != nil {
		ic.Insights = report.Insights
		if limit > 0 && len(ic.Insights) > limit {
			ic.Insights = ic.Insights[:limit]
		}
	}
	return ic
}

// View renders the insights component.
func (ic *InsightsComponent) View() string {
	var content strings.Builder

	content.WriteString(StyleTitle.Render("Insights"))
	content.WriteString("\n")

	switch {
	case ic.Report == nil:
		content.WriteString(StyleMuted.Render("No insights yet"))
	case len(ic.Insights) == 0 && ic.Report.EntryCount < ic.MinEntries:
		content.WriteString(StyleMuted.Render(fmt.Sprintf("Log at least %d days to unlock insights (%d so far)",
			ic.MinEntries, ic.Report.EntryCount)))
	case len(ic.Insights) == 0:
		content.WriteString(StyleMuted.Render("Nothing stands out. Keep going!"))
	default:
		textWidth := max(ic.Width-10, 20)
		for i, in := range ic.Insights {
			if i > 0 {
				content.WriteString("\n")
			}
			msg := lipgloss.NewStyle().Width(textWidth).Render(in.Message)
			content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, CategoryMarker(in.Category), " ", msg))
		}
		if hidden := len(ic.Report.Insights) - len(ic.Insights); hidden > 0 {
			content.WriteString("\n\n")
			content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d more, see 'studytrack insights'", hidden)))
		}
	}

	return StyleInsightsBox.Width(ic.Width - 4).Render(content.String())
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"l", "log"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}
