package output

import (
	"time"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/service"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// EntryOutput represents an entry in JSON output.
type EntryOutput struct {
	Date        string   `json:"date"`
	StudyHours  *float64 `json:"study_hours"`
	BreakTime   *float64 `json:"break_time"`
	Sleep       *float64 `json:"sleep"`
	StressLevel *int     `json:"stress_level"`
	Focus       *int     `json:"focus"`
	Reflection  string   `json:"reflection,omitempty"`
	UpdatedAt   string   `json:"updated_at"`
}

// NewEntryOutput creates an EntryOutput from a DailyEntry.
func NewEntryOutput(e *model.DailyEntry) *EntryOutput {
	return &EntryOutput{
		Date:        e.Date.String(),
		StudyHours:  e.StudyHours,
		BreakTime:   e.BreakTime,
		Sleep:       e.Sleep,
		StressLevel: e.StressLevel,
		Focus:       e.Focus,
		Reflection:  e.Reflection,
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

// EntryResponse represents the log command output in JSON.
type EntryResponse struct {
	Status string       `json:"status"`
	Entry  *EntryOutput `json:"entry"`
}

// EntriesResponse represents the entries list output in JSON.
type EntriesResponse struct {
	Entries []*EntryOutput `json:"entries"`
	Count   int            `json:"count"`
}

// NewEntriesResponse creates an EntriesResponse from entries.
func NewEntriesResponse(entries []model.DailyEntry) *EntriesResponse {
	outputs := make([]*EntryOutput, len(entries))
	for i := range entries {
		outputs[i] = NewEntryOutput(&entries[i])
	}
	return &EntriesResponse{Entries: outputs, Count: len(entries)}
}

// StreakResponse represents the streak output in JSON.
type StreakResponse struct {
	Current     int    `json:"current"`
	Longest     int    `json:"longest"`
	Policy      string `json:"policy"`
	Motivation  string `json:"motivation,omitempty"`
	LastUpdated string `json:"last_updated"`
}

// NewStreakResponse creates a StreakResponse from a StreakRecord.
func NewStreakResponse(rec *model.StreakRecord) *StreakResponse {
	return &StreakResponse{
		Current:     rec.Current,
		Longest:     rec.Longest,
		Policy:      rec.Policy,
		Motivation:  analytics.MotivationFor(rec.Current),
		LastUpdated: rec.LastUpdated.Format(time.RFC3339),
	}
}

// InsightsResponse represents the insights output in JSON.
type InsightsResponse struct {
	ID            string          `json:"id"`
	Insights      []model.Insight `json:"insights"`
	EntryCount    int             `json:"entry_count"`
	WindowFrom    string          `json:"window_from"`
	WindowTo      string          `json:"window_to"`
	LastGenerated string          `json:"last_generated"`
}

// NewInsightsResponse creates an InsightsResponse from a report.
func NewInsightsResponse(r *model.InsightReport) *InsightsResponse {
	insights := r.Insights
	if insights == nil {
		insights = []model.Insight{}
	}
	return &InsightsResponse{
		ID:            r.ID,
		Insights:      insights,
		EntryCount:    r.EntryCount,
		WindowFrom:    r.WindowFrom,
		WindowTo:      r.WindowTo,
		LastGenerated: r.LastGenerated.Format(time.RFC3339),
	}
}

// StatsResponse represents the stats output in JSON.
type StatsResponse struct {
	*service.Stats
	Directions map[string]string `json:"directions,omitempty"`
}

// NewStatsResponse creates a StatsResponse with trend directions.
func NewStatsResponse(s *service.Stats) *StatsResponse {
	resp := &StatsResponse{Stats: s}
	if s.Trend != nil {
		resp.Directions = map[string]string{
			"study_hours": analytics.Direction(s.Trend.StudyHours),
			"break_time":  analytics.Direction(s.Trend.BreakTime),
			"sleep":       analytics.Direction(s.Trend.Sleep),
			"stress":      analytics.Direction(s.Trend.Stress),
			"focus":       analytics.Direction(s.Trend.Focus),
		}
	}
	return resp
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// StatusResponse is a generic acknowledgement.
type StatusResponse struct {
	Status string `json:"status"`
	Date   string `json:"date,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// PrintEntry outputs a logged entry in JSON format.
func (j *JSONFormatter) PrintEntry(e *model.DailyEntry, created bool) error {
	status := "updated"
	if created {
		status = "created"
	}
	return j.JSON(EntryResponse{Status: status, Entry: NewEntryOutput(e)})
}

// PrintEntries outputs entries in JSON format.
func (j *JSONFormatter) PrintEntries(entries []model.DailyEntry) error {
	return j.JSON(NewEntriesResponse(entries))
}

// PrintStreak outputs a streak in JSON format.
func (j *JSONFormatter) PrintStreak(rec *model.StreakRecord) error {
	return j.JSON(NewStreakResponse(rec))
}

// PrintInsights outputs an insight report in JSON format.
func (j *JSONFormatter) PrintInsights(r *model.InsightReport) error {
	return j.JSON(NewInsightsResponse(r))
}

// PrintStats outputs stats in JSON format.
func (j *JSONFormatter) PrintStats(s *service.Stats) error {
	return j.JSON(NewStatsResponse(s))
}

// PrintError outputs an error in JSON format.
func (j *JSONFormatter) PrintError(status, errMsg, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     status,
		Error:      errMsg,
		Message:    message,
		Suggestion: suggestion,
	})
}
