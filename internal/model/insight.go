package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/manav03panchal/studytrack/internal/calendar"
)

// InsightType tags the metric an insight is about.
type InsightType string

// Insight types.
const (
	InsightStudyHours InsightType = "study_hours"
	InsightSleep      InsightType = "sleep"
	InsightStress     InsightType = "stress"
	InsightFocus      InsightType = "focus"
	InsightPattern    InsightType = "pattern"
)

// Category classifies the tone of an insight.
type Category string

// Insight categories.
const (
	CategoryPositive   Category = "positive"
	CategorySuggestion Category = "suggestion"
	CategoryInsight    Category = "insight"
)

// Priority ranks insights for display.
type Priority string

// Insight priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Insight is a generated, categorized observation about recent entries.
type Insight struct {
	Type     InsightType `json:"type"`
	Message  string      `json:"message"`
	Category Category    `json:"category"`
	Priority Priority    `json:"priority"`
}

// InsightReport is the persisted output of one insight run. Each run
// replaces the previous report.
type InsightReport struct {
	Key           string    `json:"key"`
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Insights      []Insight `json:"insights"`
	EntryCount    int       `json:"entry_count"`
	WindowFrom    string    `json:"window_from,omitempty"`
	WindowTo      string    `json:"window_to,omitempty"`
	LastGenerated time.Time `json:"last_generated"`
}

// SetKey sets the database key for this report.
func (r *InsightReport) SetKey(key string) {
	r.Key = key
}

// GetKey returns the database key for this report.
func (r *InsightReport) GetKey() string {
	return r.Key
}

// Window returns the date range the report was generated from.
func (r *InsightReport) Window() calendar.Range {
	var w calendar.Range
	w.From, _ = calendar.Parse(r.WindowFrom)
	w.To, _ = calendar.Parse(r.WindowTo)
	return w
}

// GenerateInsightsKey returns the database key for a user's insight report.
func GenerateInsightsKey(userID string) string {
	return userKey(PrefixInsights, userID)
}

// NewInsightReport creates a report with a time-ordered UUID v7 ID.
func NewInsightReport(userID string, insights []Insight, entryCount int, window calendar.Range) (*InsightReport, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	if insights == nil {
		insights = []Insight{}
	}
	return &InsightReport{
		Key:           GenerateInsightsKey(userID),
		ID:            id.String(),
		UserID:        userID,
		Insights:      insights,
		EntryCount:    entryCount,
		WindowFrom:    window.From.String(),
		WindowTo:      window.To.String(),
		LastGenerated: time.Now(),
	}, nil
}
