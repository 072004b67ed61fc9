// Package service runs the analytics engine against an entry store and
// persists the results.
package service

import (
	"context"
	"time"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/logging"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/storage"
)

// Default window lengths in days.
const (
	DefaultInsightWindow = 14
	DefaultStatsWindow   = 7
)

// Analyzer computes streaks, insights and stats for a user.
type Analyzer struct {
	Entries storage.EntryStore
	Results storage.ResultStore

	Policy        analytics.StreakPolicy
	MinEntries    int
	InsightWindow int
	StatsWindow   int

	// Clock returns the current time; today is its calendar date.
	Clock func() time.Time
}

// NewAnalyzer creates an Analyzer with default settings.
func NewAnalyzer(entries storage.EntryStore, results storage.ResultStore) *Analyzer {
	return &Analyzer{
		Entries:       entries,
		Results:       results,
		Policy:        analytics.RequireToday,
		MinEntries:    analytics.DefaultMinEntries,
		InsightWindow: DefaultInsightWindow,
		StatsWindow:   DefaultStatsWindow,
		Clock:         time.Now,
	}
}

// Today returns the current calendar date according to the Analyzer's clock.
func (a *Analyzer) Today() calendar.Date {
	if a.Clock == nil {
		return calendar.FromTime(time.Now())
	}
	return calendar.FromTime(a.Clock())
}

// Snapshot is the result of a full refresh.
type Snapshot struct {
	UserID     string               `json:"user_id"`
	Today      calendar.Date        `json:"today"`
	Streak     *model.StreakRecord  `json:"streak"`
	Motivation string               `json:"motivation,omitempty"`
	Report     *model.InsightReport `json:"insights"`
}

// Refresh recomputes and stores both the streak and the insight report.
func (a *Analyzer) Refresh(ctx context.Context, userID string) (*Snapshot, error) {
	streak, err := a.Streak(ctx, userID)
	if err != nil {
		return nil, err
	}
	report, err := a.Insights(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		UserID:     userID,
		Today:      a.Today(),
		Streak:     streak,
		Motivation: analytics.MotivationFor(streak.Current),
		Report:     report,
	}, nil
}

// Streak computes the user's streak over their full history and stores it.
func (a *Analyzer) Streak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	start := time.Now()
	today := a.Today()

	entries, err := a.Entries.Query(ctx, userID, calendar.Range{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entries")
	}

	result, err := analytics.ComputeStreak(entries, today, a.Policy)
	if err != nil {
		return nil, err
	}

	rec := model.NewStreakRecord(userID, result.Current, result.Longest, a.Policy.String())
	if err := a.Results.PutStreak(ctx, rec); err != nil {
		return nil, errors.Wrap(err, "failed to save streak")
	}

	logging.InfoContext(ctx, "streak computed",
		logging.KeyUser, userID,
		logging.KeyEntries, len(entries),
		logging.KeyCurrent, result.Current,
		logging.KeyLongest, result.Longest,
		logging.KeyPolicy, a.Policy.String(),
		logging.KeyDuration, time.Since(start),
	)
	return rec, nil
}

// Insights generates insights over the insight window ending today and stores the report.
func (a *Analyzer) Insights(ctx context.Context, userID string) (*model.InsightReport, error) {
	start := time.Now()
	window := calendar.LastNDays(a.Today(), orDefault(a.InsightWindow, DefaultInsightWindow))

	entries, err := a.Entries.Query(ctx, userID, window)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entries")
	}

	opts := analytics.InsightOptions{MinEntries: a.MinEntries}
	insights := analytics.GenerateInsightsWith(entries, analytics.Rules(), opts)

	report, err := model.NewInsightReport(userID, insights, len(entries), window)
	if err != nil {
		return nil, err
	}
	if err := a.Results.PutInsights(ctx, report); err != nil {
		return nil, errors.Wrap(err, "failed to save insights")
	}

	logging.InfoContext(ctx, "insights generated",
		logging.KeyUser, userID,
		logging.KeyEntries, len(entries),
		logging.KeyInsights, len(insights),
		logging.KeyDuration, time.Since(start),
	)
	return report, nil
}

// CachedStreak returns the last stored streak without recomputing.
func (a *Analyzer) CachedStreak(ctx context.Context, userID string) (*model.StreakRecord, error) {
	rec, err := a.Results.GetStreak(ctx, userID)
	if storage.IsErrKeyNotFound(err) {
		return nil, errors.NewUserError("No streak has been computed yet", "Run 'studytrack streak' to compute one")
	}
	return rec, err
}

// CachedInsights returns the last stored insight report without regenerating.
func (a *Analyzer) CachedInsights(ctx context.Context, userID string) (*model.InsightReport, error) {
	report, err := a.Results.GetInsights(ctx, userID)
	if storage.IsErrKeyNotFound(err) {
		return nil, errors.ErrNoInsightReport
	}
	return report, err
}

// Stats summarises the stats window ending today.
type Stats struct {
	Today    calendar.Date          `json:"today"`
	Window   calendar.Range         `json:"window"`
	Summary  analytics.Aggregate    `json:"summary"`
	Previous analytics.Aggregate    `json:"previous"`
	Trend    *analytics.Trend       `json:"trend,omitempty"`
	Week     analytics.WeekProgress `json:"week"`
}

// Stats computes the aggregate for the stats window, its trend against the
// window before it, and progress through the current week.
func (a *Analyzer) Stats(ctx context.Context, userID string) (*Stats, error) {
	start := time.Now()
	today := a.Today()
	days := orDefault(a.StatsWindow, DefaultStatsWindow)

	window := calendar.LastNDays(today, days)
	week := calendar.WeekOf(today)
	from := window.From.AddDays(-days)
	if week.From.Before(from) {
		from = week.From
	}

	entries, err := a.Entries.Query(ctx, userID, calendar.Range{From: from, To: week.To})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load entries")
	}

	recent, older := analytics.SplitWindows(entries, today, days)
	stats := &Stats{
		Today:    today,
		Window:   window,
		Summary:  analytics.Summarize(recent),
		Previous: analytics.Summarize(older),
		Week:     analytics.WeekProgressFor(entries, today),
	}
	if trend, ok := analytics.CompareWindows(recent, older); ok {
		stats.Trend = &trend
	}

	logging.DebugContext(ctx, "stats computed",
		logging.KeyUser, userID,
		logging.KeyEntries, len(entries),
		logging.KeyDuration, time.Since(start),
	)
	return stats, nil
}

// Record merges patch into the user's entry for date, creating it if needed.
// Fields missing from patch keep their stored values.
func (a *Analyzer) Record(ctx context.Context, userID string, date calendar.Date, patch *model.DailyEntry) (*model.DailyEntry, bool, error) {
	existing, err := a.Entries.Get(ctx, userID, date)
	created := false
	switch {
	case storage.IsErrKeyNotFound(err):
		existing = model.NewDailyEntry(userID, date)
		created = true
	case err != nil:
		return nil, false, errors.Wrap(err, "failed to load entry")
	}

	existing.Merge(patch)
	if !created {
		existing.UpdatedAt = time.Now()
	}
	if err := a.Entries.Put(ctx, userID, date, existing); err != nil {
		return nil, false, errors.Wrap(err, "failed to save entry")
	}

	logging.InfoContext(ctx, "entry recorded",
		logging.KeyUser, userID,
		logging.KeyDate, date.String(),
		"created", created,
	)
	return existing, created, nil
}

// Remove deletes the user's entry for date.
func (a *Analyzer) Remove(ctx context.Context, userID string, date calendar.Date) error {
	err := a.Entries.Delete(ctx, userID, date)
	if storage.IsErrKeyNotFound(err) {
		return errors.ErrEntryNotFound
	}
	return err
}

func orDefault(n, def int) int {
	if n < 1 {
		return def
	}
	return n
}
