package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/manav03panchal/studytrack/internal/service"
	"github.com/manav03panchal/studytrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "tui-user"

// 2025-03-14 is a Friday.
var testToday = calendar.MustParse("2025-03-14")

func setupDashboard(t *testing.T) (*DashboardModel, *storage.BadgerStore) {
	t.Helper()
	db, err := storage.Open(storage.Options{InMemory: true})
	require.NoError(t, err)
	store := storage.NewBadgerStore(db)
	t.Cleanup(func() { store.Close() })

	a := service.NewAnalyzer(store, store)
	a.Clock = func() time.Time {
		return time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	}
	m := NewDashboardModel(DashboardConfig{Analyzer: a, UserID: testUser})
	return m, store
}

func logDay(t *testing.T, store storage.EntryStore, offset int) {
	t.Helper()
	e := &model.DailyEntry{
		StudyHours:  model.Float(7),
		BreakTime:   model.Float(30),
		Sleep:       model.Float(8),
		StressLevel: model.Int(2),
		Focus:       model.Int(5),
	}
	require.NoError(t, store.Put(context.Background(), testUser, testToday.AddDays(offset), e))
}

// =============================================================================
// ProgressBar Tests
// =============================================================================

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		width      int
	}{
		{"zero", 0, 10},
		{"half", 50, 10},
		{"full", 100, 10},
		{"over", 150, 10},
		{"negative", -10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.percentage, tt.width)
			assert.NotEmpty(t, bar)
		})
	}
}

func TestProgressBarWidth(t *testing.T) {
	bar10 := ProgressBar(50, 10)
	bar20 := ProgressBar(50, 20)

	assert.Greater(t, len(bar20), len(bar10))
}

func TestCategoryMarker(t *testing.T) {
	assert.Contains(t, CategoryMarker(model.CategoryPositive), "+")
	assert.Contains(t, CategoryMarker(model.CategorySuggestion), "!")
	assert.Contains(t, CategoryMarker(model.CategoryInsight), "*")
	assert.Contains(t, CategoryMarker(model.Category("other")), "-")
}

// =============================================================================
// StreakComponent Tests
// =============================================================================

func TestStreakComponentView(t *testing.T) {
	t.Run("no_record", func(t *testing.T) {
		view := NewStreakComponent(nil, analytics.WeekProgress{}, false, 80).View()
		assert.Contains(t, view, "No active streak")
		assert.Contains(t, view, "0/7")
	})

	t.Run("broken_streak_shows_longest", func(t *testing.T) {
		rec := &model.StreakRecord{Current: 0, Longest: 9}
		view := NewStreakComponent(rec, analytics.WeekProgress{}, false, 80).View()
		assert.Contains(t, view, "No active streak")
		assert.Contains(t, view, "Longest: 9 days")
	})

	t.Run("active", func(t *testing.T) {
		rec := &model.StreakRecord{Current: 5, Longest: 12}
		wp := analytics.WeekProgress{Days: [7]bool{true, true, true, true, true}, Tracked: 5}
		view := NewStreakComponent(rec, wp, true, 80).View()

		assert.Contains(t, view, "5 days")
		assert.Contains(t, view, "Longest: 12 days")
		assert.Contains(t, view, "5/7")
		assert.Contains(t, view, "●")
		assert.Contains(t, view, "on fire")
	})

	t.Run("single_day", func(t *testing.T) {
		rec := &model.StreakRecord{Current: 1, Longest: 1}
		view := NewStreakComponent(rec, analytics.WeekProgress{}, true, 80).View()
		assert.Contains(t, view, "1 day streak")
	})
}

// =============================================================================
// StatsComponent Tests
// =============================================================================

func TestStatsComponentView(t *testing.T) {
	t.Run("nil_stats", func(t *testing.T) {
		view := NewStatsComponent(nil, 80).View()
		assert.Contains(t, view, "No stats yet")
	})

	t.Run("empty_window", func(t *testing.T) {
		stats := &service.Stats{Window: calendar.LastNDays(testToday, 7)}
		view := NewStatsComponent(stats, 80).View()
		assert.Contains(t, view, "Last 7 days")
		assert.Contains(t, view, "No entries in this window")
	})

	t.Run("with_trend", func(t *testing.T) {
		stats := &service.Stats{
			Window:  calendar.LastNDays(testToday, 7),
			Summary: analytics.Aggregate{Count: 4, StudyHours: 6.5, BreakTime: 45, Sleep: 7.5, Stress: 2.5, Focus: 4},
			Trend:   &analytics.Trend{StudyHours: 1.5, Focus: -0.5},
		}
		view := NewStatsComponent(stats, 80).View()

		assert.Contains(t, view, "6h 30m")
		assert.Contains(t, view, "45m")
		assert.Contains(t, view, "↑ +1.5")
		assert.Contains(t, view, "↓ -0.5")
		assert.Contains(t, view, "4 entries")
	})
}

// =============================================================================
// InsightsComponent Tests
// =============================================================================

func TestInsightsComponent(t *testing.T) {
	insights := []model.Insight{
		{Type: model.InsightStudyHours, Message: "Study more", Category: model.CategorySuggestion, Priority: model.PriorityHigh},
		{Type: model.InsightSleep, Message: "Sleep well", Category: model.CategoryPositive, Priority: model.PriorityLow},
		{Type: model.InsightFocus, Message: "Focus up", Category: model.CategorySuggestion, Priority: model.PriorityMedium},
	}

	t.Run("nil_report", func(t *testing.T) {
		view := NewInsightsComponent(nil, 7, 80, 5).View()
		assert.Contains(t, view, "No insights yet")
	})

	t.Run("below_minimum", func(t *testing.T) {
		report := &model.InsightReport{EntryCount: 3}
		view := NewInsightsComponent(report, 7, 80, 5).View()
		assert.Contains(t, view, "at least 7 days")
		assert.Contains(t, view, "(3 so far)")
	})

	t.Run("nothing_stands_out", func(t *testing.T) {
		report := &model.InsightReport{EntryCount: 10}
		view := NewInsightsComponent(report, 7, 80, 5).View()
		assert.Contains(t, view, "Nothing stands out")
	})

	t.Run("limit", func(t *testing.T) {
		report := &model.InsightReport{EntryCount: 10, Insights: insights}
		ic := NewInsightsComponent(report, 7, 80, 2)
		assert.Len(t, ic.Insights, 2)

		view := ic.View()
		assert.Contains(t, view, "Study more")
		assert.Contains(t, view, "Sleep well")
		assert.NotContains(t, view, "Focus up")
		assert.Contains(t, view, "1 more")
	})

	t.Run("zero_limit_no_truncation", func(t *testing.T) {
		report := &model.InsightReport{EntryCount: 10, Insights: insights}
		assert.Len(t, NewInsightsComponent(report, 7, 80, 0).Insights, 3)
	})
}

// =============================================================================
// HelpBar Tests
// =============================================================================

func TestHelpBar(t *testing.T) {
	bar := HelpBar()

	assert.Contains(t, bar, "log")
	assert.Contains(t, bar, "refresh")
	assert.Contains(t, bar, "quit")
}

// =============================================================================
// DashboardModel Tests
// =============================================================================

func TestNewDashboardModelDefaults(t *testing.T) {
	m := NewDashboardModel(DashboardConfig{})

	assert.NotNil(t, m.ctx)
	assert.Equal(t, time.Second, m.tickInterval)
	assert.Equal(t, time.Minute, m.refreshInterval)
	assert.Equal(t, 5, m.maxInsights)
	assert.NotNil(t, m.Init())
}

func TestDashboardView(t *testing.T) {
	m, _ := setupDashboard(t)
	assert.Equal(t, "Loading...", m.View())

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Nil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Study Dashboard")
	assert.Contains(t, view, "No active streak")
	assert.Contains(t, view, "No insights yet")
}

func TestDashboardLoadData(t *testing.T) {
	m, store := setupDashboard(t)
	for off := 0; off > -8; off-- {
		logDay(t, store, off)
	}

	m.Update(refreshMsg{})
	require.NoError(t, m.err)

	require.NotNil(t, m.streak)
	assert.Equal(t, 8, m.streak.Current)
	assert.True(t, m.loggedToday)
	require.NotNil(t, m.report)
	assert.Equal(t, 8, m.report.EntryCount)
	require.NotNil(t, m.stats)
	assert.Equal(t, 5, m.stats.Week.Tracked)
	assert.Equal(t, testToday, m.loadedFor)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "8 days")
	assert.Contains(t, view, "5/7")
}

func TestDashboardNotLoggedToday(t *testing.T) {
	m, store := setupDashboard(t)
	logDay(t, store, -1)

	m.loadData()
	require.NoError(t, m.err)
	assert.False(t, m.loggedToday)
	assert.Equal(t, 0, m.streak.Current)
	assert.Equal(t, 1, m.streak.Longest)
}

func TestDashboardKeys(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		m, _ := setupDashboard(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("ctrl_c", func(t *testing.T) {
		m, _ := setupDashboard(t)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})

	t.Run("log_hint", func(t *testing.T) {
		m, _ := setupDashboard(t)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
		assert.Contains(t, m.message, "studytrack log")
	})

	t.Run("refresh", func(t *testing.T) {
		m, store := setupDashboard(t)
		logDay(t, store, 0)
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
		assert.Equal(t, "Refreshed", m.message)
		require.NotNil(t, m.streak)
		assert.Equal(t, 1, m.streak.Current)
	})
}

func TestDashboardTick(t *testing.T) {
	m, _ := setupDashboard(t)
	m.setMessage("hello", time.Millisecond)

	_, cmd := m.Update(tickMsg(time.Now().Add(time.Second)))
	assert.NotNil(t, cmd)
	assert.Empty(t, m.message)
}

func TestDashboardNeedsReload(t *testing.T) {
	m, _ := setupDashboard(t)
	now := time.Now()

	assert.False(t, m.needsReload(now), "never loaded")

	m.loadData()
	require.NoError(t, m.err)
	assert.False(t, m.needsReload(m.lastLoad.Add(time.Second)))
	assert.True(t, m.needsReload(m.lastLoad.Add(2*time.Minute)))

	m.analyzer.Clock = func() time.Time {
		return time.Date(2025, 3, 15, 0, 0, 1, 0, time.UTC)
	}
	assert.True(t, m.needsReload(m.lastLoad.Add(time.Second)), "day rolled over")
}

func TestDashboardErrorMsg(t *testing.T) {
	m, _ := setupDashboard(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m.Update(errMsg{err: errors.New("disk on fire")})

	assert.Contains(t, m.View(), "disk on fire")
}
