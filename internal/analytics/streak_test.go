package analytics

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = calendar.MustParse("2025-03-14")

// entriesOn builds entries for the given day offsets relative to today.
func entriesOn(offsets ...int) []model.DailyEntry {
	entries := make([]model.DailyEntry, 0, len(offsets))
	for _, off := range offsets {
		entries = append(entries, model.DailyEntry{Date: today.AddDays(off)})
	}
	return entries
}

// =============================================================================
// ComputeStreak Tests
// =============================================================================

func TestComputeStreakEmpty(t *testing.T) {
	for _, policy := range []StreakPolicy{RequireToday, GraceUntilMidnight} {
		result, err := ComputeStreak(nil, today, policy)
		require.NoError(t, err)
		assert.Equal(t, StreakResult{}, result)
	}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		policy  StreakPolicy
		current int
		longest int
	}{
		{"single_today", []int{0}, RequireToday, 1, 1},
		{"seven_consecutive_ending_today", []int{0, -1, -2, -3, -4, -5, -6}, RequireToday, 7, 7},
		{"unordered_input", []int{-3, 0, -6, -1, -5, -2, -4}, RequireToday, 7, 7},
		{"yesterday_only_requires_today", []int{-1, -2, -3}, RequireToday, 0, 3},
		{"yesterday_only_with_grace", []int{-1, -2, -3}, GraceUntilMidnight, 3, 3},
		{"two_days_ago_with_grace", []int{-2, -3}, GraceUntilMidnight, 0, 2},
		{"gap_splits_runs_current_shorter", []int{0, -1, -3, -4, -5}, RequireToday, 2, 3},
		{"gap_splits_runs_current_longer", []int{0, -1, -2, -4}, RequireToday, 3, 3},
		{"gap_splits_runs_no_today", []int{-1, -2, -4, -5, -6, -7}, RequireToday, 0, 4},
		{"duplicates_collapse", []int{0, 0, -1, -1, -2}, RequireToday, 3, 3},
		{"future_entries_only_count_for_longest", []int{3, 2, 1, 0}, RequireToday, 1, 4},
		{"future_only", []int{1, 2}, RequireToday, 0, 2},
		{"old_history", []int{-30, -31, -32, -33, -34}, RequireToday, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ComputeStreak(entriesOn(tt.offsets...), today, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, tt.current, result.Current, "current")
			assert.Equal(t, tt.longest, result.Longest, "longest")
		})
	}
}

func TestComputeStreakAcrossMonthAndDST(t *testing.T) {
	// US DST starts 2025-03-09, EU DST ends 2025-10-26.
	for _, end := range []string{"2025-03-10", "2025-10-27", "2025-03-01", "2024-03-01"} {
		t.Run(end, func(t *testing.T) {
			ref := calendar.MustParse(end)
			var entries []model.DailyEntry
			for i := 0; i < 5; i++ {
				entries = append(entries, model.DailyEntry{Date: ref.AddDays(-i)})
			}
			result, err := ComputeStreak(entries, ref, RequireToday)
			require.NoError(t, err)
			assert.Equal(t, StreakResult{Current: 5, Longest: 5}, result)
		})
	}
}

func TestComputeStreakInvalidEntry(t *testing.T) {
	entries := []model.DailyEntry{
		{Date: today},
		{Date: calendar.Date{}},
	}
	_, err := ComputeStreak(entries, today, RequireToday)
	require.Error(t, err)

	var invalid *InvalidEntryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)
	assert.Contains(t, err.Error(), "index 1")

	entries[1].Date = calendar.New(2025, time.February, 30)
	_, err = ComputeStreak(entries, today, RequireToday)
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Reason, "2025-02-30")
}

func TestComputeStreakInvalidReferenceDate(t *testing.T) {
	_, err := ComputeStreak(entriesOn(0), calendar.Date{}, RequireToday)
	var invalid *InvalidEntryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, -1, invalid.Index)
}

func TestComputeStreakInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		n := rng.IntN(40)
		offsets := make([]int, n)
		for j := range offsets {
			offsets[j] = rng.IntN(60) - 50
		}
		entries := entriesOn(offsets...)

		for _, policy := range []StreakPolicy{RequireToday, GraceUntilMidnight} {
			result, err := ComputeStreak(entries, today, policy)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, result.Current, 0)
			assert.LessOrEqual(t, result.Current, result.Longest)
			assert.LessOrEqual(t, result.Longest, len(entries))
		}
	}
}

func TestComputeStreakIdempotent(t *testing.T) {
	entries := entriesOn(0, -1, -2, -5)
	first, err := ComputeStreak(entries, today, RequireToday)
	require.NoError(t, err)
	second, err := ComputeStreak(entries, today, RequireToday)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Input order is left untouched.
	assert.Equal(t, today, entries[0].Date)
	assert.Equal(t, today.AddDays(-5), entries[3].Date)
}

// =============================================================================
// StreakPolicy Tests
// =============================================================================

func TestParseStreakPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    StreakPolicy
		wantErr bool
	}{
		{"", RequireToday, false},
		{"require-today", RequireToday, false},
		{"grace", GraceUntilMidnight, false},
		{"grace-until-midnight", GraceUntilMidnight, false},
		{"sometimes", RequireToday, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStreakPolicy(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "require-today", RequireToday.String())
	assert.Equal(t, "grace", GraceUntilMidnight.String())
}
