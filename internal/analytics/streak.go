// Package analytics turns a user's daily entry history into streak counts,
// aggregates and rule-based insights. Everything here is a pure function of
// its arguments.
package analytics

import (
	"fmt"
	"slices"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/model"
)

// StreakPolicy decides when the current run counts as still alive.
type StreakPolicy int

const (
	// RequireToday keeps the current streak only if today has an entry.
	RequireToday StreakPolicy = iota
	// GraceUntilMidnight keeps yesterday's run alive until today ends.
	GraceUntilMidnight
)

// String returns the config name of the policy.
func (p StreakPolicy) String() string {
	switch p {
	case GraceUntilMidnight:
		return "grace"
	default:
		return "require-today"
	}
}

// ParseStreakPolicy parses "require-today" or "grace". Empty means RequireToday.
func ParseStreakPolicy(s string) (StreakPolicy, error) {
	switch s {
	case "", "require-today":
		return RequireToday, nil
	case "grace", "grace-until-midnight":
		return GraceUntilMidnight, nil
	}
	return RequireToday, fmt.Errorf("unknown streak policy %q (expected require-today or grace)", s)
}

// StreakResult holds the current and longest consecutive-day counts.
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak computes the streak for entries as seen on today.
//
// Entries may be unordered and may repeat a date. Dates after today extend
// longest but never current.
func ComputeStreak(entries []model.DailyEntry, today calendar.Date, policy StreakPolicy) (StreakResult, error) {
	if err := checkDate(-1, today); err != nil {
		return StreakResult{}, err
	}

	dates, err := distinctDates(entries)
	if err != nil {
		return StreakResult{}, err
	}
	if len(dates) == 0 {
		return StreakResult{}, nil
	}

	return StreakResult{
		Current: currentRun(dates, today, policy),
		Longest: longestRun(dates),
	}, nil
}

// distinctDates returns the unique entry dates, most recent first.
func distinctDates(entries []model.DailyEntry) ([]calendar.Date, error) {
	dates := make([]calendar.Date, 0, len(entries))
	for i := range entries {
		if err := checkDate(i, entries[i].Date); err != nil {
			return nil, err
		}
		dates = append(dates, entries[i].Date)
	}

	slices.SortFunc(dates, func(a, b calendar.Date) int {
		return b.Compare(a)
	})
	return slices.Compact(dates), nil
}

func currentRun(desc []calendar.Date, today calendar.Date, policy StreakPolicy) int {
	start := 0
	for start < len(desc) && desc[start].After(today) {
		start++
	}
	if start == len(desc) {
		return 0
	}

	switch gap := calendar.DaysBetween(desc[start], today); {
	case gap == 0:
	case gap == 1 && policy == GraceUntilMidnight:
	default:
		return 0
	}

	run := 1
	for i := start + 1; i < len(desc); i++ {
		if calendar.DaysBetween(desc[i], desc[i-1]) != 1 {
			break
		}
		run++
	}
	return run
}

func longestRun(desc []calendar.Date) int {
	longest, run := 1, 1
	for i := 1; i < len(desc); i++ {
		if calendar.DaysBetween(desc[i], desc[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}
