package model

import (
	"strings"
	"time"

	"github.com/manav03panchal/studytrack/internal/calendar"
)

// Neutral is the midpoint assumed for a missing 1-5 level.
const Neutral = 3

// DailyEntry holds one user's tracked metrics for a single calendar date.
// Nil numeric fields were not recorded.
type DailyEntry struct {
	Key         string        `json:"key"`
	UserID      string        `json:"user_id"`
	Date        calendar.Date `json:"date"`
	StudyHours  *float64      `json:"study_hours,omitempty"`
	BreakTime   *float64      `json:"break_time,omitempty"`
	Sleep       *float64      `json:"sleep,omitempty"`
	StressLevel *int          `json:"stress_level,omitempty"`
	Focus       *int          `json:"focus,omitempty"`
	Reflection  string        `json:"reflection,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SetKey sets the database key for this entry.
func (e *DailyEntry) SetKey(key string) {
	e.Key = key
}

// GetKey returns the database key for this entry.
func (e *DailyEntry) GetKey() string {
	return e.Key
}

// StudyHoursOr0 returns study hours, or 0 when missing.
func (e *DailyEntry) StudyHoursOr0() float64 {
	return floatOr(e.StudyHours, 0)
}

// BreakTimeOr0 returns break minutes, or 0 when missing.
func (e *DailyEntry) BreakTimeOr0() float64 {
	return floatOr(e.BreakTime, 0)
}

// SleepOr0 returns sleep hours, or 0 when missing.
func (e *DailyEntry) SleepOr0() float64 {
	return floatOr(e.Sleep, 0)
}

// StressOrNeutral returns the stress level, or Neutral when missing.
func (e *DailyEntry) StressOrNeutral() int {
	return intOr(e.StressLevel, Neutral)
}

// FocusOrNeutral returns the focus level, or Neutral when missing.
func (e *DailyEntry) FocusOrNeutral() int {
	return intOr(e.Focus, Neutral)
}

// HasMetrics reports whether any numeric field was recorded.
func (e *DailyEntry) HasMetrics() bool {
	return e.StudyHours != nil || e.BreakTime != nil || e.Sleep != nil ||
		e.StressLevel != nil || e.Focus != nil
}

// Merge copies every recorded field of other onto e. Missing fields in
// other leave e untouched.
func (e *DailyEntry) Merge(other *DailyEntry) {
	if other.StudyHours != nil {
		e.StudyHours = other.StudyHours
	}
	if other.BreakTime != nil {
		e.BreakTime = other.BreakTime
	}
	if other.Sleep != nil {
		e.Sleep = other.Sleep
	}
	if other.StressLevel != nil {
		e.StressLevel = other.StressLevel
	}
	if other.Focus != nil {
		e.Focus = other.Focus
	}
	if other.Reflection != "" {
		e.Reflection = other.Reflection
	}
}

// EntryKeyPrefix returns the key prefix shared by all entries of a user.
func EntryKeyPrefix(userID string) string {
	return userKey(PrefixEntry, userID) + ":"
}

// GenerateEntryKey returns the database key for a user's entry on date.
// Keys sort in date order within a user.
func GenerateEntryKey(userID string, date calendar.Date) string {
	return EntryKeyPrefix(userID) + date.String()
}

// ParseEntryKey splits an entry key into user ID and date.
func ParseEntryKey(key string) (string, calendar.Date, bool) {
	rest, ok := strings.CutPrefix(key, PrefixEntry+":")
	if !ok {
		return "", calendar.Date{}, false
	}
	idx := strings.LastIndex(rest, ":")
	if idx <= 0 {
		return "", calendar.Date{}, false
	}
	date, err := calendar.Parse(rest[idx+1:])
	if err != nil {
		return "", calendar.Date{}, false
	}
	return rest[:idx], date, true
}

// NewDailyEntry creates an empty entry for userID on date.
func NewDailyEntry(userID string, date calendar.Date) *DailyEntry {
	now := time.Now()
	return &DailyEntry{
		Key:       GenerateEntryKey(userID, date),
		UserID:    userID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
