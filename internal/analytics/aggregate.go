package analytics

import (
	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/model"
)

// Aggregate holds metric means over a window of entries. Missing hours and
// break time count as 0; missing stress and focus count as model.Neutral.
type Aggregate struct {
	Count      int     `json:"count"`
	StudyHours float64 `json:"study_hours"`
	BreakTime  float64 `json:"break_time"`
	Sleep      float64 `json:"sleep"`
	Stress     float64 `json:"stress"`
	Focus      float64 `json:"focus"`
}

// Summarize computes the mean of every metric. An empty input yields a zero Aggregate.
func Summarize(entries []model.DailyEntry) Aggregate {
	if len(entries) == 0 {
		return Aggregate{}
	}

	var agg Aggregate
	var stress, focus int
	for i := range entries {
		e := &entries[i]
		agg.StudyHours += e.StudyHoursOr0()
		agg.BreakTime += e.BreakTimeOr0()
		agg.Sleep += e.SleepOr0()
		stress += e.StressOrNeutral()
		focus += e.FocusOrNeutral()
	}

	n := float64(len(entries))
	agg.Count = len(entries)
	agg.StudyHours /= n
	agg.BreakTime /= n
	agg.Sleep /= n
	agg.Stress = float64(stress) / n
	agg.Focus = float64(focus) / n
	return agg
}

// Trend is the per-metric difference between two windows (recent minus older).
type Trend struct {
	StudyHours float64 `json:"study_hours"`
	BreakTime  float64 `json:"break_time"`
	Sleep      float64 `json:"sleep"`
	Stress     float64 `json:"stress"`
	Focus      float64 `json:"focus"`
}

// CompareWindows returns recent minus older for every metric mean. ok is
// false when either window has no entries.
func CompareWindows(recent, older []model.DailyEntry) (Trend, bool) {
	if len(recent) == 0 || len(older) == 0 {
		return Trend{}, false
	}
	r, o := Summarize(recent), Summarize(older)
	return Trend{
		StudyHours: r.StudyHours - o.StudyHours,
		BreakTime:  r.BreakTime - o.BreakTime,
		Sleep:      r.Sleep - o.Sleep,
		Stress:     r.Stress - o.Stress,
		Focus:      r.Focus - o.Focus,
	}, true
}

// SplitWindows partitions entries into the last days days ending today and
// the days days before that. Entries outside both windows are dropped.
func SplitWindows(entries []model.DailyEntry, today calendar.Date, days int) (recent, older []model.DailyEntry) {
	recentRange := calendar.LastNDays(today, days)
	olderRange := recentRange.Shift(-recentRange.Days())

	for _, e := range entries {
		switch {
		case recentRange.Contains(e.Date):
			recent = append(recent, e)
		case olderRange.Contains(e.Date):
			older = append(older, e)
		}
	}
	return recent, older
}

// Direction labels a trend delta as "up", "down" or "flat".
func Direction(delta float64) string {
	const epsilon = 0.05
	switch {
	case delta > epsilon:
		return "up"
	case delta < -epsilon:
		return "down"
	default:
		return "flat"
	}
}

// WeekProgress records which days of the current Monday..Sunday week were tracked.
type WeekProgress struct {
	Week    calendar.Range `json:"-"`
	Days    [7]bool        `json:"days"`
	Tracked int            `json:"tracked"`
}

// WeekProgressFor marks the tracked days of the week containing today.
func WeekProgressFor(entries []model.DailyEntry, today calendar.Date) WeekProgress {
	wp := WeekProgress{Week: calendar.WeekOf(today)}
	for _, e := range entries {
		if !wp.Week.Contains(e.Date) {
			continue
		}
		i := calendar.DaysBetween(wp.Week.From, e.Date)
		if !wp.Days[i] {
			wp.Days[i] = true
			wp.Tracked++
		}
	}
	return wp
}

// MotivationFor returns an encouragement line for a current streak, or ""
// when there is no streak.
func MotivationFor(streak int) string {
	switch {
	case streak <= 0:
		return ""
	case streak == 1:
		return "Great start! Every journey begins with a single step."
	case streak <= 3:
		return "You're building a great habit! Keep it up!"
	case streak <= 7:
		return "Amazing consistency! You're on fire! 🔥"
	case streak <= 14:
		return "Incredible dedication! You're unstoppable!"
	case streak <= 30:
		return "You're creating positive change in your life!"
	default:
		return "Your future self will thank you for this consistency!"
	}
}
