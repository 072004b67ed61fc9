package calendar

import "time"

// Range is an inclusive span of calendar dates. A zero From or To leaves
// that side open.
type Range struct {
	From Date `json:"from"`
	To   Date `json:"to"`
}

// LastNDays returns the n-day range ending on end (inclusive).
func LastNDays(end Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{From: end.AddDays(-(n - 1)), To: end}
}

// WeekOf returns the Monday..Sunday week containing d.
func WeekOf(d Date) Range {
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset = 6 // Sunday
	}
	start := d.AddDays(-offset)
	return Range{From: start, To: start.AddDays(6)}
}

// Contains reports whether d falls within the range.
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// Days returns the number of days in a closed range, or 0 if either side is open
// or the range is inverted.
func (r Range) Days() int {
	if r.From.IsZero() || r.To.IsZero() {
		return 0
	}
	n := DaysBetween(r.From, r.To) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Dates lists every date in a closed range in ascending order.
func (r Range) Dates() []Date {
	n := r.Days()
	dates := make([]Date, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, r.From.AddDays(i))
	}
	return dates
}

// Shift moves both ends of the range by n days.
func (r Range) Shift(n int) Range {
	return Range{From: r.From.AddDays(n), To: r.To.AddDays(n)}
}
