// Package calendar provides a civil date type for day-granular tracking data.
//
// A Date carries no time-of-day and no location. Day arithmetic is done on
// UTC midnights, so daylight-saving transitions in the caller's zone never
// shift a delta by an hour and round to the wrong day.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the ISO 8601 calendar date layout used for parsing and storage.
const Layout = "2006-01-02"

// Date is a calendar date in the proleptic Gregorian calendar.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseError is returned when a string is not a valid ISO 8601 calendar date.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid date '%s': expected YYYY-MM-DD", e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// New returns the date for the given year, month and day without normalising it.
// Use IsValid to check values that did not come from Parse.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Parse parses a strict YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, &ParseError{Value: s, Err: err}
	}
	return FromTime(t), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime returns the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current date in loc. A nil loc means time.Local.
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// midnightUTC returns d as midnight UTC. Out-of-range fields are normalised
// the way time.Date normalises them.
func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// In returns midnight of d in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// IsValid reports whether d names a real calendar day (rejects e.g. Feb 30).
func (d Date) IsValid() bool {
	if d.IsZero() || d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	return FromTime(d.midnightUTC()) == d
}

// String returns the ISO 8601 form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.midnightUTC().AddDate(0, 0, n))
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole number of days from a to b (positive when b is later).
func DaysBetween(a, b Date) int {
	// Unix seconds rather than Sub, which saturates past ~292 years.
	return int((b.midnightUTC().Unix() - a.midnightUTC().Unix()) / secondsPerDay)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return DaysBetween(d, other) > 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return DaysBetween(d, other) < 0
}

// Equal reports whether d and other are the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Compare returns -1, 0 or +1 like cmp.Compare.
func (d Date) Compare(other Date) int {
	switch delta := DaysBetween(d, other); {
	case delta > 0:
		return -1
	case delta < 0:
		return 1
	default:
		return 0
	}
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty string yields the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
