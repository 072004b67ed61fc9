// Package parser turns human input (dates, hours, minutes) into values.
package parser

import (
	"strings"
	"time"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/markusmobius/go-dateparser"
)

// ParseDate parses a natural language date relative to now. An empty
// input means today. ISO dates are parsed strictly; anything else goes
// through go-dateparser.
func ParseDate(input string, now time.Time) (calendar.Date, error) {
	input = strings.TrimSpace(input)
	today := calendar.FromTime(now)

	switch strings.ToLower(input) {
	case "", "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	}

	if d, err := calendar.Parse(input); err == nil {
		return d, nil
	} else if looksISO(input) {
		// 2025-02-30 and friends must not be reinterpreted by the fuzzy parser.
		return calendar.Date{}, NewDateError(input)
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}

	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return calendar.Date{}, NewDateError(input)
	}

	return calendar.FromTime(result.Time.In(now.Location())), nil
}

// ParseDateRange parses optional from/until bounds. Empty bounds stay open.
func ParseDateRange(from, until string, now time.Time) (calendar.Range, error) {
	var r calendar.Range
	var err error
	if strings.TrimSpace(from) != "" {
		if r.From, err = ParseDate(from, now); err != nil {
			return r, err
		}
	}
	if strings.TrimSpace(until) != "" {
		if r.To, err = ParseDate(until, now); err != nil {
			return r, err
		}
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, NewDateRangeError(from + ".." + until)
	}
	return r, nil
}

// looksISO reports whether s has the shape NNNN-NN-NN.
func looksISO(s string) bool {
	if len(s) != len(calendar.Layout) {
		return false
	}
	for i, c := range s {
		if i == 4 || i == 7 {
			if c != '-' {
				return false
			}
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
