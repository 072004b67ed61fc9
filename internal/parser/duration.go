package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationResult represents the result of parsing a duration.
type DurationResult struct {
	Duration time.Duration
	Valid    bool
}

// durationPattern matches duration expressions like "2h", "30m", "1h30m", "2.5h", etc.
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+(?:\.\d+)?)\s*(m|min|mins|minute|minutes))?$`)

// ParseDuration parses a human-readable duration string. A bare number is
// read in defaultUnit ("h" or "m").
// Supports formats like:
//   - "2h" or "2 hours"
//   - "30m" or "30 minutes"
//   - "1h30m" or "1 hour 30 minutes"
//   - "2.5h" (2 hours 30 minutes)
func ParseDuration(input, defaultUnit string) DurationResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return DurationResult{Valid: false}
	}

	// Bare numbers, so "0" is valid and "-1" reaches range validation
	if value, err := strconv.ParseFloat(input, 64); err == nil {
		return DurationResult{Duration: unitToDuration(value, defaultUnit), Valid: true}
	}

	// Standard Go duration format (e.g., "2h30m")
	if d, err := time.ParseDuration(input); err == nil {
		return DurationResult{Duration: d, Valid: true}
	}

	matches := durationPattern.FindStringSubmatch(input)
	if matches == nil {
		return DurationResult{Valid: false}
	}

	var total time.Duration

	if matches[1] != "" {
		value, _ := strconv.ParseFloat(matches[1], 64)
		unit := strings.ToLower(matches[2])
		if unit == "" {
			unit = defaultUnit
		}
		total += unitToDuration(value, unit)
	}

	// Second number and unit (for "1h30m" style)
	if matches[3] != "" {
		value, _ := strconv.ParseFloat(matches[3], 64)
		total += unitToDuration(value, strings.ToLower(matches[4]))
	}

	return DurationResult{Duration: total, Valid: true}
}

// ParseHours parses a study or sleep amount into hours.
func ParseHours(input string) (float64, error) {
	result := ParseDuration(input, "h")
	if !result.Valid {
		return 0, NewHoursError(input)
	}
	return result.Duration.Hours(), nil
}

// ParseMinutes parses a break amount into minutes.
func ParseMinutes(input string) (float64, error) {
	result := ParseDuration(input, "m")
	if !result.Valid {
		return 0, NewMinutesError(input)
	}
	return result.Duration.Minutes(), nil
}

// unitToDuration converts a value and unit to a duration.
func unitToDuration(value float64, unit string) time.Duration {
	switch unit {
	case "m", "min", "mins", "minute", "minutes":
		return time.Duration(value * float64(time.Minute))
	default:
		return time.Duration(value * float64(time.Hour))
	}
}
