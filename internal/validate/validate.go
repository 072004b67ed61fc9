// Package validate provides input validation helpers for the studytrack CLI.
package validate

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/studytrack/internal/calendar"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/model"
)

const (
	// MaxUserIDLength is the maximum length for a user ID.
	MaxUserIDLength = 64
	// MaxReflectionLength is the maximum length for a reflection, in runes.
	MaxReflectionLength = 4096

	MaxStudyHours   = 24.0
	MaxBreakMinutes = 480.0
	MaxSleepHours   = 24.0
	MinLevel        = 1
	MaxLevel        = 5
)

// userIDRegex validates user IDs. ':' is excluded because it separates key segments.
var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._@-]*$`)

// UserID validates a user ID.
func UserID(id string) error {
	if id == "" {
		return errors.NewUserError("User ID cannot be empty", "Provide a user ID with --user")
	}
	if len(id) > MaxUserIDLength {
		return errors.NewUserErrorWithField("user", id,
			"User ID too long",
			"User IDs must be 64 characters or fewer")
	}
	if !userIDRegex.MatchString(id) {
		return errors.NewUserErrorWithField("user", id,
			"Invalid user ID format",
			"User IDs must start with a letter or number and contain only letters, numbers, dashes, underscores, periods, or @")
	}
	return nil
}

// StudyHours validates hours studied in a day.
func StudyHours(v float64) error {
	return floatInRange("study", v, 0, MaxStudyHours, "hours")
}

// BreakTime validates break minutes in a day.
func BreakTime(v float64) error {
	return floatInRange("break", v, 0, MaxBreakMinutes, "minutes")
}

// Sleep validates hours slept.
func Sleep(v float64) error {
	return floatInRange("sleep", v, 0, MaxSleepHours, "hours")
}

// Level validates a 1-5 self-rating such as stress or focus.
func Level(field string, v int) error {
	return InRange(field, v, MinLevel, MaxLevel)
}

// Reflection validates a free-text reflection.
func Reflection(text string) error {
	if utf8.RuneCountInString(text) > MaxReflectionLength {
		return errors.NewUserError(
			"Reflection too long",
			"Reflections must be 4096 characters or fewer")
	}
	return nil
}

// Entry validates every recorded field of e.
func Entry(e *model.DailyEntry) error {
	if e.StudyHours != nil {
		if err := StudyHours(*e.StudyHours); err != nil {
			return err
		}
	}
	if e.BreakTime != nil {
		if err := BreakTime(*e.BreakTime); err != nil {
			return err
		}
	}
	if e.Sleep != nil {
		if err := Sleep(*e.Sleep); err != nil {
			return err
		}
	}
	if e.StressLevel != nil {
		if err := Level("stress", *e.StressLevel); err != nil {
			return err
		}
	}
	if e.Focus != nil {
		if err := Level("focus", *e.Focus); err != nil {
			return err
		}
	}
	return Reflection(e.Reflection)
}

// NotFuture rejects dates after today.
func NotFuture(d, today calendar.Date) error {
	if d.After(today) {
		return &errors.UserError{
			Message:    "Cannot log entries for future dates",
			Suggestion: "Use today's date or an earlier one",
			Field:      "date",
			Value:      d.String(),
			Cause:      errors.ErrFutureDate,
		}
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &errors.UserError{
			Message:    field + " out of range",
			Suggestion: fmt.Sprintf("Must be between %d and %d", min, max),
			Field:      field,
			Value:      strconv.Itoa(value),
			Cause:      errors.ErrOutOfRange,
		}
	}
	return nil
}

func floatInRange(field string, value, min, max float64, unit string) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < min || value > max {
		return &errors.UserError{
			Message:    field + " out of range",
			Suggestion: fmt.Sprintf("Must be between %g and %g %s", min, max, unit),
			Field:      field,
			Value:      strconv.FormatFloat(value, 'g', -1, 64),
			Cause:      errors.ErrOutOfRange,
		}
	}
	return nil
}
