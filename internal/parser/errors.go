package parser

import (
	"fmt"
	"strings"

	"github.com/manav03panchal/studytrack/internal/errors"
)

// InputParseError represents a parsing error with helpful suggestions.
type InputParseError struct {
	Input      string
	Field      string
	Message    string
	Examples   []string
	Suggestion string
	Cause      error
}

func (e *InputParseError) Error() string {
	return fmt.Sprintf("invalid %s '%s': %s", e.Field, e.Input, e.Message)
}

func (e *InputParseError) Unwrap() error {
	return e.Cause
}

// FormatWithExamples returns the error message with example suggestions.
func (e *InputParseError) FormatWithExamples() string {
	var sb strings.Builder
	sb.WriteString(e.Error())

	if len(e.Examples) > 0 {
		sb.WriteString("\n\nValid examples:\n")
		for _, ex := range e.Examples {
			sb.WriteString("  - ")
			sb.WriteString(ex)
			sb.WriteString("\n")
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// DateExamples provides example date formats.
var DateExamples = []string{
	"today",
	"yesterday",
	"3 days ago",
	"last friday",
	"2025-03-14",
}

// HoursExamples provides example hour amounts.
var HoursExamples = []string{
	"6",
	"7.5",
	"2h30m",
	"90m",
}

// MinutesExamples provides example minute amounts.
var MinutesExamples = []string{
	"45",
	"1h",
	"1h15m",
	"20 minutes",
}

// NewDateError creates a date parse error with standard examples.
func NewDateError(input string) *InputParseError {
	return &InputParseError{
		Input:      input,
		Field:      "date",
		Message:    "could not parse date",
		Examples:   DateExamples,
		Suggestion: "Use YYYY-MM-DD or natural language like 'yesterday'.",
		Cause:      errors.ErrInvalidDate,
	}
}

// NewDateRangeError reports an inverted range.
func NewDateRangeError(input string) *InputParseError {
	return &InputParseError{
		Input:      input,
		Field:      "date range",
		Message:    "end date is before start date",
		Suggestion: "Swap --from and --until.",
		Cause:      errors.ErrInvalidDate,
	}
}

// NewHoursError creates an hours parse error with standard examples.
func NewHoursError(input string) *InputParseError {
	return &InputParseError{
		Input:      input,
		Field:      "hours",
		Message:    "could not parse hours",
		Examples:   HoursExamples,
		Suggestion: "A bare number is read as hours.",
		Cause:      errors.ErrInvalidFormat,
	}
}

// NewMinutesError creates a minutes parse error with standard examples.
func NewMinutesError(input string) *InputParseError {
	return &InputParseError{
		Input:      input,
		Field:      "minutes",
		Message:    "could not parse minutes",
		Examples:   MinutesExamples,
		Suggestion: "A bare number is read as minutes.",
		Cause:      errors.ErrInvalidFormat,
	}
}

// ToUserError converts an InputParseError to a UserError for consistent handling.
func (e *InputParseError) ToUserError() *errors.UserError {
	suggestion := e.Suggestion
	if len(e.Examples) > 0 {
		suggestion = strings.TrimSpace(fmt.Sprintf("%s Try: %s", suggestion,
			strings.Join(e.Examples[:min(3, len(e.Examples))], ", ")))
	}

	ue := errors.NewUserErrorWithField(e.Field, e.Input, e.Message, suggestion)
	ue.Cause = e.Cause
	return ue
}

// AsUserError converts parse errors to UserErrors and passes others through.
func AsUserError(err error) error {
	var pe *InputParseError
	if errors.As(err, &pe) {
		return pe.ToUserError()
	}
	return err
}
