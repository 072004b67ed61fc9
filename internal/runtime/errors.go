package runtime

import (
	"fmt"
	"io"

	"github.com/manav03panchal/studytrack/internal/analytics"
	"github.com/manav03panchal/studytrack/internal/errors"
	"github.com/manav03panchal/studytrack/internal/output"
	"github.com/manav03panchal/studytrack/internal/parser"
	"github.com/manav03panchal/studytrack/internal/storage"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitUser   = 1
	ExitSystem = 2
)

// NormalizeError maps package-specific errors onto the UserError/SystemError taxonomy.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}

	var pe *parser.InputParseError
	if errors.As(err, &pe) {
		return pe.ToUserError()
	}

	var ie *analytics.InvalidEntryError
	if errors.As(err, &ie) {
		return &errors.UserError{
			Message:    ie.Error(),
			Suggestion: "Fix or delete the entry with 'studytrack delete DATE', or re-import a clean export",
			Field:      "date",
			Value:      ie.Date.String(),
			Cause:      errors.ErrInvalidDate,
		}
	}

	if storage.IsErrKeyNotFound(err) {
		return errors.ErrEntryNotFound
	}

	return err
}

// FormatError formats an error with optional suggestion. Debug mode adds
// the wrap chain and stack.
func FormatError(err error, debug bool) string {
	err = NormalizeError(err)
	if debug {
		return errors.FormatDebugError(err)
	}

	return errors.FormatByCategory(err)
}

// ExitCode returns the process exit code for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Classify(NormalizeError(err)) == errors.CategorySystem {
		return ExitSystem
	}
	return ExitUser
}

// ReportError writes err to stderr, or as an ErrorResponse to f in JSON mode.
func ReportError(f *output.Formatter, stderr io.Writer, err error, debug bool) {
	if err == nil {
		return
	}
	if f != nil && f.IsJSON() {
		norm := NormalizeError(err)
		message := ""
		if ue, ok := errors.AsUserError(norm); ok {
			message = ue.Message
		}
		output.NewJSONFormatter(f).PrintError("error", norm.Error(), message, errors.GetSuggestion(norm))
		return
	}
	if debug {
		fmt.Fprint(stderr, FormatError(err, true))
		return
	}
	msg := FormatError(err, false)
	if errors.Classify(NormalizeError(err)) != errors.CategorySystem {
		msg = "Error: " + msg
	}
	fmt.Fprintln(stderr, msg)
}
