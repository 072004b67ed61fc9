package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrEntryNotFound:   "Use 'studytrack entries' to see logged days.",
	ErrNoInsightReport: "Run 'studytrack insights' without --cached to generate one.",
	ErrInvalidDate:     "Try formats like '2025-03-04', 'today', 'yesterday' or '3 days ago'.",
	ErrFutureDate:      "Entries can only be logged for today or earlier.",
	ErrNothingToLog:    "Pass at least one of --study, --break, --sleep, --stress, --focus or --reflection.",
	ErrInvalidFormat:   "Use --format json or --format csv.",
	ErrUnknownBackend:  "Set STUDYTRACK_STORAGE_BACKEND to 'badger' or 'postgres'.",

	ErrDiskFull:          "Free up disk space and try again.",
	ErrDatabaseCorrupted: "Move the data directory aside and re-import from your last export.",
	ErrDatabaseLocked:    "Another studytrack process is using the database. Close it and try again.",
	ErrPermissionDenied:  "Check file permissions in your data directory (~/.local/share/studytrack/).",
}

// GetSuggestion returns a suggestion for an error, if available.
// A UserError's own suggestion wins over the sentinel table.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	return ""
}
