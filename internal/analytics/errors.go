package analytics

import (
	"fmt"

	"github.com/manav03panchal/studytrack/internal/calendar"
)

// InvalidEntryError reports an entry whose date cannot take part in
// day arithmetic.
type InvalidEntryError struct {
	Index  int
	Date   calendar.Date
	Reason string
}

func (e *InvalidEntryError) Error() string {
	if e.Index < 0 {
		return "invalid reference date: " + e.Reason
	}
	return fmt.Sprintf("invalid entry at index %d: %s", e.Index, e.Reason)
}

func checkDate(i int, d calendar.Date) error {
	switch {
	case d.IsZero():
		return &InvalidEntryError{Index: i, Date: d, Reason: "date is missing"}
	case !d.IsValid():
		return &InvalidEntryError{
			Index:  i,
			Date:   d,
			Reason: fmt.Sprintf("%04d-%02d-%02d is not a calendar date", d.Year, int(d.Month), d.Day),
		}
	}
	return nil
}
