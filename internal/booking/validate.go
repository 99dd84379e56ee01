package booking

import (
	"fmt"
	"time"

	"github.com/homeservices/site/internal/models"
)

// Layouts a datetime-local control can produce, most common first.
// RFC 3339 covers API clients that send an explicit offset.
var scheduledAtLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
}

// ParseScheduledAt reads a raw date-time value. Values without an offset are
// wall-clock times in loc.
func ParseScheduledAt(raw string, loc *time.Location) (time.Time, error) {
	for _, layout := range scheduledAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date-time %q", raw)
}

// IsScheduledAtFormat reports whether raw is a date-time the form accepts
func IsScheduledAtFormat(raw string) bool {
	_, err := ParseScheduledAt(raw, time.UTC)
	return err == nil
}

// Validate checks the draft against now. Only the scheduled time is checked:
// when present it must be strictly later than now. The wall-clock value of the
// draft is read in now's location.
//
// An unparseable value is not reported here; the form constraints reject it
// before submission.
func Validate(d models.BookingDraft, now time.Time) models.FieldErrors {
	errs := models.FieldErrors{}

	if d.ScheduledAt == "" {
		return errs
	}

	scheduled, err := ParseScheduledAt(d.ScheduledAt, now.Location())
	if err != nil {
		return errs
	}

	if !scheduled.After(now) {
		errs[models.FieldScheduledAt] = models.ScheduledAtInvalidMessage
	}

	return errs
}
