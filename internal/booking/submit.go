package booking

import (
	"time"

	"github.com/homeservices/site/internal/models"
)

// Submit validates the draft against now and, when valid, generates the
// message and starts the handoff. A rejected submission records the errors
// and leaves the handoff untouched.
func Submit(s *models.ViewState, now time.Time) (string, error) {
	if s.Handoff == models.HandoffBlocked {
		return "", ErrInvalidTransition
	}

	s.Errors = Validate(s.Draft, now)
	if len(s.Errors) > 0 {
		return "", ErrInvalidScheduledTime
	}

	message := FormatMessage(s.Draft)
	s.GeneratedMessage = message
	s.Handoff = models.HandoffSubmitting
	s.CopiedAt = nil

	return message, nil
}
