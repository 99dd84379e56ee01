package booking

import (
	"time"

	"github.com/homeservices/site/internal/models"
)

// DefaultCopiedWindow is how long the "Copied" confirmation stays up
const DefaultCopiedWindow = 2 * time.Second

// CopyIndicator tracks the short-lived confirmation after a manual copy
type CopyIndicator struct {
	Window time.Duration
}

// Copy marks the message as copied at now and returns the exact text for the
// clipboard. It is only available while the fallback is shown.
func (c CopyIndicator) Copy(s *models.ViewState, now time.Time) (string, error) {
	if !s.FallbackVisible() {
		return "", ErrInvalidTransition
	}
	if s.GeneratedMessage == "" {
		return "", ErrNoMessage
	}

	copiedAt := now
	s.CopiedAt = &copiedAt
	return s.GeneratedMessage, nil
}

// Active reports whether the confirmation is still showing at now.
// A second copy restarts the window.
func (c CopyIndicator) Active(s *models.ViewState, now time.Time) bool {
	if s.CopiedAt == nil {
		return false
	}
	return now.Before(s.CopiedAt.Add(c.Window))
}

// Settle drops an expired confirmation so stored state stays tidy
func (c CopyIndicator) Settle(s *models.ViewState, now time.Time) {
	if s.CopiedAt != nil && !c.Active(s, now) {
		s.CopiedAt = nil
	}
}

// Remaining is how much of the window is left at now
func (c CopyIndicator) Remaining(s *models.ViewState, now time.Time) time.Duration {
	if !c.Active(s, now) {
		return 0
	}
	return s.CopiedAt.Add(c.Window).Sub(now)
}
