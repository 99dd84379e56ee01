package booking

import (
	"fmt"

	apperrors "github.com/homeservices/site/pkg/errors"
)

var (
	// ErrInvalidScheduledTime is the only validation failure of the form:
	// the scheduled time is not strictly in the future.
	ErrInvalidScheduledTime = apperrors.InvalidInputError("scheduledAt", "not in the future")

	ErrUnknownField   = fmt.Errorf("unknown booking field: %w", apperrors.ErrInvalidInput)
	ErrUnknownService = fmt.Errorf("unknown service type: %w", apperrors.ErrInvalidInput)
	ErrUnknownSection = fmt.Errorf("unknown page section: %w", apperrors.ErrInvalidInput)

	// ErrInvalidTransition is returned when an action does not apply to the
	// current handoff state, e.g. copying while no fallback is shown.
	ErrInvalidTransition = apperrors.ConflictError("handoff transition not allowed")

	ErrNoMessage = apperrors.ConflictError("no generated message")
)
