package services

import (
	"context"
	"errors"
	"time"

	"github.com/homeservices/site/config"
	"github.com/homeservices/site/internal/booking"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/pkg/logger"
	"github.com/homeservices/site/pkg/metrics"
	"github.com/homeservices/site/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// BookingService applies booking and page actions to a visitor's view state
type BookingService struct {
	store     SessionStore
	presenter *booking.Presenter
	indicator booking.CopyIndicator
	location  *time.Location
	now       func() time.Time
}

// NewBookingService creates a new booking service instance
func NewBookingService(store SessionStore, cfg *config.Config) *BookingService {
	location := cfg.Booking.Location
	if location == nil {
		location = time.Local
	}

	return &BookingService{
		store:     store,
		presenter: booking.NewPresenter(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Destination, cfg.WhatsApp.DisplayNumber),
		indicator: booking.CopyIndicator{Window: cfg.Booking.CopiedIndicator},
		location:  location,
		now:       time.Now,
	}
}

// SetClock replaces the wall clock, used by tests
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// clock returns the current instant in the business time zone, so
// date-time values from the form are read as the business's wall clock.
func (s *BookingService) clock() time.Time {
	return s.now().In(s.location)
}

// State returns the current view state of the session
func (s *BookingService) State(_ context.Context, sessionID string) (*models.ViewState, error) {
	now := s.clock()
	return s.store.Update(sessionID, func(st *models.ViewState) error {
		s.indicator.Settle(st, now)
		return nil
	})
}

// Page returns everything the landing page renders for the session
func (s *BookingService) Page(ctx context.Context, sessionID string) (*models.PageView, error) {
	st, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.pageView(st), nil
}

func (s *BookingService) pageView(st *models.ViewState) *models.PageView {
	view := &models.PageView{
		State:         st,
		ServiceTypes:  models.ServiceTypes,
		DisplayNumber: s.presenter.DisplayNumber(),
		ContactLink:   s.presenter.ContactLink(),
		Copied:        s.indicator.Active(st, s.clock()),
	}
	if st.GeneratedMessage != "" {
		view.DeepLink = s.presenter.DeepLink(st.GeneratedMessage)
	}
	return view
}

// UpdateField writes one draft field
func (s *BookingService) UpdateField(_ context.Context, sessionID string, req *models.FieldUpdateRequest) (*models.ViewState, error) {
	return s.store.Update(sessionID, func(st *models.ViewState) error {
		return booking.UpdateField(st, req.Field, req.Value)
	})
}

// Submit applies a full form submission to the draft and submits it.
// A time that is not in the future is reported in the response, not as an error.
func (s *BookingService) Submit(ctx context.Context, sessionID string, form *models.BookingForm) (*models.SubmitBookingResponse, error) {
	_, span := tracing.StartSpan(ctx, "booking.submit",
		attribute.String("booking.service", form.ServiceType),
	)
	defer span.End()

	now := s.clock()
	var message string

	st, err := s.store.Update(sessionID, func(st *models.ViewState) error {
		// the fallback covers the form until it is dismissed
		if st.FallbackVisible() {
			return booking.ErrInvalidTransition
		}
		for _, field := range form.Fields() {
			if err := booking.UpdateField(st, field[0], field[1]); err != nil {
				return err
			}
		}

		var err error
		message, err = booking.Submit(st, now)
		return err
	})

	switch {
	case errors.Is(err, booking.ErrInvalidScheduledTime):
		metrics.BookingSubmissions.WithLabelValues("invalid_time", form.ServiceType).Inc()
		span.SetAttributes(attribute.String("booking.result", "invalid_time"))
		logger.Info("Booking rejected: scheduled time not in the future",
			zap.String("session_id", sessionID),
		)
		return &models.SubmitBookingResponse{
			Success: false,
			Errors:  st.Errors,
			State:   st,
		}, nil
	case err != nil:
		metrics.BookingSubmissions.WithLabelValues("error", form.ServiceType).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("Booking submission failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}

	metrics.BookingSubmissions.WithLabelValues("success", form.ServiceType).Inc()
	span.SetAttributes(attribute.String("booking.result", "success"))
	logger.Info("Booking request prepared",
		zap.String("session_id", sessionID),
		zap.String("service", form.ServiceType),
	)

	return &models.SubmitBookingResponse{
		Success:  true,
		Message:  message,
		DeepLink: s.presenter.DeepLink(message),
		State:    st,
	}, nil
}

// ReportHandoff classifies the window the browser tried to open for the
// generated message. The first report follows a submission, later ones
// follow a retry from the fallback.
func (s *BookingService) ReportHandoff(ctx context.Context, sessionID string, req *models.HandoffProbeRequest) (*models.HandoffResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "booking.handoff",
		attribute.String("handoff.window", string(req.Window)),
	)
	defer span.End()

	opener := booking.ReportedOpener(req.Window)
	attempt := "first"
	var outcome booking.Outcome

	st, err := s.store.Update(sessionID, func(st *models.ViewState) error {
		var err error
		if st.Handoff == models.HandoffBlocked {
			attempt = "retry"
			outcome, err = s.presenter.Retry(ctx, st, opener)
		} else {
			outcome, err = s.presenter.AttemptHandoff(ctx, st, opener)
		}
		return err
	})
	if err != nil {
		logger.Warn("Handoff report rejected",
			zap.String("session_id", sessionID),
			zap.String("window", string(req.Window)),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.HandoffOutcomes.WithLabelValues(string(outcome), attempt).Inc()
	span.SetAttributes(attribute.String("handoff.outcome", string(outcome)))

	// a blocked window has a designed recovery path and is not an error
	logger.Debug("Handoff classified",
		zap.String("session_id", sessionID),
		zap.String("outcome", string(outcome)),
		zap.String("attempt", attempt),
	)

	return s.describe(st), nil
}

// Retry returns the same deep link again so the browser can reopen it from
// the fallback. The following handoff report classifies the new attempt.
func (s *BookingService) Retry(ctx context.Context, sessionID string) (*models.HandoffResponse, error) {
	st, err := s.State(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !st.FallbackVisible() {
		return nil, booking.ErrInvalidTransition
	}

	metrics.FallbackActions.WithLabelValues("retry").Inc()
	return s.describe(st), nil
}

// Copy marks the generated message as copied and returns it for the clipboard
func (s *BookingService) Copy(_ context.Context, sessionID string) (*models.CopyResponse, error) {
	now := s.clock()
	var text string

	st, err := s.store.Update(sessionID, func(st *models.ViewState) error {
		var err error
		text, err = s.indicator.Copy(st, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.FallbackActions.WithLabelValues("copy").Inc()

	return &models.CopyResponse{
		Message:         text,
		Copied:          s.indicator.Active(st, now),
		CopiedForMillis: s.indicator.Remaining(st, now).Milliseconds(),
	}, nil
}

// Dismiss closes the fallback and discards the generated message
func (s *BookingService) Dismiss(_ context.Context, sessionID string) (*models.ViewState, error) {
	st, err := s.store.Update(sessionID, booking.Dismiss)
	if err != nil {
		return nil, err
	}
	metrics.FallbackActions.WithLabelValues("dismiss").Inc()
	return st, nil
}

// ToggleMenu flips the mobile menu
func (s *BookingService) ToggleMenu(_ context.Context, sessionID string) (*models.ViewState, error) {
	return s.store.Update(sessionID, func(st *models.ViewState) error {
		booking.ToggleMenu(st)
		return nil
	})
}

// SetSection records the section in view
func (s *BookingService) SetSection(_ context.Context, sessionID string, section models.Section) (*models.ViewState, error) {
	return s.store.Update(sessionID, func(st *models.ViewState) error {
		return booking.SetActiveSection(st, section)
	})
}

func (s *BookingService) describe(st *models.ViewState) *models.HandoffResponse {
	resp := &models.HandoffResponse{
		State:           st.Handoff,
		FallbackVisible: st.FallbackVisible(),
	}
	if st.GeneratedMessage != "" {
		resp.DeepLink = s.presenter.DeepLink(st.GeneratedMessage)
	}
	if resp.FallbackVisible {
		resp.Destination = s.presenter.DisplayNumber()
		resp.Message = st.GeneratedMessage
	}
	return resp
}
