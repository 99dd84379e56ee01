package booking

import (
	"context"
	"strings"

	"github.com/homeservices/site/internal/models"
)

// Window is a handle to a browsing context the visitor's browser opened
type Window interface {
	// Closed reports whether the context is closed. known is false when the
	// browser would not say.
	Closed() (closed, known bool)
}

// Opener asks the visitor's browser to open url in a new context.
// A nil Window means no handle came back.
type Opener interface {
	Open(ctx context.Context, url string) Window
}

// Outcome of a single handoff attempt
type Outcome string

const (
	OutcomeOpened  Outcome = "opened"
	OutcomeBlocked Outcome = "blocked"
)

// Classify decides whether an attempt succeeded. A missing handle, a closed
// context or one whose state is unknown all count as blocked.
func Classify(w Window) Outcome {
	if w == nil {
		return OutcomeBlocked
	}
	closed, known := w.Closed()
	if !known || closed {
		return OutcomeBlocked
	}
	return OutcomeOpened
}

// Presenter drives the handoff of a generated message to the chat app
type Presenter struct {
	baseURL       string
	destination   string
	displayNumber string
}

// NewPresenter creates a presenter for one business destination.
// destination is the digits-only number used in links, displayNumber the
// human-readable one shown in the fallback.
func NewPresenter(baseURL, destination, displayNumber string) *Presenter {
	return &Presenter{
		baseURL:       baseURL,
		destination:   destination,
		displayNumber: displayNumber,
	}
}

// DisplayNumber is shown to the visitor as the manual destination
func (p *Presenter) DisplayNumber() string {
	return p.displayNumber
}

// ContactLink opens a chat with the business without a prepared message
func (p *Presenter) ContactLink() string {
	return strings.TrimRight(p.baseURL, "/") + "/" + p.destination
}

// DeepLink returns the link carrying message to the business
func (p *Presenter) DeepLink(message string) string {
	return DeepLink(p.baseURL, p.destination, message)
}

// AttemptHandoff opens the deep link for the generated message and moves the
// state to Opened or Blocked.
func (p *Presenter) AttemptHandoff(ctx context.Context, s *models.ViewState, opener Opener) (Outcome, error) {
	if s.Handoff != models.HandoffSubmitting && s.Handoff != models.HandoffBlocked {
		return "", ErrInvalidTransition
	}
	if s.GeneratedMessage == "" {
		return "", ErrNoMessage
	}

	outcome := Classify(opener.Open(ctx, p.DeepLink(s.GeneratedMessage)))
	if outcome == OutcomeBlocked {
		s.Handoff = models.HandoffBlocked
	} else {
		s.Handoff = models.HandoffOpened
	}

	return outcome, nil
}

// Retry repeats the attempt for the same message from the fallback
func (p *Presenter) Retry(ctx context.Context, s *models.ViewState, opener Opener) (Outcome, error) {
	if s.Handoff != models.HandoffBlocked {
		return "", ErrInvalidTransition
	}
	return p.AttemptHandoff(ctx, s, opener)
}

// Dismiss closes the fallback. The generated message is discarded; the draft
// is kept.
func Dismiss(s *models.ViewState) error {
	if s.Handoff != models.HandoffBlocked {
		return ErrInvalidTransition
	}
	s.Handoff = models.HandoffIdle
	s.GeneratedMessage = ""
	s.CopiedAt = nil
	return nil
}

// ReportedOpener replays what the browser reported after calling
// window.open itself. The server cannot open windows, so the report stands
// in for the handle.
type ReportedOpener models.WindowReport

// Open ignores url; the browser already used the same link
func (r ReportedOpener) Open(_ context.Context, _ string) Window {
	if models.WindowReport(r) == models.WindowMissing {
		return nil
	}
	return reportedWindow(r)
}

type reportedWindow models.WindowReport

func (w reportedWindow) Closed() (bool, bool) {
	switch models.WindowReport(w) {
	case models.WindowClosed:
		return true, true
	case models.WindowOpen:
		return false, true
	default:
		return false, false
	}
}
