package models

import "time"

// HandoffState tracks one submission through the deep link handoff
type HandoffState string

const (
	HandoffIdle       HandoffState = "idle"
	HandoffSubmitting HandoffState = "submitting"
	HandoffOpened     HandoffState = "opened"
	HandoffBlocked    HandoffState = "blocked"
)

// Section is a navigation anchor on the landing page
type Section string

const (
	SectionTop      Section = "top"
	SectionServices Section = "services"
	SectionProcess  Section = "process"
	SectionBooking  Section = "booking"
	SectionContact  Section = "contact"
)

// Sections lists the navigation anchors in page order
var Sections = []Section{SectionTop, SectionServices, SectionProcess, SectionBooking, SectionContact}

// ViewState is everything the page needs to render for one visitor.
// It is owned by the session store and only changed through the booking package.
type ViewState struct {
	Draft            BookingDraft `json:"draft"`
	Errors           FieldErrors  `json:"errors"`
	MenuOpen         bool         `json:"menuOpen"`
	ActiveSection    Section      `json:"activeSection"`
	Handoff          HandoffState `json:"handoff"`
	GeneratedMessage string       `json:"generatedMessage,omitempty"`
	CopiedAt         *time.Time   `json:"copiedAt,omitempty"`
}

// NewViewState returns the state of a freshly loaded page
func NewViewState() *ViewState {
	return &ViewState{
		Draft:         BookingDraft{ServiceType: DefaultServiceType},
		Errors:        FieldErrors{},
		ActiveSection: SectionTop,
		Handoff:       HandoffIdle,
	}
}

// FallbackVisible reports whether the manual fallback should be shown
func (s *ViewState) FallbackVisible() bool {
	return s.Handoff == HandoffBlocked
}

// Clone returns a deep copy so stored state is never shared between requests
func (s *ViewState) Clone() *ViewState {
	out := *s
	out.Errors = make(FieldErrors, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	if s.CopiedAt != nil {
		t := *s.CopiedAt
		out.CopiedAt = &t
	}
	return &out
}

// SectionRequest selects the active navigation section
type SectionRequest struct {
	Section Section `json:"section" binding:"required,oneof=top services process booking contact"`
}

// WindowReport is what the browser observed about the context it tried to open
type WindowReport string

const (
	WindowMissing       WindowReport = "missing"
	WindowClosed        WindowReport = "closed"
	WindowIndeterminate WindowReport = "indeterminate"
	WindowOpen          WindowReport = "open"
)

// HandoffProbeRequest reports the result of window.open for the current link
type HandoffProbeRequest struct {
	Window WindowReport `json:"window" binding:"required,oneof=missing closed indeterminate open"`
}

// HandoffResponse describes the handoff after an attempt or a retry request
type HandoffResponse struct {
	State           HandoffState `json:"state"`
	DeepLink        string       `json:"deepLink,omitempty"`
	FallbackVisible bool         `json:"fallbackVisible"`
	Destination     string       `json:"destination,omitempty"`
	Message         string       `json:"message,omitempty"`
}

// CopyResponse returns the literal message for the clipboard
type CopyResponse struct {
	Message         string `json:"message"`
	Copied          bool   `json:"copied"`
	CopiedForMillis int64  `json:"copiedForMillis"`
}

// PageView is what the landing page template renders for one visitor
type PageView struct {
	State         *ViewState
	ServiceTypes  []ServiceType
	DisplayNumber string
	// ContactLink opens a chat with the business without a prepared message
	ContactLink string
	// DeepLink carries the generated message, empty when there is none
	DeepLink string
	Copied   bool
	// LaunchHandoff asks the page to open DeepLink as soon as it loads
	LaunchHandoff bool
}
