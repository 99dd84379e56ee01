package services

import (
	"context"

	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/session"
)

// SessionStore holds the view state of every visitor
type SessionStore interface {
	Update(id string, fn func(*models.ViewState) error) (*models.ViewState, error)
}

// BookingServiceInterface defines the interface for booking and page operations
type BookingServiceInterface interface {
	State(ctx context.Context, sessionID string) (*models.ViewState, error)
	Page(ctx context.Context, sessionID string) (*models.PageView, error)
	UpdateField(ctx context.Context, sessionID string, req *models.FieldUpdateRequest) (*models.ViewState, error)
	Submit(ctx context.Context, sessionID string, form *models.BookingForm) (*models.SubmitBookingResponse, error)
	ReportHandoff(ctx context.Context, sessionID string, req *models.HandoffProbeRequest) (*models.HandoffResponse, error)
	Retry(ctx context.Context, sessionID string) (*models.HandoffResponse, error)
	Copy(ctx context.Context, sessionID string) (*models.CopyResponse, error)
	Dismiss(ctx context.Context, sessionID string) (*models.ViewState, error)
	ToggleMenu(ctx context.Context, sessionID string) (*models.ViewState, error)
	SetSection(ctx context.Context, sessionID string, section models.Section) (*models.ViewState, error)
}

// Ensure implementations satisfy their interfaces
var _ SessionStore = (*session.Store)(nil)
var _ BookingServiceInterface = (*BookingService)(nil)
