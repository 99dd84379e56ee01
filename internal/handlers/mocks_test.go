package handlers

import (
	"context"

	"github.com/homeservices/site/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of BookingServiceInterface
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) state(args mock.Arguments) (*models.ViewState, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ViewState), args.Error(1)
}

func (m *MockBookingService) handoff(args mock.Arguments) (*models.HandoffResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.HandoffResponse), args.Error(1)
}

func (m *MockBookingService) State(ctx context.Context, sessionID string) (*models.ViewState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockBookingService) Page(ctx context.Context, sessionID string) (*models.PageView, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PageView), args.Error(1)
}

func (m *MockBookingService) UpdateField(ctx context.Context, sessionID string, req *models.FieldUpdateRequest) (*models.ViewState, error) {
	return m.state(m.Called(ctx, sessionID, req))
}

func (m *MockBookingService) Submit(ctx context.Context, sessionID string, form *models.BookingForm) (*models.SubmitBookingResponse, error) {
	args := m.Called(ctx, sessionID, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitBookingResponse), args.Error(1)
}

func (m *MockBookingService) ReportHandoff(ctx context.Context, sessionID string, req *models.HandoffProbeRequest) (*models.HandoffResponse, error) {
	return m.handoff(m.Called(ctx, sessionID, req))
}

func (m *MockBookingService) Retry(ctx context.Context, sessionID string) (*models.HandoffResponse, error) {
	return m.handoff(m.Called(ctx, sessionID))
}

func (m *MockBookingService) Copy(ctx context.Context, sessionID string) (*models.CopyResponse, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CopyResponse), args.Error(1)
}

func (m *MockBookingService) Dismiss(ctx context.Context, sessionID string) (*models.ViewState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockBookingService) ToggleMenu(ctx context.Context, sessionID string) (*models.ViewState, error) {
	return m.state(m.Called(ctx, sessionID))
}

func (m *MockBookingService) SetSection(ctx context.Context, sessionID string, section models.Section) (*models.ViewState, error) {
	return m.state(m.Called(ctx, sessionID, section))
}
