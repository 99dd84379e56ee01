package services_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/homeservices/site/internal/booking"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSessionStore is a mock implementation of SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Update(id string, fn func(*models.ViewState) error) (*models.ViewState, error) {
	args := m.Called(id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ViewState), args.Error(1)
}

func aliForm(scheduledAt string) *models.BookingForm {
	return &models.BookingForm{
		Name:        "Ali",
		Phone:       "0300-1112223",
		ServiceType: string(models.ServiceACCleaning),
		Address:     "House 4, Street 9",
		ScheduledAt: scheduledAt,
	}
}

func TestBookingService_Submit(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	resp, err := svc.Submit(ctx, id, aliForm("2099-01-01T10:00"))

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "*Instructions:* None")
	assert.Equal(t, models.HandoffSubmitting, resp.State.Handoff)

	u, err := url.Parse(resp.DeepLink)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/923043537785", u.Path)
	assert.Equal(t, resp.Message, u.Query().Get("text"))
}

func TestBookingService_Submit_UsesBusinessTimeZone(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	// the clock reads 07:00 UTC, which is 12:00 in Karachi
	resp, err := svc.Submit(ctx, id, aliForm("2025-06-01T11:00"))
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, models.ScheduledAtInvalidMessage, resp.Errors[models.FieldScheduledAt])
	assert.Empty(t, resp.DeepLink)
	assert.Equal(t, models.HandoffIdle, resp.State.Handoff)

	resp, err = svc.Submit(ctx, id, aliForm("2025-06-01T12:01"))
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.State.Errors)
}

func TestBookingService_UpdateFieldClearsError(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	resp, err := svc.Submit(ctx, id, aliForm("2020-01-01T10:00"))
	require.NoError(t, err)
	require.False(t, resp.Success)

	state, err := svc.UpdateField(ctx, id, &models.FieldUpdateRequest{Field: models.FieldScheduledAt, Value: "2099-01-01T10:00"})
	require.NoError(t, err)
	assert.Empty(t, state.Errors)
	assert.Equal(t, "Ali", state.Draft.Name)
}

func TestBookingService_BlockedHandoffFlow(t *testing.T) {
	svc, store, clock := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	submitted, err := svc.Submit(ctx, id, aliForm("2099-01-01T10:00"))
	require.NoError(t, err)

	handoff, err := svc.ReportHandoff(ctx, id, &models.HandoffProbeRequest{Window: models.WindowMissing})
	require.NoError(t, err)
	assert.Equal(t, models.HandoffBlocked, handoff.State)
	assert.True(t, handoff.FallbackVisible)
	assert.Equal(t, "0304-3537785", handoff.Destination)
	assert.Equal(t, submitted.Message, handoff.Message)
	assert.Equal(t, submitted.DeepLink, handoff.DeepLink)

	_, err = svc.Submit(ctx, id, aliForm("2099-02-02T10:00"))
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)

	copied, err := svc.Copy(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submitted.Message, copied.Message)
	assert.True(t, copied.Copied)
	assert.Equal(t, int64(2000), copied.CopiedForMillis)

	clock.Advance(1999 * time.Millisecond)
	page, err := svc.Page(ctx, id)
	require.NoError(t, err)
	assert.True(t, page.Copied)

	clock.Advance(time.Millisecond)
	page, err = svc.Page(ctx, id)
	require.NoError(t, err)
	assert.False(t, page.Copied)
	assert.Nil(t, page.State.CopiedAt)

	retry, err := svc.Retry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, submitted.DeepLink, retry.DeepLink)

	handoff, err = svc.ReportHandoff(ctx, id, &models.HandoffProbeRequest{Window: models.WindowOpen})
	require.NoError(t, err)
	assert.Equal(t, models.HandoffOpened, handoff.State)
	assert.False(t, handoff.FallbackVisible)

	_, err = svc.Retry(ctx, id)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBookingService_Dismiss(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	_, err := svc.Dismiss(ctx, id)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)

	_, err = svc.Submit(ctx, id, aliForm("2099-01-01T10:00"))
	require.NoError(t, err)
	_, err = svc.ReportHandoff(ctx, id, &models.HandoffProbeRequest{Window: models.WindowIndeterminate})
	require.NoError(t, err)

	state, err := svc.Dismiss(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.HandoffIdle, state.Handoff)
	assert.Empty(t, state.GeneratedMessage)
	assert.Equal(t, "Ali", state.Draft.Name)

	_, err = svc.Copy(ctx, id)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBookingService_ReportHandoffWithoutSubmission(t *testing.T) {
	svc, store, _ := newTestService()
	id, _ := store.Start()

	_, err := svc.ReportHandoff(context.Background(), id, &models.HandoffProbeRequest{Window: models.WindowOpen})
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestBookingService_MenuAndSection(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	id, _ := store.Start()

	state, err := svc.ToggleMenu(ctx, id)
	require.NoError(t, err)
	assert.True(t, state.MenuOpen)

	state, err = svc.SetSection(ctx, id, models.SectionServices)
	require.NoError(t, err)
	assert.Equal(t, models.SectionServices, state.ActiveSection)
	assert.False(t, state.MenuOpen)

	_, err = svc.SetSection(ctx, id, "nowhere")
	assert.ErrorIs(t, err, booking.ErrUnknownSection)
}

func TestBookingService_Page(t *testing.T) {
	svc, store, _ := newTestService()
	id, _ := store.Start()

	page, err := svc.Page(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ServiceTypes, page.ServiceTypes)
	assert.Equal(t, "https://wa.me/923043537785", page.ContactLink)
	assert.Empty(t, page.DeepLink)
	assert.False(t, page.Copied)
}

func TestBookingService_StoreError(t *testing.T) {
	mockStore := new(MockSessionStore)
	svc := services.NewBookingService(mockStore, testConfig())
	storeErr := errors.New("store unavailable")

	mockStore.On("Update", "sid", mock.Anything).Return(nil, storeErr).Once()

	resp, err := svc.Submit(context.Background(), "sid", aliForm("2099-01-01T10:00"))
	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, resp)

	mockStore.AssertExpectations(t)
}
