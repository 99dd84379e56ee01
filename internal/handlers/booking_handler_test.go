package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/booking"
	"github.com/homeservices/site/internal/middleware"
	"github.com/homeservices/site/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSessionID = "0b7c5f0e-4f7e-4d35-9f53-1a3c3d0c6a11"

func withSession(c *gin.Context) {
	c.Set(middleware.SessionContextKey, testSessionID)
	c.Next()
}

func newAPIRouter(svc *MockBookingService) *gin.Engine {
	bh := NewBookingHandler(svc)
	ui := NewUIHandler(svc)

	router := gin.New()
	router.Use(withSession)
	api := router.Group("/api/v1")
	api.GET("/state", bh.State)
	api.POST("/booking/field", bh.UpdateField)
	api.POST("/booking/submit", bh.Submit)
	api.POST("/booking/handoff", bh.ReportHandoff)
	api.POST("/booking/fallback/copy", bh.Copy)
	api.POST("/booking/fallback/retry", bh.Retry)
	api.POST("/booking/fallback/dismiss", bh.Dismiss)
	api.POST("/ui/menu", ui.ToggleMenu)
	api.POST("/ui/section", ui.SetSection)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

const validSubmission = `{"name":"Ali","phone":"0300-1112223","serviceType":"AC Cleaning","address":"House 4, Street 9","scheduledAt":"2099-01-01T10:00","instructions":""}`

func TestBookingHandler_Submit(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	expectedForm := &models.BookingForm{
		Name:        "Ali",
		Phone:       "0300-1112223",
		ServiceType: "AC Cleaning",
		Address:     "House 4, Street 9",
		ScheduledAt: "2099-01-01T10:00",
	}
	svc.On("Submit", mock.Anything, testSessionID, expectedForm).Return(&models.SubmitBookingResponse{
		Success:  true,
		Message:  "msg",
		DeepLink: "https://wa.me/923043537785?text=msg",
		State:    models.NewViewState(),
	}, nil).Once()

	w := postJSON(router, "/api/v1/booking/submit", validSubmission)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.SubmitBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "https://wa.me/923043537785?text=msg", resp.DeepLink)
	svc.AssertExpectations(t)
}

func TestBookingHandler_Submit_PastTime(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	svc.On("Submit", mock.Anything, testSessionID, mock.AnythingOfType("*models.BookingForm")).Return(&models.SubmitBookingResponse{
		Success: false,
		Errors:  models.FieldErrors{models.FieldScheduledAt: models.ScheduledAtInvalidMessage},
		State:   models.NewViewState(),
	}, nil).Once()

	w := postJSON(router, "/api/v1/booking/submit", validSubmission)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), models.ScheduledAtInvalidMessage)
}

func TestBookingHandler_Submit_FormConstraints(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing name", body: `{"phone":"1","serviceType":"AC Cleaning","address":"a","scheduledAt":"2099-01-01T10:00"}`, field: "Name"},
		{name: "unknown service", body: `{"name":"a","phone":"1","serviceType":"Plumbing","address":"a","scheduledAt":"2099-01-01T10:00"}`, field: "ServiceType"},
		{name: "malformed time", body: `{"name":"a","phone":"1","serviceType":"AC Cleaning","address":"a","scheduledAt":"next tuesday"}`, field: "ScheduledAt"},
		{name: "missing time", body: `{"name":"a","phone":"1","serviceType":"AC Cleaning","address":"a"}`, field: "ScheduledAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/v1/booking/submit", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body struct {
				Error   string            `json:"error"`
				Details []ValidationError `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Invalid request", body.Error)
			require.NotEmpty(t, body.Details)
			assert.Equal(t, tt.field, body.Details[0].Field)
		})
	}

	svc.AssertNotCalled(t, "Submit")
}

func TestBookingHandler_Submit_Blocked(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	svc.On("Submit", mock.Anything, testSessionID, mock.Anything).Return(nil, booking.ErrInvalidTransition).Once()

	w := postJSON(router, "/api/v1/booking/submit", validSubmission)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingHandler_UpdateField(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	state := models.NewViewState()
	state.Draft.ScheduledAt = "2099-01-01T10:00"
	svc.On("UpdateField", mock.Anything, testSessionID, &models.FieldUpdateRequest{
		Field: models.FieldScheduledAt,
		Value: "2099-01-01T10:00",
	}).Return(state, nil).Once()

	w := postJSON(router, "/api/v1/booking/field", `{"field":"scheduledAt","value":"2099-01-01T10:00"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"scheduledAt":"2099-01-01T10:00"`)

	w = postJSON(router, "/api/v1/booking/field", `{"field":"email","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestBookingHandler_ReportHandoff(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	svc.On("ReportHandoff", mock.Anything, testSessionID, &models.HandoffProbeRequest{Window: models.WindowMissing}).
		Return(&models.HandoffResponse{
			State:           models.HandoffBlocked,
			FallbackVisible: true,
			Destination:     "0304-3537785",
			Message:         "msg",
		}, nil).Once()
	svc.On("ReportHandoff", mock.Anything, testSessionID, &models.HandoffProbeRequest{Window: models.WindowOpen}).
		Return(nil, booking.ErrInvalidTransition).Once()

	w := postJSON(router, "/api/v1/booking/handoff", `{"window":"missing"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.HandoffResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.FallbackVisible)
	assert.Equal(t, "0304-3537785", resp.Destination)

	w = postJSON(router, "/api/v1/booking/handoff", `{"window":"open"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = postJSON(router, "/api/v1/booking/handoff", `{"window":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func TestBookingHandler_FallbackActions(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	svc.On("Copy", mock.Anything, testSessionID).Return(&models.CopyResponse{
		Message: "msg", Copied: true, CopiedForMillis: 2000,
	}, nil).Once()
	svc.On("Retry", mock.Anything, testSessionID).Return(&models.HandoffResponse{
		State: models.HandoffBlocked, DeepLink: "https://wa.me/1?text=msg", FallbackVisible: true,
	}, nil).Once()
	svc.On("Dismiss", mock.Anything, testSessionID).Return(models.NewViewState(), nil).Once()

	w := postJSON(router, "/api/v1/booking/fallback/copy", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"msg","copied":true,"copiedForMillis":2000}`, w.Body.String())

	w = postJSON(router, "/api/v1/booking/fallback/retry", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://wa.me/1?text=msg")

	w = postJSON(router, "/api/v1/booking/fallback/dismiss", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"handoff":"idle"`)

	svc.AssertExpectations(t)
}

func TestBookingHandler_State(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	svc.On("State", mock.Anything, testSessionID).Return(models.NewViewState(), nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"serviceType":"House Cleaning"`)
	assert.Contains(t, w.Body.String(), `"activeSection":"top"`)
}

func TestBookingHandler_NoSession(t *testing.T) {
	svc := new(MockBookingService)
	router := gin.New()
	router.GET("/state", NewBookingHandler(svc).State)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	svc.AssertNotCalled(t, "State")
}

func TestUIHandler(t *testing.T) {
	svc := new(MockBookingService)
	router := newAPIRouter(svc)

	open := models.NewViewState()
	open.MenuOpen = true
	svc.On("ToggleMenu", mock.Anything, testSessionID).Return(open, nil).Once()
	svc.On("SetSection", mock.Anything, testSessionID, models.SectionProcess).Return(models.NewViewState(), nil).Once()

	w := postJSON(router, "/api/v1/ui/menu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"menuOpen":true`)

	w = postJSON(router, "/api/v1/ui/section", `{"section":"process"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(router, "/api/v1/ui/section", `{"section":"pricing"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	svc.AssertExpectations(t)
}

func newPageRouter(svc *MockBookingService) *gin.Engine {
	page := NewPageHandler(svc)

	router := gin.New()
	router.Use(withSession)
	router.GET("/", page.Index)
	router.POST("/booking", page.SubmitForm)
	router.POST("/booking/dismiss", page.Dismiss)
	router.POST("/menu", page.ToggleMenu)
	return router
}

func pageViewFor(st *models.ViewState) *models.PageView {
	return &models.PageView{
		State:         st,
		ServiceTypes:  models.ServiceTypes,
		DisplayNumber: "0304-3537785",
		ContactLink:   "https://wa.me/923043537785",
	}
}

func postForm(router *gin.Engine, path string, values url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func aliValues(scheduledAt string) url.Values {
	return url.Values{
		"name":         {"Ali"},
		"phone":        {"0300-1112223"},
		"serviceType":  {"AC Cleaning"},
		"address":      {"House 4, Street 9"},
		"scheduledAt":  {scheduledAt},
		"instructions": {"Use rear gate"},
	}
}

func TestPageHandler_Index(t *testing.T) {
	svc := new(MockBookingService)
	router := newPageRouter(svc)

	svc.On("Page", mock.Anything, testSessionID).Return(pageViewFor(models.NewViewState()), nil).Once()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Redefined")
}

func TestPageHandler_SubmitForm(t *testing.T) {
	svc := new(MockBookingService)
	router := newPageRouter(svc)

	svc.On("Submit", mock.Anything, testSessionID, &models.BookingForm{
		Name:         "Ali",
		Phone:        "0300-1112223",
		ServiceType:  "AC Cleaning",
		Address:      "House 4, Street 9",
		ScheduledAt:  "2099-01-01T10:00",
		Instructions: "Use rear gate",
	}).Return(&models.SubmitBookingResponse{
		Success:  true,
		DeepLink: "https://wa.me/923043537785?text=hello",
	}, nil).Once()
	svc.On("Page", mock.Anything, testSessionID).Return(pageViewFor(models.NewViewState()), nil).Once()

	w := postForm(router, "/booking", aliValues("2099-01-01T10:00"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-launch-handoff="https://wa.me/923043537785?text=hello"`)
	svc.AssertExpectations(t)
}

func TestPageHandler_SubmitForm_PastTime(t *testing.T) {
	svc := new(MockBookingService)
	router := newPageRouter(svc)

	st := models.NewViewState()
	st.Errors[models.FieldScheduledAt] = models.ScheduledAtInvalidMessage
	svc.On("Submit", mock.Anything, testSessionID, mock.Anything).Return(&models.SubmitBookingResponse{
		Success: false,
		Errors:  st.Errors,
		State:   st,
	}, nil).Once()
	svc.On("Page", mock.Anything, testSessionID).Return(pageViewFor(st), nil).Once()

	w := postForm(router, "/booking", aliValues("2020-01-01T10:00"))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), models.ScheduledAtInvalidMessage)
}

func TestPageHandler_SubmitForm_BindError(t *testing.T) {
	svc := new(MockBookingService)
	router := newPageRouter(svc)

	svc.On("Page", mock.Anything, testSessionID).Return(pageViewFor(models.NewViewState()), nil).Once()

	values := aliValues("2099-01-01T10:00")
	values.Del("name")
	w := postForm(router, "/booking", values)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Submit")
}

func TestPageHandler_DismissAndMenu(t *testing.T) {
	svc := new(MockBookingService)
	router := newPageRouter(svc)

	svc.On("Dismiss", mock.Anything, testSessionID).Return(nil, booking.ErrInvalidTransition).Once()
	svc.On("ToggleMenu", mock.Anything, testSessionID).Return(models.NewViewState(), nil).Once()

	w := postForm(router, "/booking/dismiss", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/#booking", w.Header().Get("Location"))

	w = postForm(router, "/menu", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	svc.AssertExpectations(t)
}
