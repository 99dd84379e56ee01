package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/middleware"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/services"
)

type BookingHandler struct {
	service services.BookingServiceInterface
}

func NewBookingHandler(service services.BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: service}
}

// sessionID reads the visitor session or answers 500 when the session
// middleware did not run.
func sessionID(c *gin.Context) (string, bool) {
	id, err := middleware.GetSessionID(c)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return "", false
	}
	return id, true
}

// State returns the serializable view state of the visitor
func (h *BookingHandler) State(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.State(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *BookingHandler) UpdateField(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req models.FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, err := h.service.UpdateField(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Submit validates and submits the whole form. A scheduled time that is not
// in the future answers 422 with the field errors.
func (h *BookingHandler) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var form models.BookingForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), id, &form)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !resp.Success {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ReportHandoff records what the browser saw after opening the deep link
func (h *BookingHandler) ReportHandoff(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req models.HandoffProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.service.ReportHandoff(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) Copy(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	resp, err := h.service.Copy(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) Retry(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	resp, err := h.service.Retry(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) Dismiss(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.Dismiss(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
