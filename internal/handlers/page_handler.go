package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/middleware"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/services"
	"github.com/homeservices/site/internal/views"
)

// PageHandler renders the landing page and serves its plain form posts,
// so the booking flow works without client script.
type PageHandler struct {
	service services.BookingServiceInterface
}

func NewPageHandler(service services.BookingServiceInterface) *PageHandler {
	return &PageHandler{service: service}
}

func (h *PageHandler) Index(c *gin.Context) {
	h.renderCurrent(c, http.StatusOK)
}

// SubmitForm handles the booking form post. On success the page comes back
// with the deep link armed for the client to open.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var form models.BookingForm
	if err := c.ShouldBind(&form); err != nil {
		attachError(c, err)
		h.renderCurrent(c, http.StatusBadRequest)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), id, &form)
	if err != nil {
		attachError(c, err)
		h.renderCurrent(c, statusFor(err))
		return
	}

	page, err := h.service.Page(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !resp.Success {
		h.render(c, http.StatusUnprocessableEntity, page)
		return
	}

	page.DeepLink = resp.DeepLink
	page.LaunchHandoff = true
	h.render(c, http.StatusOK, page)
}

// Dismiss closes the fallback from its close button
func (h *PageHandler) Dismiss(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if _, err := h.service.Dismiss(c.Request.Context(), id); err != nil {
		attachError(c, err)
	}
	c.Redirect(http.StatusSeeOther, "/#"+string(models.SectionBooking))
}

// ToggleMenu flips the mobile menu from its button
func (h *PageHandler) ToggleMenu(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if _, err := h.service.ToggleMenu(c.Request.Context(), id); err != nil {
		attachError(c, err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) renderCurrent(c *gin.Context, status int) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	page, err := h.service.Page(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.render(c, status, page)
}

func (h *PageHandler) render(c *gin.Context, status int, page *models.PageView) {
	var buf bytes.Buffer
	if err := views.Page(page, middleware.GetCSPNonce(c)).Render(&buf); err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
