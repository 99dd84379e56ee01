package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/homeservices/site/internal/models"
	"github.com/homeservices/site/internal/services"
)

// UIHandler serves the navigation state of the page
type UIHandler struct {
	service services.BookingServiceInterface
}

func NewUIHandler(service services.BookingServiceInterface) *UIHandler {
	return &UIHandler{service: service}
}

func (h *UIHandler) ToggleMenu(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	state, err := h.service.ToggleMenu(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *UIHandler) SetSection(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req models.SectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, err := h.service.SetSection(c.Request.Context(), id, req.Section)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
