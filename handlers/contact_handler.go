package handlers

import (
	"net/http"

	"nexusconnect-backend/models"
	"nexusconnect-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContactHandler handles the public contact form and platform counters
type ContactHandler struct {
	contact *service.ContactService
	stats   *service.StatsService
	log     *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contact *service.ContactService, stats *service.StatsService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, stats: stats, log: log}
}

// Submit handles POST /api/contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req models.ContactMessageCreate
	if !bindAndValidate(c, &req) {
		return
	}
	msg, err := h.contact.Submit(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, msg)
}

// ContactStats handles GET /api/contact/stats
func (h *ContactHandler) ContactStats(c *gin.Context) {
	stats, err := h.stats.Contact(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}

// PlatformStats handles GET /api/stats
func (h *ContactHandler) PlatformStats(c *gin.Context) {
	stats, err := h.stats.Platform(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, stats)
}
