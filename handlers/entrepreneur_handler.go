package handlers

import (
	"net/http"
	"strconv"

	"nexusconnect-backend/middleware"
	"nexusconnect-backend/models"
	"nexusconnect-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntrepreneurHandler handles HTTP requests for entrepreneur profiles and drafts
type EntrepreneurHandler struct {
	profiles *service.EntrepreneurService
	drafts   *service.DraftService
	log      *zap.Logger
}

// NewEntrepreneurHandler creates a new entrepreneur handler
func NewEntrepreneurHandler(profiles *service.EntrepreneurService, drafts *service.DraftService, log *zap.Logger) *EntrepreneurHandler {
	return &EntrepreneurHandler{profiles: profiles, drafts: drafts, log: log}
}

// StatusRequest is the body of PATCH /entrepreneurs/me/status
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// List handles GET /api/entrepreneurs
func (h *EntrepreneurHandler) List(c *gin.Context) {
	req := service.ListProfilesRequest{
		Search:      c.Query("search"),
		CountryCode: c.Query("country_code"),
		City:        c.Query("city"),
		ProfileType: c.Query("profile_type"),
		SortBy:      c.DefaultQuery("sort_by", "created_at"),
		SortOrder:   c.DefaultQuery("sort_order", "desc"),
	}
	if tags, ok := c.GetQuery("tags"); ok {
		req.Tags = &tags
	}

	var err error
	if req.Limit, err = intQuery(c, "limit", service.DefaultListLimit); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be an integer")
		return
	}
	if req.Offset, err = intQuery(c, "offset", 0); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "offset must be an integer")
		return
	}
	if raw, ok := c.GetQuery("min_rating"); ok && raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "min_rating must be a number")
			return
		}
		req.MinRating = &v
	}

	profiles, err := h.profiles.List(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, profiles)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// GetMe handles GET /api/entrepreneurs/me
func (h *EntrepreneurHandler) GetMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetOwn(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// CreateMe handles POST /api/entrepreneurs/me
func (h *EntrepreneurHandler) CreateMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.EntrepreneurCreate
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.CreateOwn(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusCreated, profile)
}

// UpdateMe handles PUT /api/entrepreneurs/me
func (h *EntrepreneurHandler) UpdateMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.EntrepreneurUpdate
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateOwn(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// DeleteMe handles DELETE /api/entrepreneurs/me
func (h *EntrepreneurHandler) DeleteMe(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.profiles.DeleteOwn(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetStatus handles PATCH /api/entrepreneurs/me/status
func (h *EntrepreneurHandler) SetStatus(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req StatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	change, err := h.profiles.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, change)
}

// GetByID handles GET /api/entrepreneurs/:id
func (h *EntrepreneurHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetPublic(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// GetContact handles GET /api/entrepreneurs/:id/contact
func (h *EntrepreneurHandler) GetContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	info, err := h.profiles.GetContact(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, info)
}

// UpdateByID handles PUT /api/entrepreneurs/:id
func (h *EntrepreneurHandler) UpdateByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.EntrepreneurUpdate
	if !bindAndValidate(c, &req) {
		return
	}

	profile, err := h.profiles.UpdateByID(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, profile)
}

// DeleteByID handles DELETE /api/entrepreneurs/:id
func (h *EntrepreneurHandler) DeleteByID(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.profiles.DeleteByID(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetDraft handles GET /api/entrepreneurs/draft
func (h *EntrepreneurHandler) GetDraft(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	draft, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, draft)
}

// SaveDraft handles PUT and POST /api/entrepreneurs/draft
func (h *EntrepreneurHandler) SaveDraft(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.DraftPayload
	if !bindAndValidate(c, &req) {
		return
	}

	draft, err := h.drafts.Save(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, draft)
}

// DeleteDraft handles DELETE /api/entrepreneurs/draft
func (h *EntrepreneurHandler) DeleteDraft(c *gin.Context) {
	id, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.drafts.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUser returns the authenticated user id, answering 401 when absent.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return uuid.Nil, false
	}
	return id.ID, true
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Entrepreneur not found")
		return uuid.Nil, false
	}
	return id, true
}
