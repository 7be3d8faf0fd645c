package handlers

import (
	"errors"
	"net/http"

	"nexusconnect-backend/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// multipartOverhead covers boundaries and part headers around the logo.
const multipartOverhead = 64 * 1024

// StorageHandler handles logo uploads
type StorageHandler struct {
	logos *service.LogoService
	log   *zap.Logger
}

// NewStorageHandler creates a new storage handler
func NewStorageHandler(logos *service.LogoService, log *zap.Logger) *StorageHandler {
	return &StorageHandler{logos: logos, log: log}
}

// UploadLogo handles POST /api/storage/upload-logo
func (h *StorageHandler) UploadLogo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit := h.logos.MaxSize() + multipartOverhead
	if c.Request.ContentLength > limit {
		respondServiceError(c, h.log, service.ErrFileTooLarge)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondServiceError(c, h.log, service.ErrFileTooLarge)
			return
		}
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	res, err := h.logos.Upload(c.Request.Context(), userID, service.LogoFile{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Data:        file,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, res)
}

// DeleteLogo handles DELETE /api/storage/delete-logo/*filename
func (h *StorageHandler) DeleteLogo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	res, err := h.logos.Delete(c.Request.Context(), userID, c.Param("filename"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	respondData(c, http.StatusOK, res)
}
