package handlers

import (
	"errors"
	"net/http"

	"nexusconnect-backend/logger"
	"nexusconnect-backend/repository"
	"nexusconnect-backend/service"
	"nexusconnect-backend/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondValidation(c *gin.Context, err *validation.Error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_FAILED",
			"message": err.Error(),
			"details": err.Fields,
		},
	})
}

// bindAndValidate decodes the JSON body into v and runs the struct rules.
// It writes the 400 response itself and reports whether to continue.
func bindAndValidate(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return false
	}
	if err := validation.Validate(v); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respondValidation(c, verr)
			return false
		}
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return false
	}
	return true
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{service.ErrEmptyUpdate, http.StatusBadRequest, "EMPTY_UPDATE"},
	{service.ErrLockedFields, http.StatusBadRequest, "LOCKED_FIELDS"},
	{service.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{service.ErrInvalidFilter, http.StatusBadRequest, "INVALID_REQUEST"},
	{service.ErrUnsupportedFile, http.StatusBadRequest, "INVALID_FILE_TYPE"},
	{service.ErrFileTooLarge, http.StatusBadRequest, "FILE_TOO_LARGE"},
	{service.ErrProfileExists, http.StatusBadRequest, "PROFILE_EXISTS"},
	{service.ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
	{service.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{service.ErrProfileNotFound, http.StatusNotFound, "NOT_FOUND"},
	{service.ErrAccountNotFound, http.StatusNotFound, "NOT_FOUND"},
	{repository.ErrSchemaDrift, http.StatusConflict, "SCHEMA_DRIFT"},
}

// respondServiceError maps a service error onto the response envelope.
// Unknown errors are logged and answered with 500 and the upstream message.
func respondServiceError(c *gin.Context, base *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.status == http.StatusConflict {
				logger.FromGin(c, base).Error("schema drift", zap.Error(err))
			}
			respondError(c, m.status, m.code, err.Error())
			return
		}
	}

	logger.FromGin(c, base).Error("request failed", zap.Error(err))
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
}
