package handlers

import (
	"errors"
	"net/http"

	"burger_pos/internal/models"
	"burger_pos/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrConfirmationRequired = errors.New("confirmation required: repeat the request with confirm=true")
	ErrInvalidPin           = errors.New("manager PIN does not match")
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrOrderNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrNothingToClose),
		errors.Is(err, services.ErrDayRolledOver):
		return http.StatusConflict
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidPayment),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrUnknownModifier),
		errors.Is(err, models.ErrInvalidLine):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfirmationRequired):
		return http.StatusPreconditionFailed
	case errors.Is(err, ErrInvalidPin):
		return http.StatusForbidden
	case errors.Is(err, services.ErrExportFailed):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrArchiveUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *APIHandler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
