package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const ManagerPinHeader = "X-Manager-Pin"

// RequestLogger logs one line per request once it has been served.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// RequireConfirmation blocks destructive requests unless they carry
// confirm=true and, when pinHash is set, a manager PIN matching it.
func RequireConfirmation(pinHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "true" {
			c.AbortWithStatusJSON(statusFor(ErrConfirmationRequired), gin.H{"error": ErrConfirmationRequired.Error()})
			return
		}
		if pinHash != "" {
			pin := c.GetHeader(ManagerPinHeader)
			if err := bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)); err != nil {
				c.AbortWithStatusJSON(statusFor(ErrInvalidPin), gin.H{"error": ErrInvalidPin.Error()})
				return
			}
		}
		c.Next()
	}
}

// HashPin produces a value suitable for MANAGER_PIN_HASH.
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
