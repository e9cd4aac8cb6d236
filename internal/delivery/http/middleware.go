package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a correlation ID to every request, reusing the caller's
// X-Request-ID header when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// AccessLog logs one line per handled request.
func AccessLog(logger *zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("layer", "http_access").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	}
}

// Recovery converts panics into the standard JSON error shape instead of an
// empty 500, so even an unexpected failure keeps the response contract.
func Recovery(logger *zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("layer", "http_recovery").Logger()
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Interface("panic", err).
			Msg("panic recovered in handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	})
}
