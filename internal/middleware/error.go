package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler converts errors attached to the gin context into structured
// responses. Typed app errors carry their own status; anything else is a
// masked internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		traceID := c.GetString("request_id")

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", traceID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("Request error")
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		message := "internal server error"
		field := ""

		var statusErr interface{ StatusCode() int }
		if errors.As(lastErr.Err, &statusErr) {
			status = statusErr.StatusCode()
			message = lastErr.Err.Error()
		}
		var fieldErr interface{ FieldName() string }
		if errors.As(lastErr.Err, &fieldErr) {
			field = fieldErr.FieldName()
		}

		c.JSON(status, ErrorResponse{
			Code:    status,
			Message: message,
			Field:   field,
			TraceID: traceID,
		})
	}
}
