package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const RequestIDHeader = "X-Request-ID"

var newUUID = uuid.NewV4

// RequestID attaches a correlation id to each request, honoring one
// supplied by the client. The header is never left empty.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			if id, err := newUUID(); err != nil {
				slog.Error("request id generation failed", slog.String("error", err.Error()))
				requestID = "unknown"
			} else {
				requestID = id.String()
			}
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}
