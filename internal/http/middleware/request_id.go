package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/idrsdev/agile-task/common/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID propagates or assigns a request ID and adds it to the log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: &requestID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
