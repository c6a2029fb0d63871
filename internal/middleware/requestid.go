package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, honouring one supplied by a
// proxy, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(string(RequestIDKey), id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(c *gin.Context) (string, bool) {
	val, exists := c.Get(string(RequestIDKey))
	if !exists {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
