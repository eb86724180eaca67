package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey    = "sessionId"
	sessionIDHeader = "X-Session-Id"
)

// Session attaches an anonymous session identity to the request. The tool has
// no login surface; callers carry an opaque X-Session-Id header and a fresh
// one is minted for first-time visitors.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionIDHeader)
		if id == "" {
			id = randomHexID()
		}
		c.Set(sessionIDKey, id)
		c.Writer.Header().Set(sessionIDHeader, id)
		c.Next()
	}
}

// SessionIDFromContext fetches the session ID stored by Session middleware.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(sessionIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
