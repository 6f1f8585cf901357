package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDHeader carries the browsing-session identity that keys every
// snapshot store. The frontend echoes it back on each request.
const SessionIDHeader = "X-Session-ID"

const sessionIDKey = "sessionID"

// SessionMiddleware reads the session id from the request, minting a fresh
// one when absent, and exposes it on the context and the response.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(SessionIDHeader)
		if sid == "" {
			sid = uuid.New().String()
		}
		c.Set(sessionIDKey, sid)
		c.Header(SessionIDHeader, sid)
		c.Next()
	}
}

// SessionID returns the request's session id.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
