package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "storefront_session"
	sessionCtxKey = "sessionID"

	sessionMaxAge = 60 * 60 * 24 * 30 // 30 days
)

// sessionMiddleware resolves the storefront session id from the header or
// cookie, minting a fresh one when the client has none. The id is echoed
// back in both places so browser and non-browser clients can hold on to it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionCtxKey, id)
		c.Header(sessionHeader, id)
		c.SetCookie(sessionCookie, id, sessionMaxAge, "/", "", false, true)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionCtxKey)
}
