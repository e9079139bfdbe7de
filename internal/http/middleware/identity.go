package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Customer identity is delegated to the external identity provider; its
// proxy forwards the authenticated subject in trusted headers.
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserEmail = "X-User-Email"
)

type Identity struct {
	UserID string
	Email  string
}

// CurrentUser returns the identity forwarded by the auth proxy, if any.
func CurrentUser(c *gin.Context) (Identity, bool) {
	id := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if id == "" {
		return Identity{}, false
	}
	return Identity{
		UserID: id,
		Email:  strings.TrimSpace(c.GetHeader(HeaderUserEmail)),
	}, true
}

// RequireUser rejects requests with no forwarded identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "authentication required",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
