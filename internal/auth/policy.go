package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The web client this replaces only checked these flags in the browser.
// Here they gate every mutating route server-side, before any store call.

// RequireAuthorized rejects users who have not been cleared to record
// boss actions.
func RequireAuthorized() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentProfile(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
			c.Abort()
			return
		}
		if !p.Authorized {
			c.JSON(http.StatusForbidden, gin.H{"error": "awaiting admin authorization"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects non-admins from catalog and user management.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentProfile(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
			c.Abort()
			return
		}
		if !p.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
			c.Abort()
			return
		}
		c.Next()
	}
}
