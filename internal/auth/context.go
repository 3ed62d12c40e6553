package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

const (
	ctxUID     = "firebase_uid"
	ctxProfile = "user_profile"
)

// SetSession installs the verified session in the request context. The
// middleware calls it after token verification; handler tests call it
// directly.
func SetSession(c *gin.Context, p *domain.Profile) {
	c.Set(ctxUID, p.UID)
	c.Set(ctxProfile, p)
}

// UserUID returns the verified Firebase UID, or "" outside an
// authenticated request.
func UserUID(c *gin.Context) string {
	return c.GetString(ctxUID)
}

// CurrentProfile returns the profile set by WithSession.
func CurrentProfile(c *gin.Context) (*domain.Profile, bool) {
	v, ok := c.Get(ctxProfile)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Profile)
	return p, ok
}
