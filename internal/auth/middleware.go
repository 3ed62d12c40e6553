package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

// TokenVerifier is the slice of the Firebase Auth client the middleware
// needs; tests stub it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// ProfileStore provisions and loads profiles.
type ProfileStore interface {
	Ensure(ctx context.Context, p domain.Profile) (*domain.Profile, error)
}

// WithSession validates the Firebase ID token and ensures the caller's
// profile document exists, seeding the admin flags on the configured admin
// email's first login. The resolved profile lands in the request context
// for the policy checks downstream.
func WithSession(verifier TokenVerifier, store ProfileStore, adminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		email, _ := decoded.Claims["email"].(string)
		nickname, _ := decoded.Claims["name"].(string)

		profile, err := store.Ensure(c.Request.Context(), domain.NewProfile(decoded.UID, email, nickname, adminEmail))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ensure profile: " + err.Error()})
			c.Abort()
			return
		}

		SetSession(c, profile)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
