package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bosswatch/bosswatch-backend/internal/auth"
	"github.com/bosswatch/bosswatch-backend/internal/identity"
)

// IdentityClient is the slice of the identity client the handlers use.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (*identity.Session, error)
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	UpdateDisplayName(ctx context.Context, idToken, name string) error
}

type Handler struct {
	idc IdentityClient
}

func NewHandler(idc IdentityClient) *Handler {
	return &Handler{idc: idc}
}

// RegisterPublic wires the credential endpoints, which run before any
// session exists. Sign-out is client-side token disposal; there is no
// endpoint for it.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.Register)
	rg.POST("/auth/login", h.Login)
}

// RegisterProtected wires the session-scoped endpoints.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/auth/me", h.Me)
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname"`
}

// Register creates the account and, when a nickname was given, sets it as
// the display name so the first profile document picks it up.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.idc.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[auth] sign up: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "registration failed"})
		return
	}

	if req.Nickname != "" {
		if err := h.idc.UpdateDisplayName(c.Request.Context(), session.IDToken, req.Nickname); err != nil {
			// The account exists; the nickname just falls back to the
			// profile default on first login.
			log.Printf("[auth] set display name: %v", err)
		}
	}

	c.JSON(http.StatusCreated, session)
}

func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.idc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[auth] sign in: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the caller's profile. Reaching this handler at all means the
// session middleware already provisioned the document, so a first login
// comes back fully seeded.
func (h *Handler) Me(c *gin.Context) {
	profile, ok := auth.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
