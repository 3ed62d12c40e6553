package http

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bosswatch/bosswatch-backend/internal/auth"
	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

// Profiles is the slice of the user repository the handlers use.
type Profiles interface {
	List(ctx context.Context) ([]domain.Profile, error)
	SetFlag(ctx context.Context, uid, flag string, value bool) error
}

type Handler struct {
	profiles Profiles
}

func NewHandler(profiles Profiles) *Handler {
	return &Handler{profiles: profiles}
}

// Register wires user management. All of it is admin-only: profiles are
// self-provisioned at login and only admins flip flags afterwards.
func Register(rg *gin.RouterGroup, h *Handler) {
	admin := rg.Group("/users", auth.RequireAdmin())
	admin.GET("", h.List)
	admin.PATCH("/:uid", h.SetFlags)
}

func (h *Handler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		log.Printf("[users] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list users failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

type setFlagsRequest struct {
	Authorized *bool `json:"authorized"`
	IsAdmin    *bool `json:"is_admin"`
}

// SetFlags toggles authorized and/or isAdmin on another user's profile.
// Each flag is a separate single-field update; Firestore serializes them.
func (h *Handler) SetFlags(c *gin.Context) {
	var req setFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Authorized == nil && req.IsAdmin == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	uid := c.Param("uid")
	ctx := c.Request.Context()

	if req.Authorized != nil {
		if err := h.setFlag(c, ctx, uid, domain.FlagAuthorized, *req.Authorized); err != nil {
			return
		}
	}
	if req.IsAdmin != nil {
		if err := h.setFlag(c, ctx, uid, domain.FlagAdmin, *req.IsAdmin); err != nil {
			return
		}
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setFlag(c *gin.Context, ctx context.Context, uid, flag string, value bool) error {
	err := h.profiles.SetFlag(ctx, uid, flag, value)
	if errors.Is(err, domain.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return err
	}
	if err != nil {
		log.Printf("[users] set %s: %v", flag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return err
	}
	return nil
}
