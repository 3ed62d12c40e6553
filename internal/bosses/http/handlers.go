package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bosswatch/bosswatch-backend/internal/auth"
	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	"github.com/bosswatch/bosswatch-backend/internal/stats"
)

// Catalog is the slice of the boss repository the handlers use.
type Catalog interface {
	List(ctx context.Context) ([]bossdomain.Boss, error)
	Get(ctx context.Context, id string) (*bossdomain.Boss, error)
	Create(ctx context.Context, b bossdomain.Boss) (*bossdomain.Boss, error)
	Update(ctx context.Context, id string, name *string, respawnDays *int) error
	Delete(ctx context.Context, id string) error
}

// ClickLog is the slice of the click repository the handlers use.
type ClickLog interface {
	Append(ctx context.Context, c clickdomain.Click) (*clickdomain.Click, error)
	ListAsc(ctx context.Context) ([]clickdomain.Click, error)
	HistoryByBoss(ctx context.Context, bossID string, days int) ([]clickdomain.Click, error)
}

type Handler struct {
	catalog Catalog
	clicks  ClickLog
}

func NewHandler(catalog Catalog, clicks ClickLog) *Handler {
	return &Handler{catalog: catalog, clicks: clicks}
}

// Register wires the boss routes into an authenticated group. Catalog
// mutation is admin-only; recording actions needs an authorized profile.
func Register(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/bosses", h.List)
	rg.GET("/bosses/:id/history", h.History)
	rg.POST("/bosses/:id/actions", auth.RequireAuthorized(), h.RecordAction)

	admin := rg.Group("/bosses", auth.RequireAdmin())
	admin.POST("", h.Create)
	admin.PATCH("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// List returns the catalog with per-boss last-seen summaries, ordered by
// the requested sort mode.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	bosses, err := h.catalog.List(ctx)
	if err != nil {
		fail(c, "list bosses", err)
		return
	}
	clicks, err := h.clicks.ListAsc(ctx)
	if err != nil {
		fail(c, "list clicks", err)
		return
	}

	mode := stats.ParseSortMode(c.Query("sort"))
	last := stats.LastByBoss(bosses, clicks)
	sorted := stats.SortBosses(bosses, last, mode)

	views := make([]BossView, 0, len(sorted))
	for _, b := range sorted {
		views = append(views, BossView{Boss: b, Last: last[b.ID]})
	}
	c.JSON(http.StatusOK, listResponse{Bosses: views, Sort: string(mode)})
}

func (h *Handler) Create(c *gin.Context) {
	var req createBossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	boss, err := h.catalog.Create(c.Request.Context(), bossdomain.Boss{
		Name:        req.Name,
		RespawnDays: req.RespawnDays,
	})
	if errors.Is(err, bossdomain.ErrNameRequired) || errors.Is(err, bossdomain.ErrBadRespawnDays) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		fail(c, "create boss", err)
		return
	}
	c.JSON(http.StatusCreated, boss)
}

func (h *Handler) Update(c *gin.Context) {
	var req updateBossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == nil && req.RespawnDays == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}
	if req.Name != nil && *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": bossdomain.ErrNameRequired.Error()})
		return
	}
	if req.RespawnDays != nil && *req.RespawnDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": bossdomain.ErrBadRespawnDays.Error()})
		return
	}

	err := h.catalog.Update(c.Request.Context(), c.Param("id"), req.Name, req.RespawnDays)
	if errors.Is(err, bossdomain.ErrBossNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "boss not found"})
		return
	}
	if err != nil {
		fail(c, "update boss", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, "delete boss", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordAction appends one click to the log. The response echoes the click
// with a local timestamp guess so the caller can render optimistically;
// the snapshot feed delivers the server-assigned time and overwrites the
// guess when it arrives.
func (h *Handler) RecordAction(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action, err := clickdomain.ParseAction(req.Action)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	bossID := c.Param("id")
	if _, err := h.catalog.Get(ctx, bossID); errors.Is(err, bossdomain.ErrBossNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "boss not found"})
		return
	} else if err != nil {
		fail(c, "get boss", err)
		return
	}

	profile, _ := auth.CurrentProfile(c)
	click, err := h.clicks.Append(ctx, clickdomain.Click{
		BossID:   bossID,
		Action:   action,
		UserID:   profile.UID,
		UserName: profile.Nickname,
	})
	if err != nil {
		fail(c, "append click", err)
		return
	}

	click.CreatedAt = time.Now().UTC() // local guess until the feed confirms
	c.JSON(http.StatusAccepted, click)
}

func (h *Handler) History(c *gin.Context) {
	days := 0
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = n
	}

	bossID := c.Param("id")
	clicks, err := h.clicks.HistoryByBoss(c.Request.Context(), bossID, days)
	if err != nil {
		fail(c, "boss history", err)
		return
	}
	c.JSON(http.StatusOK, historyResponse{BossID: bossID, Days: days, Clicks: clicks})
}

// Store failures stay opaque: logged with the request id context and
// returned as a bare 500. No retry layer sits behind this.
func fail(c *gin.Context, op string, err error) {
	log.Printf("[bosses] %s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": op + " failed"})
}
