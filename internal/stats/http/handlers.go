package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	"github.com/bosswatch/bosswatch-backend/internal/jobs"
	"github.com/bosswatch/bosswatch-backend/internal/stats"
)

type Catalog interface {
	List(ctx context.Context) ([]bossdomain.Boss, error)
}

type ClickLog interface {
	ListAsc(ctx context.Context) ([]clickdomain.Click, error)
}

// Handler serves the admin chart tables and the respawn roster.
type Handler struct {
	catalog Catalog
	clicks  ClickLog
	rdb     *redis.Client
}

func NewHandler(catalog Catalog, clicks ClickLog, rdb *redis.Client) *Handler {
	return &Handler{catalog: catalog, clicks: clicks, rdb: rdb}
}

func Register(rg *gin.RouterGroup, h *Handler) {
	rg.GET("/stats/bosses", h.ByBoss)
	rg.GET("/stats/users", h.ByUser)
	rg.GET("/stats/respawns", h.Respawns)
}

// ByBoss returns the click count per boss in catalog order, optionally
// restricted to one action kind and windowed to the last `days` days.
func (h *Handler) ByBoss(c *gin.Context) {
	var action clickdomain.Action
	if raw := c.Query("action"); raw != "" {
		parsed, err := clickdomain.ParseAction(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		action = parsed
	}

	bosses, clicks, ok := h.load(c)
	if !ok {
		return
	}
	clicks, ok = windowed(c, clicks)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats.FrequencyByBoss(bosses, clicks, action)})
}

// ByUser returns the click count per user in first-seen order, windowed
// the same way as ByBoss.
func (h *Handler) ByUser(c *gin.Context) {
	_, clicks, ok := h.load(c)
	if !ok {
		return
	}
	clicks, ok = windowed(c, clicks)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats.FrequencyByUser(clicks)})
}

// windowed applies the optional ?days= window to the click log before the
// engine folds it. Zero or absent means the whole log.
func windowed(c *gin.Context, clicks []clickdomain.Click) ([]clickdomain.Click, bool) {
	raw := c.Query("days")
	if raw == "" {
		return clicks, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
		return nil, false
	}
	if days == 0 {
		return clicks, true
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	return stats.ClicksSince(clicks, cutoff), true
}

// Respawns serves the respawn-due roster. The nightly job caches its
// roster in Redis; when that is fresh we serve it, otherwise we compute
// from the live log.
func (h *Handler) Respawns(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		cached, err := h.rdb.Get(ctx, jobs.RespawnRosterKey).Bytes()
		if err == nil {
			c.Data(http.StatusOK, "application/json", cached)
			return
		}
		if err != redis.Nil {
			log.Printf("[stats] respawn cache: %v", err)
		}
	}

	bosses, clicks, ok := h.load(c)
	if !ok {
		return
	}
	last := stats.LastByBoss(bosses, clicks)
	roster := stats.RespawnDue(bosses, last, time.Now().UTC())

	payload, err := json.Marshal(gin.H{"respawns": roster})
	if err != nil {
		log.Printf("[stats] marshal respawns: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "respawn roster failed"})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

func (h *Handler) load(c *gin.Context) ([]bossdomain.Boss, []clickdomain.Click, bool) {
	ctx := c.Request.Context()
	bosses, err := h.catalog.List(ctx)
	if err != nil {
		log.Printf("[stats] list bosses: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list bosses failed"})
		return nil, nil, false
	}
	clicks, err := h.clicks.ListAsc(ctx)
	if err != nil {
		log.Printf("[stats] list clicks: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list clicks failed"})
		return nil, nil, false
	}
	return bosses, clicks, true
}
