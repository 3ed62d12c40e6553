package realtime

import (
	"encoding/json"
	"io"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler streams dashboard snapshots over SSE.
type Handler struct {
	hub *Hub
	pub *Publisher
}

func NewHandler(hub *Hub, pub *Publisher) *Handler {
	return &Handler{hub: hub, pub: pub}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/events", h.Stream)
}

// Stream subscribes the caller to live snapshots. The cached latest
// snapshot replays first so the client renders before the next store
// mutation. Registration is released unconditionally on disconnect.
func (h *Handler) Stream(c *gin.Context) {
	client := &Client{
		ID:   uuid.New().String(),
		Send: make(chan []byte, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	if cached, err := h.pub.Cached(c.Request.Context()); err != nil {
		log.Printf("[realtime] cached snapshot: %v", err)
	} else if cached != nil {
		c.SSEvent("snapshot", json.RawMessage(cached))
		c.Writer.Flush()
	}

	c.Stream(func(w io.Writer) bool {
		select {
		case data, ok := <-client.Send:
			if !ok {
				return false
			}
			c.SSEvent("snapshot", json.RawMessage(data))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
