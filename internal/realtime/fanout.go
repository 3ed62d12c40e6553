package realtime

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// Fanout bridges the Redis snapshot channel into the in-process hub, so
// every instance's SSE clients see writes made through any instance.
type Fanout struct {
	rdb *redis.Client
	hub *Hub
}

func NewFanout(rdb *redis.Client, hub *Hub) *Fanout {
	return &Fanout{rdb: rdb, hub: hub}
}

// Run blocks until ctx is cancelled. The subscription is closed on every
// exit path so no receive goroutine leaks.
func (f *Fanout) Run(ctx context.Context) {
	sub := f.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				log.Printf("[realtime] fanout channel closed")
				return
			}
			f.hub.Broadcast([]byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}
