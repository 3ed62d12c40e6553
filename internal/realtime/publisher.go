package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Channel carries JSON-encoded DashboardSnapshots between instances.
	Channel = "bosswatch:events:dashboard"
	// snapshotKey caches the latest snapshot so a client connecting
	// between store mutations still gets an initial payload.
	snapshotKey = "bosswatch:snapshot:latest"
	snapshotTTL = 24 * time.Hour
)

// Publisher pushes snapshots onto the Redis channel and keeps the
// latest-snapshot cache fresh.
type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

func (p *Publisher) Publish(ctx context.Context, snap DashboardSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	pipe := p.rdb.Pipeline()
	pipe.Publish(ctx, Channel, data)
	pipe.Set(ctx, snapshotKey, data, snapshotTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Cached returns the latest published snapshot, or nil when none is
// cached yet.
func (p *Publisher) Cached(ctx context.Context) ([]byte, error) {
	data, err := p.rdb.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached snapshot: %w", err)
	}
	return data, nil
}
