// Package jobs runs the scheduled respawn watch: a periodic scan for
// bosses whose respawn window has elapsed since their last recorded kill.
package jobs

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	"github.com/bosswatch/bosswatch-backend/internal/stats"
)

// RespawnRosterKey caches the latest roster for the stats endpoint.
const RespawnRosterKey = "bosswatch:respawn:latest"

const rosterTTL = 48 * time.Hour

type Catalog interface {
	List(ctx context.Context) ([]bossdomain.Boss, error)
}

type ClickLog interface {
	ListAsc(ctx context.Context) ([]clickdomain.Click, error)
}

type Scheduler struct {
	cron    *cron.Cron
	catalog Catalog
	clicks  ClickLog
	rdb     *redis.Client
}

func NewScheduler(catalog Catalog, clicks ClickLog, rdb *redis.Client) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		catalog: catalog,
		clicks:  clicks,
		rdb:     rdb,
	}
}

// Start registers the respawn watch at the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.RunRespawnWatch(ctx)
	})
	if err != nil {
		return err
	}

	log.Printf("Cron scheduler started (respawn watch at %q)", spec)
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunRespawnWatch computes the due roster, logs it, and refreshes the
// Redis cache. Failures are logged and the previous cache entry stays.
func (s *Scheduler) RunRespawnWatch(ctx context.Context) {
	bosses, err := s.catalog.List(ctx)
	if err != nil {
		log.Printf("[jobs] respawn watch: list bosses: %v", err)
		return
	}
	clicks, err := s.clicks.ListAsc(ctx)
	if err != nil {
		log.Printf("[jobs] respawn watch: list clicks: %v", err)
		return
	}

	last := stats.LastByBoss(bosses, clicks)
	roster := stats.RespawnDue(bosses, last, time.Now().UTC())

	for _, entry := range roster {
		if entry.DueAt.IsZero() {
			log.Printf("[jobs] respawn due: %s (no recorded kill)", entry.Boss.Name)
			continue
		}
		log.Printf("[jobs] respawn due: %s (killed %s, due since %s)",
			entry.Boss.Name,
			entry.LastKilledAt.Format(time.RFC3339),
			entry.DueAt.Format(time.RFC3339),
		)
	}

	payload, err := json.Marshal(map[string]any{"respawns": roster})
	if err != nil {
		log.Printf("[jobs] respawn watch: marshal roster: %v", err)
		return
	}
	if err := s.rdb.Set(ctx, RespawnRosterKey, payload, rosterTTL).Err(); err != nil {
		log.Printf("[jobs] respawn watch: cache roster: %v", err)
	}
}
