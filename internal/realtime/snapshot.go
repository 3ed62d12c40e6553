package realtime

import (
	"time"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	"github.com/bosswatch/bosswatch-backend/internal/stats"
)

// BossView is one catalog entry with its derived last-seen state attached.
type BossView struct {
	bossdomain.Boss
	Last stats.LastSeen `json:"last"`
}

// DashboardSnapshot is the full derived view pushed to clients whenever
// the store changes. Recomputed, never persisted beyond the Redis cache.
type DashboardSnapshot struct {
	Bosses         []BossView        `json:"bosses"`
	CheckFrequency []stats.NameCount `json:"check_frequency"`
	UserFrequency  []stats.NameCount `json:"user_frequency"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// BuildSnapshot folds the catalog and the ascending click log through the
// aggregation engine. Bosses come out name-sorted; consumers re-sort
// client-side for the other modes.
func BuildSnapshot(bosses []bossdomain.Boss, clicks []clickdomain.Click, now time.Time) DashboardSnapshot {
	last := stats.LastByBoss(bosses, clicks)
	sorted := stats.SortBosses(bosses, last, stats.SortByName)

	views := make([]BossView, 0, len(sorted))
	for _, b := range sorted {
		views = append(views, BossView{Boss: b, Last: last[b.ID]})
	}

	return DashboardSnapshot{
		Bosses:         views,
		CheckFrequency: stats.FrequencyByBoss(bosses, clicks, clickdomain.ActionChecked),
		UserFrequency:  stats.FrequencyByUser(clicks),
		GeneratedAt:    now,
	}
}
