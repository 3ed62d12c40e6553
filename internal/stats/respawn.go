package stats

import (
	"time"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
)

// RespawnEntry is one row of the respawn-due roster.
type RespawnEntry struct {
	Boss bossdomain.Boss `json:"boss"`
	// LastKilledAt is zero when no kill has been recorded.
	LastKilledAt time.Time `json:"last_killed_at"`
	DueAt        time.Time `json:"due_at"`
}

// RespawnDue lists bosses whose respawn window has elapsed. Bosses without
// a RespawnDays cadence are skipped. A boss with a cadence but no recorded
// kill counts as due: nobody knows when it last died, so it is worth
// checking. Rows come out in catalog order.
func RespawnDue(bosses []bossdomain.Boss, last map[string]LastSeen, now time.Time) []RespawnEntry {
	out := make([]RespawnEntry, 0, len(bosses))
	for _, b := range bosses {
		if b.RespawnDays <= 0 {
			continue
		}
		entry := RespawnEntry{Boss: b}
		if ls, ok := last[b.ID]; ok && ls.Killed != nil && ls.Killed.Confirmed() {
			entry.LastKilledAt = ls.Killed.CreatedAt
			entry.DueAt = ls.Killed.CreatedAt.Add(time.Duration(b.RespawnDays) * 24 * time.Hour)
		}
		if entry.DueAt.After(now) {
			continue
		}
		out = append(out, entry)
	}
	return out
}
