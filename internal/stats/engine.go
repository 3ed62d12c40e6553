// Package stats folds the append-only click log into the derived state the
// dashboard renders: per-boss last-seen marks and frequency tables. All
// functions are pure; malformed input degrades to nil/zero, never panics,
// because snapshot feeds can deliver clicks before their server timestamp
// is assigned.
package stats

import (
	"time"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
)

// LastSeen holds the most recent click of each kind for one boss. Either
// field is nil when the boss has no matching click.
type LastSeen struct {
	Checked *clickdomain.Click `json:"checked"`
	Killed  *clickdomain.Click `json:"killed"`
}

// NameCount is one row of a frequency table.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LastByBoss maps every boss id to its most recent checked and killed
// clicks. The input click slice must be sorted ascending by creation time:
// the policy is last-writer-by-scan-order wins, not timestamp comparison,
// so that unconfirmed clicks (zero CreatedAt, which would lose any
// timestamp comparison) still land in the right slot. An unconfirmed click
// never overwrites a confirmed value. Clicks referencing a boss absent
// from the catalog get an entry lazily instead of being dropped.
func LastByBoss(bosses []bossdomain.Boss, clicks []clickdomain.Click) map[string]LastSeen {
	out := make(map[string]LastSeen, len(bosses))
	for _, b := range bosses {
		out[b.ID] = LastSeen{}
	}
	for i := range clicks {
		c := &clicks[i]
		entry := out[c.BossID]
		switch c.Action {
		case clickdomain.ActionChecked:
			if c.Confirmed() || entry.Checked == nil {
				entry.Checked = c
			}
		case clickdomain.ActionKilled:
			if c.Confirmed() || entry.Killed == nil {
				entry.Killed = c
			}
		default:
			continue
		}
		out[c.BossID] = entry
	}
	return out
}

// ClicksSince filters the log down to clicks confirmed at or after cutoff,
// for the date-windowed frequency charts. Unconfirmed clicks carry no
// server timestamp, so they fall outside every window.
func ClicksSince(clicks []clickdomain.Click, cutoff time.Time) []clickdomain.Click {
	out := make([]clickdomain.Click, 0, len(clicks))
	for _, c := range clicks {
		if c.Confirmed() && !c.CreatedAt.Before(cutoff) {
			out = append(out, c)
		}
	}
	return out
}

// FrequencyByBoss counts clicks per boss, in catalog order. Bosses with no
// matching clicks are kept as zero-count rows. An empty action counts all
// kinds.
func FrequencyByBoss(bosses []bossdomain.Boss, clicks []clickdomain.Click, action clickdomain.Action) []NameCount {
	counts := make(map[string]int, len(bosses))
	for _, c := range clicks {
		if action != "" && c.Action != action {
			continue
		}
		counts[c.BossID]++
	}
	out := make([]NameCount, 0, len(bosses))
	for _, b := range bosses {
		out = append(out, NameCount{Name: b.Name, Count: counts[b.ID]})
	}
	return out
}

// FrequencyByUser counts clicks per user, grouped by the denormalized
// UserName when present, else the UserID. Rows come out in first-seen
// order; consumers sort for display if they want to.
func FrequencyByUser(clicks []clickdomain.Click) []NameCount {
	index := make(map[string]int, 8)
	out := make([]NameCount, 0, 8)
	for _, c := range clicks {
		key := c.UserName
		if key == "" {
			key = c.UserID
		}
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, NameCount{Name: key, Count: 1})
	}
	return out
}
