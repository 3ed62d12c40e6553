package stats

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
)

// SortMode selects the dashboard ordering.
type SortMode string

const (
	SortByName        SortMode = "name"
	SortCheckedRecent SortMode = "checkedRecent"
	SortCheckedOldest SortMode = "checkedOldest"
)

func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortCheckedRecent, SortCheckedOldest:
		return SortMode(s)
	}
	return SortByName
}

// SortBosses returns a new slice ordered by mode. checkedRecent sorts by
// the last-checked timestamp descending and checkedOldest ascending; a boss
// never checked carries the zero time, so it sorts last under recent and
// first under oldest. Ties under every mode break by ascending name, which
// makes the order a deterministic total order even with equal timestamps.
func SortBosses(bosses []bossdomain.Boss, last map[string]LastSeen, mode SortMode) []bossdomain.Boss {
	out := make([]bossdomain.Boss, len(bosses))
	copy(out, bosses)

	// The player base is Brazilian; names collate the way pt-BR
	// localeCompare sorts them in the web client. A Collator mutates
	// internal state on every comparison, so each sort owns its own.
	coll := collate.New(language.BrazilianPortuguese)

	checkedAt := func(b bossdomain.Boss) time.Time {
		if ls, ok := last[b.ID]; ok && ls.Checked != nil {
			return ls.Checked.CreatedAt
		}
		return time.Time{}
	}

	less := func(i, j int) bool {
		switch mode {
		case SortCheckedRecent:
			ti, tj := checkedAt(out[i]), checkedAt(out[j])
			if !ti.Equal(tj) {
				return ti.After(tj)
			}
		case SortCheckedOldest:
			ti, tj := checkedAt(out[i]), checkedAt(out[j])
			if !ti.Equal(tj) {
				return ti.Before(tj)
			}
		}
		return coll.CompareString(out[i].Name, out[j].Name) < 0
	}

	sort.SliceStable(out, less)
	return out
}
