package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
)

func TestRespawnDue(t *testing.T) {
	bosses := []bossdomain.Boss{
		{ID: "1", Name: "Ghazbaran", RespawnDays: 2},
		{ID: "2", Name: "Zushuka"}, // no cadence, never listed
		{ID: "3", Name: "Morgaroth", RespawnDays: 10},
	}
	now := baseTime.Add(72 * time.Hour)
	last := map[string]LastSeen{
		"1": {Killed: &clickdomain.Click{Action: clickdomain.ActionKilled, CreatedAt: baseTime}},
		"3": {Killed: &clickdomain.Click{Action: clickdomain.ActionKilled, CreatedAt: baseTime}},
	}

	got := RespawnDue(bosses, last, now)

	require.Len(t, got, 1)
	assert.Equal(t, "Ghazbaran", got[0].Boss.Name)
	assert.Equal(t, baseTime, got[0].LastKilledAt)
	assert.Equal(t, baseTime.Add(48*time.Hour), got[0].DueAt)
}

func TestRespawnDueNoRecordedKill(t *testing.T) {
	bosses := []bossdomain.Boss{{ID: "1", Name: "Ghazbaran", RespawnDays: 2}}

	got := RespawnDue(bosses, nil, baseTime)

	require.Len(t, got, 1)
	assert.True(t, got[0].LastKilledAt.IsZero())
	assert.True(t, got[0].DueAt.IsZero())
}

func TestRespawnDueNotYetElapsed(t *testing.T) {
	bosses := []bossdomain.Boss{{ID: "1", Name: "Ghazbaran", RespawnDays: 2}}
	last := map[string]LastSeen{
		"1": {Killed: &clickdomain.Click{Action: clickdomain.ActionKilled, CreatedAt: baseTime}},
	}

	got := RespawnDue(bosses, last, baseTime.Add(time.Hour))

	assert.Empty(t, got)
}
