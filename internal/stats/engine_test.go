package stats

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func boss(id, name string) bossdomain.Boss {
	return bossdomain.Boss{ID: id, Name: name}
}

func click(bossID string, action clickdomain.Action, user string, at time.Time) clickdomain.Click {
	return clickdomain.Click{BossID: bossID, Action: action, UserID: user + "-uid", UserName: user, CreatedAt: at}
}

func TestLastByBossEmptyLog(t *testing.T) {
	got := LastByBoss([]bossdomain.Boss{boss("1", "Ghazbaran")}, nil)

	require.Len(t, got, 1)
	assert.Nil(t, got["1"].Checked)
	assert.Nil(t, got["1"].Killed)
}

func TestLastByBossKeepsLatestCheck(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Ghazbaran")}
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime),
		click("1", clickdomain.ActionChecked, "Bob", baseTime.Add(time.Hour)),
	}

	got := LastByBoss(bosses, clicks)

	require.NotNil(t, got["1"].Checked)
	assert.Equal(t, baseTime.Add(time.Hour), got["1"].Checked.CreatedAt)
	assert.Equal(t, "Bob", got["1"].Checked.UserName)
	assert.Nil(t, got["1"].Killed)
}

func TestLastByBossDanglingReference(t *testing.T) {
	clicks := []clickdomain.Click{click("99", clickdomain.ActionKilled, "Alice", baseTime)}

	got := LastByBoss(nil, clicks)

	require.Contains(t, got, "99")
	require.NotNil(t, got["99"].Killed)
	assert.Equal(t, "99", got["99"].Killed.BossID)
}

func TestLastByBossUnconfirmedNeverOverwritesConfirmed(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Morgaroth")}
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime),
		click("1", clickdomain.ActionChecked, "Bob", time.Time{}), // pending write
	}

	got := LastByBoss(bosses, clicks)

	require.NotNil(t, got["1"].Checked)
	assert.Equal(t, "Alice", got["1"].Checked.UserName)

	// With no confirmed value yet, the pending click does fill the slot.
	got = LastByBoss(bosses, clicks[1:])
	require.NotNil(t, got["1"].Checked)
	assert.Equal(t, "Bob", got["1"].Checked.UserName)
}

func TestLastByBossOrderIndependentGivenSortedInput(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Ghazbaran"), boss("2", "Zushuka")}
	clicks := make([]clickdomain.Click, 0, 40)
	for i := 0; i < 40; i++ {
		b := "1"
		if i%3 == 0 {
			b = "2"
		}
		action := clickdomain.ActionChecked
		if i%2 == 0 {
			action = clickdomain.ActionKilled
		}
		clicks = append(clicks, click(b, action, "Alice", baseTime.Add(time.Duration(i)*time.Minute)))
	}

	want := LastByBoss(bosses, clicks)

	shuffled := make([]clickdomain.Click, len(clicks))
	copy(shuffled, clicks)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	sort.SliceStable(shuffled, func(i, j int) bool {
		return shuffled[i].CreatedAt.Before(shuffled[j].CreatedAt)
	})

	assert.Equal(t, want, LastByBoss(bosses, shuffled))
}

func TestFrequencyByBossKeepsCatalogOrderAndZeroRows(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Zushuka"), boss("2", "Morgaroth")}

	got := FrequencyByBoss(bosses, nil, "")

	require.Len(t, got, 2)
	assert.Equal(t, NameCount{Name: "Zushuka", Count: 0}, got[0])
	assert.Equal(t, NameCount{Name: "Morgaroth", Count: 0}, got[1])
}

func TestFrequencyByBossActionFilter(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Ghazbaran")}
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime),
		click("1", clickdomain.ActionChecked, "Alice", baseTime.Add(time.Minute)),
		click("1", clickdomain.ActionKilled, "Bob", baseTime.Add(2*time.Minute)),
	}

	assert.Equal(t, 2, FrequencyByBoss(bosses, clicks, clickdomain.ActionChecked)[0].Count)
	assert.Equal(t, 1, FrequencyByBoss(bosses, clicks, clickdomain.ActionKilled)[0].Count)
	assert.Equal(t, 3, FrequencyByBoss(bosses, clicks, "")[0].Count)
}

func TestFrequencyByUserFirstSeenOrderAndTotal(t *testing.T) {
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime),
		click("1", clickdomain.ActionChecked, "Alice", baseTime.Add(time.Minute)),
		click("2", clickdomain.ActionKilled, "Bob", baseTime.Add(2*time.Minute)),
		click("2", clickdomain.ActionChecked, "Alice", baseTime.Add(3*time.Minute)),
	}

	got := FrequencyByUser(clicks)

	require.Len(t, got, 2)
	assert.Equal(t, NameCount{Name: "Alice", Count: 3}, got[0])
	assert.Equal(t, NameCount{Name: "Bob", Count: 1}, got[1])

	total := 0
	for _, row := range got {
		total += row.Count
	}
	assert.Equal(t, len(clicks), total)
}

func TestFrequencyByUserFallsBackToUserID(t *testing.T) {
	clicks := []clickdomain.Click{
		{BossID: "1", Action: clickdomain.ActionChecked, UserID: "uid-1"},
		{BossID: "1", Action: clickdomain.ActionChecked, UserID: "uid-1"},
	}

	got := FrequencyByUser(clicks)

	require.Len(t, got, 1)
	assert.Equal(t, NameCount{Name: "uid-1", Count: 2}, got[0])
}

func TestClicksSince(t *testing.T) {
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime.Add(-48*time.Hour)),
		click("1", clickdomain.ActionKilled, "Bob", baseTime.Add(-time.Hour)),
		click("2", clickdomain.ActionChecked, "Alice", baseTime),
		click("2", clickdomain.ActionChecked, "Carol", time.Time{}), // unconfirmed
	}

	got := ClicksSince(clicks, baseTime.Add(-24*time.Hour))

	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].UserName)
	assert.Equal(t, "Alice", got[1].UserName)
}

func TestClicksSinceFeedsWindowedFrequencies(t *testing.T) {
	bosses := []bossdomain.Boss{boss("1", "Ghazbaran"), boss("2", "Morgaroth")}
	clicks := []clickdomain.Click{
		click("1", clickdomain.ActionChecked, "Alice", baseTime.Add(-240*time.Hour)),
		click("1", clickdomain.ActionChecked, "Alice", baseTime),
		click("2", clickdomain.ActionChecked, "Bob", baseTime),
	}

	windowed := ClicksSince(clicks, baseTime.Add(-24*time.Hour))
	byBoss := FrequencyByBoss(bosses, windowed, "")
	byUser := FrequencyByUser(windowed)

	require.Len(t, byBoss, 2)
	assert.Equal(t, 1, byBoss[0].Count, "old click falls out of the window")
	assert.Equal(t, 1, byBoss[1].Count)
	require.Len(t, byUser, 2)
	assert.Equal(t, 1, byUser[0].Count)
}
