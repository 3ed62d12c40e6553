package http

import (
	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	"github.com/bosswatch/bosswatch-backend/internal/stats"
)

type createBossRequest struct {
	Name        string `json:"name" binding:"required"`
	RespawnDays int    `json:"respawn_days"`
}

// updateBossRequest carries a partial edit: nil fields stay untouched.
type updateBossRequest struct {
	Name        *string `json:"name"`
	RespawnDays *int    `json:"respawn_days"`
}

type actionRequest struct {
	Action string `json:"action" binding:"required"`
}

// BossView is one catalog row with its derived last-seen state.
type BossView struct {
	bossdomain.Boss
	Last stats.LastSeen `json:"last"`
}

type listResponse struct {
	Bosses []BossView `json:"bosses"`
	Sort   string     `json:"sort"`
}

type historyResponse struct {
	BossID string              `json:"boss_id"`
	Days   int                 `json:"days,omitempty"`
	Clicks []clickdomain.Click `json:"clicks"`
}
