package domain

import (
	"errors"
	"time"
)

var (
	ErrBossNotFound   = errors.New("boss not found")
	ErrNameRequired   = errors.New("boss name required")
	ErrBadRespawnDays = errors.New("respawnDays must be positive")
)

// Boss is a trackable catalog entry. Only admins create, edit or delete
// bosses; regular users never mutate the catalog.
type Boss struct {
	ID   string `firestore:"-" json:"id"`
	Name string `firestore:"name" json:"name"`
	// RespawnDays is the boss respawn cadence in days, 0 when unknown.
	RespawnDays int       `firestore:"respawnDays,omitempty" json:"respawn_days,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

func (b *Boss) Validate() error {
	if b.Name == "" {
		return ErrNameRequired
	}
	if b.RespawnDays < 0 {
		return ErrBadRespawnDays
	}
	return nil
}
