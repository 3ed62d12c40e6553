package domain

import (
	"errors"
	"time"
)

var (
	ErrUnknownAction = errors.New("unknown action")
)

// Action is the kind of mark a player puts on a boss.
type Action string

const (
	ActionChecked Action = "checked"
	ActionKilled  Action = "killed"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionChecked, ActionKilled:
		return Action(s), nil
	}
	return "", ErrUnknownAction
}

// Click is one append-only log entry: a user marked a boss checked or
// killed. Clicks are never updated or deleted.
type Click struct {
	ID     string `firestore:"-" json:"id"`
	BossID string `firestore:"bossId" json:"boss_id"`
	Action Action `firestore:"action" json:"action"`
	UserID string `firestore:"userId" json:"user_id"`
	// UserName is a snapshot of the acting user's nickname at write time.
	// It is not kept in sync with later profile changes.
	UserName string `firestore:"userName" json:"user_name"`
	// CreatedAt is assigned by Firestore at commit. A zero value means the
	// write has not been confirmed by the server yet.
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// Confirmed reports whether the server has assigned a timestamp.
func (c *Click) Confirmed() bool {
	return !c.CreatedAt.IsZero()
}
