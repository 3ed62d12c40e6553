package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUnknownFlag     = errors.New("unknown profile flag")
)

// Profile flag field names as stored in Firestore.
const (
	FlagAuthorized = "authorized"
	FlagAdmin      = "isAdmin"
)

// Profile is the per-user document keyed by the Firebase UID. It is
// self-provisioned on first login and mutated only by admins afterwards.
type Profile struct {
	UID      string `firestore:"uid" json:"uid"`
	Email    string `firestore:"email" json:"email"`
	Nickname string `firestore:"nickname" json:"nickname"`
	IsAdmin  bool   `firestore:"isAdmin" json:"is_admin"`
	// Authorized gates whether the user may record boss actions.
	Authorized bool      `firestore:"authorized" json:"authorized"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp" json:"created_at"`
}

// NewProfile builds the document written on a user's first login. The
// admin/authorized flags are seeded true only when the email matches the
// configured admin email; everyone else waits for an admin to authorize them.
func NewProfile(uid, email, nickname, adminEmail string) Profile {
	if nickname == "" {
		nickname = "Jogador"
	}
	seed := adminEmail != "" && strings.EqualFold(email, adminEmail)
	return Profile{
		UID:        uid,
		Email:      email,
		Nickname:   nickname,
		IsAdmin:    seed,
		Authorized: seed,
	}
}

func ValidFlag(name string) bool {
	return name == FlagAuthorized || name == FlagAdmin
}
