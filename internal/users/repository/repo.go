package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bosswatch/bosswatch-backend/internal/users/domain"
)

const collection = "users"

// Repo is the Firestore-backed profile store, keyed by Firebase UID.
type Repo struct {
	db *firestore.Client
}

func NewRepo(db *firestore.Client) *Repo {
	return &Repo{db: db}
}

// Ensure provisions the profile on first login. The conditional Create
// makes it idempotent under concurrent first logins: the loser of the race
// gets AlreadyExists and reads the winner's document, so seeded flags are
// never overwritten.
func (r *Repo) Ensure(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	ref := r.db.Collection(collection).Doc(p.UID)
	_, err := ref.Create(ctx, p)
	if err == nil {
		return &p, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return nil, fmt.Errorf("create profile %s: %w", p.UID, err)
	}
	return r.Get(ctx, p.UID)
}

func (r *Repo) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	doc, err := r.db.Collection(collection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", uid, err)
	}
	var p domain.Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile %s: %w", uid, err)
	}
	p.UID = doc.Ref.ID
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]domain.Profile, error) {
	iter := r.db.Collection(collection).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Profile, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		var p domain.Profile
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode profile %s: %w", doc.Ref.ID, err)
		}
		p.UID = doc.Ref.ID
		out = append(out, p)
	}
	return out, nil
}

// SetFlag toggles authorized or isAdmin on another user's profile. A
// single-field update, so there is no read-modify-write race with the
// profile owner.
func (r *Repo) SetFlag(ctx context.Context, uid, flag string, value bool) error {
	if !domain.ValidFlag(flag) {
		return domain.ErrUnknownFlag
	}
	_, err := r.db.Collection(collection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: flag, Value: value},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("set %s on profile %s: %w", flag, uid, err)
	}
	return nil
}
