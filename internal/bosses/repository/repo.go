package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
)

const collection = "bosses"

// Repo is the Firestore-backed boss catalog.
type Repo struct {
	db *firestore.Client
}

func NewRepo(db *firestore.Client) *Repo {
	return &Repo{db: db}
}

func (r *Repo) List(ctx context.Context) ([]domain.Boss, error) {
	iter := r.db.Collection(collection).Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Boss, 0, 16)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list bosses: %w", err)
		}
		b, err := Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Decode turns one snapshot document into a Boss.
func Decode(doc *firestore.DocumentSnapshot) (domain.Boss, error) {
	var b domain.Boss
	if err := doc.DataTo(&b); err != nil {
		return domain.Boss{}, fmt.Errorf("decode boss %s: %w", doc.Ref.ID, err)
	}
	b.ID = doc.Ref.ID
	return b, nil
}

// Snapshots opens a live listener over the catalog. Caller owns Stop.
func (r *Repo) Snapshots(ctx context.Context) *firestore.QuerySnapshotIterator {
	return r.db.Collection(collection).Query.Snapshots(ctx)
}

func (r *Repo) Get(ctx context.Context, id string) (*domain.Boss, error) {
	doc, err := r.db.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrBossNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get boss %s: %w", id, err)
	}
	var b domain.Boss
	if err := doc.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decode boss %s: %w", id, err)
	}
	b.ID = doc.Ref.ID
	return &b, nil
}

func (r *Repo) Create(ctx context.Context, b domain.Boss) (*domain.Boss, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	ref, _, err := r.db.Collection(collection).Add(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create boss: %w", err)
	}
	b.ID = ref.ID
	return &b, nil
}

// Update applies a partial edit of the admin-editable fields: nil means
// leave the stored value alone.
func (r *Repo) Update(ctx context.Context, id string, name *string, respawnDays *int) error {
	updates := make([]firestore.Update, 0, 2)
	if name != nil {
		updates = append(updates, firestore.Update{Path: "name", Value: *name})
	}
	if respawnDays != nil {
		updates = append(updates, firestore.Update{Path: "respawnDays", Value: *respawnDays})
	}
	if len(updates) == 0 {
		return nil
	}

	_, err := r.db.Collection(collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrBossNotFound
	}
	if err != nil {
		return fmt.Errorf("update boss %s: %w", id, err)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete boss %s: %w", id, err)
	}
	return nil
}
