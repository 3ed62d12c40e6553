package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
)

const collection = "clicks"

// Repo is the Firestore-backed append-only click log. Clicks are inserted
// and read, never updated or deleted.
type Repo struct {
	db *firestore.Client
}

func NewRepo(db *firestore.Client) *Repo {
	return &Repo{db: db}
}

// Append writes one click. The server assigns CreatedAt at commit via the
// serverTimestamp sentinel; the returned click carries the caller's id and
// a zero CreatedAt, which callers may replace with a local guess for
// optimistic rendering until the snapshot feed confirms.
func (r *Repo) Append(ctx context.Context, c domain.Click) (*domain.Click, error) {
	c.CreatedAt = time.Time{} // let the server assign it
	ref, _, err := r.db.Collection(collection).Add(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("append click: %w", err)
	}
	c.ID = ref.ID
	return &c, nil
}

// ListAsc returns the full log ordered ascending by creation time. The
// aggregation engine's last-writer-wins policy depends on this ordering.
func (r *Repo) ListAsc(ctx context.Context) ([]domain.Click, error) {
	q := r.db.Collection(collection).OrderBy("createdAt", firestore.Asc)
	return collect(ctx, q)
}

// HistoryByBoss returns one boss's clicks, newest first. A positive days
// value restricts the window; zero means unbounded.
func (r *Repo) HistoryByBoss(ctx context.Context, bossID string, days int) ([]domain.Click, error) {
	q := r.db.Collection(collection).
		Where("bossId", "==", bossID).
		OrderBy("createdAt", firestore.Desc)
	if days > 0 {
		since := time.Now().AddDate(0, 0, -days)
		q = r.db.Collection(collection).
			Where("bossId", "==", bossID).
			Where("createdAt", ">=", since).
			OrderBy("createdAt", firestore.Desc)
	}
	return collect(ctx, q)
}

// LastByBossAction returns the newest click of one kind for one boss, or
// nil when there is none.
func (r *Repo) LastByBossAction(ctx context.Context, bossID string, action domain.Action) (*domain.Click, error) {
	q := r.db.Collection(collection).
		Where("bossId", "==", bossID).
		Where("action", "==", string(action)).
		OrderBy("createdAt", firestore.Desc).
		Limit(1)
	clicks, err := collect(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(clicks) == 0 {
		return nil, nil
	}
	return &clicks[0], nil
}

// Snapshots opens a live listener over the ascending log. The iterator
// stays open until Stop is called or ctx is cancelled; the caller owns
// that lifecycle.
func (r *Repo) Snapshots(ctx context.Context) *firestore.QuerySnapshotIterator {
	return r.db.Collection(collection).OrderBy("createdAt", firestore.Asc).Snapshots(ctx)
}

// Decode turns one snapshot document into a Click.
func Decode(doc *firestore.DocumentSnapshot) (domain.Click, error) {
	var c domain.Click
	if err := doc.DataTo(&c); err != nil {
		return domain.Click{}, fmt.Errorf("decode click %s: %w", doc.Ref.ID, err)
	}
	c.ID = doc.Ref.ID
	return c, nil
}

func collect(ctx context.Context, q firestore.Query) ([]domain.Click, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	out := make([]domain.Click, 0, 64)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list clicks: %w", err)
		}
		c, err := Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
