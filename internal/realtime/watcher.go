package realtime

import (
	"context"
	"log"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	bossdomain "github.com/bosswatch/bosswatch-backend/internal/bosses/domain"
	bossrepo "github.com/bosswatch/bosswatch-backend/internal/bosses/repository"
	clickdomain "github.com/bosswatch/bosswatch-backend/internal/clicks/domain"
	clickrepo "github.com/bosswatch/bosswatch-backend/internal/clicks/repository"
)

// Watcher holds the Firestore snapshot listeners on the bosses and clicks
// collections and republishes a fresh DashboardSnapshot on every delivered
// change. Listener lifecycle is tied to ctx: cancellation stops both
// iterators, including on error paths, so no callback leaks past shutdown.
type Watcher struct {
	bosses *bossrepo.Repo
	clicks *clickrepo.Repo
	pub    *Publisher

	mu        sync.Mutex
	curBosses []bossdomain.Boss
	curClicks []clickdomain.Click
}

func NewWatcher(bosses *bossrepo.Repo, clicks *clickrepo.Repo, pub *Publisher) *Watcher {
	return &Watcher{bosses: bosses, clicks: clicks, pub: pub}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.watchBosses(ctx)
	}()
	go func() {
		defer wg.Done()
		w.watchClicks(ctx)
	}()
	wg.Wait()
}

func (w *Watcher) watchBosses(ctx context.Context) {
	it := w.bosses.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[realtime] bosses listener stopped: %v", err)
			}
			return
		}
		list, err := decodeBosses(snap.Documents)
		if err != nil {
			log.Printf("[realtime] %v", err)
			continue
		}
		w.mu.Lock()
		w.curBosses = list
		w.mu.Unlock()
		w.republish(ctx)
	}
}

func (w *Watcher) watchClicks(ctx context.Context) {
	it := w.clicks.Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("[realtime] clicks listener stopped: %v", err)
			}
			return
		}
		list, err := decodeClicks(snap.Documents)
		if err != nil {
			log.Printf("[realtime] %v", err)
			continue
		}
		w.mu.Lock()
		w.curClicks = list
		w.mu.Unlock()
		w.republish(ctx)
	}
}

func (w *Watcher) republish(ctx context.Context) {
	w.mu.Lock()
	snap := BuildSnapshot(w.curBosses, w.curClicks, time.Now().UTC())
	w.mu.Unlock()

	if err := w.pub.Publish(ctx, snap); err != nil {
		log.Printf("[realtime] publish: %v", err)
	}
}

func decodeBosses(docs *firestore.DocumentIterator) ([]bossdomain.Boss, error) {
	defer docs.Stop()
	out := make([]bossdomain.Boss, 0, 16)
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		b, err := bossrepo.Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
}

func decodeClicks(docs *firestore.DocumentIterator) ([]clickdomain.Click, error) {
	defer docs.Stop()
	out := make([]clickdomain.Click, 0, 64)
	for {
		doc, err := docs.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		c, err := clickrepo.Decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
}
