// The worker owns the singleton background pieces: the Firestore snapshot
// watcher that republishes the dashboard feed, and the respawn-watch
// cron. API instances scale horizontally; one worker runs beside them.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/bosswatch/bosswatch-backend/config"
	bossrepo "github.com/bosswatch/bosswatch-backend/internal/bosses/repository"
	"github.com/bosswatch/bosswatch-backend/internal/bootstrap"
	clickrepo "github.com/bosswatch/bosswatch-backend/internal/clicks/repository"
	"github.com/bosswatch/bosswatch-backend/internal/jobs"
	"github.com/bosswatch/bosswatch-backend/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatalf("init firebase: %v", err)
	}
	defer fb.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("open redis: %v", err)
	}
	defer rdb.Close()

	bossRepo := bossrepo.NewRepo(fb.Firestore)
	clickRepo := clickrepo.NewRepo(fb.Firestore)
	pub := realtime.NewPublisher(rdb)

	scheduler := jobs.NewScheduler(bossRepo, clickRepo, rdb)
	if err := scheduler.Start(cfg.Jobs.RespawnCron); err != nil {
		log.Fatalf("start scheduler: %v", err)
	}
	defer scheduler.Stop()

	log.Println("bosswatch-worker watching bosses and clicks")
	realtime.NewWatcher(bossRepo, clickRepo, pub).Run(ctx)
}
