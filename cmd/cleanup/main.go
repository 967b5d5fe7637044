// Command cleanup removes delivered and failed notification outbox entries
// older than the configured retention period. It is intended to be invoked
// by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/outbox"
	"github.com/osfio/collections-moderation/internal/app"
	"github.com/osfio/collections-moderation/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	threshold := time.Now().AddDate(0, 0, -cfg.Notify.RetentionDays)

	deleted, err := outbox.New(pool).DeleteFinishedBefore(ctx, threshold)
	if err != nil {
		logger.Error("outbox cleanup failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("outbox cleanup completed",
		slog.Int("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
