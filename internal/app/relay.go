package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/adapter/postgres/outbox"
	"github.com/osfio/collections-moderation/internal/adapter/webhook"
	"github.com/osfio/collections-moderation/internal/config"
	"github.com/osfio/collections-moderation/internal/service/notify"
)

// RunRelay drains the notification outbox to the configured webhook on
// cfg.Notify.Schedule until ctx is cancelled. Overlapping runs are skipped.
func RunRelay(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	if cfg.Notify.WebhookURL == "" {
		return errors.New("notify.webhook_url is required to run the relay")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	relay := notify.NewRelay(
		logger,
		outbox.New(pool),
		webhook.NewSender(cfg.Notify.WebhookURL, cfg.Notify.WebhookSecret, cfg.Notify.Timeout, nil),
		notify.RelayConfig{
			BatchSize:   cfg.Notify.BatchSize,
			Concurrency: cfg.Notify.Concurrency,
			MaxAttempts: cfg.Notify.MaxAttempts,
			ClaimLease:  cfg.Notify.ClaimLease,
		},
	)

	c := cron.New(
		cron.WithParser(config.ScheduleParser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.Notify.Schedule, func() { drain(ctx, logger, relay) }); err != nil {
		return err
	}

	logger.Info("notify relay started",
		slog.String("version", BuildVersion()),
		slog.String("schedule", cfg.Notify.Schedule),
	)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	logger.Info("notify relay stopped")
	return nil
}

type outboxDrainer interface {
	RunOnce(ctx context.Context) (notify.RelayStats, error)
}

func drain(ctx context.Context, logger *slog.Logger, relay outboxDrainer) {
	stats, err := relay.RunOnce(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("outbox relay run failed", slog.String("error", err.Error()))
		}
		return
	}
	if stats.Delivered > 0 || stats.Failed > 0 {
		logger.Info("outbox relay run",
			slog.Int("delivered", stats.Delivered),
			slog.Int("failed", stats.Failed),
		)
	}
}
