package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/osfio/collections-moderation/internal/domain"
)

type outboxQueue interface {
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]*domain.OutboxEntry, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailedAttempt(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error
}

type sender interface {
	Send(ctx context.Context, entry *domain.OutboxEntry) error
}

// RelayConfig bounds one relay pass. ClaimLease is how long claimed entries
// stay hidden from other relays; it should outlast a full pass.
type RelayConfig struct {
	BatchSize   int
	Concurrency int
	MaxAttempts int
	ClaimLease  time.Duration
}

// RelayStats summarises one relay pass.
type RelayStats struct {
	Delivered int
	Failed    int
}

// Relay drains pending outbox entries to a sender.
type Relay struct {
	outbox outboxQueue
	sender sender
	cfg    RelayConfig
	log    *slog.Logger
	now    func() time.Time
}

// NewRelay creates a Relay.
func NewRelay(log *slog.Logger, outbox outboxQueue, sender sender, cfg RelayConfig) *Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ClaimLease <= 0 {
		cfg.ClaimLease = 5 * time.Minute
	}
	return &Relay{
		outbox: outbox,
		sender: sender,
		cfg:    cfg,
		log:    log.With("service", "notify_relay"),
		now:    time.Now,
	}
}

// RunOnce claims one batch of pending entries and delivers it. A failed
// delivery only counts an attempt; the error returned is for the outbox itself.
func (r *Relay) RunOnce(ctx context.Context) (RelayStats, error) {
	entries, err := r.outbox.ClaimPending(ctx, r.cfg.BatchSize, r.cfg.ClaimLease)
	if err != nil {
		return RelayStats{}, fmt.Errorf("claim pending: %w", err)
	}
	if len(entries) == 0 {
		return RelayStats{}, nil
	}

	var delivered, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for _, e := range entries {
		g.Go(func() error {
			if sendErr := r.sender.Send(gctx, e); sendErr != nil {
				failed.Add(1)
				r.log.WarnContext(gctx, "delivery failed",
					slog.String("outbox_id", e.ID.String()),
					slog.Int("attempt", e.Attempts+1),
					slog.String("error", sendErr.Error()),
				)
				if err := r.outbox.MarkFailedAttempt(gctx, e.ID, sendErr.Error(), r.cfg.MaxAttempts); err != nil {
					return fmt.Errorf("mark failed %s: %w", e.ID, err)
				}
				return nil
			}

			delivered.Add(1)
			if err := r.outbox.MarkDelivered(gctx, e.ID, r.now()); err != nil {
				return fmt.Errorf("mark delivered %s: %w", e.ID, err)
			}
			return nil
		})
	}

	err = g.Wait()
	stats := RelayStats{Delivered: int(delivered.Load()), Failed: int(failed.Load())}

	r.log.InfoContext(ctx, "relay pass finished",
		slog.Int("delivered", stats.Delivered),
		slog.Int("failed", stats.Failed),
	)
	return stats, err
}
