// Package notify turns committed submission transitions into notification
// outbox entries and relays those entries to the delivery webhook.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

type moderatorLister interface {
	ListModerators(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error)
}

type adminLister interface {
	ListAdmins(ctx context.Context, artifactGUID string) ([]uuid.UUID, error)
}

type outboxWriter interface {
	Insert(ctx context.Context, entry *domain.OutboxEntry) error
}

// Dispatcher records transition events in the outbox.
type Dispatcher struct {
	collections moderatorLister
	artifacts   adminLister
	outbox      outboxWriter
	log         *slog.Logger
	now         func() time.Time
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(log *slog.Logger, collections moderatorLister, artifacts adminLister, outbox outboxWriter) *Dispatcher {
	return &Dispatcher{
		collections: collections,
		artifacts:   artifacts,
		outbox:      outbox,
		log:         log.With("service", "notify"),
		now:         time.Now,
	}
}

// Notify computes the event's audience and enqueues it. Failures are logged
// and swallowed: the transition they describe is already committed.
func (d *Dispatcher) Notify(ctx context.Context, e domain.TransitionEvent) {
	log := d.log.With(
		slog.String("submission_id", e.Submission.ID.String()),
		slog.String("trigger", e.Trigger.String()),
	)

	n := needsFor(e)

	var moderators, admins []uuid.UUID
	if n.moderators {
		ids, err := d.collections.ListModerators(ctx, e.Collection.ID)
		if err != nil {
			log.ErrorContext(ctx, "list moderators", slog.String("error", err.Error()))
			return
		}
		moderators = ids
	}
	if n.admins {
		ids, err := d.artifacts.ListAdmins(ctx, e.Submission.ArtifactGUID)
		if err != nil {
			log.ErrorContext(ctx, "list artifact admins", slog.String("error", err.Error()))
			return
		}
		admins = ids
	}

	recipients := Audience(e, moderators, admins)
	if len(recipients) == 0 {
		log.DebugContext(ctx, "no recipients")
		return
	}

	entry := &domain.OutboxEntry{
		ID:           uuid.New(),
		SubmissionID: e.Submission.ID,
		CollectionID: e.Collection.ID,
		Trigger:      e.Trigger,
		State:        e.State,
		ActorID:      e.ActorID,
		Recipients:   recipients,
		Status:       domain.OutboxStatusPending,
		CreatedAt:    d.now(),
	}
	if err := d.outbox.Insert(ctx, entry); err != nil {
		log.ErrorContext(ctx, "enqueue notification", slog.String("error", err.Error()))
		return
	}

	log.InfoContext(ctx, "notification enqueued",
		slog.String("outbox_id", entry.ID.String()),
		slog.Int("recipients", len(recipients)),
	)
}
