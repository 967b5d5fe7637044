// Package outbox implements the notification outbox using PostgreSQL.
// Entries are written after a transition commits and drained by the relay.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/domain"
)

const table = "notification_outbox"

var columns = []string{
	"id", "submission_id", "collection_id", "trigger", "state", "actor_id",
	"recipients", "status", "attempts", "last_error", "created_at", "delivered_at",
}

// Repo provides outbox persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new outbox repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	SubmissionID uuid.UUID  `db:"submission_id"`
	CollectionID uuid.UUID  `db:"collection_id"`
	Trigger      string     `db:"trigger"`
	State        string     `db:"state"`
	ActorID      uuid.UUID  `db:"actor_id"`
	Recipients   []byte     `db:"recipients"`
	Status       string     `db:"status"`
	Attempts     int        `db:"attempts"`
	LastError    *string    `db:"last_error"`
	CreatedAt    time.Time  `db:"created_at"`
	DeliveredAt  *time.Time `db:"delivered_at"`
}

func (r row) toDomain() (*domain.OutboxEntry, error) {
	var recipients []uuid.UUID
	if len(r.Recipients) > 0 {
		if err := json.Unmarshal(r.Recipients, &recipients); err != nil {
			return nil, fmt.Errorf("decode recipients of %s: %w", r.ID, err)
		}
	}
	return &domain.OutboxEntry{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		CollectionID: r.CollectionID,
		Trigger:      domain.Trigger(r.Trigger),
		State:        domain.SubmissionState(r.State),
		ActorID:      r.ActorID,
		Recipients:   recipients,
		Status:       domain.OutboxStatus(r.Status),
		Attempts:     r.Attempts,
		LastError:    r.LastError,
		CreatedAt:    r.CreatedAt,
		DeliveredAt:  r.DeliveredAt,
	}, nil
}

// Insert stores a new pending entry.
func (r *Repo) Insert(ctx context.Context, e *domain.OutboxEntry) error {
	recipients := e.Recipients
	if recipients == nil {
		recipients = []uuid.UUID{}
	}
	payload, err := json.Marshal(recipients)
	if err != nil {
		return fmt.Errorf("encode recipients: %w", err)
	}

	sql, args, err := postgres.Builder.
		Insert(table).
		Columns("id", "submission_id", "collection_id", "trigger", "state", "actor_id", "recipients", "status", "created_at").
		Values(e.ID, e.SubmissionID, e.CollectionID, e.Trigger.String(), e.State.String(), e.ActorID,
			string(payload), domain.OutboxStatusPending.String(), e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "outbox_entry", e.ID)
	}
	return nil
}

// ClaimPending leases up to limit pending entries, oldest first, to the
// caller for the lease duration. Rows claimed by another relay and not yet
// expired are skipped, so concurrent relays never receive the same entry.
func (r *Repo) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]*domain.OutboxEntry, error) {
	var rows []row
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows,
		`UPDATE notification_outbox
		 SET claimed_until = now() + make_interval(secs => $2)
		 WHERE id IN (
		     SELECT id FROM notification_outbox
		     WHERE status = 'pending' AND (claimed_until IS NULL OR claimed_until < now())
		     ORDER BY created_at, id
		     LIMIT $1
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING `+strings.Join(columns, ", "),
		limit, lease.Seconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("claim pending outbox: %w", err)
	}

	entries := make([]*domain.OutboxEntry, 0, len(rows))
	for _, rw := range rows {
		e, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.Before(entries[j].CreatedAt) })
	return entries, nil
}

// MarkDelivered flags an entry as delivered.
func (r *Repo) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE notification_outbox SET status = 'delivered', delivered_at = $2, attempts = attempts + 1
		 WHERE id = $1 AND status = 'pending'`,
		id, at,
	)
	if err != nil {
		return postgres.MapError(err, "outbox_entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox_entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// MarkFailedAttempt records a failed delivery and releases the claim. Once
// attempts reach maxAttempts the entry stops being pending.
func (r *Repo) MarkFailedAttempt(ctx context.Context, id uuid.UUID, reason string, maxAttempts int) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE notification_outbox
		 SET attempts = attempts + 1,
		     last_error = $2,
		     claimed_until = NULL,
		     status = CASE WHEN attempts + 1 >= $3 THEN 'failed' ELSE 'pending' END
		 WHERE id = $1 AND status = 'pending'`,
		id, reason, maxAttempts,
	)
	if err != nil {
		return postgres.MapError(err, "outbox_entry", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outbox_entry %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteFinishedBefore removes delivered and failed entries created before
// the cutoff. Pending entries are never removed. Returns the count deleted.
func (r *Repo) DeleteFinishedBefore(ctx context.Context, before time.Time) (int, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`DELETE FROM notification_outbox WHERE status <> 'pending' AND created_at < $1`,
		before,
	)
	if err != nil {
		return 0, postgres.MapError(err, "outbox_entry", uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}
