// Package action implements the append-only submission action log using PostgreSQL.
package action

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/domain"
)

const table = "submission_actions"

var columns = []string{
	"id", "submission_id", "from_state", "to_state", "trigger", "creator_id", "comment", "created_at",
}

// Repo provides action persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new action repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID `db:"id"`
	SubmissionID uuid.UUID `db:"submission_id"`
	FromState    string    `db:"from_state"`
	ToState      string    `db:"to_state"`
	Trigger      string    `db:"trigger"`
	CreatorID    uuid.UUID `db:"creator_id"`
	Comment      string    `db:"comment"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r row) toDomain() *domain.Action {
	return &domain.Action{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		FromState:    domain.SubmissionState(r.FromState),
		ToState:      domain.SubmissionState(r.ToState),
		Trigger:      domain.Trigger(r.Trigger),
		CreatorID:    r.CreatorID,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

// Create appends an action record.
func (r *Repo) Create(ctx context.Context, a *domain.Action) (*domain.Action, error) {
	sql, args, err := postgres.Builder.
		Insert(table).
		Columns(columns...).
		Values(a.ID, a.SubmissionID, a.FromState.String(), a.ToState.String(), a.Trigger.String(), a.CreatorID, a.Comment, a.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "action", a.ID)
	}
	return out.toDomain(), nil
}

// ListBySubmission returns a submission's actions, oldest first.
func (r *Repo) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error) {
	sql, args, err := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"submission_id": submissionID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	actions := make([]*domain.Action, len(rows))
	for i, rw := range rows {
		actions[i] = rw.toDomain()
	}
	return actions, nil
}
