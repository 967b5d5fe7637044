// Package submission implements the Submission repository using PostgreSQL.
package submission

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/domain"
)

const table = "submissions"

var columns = []string{
	"id", "artifact_guid", "collection_id", "creator_id", "state",
	"created_at", "updated_at", "deleted_at",
}

// Repo provides submission persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new submission repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID           uuid.UUID  `db:"id"`
	ArtifactGUID string     `db:"artifact_guid"`
	CollectionID uuid.UUID  `db:"collection_id"`
	CreatorID    uuid.UUID  `db:"creator_id"`
	State        string     `db:"state"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (r row) toDomain() *domain.Submission {
	return &domain.Submission{
		ID:           r.ID,
		ArtifactGUID: r.ArtifactGUID,
		CollectionID: r.CollectionID,
		CreatorID:    r.CreatorID,
		State:        domain.SubmissionState(r.State),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		DeletedAt:    r.DeletedAt,
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a submission by primary key, including soft-deleted ones.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate returns a submission and locks its row until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, suffix string) (*domain.Submission, error) {
	query := postgres.Builder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id})
	if suffix != "" {
		query = query.Suffix(suffix)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "submission", id)
	}
	return out.toDomain(), nil
}

// ExistsLive reports whether the artifact has a non-deleted submission in the collection.
func (r *Repo) ExistsLive(ctx context.Context, collectionID uuid.UUID, artifactGUID string) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM submissions
			WHERE collection_id = $1 AND artifact_guid = $2 AND deleted_at IS NULL
		)`,
		collectionID, artifactGUID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check live submission: %w", err)
	}
	return exists, nil
}

// List returns one page of a collection's live submissions, oldest first,
// and the total number matching the filter.
func (r *Repo) List(ctx context.Context, f domain.SubmissionFilter) ([]*domain.Submission, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	base := postgres.Builder.
		Select().
		From(table + " s").
		Where(sq.Eq{"s.collection_id": f.CollectionID}).
		Where("s.deleted_at IS NULL")

	if len(f.States) > 0 {
		states := make([]string, len(f.States))
		for i, st := range f.States {
			states[i] = st.String()
		}
		base = base.Where(sq.Eq{"s.state": states})
	}
	if f.CreatorID != nil {
		base = base.Where(sq.Eq{"s.creator_id": *f.CreatorID})
	}
	if f.PublicArtifactsOnly {
		base = base.
			Join("artifacts a ON a.guid = s.artifact_guid").
			Where("a.is_public AND a.deleted_at IS NULL")
	}

	countSQL, countArgs, err := base.Columns("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count submissions: %w", err)
	}

	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = "s." + c
	}

	pageSQL, pageArgs, err := base.
		Columns(prefixed...).
		OrderBy("s.created_at", "s.id").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, pageSQL, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("list submissions: %w", err)
	}

	subs := make([]*domain.Submission, len(rows))
	for i, rw := range rows {
		subs[i] = rw.toDomain()
	}
	return subs, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a submission and returns the persisted row.
// A second live submission of the same artifact in the collection is
// domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, sub *domain.Submission) (*domain.Submission, error) {
	sql, args, err := postgres.Builder.
		Insert(table).
		Columns("id", "artifact_guid", "collection_id", "creator_id", "state", "created_at", "updated_at").
		Values(sub.ID, sub.ArtifactGUID, sub.CollectionID, sub.CreatorID, sub.State.String(), sub.CreatedAt, sub.UpdatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "submission", sub.ID)
	}
	return out.toDomain(), nil
}

// UpdateState moves a live submission from one state to another. If the
// stored state is no longer from, nothing is written and the error wraps
// domain.ErrInvalidTransition.
func (r *Repo) UpdateState(ctx context.Context, id uuid.UUID, from, to domain.SubmissionState, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder.
		Update(table).
		Set("state", to.String()).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "state": from.String()}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = q.QueryRow(ctx, `SELECT state FROM submissions WHERE id = $1 AND deleted_at IS NULL`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	return fmt.Errorf("submission %s is %s, not %s: %w", id, current, from, domain.ErrInvalidTransition)
}

// SoftDelete hides a live submission. Returns domain.ErrNotFound if it is
// missing or already deleted.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	sql, args, err := postgres.Builder.
		Update(table).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "submission", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SoftDeleteByArtifact hides every live submission of an artifact and
// returns how many were hidden.
func (r *Repo) SoftDeleteByArtifact(ctx context.Context, artifactGUID string, at time.Time) (int, error) {
	sql, args, err := postgres.Builder.
		Update(table).
		Set("deleted_at", at).
		Set("updated_at", at).
		Where(sq.Eq{"artifact_guid": artifactGUID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "artifact", artifactGUID)
	}
	return int(tag.RowsAffected()), nil
}
