// Package collection implements the Collection repository and its moderator
// group using PostgreSQL.
package collection

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/domain"
)

// Repo provides collection persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new collection repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID             uuid.UUID  `db:"id"`
	Title          string     `db:"title"`
	ModerationMode string     `db:"moderation_mode"`
	IsPublic       bool       `db:"is_public"`
	CreatedAt      time.Time  `db:"created_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

// GetByID returns a collection by primary key, including soft-deleted ones.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	sql, args, err := postgres.Builder.
		Select("id", "title", "moderation_mode", "is_public", "created_at", "deleted_at").
		From("collections").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "collection", id)
	}

	return &domain.Collection{
		ID:             out.ID,
		Title:          out.Title,
		ModerationMode: domain.ModerationMode(out.ModerationMode),
		IsPublic:       out.IsPublic,
		CreatedAt:      out.CreatedAt,
		DeletedAt:      out.DeletedAt,
	}, nil
}

// IsModerator reports whether the user belongs to the collection's moderator group.
func (r *Repo) IsModerator(ctx context.Context, collectionID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM collection_moderators WHERE collection_id = $1 AND user_id = $2)`,
		collectionID, userID,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check moderator: %w", err)
	}
	return ok, nil
}

// ListModerators returns the collection's moderator user IDs.
func (r *Repo) ListModerators(ctx context.Context, collectionID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids,
		`SELECT user_id FROM collection_moderators WHERE collection_id = $1 ORDER BY created_at, user_id`,
		collectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list moderators: %w", err)
	}
	return ids, nil
}
