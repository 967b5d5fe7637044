// Package artifact implements access to artifacts and their contributors
// using PostgreSQL.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/osfio/collections-moderation/internal/adapter/postgres"
	"github.com/osfio/collections-moderation/internal/domain"
)

// Repo provides artifact persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new artifact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	GUID      string     `db:"guid"`
	Title     string     `db:"title"`
	IsPublic  bool       `db:"is_public"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// GetByGUID returns an artifact, including deleted ones.
func (r *Repo) GetByGUID(ctx context.Context, guid string) (*domain.Artifact, error) {
	sql, args, err := postgres.Builder.
		Select("guid", "title", "is_public", "created_at", "deleted_at").
		From("artifacts").
		Where(sq.Eq{"guid": guid}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "artifact", guid)
	}

	return &domain.Artifact{
		GUID:      out.GUID,
		Title:     out.Title,
		IsPublic:  out.IsPublic,
		CreatedAt: out.CreatedAt,
		DeletedAt: out.DeletedAt,
	}, nil
}

// GetPermission returns the user's contributor permission on the artifact,
// or domain.PermissionNone if they are not a contributor.
func (r *Repo) GetPermission(ctx context.Context, guid string, userID uuid.UUID) (domain.Permission, error) {
	var perm string
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx,
		`SELECT permission FROM artifact_contributors WHERE artifact_guid = $1 AND user_id = $2`,
		guid, userID,
	).Scan(&perm)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PermissionNone, nil
	}
	if err != nil {
		return domain.PermissionNone, fmt.Errorf("get permission: %w", err)
	}
	return domain.Permission(perm), nil
}

// ListAdmins returns the user IDs holding admin permission on the artifact.
func (r *Repo) ListAdmins(ctx context.Context, guid string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &ids,
		`SELECT user_id FROM artifact_contributors
		 WHERE artifact_guid = $1 AND permission = 'admin'
		 ORDER BY user_id`,
		guid,
	)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return ids, nil
}

// MarkDeleted records the artifact as deleted. Marking an already deleted
// artifact keeps the original timestamp. Returns domain.ErrNotFound for an
// unknown guid.
func (r *Repo) MarkDeleted(ctx context.Context, guid string, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx,
		`UPDATE artifacts SET deleted_at = COALESCE(deleted_at, $2) WHERE guid = $1`,
		guid, at,
	)
	if err != nil {
		return postgres.MapError(err, "artifact", guid)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("artifact %s: %w", guid, domain.ErrNotFound)
	}
	return nil
}
