package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osfio/collections-moderation/internal/domain"
)

// pgCodeErrors maps PostgreSQL constraint SQLSTATEs onto domain errors.
var pgCodeErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation, e.g. a second live submission
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
}

// MapError wraps err with the entity and its key (a uuid or an artifact
// guid), translating no-rows and constraint violations into domain errors.
// Context cancellation is kept as is so callers can tell it apart.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %v: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := pgCodeErrors[pgErr.Code]; ok {
			if pgErr.ConstraintName != "" {
				return fmt.Errorf("%s %v: %w (constraint %s)", entity, id, mapped, pgErr.ConstraintName)
			}
			return fmt.Errorf("%s %v: %w", entity, id, mapped)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, id, err)
}
