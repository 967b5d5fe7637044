package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osfio/collections-moderation/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueGUID returns an artifact guid that no other test uses.
func UniqueGUID() string {
	return "g" + uniqueSuffix()
}

// SeedCollection inserts a collection with the given mode and visibility.
// Each id in moderators is added to the collection's moderator group.
func SeedCollection(t *testing.T, pool *pgxpool.Pool, mode domain.ModerationMode, public bool, moderators ...uuid.UUID) domain.Collection {
	t.Helper()
	ctx := context.Background()

	coll := domain.Collection{
		ID:             uuid.New(),
		Title:          "Collection " + uniqueSuffix(),
		ModerationMode: mode,
		IsPublic:       public,
		CreatedAt:      time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO collections (id, title, moderation_mode, is_public, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		coll.ID, coll.Title, string(coll.ModerationMode), coll.IsPublic, coll.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCollection insert: %v", err)
	}

	for _, userID := range moderators {
		_, err := pool.Exec(ctx,
			`INSERT INTO collection_moderators (collection_id, user_id) VALUES ($1, $2)`,
			coll.ID, userID,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedCollection insert moderator: %v", err)
		}
	}

	return coll
}

// SeedArtifact inserts an artifact and its contributors.
func SeedArtifact(t *testing.T, pool *pgxpool.Pool, public bool, contributors map[uuid.UUID]domain.Permission) domain.Artifact {
	t.Helper()
	ctx := context.Background()

	art := domain.Artifact{
		GUID:      UniqueGUID(),
		Title:     "Artifact " + uniqueSuffix(),
		IsPublic:  public,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO artifacts (guid, title, is_public, created_at) VALUES ($1, $2, $3, $4)`,
		art.GUID, art.Title, art.IsPublic, art.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedArtifact insert: %v", err)
	}

	for userID, perm := range contributors {
		_, err := pool.Exec(ctx,
			`INSERT INTO artifact_contributors (artifact_guid, user_id, permission) VALUES ($1, $2, $3)`,
			art.GUID, userID, string(perm),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedArtifact insert contributor: %v", err)
		}
	}

	return art
}

// SeedSubmission inserts a submission directly in the given state, with a
// matching submit action so the history invariant holds.
func SeedSubmission(t *testing.T, pool *pgxpool.Pool, coll domain.Collection, art domain.Artifact, creatorID uuid.UUID, state domain.SubmissionState) domain.Submission {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	sub := domain.Submission{
		ID:           uuid.New(),
		ArtifactGUID: art.GUID,
		CollectionID: coll.ID,
		CreatorID:    creatorID,
		State:        state,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO submissions (id, artifact_guid, collection_id, creator_id, state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sub.ID, sub.ArtifactGUID, sub.CollectionID, sub.CreatorID, string(sub.State), sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO submission_actions (id, submission_id, from_state, to_state, trigger, creator_id, created_at)
		 VALUES ($1, $2, 'in_progress', $3, 'submit', $4, $5)`,
		uuid.New(), sub.ID, string(state), creatorID, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSubmission insert action: %v", err)
	}

	return sub
}
