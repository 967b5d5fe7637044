package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

// principal resolves the caller's capability set against one submission.
// An anonymous caller resolves to the zero Principal.
func (s *Service) principal(ctx context.Context, collectionID uuid.UUID, artifactGUID string) (domain.Principal, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Principal{}, nil
	}

	perm, err := s.artifacts.GetPermission(ctx, artifactGUID, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("get permission: %w", err)
	}

	moderator, err := s.collections.IsModerator(ctx, collectionID, userID)
	if err != nil {
		return domain.Principal{}, fmt.Errorf("check moderator: %w", err)
	}

	return domain.Principal{UserID: userID, Permission: perm, Moderator: moderator}, nil
}

// target is a submission together with the resources that decide its fate.
type target struct {
	sub        *domain.Submission
	collection *domain.Collection
	artifact   *domain.Artifact
}

// loadTarget reads a submission and its collaborators. A deleted artifact
// is gone, even when its submissions were soft-deleted along with it.
// Otherwise a soft-deleted submission or collection is not found.
func (s *Service) loadTarget(ctx context.Context, id uuid.UUID, forUpdate bool) (target, error) {
	var (
		sub *domain.Submission
		err error
	)
	if forUpdate {
		sub, err = s.submissions.GetForUpdate(ctx, id)
	} else {
		sub, err = s.submissions.GetByID(ctx, id)
	}
	if err != nil {
		return target{}, fmt.Errorf("get submission: %w", err)
	}

	art, err := s.artifacts.GetByGUID(ctx, sub.ArtifactGUID)
	if err != nil {
		return target{}, fmt.Errorf("get artifact: %w", err)
	}
	if art.IsDeleted() {
		return target{}, fmt.Errorf("artifact %s: %w", art.GUID, domain.ErrGone)
	}

	if sub.IsDeleted() {
		return target{}, fmt.Errorf("submission %s: %w", id, domain.ErrNotFound)
	}

	coll, err := s.collections.GetByID(ctx, sub.CollectionID)
	if err != nil {
		return target{}, fmt.Errorf("get collection: %w", err)
	}
	if coll.IsDeleted() {
		return target{}, fmt.Errorf("collection %s: %w", coll.ID, domain.ErrNotFound)
	}

	return target{sub: sub, collection: coll, artifact: art}, nil
}

// canView applies the read rule: any role on the submission, or both the
// collection and the artifact are public.
func canView(t target, p domain.Principal) error {
	if p.HasAnyRole() {
		return nil
	}
	if t.collection.IsPublic && t.artifact.IsPublic {
		return nil
	}
	if !p.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	return domain.ErrForbidden
}
