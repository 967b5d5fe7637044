package submission

import (
	"context"
	"fmt"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

// ListSubmissions pages through a collection's submissions.
//
// Moderators see every state. A caller filtering on their own submissions
// sees all of them. Everyone else sees accepted submissions of public
// artifacts, and only in a public collection.
func (s *Service) ListSubmissions(ctx context.Context, input ListSubmissionsInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	coll, err := s.collections.GetByID(ctx, input.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}
	if coll.IsDeleted() {
		return nil, fmt.Errorf("collection %s: %w", coll.ID, domain.ErrNotFound)
	}

	filter := domain.SubmissionFilter{
		CollectionID: coll.ID,
		CreatorID:    input.CreatorID,
		Limit:        input.Limit,
		Offset:       input.Offset,
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if input.State != nil {
		filter.States = []domain.SubmissionState{domain.SubmissionState(*input.State)}
	}

	userID, authed := ctxutil.UserIDFromCtx(ctx)

	moderator := false
	if authed {
		moderator, err = s.collections.IsModerator(ctx, coll.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("check moderator: %w", err)
		}
	}

	ownOnly := authed && input.CreatorID != nil && *input.CreatorID == userID

	switch {
	case moderator, ownOnly:
	case !coll.IsPublic && !authed:
		return nil, domain.ErrUnauthorized
	case !coll.IsPublic:
		return nil, domain.ErrForbidden
	default:
		if input.State != nil && domain.SubmissionState(*input.State) != domain.SubmissionStateAccepted {
			return &ListResult{Submissions: []*domain.Submission{}}, nil
		}
		filter.States = []domain.SubmissionState{domain.SubmissionStateAccepted}
		filter.PublicArtifactsOnly = true
	}

	subs, total, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}

	return &ListResult{Submissions: subs, TotalCount: total}, nil
}
