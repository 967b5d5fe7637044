package submission

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

// ListActions returns a submission's action history, oldest first.
func (s *Service) ListActions(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error) {
	if submissionID == uuid.Nil {
		return nil, domain.NewValidationError("submission_id", "required")
	}

	t, err := s.loadTarget(ctx, submissionID, false)
	if err != nil {
		return nil, err
	}

	p, err := s.principal(ctx, t.collection.ID, t.sub.ArtifactGUID)
	if err != nil {
		return nil, err
	}
	if err := canView(t, p); err != nil {
		return nil, err
	}

	actions, err := s.actions.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	if actions == nil {
		actions = []*domain.Action{}
	}

	return actions, nil
}
