package submission

import (
	"context"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/internal/service/submission/workflow"
)

// GetSubmission returns a submission with the triggers the caller may fire.
func (s *Service) GetSubmission(ctx context.Context, submissionID uuid.UUID) (*SubmissionView, error) {
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

	triggers := workflow.Available(t.collection.ModerationMode, t.sub.State, p)
	if triggers == nil {
		triggers = []domain.Trigger{}
	}

	return &SubmissionView{
		Submission:     t.sub,
		ModerationMode: t.collection.ModerationMode,
		Triggers:       triggers,
	}, nil
}
