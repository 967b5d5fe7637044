package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

// DeleteSubmission soft-deletes a submission. Only an admin contributor on
// the artifact may do so, and an accepted submission has to be removed first.
// The action history is kept.
func (s *Service) DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if submissionID == uuid.Nil {
		return domain.NewValidationError("submission_id", "required")
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadTarget(txCtx, submissionID, true)
		if err != nil {
			return err
		}

		p, err := s.principal(txCtx, t.collection.ID, t.sub.ArtifactGUID)
		if err != nil {
			return err
		}
		if !p.Has(domain.RoleAdmin) {
			return &domain.PermissionError{Trigger: "delete", Reason: "requires admin role"}
		}
		if t.sub.State == domain.SubmissionStateAccepted {
			return fmt.Errorf("submission is accepted, remove it first: %w", domain.ErrConflict)
		}

		if err := s.submissions.SoftDelete(txCtx, submissionID, s.now()); err != nil {
			return fmt.Errorf("delete submission: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "submission deleted",
		slog.String("submission_id", submissionID.String()),
		slog.String("user_id", userID.String()),
	)

	return nil
}
