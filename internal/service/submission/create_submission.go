package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/internal/service/submission/workflow"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

// CreateSubmission adds an artifact to a collection and runs the implicit
// submit in the same transaction, so a submission never exists without its
// first action.
func (s *Service) CreateSubmission(ctx context.Context, input CreateSubmissionInput) (*domain.Submission, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	guid := strings.TrimSpace(input.ArtifactGUID)

	var (
		t      target
		p      domain.Principal
		action *domain.Action
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		coll, err := s.collections.GetByID(txCtx, input.CollectionID)
		if err != nil {
			return fmt.Errorf("get collection: %w", err)
		}
		if coll.IsDeleted() {
			return fmt.Errorf("collection %s: %w", coll.ID, domain.ErrNotFound)
		}

		art, err := s.artifacts.GetByGUID(txCtx, guid)
		if err != nil {
			return fmt.Errorf("get artifact: %w", err)
		}
		if art.IsDeleted() {
			return fmt.Errorf("artifact %s: %w", guid, domain.ErrGone)
		}

		exists, err := s.submissions.ExistsLive(txCtx, coll.ID, guid)
		if err != nil {
			return fmt.Errorf("check existing submission: %w", err)
		}
		if exists {
			return fmt.Errorf("artifact %s in collection %s: %w", guid, coll.ID, domain.ErrAlreadyExists)
		}

		p, err = s.principal(txCtx, coll.ID, guid)
		if err != nil {
			return err
		}

		decision, err := workflow.Decide(coll.ModerationMode, domain.SubmissionStateInProgress, domain.TriggerSubmit, p)
		if err != nil {
			return err
		}

		now := s.now()
		sub, err := s.submissions.Create(txCtx, &domain.Submission{
			ID:           uuid.New(),
			ArtifactGUID: guid,
			CollectionID: coll.ID,
			CreatorID:    userID,
			State:        domain.SubmissionStateInProgress,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create submission: %w", err)
		}

		action, err = s.apply(txCtx, sub, decision, userID, input.Comment)
		if err != nil {
			return err
		}

		t = target{sub: sub, collection: coll, artifact: art}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "submission created",
		slog.String("submission_id", t.sub.ID.String()),
		slog.String("collection_id", t.collection.ID.String()),
		slog.String("artifact_guid", guid),
		slog.String("state", t.sub.State.String()),
		slog.String("user_id", userID.String()),
	)

	s.notifier.Notify(ctx, newEvent(t, action, p))

	return t.sub, nil
}
