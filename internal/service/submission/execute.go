package submission

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/internal/service/submission/workflow"
)

// Execute fires a trigger against a submission on behalf of the caller.
// The state update and its action record commit together; the notification
// goes out only after commit.
func (s *Service) Execute(ctx context.Context, input ExecuteInput) (*domain.Submission, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	trigger, err := domain.ParseTrigger(input.Trigger)
	if err != nil {
		return nil, err
	}

	var (
		t      target
		p      domain.Principal
		action *domain.Action
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var loadErr error
		t, loadErr = s.loadTarget(txCtx, input.SubmissionID, true)
		if loadErr != nil {
			return loadErr
		}

		var principalErr error
		p, principalErr = s.principal(txCtx, t.collection.ID, t.sub.ArtifactGUID)
		if principalErr != nil {
			return principalErr
		}

		decision, decideErr := workflow.Decide(t.collection.ModerationMode, t.sub.State, trigger, p)
		if decideErr != nil {
			return decideErr
		}

		var applyErr error
		action, applyErr = s.apply(txCtx, t.sub, decision, p.UserID, input.Comment)
		return applyErr
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "submission transitioned",
		slog.String("submission_id", t.sub.ID.String()),
		slog.String("trigger", trigger.String()),
		slog.String("from", action.FromState.String()),
		slog.String("to", action.ToState.String()),
		slog.String("actor_id", p.UserID.String()),
	)

	s.notifier.Notify(ctx, newEvent(t, action, p))

	return t.sub, nil
}

// apply persists a decided transition: a compare-and-set on the state and
// the matching action record. Must run inside a transaction.
func (s *Service) apply(ctx context.Context, sub *domain.Submission, d workflow.Decision, actorID uuid.UUID, comment string) (*domain.Action, error) {
	now := s.now()

	if err := s.submissions.UpdateState(ctx, sub.ID, d.From, d.To, now); err != nil {
		return nil, fmt.Errorf("update state: %w", err)
	}

	action, err := s.actions.Create(ctx, &domain.Action{
		ID:           uuid.New(),
		SubmissionID: sub.ID,
		FromState:    d.From,
		ToState:      d.To,
		Trigger:      d.Trigger,
		CreatorID:    actorID,
		Comment:      comment,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("create action: %w", err)
	}

	sub.State = d.To
	sub.UpdatedAt = now
	return action, nil
}

func newEvent(t target, action *domain.Action, p domain.Principal) domain.TransitionEvent {
	return domain.TransitionEvent{
		Submission:     *t.sub,
		Collection:     *t.collection,
		Trigger:        action.Trigger,
		FromState:      action.FromState,
		State:          action.ToState,
		ActorID:        p.UserID,
		ActorModerator: p.Moderator,
		Comment:        action.Comment,
		OccurredAt:     action.CreatedAt,
	}
}
