package workflow

import (
	"fmt"

	"github.com/osfio/collections-moderation/internal/domain"
)

// Authorize checks whether p may fire trigger in the table's workflow,
// independent of the submission's current state.
//
// A trigger the workflow does not define at all is an invalid transition for
// every caller. Otherwise an unauthenticated principal gets ErrUnauthorized
// and a principal lacking the required role gets a *domain.PermissionError.
func Authorize(t *Table, from domain.SubmissionState, trigger domain.Trigger, p domain.Principal) error {
	req, ok := t.Requirement(trigger)
	if !ok {
		return &domain.TransitionError{From: from, Trigger: trigger, Valid: t.ValidTriggers(from)}
	}

	if !p.IsAuthenticated() {
		return fmt.Errorf("%s requires authentication: %w", trigger, domain.ErrUnauthorized)
	}

	if !req.SatisfiedBy(p) {
		return &domain.PermissionError{
			Trigger: trigger,
			Reason:  "requires " + req.String() + " role",
		}
	}

	return nil
}
