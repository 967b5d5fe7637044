package workflow

import (
	"github.com/osfio/collections-moderation/internal/domain"
)

// Decision is the outcome of a permitted, valid trigger.
type Decision struct {
	From    domain.SubmissionState
	To      domain.SubmissionState
	Trigger domain.Trigger
}

// Decide resolves trigger against a submission in state from, acting as p.
// The guard runs before the state check, so a caller without the required
// role learns nothing about the submission's state.
func Decide(mode domain.ModerationMode, from domain.SubmissionState, trigger domain.Trigger, p domain.Principal) (Decision, error) {
	t, err := For(mode)
	if err != nil {
		return Decision{}, err
	}

	if err := Authorize(t, from, trigger, p); err != nil {
		return Decision{}, err
	}

	tr, ok := t.Lookup(from, trigger)
	if !ok {
		return Decision{}, &domain.TransitionError{From: from, Trigger: trigger, Valid: t.ValidTriggers(from)}
	}

	return Decision{From: from, To: tr.Destination(p), Trigger: trigger}, nil
}

// Available lists the triggers p could fire right now from state from.
// Unknown modes yield nil.
func Available(mode domain.ModerationMode, from domain.SubmissionState, p domain.Principal) []domain.Trigger {
	t, err := For(mode)
	if err != nil {
		return nil
	}

	var out []domain.Trigger
	for _, trigger := range t.ValidTriggers(from) {
		if Authorize(t, from, trigger, p) == nil {
			out = append(out, trigger)
		}
	}
	return out
}
