package notify

import (
	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

// need describes which groups an event is addressed to.
type need struct {
	moderators bool
	admins     bool
	creator    bool
}

func needsFor(e domain.TransitionEvent) need {
	switch e.Trigger {
	case domain.TriggerSubmit, domain.TriggerResubmit:
		if e.State == domain.SubmissionStatePending {
			return need{moderators: true, creator: true}
		}
		return need{admins: true, creator: true}
	case domain.TriggerAccept, domain.TriggerReject:
		return need{admins: true, creator: true}
	case domain.TriggerCancel:
		return need{moderators: true}
	case domain.TriggerRemove:
		return need{admins: true, creator: true, moderators: !e.ActorModerator}
	}
	return need{}
}

// Audience returns the users to notify about e, in a stable order and
// without duplicates. The actor is never included.
func Audience(e domain.TransitionEvent, moderators, admins []uuid.UUID) []uuid.UUID {
	n := needsFor(e)

	seen := map[uuid.UUID]struct{}{e.ActorID: {}}
	out := make([]uuid.UUID, 0)
	add := func(ids ...uuid.UUID) {
		for _, id := range ids {
			if id == uuid.Nil {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}

	if n.creator {
		add(e.Submission.CreatorID)
	}
	if n.admins {
		add(admins...)
	}
	if n.moderators {
		add(moderators...)
	}
	return out
}
