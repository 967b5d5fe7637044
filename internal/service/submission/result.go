package submission

import "github.com/osfio/collections-moderation/internal/domain"

// SubmissionView is a submission as seen by one principal.
type SubmissionView struct {
	Submission     *domain.Submission
	ModerationMode domain.ModerationMode

	// Triggers lists what the caller could fire right now.
	Triggers []domain.Trigger
}

// ListResult is one page of a collection's submissions.
type ListResult struct {
	Submissions []*domain.Submission
	TotalCount  int
}
