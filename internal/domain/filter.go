package domain

import "github.com/google/uuid"

// SubmissionFilter contains filtering/pagination parameters for listing a
// collection's submissions. An empty States slice means every state.
type SubmissionFilter struct {
	CollectionID uuid.UUID
	States       []SubmissionState
	CreatorID    *uuid.UUID

	// PublicArtifactsOnly hides submissions whose artifact is private.
	PublicArtifactsOnly bool

	Limit  int
	Offset int
}
