package submission

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

// CreateSubmissionInput holds the parameters for adding an artifact to a collection.
type CreateSubmissionInput struct {
	CollectionID uuid.UUID
	ArtifactGUID string
	Comment      string
}

// Validate checks all fields and collects all errors.
func (i CreateSubmissionInput) Validate() error {
	var errs []domain.FieldError

	if i.CollectionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collection_id", Message: "required"})
	}
	guid := strings.TrimSpace(i.ArtifactGUID)
	if guid == "" {
		errs = append(errs, domain.FieldError{Field: "artifact_guid", Message: "required"})
	}
	if utf8.RuneCountInString(guid) > 64 {
		errs = append(errs, domain.FieldError{Field: "artifact_guid", Message: "max 64 characters"})
	}
	if utf8.RuneCountInString(i.Comment) > MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ExecuteInput holds the parameters for requesting a trigger on a submission.
type ExecuteInput struct {
	SubmissionID uuid.UUID
	Trigger      string
	Comment      string
}

// Validate checks all fields and collects all errors. An unknown trigger
// name is a validation error, not an invalid transition.
func (i ExecuteInput) Validate() error {
	var errs []domain.FieldError

	if i.SubmissionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "submission_id", Message: "required"})
	}
	if strings.TrimSpace(i.Trigger) == "" {
		errs = append(errs, domain.FieldError{Field: "trigger", Message: "required"})
	} else if _, err := domain.ParseTrigger(i.Trigger); err != nil {
		errs = append(errs, domain.FieldError{Field: "trigger", Message: "unknown trigger"})
	}
	if utf8.RuneCountInString(i.Comment) > MaxCommentLength {
		errs = append(errs, domain.FieldError{Field: "comment", Message: "max 5000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListSubmissionsInput holds the parameters for listing a collection's submissions.
type ListSubmissionsInput struct {
	CollectionID uuid.UUID
	State        *string
	CreatorID    *uuid.UUID
	Limit        int
	Offset       int
}

// Validate checks all fields and collects all errors.
func (i ListSubmissionsInput) Validate() error {
	var errs []domain.FieldError

	if i.CollectionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "collection_id", Message: "required"})
	}
	if i.State != nil && !domain.SubmissionState(*i.State).IsValid() {
		errs = append(errs, domain.FieldError{Field: "state", Message: "unknown state"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if i.Limit > MaxListLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteArtifactInput identifies an artifact that was deleted upstream.
type DeleteArtifactInput struct {
	ArtifactGUID string
}

// Validate checks all fields and collects all errors.
func (i DeleteArtifactInput) Validate() error {
	if strings.TrimSpace(i.ArtifactGUID) == "" {
		return domain.NewValidationError("artifact_guid", "required")
	}
	return nil
}
