package domain

import (
	"time"

	"github.com/google/uuid"
)

// Collection is a curated group of artifacts with its own moderation workflow.
type Collection struct {
	ID             uuid.UUID
	Title          string
	ModerationMode ModerationMode
	IsPublic       bool
	CreatedAt      time.Time
	DeletedAt      *time.Time
}

// IsDeleted returns true if the collection has been soft-deleted.
func (c *Collection) IsDeleted() bool {
	return c.DeletedAt != nil
}

// Artifact is a globally addressable research object (project, registration, ...).
type Artifact struct {
	GUID      string
	Title     string
	IsPublic  bool
	CreatedAt time.Time
	DeletedAt *time.Time
}

// IsDeleted returns true if the artifact has been deleted.
func (a *Artifact) IsDeleted() bool {
	return a.DeletedAt != nil
}

// Contributor links a user to an artifact with a permission level.
type Contributor struct {
	ArtifactGUID string
	UserID       uuid.UUID
	Permission   Permission
}

// Submission is one artifact's presence in one collection.
type Submission struct {
	ID           uuid.UUID
	ArtifactGUID string
	CollectionID uuid.UUID
	CreatorID    uuid.UUID
	State        SubmissionState
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// IsDeleted returns true if the submission has been soft-deleted.
func (s *Submission) IsDeleted() bool {
	return s.DeletedAt != nil
}

// Action is the immutable audit record of one executed transition.
type Action struct {
	ID           uuid.UUID
	SubmissionID uuid.UUID
	FromState    SubmissionState
	ToState      SubmissionState
	Trigger      Trigger
	CreatorID    uuid.UUID
	Comment      string
	CreatedAt    time.Time
}

// Principal is the acting user resolved against one submission: their
// contributor permission on the artifact and whether they moderate the
// collection. The two are independent.
type Principal struct {
	UserID     uuid.UUID
	Permission Permission
	Moderator  bool
}

// IsAuthenticated reports whether the principal is a known user.
func (p Principal) IsAuthenticated() bool {
	return p.UserID != uuid.Nil
}

// IsContributor reports whether the principal has any permission on the artifact.
func (p Principal) IsContributor() bool {
	return p.Permission.AtLeast(PermissionRead)
}

// Has reports whether the principal holds the given role.
func (p Principal) Has(r Role) bool {
	switch r {
	case RoleContributor:
		return p.IsContributor()
	case RoleAdmin:
		return p.Permission.AtLeast(PermissionAdmin)
	case RoleModerator:
		return p.Moderator
	}
	return false
}

// HasAnyRole reports whether the principal holds at least one role on the
// submission (as a contributor or moderator).
func (p Principal) HasAnyRole() bool {
	return p.IsContributor() || p.Moderator
}
