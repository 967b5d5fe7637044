package submission

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

type submissionRepo interface {
	Create(ctx context.Context, sub *domain.Submission) (*domain.Submission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	ExistsLive(ctx context.Context, collectionID uuid.UUID, artifactGUID string) (bool, error)
	UpdateState(ctx context.Context, id uuid.UUID, from, to domain.SubmissionState, at time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
	SoftDeleteByArtifact(ctx context.Context, artifactGUID string, at time.Time) (int, error)
	List(ctx context.Context, filter domain.SubmissionFilter) ([]*domain.Submission, int, error)
}

type actionRepo interface {
	Create(ctx context.Context, action *domain.Action) (*domain.Action, error)
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]*domain.Action, error)
}

type collectionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error)
	IsModerator(ctx context.Context, collectionID, userID uuid.UUID) (bool, error)
}

type artifactRepo interface {
	GetByGUID(ctx context.Context, guid string) (*domain.Artifact, error)
	GetPermission(ctx context.Context, guid string, userID uuid.UUID) (domain.Permission, error)
	MarkDeleted(ctx context.Context, guid string, at time.Time) error
}

// notifier receives committed transitions. It must not fail the caller:
// delivery problems are its own to log.
type notifier interface {
	Notify(ctx context.Context, event domain.TransitionEvent)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	MaxCommentLength = 5000
)

// Service drives collection submissions through the moderation workflow.
type Service struct {
	submissions submissionRepo
	actions     actionRepo
	collections collectionRepo
	artifacts   artifactRepo
	notifier    notifier
	tx          txManager
	log         *slog.Logger
	now         func() time.Time
}

// NewService creates a new Submission service.
func NewService(
	log *slog.Logger,
	submissions submissionRepo,
	actions actionRepo,
	collections collectionRepo,
	artifacts artifactRepo,
	notifier notifier,
	tx txManager,
) *Service {
	return &Service{
		submissions: submissions,
		actions:     actions,
		collections: collections,
		artifacts:   artifacts,
		notifier:    notifier,
		tx:          tx,
		log:         log.With("service", "submission"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}
