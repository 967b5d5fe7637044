package submission

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/osfio/collections-moderation/internal/domain"
	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

// DeleteArtifactSubmissions handles an artifact deleted upstream: the
// artifact is marked deleted and its live submissions are soft-deleted.
// Returns how many submissions were hidden. Staff only.
func (s *Service) DeleteArtifactSubmissions(ctx context.Context, input DeleteArtifactInput) (int, error) {
	if !ctxutil.IsStaffCtx(ctx) {
		return 0, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	guid := strings.TrimSpace(input.ArtifactGUID)

	var count int
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()

		if err := s.artifacts.MarkDeleted(txCtx, guid, now); err != nil {
			return fmt.Errorf("mark artifact deleted: %w", err)
		}

		var deleteErr error
		count, deleteErr = s.submissions.SoftDeleteByArtifact(txCtx, guid, now)
		if deleteErr != nil {
			return fmt.Errorf("delete submissions: %w", deleteErr)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "artifact submissions deleted",
		slog.String("artifact_guid", guid),
		slog.Int("count", count),
	)

	return count, nil
}
