package usecase

import (
	"context"
	"time"

	"github.com/songifi/lyricsflip-server-sub002/internal/metrics"
	"github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// socialUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type socialUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &socialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateComment records metrics for comment creation.
func (s *socialUseCaseWithMetrics) CreateComment(
	ctx context.Context,
	input CreateCommentInput,
) (*domain.Comment, error) {
	start := time.Now()
	comment, err := s.next.CreateComment(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "social", "comment_create", status)
	s.metrics.RecordDuration(ctx, "social", "comment_create", time.Since(start), status)

	return comment, err
}

// FollowPlayer records metrics for follow creation.
func (s *socialUseCaseWithMetrics) FollowPlayer(
	ctx context.Context,
	input FollowPlayerInput,
) (*domain.Follow, error) {
	start := time.Now()
	follow, err := s.next.FollowPlayer(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "social", "follow_create", status)
	s.metrics.RecordDuration(ctx, "social", "follow_create", time.Since(start), status)

	return follow, err
}
