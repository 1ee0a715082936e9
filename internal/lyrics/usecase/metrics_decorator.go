package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/metrics"
)

// lyricsUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type lyricsUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &lyricsUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SubmitLyrics records metrics for lyrics submission.
func (l *lyricsUseCaseWithMetrics) SubmitLyrics(
	ctx context.Context,
	input SubmitLyricsInput,
) (*domain.Lyrics, error) {
	start := time.Now()
	lyrics, err := l.next.SubmitLyrics(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "lyrics", "submit", status)
	l.metrics.RecordDuration(ctx, "lyrics", "submit", time.Since(start), status)

	return lyrics, err
}

// VerifyLyrics records metrics for lyrics verification.
func (l *lyricsUseCaseWithMetrics) VerifyLyrics(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Lyrics, error) {
	start := time.Now()
	lyrics, err := l.next.VerifyLyrics(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "lyrics", "verify", status)
	l.metrics.RecordDuration(ctx, "lyrics", "verify", time.Since(start), status)

	return lyrics, err
}

// GetLyrics records metrics for lyrics retrieval.
func (l *lyricsUseCaseWithMetrics) GetLyrics(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error) {
	start := time.Now()
	lyrics, err := l.next.GetLyrics(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	l.metrics.RecordOperation(ctx, "lyrics", "get", status)
	l.metrics.RecordDuration(ctx, "lyrics", "get", time.Since(start), status)

	return lyrics, err
}
