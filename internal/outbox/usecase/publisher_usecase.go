// Package usecase implements the outbox publishing logic: draining pending
// entries on a schedule and pushing them through the event bus.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/metrics"
	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
)

// Config holds outbox publisher configuration
type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

// OutboxRepository defines outbox entry repository operations
type OutboxRepository interface {
	Create(ctx context.Context, entry *domain.OutboxEntry) error
	GetPendingEntries(ctx context.Context, limit int) ([]*domain.OutboxEntry, error)
	ListByStatus(ctx context.Context, status domain.OutboxEntryStatus, offset, limit int) ([]*domain.OutboxEntry, error)
	Update(ctx context.Context, entry *domain.OutboxEntry) error
	RequeueFailed(ctx context.Context) (int64, error)
}

// EventPublisher is the bus surface the publisher depends on.
type EventPublisher interface {
	Publish(ctx context.Context, envelope *eventDomain.Envelope) error
}

// UseCase defines the interface for outbox publishing operations
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEntries(ctx context.Context) error
	ListEntries(ctx context.Context, status domain.OutboxEntryStatus, offset, limit int) ([]*domain.OutboxEntry, error)
	RequeueFailed(ctx context.Context) (int64, error)
}

// PublisherUseCase drains pending outbox entries and publishes them through
// the event bus. It is the only component that mutates outbox entry status.
type PublisherUseCase struct {
	config     Config
	txManager  database.TxManager
	outboxRepo OutboxRepository
	bus        EventPublisher
	logger     *slog.Logger
	metrics    metrics.BusinessMetrics
}

// NewPublisherUseCase creates a new PublisherUseCase. Logger and metrics are optional.
func NewPublisherUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxRepository,
	bus EventPublisher,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *PublisherUseCase {
	return &PublisherUseCase{
		config:     config,
		txManager:  txManager,
		outboxRepo: outboxRepo,
		bus:        bus,
		logger:     logger,
		metrics:    businessMetrics,
	}
}

// Start runs the polling loop until the context is cancelled. Retry backoff is
// implicit: a failed entry waits at least one polling interval per attempt.
func (uc *PublisherUseCase) Start(ctx context.Context) error {
	if uc.logger != nil {
		uc.logger.Info("starting outbox publisher",
			slog.Duration("poll_interval", uc.config.PollInterval),
			slog.Int("batch_size", uc.config.BatchSize),
			slog.Int("max_retries", uc.config.MaxRetries),
		)
	}

	ticker := time.NewTicker(uc.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if uc.logger != nil {
				uc.logger.Info("stopping outbox publisher")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEntries(ctx); err != nil {
				if uc.logger != nil {
					uc.logger.Error("failed to process outbox entries", slog.Any("error", err))
				}
			}
		}
	}
}

// ProcessEntries drains one bounded batch of pending entries inside a
// transaction. The selection locks rows (SKIP LOCKED), so multiple publisher
// instances can poll concurrently without double-publishing an entry.
//
// Per-aggregate ordering: entries are selected oldest first, and once an entry
// for an aggregate fails, later entries of the same aggregate in the batch are
// skipped untouched. A later state change's event never overtakes an earlier
// one for the same entity.
func (uc *PublisherUseCase) ProcessEntries(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		entries, err := uc.outboxRepo.GetPendingEntries(ctx, uc.config.BatchSize)
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			return nil
		}

		if uc.logger != nil {
			uc.logger.Info("draining outbox entries", slog.Int("count", len(entries)))
		}

		blocked := make(map[string]bool)

		for _, entry := range entries {
			aggregate := entry.AggregateType + "/" + entry.AggregateID

			if blocked[aggregate] {
				if uc.logger != nil {
					uc.logger.Debug("skipping entry behind failed sibling",
						slog.String("entry_id", entry.ID.String()),
						slog.String("aggregate", aggregate),
					)
				}
				continue
			}

			if err := uc.publishEntry(ctx, entry); err != nil {
				blocked[aggregate] = true

				entry.RecordFailure(err, uc.config.MaxRetries)
				uc.recordAttempt(ctx, "error")

				if entry.Status == domain.OutboxEntryStatusFailed && uc.logger != nil {
					uc.logger.Error("outbox entry moved to dead-letter",
						slog.String("entry_id", entry.ID.String()),
						slog.String("event_type", entry.EventType),
						slog.String("aggregate", aggregate),
						slog.Int("retries", entry.Retries),
						slog.Any("error", err),
					)
				}

				if err := uc.outboxRepo.Update(ctx, entry); err != nil {
					return err
				}
				continue
			}

			entry.MarkPublished(time.Now().UTC())
			uc.recordAttempt(ctx, "success")

			if err := uc.outboxRepo.Update(ctx, entry); err != nil {
				return err
			}
		}

		return nil
	})
}

// publishEntry deserializes one entry and dispatches it through the bus.
func (uc *PublisherUseCase) publishEntry(ctx context.Context, entry *domain.OutboxEntry) error {
	envelope, err := entry.Envelope()
	if err != nil {
		return err
	}

	if uc.logger != nil {
		uc.logger.Info("publishing outbox entry",
			slog.String("entry_id", entry.ID.String()),
			slog.String("event_type", entry.EventType),
			slog.String("correlation_id", envelope.Metadata.CorrelationID),
		)
	}

	return uc.bus.Publish(ctx, envelope)
}

// ListEntries exposes outbox entries for operational inspection (dead-letter
// triage). It never mutates state.
func (uc *PublisherUseCase) ListEntries(
	ctx context.Context,
	status domain.OutboxEntryStatus,
	offset, limit int,
) ([]*domain.OutboxEntry, error) {
	return uc.outboxRepo.ListByStatus(ctx, status, offset, limit)
}

// RequeueFailed moves dead-letter entries back to pending. This is the manual
// remediation path; the publishing path itself never auto-resolves failures.
func (uc *PublisherUseCase) RequeueFailed(ctx context.Context) (int64, error) {
	var count int64
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		count, err = uc.outboxRepo.RequeueFailed(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	if uc.logger != nil && count > 0 {
		uc.logger.Info("requeued failed outbox entries", slog.Int64("count", count))
	}

	return count, nil
}

// recordAttempt records one publish attempt outcome.
func (uc *PublisherUseCase) recordAttempt(ctx context.Context, status string) {
	if uc.metrics != nil {
		uc.metrics.RecordOperation(ctx, "outbox", "publish", status)
	}
}
