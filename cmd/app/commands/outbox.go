package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/songifi/lyricsflip-server-sub002/internal/app"
	"github.com/songifi/lyricsflip-server-sub002/internal/config"
)

// RunProcessOutbox drains one batch of pending outbox entries and exits. This
// is the manual counterpart of the server's polling loop, useful for draining
// a backlog out of band.
func RunProcessOutbox(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox publisher: %w", err)
	}

	if err := outboxUseCase.ProcessEntries(ctx); err != nil {
		return fmt.Errorf("failed to process outbox entries: %w", err)
	}

	logger.Info("outbox batch processed")
	return nil
}

// RunRequeueFailed moves all dead-letter outbox entries back to pending so the
// publisher picks them up on its next tick.
func RunRequeueFailed(ctx context.Context) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	outboxUseCase, err := container.OutboxUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize outbox publisher: %w", err)
	}

	count, err := outboxUseCase.RequeueFailed(ctx)
	if err != nil {
		return fmt.Errorf("failed to requeue dead-letter entries: %w", err)
	}

	logger.Info("dead-letter entries requeued", slog.Int64("count", count))
	return nil
}
