package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// CommentNotificationHandler reacts to comment.created with two sub-actions:
// notify the lyrics owner and record the analytics event. The sub-actions are
// independently isolated so a notification failure never suppresses the
// analytics write, and vice versa.
type CommentNotificationHandler struct {
	notifier  NotificationSender
	analytics AnalyticsTracker
	logger    *slog.Logger
}

// NewCommentNotificationHandler creates a new CommentNotificationHandler.
// Logger is optional.
func NewCommentNotificationHandler(
	notifier NotificationSender,
	analytics AnalyticsTracker,
	logger *slog.Logger,
) *CommentNotificationHandler {
	return &CommentNotificationHandler{
		notifier:  notifier,
		analytics: analytics,
		logger:    logger,
	}
}

// Handle runs both sub-actions and joins their failures. The bus swallows the
// returned error; it only feeds diagnostics.
func (h *CommentNotificationHandler) Handle(ctx context.Context, envelope *eventDomain.Envelope) error {
	var payload socialDomain.CommentCreatedPayload
	if err := envelope.DecodePayload(&payload); err != nil {
		return err
	}

	var errs []error

	if payload.LyricsOwnerID != nil {
		message := fmt.Sprintf("new comment on your lyrics from player %s", payload.AuthorID)
		if err := h.notifier.Send(ctx, payload.LyricsOwnerID.String(), message); err != nil {
			errs = append(errs, err)
			if h.logger != nil {
				h.logger.ErrorContext(ctx, "comment notification failed",
					slog.String("comment_id", payload.CommentID.String()),
					slog.Any("error", err),
				)
			}
		}
	}

	if err := h.analytics.Track(ctx, "comment_created", map[string]any{
		"comment_id": payload.CommentID.String(),
		"lyrics_id":  payload.LyricsID.String(),
		"author_id":  payload.AuthorID.String(),
	}); err != nil {
		errs = append(errs, err)
		if h.logger != nil {
			h.logger.ErrorContext(ctx, "comment analytics tracking failed",
				slog.String("comment_id", payload.CommentID.String()),
				slog.Any("error", err),
			)
		}
	}

	return errors.Join(errs...)
}
