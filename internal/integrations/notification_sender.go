package integrations

import (
	"context"
	"log/slog"
)

// LogNotificationSender records notifications through the structured logger.
type LogNotificationSender struct {
	logger *slog.Logger
}

// NewLogNotificationSender creates a new LogNotificationSender.
func NewLogNotificationSender(logger *slog.Logger) *LogNotificationSender {
	return &LogNotificationSender{logger: logger}
}

// Send delivers a notification message to a user.
func (n *LogNotificationSender) Send(ctx context.Context, userID, message string) error {
	if n.logger != nil {
		n.logger.InfoContext(ctx, "sending notification",
			slog.String("user_id", userID),
			slog.String("message", message),
		)
	}
	return nil
}
