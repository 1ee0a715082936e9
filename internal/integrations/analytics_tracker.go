package integrations

import (
	"context"
	"log/slog"
)

// LogAnalyticsTracker records analytics events through the structured logger.
type LogAnalyticsTracker struct {
	logger *slog.Logger
}

// NewLogAnalyticsTracker creates a new LogAnalyticsTracker.
func NewLogAnalyticsTracker(logger *slog.Logger) *LogAnalyticsTracker {
	return &LogAnalyticsTracker{logger: logger}
}

// Track records a named analytics event with its properties.
func (a *LogAnalyticsTracker) Track(ctx context.Context, event string, properties map[string]any) error {
	if a.logger != nil {
		a.logger.InfoContext(ctx, "tracking analytics event",
			slog.String("event", event),
			slog.Any("properties", properties),
		)
	}
	return nil
}
