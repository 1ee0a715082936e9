// Package handlers contains the event handlers subscribed to the bus. Each
// handler reacts to one event type with one externally visible side effect.
// Handlers are written for at-least-once delivery: re-handling a published
// event must be safe.
//
// The collaborator interfaces are declared here, on the consumer side; the
// implementations live in internal/integrations.
package handlers

import "context"

// SearchIndexer registers or refreshes documents in the search index.
type SearchIndexer interface {
	Index(ctx context.Context, docID string, doc map[string]any) error
}

// NotificationSender delivers a notification message to a user.
type NotificationSender interface {
	Send(ctx context.Context, userID, message string) error
}

// AnalyticsTracker records a named analytics event with its properties.
type AnalyticsTracker interface {
	Track(ctx context.Context, event string, properties map[string]any) error
}
