// Package integrations provides the external collaborators the event handlers
// and use cases depend on: search indexing, notifications, analytics and
// translation. The default implementations are log-backed so the event flow is
// fully exercisable without external services; swapping in real clients only
// requires satisfying the consumer-side interfaces.
package integrations

import (
	"context"
	"log/slog"
)

// LogSearchIndexer records index operations through the structured logger.
type LogSearchIndexer struct {
	logger *slog.Logger
}

// NewLogSearchIndexer creates a new LogSearchIndexer.
func NewLogSearchIndexer(logger *slog.Logger) *LogSearchIndexer {
	return &LogSearchIndexer{logger: logger}
}

// Index registers or refreshes a document in the search index.
func (s *LogSearchIndexer) Index(ctx context.Context, docID string, doc map[string]any) error {
	if s.logger != nil {
		s.logger.InfoContext(ctx, "indexing document",
			slog.String("doc_id", docID),
			slog.Any("doc", doc),
		)
	}
	return nil
}
