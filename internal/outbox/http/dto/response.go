// Package dto defines the request and response payloads for the outbox
// operational endpoints.
package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
)

// OutboxEntryResponse represents one outbox entry for operational inspection.
// The event payload is included so dead-letter triage does not require
// database access.
type OutboxEntryResponse struct {
	ID            uuid.UUID  `json:"id"`
	AggregateType string     `json:"aggregate_type"`
	AggregateID   string     `json:"aggregate_id"`
	EventType     string     `json:"event_type"`
	Payload       string     `json:"payload"`
	Status        string     `json:"status"`
	Retries       int        `json:"retries"`
	LastError     *string    `json:"last_error,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewOutboxEntryResponse converts a domain entry to its response representation.
func NewOutboxEntryResponse(entry *domain.OutboxEntry) OutboxEntryResponse {
	return OutboxEntryResponse{
		ID:            entry.ID,
		AggregateType: entry.AggregateType,
		AggregateID:   entry.AggregateID,
		EventType:     entry.EventType,
		Payload:       entry.Payload,
		Status:        string(entry.Status),
		Retries:       entry.Retries,
		LastError:     entry.LastError,
		PublishedAt:   entry.PublishedAt,
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

// ListOutboxEntriesResponse represents a page of outbox entries.
type ListOutboxEntriesResponse struct {
	Entries []OutboxEntryResponse `json:"entries"`
	Offset  int                   `json:"offset"`
	Limit   int                   `json:"limit"`
}

// NewListOutboxEntriesResponse converts domain entries to a list response.
func NewListOutboxEntriesResponse(entries []*domain.OutboxEntry, offset, limit int) ListOutboxEntriesResponse {
	responses := make([]OutboxEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewOutboxEntryResponse(entry))
	}
	return ListOutboxEntriesResponse{
		Entries: responses,
		Offset:  offset,
		Limit:   limit,
	}
}

// RequeueFailedResponse reports how many dead-letter entries were requeued.
type RequeueFailedResponse struct {
	Requeued int64 `json:"requeued"`
}
