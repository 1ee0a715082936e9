// Package domain defines the core outbox domain entities and types.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

// OutboxEntryStatus represents the lifecycle state of an outbox entry
type OutboxEntryStatus string

const (
	OutboxEntryStatusPending   OutboxEntryStatus = "pending"
	OutboxEntryStatusPublished OutboxEntryStatus = "published"
	OutboxEntryStatusFailed    OutboxEntryStatus = "failed"
)

// ParseStatus converts a status string to an OutboxEntryStatus.
func ParseStatus(s string) (OutboxEntryStatus, error) {
	switch OutboxEntryStatus(s) {
	case OutboxEntryStatusPending, OutboxEntryStatusPublished, OutboxEntryStatusFailed:
		return OutboxEntryStatus(s), nil
	default:
		return "", apperrors.Wrapf(apperrors.ErrInvalidInput, "unknown outbox status %q", s)
	}
}

// OutboxEntry is the durable record of a not-yet-published domain event. It is
// created in the same transaction as the domain write that produced the event,
// and its status is mutated only by the publisher. Entries are never deleted
// by the publishing path.
type OutboxEntry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       string
	Status        OutboxEntryStatus
	Retries       int
	LastError     *string
	PublishedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEntry builds a pending outbox entry holding the serialized envelope.
// Exactly one entry exists per domain event instance.
func NewEntry(aggregateType, aggregateID string, envelope *eventDomain.Envelope) (*OutboxEntry, error) {
	if envelope == nil {
		return nil, eventDomain.ErrNilEnvelope
	}
	if aggregateType == "" || aggregateID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "aggregate type and id are required")
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to serialize envelope")
	}

	return &OutboxEntry{
		ID:            uuid.Must(uuid.NewV7()),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     envelope.Name,
		Payload:       string(payload),
		Status:        OutboxEntryStatusPending,
		Retries:       0,
	}, nil
}

// Envelope deserializes the stored envelope.
func (e *OutboxEntry) Envelope() (*eventDomain.Envelope, error) {
	var envelope eventDomain.Envelope
	if err := json.Unmarshal([]byte(e.Payload), &envelope); err != nil {
		return nil, apperrors.Wrap(err, "failed to deserialize envelope")
	}
	return &envelope, nil
}

// MarkPublished transitions the entry after a successful bus dispatch.
func (e *OutboxEntry) MarkPublished(now time.Time) {
	e.Status = OutboxEntryStatusPublished
	e.PublishedAt = &now
	e.LastError = nil
}

// RecordFailure increments the retry counter and stores the error. Once the
// retry bound is reached the entry becomes failed: the dead-letter boundary,
// held for out-of-band remediation.
func (e *OutboxEntry) RecordFailure(err error, maxRetries int) {
	e.Retries++
	message := err.Error()
	e.LastError = &message

	if e.Retries >= maxRetries {
		e.Status = OutboxEntryStatusFailed
	}
}

// Requeue moves a dead-letter entry back to pending for another round of
// publish attempts.
func (e *OutboxEntry) Requeue() {
	e.Status = OutboxEntryStatusPending
	e.Retries = 0
	e.LastError = nil
}
