// Package domain defines the core event envelope and command types.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

// Domain-specific errors for event operations.
var (
	// ErrEmptyEventName indicates an envelope was built without a type identifier.
	ErrEmptyEventName = apperrors.Wrap(apperrors.ErrInvalidInput, "event name is required")

	// ErrNilEnvelope indicates a nil envelope was handed to the bus.
	ErrNilEnvelope = apperrors.Wrap(apperrors.ErrInvalidInput, "envelope is nil")
)

// Metadata carries the tracing fields attached to every event and command.
// CorrelationID identifies the causal chain started by one originating request;
// CausationID identifies the event or command that directly produced this one.
type Metadata struct {
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id"`
	CausationID   string    `json:"causation_id,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
}

// Envelope is an immutable record of a single domain event. The payload is
// opaque to the bus; only Name is used for routing.
type Envelope struct {
	Name     string          `json:"name"`
	Payload  json.RawMessage `json:"payload"`
	Metadata Metadata        `json:"metadata"`
}

// NewEnvelope builds an envelope for the given event name, marshaling the
// payload to JSON. The returned envelope is not yet enriched.
func NewEnvelope(name string, payload any) (*Envelope, error) {
	if name == "" {
		return nil, ErrEmptyEventName
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal event payload")
	}

	return &Envelope{
		Name:    name,
		Payload: raw,
	}, nil
}

// Enrich fills absent metadata fields: a creation timestamp and a fresh v4
// correlation id. Fields already present are never overwritten, so enrichment
// is idempotent and correlation ids propagate unchanged through a causal chain.
func (e *Envelope) Enrich() {
	if e.Metadata.Timestamp.IsZero() {
		e.Metadata.Timestamp = time.Now().UTC()
	}
	if e.Metadata.CorrelationID == "" {
		e.Metadata.CorrelationID = uuid.NewString()
	}
}

// WithActor returns a copy of the envelope with the acting user recorded.
func (e *Envelope) WithActor(userID string) *Envelope {
	clone := *e
	clone.Metadata.UserID = userID
	return &clone
}

// DecodePayload unmarshals the payload into the given value.
func (e *Envelope) DecodePayload(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return apperrors.Wrap(err, "failed to decode event payload")
	}
	return nil
}

// Command is a follow-up instruction derived from an event by a saga. Commands
// inherit the correlation id of the triggering event and record that event as
// their causation. Delivery is at-least-once, so command handlers must be
// idempotent.
type Command struct {
	Name     string          `json:"name"`
	Payload  json.RawMessage `json:"payload"`
	Metadata Metadata        `json:"metadata"`
}

// NewCommand builds a command caused by the given event envelope, inheriting
// its correlation metadata.
func NewCommand(name string, payload any, cause *Envelope) (*Command, error) {
	if name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "command name is required")
	}
	if cause == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "command cause is required")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal command payload")
	}

	return &Command{
		Name:    name,
		Payload: raw,
		Metadata: Metadata{
			Timestamp:     time.Now().UTC(),
			CorrelationID: cause.Metadata.CorrelationID,
			CausationID:   cause.Name,
			UserID:        cause.Metadata.UserID,
		},
	}, nil
}

// DecodePayload unmarshals the command payload into the given value.
func (c *Command) DecodePayload(v any) error {
	if err := json.Unmarshal(c.Payload, v); err != nil {
		return apperrors.Wrap(err, "failed to decode command payload")
	}
	return nil
}
