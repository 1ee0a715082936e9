package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

func newTestEnvelope(t *testing.T) *eventDomain.Envelope {
	t.Helper()
	envelope, err := eventDomain.NewEnvelope("lyrics.created", map[string]string{"id": "L1"})
	require.NoError(t, err)
	envelope.Enrich()
	return envelope
}

func TestNewEntry(t *testing.T) {
	envelope := newTestEnvelope(t)

	entry, err := NewEntry("lyrics", "song:42", envelope)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, "lyrics", entry.AggregateType)
	assert.Equal(t, "song:42", entry.AggregateID)
	assert.Equal(t, "lyrics.created", entry.EventType)
	assert.Equal(t, OutboxEntryStatusPending, entry.Status)
	assert.Equal(t, 0, entry.Retries)
}

func TestNewEntry_Invalid(t *testing.T) {
	envelope := newTestEnvelope(t)

	_, err := NewEntry("", "song:42", envelope)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = NewEntry("lyrics", "", envelope)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = NewEntry("lyrics", "song:42", nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestOutboxEntry_EnvelopeRoundTrip(t *testing.T) {
	envelope := newTestEnvelope(t)

	entry, err := NewEntry("lyrics", "song:42", envelope)
	require.NoError(t, err)

	restored, err := entry.Envelope()
	require.NoError(t, err)
	assert.Equal(t, envelope.Name, restored.Name)
	assert.Equal(t, envelope.Metadata.CorrelationID, restored.Metadata.CorrelationID)
	assert.JSONEq(t, string(envelope.Payload), string(restored.Payload))
}

func TestOutboxEntry_MarkPublished(t *testing.T) {
	entry, err := NewEntry("lyrics", "song:42", newTestEnvelope(t))
	require.NoError(t, err)
	failure := "transient"
	entry.LastError = &failure

	now := time.Now()
	entry.MarkPublished(now)

	assert.Equal(t, OutboxEntryStatusPublished, entry.Status)
	require.NotNil(t, entry.PublishedAt)
	assert.Equal(t, now, *entry.PublishedAt)
	assert.Nil(t, entry.LastError)
}

func TestOutboxEntry_RecordFailure(t *testing.T) {
	entry, err := NewEntry("lyrics", "song:42", newTestEnvelope(t))
	require.NoError(t, err)

	entry.RecordFailure(apperrors.New("dispatch failed"), 3)
	assert.Equal(t, 1, entry.Retries)
	assert.Equal(t, OutboxEntryStatusPending, entry.Status)
	require.NotNil(t, entry.LastError)
	assert.Equal(t, "dispatch failed", *entry.LastError)

	entry.RecordFailure(apperrors.New("dispatch failed again"), 3)
	assert.Equal(t, 2, entry.Retries)
	assert.Equal(t, OutboxEntryStatusPending, entry.Status)

	// Third failure reaches the bound: dead-letter state.
	entry.RecordFailure(apperrors.New("dispatch failed once more"), 3)
	assert.Equal(t, 3, entry.Retries)
	assert.Equal(t, OutboxEntryStatusFailed, entry.Status)
}

func TestOutboxEntry_Requeue(t *testing.T) {
	entry, err := NewEntry("lyrics", "song:42", newTestEnvelope(t))
	require.NoError(t, err)
	entry.RecordFailure(apperrors.New("broken"), 1)
	require.Equal(t, OutboxEntryStatusFailed, entry.Status)

	entry.Requeue()

	assert.Equal(t, OutboxEntryStatusPending, entry.Status)
	assert.Equal(t, 0, entry.Retries)
	assert.Nil(t, entry.LastError)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, OutboxEntryStatusPending, status)

	status, err = ParseStatus("failed")
	require.NoError(t, err)
	assert.Equal(t, OutboxEntryStatusFailed, status)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
