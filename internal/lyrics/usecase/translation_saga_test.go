package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

func newVerifiedEnvelope(t *testing.T, payload domain.LyricsVerifiedPayload) *eventDomain.Envelope {
	t.Helper()
	envelope, err := eventDomain.NewEnvelope(domain.EventLyricsVerified, payload)
	require.NoError(t, err)
	envelope.Enrich()
	return envelope
}

func TestNewTranslationSaga_ProducesCommand(t *testing.T) {
	saga := NewTranslationSaga([]string{"es", "fr", "pt"})
	assert.Equal(t, domain.EventLyricsVerified, saga.EventType)

	lyricsID := uuid.Must(uuid.NewV7())
	envelope := newVerifiedEnvelope(t, domain.LyricsVerifiedPayload{
		LyricsID: lyricsID,
		Language: "en",
	})

	command, err := saga.Transform(envelope)

	require.NoError(t, err)
	require.NotNil(t, command)
	assert.Equal(t, domain.CommandTranslateAdditionalLanguages, command.Name)
	assert.Equal(t, envelope.Metadata.CorrelationID, command.Metadata.CorrelationID)
	assert.Equal(t, domain.EventLyricsVerified, command.Metadata.CausationID)

	var payload domain.TranslateCommandPayload
	require.NoError(t, command.DecodePayload(&payload))
	assert.Equal(t, lyricsID, payload.LyricsID)
	assert.Equal(t, "en", payload.SourceLanguage)
	assert.Equal(t, []string{"es", "fr", "pt"}, payload.TargetLanguages)
}

func TestNewTranslationSaga_ExcludesSourceLanguage(t *testing.T) {
	saga := NewTranslationSaga([]string{"es", "fr"})

	envelope := newVerifiedEnvelope(t, domain.LyricsVerifiedPayload{
		LyricsID: uuid.Must(uuid.NewV7()),
		Language: "es",
	})

	command, err := saga.Transform(envelope)

	require.NoError(t, err)
	require.NotNil(t, command)

	var payload domain.TranslateCommandPayload
	require.NoError(t, command.DecodePayload(&payload))
	assert.Equal(t, []string{"fr"}, payload.TargetLanguages)
}

func TestNewTranslationSaga_SkipsHumanTranslation(t *testing.T) {
	saga := NewTranslationSaga([]string{"es", "fr"})

	translatorID := uuid.Must(uuid.NewV7())
	envelope := newVerifiedEnvelope(t, domain.LyricsVerifiedPayload{
		LyricsID:     uuid.Must(uuid.NewV7()),
		Language:     "en",
		TranslatorID: &translatorID,
	})

	command, err := saga.Transform(envelope)

	require.NoError(t, err)
	assert.Nil(t, command)
}

func TestNewTranslationSaga_NoRemainingTargets(t *testing.T) {
	saga := NewTranslationSaga([]string{"en"})

	envelope := newVerifiedEnvelope(t, domain.LyricsVerifiedPayload{
		LyricsID: uuid.Must(uuid.NewV7()),
		Language: "en",
	})

	command, err := saga.Transform(envelope)

	require.NoError(t, err)
	assert.Nil(t, command)
}

func TestNewTranslationSaga_BadPayload(t *testing.T) {
	saga := NewTranslationSaga([]string{"es"})

	envelope := &eventDomain.Envelope{
		Name:    domain.EventLyricsVerified,
		Payload: []byte(`{`),
	}

	_, err := saga.Transform(envelope)

	assert.Error(t, err)
}
