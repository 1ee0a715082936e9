// Package domain defines the core domain models for lyrics: submitted lyrics,
// their verification state, and machine or human translations. State changes
// emit events through the transactional outbox; the names are defined here so
// producers, handlers and sagas agree on them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event and command names emitted by the lyrics module.
const (
	// EventLyricsCreated is emitted when lyrics are submitted.
	EventLyricsCreated = "lyrics.created"
	// EventLyricsVerified is emitted when lyrics pass verification.
	EventLyricsVerified = "lyrics.verified"
	// CommandTranslateAdditionalLanguages requests machine translation of
	// verified lyrics into the configured target languages.
	CommandTranslateAdditionalLanguages = "lyrics.translate_additional_languages"
)

// AggregateType identifies lyrics rows in outbox entries.
const AggregateType = "lyrics"

// Lyrics represents a submitted song lyrics document.
type Lyrics struct {
	// ID is the unique identifier for this lyrics document.
	ID uuid.UUID
	// Title is the song title.
	Title string
	// Content is the full lyrics text.
	Content string
	// Language is the ISO 639-1 language code of the content.
	Language string
	// Verified indicates the lyrics passed moderation.
	Verified bool
	// SubmittedBy references the submitting user (nil for imports).
	SubmittedBy *uuid.UUID
	// TranslatorID is set when a human translator provided the lyrics.
	// Machine translation is skipped for those documents.
	TranslatorID *uuid.UUID
	// CreatedAt is the UTC timestamp when the lyrics were submitted.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last modification.
	UpdatedAt time.Time
}

// NewLyrics creates unverified lyrics with a time-ordered id.
func NewLyrics(title, content, language string, submittedBy, translatorID *uuid.UUID) *Lyrics {
	now := time.Now().UTC()
	return &Lyrics{
		ID:           uuid.Must(uuid.NewV7()),
		Title:        title,
		Content:      content,
		Language:     language,
		Verified:     false,
		SubmittedBy:  submittedBy,
		TranslatorID: translatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// MarkVerified flips the lyrics to verified.
func (l *Lyrics) MarkVerified() {
	l.Verified = true
	l.UpdatedAt = time.Now().UTC()
}

// Translation represents a stored translation of a lyrics document into one
// target language. At most one translation exists per (lyrics, language) pair.
type Translation struct {
	ID           uuid.UUID
	LyricsID     uuid.UUID
	Language     string
	Content      string
	TranslatorID *uuid.UUID
	CreatedAt    time.Time
}

// NewTranslation creates a machine translation record.
func NewTranslation(lyricsID uuid.UUID, language, content string) *Translation {
	return &Translation{
		ID:        uuid.Must(uuid.NewV7()),
		LyricsID:  lyricsID,
		Language:  language,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// LyricsCreatedPayload is the payload of EventLyricsCreated.
type LyricsCreatedPayload struct {
	LyricsID uuid.UUID `json:"lyrics_id"`
	Title    string    `json:"title"`
	Language string    `json:"language"`
}

// LyricsVerifiedPayload is the payload of EventLyricsVerified. TranslatorID is
// carried so downstream consumers can tell human translations apart.
type LyricsVerifiedPayload struct {
	LyricsID     uuid.UUID  `json:"lyrics_id"`
	Title        string     `json:"title"`
	Language     string     `json:"language"`
	TranslatorID *uuid.UUID `json:"translator_id,omitempty"`
}

// TranslateCommandPayload is the payload of CommandTranslateAdditionalLanguages.
type TranslateCommandPayload struct {
	LyricsID        uuid.UUID `json:"lyrics_id"`
	SourceLanguage  string    `json:"source_language"`
	TargetLanguages []string  `json:"target_languages"`
}
