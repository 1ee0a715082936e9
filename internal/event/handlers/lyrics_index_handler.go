package handlers

import (
	"context"

	"github.com/google/uuid"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	lyricsDomain "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// LyricsIndexHandler keeps the search index in sync with the lyrics catalog.
// It is subscribed to lyrics.created and lyrics.verified; indexing the same
// document twice overwrites it, so redelivery is harmless.
type LyricsIndexHandler struct {
	indexer SearchIndexer
}

// NewLyricsIndexHandler creates a new LyricsIndexHandler.
func NewLyricsIndexHandler(indexer SearchIndexer) *LyricsIndexHandler {
	return &LyricsIndexHandler{indexer: indexer}
}

// Handle indexes the lyrics document referenced by the envelope.
func (h *LyricsIndexHandler) Handle(ctx context.Context, envelope *eventDomain.Envelope) error {
	switch envelope.Name {
	case lyricsDomain.EventLyricsCreated:
		var payload lyricsDomain.LyricsCreatedPayload
		if err := envelope.DecodePayload(&payload); err != nil {
			return err
		}
		return h.indexer.Index(ctx, lyricsDocID(payload.LyricsID), map[string]any{
			"title":    payload.Title,
			"language": payload.Language,
			"verified": false,
		})
	case lyricsDomain.EventLyricsVerified:
		var payload lyricsDomain.LyricsVerifiedPayload
		if err := envelope.DecodePayload(&payload); err != nil {
			return err
		}
		return h.indexer.Index(ctx, lyricsDocID(payload.LyricsID), map[string]any{
			"title":    payload.Title,
			"language": payload.Language,
			"verified": true,
		})
	}
	return nil
}

// lyricsDocID builds the search index document id for a lyrics document.
func lyricsDocID(lyricsID uuid.UUID) string {
	return "lyrics:" + lyricsID.String()
}
