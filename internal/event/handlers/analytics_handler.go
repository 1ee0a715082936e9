package handlers

import (
	"context"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	lyricsDomain "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// AnalyticsHandler records an analytics event for every submitted lyrics
// document.
type AnalyticsHandler struct {
	tracker AnalyticsTracker
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(tracker AnalyticsTracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker}
}

// Handle tracks the lyrics.created event.
func (h *AnalyticsHandler) Handle(ctx context.Context, envelope *eventDomain.Envelope) error {
	var payload lyricsDomain.LyricsCreatedPayload
	if err := envelope.DecodePayload(&payload); err != nil {
		return err
	}

	return h.tracker.Track(ctx, "lyrics_created", map[string]any{
		"lyrics_id": payload.LyricsID.String(),
		"language":  payload.Language,
	})
}
