package usecase

import (
	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/event/saga"
	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// NewTranslationSaga builds the saga that reacts to lyrics.verified by
// requesting machine translation into the configured target languages.
// Secondary filter: events carrying a translator id came from a human
// translation and produce no command.
func NewTranslationSaga(targetLanguages []string) saga.Saga {
	return saga.Saga{
		Name:      "lyrics-translation",
		EventType: domain.EventLyricsVerified,
		Transform: func(envelope *eventDomain.Envelope) (*eventDomain.Command, error) {
			var payload domain.LyricsVerifiedPayload
			if err := envelope.DecodePayload(&payload); err != nil {
				return nil, err
			}

			if payload.TranslatorID != nil {
				return nil, nil
			}

			targets := make([]string, 0, len(targetLanguages))
			for _, target := range targetLanguages {
				if target != payload.Language {
					targets = append(targets, target)
				}
			}
			if len(targets) == 0 {
				return nil, nil
			}

			return eventDomain.NewCommand(
				domain.CommandTranslateAdditionalLanguages,
				domain.TranslateCommandPayload{
					LyricsID:        payload.LyricsID,
					SourceLanguage:  payload.Language,
					TargetLanguages: targets,
				},
				envelope,
			)
		},
	}
}
