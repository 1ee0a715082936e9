package usecase

import (
	"context"
	"log/slog"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// Translator translates text between languages. Satisfied by the
// integrations implementations.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// TranslateUseCase executes the lyrics.translate_additional_languages command
// produced by the translation saga. It is idempotent under redelivery: a
// target language that already has a stored translation is skipped, and each
// target is processed independently so one provider failure never blocks the
// remaining languages.
type TranslateUseCase struct {
	txManager  database.TxManager
	lyricsRepo LyricsRepository
	translator Translator
	logger     *slog.Logger
}

// NewTranslateUseCase creates a new TranslateUseCase. Logger is optional.
func NewTranslateUseCase(
	txManager database.TxManager,
	lyricsRepo LyricsRepository,
	translator Translator,
	logger *slog.Logger,
) *TranslateUseCase {
	return &TranslateUseCase{
		txManager:  txManager,
		lyricsRepo: lyricsRepo,
		translator: translator,
		logger:     logger,
	}
}

// Execute translates the lyrics into every target language that does not have
// a stored translation yet. Best-effort fan-out: per-language failures are
// logged and skipped, never rolled up into an all-or-nothing transaction.
func (uc *TranslateUseCase) Execute(ctx context.Context, command *eventDomain.Command) error {
	var payload domain.TranslateCommandPayload
	if err := command.DecodePayload(&payload); err != nil {
		return err
	}

	lyrics, err := uc.lyricsRepo.GetByID(ctx, payload.LyricsID)
	if err != nil {
		return err
	}

	for _, target := range payload.TargetLanguages {
		if target == payload.SourceLanguage {
			continue
		}
		if err := uc.translateOne(ctx, lyrics, target); err != nil {
			if uc.logger != nil {
				uc.logger.Error("translation target failed",
					slog.String("lyrics_id", lyrics.ID.String()),
					slog.String("target_language", target),
					slog.String("correlation_id", command.Metadata.CorrelationID),
					slog.Any("error", err),
				)
			}
		}
	}

	return nil
}

// translateOne translates and stores a single target language. The existence
// check makes redelivered commands a no-op per already-translated language.
func (uc *TranslateUseCase) translateOne(
	ctx context.Context,
	lyrics *domain.Lyrics,
	target string,
) error {
	exists, err := uc.lyricsRepo.TranslationExists(ctx, lyrics.ID, target)
	if err != nil {
		return err
	}
	if exists {
		if uc.logger != nil {
			uc.logger.Debug("translation already exists, skipping",
				slog.String("lyrics_id", lyrics.ID.String()),
				slog.String("target_language", target),
			)
		}
		return nil
	}

	translated, err := uc.translator.Translate(ctx, lyrics.Content, lyrics.Language, target)
	if err != nil {
		return err
	}

	translation := domain.NewTranslation(lyrics.ID, target, translated)

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		return uc.lyricsRepo.CreateTranslation(ctx, translation)
	})
}
