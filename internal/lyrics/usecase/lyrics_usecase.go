// Package usecase implements the lyrics business logic: submission,
// verification and machine translation. Every state change writes its domain
// row and the corresponding outbox entry inside one transaction, so an event
// is recorded if and only if the state change committed.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
	outboxDomain "github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
	appValidation "github.com/songifi/lyricsflip-server-sub002/internal/validation"
)

// SubmitLyricsInput contains the input data for lyrics submission.
type SubmitLyricsInput struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Language     string     `json:"language"`
	SubmittedBy  *uuid.UUID `json:"submitted_by"`
	TranslatorID *uuid.UUID `json:"translator_id"`
}

// UseCase defines the interface for lyrics business logic operations.
type UseCase interface {
	SubmitLyrics(ctx context.Context, input SubmitLyricsInput) (*domain.Lyrics, error)
	VerifyLyrics(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error)
	GetLyrics(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error)
}

// LyricsRepository defines lyrics repository operations.
type LyricsRepository interface {
	Create(ctx context.Context, lyrics *domain.Lyrics) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error)
	MarkVerified(ctx context.Context, lyrics *domain.Lyrics) error
	CreateTranslation(ctx context.Context, translation *domain.Translation) error
	TranslationExists(ctx context.Context, lyricsID uuid.UUID, language string) (bool, error)
}

// OutboxRepository defines the outbox surface the use case writes to.
type OutboxRepository interface {
	Create(ctx context.Context, entry *outboxDomain.OutboxEntry) error
}

// LyricsUseCase handles lyrics-related business logic.
type LyricsUseCase struct {
	txManager  database.TxManager
	lyricsRepo LyricsRepository
	outboxRepo OutboxRepository
}

// NewLyricsUseCase creates a new LyricsUseCase.
func NewLyricsUseCase(
	txManager database.TxManager,
	lyricsRepo LyricsRepository,
	outboxRepo OutboxRepository,
) *LyricsUseCase {
	return &LyricsUseCase{
		txManager:  txManager,
		lyricsRepo: lyricsRepo,
		outboxRepo: outboxRepo,
	}
}

// validateSubmitLyricsInput validates the submission input.
func (uc *LyricsUseCase) validateSubmitLyricsInput(input SubmitLyricsInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
		),
		validation.Field(&input.Language,
			validation.Required.Error("language is required"),
			appValidation.LanguageCode,
		),
	)
	return appValidation.WrapValidationError(err)
}

// SubmitLyrics creates a lyrics document and records a lyrics.created event in
// the same transaction.
func (uc *LyricsUseCase) SubmitLyrics(
	ctx context.Context,
	input SubmitLyricsInput,
) (*domain.Lyrics, error) {
	if err := uc.validateSubmitLyricsInput(input); err != nil {
		return nil, err
	}

	lyrics := domain.NewLyrics(
		strings.TrimSpace(input.Title),
		input.Content,
		input.Language,
		input.SubmittedBy,
		input.TranslatorID,
	)

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.lyricsRepo.Create(ctx, lyrics); err != nil {
			return err
		}

		envelope, err := eventDomain.NewEnvelope(domain.EventLyricsCreated, domain.LyricsCreatedPayload{
			LyricsID: lyrics.ID,
			Title:    lyrics.Title,
			Language: lyrics.Language,
		})
		if err != nil {
			return err
		}
		if lyrics.SubmittedBy != nil {
			envelope = envelope.WithActor(lyrics.SubmittedBy.String())
		}

		entry, err := outboxDomain.NewEntry(domain.AggregateType, lyrics.ID.String(), envelope)
		if err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(ctx, entry); err != nil {
			return apperrors.Wrap(err, "failed to create outbox entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lyrics, nil
}

// VerifyLyrics marks lyrics as verified and records a lyrics.verified event in
// the same transaction. Verifying already-verified lyrics is a no-op, so the
// event is recorded at most once per document.
func (uc *LyricsUseCase) VerifyLyrics(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error) {
	lyrics, err := uc.lyricsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lyrics.Verified {
		return lyrics, nil
	}

	lyrics.MarkVerified()

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.lyricsRepo.MarkVerified(ctx, lyrics); err != nil {
			return err
		}

		envelope, err := eventDomain.NewEnvelope(domain.EventLyricsVerified, domain.LyricsVerifiedPayload{
			LyricsID:     lyrics.ID,
			Title:        lyrics.Title,
			Language:     lyrics.Language,
			TranslatorID: lyrics.TranslatorID,
		})
		if err != nil {
			return err
		}

		entry, err := outboxDomain.NewEntry(domain.AggregateType, lyrics.ID.String(), envelope)
		if err != nil {
			return err
		}

		if err := uc.outboxRepo.Create(ctx, entry); err != nil {
			return apperrors.Wrap(err, "failed to create outbox entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return lyrics, nil
}

// GetLyrics retrieves a lyrics document by id.
func (uc *LyricsUseCase) GetLyrics(ctx context.Context, id uuid.UUID) (*domain.Lyrics, error) {
	return uc.lyricsRepo.GetByID(ctx, id)
}
