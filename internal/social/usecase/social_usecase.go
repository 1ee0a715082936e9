// Package usecase implements the social business logic: commenting on lyrics
// and following players. Every write records its outbox entry in the same
// transaction as the domain row.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	outboxDomain "github.com/songifi/lyricsflip-server-sub002/internal/outbox/domain"
	"github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
	appValidation "github.com/songifi/lyricsflip-server-sub002/internal/validation"
)

// commentExcerptLength bounds the excerpt carried in comment.created payloads.
const commentExcerptLength = 120

// CreateCommentInput contains the input data for posting a comment.
type CreateCommentInput struct {
	LyricsID uuid.UUID `json:"lyrics_id"`
	AuthorID uuid.UUID `json:"author_id"`
	Content  string    `json:"content"`
}

// FollowPlayerInput contains the input data for following a player.
type FollowPlayerInput struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
}

// UseCase defines the interface for social business logic operations.
type UseCase interface {
	CreateComment(ctx context.Context, input CreateCommentInput) (*domain.Comment, error)
	FollowPlayer(ctx context.Context, input FollowPlayerInput) (*domain.Follow, error)
}

// SocialRepository defines social repository operations.
type SocialRepository interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	CreateFollow(ctx context.Context, follow *domain.Follow) error
	FollowExists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	GetLyricsOwner(ctx context.Context, lyricsID uuid.UUID) (*uuid.UUID, error)
}

// OutboxRepository defines the outbox surface the use case writes to.
type OutboxRepository interface {
	Create(ctx context.Context, entry *outboxDomain.OutboxEntry) error
}

// SocialUseCase handles social-related business logic.
type SocialUseCase struct {
	txManager  database.TxManager
	socialRepo SocialRepository
	outboxRepo OutboxRepository
}

// NewSocialUseCase creates a new SocialUseCase.
func NewSocialUseCase(
	txManager database.TxManager,
	socialRepo SocialRepository,
	outboxRepo OutboxRepository,
) *SocialUseCase {
	return &SocialUseCase{
		txManager:  txManager,
		socialRepo: socialRepo,
		outboxRepo: outboxRepo,
	}
}

// validateCreateCommentInput validates the comment input.
func (uc *SocialUseCase) validateCreateCommentInput(input CreateCommentInput) error {
	err := validation.Validate(input.Content,
		validation.Required.Error("content is required"),
		appValidation.NotBlank,
		validation.Length(1, 2000).Error("content must be between 1 and 2000 characters"),
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}
	if input.LyricsID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "lyrics_id is required")
	}
	if input.AuthorID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "author_id is required")
	}
	return nil
}

// CreateComment posts a comment and records a comment.created event in the
// same transaction. The event payload carries the lyrics owner so the
// notification handler needs no further lookups.
func (uc *SocialUseCase) CreateComment(
	ctx context.Context,
	input CreateCommentInput,
) (*domain.Comment, error) {
	if err := uc.validateCreateCommentInput(input); err != nil {
		return nil, err
	}

	owner, err := uc.socialRepo.GetLyricsOwner(ctx, input.LyricsID)
	if err != nil {
		return nil, err
	}

	comment := domain.NewComment(input.LyricsID, input.AuthorID, strings.TrimSpace(input.Content))

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.socialRepo.CreateComment(ctx, comment); err != nil {
			return err
		}

		envelope, err := eventDomain.NewEnvelope(domain.EventCommentCreated, domain.CommentCreatedPayload{
			CommentID:     comment.ID,
			LyricsID:      comment.LyricsID,
			AuthorID:      comment.AuthorID,
			LyricsOwnerID: owner,
			Excerpt:       excerpt(comment.Content),
		})
		if err != nil {
			return err
		}
		envelope = envelope.WithActor(comment.AuthorID.String())

		entry, err := outboxDomain.NewEntry(domain.CommentAggregateType, comment.ID.String(), envelope)
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

	return comment, nil
}

// FollowPlayer creates a follow relationship and records a follow.created
// event in the same transaction. Duplicate follows are a conflict.
func (uc *SocialUseCase) FollowPlayer(
	ctx context.Context,
	input FollowPlayerInput,
) (*domain.Follow, error) {
	if input.FollowerID == uuid.Nil || input.FolloweeID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "follower_id and followee_id are required")
	}
	if input.FollowerID == input.FolloweeID {
		return nil, domain.ErrSelfFollow
	}

	exists, err := uc.socialRepo.FollowExists(ctx, input.FollowerID, input.FolloweeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyFollowing
	}

	follow := domain.NewFollow(input.FollowerID, input.FolloweeID)

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.socialRepo.CreateFollow(ctx, follow); err != nil {
			return err
		}

		envelope, err := eventDomain.NewEnvelope(domain.EventFollowCreated, domain.FollowCreatedPayload{
			FollowID:   follow.ID,
			FollowerID: follow.FollowerID,
			FolloweeID: follow.FolloweeID,
		})
		if err != nil {
			return err
		}
		envelope = envelope.WithActor(follow.FollowerID.String())

		entry, err := outboxDomain.NewEntry(domain.FollowAggregateType, follow.ID.String(), envelope)
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

	return follow, nil
}

// excerpt truncates comment content for event payloads.
func excerpt(content string) string {
	if len(content) <= commentExcerptLength {
		return content
	}
	return content[:commentExcerptLength]
}
