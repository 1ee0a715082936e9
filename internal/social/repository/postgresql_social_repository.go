// Package repository implements data persistence for social interactions:
// comments and follows. Both dialects honor a transaction carried in the
// context so social writes and their outbox entries commit atomically.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// PostgreSQLSocialRepository implements social persistence for PostgreSQL databases.
type PostgreSQLSocialRepository struct {
	db *sql.DB
}

// NewPostgreSQLSocialRepository creates a new PostgreSQLSocialRepository.
func NewPostgreSQLSocialRepository(db *sql.DB) *PostgreSQLSocialRepository {
	return &PostgreSQLSocialRepository{db: db}
}

// CreateComment inserts a new comment.
func (p *PostgreSQLSocialRepository) CreateComment(ctx context.Context, comment *socialDomain.Comment) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO comments (id, lyrics_id, author_id, content, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.LyricsID,
		comment.AuthorID,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// CreateFollow inserts a new follow relationship.
func (p *PostgreSQLSocialRepository) CreateFollow(ctx context.Context, follow *socialDomain.Follow) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO follows (id, follower_id, followee_id, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		follow.ID,
		follow.FollowerID,
		follow.FolloweeID,
		follow.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create follow")
	}
	return nil
}

// FollowExists reports whether a follow relationship already exists.
func (p *PostgreSQLSocialRepository) FollowExists(
	ctx context.Context,
	followerID, followeeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check follow existence")
	}
	return exists, nil
}

// GetLyricsOwner returns the submitter of a lyrics document, nil when the
// document has no known submitter.
func (p *PostgreSQLSocialRepository) GetLyricsOwner(
	ctx context.Context,
	lyricsID uuid.UUID,
) (*uuid.UUID, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT submitted_by FROM lyrics WHERE id = $1`

	var owner uuid.NullUUID
	err := querier.QueryRowContext(ctx, query, lyricsID).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "lyrics not found")
		}
		return nil, apperrors.Wrap(err, "failed to get lyrics owner")
	}
	if !owner.Valid {
		return nil, nil
	}
	return &owner.UUID, nil
}
