package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// MySQLSocialRepository implements social persistence for MySQL databases.
// UUIDs are stored as CHAR(36) strings.
type MySQLSocialRepository struct {
	db *sql.DB
}

// NewMySQLSocialRepository creates a new MySQLSocialRepository.
func NewMySQLSocialRepository(db *sql.DB) *MySQLSocialRepository {
	return &MySQLSocialRepository{db: db}
}

// CreateComment inserts a new comment.
func (m *MySQLSocialRepository) CreateComment(ctx context.Context, comment *socialDomain.Comment) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO comments (id, lyrics_id, author_id, content, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		comment.ID.String(),
		comment.LyricsID.String(),
		comment.AuthorID.String(),
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create comment")
	}
	return nil
}

// CreateFollow inserts a new follow relationship.
func (m *MySQLSocialRepository) CreateFollow(ctx context.Context, follow *socialDomain.Follow) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO follows (id, follower_id, followee_id, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		follow.ID.String(),
		follow.FollowerID.String(),
		follow.FolloweeID.String(),
		follow.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create follow")
	}
	return nil
}

// FollowExists reports whether a follow relationship already exists.
func (m *MySQLSocialRepository) FollowExists(
	ctx context.Context,
	followerID, followeeID uuid.UUID,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, followerID.String(), followeeID.String()).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check follow existence")
	}
	return exists, nil
}

// GetLyricsOwner returns the submitter of a lyrics document, nil when the
// document has no known submitter.
func (m *MySQLSocialRepository) GetLyricsOwner(
	ctx context.Context,
	lyricsID uuid.UUID,
) (*uuid.UUID, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT submitted_by FROM lyrics WHERE id = ?`

	var raw sql.NullString
	err := querier.QueryRowContext(ctx, query, lyricsID.String()).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "lyrics not found")
		}
		return nil, apperrors.Wrap(err, "failed to get lyrics owner")
	}
	if !raw.Valid {
		return nil, nil
	}

	owner, err := uuid.Parse(raw.String)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse lyrics owner")
	}
	return &owner, nil
}
