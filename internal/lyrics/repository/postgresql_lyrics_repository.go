// Package repository implements data persistence for lyrics and their
// translations. Repositories support both PostgreSQL and MySQL and honor a
// transaction carried in the context, so domain writes and their outbox
// entries commit atomically.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	lyricsDomain "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// PostgreSQLLyricsRepository implements lyrics persistence for PostgreSQL databases.
type PostgreSQLLyricsRepository struct {
	db *sql.DB
}

// NewPostgreSQLLyricsRepository creates a new PostgreSQLLyricsRepository.
func NewPostgreSQLLyricsRepository(db *sql.DB) *PostgreSQLLyricsRepository {
	return &PostgreSQLLyricsRepository{db: db}
}

// Create inserts a new lyrics document.
func (p *PostgreSQLLyricsRepository) Create(ctx context.Context, lyrics *lyricsDomain.Lyrics) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO lyrics (id, title, content, language, verified, submitted_by, translator_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		lyrics.ID,
		lyrics.Title,
		lyrics.Content,
		lyrics.Language,
		lyrics.Verified,
		lyrics.SubmittedBy,
		lyrics.TranslatorID,
		lyrics.CreatedAt,
		lyrics.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create lyrics")
	}
	return nil
}

// GetByID retrieves a lyrics document by its id.
func (p *PostgreSQLLyricsRepository) GetByID(ctx context.Context, id uuid.UUID) (*lyricsDomain.Lyrics, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, title, content, language, verified, submitted_by, translator_id, created_at, updated_at
			  FROM lyrics
			  WHERE id = $1`

	var (
		lyrics       lyricsDomain.Lyrics
		submittedBy  uuid.NullUUID
		translatorID uuid.NullUUID
	)
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&lyrics.ID,
		&lyrics.Title,
		&lyrics.Content,
		&lyrics.Language,
		&lyrics.Verified,
		&submittedBy,
		&translatorID,
		&lyrics.CreatedAt,
		&lyrics.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, lyricsDomain.ErrLyricsNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get lyrics by id")
	}

	if submittedBy.Valid {
		lyrics.SubmittedBy = &submittedBy.UUID
	}
	if translatorID.Valid {
		lyrics.TranslatorID = &translatorID.UUID
	}

	return &lyrics, nil
}

// MarkVerified persists the verified flag and updated_at of a lyrics document.
func (p *PostgreSQLLyricsRepository) MarkVerified(ctx context.Context, lyrics *lyricsDomain.Lyrics) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE lyrics SET verified = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, lyrics.Verified, lyrics.UpdatedAt, lyrics.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to mark lyrics verified")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return lyricsDomain.ErrLyricsNotFound
	}
	return nil
}

// CreateTranslation inserts a new translation for a lyrics document.
func (p *PostgreSQLLyricsRepository) CreateTranslation(
	ctx context.Context,
	translation *lyricsDomain.Translation,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO lyrics_translations (id, lyrics_id, language, content, translator_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		translation.ID,
		translation.LyricsID,
		translation.Language,
		translation.Content,
		translation.TranslatorID,
		translation.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create translation")
	}
	return nil
}

// TranslationExists reports whether a translation already exists for the
// (lyrics, language) pair. Command handlers use it for their idempotence check.
func (p *PostgreSQLLyricsRepository) TranslationExists(
	ctx context.Context,
	lyricsID uuid.UUID,
	language string,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM lyrics_translations WHERE lyrics_id = $1 AND language = $2)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, lyricsID, language).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check translation existence")
	}
	return exists, nil
}
