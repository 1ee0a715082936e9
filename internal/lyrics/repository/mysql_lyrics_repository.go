package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/songifi/lyricsflip-server-sub002/internal/database"
	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
	lyricsDomain "github.com/songifi/lyricsflip-server-sub002/internal/lyrics/domain"
)

// MySQLLyricsRepository implements lyrics persistence for MySQL databases.
// UUIDs are stored as CHAR(36) strings.
type MySQLLyricsRepository struct {
	db *sql.DB
}

// NewMySQLLyricsRepository creates a new MySQLLyricsRepository.
func NewMySQLLyricsRepository(db *sql.DB) *MySQLLyricsRepository {
	return &MySQLLyricsRepository{db: db}
}

// Create inserts a new lyrics document.
func (m *MySQLLyricsRepository) Create(ctx context.Context, lyrics *lyricsDomain.Lyrics) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO lyrics (id, title, content, language, verified, submitted_by, translator_id, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		lyrics.ID.String(),
		lyrics.Title,
		lyrics.Content,
		lyrics.Language,
		lyrics.Verified,
		uuidPtrToString(lyrics.SubmittedBy),
		uuidPtrToString(lyrics.TranslatorID),
		lyrics.CreatedAt,
		lyrics.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create lyrics")
	}
	return nil
}

// GetByID retrieves a lyrics document by its id.
func (m *MySQLLyricsRepository) GetByID(ctx context.Context, id uuid.UUID) (*lyricsDomain.Lyrics, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, title, content, language, verified, submitted_by, translator_id, created_at, updated_at
			  FROM lyrics
			  WHERE id = ?`

	var (
		lyrics       lyricsDomain.Lyrics
		rawID        string
		submittedBy  sql.NullString
		translatorID sql.NullString
	)
	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&rawID,
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

	lyrics.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse lyrics id")
	}
	lyrics.SubmittedBy, err = parseNullUUID(submittedBy)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse submitted_by")
	}
	lyrics.TranslatorID, err = parseNullUUID(translatorID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse translator_id")
	}

	return &lyrics, nil
}

// MarkVerified persists the verified flag and updated_at of a lyrics document.
func (m *MySQLLyricsRepository) MarkVerified(ctx context.Context, lyrics *lyricsDomain.Lyrics) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE lyrics SET verified = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, lyrics.Verified, lyrics.UpdatedAt, lyrics.ID.String())
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
func (m *MySQLLyricsRepository) CreateTranslation(
	ctx context.Context,
	translation *lyricsDomain.Translation,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO lyrics_translations (id, lyrics_id, language, content, translator_id, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		translation.ID.String(),
		translation.LyricsID.String(),
		translation.Language,
		translation.Content,
		uuidPtrToString(translation.TranslatorID),
		translation.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create translation")
	}
	return nil
}

// TranslationExists reports whether a translation already exists for the
// (lyrics, language) pair.
func (m *MySQLLyricsRepository) TranslationExists(
	ctx context.Context,
	lyricsID uuid.UUID,
	language string,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM lyrics_translations WHERE lyrics_id = ? AND language = ?)`

	var exists bool
	err := querier.QueryRowContext(ctx, query, lyricsID.String(), language).Scan(&exists)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check translation existence")
	}
	return exists, nil
}
