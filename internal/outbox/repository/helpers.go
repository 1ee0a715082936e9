package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

// parseEntryID converts a textual entry id from the database into a UUID.
func parseEntryID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Wrapf(err, "invalid outbox entry id %q", id)
	}
	return parsed, nil
}
