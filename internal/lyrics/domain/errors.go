package domain

import (
	"github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

// Lyrics-specific error definitions.
var (
	// ErrLyricsNotFound indicates no lyrics exist with the given id.
	ErrLyricsNotFound = errors.Wrap(errors.ErrNotFound, "lyrics not found")
	// ErrTranslationExists indicates a translation already exists for the
	// (lyrics, language) pair.
	ErrTranslationExists = errors.Wrap(errors.ErrConflict, "translation already exists")
)
