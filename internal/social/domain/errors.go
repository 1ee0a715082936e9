package domain

import (
	"github.com/songifi/lyricsflip-server-sub002/internal/errors"
)

// Social-specific error definitions.
var (
	// ErrAlreadyFollowing indicates the follower/followee pair already exists.
	ErrAlreadyFollowing = errors.Wrap(errors.ErrConflict, "already following player")
	// ErrSelfFollow indicates a player attempted to follow themselves.
	ErrSelfFollow = errors.Wrap(errors.ErrInvalidInput, "cannot follow yourself")
)
