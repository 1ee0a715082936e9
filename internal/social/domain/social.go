// Package domain defines the social interaction models: comments on lyrics and
// follow relationships between players. Both write paths emit events through
// the transactional outbox.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event names emitted by the social module.
const (
	// EventCommentCreated is emitted when a comment is posted on lyrics.
	EventCommentCreated = "comment.created"
	// EventFollowCreated is emitted when a player follows another player.
	EventFollowCreated = "follow.created"
)

// Aggregate types used in outbox entries.
const (
	CommentAggregateType = "comment"
	FollowAggregateType  = "follow"
)

// Comment represents a comment posted on a lyrics document.
type Comment struct {
	ID        uuid.UUID
	LyricsID  uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
}

// NewComment creates a comment with a time-ordered id.
func NewComment(lyricsID, authorID uuid.UUID, content string) *Comment {
	return &Comment{
		ID:        uuid.Must(uuid.NewV7()),
		LyricsID:  lyricsID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Follow represents a follower/followee relationship between two players.
// At most one row exists per (follower, followee) pair.
type Follow struct {
	ID         uuid.UUID
	FollowerID uuid.UUID
	FolloweeID uuid.UUID
	CreatedAt  time.Time
}

// NewFollow creates a follow relationship with a time-ordered id.
func NewFollow(followerID, followeeID uuid.UUID) *Follow {
	return &Follow{
		ID:         uuid.Must(uuid.NewV7()),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	}
}

// CommentCreatedPayload is the payload of EventCommentCreated. LyricsOwnerID
// is the notification recipient; nil when the lyrics have no known submitter.
type CommentCreatedPayload struct {
	CommentID     uuid.UUID  `json:"comment_id"`
	LyricsID      uuid.UUID  `json:"lyrics_id"`
	AuthorID      uuid.UUID  `json:"author_id"`
	LyricsOwnerID *uuid.UUID `json:"lyrics_owner_id,omitempty"`
	Excerpt       string     `json:"excerpt"`
}

// FollowCreatedPayload is the payload of EventFollowCreated.
type FollowCreatedPayload struct {
	FollowID   uuid.UUID `json:"follow_id"`
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
}
