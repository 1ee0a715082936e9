package handlers

import (
	"context"
	"fmt"

	eventDomain "github.com/songifi/lyricsflip-server-sub002/internal/event/domain"
	socialDomain "github.com/songifi/lyricsflip-server-sub002/internal/social/domain"
)

// FollowNotificationHandler reacts to follow.created by notifying the followed
// player.
type FollowNotificationHandler struct {
	notifier NotificationSender
}

// NewFollowNotificationHandler creates a new FollowNotificationHandler.
func NewFollowNotificationHandler(notifier NotificationSender) *FollowNotificationHandler {
	return &FollowNotificationHandler{notifier: notifier}
}

// Handle notifies the followee about the new follower.
func (h *FollowNotificationHandler) Handle(ctx context.Context, envelope *eventDomain.Envelope) error {
	var payload socialDomain.FollowCreatedPayload
	if err := envelope.DecodePayload(&payload); err != nil {
		return err
	}

	message := fmt.Sprintf("player %s started following you", payload.FollowerID)
	return h.notifier.Send(ctx, payload.FolloweeID.String(), message)
}
