package notifier

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/awave-app/backend/internal/models"
	"github.com/awave-app/backend/internal/repositories"
)

// Broadcaster pushes a notification to every open realtime connection of a
// user. Satisfied by realtime.Registry.
type Broadcaster interface {
	Broadcast(userID uint, notification *models.Notification)
}

// Notifier derives notification records from state-changing writes and pushes
// them through the realtime channel. Everything here is best-effort: a failed
// notification must never fail the write that triggered it, so errors are
// logged and swallowed.
type Notifier struct {
	notifications repositories.NotificationRepository
	channel       Broadcaster
	log           zerolog.Logger
}

// New creates a Notifier
func New(notifications repositories.NotificationRepository, channel Broadcaster, log zerolog.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		channel:       channel,
		log:           log,
	}
}

// CommentCreated notifies the feed owner about a new comment.
func (n *Notifier) CommentCreated(actor *models.User, feed *models.Feed, comment *models.Comment) {
	message := fmt.Sprintf("%s commented on your post", actor.Name)
	n.deliver(feed.UserID, actor.ID, models.NotificationComment, feed.ID, message, map[string]interface{}{
		"comment_id": comment.ID,
	})
}

// ReactionUpserted notifies the feed owner about a new or changed reaction.
func (n *Notifier) ReactionUpserted(actor *models.User, feed *models.Feed, reaction *models.Reaction) {
	message := fmt.Sprintf("%s reacted %q to your post", actor.Name, reaction.Type)
	n.deliver(feed.UserID, actor.ID, models.NotificationReaction, feed.ID, message, map[string]interface{}{
		"reaction_type": reaction.Type,
	})
}

// ReactionRemoved retracts the notification for a withdrawn reaction, so a
// notification whose triggering reaction no longer exists does not linger.
func (n *Notifier) ReactionRemoved(actorID uint, feed *models.Feed) {
	if actorID == feed.UserID {
		return
	}
	if err := n.notifications.DeleteByTuple(feed.UserID, actorID, models.NotificationReaction, feed.ID); err != nil {
		n.log.Error().Err(err).
			Uint("user_id", feed.UserID).
			Uint("feed_id", feed.ID).
			Msg("retract reaction notification")
	}
}

// ReportStatusChanged notifies the original reporter about a moderation
// decision.
func (n *Notifier) ReportStatusChanged(moderator *models.User, report *models.Report) {
	message := fmt.Sprintf("Your report #%d was updated to %q", report.ID, report.Status)
	n.deliver(report.ReporterID, moderator.ID, models.NotificationReportUpdate, report.ID, message, map[string]interface{}{
		"status": report.Status,
	})
}

// deliver runs the unified dedup policy: self-notification is suppressed
// before any store call; the conditional insert is authoritative and only a
// genuine new row broadcasts; on conflict a recent duplicate is refreshed in
// place without a second push.
func (n *Notifier) deliver(userID, fromUserID uint, notifType string, referenceID uint, message string, payload map[string]interface{}) {
	if userID == fromUserID {
		return
	}

	notification := &models.Notification{
		UserID:      userID,
		FromUserID:  fromUserID,
		Type:        notifType,
		ReferenceID: referenceID,
		Message:     message,
	}
	if payload != nil {
		payload["from_user_id"] = fromUserID
		if raw, err := json.Marshal(payload); err == nil {
			notification.Payload = datatypes.JSON(raw)
		}
	}

	created, err := n.notifications.CreateIfAbsent(notification)
	if err != nil {
		n.log.Error().Err(err).
			Uint("user_id", userID).
			Str("type", notifType).
			Uint("reference_id", referenceID).
			Msg("create notification")
		return
	}

	if created {
		n.channel.Broadcast(userID, notification)
		return
	}

	dup, err := n.notifications.FindRecentDuplicate(userID, fromUserID, notifType, referenceID, repositories.RecentDuplicateWindow)
	if err != nil {
		n.log.Error().Err(err).Msg("look up duplicate notification")
		return
	}
	if dup != nil {
		if err := n.notifications.RefreshByTuple(userID, notifType, referenceID, message); err != nil {
			n.log.Error().Err(err).Msg("refresh duplicate notification")
		}
	}
}
