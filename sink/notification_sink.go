// Package sink holds domain event consumers that hand data to external collaborators.
package sink

import (
	"context"
	"fmt"
	"log/slog"

	"plainchat/domain/event"
	"plainchat/keycache"
)

// Notification is what the notification collaborator presents for an incoming message.
type Notification struct {
	ConversationID string
	ChatID         string
	Title          string
	Body           string
}

type Notifier func(ctx context.Context, n Notification) error

// NotificationSink turns incoming messages into notifications. Our own
// messages and status updates never notify.
type NotificationSink struct {
	notify Notifier
	keys   keycache.IKeyCache
	log    *slog.Logger
}

func NewNotificationSink(notify Notifier, keys keycache.IKeyCache, log *slog.Logger) NotificationSink {
	return NotificationSink{notify: notify, keys: keys, log: log}
}

func (s NotificationSink) Consume(ctx context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.MessageCreated:
		if !evt.Incoming {
			return nil
		}
		return s.notify(ctx, s.toNotification(evt))
	case event.ChannelInviteReceived:
		return s.notify(ctx, Notification{
			ConversationID: evt.ConversationID(),
			Title:          s.name(evt.From),
			Body:           fmt.Sprintf("invited you to %s", evt.Channel.Name),
		})
	default:
		s.log.Debug(fmt.Sprintf("No notification for event : %T", evt))
		return nil
	}
}

func (s NotificationSink) toNotification(evt event.MessageCreated) Notification {
	title := s.name(evt.Item.FromID)
	if evt.Item.IsChannel() {
		title = fmt.Sprintf("%s in %s", title, evt.Item.ChannelID)
	}
	return Notification{
		ConversationID: evt.ConversationID(),
		ChatID:         evt.Item.ID,
		Title:          title,
		Body:           evt.Item.Content.Preview(),
	}
}

func (s NotificationSink) name(peerID string) string {
	if name, ok := s.keys.Lookup(keycache.PeerName, peerID); ok {
		return name
	}
	return peerID
}

// LogNotifier is the notifier used when no presentation layer is attached.
func LogNotifier(log *slog.Logger) Notifier {
	return func(_ context.Context, n Notification) error {
		log.Info("Notification", "conversation_id", n.ConversationID, "title", n.Title, "body", n.Body)
		return nil
	}
}
