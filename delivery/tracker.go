//go:generate go run go.uber.org/mock/mockgen -source=tracker.go -destination=../mocks/mock_tracker.go -package=mocks
package delivery

import (
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/repositories"
)

type ITracker interface {
	Record(chatID string, data *domain.StatusData) (domain.ChatItem, error)
	RecordRetry(chatID string, retried *domain.StatusData) (domain.ChatItem, error)
}

// Tracker persists the delivery status of chat items and reports the outcome as telemetry.
type Tracker struct {
	chats     repositories.IChatRepository
	telemetry chan event.Event
	log       *slog.Logger
}

func NewTracker(chats repositories.IChatRepository, telemetry chan event.Event, log *slog.Logger) *Tracker {
	return &Tracker{chats: chats, telemetry: telemetry, log: log}
}

func (t *Tracker) Record(chatID string, data *domain.StatusData) (domain.ChatItem, error) {
	item, err := t.chats.UpdateStatus(chatID, Aggregate(data), data)
	if err != nil {
		return domain.ChatItem{}, err
	}
	t.report(chatID, data)
	return item, nil
}

// RecordRetry merges the results of resending to some recipients into the stored ones.
func (t *Tracker) RecordRetry(chatID string, retried *domain.StatusData) (domain.ChatItem, error) {
	item, err := t.chats.Get(chatID)
	if err != nil {
		return domain.ChatItem{}, err
	}
	merged := Merge(item.StatusData, retried)
	item, err = t.chats.UpdateStatus(chatID, Aggregate(merged), merged)
	if err != nil {
		return domain.ChatItem{}, err
	}
	t.report(chatID, retried)
	return item, nil
}

func (t *Tracker) report(chatID string, data *domain.StatusData) {
	outcome := event.DeliveryOutcome{ChatID: chatID}
	if data != nil {
		outcome.Delivered = data.DeliveredCount()
		outcome.Failed = data.FailedCount()
		outcome.Scope = string(data.Scope)
	}
	t.log.Debug("delivery recorded", "chat_id", chatID, "delivered", outcome.Delivered, "failed", outcome.Failed)
	if t.telemetry == nil {
		return
	}
	select {
	case t.telemetry <- event.Event{Type: event.DeliveryOutcomeType, CreatedAt: time.Now().UTC(), Payload: outcome}:
	default:
		t.log.Debug("Observability telemetry event lost")
	}
}
