package event

import (
	"log/slog"
	"sync"

	"plainchat/errors"
)

// DeliveryHandler keeps totals of delivered and failed sends and of unreachable peers.
type DeliveryHandler struct {
	log     *slog.Logger
	mu      sync.Mutex
	counter *Counter
}

const (
	deliveredCount Type = "DELIVERED"
	failedCount    Type = "FAILED"
)

func NewDeliveryHandler(log *slog.Logger, counter *Counter) *DeliveryHandler {
	return &DeliveryHandler{log: log, counter: counter}
}

func (h *DeliveryHandler) Handle(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch event.Type {
	case DeliveryOutcomeType:
		payload, ok := event.Payload.(DeliveryOutcome)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Add(deliveredCount, payload.Delivered)
		h.counter.Add(failedCount, payload.Failed)
		if payload.Failed > 0 {
			h.log.Info("message not delivered to every recipient",
				"chat_id", payload.ChatID,
				"failed", payload.Failed,
				"scope", payload.Scope)
		}
	case PeerUnreachableType:
		payload, ok := event.Payload.(PeerUnreachable)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
			return
		}
		h.counter.Increment(PeerUnreachableType)
		h.log.Debug("peer unreachable", "peer_id", payload.PeerID, "reason", payload.Reason)
	}
}

func (h *DeliveryHandler) Totals() (delivered, failed int) {
	return h.counter.Get(deliveredCount), h.counter.Get(failedCount)
}
