package event

import (
	"log/slog"

	"plainchat/errors"
)

// ChannelCapacityHandler warns when an internal queue is close to full.
type ChannelCapacityHandler struct {
	log                  *slog.Logger
	lowCapacityThreshold int
}

func NewChannelCapacityHandler(log *slog.Logger, lowCapacityThreshold int) *ChannelCapacityHandler {
	return &ChannelCapacityHandler{log: log, lowCapacityThreshold: lowCapacityThreshold}
}

func (h ChannelCapacityHandler) Handle(event Event) {
	if event.Type != ChannelCapacityType {
		return
	}
	payload, ok := event.Payload.(ChannelCapacity)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
		return
	}
	h.log.Debug("queue usage", "name", payload.ChannelName, "length", payload.Length, "capacity", payload.Capacity)
	if payload.Capacity <= 0 {
		// unbuffered
		return
	}
	left := payload.Capacity - payload.Length
	if left <= h.lowCapacityThreshold {
		h.log.Warn("queue almost full", "name", payload.ChannelName, "left", left)
	}
}
