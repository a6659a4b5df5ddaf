package workers

import (
	"context"
	"log/slog"
	"time"

	"plainchat/domain/event"
)

// NamedChannel samples the fill level of one buffered channel.
type NamedChannel struct {
	Name string
	Cap  int
	Len  func() int
}

func Watch[T any](name string, ch chan T) NamedChannel {
	return NamedChannel{Name: name, Cap: cap(ch), Len: func() int { return len(ch) }}
}

// ChannelCapacityWorker periodically reports the current channel capacity and length.
// Reading len and cap is non-blocking; a dropped sample is fine since metrics are periodic.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	telemetryChan  chan<- event.Event
	metricInterval time.Duration
}

func NewChannelCapacityWorker(log *slog.Logger,
	channels []NamedChannel, telemetryChan chan<- event.Event,
	metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:            log,
		channels:       channels,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping capacity sampling")
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *ChannelCapacityWorker) sample() {
	for _, nc := range w.channels {
		select {
		case w.telemetryChan <- toCapacityEvent(nc.Name, nc.Cap, nc.Len()):
		default:
			w.log.Debug("Observability telemetry event lost")
		}
	}
}

func toCapacityEvent(name string, capacity, length int) event.Event {
	return event.Event{
		Type:      event.ChannelCapacityType,
		CreatedAt: time.Now().UTC(),
		Payload: event.ChannelCapacity{
			ChannelName: name,
			Capacity:    capacity,
			Length:      length,
		},
	}
}
