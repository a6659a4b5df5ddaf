// Package runtime wires event propagation and the supervised workers together.
// It holds no chat rules of its own.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"plainchat/contract"
	"plainchat/domain/event"
	"plainchat/runtime/workers"
)

type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	supervisor      contract.ISupervisor
	registry        contract.IRegistry
	permanentSinks  []contract.EventSink
	workers         []contract.Worker
	domainEvents    chan event.DomainEvent
	telemetryEvents chan event.Event
	sinkTimeout     time.Duration
	started         bool
}

// NewOrchestrator shares telemetry with the supervisor so restarts are reported too.
func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor, registry contract.IRegistry,
	telemetry chan event.Event, bufferSize int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:             log,
		supervisor:      supervisor,
		registry:        registry,
		domainEvents:    make(chan event.DomainEvent, bufferSize),
		telemetryEvents: telemetry,
		sinkTimeout:     sinkTimeout,
	}
}

// Publish queues a domain event for the fanout. A full buffer drops the event.
func (o *Orchestrator) Publish(evt event.DomainEvent) {
	select {
	case o.domainEvents <- evt:
	default:
		o.log.Warn("Domain event channel full, dropping event", "conversation_id", evt.ConversationID())
	}
}

// Telemetry is the channel technical events are reported to.
func (o *Orchestrator) Telemetry() chan event.Event { return o.telemetryEvents }

// Channels lists the internal queues for capacity reporting.
func (o *Orchestrator) Channels() []workers.NamedChannel {
	return []workers.NamedChannel{
		workers.Watch("domain_events", o.domainEvents),
		workers.Watch("telemetry_events", o.telemetryEvents),
	}
}

// Add registers sinks receiving every domain event. Must be called before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// AddWorkers registers workers run under supervision. Must be called before Start.
func (o *Orchestrator) AddWorkers(w ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.workers = append(o.workers, w...)
}

// Subscribe attaches a viewer to the events of one conversation.
func (o *Orchestrator) Subscribe(viewerID, conversationID string, sink contract.EventSink) {
	o.registry.Subscribe(viewerID, conversationID, sink)
}

func (o *Orchestrator) Unsubscribe(viewerID, conversationID string) {
	o.registry.Unsubscribe(viewerID, conversationID)
}

// Start builds the fanout and runs every worker under the supervisor.
// It blocks until ctx is canceled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		o.log.Warn("Orchestrator already started")
		return
	}
	o.started = true
	fanout := workers.NewEventFanout(o.log, o.permanentSinks, o.registry, o.domainEvents, o.sinkTimeout)
	o.supervisor.Add(fanout)
	o.supervisor.Add(o.workers...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers", "workers", len(o.workers)+1)
	o.supervisor.Run(ctx)
}

// Stop cancels the supervised context; Start returns once every worker is done.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
