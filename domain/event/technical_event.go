package event

import "time"

type Type string

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	ProcessHealthType       Type = "PROCESS_HEALTH"
	DeliveryOutcomeType     Type = "DELIVERY_OUTCOME"
	PeerUnreachableType     Type = "PEER_UNREACHABLE"
)

// Event is a technical event, never shown to the user.
type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

type ProcessHealth struct {
	PID int32
	// Status is the one letter OS process state (R, S, T, Z...).
	Status string
	Cpu    float64
	Ram    float32
	RSS    uint64
}

type DeliveryOutcome struct {
	ChatID    string
	Delivered int
	Failed    int
	Scope     string
}

type PeerUnreachable struct {
	PeerID string
	Reason string
}
