package presence

import (
	"log/slog"
	"testing"
	"time"

	"plainchat/domain"
	"plainchat/domain/event"

	"github.com/stretchr/testify/require"
)

func TestTracker_OnlineSet(t *testing.T) {
	req := require.New(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(slog.Default(), time.Minute, nil)
	tracker.now = func() time.Time { return clock }

	req.True(tracker.MarkSeen("b"))
	req.True(tracker.MarkSeen("a"))
	req.False(tracker.MarkSeen("a"))
	req.Equal([]string{"a", "b"}, tracker.Online())

	tracker.MarkUnreachable("a", "connection refused")
	req.Equal([]string{"b"}, tracker.Online())

	p, ok := tracker.Get("a")
	req.True(ok)
	req.Equal(domain.Offline, p.Status)
	req.Equal("connection refused", p.Reason)

	// a new inbound request brings it back
	req.True(tracker.MarkSeen("a"))
	req.Equal([]string{"a", "b"}, tracker.Online())
}

func TestTracker_TTLExpiry(t *testing.T) {
	req := require.New(t)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(slog.Default(), time.Minute, nil)
	tracker.now = func() time.Time { return clock }

	tracker.MarkSeen("a")
	clock = clock.Add(30 * time.Second)
	tracker.MarkSeen("b")

	clock = clock.Add(45 * time.Second)
	req.Equal([]string{"b"}, tracker.Online())

	p, ok := tracker.Get("a")
	req.True(ok)
	req.Equal(domain.Ghost, p.Status)

	statuses := tracker.List()
	req.Len(statuses, 2)
	req.Equal("a", statuses[0].PeerID)
	req.Equal(domain.Ghost, statuses[0].Status)
	req.Equal(domain.Online, statuses[1].Status)

	req.True(tracker.MarkSeen("a"), "a ghost coming back counts as online again")
}

func TestTracker_UnreachableTelemetry(t *testing.T) {
	req := require.New(t)
	telemetry := make(chan event.Event, 1)
	tracker := NewTracker(slog.Default(), 0, telemetry)

	tracker.MarkUnreachable("a", "timeout")
	// a full channel drops the event instead of blocking
	tracker.MarkUnreachable("b", "timeout")

	evt := <-telemetry
	req.Equal(event.PeerUnreachableType, evt.Type)
	req.Equal(event.PeerUnreachable{PeerID: "a", Reason: "timeout"}, evt.Payload)
	req.Empty(tracker.Online())

	_, ok := tracker.Get("unknown")
	req.False(ok)
}
