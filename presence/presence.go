//go:generate go run go.uber.org/mock/mockgen -source=presence.go -destination=../mocks/mock_presence.go -package=mocks

// Package presence tracks which peers are currently reachable.
// Leader election reads the online set from here.
package presence

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"plainchat/domain"
	"plainchat/domain/event"
)

const DefaultTTL = 2 * time.Minute

type IPresence interface {
	// MarkSeen reports whether peerID just came (back) online.
	MarkSeen(peerID string) bool
	MarkUnreachable(peerID, reason string)
	Online() []string
	Get(peerID string) (domain.PeerPresence, bool)
	List() []domain.PeerPresence
}

type Tracker struct {
	mu        sync.RWMutex
	log       *slog.Logger
	peers     map[string]domain.PeerPresence
	ttl       time.Duration
	telemetry chan event.Event
	now       func() time.Time
}

func NewTracker(log *slog.Logger, ttl time.Duration, telemetry chan event.Event) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tracker{
		log:       log,
		peers:     make(map[string]domain.PeerPresence),
		ttl:       ttl,
		telemetry: telemetry,
		now:       time.Now,
	}
}

// MarkSeen records an authenticated request or a successful answer from peerID.
func (t *Tracker) MarkSeen(peerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	prev, known := t.peers[peerID]
	t.peers[peerID] = domain.PeerPresence{PeerID: peerID, Status: domain.Online, LastSeen: now}
	cameOnline := !known || prev.Effective(now, t.ttl) != domain.Online
	if cameOnline {
		t.log.Debug("peer online", "peer_id", peerID)
	}
	return cameOnline
}

// MarkUnreachable takes peerID out of the online set until it shows up again.
func (t *Tracker) MarkUnreachable(peerID, reason string) {
	t.mu.Lock()
	prev := t.peers[peerID]
	t.peers[peerID] = domain.PeerPresence{
		PeerID:   peerID,
		Status:   domain.Offline,
		LastSeen: prev.LastSeen,
		Reason:   reason,
	}
	t.mu.Unlock()

	t.log.Debug("peer unreachable", "peer_id", peerID, "reason", reason)
	if t.telemetry == nil {
		return
	}
	select {
	case t.telemetry <- event.Event{
		Type:      event.PeerUnreachableType,
		CreatedAt: t.now().UTC(),
		Payload:   event.PeerUnreachable{PeerID: peerID, Reason: reason},
	}:
	default:
		t.log.Debug("Observability telemetry event lost")
	}
}

// Online returns the sorted ids of peers seen within the TTL.
func (t *Tracker) Online() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	now := t.now()
	ids := make([]string, 0, len(t.peers))
	for id, p := range t.peers {
		if p.Effective(now, t.ttl) == domain.Online {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func (t *Tracker) Get(peerID string) (domain.PeerPresence, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.peers[peerID]
	if !ok {
		return domain.PeerPresence{}, false
	}
	p.Status = p.Effective(t.now(), t.ttl)
	return p, true
}

func (t *Tracker) List() []domain.PeerPresence {
	t.mu.RLock()
	defer t.mu.RUnlock()
	now := t.now()
	out := make([]domain.PeerPresence, 0, len(t.peers))
	for _, p := range t.peers {
		p.Status = p.Effective(now, t.ttl)
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeerID < out[j].PeerID })
	return out
}
