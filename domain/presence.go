package domain

import "time"

type PresenceStatus string

const (
	// Online peers answered or talked to us within the TTL.
	Online PresenceStatus = "ONLINE"
	// Offline peers failed a request; they come back on the next inbound message.
	Offline PresenceStatus = "OFFLINE"
	// Ghost peers were online but went silent for longer than the TTL.
	Ghost PresenceStatus = "GHOST"
)

type PeerPresence struct {
	PeerID   string
	Status   PresenceStatus
	LastSeen time.Time
	Reason   string
}

// Effective downgrades an online entry whose last sighting is older than ttl.
func (p PeerPresence) Effective(now time.Time, ttl time.Duration) PresenceStatus {
	if p.Status == Online && ttl > 0 && now.Sub(p.LastSeen) > ttl {
		return Ghost
	}
	return p.Status
}
