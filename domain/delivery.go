package domain

import (
	"fmt"

	"github.com/samber/lo"
)

// RelayScope tells how far a send outcome reaches.
type RelayScope string

const (
	// ScopeDirect is a one-to-one peer message.
	ScopeDirect RelayScope = "direct"
	// ScopeLeader means the message reached the elected leader only; relaying
	// to the other members is the leader's job and is not reflected here.
	ScopeLeader RelayScope = "leader"
	// ScopeAll means this device fanned out to every joined member itself.
	ScopeAll RelayScope = "all"
)

// DeliveryResult is the outcome of one send. Error is nil on success.
type DeliveryResult struct {
	PeerID   string  `json:"peer_id"`
	PeerName string  `json:"peer_name"`
	Error    *string `json:"error,omitempty"`
}

func Delivered(peerID, peerName string) DeliveryResult {
	return DeliveryResult{PeerID: peerID, PeerName: peerName}
}

func Undelivered(peerID, peerName, reason string) DeliveryResult {
	return DeliveryResult{PeerID: peerID, PeerName: peerName, Error: &reason}
}

func (r DeliveryResult) OK() bool { return r.Error == nil }

// StatusData is the ordered set of per-recipient results of one message.
type StatusData struct {
	Results []DeliveryResult `json:"results"`
	Scope   RelayScope       `json:"scope,omitempty"`
}

func NewStatusData(scope RelayScope, results ...DeliveryResult) *StatusData {
	return &StatusData{Results: results, Scope: scope}
}

func (s StatusData) Total() int { return len(s.Results) }

func (s StatusData) DeliveredCount() int { return lo.CountBy(s.Results, DeliveryResult.OK) }

func (s StatusData) FailedCount() int { return s.Total() - s.DeliveredCount() }

func (s StatusData) AllDelivered() bool { return s.Total() > 0 && s.FailedCount() == 0 }

func (s StatusData) AllFailed() bool { return s.Total() > 0 && s.DeliveredCount() == 0 }

func (s StatusData) HasPartialFailure() bool { return s.DeliveredCount() > 0 && s.FailedCount() > 0 }

func (s StatusData) FailedResults() []DeliveryResult {
	return lo.Reject(s.Results, func(r DeliveryResult, _ int) bool { return r.OK() })
}

func (s StatusData) FailedPeerIDs() []string {
	return lo.Map(s.FailedResults(), func(r DeliveryResult, _ int) string { return r.PeerID })
}

// DeliveredToAll is only true when this device itself reached every recipient.
func (s StatusData) DeliveredToAll() bool {
	return s.Scope != ScopeLeader && s.FailedCount() == 0
}

func (s StatusData) DeliveryLabel() string {
	return fmt.Sprintf("%d/%d", s.DeliveredCount(), s.Total())
}
