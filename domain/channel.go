package domain

import (
	"time"

	"github.com/samber/lo"
)

type MemberStatus string

const (
	MemberJoined  MemberStatus = "joined"
	MemberPending MemberStatus = "pending"
)

// ChannelMember only carries the peer id and the membership status.
// Names, keys and addresses live in the peers table.
type ChannelMember struct {
	ID     string       `json:"id" validate:"required"`
	Status MemberStatus `json:"status" validate:"required,oneof=joined pending"`
}

func (m ChannelMember) IsJoined() bool { return m.Status == MemberJoined }

func (m ChannelMember) IsPending() bool { return m.Status == MemberPending }

// Channel is a named group owned by one device.
// Version grows on every owner-side mutation; receivers ignore updates
// whose version is not strictly greater than their own.
type Channel struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Key       string          `json:"key"`
	Owner     string          `json:"owner"`
	Members   []ChannelMember `json:"members"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (c Channel) IsOwnedBy(peerID string) bool { return c.Owner == peerID }

func (c Channel) MemberIDs() []string {
	return lo.Map(c.Members, func(m ChannelMember, _ int) string { return m.ID })
}

func (c Channel) JoinedMembers() []ChannelMember {
	return lo.Filter(c.Members, func(m ChannelMember, _ int) bool { return m.IsJoined() })
}

func (c Channel) PendingMembers() []ChannelMember {
	return lo.Filter(c.Members, func(m ChannelMember, _ int) bool { return m.IsPending() })
}

func (c Channel) HasMember(peerID string) bool {
	_, ok := c.FindMember(peerID)
	return ok
}

func (c Channel) FindMember(peerID string) (ChannelMember, bool) {
	return lo.Find(c.Members, func(m ChannelMember) bool { return m.ID == peerID })
}

// RecipientIDs returns every joined member except self, without duplicates.
func (c Channel) RecipientIDs(selfID string) []string {
	ids := lo.Map(c.JoinedMembers(), func(m ChannelMember, _ int) string { return m.ID })
	return lo.Without(lo.Uniq(ids), selfID)
}

// WithMember returns a copy where peerID has the given status, appending it when absent.
func (c Channel) WithMember(peerID string, status MemberStatus) Channel {
	members := make([]ChannelMember, 0, len(c.Members)+1)
	found := false
	for _, m := range c.Members {
		if m.ID == peerID {
			m.Status = status
			found = true
		}
		members = append(members, m)
	}
	if !found {
		members = append(members, ChannelMember{ID: peerID, Status: status})
	}
	c.Members = members
	return c
}

// WithoutMember returns a copy with peerID removed.
func (c Channel) WithoutMember(peerID string) Channel {
	c.Members = lo.Filter(c.Members, func(m ChannelMember, _ int) bool { return m.ID != peerID })
	return c
}
