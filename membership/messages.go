package membership

import (
	"strings"

	"plainchat/domain"
)

// System message types carried by channelSystemMessage.
const (
	TypeInvite        = "channel_invite"
	TypeInviteAccept  = "channel_invite_accept"
	TypeInviteDecline = "channel_invite_decline"
	TypeUpdate        = "channel_update"
	TypeKick          = "channel_kick"
	TypeLeave         = "channel_leave"
)

// MemberPeer is the identity of a member shipped along invites and updates,
// so receivers can create peer records for members they never met.
type MemberPeer struct {
	ID         string `json:"id" validate:"required"`
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	DeviceType string `json:"deviceType"`
	IP         string `json:"ip"`
	Port       int    `json:"port"`
}

func memberPeerOf(p domain.Peer) MemberPeer {
	return MemberPeer{
		ID:         p.ID,
		Name:       p.Name,
		PublicKey:  p.PublicKey,
		DeviceType: string(p.DeviceType),
		IP:         strings.Join(p.Addresses, ","),
		Port:       p.Port,
	}
}

func (m MemberPeer) toPeer() domain.Peer {
	return domain.Peer{
		ID:         m.ID,
		Name:       m.Name,
		PublicKey:  m.PublicKey,
		DeviceType: domain.DeviceType(m.DeviceType),
		Addresses:  domain.ParseAddresses(m.IP),
		Port:       m.Port,
	}
}

// Invite goes from the owner to the invitee. The key travels inside the
// already encrypted and signed envelope.
type Invite struct {
	ChannelID   string                 `json:"channelId" validate:"required"`
	ChannelName string                 `json:"channelName"`
	Key         string                 `json:"key" validate:"required"`
	Owner       string                 `json:"owner"`
	Members     []domain.ChannelMember `json:"members" validate:"dive"`
	MemberPeers []MemberPeer           `json:"memberPeers" validate:"dive"`
	Version     int64                  `json:"version" validate:"gte=1"`
}

// InviteAccept goes from the invitee to the owner.
type InviteAccept struct {
	ChannelID  string `json:"channelId" validate:"required"`
	PublicKey  string `json:"publicKey"`
	Name       string `json:"name"`
	DeviceType string `json:"deviceType"`
}

type InviteDecline struct {
	ChannelID string `json:"channelId" validate:"required"`
}

// Update goes from the owner to every member, pending ones included.
type Update struct {
	ChannelID   string                 `json:"channelId" validate:"required"`
	ChannelName string                 `json:"channelName"`
	Members     []domain.ChannelMember `json:"members" validate:"dive"`
	MemberPeers []MemberPeer           `json:"memberPeers" validate:"dive"`
	Version     int64                  `json:"version" validate:"gte=1"`
}

type Kick struct {
	ChannelID string `json:"channelId" validate:"required"`
}

type Leave struct {
	ChannelID string `json:"channelId" validate:"required"`
}
