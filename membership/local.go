package membership

import (
	"context"
	"fmt"
	"strings"
	"time"

	"plainchat/auth"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// CreateChannel creates a channel owned by this device, with itself as the only joined member.
func (p *Protocol) CreateChannel(ctx context.Context, name string) (domain.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Channel{}, fmt.Errorf("%w: empty channel name", errors.ErrInvalidPayload)
	}
	key, err := auth.NewKey()
	if err != nil {
		return domain.Channel{}, err
	}
	channel := domain.Channel{
		ID:        uuid.NewString(),
		Name:      name,
		Key:       key,
		Owner:     p.self.ID,
		Members:   []domain.ChannelMember{{ID: p.self.ID, Status: domain.MemberJoined}},
		Version:   1,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.channels.Create(channel); err != nil {
		return domain.Channel{}, err
	}
	p.refresh(ctx)
	p.events.Publish(event.ChannelUpdated{Channel: channel})
	p.log.Info("channel created", "channel_id", channel.ID, "name", channel.Name)
	return channel, nil
}

// Invite adds peerID as a pending member and sends the invite. An unreachable
// invitee stays pending; RetryPendingInvites resends once it shows up.
func (p *Protocol) Invite(ctx context.Context, channelID, peerID string) (domain.Channel, error) {
	if peerID == p.self.ID {
		return domain.Channel{}, fmt.Errorf("%w: cannot invite yourself", errors.ErrInvalidPayload)
	}
	if _, err := p.peers.Get(peerID); err != nil {
		return domain.Channel{}, err
	}
	if _, err := p.requireOwned(channelID); err != nil {
		return domain.Channel{}, err
	}

	channel, err := p.mutate(ctx, channelID, func(ch *domain.Channel) error {
		if ch.HasMember(peerID) {
			return errUnchanged
		}
		*ch = ch.WithMember(peerID, domain.MemberPending)
		ch.Version++
		return nil
	})
	switch {
	case errors.Is(err, errUnchanged):
		if channel, err = p.channels.Get(channelID); err != nil {
			return domain.Channel{}, err
		}
		if m, _ := channel.FindMember(peerID); m.IsJoined() {
			return channel, nil
		}
	case err != nil:
		return domain.Channel{}, err
	}

	if err := p.sendInvite(ctx, channel, peerID); err != nil {
		p.log.Info("invite kept pending", "channel_id", channelID, "peer_id", peerID)
	}
	return channel, nil
}

func (p *Protocol) sendInvite(ctx context.Context, channel domain.Channel, peerID string) error {
	msg := Invite{
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
		Key:         channel.Key,
		Owner:       p.self.ID,
		Members:     channel.Members,
		MemberPeers: p.sender.MemberPeers(channel),
		Version:     channel.Version,
	}
	return p.sender.Send(ctx, peerID, "", TypeInvite, msg)
}

// RetryPendingInvites resends the invites of every owned channel where peerID is still pending.
func (p *Protocol) RetryPendingInvites(ctx context.Context, peerID string) int {
	channels, err := p.channels.List()
	if err != nil {
		p.log.Error("unable to list channels", "error", err)
		return 0
	}
	sent := 0
	for _, ch := range channels {
		m, ok := ch.FindMember(peerID)
		if !ok || !m.IsPending() || !ch.IsOwnedBy(p.self.ID) {
			continue
		}
		if err := p.sendInvite(ctx, ch, peerID); err == nil {
			sent++
		}
	}
	return sent
}

// AcceptInvite tells the owner this device joins. The local membership flips
// to joined when the owner's update comes back.
func (p *Protocol) AcceptInvite(ctx context.Context, channelID string) error {
	channel, err := p.channels.Get(channelID)
	if err != nil {
		return err
	}
	msg := InviteAccept{
		ChannelID:  channelID,
		PublicKey:  p.self.PublicKey,
		Name:       p.self.Name,
		DeviceType: string(p.self.DeviceType),
	}
	return p.sender.Send(ctx, channel.Owner, channelID, TypeInviteAccept, msg)
}

// DeclineInvite notifies the owner on a best effort basis and forgets the channel.
func (p *Protocol) DeclineInvite(ctx context.Context, channelID string) error {
	channel, err := p.channels.Get(channelID)
	if err != nil {
		return err
	}
	_ = p.sender.Send(ctx, channel.Owner, channelID, TypeInviteDecline, InviteDecline{ChannelID: channelID})
	return p.removeLocally(ctx, channelID, "declined")
}

func (p *Protocol) Rename(ctx context.Context, channelID, name string) (domain.Channel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Channel{}, fmt.Errorf("%w: empty channel name", errors.ErrInvalidPayload)
	}
	if _, err := p.requireOwned(channelID); err != nil {
		return domain.Channel{}, err
	}
	channel, err := p.mutate(ctx, channelID, func(ch *domain.Channel) error {
		if ch.Name == name {
			return errUnchanged
		}
		ch.Name = name
		ch.Version++
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return p.channels.Get(channelID)
	}
	if err != nil {
		return domain.Channel{}, err
	}
	p.broadcastUpdate(ctx, channel)
	return channel, nil
}

// Kick removes peerID, tells it so and broadcasts the new membership to the others.
func (p *Protocol) Kick(ctx context.Context, channelID, peerID string) (domain.Channel, error) {
	if peerID == p.self.ID {
		return domain.Channel{}, fmt.Errorf("%w: the owner cannot kick itself", errors.ErrInvalidPayload)
	}
	if _, err := p.requireOwned(channelID); err != nil {
		return domain.Channel{}, err
	}
	channel, err := p.mutate(ctx, channelID, func(ch *domain.Channel) error {
		if !ch.HasMember(peerID) {
			return errUnchanged
		}
		*ch = ch.WithoutMember(peerID)
		ch.Version++
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return p.channels.Get(channelID)
	}
	if err != nil {
		return domain.Channel{}, err
	}
	_ = p.sender.Send(ctx, peerID, channelID, TypeKick, Kick{ChannelID: channelID})
	p.broadcastUpdate(ctx, channel)
	return channel, nil
}

// Leave is for members; the owner deletes the channel instead.
func (p *Protocol) Leave(ctx context.Context, channelID string) error {
	channel, err := p.channels.Get(channelID)
	if err != nil {
		return err
	}
	if channel.IsOwnedBy(p.self.ID) {
		return fmt.Errorf("%w: the owner cannot leave %s, delete it instead", errors.ErrUnauthorized, channelID)
	}
	_ = p.sender.Send(ctx, channel.Owner, channelID, TypeLeave, Leave{ChannelID: channelID})
	return p.removeLocally(ctx, channelID, "left")
}

// DeleteChannel kicks every member when this device owns the channel, then
// removes it locally. A member deleting a channel leaves it.
func (p *Protocol) DeleteChannel(ctx context.Context, channelID string) error {
	channel, err := p.channels.Get(channelID)
	if err != nil {
		return err
	}
	if !channel.IsOwnedBy(p.self.ID) {
		return p.Leave(ctx, channelID)
	}
	recipients := lo.Without(channel.MemberIDs(), p.self.ID)
	if failed := p.sender.Broadcast(ctx, recipients, channelID, TypeKick, Kick{ChannelID: channelID}); failed > 0 {
		p.log.Warn("kick not delivered to every member", "channel_id", channelID, "failed", failed)
	}
	return p.removeLocally(ctx, channelID, "deleted")
}
