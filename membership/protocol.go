//go:generate go run go.uber.org/mock/mockgen -source=protocol.go -destination=../mocks/mock_membership.go -package=mocks

// Package membership runs the channel invite, update, kick and leave protocol.
// Every channel mutation is one read-modify-write under a per-channel lock,
// followed by a synchronous key cache refresh.
package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"plainchat/auth"
	"plainchat/contract"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"
	"plainchat/internal"
	"plainchat/keycache"
	"plainchat/repositories"
	"plainchat/transport"

	"github.com/samber/lo"
)

// ChannelPurger drops the chat history of a channel, releasing its attachments.
type ChannelPurger interface {
	DeleteChannelChats(ctx context.Context, channelID string) error
}

// Self describes the local device as it presents itself to channel owners.
type Self struct {
	ID         string
	Name       string
	PublicKey  string
	DeviceType domain.DeviceType
}

type Protocol struct {
	self     Self
	channels repositories.IChannelRepository
	peers    repositories.IPeerRepository
	keys     keycache.IKeyCache
	sender   *Sender
	purger   ChannelPurger
	events   contract.IEventPublisher
	locks    *internal.KeyedMutex
	log      *slog.Logger
}

func NewProtocol(
	self Self,
	channels repositories.IChannelRepository,
	peers repositories.IPeerRepository,
	keys keycache.IKeyCache,
	client transport.IClient,
	purger ChannelPurger,
	events contract.IEventPublisher,
	log *slog.Logger,
) *Protocol {
	return &Protocol{
		self:     self,
		channels: channels,
		peers:    peers,
		keys:     keys,
		sender:   NewSender(client, peers, log),
		purger:   purger,
		events:   events,
		locks:    internal.NewKeyedMutex(),
		log:      log,
	}
}

// errUnchanged aborts a mutation that would not change anything.
var errUnchanged = fmt.Errorf("channel unchanged")

// Serve is the channelSystemMessage operation handler.
func (p *Protocol) Serve(ctx context.Context, in transport.Inbound) (any, error) {
	var vars transport.SystemMessageVariables
	if err := in.Request.Decode(&vars); err != nil {
		return nil, err
	}
	if err := auth.ValidateStruct(vars); err != nil {
		return nil, err
	}
	if err := p.Handle(ctx, in.SenderID, vars.Type, []byte(vars.Payload)); err != nil {
		return nil, err
	}
	return true, nil
}

// Handle applies one system message received from fromID.
// Stale updates are dropped silently.
func (p *Protocol) Handle(ctx context.Context, fromID, msgType string, payload []byte) error {
	var err error
	switch msgType {
	case TypeInvite:
		err = handle(payload, func(m Invite) error { return p.handleInvite(ctx, fromID, m) })
	case TypeInviteAccept:
		err = handle(payload, func(m InviteAccept) error { return p.handleAccept(ctx, fromID, m) })
	case TypeInviteDecline:
		err = handle(payload, func(m InviteDecline) error { return p.handleDecline(ctx, fromID, m) })
	case TypeUpdate:
		err = handle(payload, func(m Update) error { return p.handleUpdate(ctx, fromID, m) })
	case TypeKick:
		err = handle(payload, func(m Kick) error { return p.handleKick(ctx, fromID, m) })
	case TypeLeave:
		err = handle(payload, func(m Leave) error { return p.handleLeave(ctx, fromID, m) })
	default:
		err = fmt.Errorf("%w: unknown system message type %q", errors.ErrInvalidPayload, msgType)
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errors.ErrStaleVersion), errors.Is(err, errUnchanged):
		p.log.Debug("system message ignored", "type", msgType, "from", fromID, "reason", err)
		return nil
	default:
		p.log.Warn("system message rejected", "type", msgType, "from", fromID, "error", err)
		return err
	}
}

func handle[T any](payload []byte, fn func(T) error) error {
	var msg T
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := auth.ValidateStruct(msg); err != nil {
		return err
	}
	return fn(msg)
}

func (p *Protocol) handleInvite(ctx context.Context, fromID string, msg Invite) error {
	unlock := p.locks.Lock(msg.ChannelID)
	defer unlock()

	if _, err := p.channels.Get(msg.ChannelID); err == nil {
		return fmt.Errorf("%w: channel %s already exists", errUnchanged, msg.ChannelID)
	} else if !errors.Is(err, errors.ErrChannelNotFound) {
		return err
	}
	if _, err := p.peers.Get(fromID); err != nil {
		return fmt.Errorf("invite from unknown sender: %w", err)
	}
	if msg.Owner != "" && msg.Owner != fromID {
		return fmt.Errorf("%w: invite for a channel owned by %s sent by %s", errors.ErrUnauthorized, msg.Owner, fromID)
	}

	p.upsertMemberPeers(msg.MemberPeers)
	channel := domain.Channel{
		ID:      msg.ChannelID,
		Name:    msg.ChannelName,
		Key:     msg.Key,
		Owner:   fromID,
		Members: msg.Members,
		Version: msg.Version,
	}
	if err := p.channels.Create(channel); err != nil {
		return err
	}
	p.refresh(ctx)
	p.events.Publish(event.ChannelInviteReceived{Channel: channel, From: fromID})
	p.log.Info("channel invite received", "channel_id", channel.ID, "name", channel.Name, "from", fromID)
	return nil
}

func (p *Protocol) handleAccept(ctx context.Context, fromID string, msg InviteAccept) error {
	owned, err := p.requireOwned(msg.ChannelID)
	if err != nil {
		return err
	}
	if err := acceptable(owned, fromID); err != nil {
		return err
	}
	err = p.peers.UpsertChannelPeer(domain.Peer{
		ID:         fromID,
		Name:       msg.Name,
		PublicKey:  msg.PublicKey,
		DeviceType: domain.DeviceType(msg.DeviceType),
	})
	if err != nil {
		return err
	}

	channel, err := p.mutate(ctx, msg.ChannelID, func(ch *domain.Channel) error {
		if err := acceptable(*ch, fromID); err != nil {
			return err
		}
		*ch = ch.WithMember(fromID, domain.MemberJoined)
		ch.Version++
		return nil
	})
	if err != nil {
		return err
	}
	p.log.Info("invite accepted", "channel_id", channel.ID, "peer_id", fromID, "version", channel.Version)
	p.broadcastUpdate(ctx, channel)
	return nil
}

// acceptable allows only a pending member to join.
func acceptable(channel domain.Channel, peerID string) error {
	m, ok := channel.FindMember(peerID)
	if !ok {
		return fmt.Errorf("%w: %s has no pending invite to %s", errors.ErrUnauthorized, peerID, channel.ID)
	}
	if m.IsJoined() {
		return errUnchanged
	}
	return nil
}

func (p *Protocol) handleDecline(ctx context.Context, fromID string, msg InviteDecline) error {
	if _, err := p.requireOwned(msg.ChannelID); err != nil {
		return err
	}
	channel, err := p.mutate(ctx, msg.ChannelID, func(ch *domain.Channel) error {
		if !ch.HasMember(fromID) {
			return errUnchanged
		}
		*ch = ch.WithoutMember(fromID)
		ch.Version++
		return nil
	})
	if err != nil {
		return err
	}
	p.log.Info("invite declined", "channel_id", channel.ID, "peer_id", fromID)
	p.broadcastUpdate(ctx, channel)
	return nil
}

func (p *Protocol) handleUpdate(ctx context.Context, fromID string, msg Update) error {
	channel, err := p.mutate(ctx, msg.ChannelID, func(ch *domain.Channel) error {
		if !ch.IsOwnedBy(fromID) {
			return fmt.Errorf("%w: update from %s, owner is %s", errors.ErrUnauthorized, fromID, ch.Owner)
		}
		if msg.Version <= ch.Version {
			return fmt.Errorf("%w: local %d, remote %d", errors.ErrStaleVersion, ch.Version, msg.Version)
		}
		ch.Name = msg.ChannelName
		ch.Members = msg.Members
		ch.Version = msg.Version
		return nil
	}, msg.MemberPeers...)
	if err != nil {
		return err
	}
	p.log.Info("channel updated", "channel_id", channel.ID, "version", channel.Version)
	return nil
}

func (p *Protocol) handleKick(ctx context.Context, fromID string, msg Kick) error {
	channel, err := p.channels.Get(msg.ChannelID)
	if err != nil {
		return err
	}
	if !channel.IsOwnedBy(fromID) {
		return fmt.Errorf("%w: kick from %s, owner is %s", errors.ErrUnauthorized, fromID, channel.Owner)
	}
	return p.removeLocally(ctx, channel.ID, "kicked")
}

func (p *Protocol) handleLeave(ctx context.Context, fromID string, msg Leave) error {
	if _, err := p.requireOwned(msg.ChannelID); err != nil {
		return err
	}
	channel, err := p.mutate(ctx, msg.ChannelID, func(ch *domain.Channel) error {
		if !ch.HasMember(fromID) {
			return errUnchanged
		}
		*ch = ch.WithoutMember(fromID)
		ch.Version++
		return nil
	})
	if err != nil {
		return err
	}
	p.log.Info("member left", "channel_id", channel.ID, "peer_id", fromID)
	p.broadcastUpdate(ctx, channel)
	return nil
}

// mutate runs fn as a single write under the channel lock, then records the
// member identities, refreshes the key cache and publishes the new state.
func (p *Protocol) mutate(ctx context.Context, channelID string, fn repositories.Mutation, memberPeers ...MemberPeer) (domain.Channel, error) {
	unlock := p.locks.Lock(channelID)
	defer unlock()

	channel, err := p.channels.Mutate(channelID, fn)
	if err != nil {
		return domain.Channel{}, err
	}
	p.upsertMemberPeers(memberPeers)
	p.refresh(ctx)
	p.events.Publish(event.ChannelUpdated{Channel: channel})
	return channel, nil
}

func (p *Protocol) requireOwned(channelID string) (domain.Channel, error) {
	channel, err := p.channels.Get(channelID)
	if err != nil {
		return domain.Channel{}, err
	}
	if !channel.IsOwnedBy(p.self.ID) {
		return domain.Channel{}, fmt.Errorf("%w: %s is owned by %s", errors.ErrUnauthorized, channelID, channel.Owner)
	}
	return channel, nil
}

func (p *Protocol) upsertMemberPeers(memberPeers []MemberPeer) {
	for _, m := range memberPeers {
		if m.ID == p.self.ID {
			continue
		}
		if err := p.peers.UpsertChannelPeer(m.toPeer()); err != nil {
			p.log.Error("unable to store channel peer", "peer_id", m.ID, "error", err)
		}
	}
}

// removeLocally deletes a channel and its history on this device only.
func (p *Protocol) removeLocally(ctx context.Context, channelID, reason string) error {
	unlock := p.locks.Lock(channelID)
	defer unlock()

	if err := p.channels.Delete(channelID); err != nil {
		return err
	}
	if p.purger != nil {
		if err := p.purger.DeleteChannelChats(ctx, channelID); err != nil {
			p.log.Error("unable to delete channel chats", "channel_id", channelID, "error", err)
		}
	}
	p.refresh(ctx)
	p.events.Publish(event.ChannelRemoved{ChannelID: channelID, Reason: reason})
	p.log.Info("channel removed", "channel_id", channelID, "reason", reason)
	return nil
}

func (p *Protocol) refresh(ctx context.Context) {
	if err := p.keys.Refresh(ctx); err != nil {
		p.log.Error("key cache refresh failed", "error", err)
	}
}

func (p *Protocol) broadcastUpdate(ctx context.Context, channel domain.Channel) {
	msg := Update{
		ChannelID:   channel.ID,
		ChannelName: channel.Name,
		Members:     channel.Members,
		MemberPeers: p.sender.MemberPeers(channel),
		Version:     channel.Version,
	}
	recipients := lo.Without(channel.MemberIDs(), p.self.ID)
	if failed := p.sender.Broadcast(ctx, recipients, channel.ID, TypeUpdate, msg); failed > 0 {
		p.log.Warn("channel update not delivered to every member", "channel_id", channel.ID, "failed", failed)
	}
}
