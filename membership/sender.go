package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"plainchat/domain"
	"plainchat/errors"
	"plainchat/repositories"
	"plainchat/transport"
)

// Sender delivers system messages. Invites travel with the pairwise key only
// since the invitee does not hold the channel key yet; everything else may
// fall back to the channel key.
type Sender struct {
	client transport.IClient
	peers  repositories.IPeerRepository
	log    *slog.Logger
}

func NewSender(client transport.IClient, peers repositories.IPeerRepository, log *slog.Logger) *Sender {
	return &Sender{client: client, peers: peers, log: log}
}

func (s *Sender) Send(ctx context.Context, peerID, channelID, msgType string, payload any) error {
	peer, err := s.peers.Get(peerID)
	if err != nil {
		return err
	}
	return s.sendToPeer(ctx, peer, channelID, msgType, payload)
}

func (s *Sender) sendToPeer(ctx context.Context, peer domain.Peer, channelID, msgType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	req, err := transport.NewSystemMessageRequest(transport.SystemMessageVariables{Type: msgType, Payload: string(raw)})
	if err != nil {
		return err
	}
	if _, err := s.client.Call(ctx, peer, channelID, req); err != nil {
		s.log.Warn("system message not delivered", "type", msgType, "peer_id", peer.ID, "channel_id", channelID, "error", err)
		return err
	}
	s.log.Debug("system message sent", "type", msgType, "peer_id", peer.ID, "channel_id", channelID)
	return nil
}

// Broadcast sends to every id and returns how many sends failed.
func (s *Sender) Broadcast(ctx context.Context, peerIDs []string, channelID, msgType string, payload any) int {
	failed := 0
	for _, id := range peerIDs {
		if err := s.Send(ctx, id, channelID, msgType, payload); err != nil {
			failed++
		}
	}
	return failed
}

// MemberPeers describes every member known in the peers table.
func (s *Sender) MemberPeers(channel domain.Channel) []MemberPeer {
	out := make([]MemberPeer, 0, len(channel.Members))
	for _, id := range channel.MemberIDs() {
		peer, err := s.peers.Get(id)
		if err != nil {
			continue
		}
		out = append(out, memberPeerOf(peer))
	}
	return out
}
