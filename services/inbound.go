package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"plainchat/auth"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"
	"plainchat/transport"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// RegisterHandlers plugs the chat operations, file sharing checks and
// presence tracking into the peer server.
func (s *ChatService) RegisterHandlers(server *transport.Server) {
	server.Handle(transport.OpCreateChatItem, s.ReceiveChatItem)
	server.AuthorizeFiles(s.SharesFile)
	server.OnSeen(s.PeerSeen)
}

// PeerSeen marks an authenticated sender online and, when it was not,
// fires the peer online callback in the background.
func (s *ChatService) PeerSeen(peerID string) {
	if !s.presence.MarkSeen(peerID) || s.onPeerOnline == nil {
		return
	}
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		s.onPeerOnline(context.Background(), peerID)
	}()
}

// ReceiveChatItem is the createChatItem operation handler.
func (s *ChatService) ReceiveChatItem(ctx context.Context, in transport.Inbound) (any, error) {
	var vars transport.ChatItemVariables
	if err := in.Request.Decode(&vars); err != nil {
		return nil, err
	}
	if err := auth.ValidateStruct(vars); err != nil {
		return nil, err
	}
	var content domain.MessageContent
	if err := json.Unmarshal([]byte(vars.Content), &content); err != nil {
		return nil, fmt.Errorf("%w: content: %v", errors.ErrInvalidPayload, err)
	}
	if err := auth.ValidateStruct(content); err != nil {
		return nil, err
	}
	if f, found := lo.Find(content.Files, func(f domain.MessageFile) bool { return !f.IsRemote() }); found {
		return nil, fmt.Errorf("%w: attachment %q is not a remote reference", errors.ErrInvalidPayload, f.URI)
	}
	if in.ChannelID != "" && in.ChannelID != vars.ChannelID {
		return nil, fmt.Errorf("%w: channel header does not match the item", errors.ErrInvalidPayload)
	}

	author := in.SenderID
	if vars.OriginID != "" && vars.OriginID != in.SenderID {
		if vars.ChannelID == "" {
			return nil, fmt.Errorf("%w: only channel items are relayed", errors.ErrInvalidPayload)
		}
		author = vars.OriginID
	}

	item := domain.ChatItem{
		ID:        vars.ID,
		FromID:    author,
		Content:   content,
		Status:    domain.StatusSent,
		CreatedAt: time.UnixMilli(vars.CreatedAt).UTC(),
	}
	if vars.CreatedAt <= 0 {
		item.CreatedAt = s.now().UTC()
	}

	var channel domain.Channel
	if vars.ChannelID != "" {
		var err error
		if channel, err = s.channels.Get(vars.ChannelID); err != nil {
			return nil, err
		}
		if !channel.HasMember(in.SenderID) || !channel.HasMember(author) {
			return nil, fmt.Errorf("%w: %s is not a member of %s", errors.ErrUnauthorized, author, channel.ID)
		}
		if author != in.SenderID && !s.mayRelay(channel, in.SenderID) {
			return nil, fmt.Errorf("%w: %s may not relay items of %s", errors.ErrUnauthorized, in.SenderID, author)
		}
		item.ChannelID = channel.ID
	} else {
		item.ToID = s.selfID
	}

	if _, err := s.chats.Get(item.ID); err == nil {
		s.log.Debug("chat item already received", "chat_id", item.ID, "from", in.SenderID)
		return true, nil
	}
	if err := s.chats.Store(item); err != nil {
		return nil, err
	}
	s.indexItem(item)
	s.enqueueDownloads(item)
	s.events.Publish(event.MessageCreated{Item: item, Incoming: true, SelfID: s.selfID, At: s.now().UTC()})

	if item.IsChannel() && domain.IsLeader(channel, s.selfID, s.presence.Online()) {
		s.relay(channel, item, in.SenderID)
	}
	return true, nil
}

// mayRelay accepts relayed items from the channel owner or from the leader
// this device elects.
func (s *ChatService) mayRelay(channel domain.Channel, senderID string) bool {
	if channel.IsOwnedBy(senderID) {
		return true
	}
	leader, ok := domain.ElectLeader(channel, s.selfID, s.presence.Online())
	return ok && leader == senderID
}

// relay forwards an item received as channel leader to the other joined
// members, keeping the author as origin.
func (s *ChatService) relay(channel domain.Channel, item domain.ChatItem, senderID string) {
	recipients := lo.Without(channel.RecipientIDs(s.selfID), item.FromID, senderID)
	if len(recipients) == 0 {
		return
	}
	req, err := s.chatRequest(item, item.FromID)
	if err != nil {
		s.log.Error("unable to encode relayed item", "chat_id", item.ID, "error", err)
		return
	}
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		results := s.fanOut(context.Background(), recipients, channel.ID, req)
		data := domain.NewStatusData(domain.ScopeAll, results...)
		s.log.Debug("chat item relayed",
			"chat_id", item.ID,
			"channel_id", channel.ID,
			"delivered", data.DeliveryLabel())
		for _, r := range data.FailedResults() {
			s.log.Info("relay failed", "chat_id", item.ID, "peer_id", r.PeerID, "error", lo.FromPtr(r.Error))
		}
	}()
}

// enqueueDownloads queues every fsid: attachment; the author serves the bytes.
func (s *ChatService) enqueueDownloads(item domain.ChatItem) {
	for _, f := range item.Content.Files {
		if !f.IsRemote() {
			continue
		}
		task := domain.DownloadTask{
			ID:        uuid.NewString(),
			MessageID: item.ID,
			PeerID:    item.FromID,
			File:      f,
			Priority:  lo.Ternary(item.Content.Type == domain.MessageImages, domain.PriorityHigh, domain.PriorityNormal),
			Status:    domain.DownloadPending,
			CreatedAt: s.now().UTC(),
		}
		if err := s.downloads.Enqueue(task); err != nil {
			s.log.Error("unable to queue download", "chat_id", item.ID, "uri", f.URI, "error", err)
		}
	}
}
