// Package services holds the chat orchestrator: direct sends to peers,
// leader relay inside channels and the inbound createChatItem operation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"plainchat/auth"
	"plainchat/contract"
	"plainchat/delivery"
	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/domain/search"
	"plainchat/errors"
	"plainchat/filestore"
	"plainchat/keycache"
	"plainchat/presence"
	"plainchat/repositories"
	"plainchat/transport"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IChatService interface {
	SendMessage(ctx context.Context, target Target, content domain.MessageContent) (domain.ChatItem, error)
	Resend(ctx context.Context, chatID string) (domain.ChatItem, error)
	History(conversationID string, cursor *string, limit int) ([]domain.ChatItem, *string, error)
	Search(ctx context.Context, input string) ([]domain.ChatItem, error)
	AttachFile(ctx context.Context, path, mime string, deleteSrc bool) (domain.MessageFile, error)
	DeleteChat(ctx context.Context, chatID string) error
	DeletePeerChats(ctx context.Context, peerID string) error
	DeleteChannelChats(ctx context.Context, channelID string) error
}

// Target is either a peer or a channel, never both.
type Target struct {
	PeerID    string
	ChannelID string
}

func ToPeer(peerID string) Target { return Target{PeerID: peerID} }

func ToChannel(channelID string) Target { return Target{ChannelID: channelID} }

func (t Target) validate() error {
	if (t.PeerID == "") == (t.ChannelID == "") {
		return fmt.Errorf("%w: target needs exactly one of peer or channel", errors.ErrInvalidPayload)
	}
	return nil
}

type Dependencies struct {
	SelfID    string
	Chats     repositories.IChatRepository
	Peers     repositories.IPeerRepository
	Channels  repositories.IChannelRepository
	Downloads repositories.IDownloadRepository
	Index     repositories.ISearchIndex
	Files     filestore.IFileStore
	Keys      keycache.IKeyCache
	Client    transport.IClient
	Tracker   delivery.ITracker
	Presence  presence.IPresence
	Events    contract.IEventPublisher
}

// PeerOnlineFunc runs when a peer shows up after being offline.
type PeerOnlineFunc func(ctx context.Context, peerID string)

type ChatService struct {
	selfID    string
	chats     repositories.IChatRepository
	peers     repositories.IPeerRepository
	channels  repositories.IChannelRepository
	downloads repositories.IDownloadRepository
	index     repositories.ISearchIndex
	files     filestore.IFileStore
	keys      keycache.IKeyCache
	client    transport.IClient
	tracker   delivery.ITracker
	presence  presence.IPresence
	events    contract.IEventPublisher
	log       *slog.Logger

	onPeerOnline PeerOnlineFunc
	// relays and presence callbacks outlive the inbound request
	background sync.WaitGroup
	now        func() time.Time
}

func NewChatService(deps Dependencies, log *slog.Logger) *ChatService {
	return &ChatService{
		selfID:    deps.SelfID,
		chats:     deps.Chats,
		peers:     deps.Peers,
		channels:  deps.Channels,
		downloads: deps.Downloads,
		index:     deps.Index,
		files:     deps.Files,
		keys:      deps.Keys,
		client:    deps.Client,
		tracker:   deps.Tracker,
		presence:  deps.Presence,
		events:    deps.Events,
		log:       log,
		now:       time.Now,
	}
}

func (s *ChatService) OnPeerOnline(fn PeerOnlineFunc) { s.onPeerOnline = fn }

// Wait blocks until background relays are done.
func (s *ChatService) Wait() { s.background.Wait() }

// SendMessage stores a new outgoing item and delivers it. The returned item
// carries the aggregated status; its StatusData is nil when no channel member
// could relay.
func (s *ChatService) SendMessage(ctx context.Context, target Target, content domain.MessageContent) (domain.ChatItem, error) {
	if err := target.validate(); err != nil {
		return domain.ChatItem{}, err
	}
	if err := auth.ValidateStruct(content); err != nil {
		return domain.ChatItem{}, err
	}

	var channel domain.Channel
	if target.ChannelID != "" {
		var err error
		if channel, err = s.joinedChannel(target.ChannelID); err != nil {
			return domain.ChatItem{}, err
		}
	}

	item := domain.ChatItem{
		ID:        uuid.NewString(),
		FromID:    s.selfID,
		ToID:      target.PeerID,
		ChannelID: target.ChannelID,
		Content:   content,
		Status:    domain.StatusPending,
		CreatedAt: s.now().UTC(),
	}
	if err := s.chats.Store(item); err != nil {
		return domain.ChatItem{}, err
	}
	s.indexItem(item)
	s.events.Publish(event.MessageCreated{Item: item, SelfID: s.selfID, At: item.CreatedAt})

	var (
		data *domain.StatusData
		err  error
	)
	if item.IsChannel() {
		data, err = s.deliverToChannel(ctx, channel, item)
	} else {
		data, err = s.deliverToPeer(ctx, item)
	}
	if err != nil {
		return domain.ChatItem{}, err
	}
	return s.record(item.ID, data, false)
}

// Resend retries an outgoing item. Inside a channel this device still leads,
// only the failed recipients are retried and merged into the previous results.
func (s *ChatService) Resend(ctx context.Context, chatID string) (domain.ChatItem, error) {
	item, err := s.chats.Get(chatID)
	if err != nil {
		return domain.ChatItem{}, err
	}
	if item.FromID != s.selfID {
		return domain.ChatItem{}, fmt.Errorf("%w: only own messages can be resent", errors.ErrUnauthorized)
	}
	if item.Status == domain.StatusSent && item.StatusData != nil && item.StatusData.DeliveredToAll() {
		return item, nil
	}

	if !item.IsChannel() {
		data, err := s.deliverToPeer(ctx, item)
		if err != nil {
			return domain.ChatItem{}, err
		}
		return s.record(item.ID, data, false)
	}

	channel, err := s.joinedChannel(item.ChannelID)
	if err != nil {
		return domain.ChatItem{}, err
	}
	prev := item.StatusData
	if prev != nil && prev.Scope == domain.ScopeAll && domain.IsLeader(channel, s.selfID, s.presence.Online()) {
		recipients := channel.RecipientIDs(s.selfID)
		failed := lo.Filter(prev.FailedPeerIDs(), func(id string, _ int) bool { return slices.Contains(recipients, id) })
		req, err := s.chatRequest(item, "")
		if err != nil {
			return domain.ChatItem{}, err
		}
		retried := domain.NewStatusData(domain.ScopeAll, s.fanOut(ctx, failed, channel.ID, req)...)
		return s.record(item.ID, retried, true)
	}

	data, err := s.deliverToChannel(ctx, channel, item)
	if err != nil {
		return domain.ChatItem{}, err
	}
	return s.record(item.ID, data, false)
}

func (s *ChatService) History(conversationID string, cursor *string, limit int) ([]domain.ChatItem, *string, error) {
	return s.chats.ListConversation(conversationID, cursor, limit)
}

// Search runs a "/find" query against the history index.
func (s *ChatService) Search(ctx context.Context, input string) ([]domain.ChatItem, error) {
	ids, err := s.index.Search(ctx, *search.NewSearchQuery(input))
	if err != nil {
		return nil, err
	}
	items := make([]domain.ChatItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.chats.Get(id)
		if err != nil {
			// index lags behind a deletion
			s.log.Debug("search hit without chat item", "chat_id", id, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// AttachFile imports a local file into the content store and returns the
// attachment referencing it.
func (s *ChatService) AttachFile(ctx context.Context, path, mime string, deleteSrc bool) (domain.MessageFile, error) {
	stored, err := s.files.ImportFile(ctx, path, mime, deleteSrc)
	if err != nil {
		return domain.MessageFile{}, err
	}
	return domain.MessageFile{
		ID:       stored.ID,
		URI:      stored.URI(),
		Size:     stored.Size,
		FileName: filepath.Base(path),
	}, nil
}

func (s *ChatService) joinedChannel(channelID string) (domain.Channel, error) {
	channel, err := s.channels.Get(channelID)
	if err != nil {
		return domain.Channel{}, err
	}
	if m, ok := channel.FindMember(s.selfID); !ok || !m.IsJoined() {
		return domain.Channel{}, fmt.Errorf("%w: not a joined member of %s", errors.ErrUnauthorized, channelID)
	}
	return channel, nil
}

func (s *ChatService) deliverToPeer(ctx context.Context, item domain.ChatItem) (*domain.StatusData, error) {
	req, err := s.chatRequest(item, "")
	if err != nil {
		return nil, err
	}
	return domain.NewStatusData(domain.ScopeDirect, s.sendTo(ctx, item.ToID, "", req)), nil
}

// deliverToChannel returns nil when no joined member is online to relay.
func (s *ChatService) deliverToChannel(ctx context.Context, channel domain.Channel, item domain.ChatItem) (*domain.StatusData, error) {
	leader, ok := domain.ElectLeader(channel, s.selfID, s.presence.Online())
	if !ok {
		s.log.Info("no leader online", "channel_id", channel.ID, "chat_id", item.ID)
		return nil, nil
	}
	req, err := s.chatRequest(item, "")
	if err != nil {
		return nil, err
	}
	if leader == s.selfID {
		results := s.fanOut(ctx, channel.RecipientIDs(s.selfID), channel.ID, req)
		return domain.NewStatusData(domain.ScopeAll, results...), nil
	}
	return domain.NewStatusData(domain.ScopeLeader, s.sendTo(ctx, leader, channel.ID, req)), nil
}

// fanOut sends req to every peer concurrently. Results keep the order of peerIDs.
func (s *ChatService) fanOut(ctx context.Context, peerIDs []string, channelID string, req transport.Request) []domain.DeliveryResult {
	results := make([]domain.DeliveryResult, len(peerIDs))
	var wg sync.WaitGroup
	for i, id := range peerIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			results[i] = s.sendTo(ctx, id, channelID, req)
		}(i, id)
	}
	wg.Wait()
	return results
}

// sendTo turns a missing peer row into a failed result for that recipient only.
func (s *ChatService) sendTo(ctx context.Context, peerID, channelID string, req transport.Request) domain.DeliveryResult {
	peer, err := s.peers.Get(peerID)
	if err != nil {
		return domain.Undelivered(peerID, s.nameOf(peerID), err.Error())
	}
	return s.client.Send(ctx, peer, channelID, req)
}

func (s *ChatService) nameOf(peerID string) string {
	if name, ok := s.keys.Lookup(keycache.PeerName, peerID); ok && name != "" {
		return name
	}
	return peerID
}

// chatRequest encodes item for the wire. Local attachments are advertised as fsid: references.
func (s *ChatService) chatRequest(item domain.ChatItem, originID string) (transport.Request, error) {
	content, err := json.Marshal(item.Content.ForPeer())
	if err != nil {
		return transport.Request{}, fmt.Errorf("%w: encoding content: %v", errors.ErrInvalidPayload, err)
	}
	return transport.NewCreateChatItemRequest(transport.ChatItemVariables{
		ID:        item.ID,
		Content:   string(content),
		ChannelID: item.ChannelID,
		OriginID:  originID,
		CreatedAt: item.CreatedAt.UnixMilli(),
	})
}

func (s *ChatService) record(chatID string, data *domain.StatusData, retry bool) (domain.ChatItem, error) {
	var (
		item domain.ChatItem
		err  error
	)
	if retry {
		item, err = s.tracker.RecordRetry(chatID, data)
	} else {
		item, err = s.tracker.Record(chatID, data)
	}
	if err != nil {
		return domain.ChatItem{}, err
	}
	s.events.Publish(event.MessageStatusChanged{Item: item, SelfID: s.selfID})
	return item, nil
}

func (s *ChatService) indexItem(item domain.ChatItem) {
	if err := s.index.Index(item); err != nil {
		s.log.Warn("unable to index chat item", "chat_id", item.ID, "error", err)
	}
}
