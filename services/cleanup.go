package services

import (
	"context"

	"plainchat/domain"

	"github.com/samber/lo"
)

// DeleteChat removes one item and releases the files it referenced.
func (s *ChatService) DeleteChat(ctx context.Context, chatID string) error {
	item, err := s.chats.Delete(chatID)
	if err != nil {
		return err
	}
	s.cleanup(ctx, []domain.ChatItem{item})
	return nil
}

func (s *ChatService) DeletePeerChats(ctx context.Context, peerID string) error {
	return s.deleteConversation(ctx, domain.PeerConversation(peerID))
}

// DeleteChannelChats also serves the membership protocol when a channel goes away.
func (s *ChatService) DeleteChannelChats(ctx context.Context, channelID string) error {
	return s.deleteConversation(ctx, domain.ChannelConversation(channelID))
}

func (s *ChatService) deleteConversation(ctx context.Context, conversationID string) error {
	items, err := s.chats.DeleteConversation(conversationID)
	if err != nil {
		return err
	}
	s.cleanup(ctx, items)
	s.log.Info("conversation deleted", "conversation_id", conversationID, "items", len(items))
	return nil
}

// cleanup logs failures and keeps going.
func (s *ChatService) cleanup(ctx context.Context, items []domain.ChatItem) {
	for _, item := range items {
		for _, id := range item.Content.LocalFileIDs() {
			if err := s.files.Release(ctx, id); err != nil {
				s.log.Warn("unable to release file", "chat_id", item.ID, "file_id", id, "error", err)
			}
		}
		if _, err := s.downloads.CancelForMessage(item.ID); err != nil {
			s.log.Warn("unable to cancel downloads", "chat_id", item.ID, "error", err)
		}
	}
	ids := lo.Map(items, func(item domain.ChatItem, _ int) string { return item.ID })
	if err := s.index.Delete(ids...); err != nil {
		s.log.Warn("unable to remove items from the index", "count", len(ids), "error", err)
	}
}
