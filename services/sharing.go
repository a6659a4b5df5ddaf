package services

import (
	"slices"

	"plainchat/domain"
)

const sharingPageSize = 100

// SharesFile reports whether this device sent fileID to peerID, directly or in
// channelID where peerID is a member. Peers download attachments from their author.
func (s *ChatService) SharesFile(peerID, channelID, fileID string) bool {
	conversationID := domain.PeerConversation(peerID)
	if channelID != "" {
		channel, err := s.channels.Get(channelID)
		if err != nil || !channel.HasMember(peerID) {
			return false
		}
		conversationID = domain.ChannelConversation(channelID)
	}

	var cursor *string
	for {
		items, next, err := s.chats.ListConversation(conversationID, cursor, sharingPageSize)
		if err != nil {
			s.log.Warn("unable to check shared files", "conversation_id", conversationID, "error", err)
			return false
		}
		for _, item := range items {
			if item.FromID == s.selfID && slices.Contains(item.Content.LocalFileIDs(), fileID) {
				return true
			}
		}
		if next == nil || len(items) < sharingPageSize {
			return false
		}
		cursor = next
	}
}
