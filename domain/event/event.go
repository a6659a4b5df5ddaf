package event

import (
	"time"

	"plainchat/domain"
)

// DomainEvent is what the UI collaborator and in-process sinks consume.
// ConversationID is "p-<peer>" or "c-<channel>", empty for events not tied to a thread.
type DomainEvent interface {
	ConversationID() string
}

type MessageCreated struct {
	Item     domain.ChatItem
	Incoming bool
	SelfID   string
	At       time.Time
}

func (e MessageCreated) ConversationID() string { return e.Item.ConversationID(e.SelfID) }

type MessageStatusChanged struct {
	Item   domain.ChatItem
	SelfID string
}

func (e MessageStatusChanged) ConversationID() string { return e.Item.ConversationID(e.SelfID) }

type ChannelInviteReceived struct {
	Channel domain.Channel
	From    string
}

func (e ChannelInviteReceived) ConversationID() string {
	return domain.ChannelConversation(e.Channel.ID)
}

type ChannelUpdated struct {
	Channel domain.Channel
}

func (e ChannelUpdated) ConversationID() string { return domain.ChannelConversation(e.Channel.ID) }

type ChannelRemoved struct {
	ChannelID string
	Reason    string
}

func (e ChannelRemoved) ConversationID() string { return domain.ChannelConversation(e.ChannelID) }

// DownloadCompleted carries the chat item after its fsid: URI was rewritten to fid:.
type DownloadCompleted struct {
	Task   domain.DownloadTask
	FileID string
	Item   domain.ChatItem
	SelfID string
}

func (e DownloadCompleted) ConversationID() string { return e.Item.ConversationID(e.SelfID) }
