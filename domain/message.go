// Package domain contains core concepts of the peer chat system.
// This file defines chat items and their content payloads.
package domain

import (
	"strings"
	"time"

	"github.com/samber/lo"
)

type MessageType string

const (
	MessageText   MessageType = "text"
	MessageImages MessageType = "images"
	MessageFiles  MessageType = "files"
)

type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusPartial MessageStatus = "partial"
	StatusFailed  MessageStatus = "failed"
)

const (
	// LocalFileScheme addresses a file of the local content store.
	LocalFileScheme = "fid:"
	// RemoteFileScheme addresses a file served by the sending peer.
	RemoteFileScheme = "fsid:"
)

type MessageFile struct {
	ID       string `json:"id"`
	URI      string `json:"uri" validate:"required"`
	Size     int64  `json:"size"`
	Duration int64  `json:"duration,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Summary  string `json:"summary,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

func (f MessageFile) IsRemote() bool { return strings.HasPrefix(f.URI, RemoteFileScheme) }

func (f MessageFile) IsLocal() bool { return strings.HasPrefix(f.URI, LocalFileScheme) }

// LocalFileID returns the content hash of a fid: URI, empty otherwise.
func (f MessageFile) LocalFileID() string {
	if !f.IsLocal() {
		return ""
	}
	return strings.TrimPrefix(f.URI, LocalFileScheme)
}

// RemoteFileID returns the content hash of a fsid: URI, empty otherwise.
func (f MessageFile) RemoteFileID() string {
	if !f.IsRemote() {
		return ""
	}
	return strings.TrimPrefix(f.URI, RemoteFileScheme)
}

func LocalURI(fileID string) string { return LocalFileScheme + fileID }

func RemoteURI(fileID string) string { return RemoteFileScheme + fileID }

type MessageContent struct {
	Type  MessageType   `json:"type" validate:"required,oneof=text images files"`
	Text  string        `json:"text,omitempty"`
	Files []MessageFile `json:"files,omitempty"`
}

func TextContent(text string) MessageContent {
	return MessageContent{Type: MessageText, Text: text}
}

func (c MessageContent) HasAttachments() bool {
	return c.Type != MessageText && len(c.Files) > 0
}

// LocalFileIDs lists the content-store ids referenced by this content.
func (c MessageContent) LocalFileIDs() []string {
	return lo.FilterMap(c.Files, func(f MessageFile, _ int) (string, bool) {
		return f.LocalFileID(), f.IsLocal()
	})
}

// ForPeer rewrites local fid: URIs into fsid: references before transmission.
func (c MessageContent) ForPeer() MessageContent {
	if c.Type == MessageText {
		return c
	}
	c.Files = lo.Map(c.Files, func(f MessageFile, _ int) MessageFile {
		if f.IsLocal() {
			f.URI = RemoteURI(f.LocalFileID())
		}
		return f
	})
	return c
}

// ReplaceURI swaps one attachment URI, used once a remote download completes.
func (c MessageContent) ReplaceURI(from, to string) (MessageContent, bool) {
	replaced := false
	c.Files = lo.Map(c.Files, func(f MessageFile, _ int) MessageFile {
		if f.URI == from {
			f.URI = to
			replaced = true
		}
		return f
	})
	return c, replaced
}

// Preview is a short human readable summary of the content.
func (c MessageContent) Preview() string {
	switch c.Type {
	case MessageText:
		r := []rune(c.Text)
		if len(r) > 50 {
			return string(r[:50])
		}
		return c.Text
	case MessageImages:
		return lo.Ternary(len(c.Files) > 1, "images", "image")
	case MessageFiles:
		return lo.Ternary(len(c.Files) > 1, "files", "file")
	default:
		return "message"
	}
}

// ChatItem is one message of a peer conversation or of a channel.
type ChatItem struct {
	ID         string         `json:"id"`
	FromID     string         `json:"from_id"`
	ToID       string         `json:"to_id"`
	ChannelID  string         `json:"channel_id"`
	Content    MessageContent `json:"content"`
	Status     MessageStatus  `json:"status"`
	StatusData *StatusData    `json:"status_data,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (c ChatItem) IsChannel() bool { return c.ChannelID != "" }

// ConversationID identifies the thread a chat item belongs to from the local point of view.
func (c ChatItem) ConversationID(selfID string) string {
	if c.IsChannel() {
		return ChannelConversation(c.ChannelID)
	}
	if c.FromID == selfID {
		return PeerConversation(c.ToID)
	}
	return PeerConversation(c.FromID)
}

func ChannelConversation(channelID string) string { return "c-" + channelID }

func PeerConversation(peerID string) string { return "p-" + peerID }
