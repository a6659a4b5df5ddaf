package projection

import (
	"context"
	"testing"
	"time"

	"plainchat/domain"
	"plainchat/domain/event"

	"github.com/stretchr/testify/require"
)

const self = "me"

func created(id, channelID string, at time.Time) event.MessageCreated {
	item := domain.ChatItem{ID: id, FromID: "alice", ChannelID: channelID, Content: domain.TextContent(id), Status: domain.StatusSent, CreatedAt: at}
	if channelID == "" {
		item.ToID = self
	}
	return event.MessageCreated{Item: item, Incoming: true, SelfID: self, At: at}
}

func TestTimelines_OrdersAndDeduplicates(t *testing.T) {
	req := require.New(t)
	timelines := NewTimelines()
	ctx := context.Background()
	now := time.Now()

	req.NoError(timelines.Consume(ctx, created("second", "", now.Add(time.Second))))
	req.NoError(timelines.Consume(ctx, created("first", "", now)))
	req.NoError(timelines.Consume(ctx, created("first", "", now)))
	req.NoError(timelines.Consume(ctx, created("team-1", "team", now)))

	direct := timelines.Timeline(domain.PeerConversation("alice"))
	req.Len(direct, 2)
	req.Equal("first", direct[0].ID)
	req.Equal("second", direct[1].ID)
	req.Equal([]string{domain.ChannelConversation("team"), domain.PeerConversation("alice")}, timelines.Conversations())
}

func TestTimelines_ReplacesOnStatusAndDownload(t *testing.T) {
	req := require.New(t)
	timelines := NewTimelines()
	ctx := context.Background()

	msg := created("m1", "", time.Now())
	req.NoError(timelines.Consume(ctx, msg))

	failed := msg.Item
	failed.Status = domain.StatusFailed
	req.NoError(timelines.Consume(ctx, event.MessageStatusChanged{Item: failed, SelfID: self}))

	withFile := failed
	withFile.Content = domain.MessageContent{Type: domain.MessageFiles, Files: []domain.MessageFile{{URI: domain.LocalURI("abc")}}}
	req.NoError(timelines.Consume(ctx, event.DownloadCompleted{Item: withFile, FileID: "abc", SelfID: self}))

	items := timelines.Timeline(domain.PeerConversation("alice"))
	req.Len(items, 1)
	req.Equal(domain.StatusFailed, items[0].Status)
	req.Equal(domain.LocalURI("abc"), items[0].Content.Files[0].URI)
}

func TestTimelines_ChannelRemoved(t *testing.T) {
	req := require.New(t)
	timelines := NewTimelines()
	ctx := context.Background()

	req.NoError(timelines.Consume(ctx, created("team-1", "team", time.Now())))
	req.NoError(timelines.Consume(ctx, event.ChannelRemoved{ChannelID: "team", Reason: "deleted"}))

	req.Empty(timelines.Timeline(domain.ChannelConversation("team")))
	req.Empty(timelines.Conversations())
}
