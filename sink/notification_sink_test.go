package sink

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/keycache"
	"plainchat/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func collect(out *[]Notification) Notifier {
	return func(_ context.Context, n Notification) error {
		*out = append(*out, n)
		return nil
	}
}

func TestNotificationSink_IncomingMessages(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockIKeyCache(ctrl)
	keys.EXPECT().Lookup(keycache.PeerName, "alice").Return("Alice's phone", true).Times(2)

	var got []Notification
	s := NewNotificationSink(collect(&got), keys, slog.Default())
	ctx := context.Background()

	direct := domain.ChatItem{ID: "m1", FromID: "alice", ToID: "me", Content: domain.TextContent("hi there"), CreatedAt: time.Now()}
	req.NoError(s.Consume(ctx, event.MessageCreated{Item: direct, Incoming: true, SelfID: "me"}))

	inChannel := domain.ChatItem{ID: "m2", FromID: "alice", ChannelID: "team", Content: domain.TextContent("standup")}
	req.NoError(s.Consume(ctx, event.MessageCreated{Item: inChannel, Incoming: true, SelfID: "me"}))

	req.Len(got, 2)
	req.Equal(Notification{ConversationID: "p-alice", ChatID: "m1", Title: "Alice's phone", Body: "hi there"}, got[0])
	req.Equal("Alice's phone in team", got[1].Title)
	req.Equal("c-team", got[1].ConversationID)
}

func TestNotificationSink_SkipsOwnMessagesAndOtherEvents(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	keys := mocks.NewMockIKeyCache(ctrl)
	keys.EXPECT().Lookup(keycache.PeerName, "bob").Return("", false)

	var got []Notification
	s := NewNotificationSink(collect(&got), keys, slog.Default())
	ctx := context.Background()

	own := domain.ChatItem{ID: "m1", FromID: "me", ToID: "alice", Content: domain.TextContent("hello")}
	req.NoError(s.Consume(ctx, event.MessageCreated{Item: own, SelfID: "me"}))
	req.NoError(s.Consume(ctx, event.MessageStatusChanged{Item: own, SelfID: "me"}))
	req.NoError(s.Consume(ctx, event.ChannelInviteReceived{Channel: domain.Channel{ID: "team", Name: "Team"}, From: "bob"}))

	req.Len(got, 1)
	req.Equal("bob", got[0].Title, "unknown names fall back to the peer id")
	req.Equal("invited you to Team", got[0].Body)
}
