package runtime

import (
	"context"
	"testing"

	"plainchat/contract"
	"plainchat/domain"
	"plainchat/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s Sink) Consume(context.Context, event.DomainEvent) error {
	return nil
}

func TestRegistry_Subscribe_One_Conversation_One_Viewer(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	viewerID := uuid.NewString()
	conversationID := domain.PeerConversation("bob")
	sink := Sink{name: "a"}

	// Given nobody watches anything
	req.Empty(registry.sessions)
	req.Empty(registry.conversations)

	// When a viewer opens a conversation
	registry.Subscribe(viewerID, conversationID, sink)

	// Then
	req.Len(registry.sessions, 1)
	req.Equal(sink, registry.sessions[viewerID])
	req.Len(registry.conversations, 1)
	req.Contains(registry.conversations[conversationID], viewerID)
	req.Equal([]Sink{sink}, toSinks(registry.GetSinksForConversation(conversationID)))
	req.Nil(registry.GetSinksForConversation(domain.PeerConversation("alice")))
}

func TestRegistry_Subscribe_One_Conversation_Multiple_Viewers(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	conversationID := domain.ChannelConversation("team")
	sink1 := Sink{name: "1"}
	sink2 := Sink{name: "2"}

	registry.Subscribe("v1", conversationID, sink1)
	registry.Subscribe("v2", conversationID, sink2)

	req.Len(registry.sessions, 2)
	req.Len(registry.conversations[conversationID], 2)
	req.ElementsMatch([]Sink{sink1, sink2}, toSinks(registry.GetSinksForConversation(conversationID)))
}

func TestRegistry_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sink := Sink{name: "a"}
	team := domain.ChannelConversation("team")
	bob := domain.PeerConversation("bob")

	// Given a viewer watching two conversations
	registry.Subscribe("v1", team, sink)
	registry.Subscribe("v1", bob, sink)

	// When it leaves one of them, the session stays for the other
	registry.Unsubscribe("v1", team)
	req.Nil(registry.GetSinksForConversation(team))
	req.Len(registry.GetSinksForConversation(bob), 1)
	req.Len(registry.sessions, 1)

	// When it leaves the last one, nothing is left
	registry.Unsubscribe("v1", bob)
	req.Empty(registry.sessions)
	req.Empty(registry.conversations)
}

func toSinks(sinks []contract.EventSink) []Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		out = append(out, s.(Sink))
	}
	return out
}
