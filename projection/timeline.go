// Package projection builds local timelines from observed events.
// Handles ordering, deduplication, and projections.
// Does not emit events or interact with UI directly.
package projection

import (
	"context"
	"slices"
	"sync"

	"plainchat/domain"
	"plainchat/domain/event"
)

// Timelines holds one ordered timeline per conversation.
type Timelines struct {
	mu            sync.RWMutex
	conversations map[string][]domain.ChatItem
}

func NewTimelines() *Timelines {
	return &Timelines{conversations: make(map[string][]domain.ChatItem)}
}

func (t *Timelines) Consume(_ context.Context, e event.DomainEvent) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch evt := e.(type) {
	case event.MessageCreated:
		t.upsert(evt.ConversationID(), evt.Item)
	case event.MessageStatusChanged:
		t.upsert(evt.ConversationID(), evt.Item)
	case event.DownloadCompleted:
		t.upsert(evt.ConversationID(), evt.Item)
	case event.ChannelRemoved:
		delete(t.conversations, evt.ConversationID())
	}
	return nil
}

// upsert replaces an item already projected, or inserts it in creation order.
func (t *Timelines) upsert(conversationID string, item domain.ChatItem) {
	items := t.conversations[conversationID]
	if i := slices.IndexFunc(items, func(c domain.ChatItem) bool { return c.ID == item.ID }); i >= 0 {
		items[i] = item
		return
	}
	i, _ := slices.BinarySearchFunc(items, item, func(a, b domain.ChatItem) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	t.conversations[conversationID] = slices.Insert(items, i, item)
}

// Timeline returns a copy of the items of one conversation, oldest first.
func (t *Timelines) Timeline(conversationID string) []domain.ChatItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.conversations[conversationID])
}

func (t *Timelines) Conversations() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.conversations))
	for id := range t.conversations {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
