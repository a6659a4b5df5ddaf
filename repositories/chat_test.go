package repositories

import (
	"fmt"
	"testing"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/stretchr/testify/require"
)

func TestChatRepository_StoreAndPage(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(SetupTestDB(t), testLog, "me")

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		req.NoError(repo.Store(domain.ChatItem{
			ID:        fmt.Sprintf("m%d", i),
			FromID:    "me",
			ToID:      "bob",
			Content:   domain.TextContent(fmt.Sprintf("hello %d", i)),
			Status:    domain.StatusPending,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}))
	}
	// another conversation must not leak in
	req.NoError(repo.Store(domain.ChatItem{ID: "x", FromID: "carol", ToID: "me", CreatedAt: at}))

	page, cursor, err := repo.ListConversation(domain.PeerConversation("bob"), nil, 2)
	req.NoError(err)
	req.Len(page, 2)
	req.Equal("m4", page[0].ID)
	req.Equal("m3", page[1].ID)
	req.NotNil(cursor)

	page, cursor, err = repo.ListConversation(domain.PeerConversation("bob"), cursor, 10)
	req.NoError(err)
	req.Len(page, 3)
	req.Equal("m2", page[0].ID)
	req.Equal("m0", page[2].ID)

	page, _, err = repo.ListConversation(domain.PeerConversation("bob"), cursor, 10)
	req.NoError(err)
	req.Empty(page)
}

func TestChatRepository_UpdateStatusAndContent(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(SetupTestDB(t), testLog, "me")

	req.NoError(repo.Store(domain.ChatItem{ID: "m1", FromID: "me", ChannelID: "c1", Status: domain.StatusPending}))

	data := domain.NewStatusData(domain.ScopeAll, domain.Delivered("b", "Bob"))
	item, err := repo.UpdateStatus("m1", domain.StatusSent, data)
	req.NoError(err)
	req.Equal(domain.StatusSent, item.Status)

	content := domain.MessageContent{Type: domain.MessageFiles, Files: []domain.MessageFile{{URI: "fid:abc"}}}
	_, err = repo.UpdateContent("m1", content)
	req.NoError(err)

	got, err := repo.Get("m1")
	req.NoError(err)
	req.Equal(domain.StatusSent, got.Status)
	req.Equal(1, got.StatusData.DeliveredCount())
	req.Equal("fid:abc", got.Content.Files[0].URI)

	_, err = repo.UpdateStatus("missing", domain.StatusSent, nil)
	req.ErrorIs(err, errors.ErrChatNotFound)
}

func TestChatRepository_DeleteConversation(t *testing.T) {
	req := require.New(t)
	repo := NewChatRepository(SetupTestDB(t), testLog, "me")

	for i := 0; i < 3; i++ {
		req.NoError(repo.Store(domain.ChatItem{ID: fmt.Sprintf("c%d", i), FromID: "a", ChannelID: "chan"}))
	}
	req.NoError(repo.Store(domain.ChatItem{ID: "keep", FromID: "a", ToID: "me"}))

	deleted, err := repo.DeleteConversation(domain.ChannelConversation("chan"))
	req.NoError(err)
	req.Len(deleted, 3)

	remaining, err := repo.List()
	req.NoError(err)
	req.Len(remaining, 1)
	req.Equal("keep", remaining[0].ID)

	one, err := repo.Delete("keep")
	req.NoError(err)
	req.Equal("keep", one.ID)
	page, _, err := repo.ListConversation(domain.PeerConversation("a"), nil, 10)
	req.NoError(err)
	req.Empty(page)
}
