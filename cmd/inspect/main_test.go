package main

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"plainchat/domain"
	"plainchat/repositories"

	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	req := require.New(t)
	db, err := repositories.OpenInMemory()
	req.NoError(err)
	defer db.Close()
	log := slog.Default()

	req.NoError(repositories.NewPeerRepository(db, log).Upsert(domain.Peer{
		ID: "alice", Name: "Alice's phone", Addresses: []string{"192.168.1.12"}, Port: 8443,
		DeviceType: domain.DevicePhone, Status: domain.PeerPaired,
	}))
	req.NoError(repositories.NewChatRepository(db, log, "me").Store(domain.ChatItem{
		ID: "0123456789", FromID: "me", ToID: "alice", Content: domain.TextContent("lunch?"),
		Status: domain.StatusFailed, CreatedAt: time.Now(),
	}))

	var out bytes.Buffer
	req.NoError(inspect(&out, db, "peers", false))
	req.Contains(out.String(), "Alice's phone")
	req.Contains(out.String(), "192.168.1.12")
	req.Contains(out.String(), "paired")

	out.Reset()
	req.NoError(inspect(&out, db, "chats", false))
	req.Contains(out.String(), "01234567")
	req.NotContains(out.String(), "0123456789")
	req.Contains(out.String(), "lunch?")
	req.Contains(out.String(), "p-alice")

	out.Reset()
	req.NoError(inspect(&out, db, "downloads", false))
	req.Error(inspect(&out, db, "rooms", false))
}
