package repositories

import (
	"testing"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/stretchr/testify/require"
)

func TestPeerRepository_UpsertAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewPeerRepository(SetupTestDB(t), testLog)

	_, err := repo.Get("nope")
	req.ErrorIs(err, errors.ErrPeerNotFound)

	peer := domain.Peer{ID: "p1", Name: "phone", Key: "k", PublicKey: "pub", Status: domain.PeerPaired}
	req.NoError(repo.Upsert(peer))

	got, err := repo.Get("p1")
	req.NoError(err)
	req.Equal("phone", got.Name)
	req.False(got.CreatedAt.IsZero())

	peer.Name = "renamed"
	req.NoError(repo.Upsert(peer))
	again, err := repo.Get("p1")
	req.NoError(err)
	req.Equal("renamed", again.Name)
	req.Equal(got.CreatedAt, again.CreatedAt)
}

func TestPeerRepository_UpsertChannelPeer_KeepsPairing(t *testing.T) {
	req := require.New(t)
	repo := NewPeerRepository(SetupTestDB(t), testLog)

	req.NoError(repo.Upsert(domain.Peer{ID: "p1", Name: "old", Key: "pairwise", PublicKey: "pub1", Status: domain.PeerPaired}))
	req.NoError(repo.UpsertChannelPeer(domain.Peer{ID: "p1", Name: "new", PublicKey: "pub2", Port: 9000}))

	got, err := repo.Get("p1")
	req.NoError(err)
	req.Equal(domain.PeerPaired, got.Status)
	req.Equal("pairwise", got.Key)
	req.Equal("old", got.Name)
	req.Equal("pub1", got.PublicKey)
	req.Equal(9000, got.Port)

	req.NoError(repo.UpsertChannelPeer(domain.Peer{ID: "p2", Name: "stranger", Key: "ignored", PublicKey: "pub3"}))
	stranger, err := repo.Get("p2")
	req.NoError(err)
	req.Equal(domain.PeerChannel, stranger.Status)
	req.Empty(stranger.Key)

	peers, err := repo.List()
	req.NoError(err)
	req.Len(peers, 2)

	req.NoError(repo.Delete("p2"))
	_, err = repo.Get("p2")
	req.ErrorIs(err, errors.ErrPeerNotFound)
}

func TestPeerRepository_UpsertChannelPeer_FillsOnlyEmptyFields(t *testing.T) {
	req := require.New(t)
	repo := NewPeerRepository(SetupTestDB(t), testLog)

	req.NoError(repo.UpsertChannelPeer(domain.Peer{ID: "p1", Name: "first"}))
	req.NoError(repo.UpsertChannelPeer(domain.Peer{ID: "p1", Name: "second", PublicKey: "pub", DeviceType: domain.DevicePhone}))

	got, err := repo.Get("p1")
	req.NoError(err)
	req.Equal("first", got.Name)
	req.Equal("pub", got.PublicKey)
	req.Equal(domain.DevicePhone, got.DeviceType)

	req.NoError(repo.UpsertChannelPeer(domain.Peer{ID: "p1", PublicKey: "attacker"}))
	again, err := repo.Get("p1")
	req.NoError(err)
	req.Equal("pub", again.PublicKey)
}
