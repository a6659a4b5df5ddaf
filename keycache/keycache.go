//go:generate go run go.uber.org/mock/mockgen -source=keycache.go -destination=../mocks/mock_key_cache.go -package=mocks
package keycache

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"plainchat/domain"
	"plainchat/repositories"
)

type Kind int

const (
	PeerKey Kind = iota
	PeerPublicKey
	ChannelKey
	PeerName
)

func (k Kind) String() string {
	switch k {
	case PeerKey:
		return "peer_key"
	case PeerPublicKey:
		return "peer_public_key"
	case ChannelKey:
		return "channel_key"
	case PeerName:
		return "peer_name"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type IKeyCache interface {
	Refresh(ctx context.Context) error
	Lookup(kind Kind, id string) (string, bool)
}

// Snapshot is immutable once published.
type Snapshot struct {
	peerKeys    map[string]string
	publicKeys  map[string]string
	channelKeys map[string]string
	names       map[string]string
	BuiltAt     time.Time
}

func (s *Snapshot) Lookup(kind Kind, id string) (string, bool) {
	var m map[string]string
	switch kind {
	case PeerKey:
		m = s.peerKeys
	case PeerPublicKey:
		m = s.publicKeys
	case ChannelKey:
		m = s.channelKeys
	case PeerName:
		m = s.names
	}
	v, ok := m[id]
	return v, ok && v != ""
}

// KeyCache serves key lookups from a snapshot swapped atomically on Refresh.
// Readers never block; a Refresh that fails keeps the previous snapshot.
type KeyCache struct {
	peers    repositories.IPeerRepository
	channels repositories.IChannelRepository
	log      *slog.Logger
	current  atomic.Pointer[Snapshot]
}

func New(peers repositories.IPeerRepository, channels repositories.IChannelRepository, log *slog.Logger) *KeyCache {
	c := &KeyCache{peers: peers, channels: channels, log: log}
	c.current.Store(&Snapshot{})
	return c
}

func (c *KeyCache) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	peers, err := c.peers.List()
	if err != nil {
		return fmt.Errorf("listing peers: %w", err)
	}
	channels, err := c.channels.List()
	if err != nil {
		return fmt.Errorf("listing channels: %w", err)
	}

	snap := build(peers, channels)
	c.current.Store(snap)
	c.log.Debug("key cache refreshed",
		"peer_keys", len(snap.peerKeys),
		"public_keys", len(snap.publicKeys),
		"channel_keys", len(snap.channelKeys))
	return nil
}

func build(peers []domain.Peer, channels []domain.Channel) *Snapshot {
	snap := &Snapshot{
		peerKeys:    make(map[string]string, len(peers)),
		publicKeys:  make(map[string]string, len(peers)),
		channelKeys: make(map[string]string, len(channels)),
		names:       make(map[string]string, len(peers)),
		BuiltAt:     time.Now().UTC(),
	}
	for _, p := range peers {
		if p.HasPairwiseKey() {
			snap.peerKeys[p.ID] = p.Key
		}
		if p.PublicKey != "" {
			snap.publicKeys[p.ID] = p.PublicKey
		}
		snap.names[p.ID] = p.DisplayName()
	}
	for _, ch := range channels {
		if ch.Key != "" {
			snap.channelKeys[ch.ID] = ch.Key
		}
	}
	return snap
}

func (c *KeyCache) Lookup(kind Kind, id string) (string, bool) {
	return c.current.Load().Lookup(kind, id)
}

func (c *KeyCache) Snapshot() *Snapshot { return c.current.Load() }
