package membership

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"plainchat/domain"
	"plainchat/domain/event"
	"plainchat/errors"
	"plainchat/keycache"
	"plainchat/repositories"
	"plainchat/transport"

	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (r *recorder) Publish(evt event.DomainEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recorder) last() event.DomainEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

type purger struct{ channels []string }

func (p *purger) DeleteChannelChats(_ context.Context, channelID string) error {
	p.channels = append(p.channels, channelID)
	return nil
}

// network delivers system messages between in-process nodes.
type network struct {
	nodes map[string]*testNode
	down  map[string]bool
}

type netClient struct {
	net  *network
	from string
}

func (c netClient) Send(context.Context, domain.Peer, string, transport.Request) domain.DeliveryResult {
	return domain.DeliveryResult{}
}

func (c netClient) FetchFile(context.Context, domain.Peer, string, string, io.Writer) (int64, error) {
	return 0, nil
}

func (c netClient) Call(ctx context.Context, peer domain.Peer, _ string, req transport.Request) (transport.Response, error) {
	node, ok := c.net.nodes[peer.ID]
	if !ok || c.net.down[peer.ID] {
		return transport.Response{}, fmt.Errorf("%w: %s unreachable", errors.ErrTransport, peer.ID)
	}
	var vars transport.SystemMessageVariables
	if err := req.Decode(&vars); err != nil {
		return transport.Response{}, err
	}
	if err := node.protocol.Handle(ctx, c.from, vars.Type, []byte(vars.Payload)); err != nil {
		return transport.Response{}, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	return transport.Response{}, nil
}

type testNode struct {
	id       string
	protocol *Protocol
	channels *repositories.ChannelRepository
	peers    *repositories.PeerRepository
	keys     *keycache.KeyCache
	events   *recorder
	purged   *purger
}

func (n *testNode) channel(t *testing.T, id string) domain.Channel {
	t.Helper()
	ch, err := n.channels.Get(id)
	require.NoError(t, err)
	return ch
}

func newNetwork(t *testing.T, ids ...string) *network {
	net := &network{nodes: map[string]*testNode{}, down: map[string]bool{}}
	for _, id := range ids {
		db, err := repositories.OpenInMemory()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		n := &testNode{
			id:       id,
			channels: repositories.NewChannelRepository(db, slog.Default()),
			peers:    repositories.NewPeerRepository(db, slog.Default()),
			events:   &recorder{},
			purged:   &purger{},
		}
		n.keys = keycache.New(n.peers, n.channels, slog.Default())
		self := Self{ID: id, Name: "device " + id, PublicKey: "pub-" + id, DeviceType: domain.DevicePhone}
		n.protocol = NewProtocol(self, n.channels, n.peers, n.keys, netClient{net: net, from: id}, n.purged, n.events, slog.Default())
		net.nodes[id] = n
	}
	return net
}

// pair makes a and b known to each other as paired peers.
func (net *network) pair(t *testing.T, a, b string) {
	for _, p := range [][2]string{{a, b}, {b, a}} {
		err := net.nodes[p[0]].peers.Upsert(domain.Peer{
			ID:        p[1],
			Name:      "device " + p[1],
			Addresses: []string{"10.0.0.1"},
			Port:      8443,
			Key:       "pairwise-" + a + b,
			PublicKey: "pub-" + p[1],
			Status:    domain.PeerPaired,
		})
		require.NoError(t, err)
	}
}

func payload(t *testing.T, v any) []byte {
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func memberStatus(ch domain.Channel, id string) domain.MemberStatus {
	m, _ := ch.FindMember(id)
	return m.Status
}

func TestProtocol_InviteAndAccept(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B")
	net.pair(t, "A", "B")
	a, b := net.nodes["A"], net.nodes["B"]

	created, err := a.protocol.CreateChannel(ctx, " family ")
	req.NoError(err)
	req.Equal("family", created.Name)
	req.Equal(int64(1), created.Version)

	_, err = a.protocol.Invite(ctx, created.ID, "B")
	req.NoError(err)

	invited := b.channel(t, created.ID)
	req.Equal("A", invited.Owner)
	req.Equal(int64(2), invited.Version)
	req.Equal(domain.MemberPending, memberStatus(invited, "B"))
	req.Equal(created.Key, invited.Key)
	key, ok := b.keys.Lookup(keycache.ChannelKey, created.ID)
	req.True(ok)
	req.Equal(created.Key, key)
	req.IsType(event.ChannelInviteReceived{}, b.events.last())

	req.NoError(b.protocol.AcceptInvite(ctx, created.ID))

	owned := a.channel(t, created.ID)
	req.Equal(int64(3), owned.Version)
	req.Equal(domain.MemberJoined, memberStatus(owned, "B"))
	// the owner's update came back to the invitee
	joined := b.channel(t, created.ID)
	req.Equal(int64(3), joined.Version)
	req.Equal(domain.MemberJoined, memberStatus(joined, "B"))

	// accepting twice changes nothing
	req.NoError(b.protocol.AcceptInvite(ctx, created.ID))
	req.Equal(int64(3), a.channel(t, created.ID).Version)
}

func TestProtocol_InviteSharesMemberPeers(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B", "C")
	net.pair(t, "A", "B")
	net.pair(t, "A", "C")
	a, c := net.nodes["A"], net.nodes["C"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	_, err = a.protocol.Invite(ctx, ch.ID, "B")
	req.NoError(err)
	req.NoError(net.nodes["B"].protocol.AcceptInvite(ctx, ch.ID))
	_, err = a.protocol.Invite(ctx, ch.ID, "C")
	req.NoError(err)

	// C never paired with B but learns about it from the invite
	peer, err := c.peers.Get("B")
	req.NoError(err)
	req.Equal(domain.PeerChannel, peer.Status)
	req.Equal("pub-B", peer.PublicKey)
	req.Empty(peer.Key)
	pub, ok := c.keys.Lookup(keycache.PeerPublicKey, "B")
	req.True(ok)
	req.Equal("pub-B", pub)

	// the paired record of A is not downgraded
	owner, err := c.peers.Get("A")
	req.NoError(err)
	req.Equal(domain.PeerPaired, owner.Status)
}

// A receiver at version 5 ignores version 4 and applies version 6.
func TestProtocol_StaleUpdateIgnored(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "B")
	b := net.nodes["B"]
	req.NoError(b.peers.Upsert(domain.Peer{ID: "A", Status: domain.PeerPaired, Key: "k", PublicKey: "pub-A"}))
	req.NoError(b.channels.Create(domain.Channel{
		ID: "c1", Name: "v5", Owner: "A", Key: "ck", Version: 5,
		Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}},
	}))

	stale := Update{ChannelID: "c1", ChannelName: "v4", Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}}, Version: 4}
	req.NoError(b.protocol.Handle(ctx, "A", TypeUpdate, payload(t, stale)))
	req.Equal("v5", b.channel(t, "c1").Name)
	req.Equal(int64(5), b.channel(t, "c1").Version)

	same := stale
	same.Version = 5
	req.NoError(b.protocol.Handle(ctx, "A", TypeUpdate, payload(t, same)))
	req.Equal("v5", b.channel(t, "c1").Name)

	fresh := Update{
		ChannelID:   "c1",
		ChannelName: "v6",
		Members:     []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}, {ID: "D", Status: domain.MemberPending}},
		MemberPeers: []MemberPeer{{ID: "D", Name: "dee", PublicKey: "pub-D", IP: "10.0.0.4,10.0.0.5", Port: 9000}},
		Version:     6,
	}
	req.NoError(b.protocol.Handle(ctx, "A", TypeUpdate, payload(t, fresh)))
	updated := b.channel(t, "c1")
	req.Equal("v6", updated.Name)
	req.Equal(int64(6), updated.Version)
	req.Len(updated.Members, 3)

	d, err := b.peers.Get("D")
	req.NoError(err)
	req.Equal([]string{"10.0.0.4", "10.0.0.5"}, d.Addresses)
	evt, ok := b.events.last().(event.ChannelUpdated)
	req.True(ok)
	req.Equal(int64(6), evt.Channel.Version)
}

func TestProtocol_OnlyOwnerMayUpdateOrKick(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "B")
	b := net.nodes["B"]
	req.NoError(b.channels.Create(domain.Channel{
		ID: "c1", Name: "team", Owner: "A", Key: "ck", Version: 2,
		Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}, {ID: "C", Status: domain.MemberJoined}},
	}))

	update := Update{ChannelID: "c1", ChannelName: "hijacked", Members: []domain.ChannelMember{{ID: "C", Status: domain.MemberJoined}}, Version: 99}
	err := b.protocol.Handle(ctx, "C", TypeUpdate, payload(t, update))
	req.ErrorIs(err, errors.ErrUnauthorized)
	req.Equal("team", b.channel(t, "c1").Name)

	err = b.protocol.Handle(ctx, "C", TypeKick, payload(t, Kick{ChannelID: "c1"}))
	req.ErrorIs(err, errors.ErrUnauthorized)
	req.Equal("team", b.channel(t, "c1").Name)
	req.Empty(b.purged.channels)
}

func TestProtocol_OwnerOnlyMessagesOnMemberDevice(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "B")
	b := net.nodes["B"]
	req.NoError(b.channels.Create(domain.Channel{
		ID: "c1", Owner: "A", Key: "ck", Version: 2,
		Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}, {ID: "C", Status: domain.MemberJoined}},
	}))

	for _, msgType := range []string{TypeInviteAccept, TypeInviteDecline, TypeLeave} {
		err := b.protocol.Handle(ctx, "C", msgType, payload(t, Leave{ChannelID: "c1"}))
		req.ErrorIs(err, errors.ErrUnauthorized, msgType)
	}
	req.Len(b.channel(t, "c1").Members, 3)
	req.Equal(int64(2), b.channel(t, "c1").Version)
}

func TestProtocol_InviteIgnored(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "B")
	b := net.nodes["B"]

	invite := Invite{ChannelID: "c1", ChannelName: "x", Key: "ck", Owner: "A", Version: 1,
		Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberPending}}}

	// unknown sender
	req.Error(b.protocol.Handle(ctx, "A", TypeInvite, payload(t, invite)))
	_, err := b.channels.Get("c1")
	req.ErrorIs(err, errors.ErrChannelNotFound)

	req.NoError(b.peers.Upsert(domain.Peer{ID: "A", Status: domain.PeerPaired, Key: "k"}))
	req.NoError(b.protocol.Handle(ctx, "A", TypeInvite, payload(t, invite)))
	req.Equal("x", b.channel(t, "c1").Name)

	// already known locally
	again := invite
	again.ChannelName = "y"
	req.NoError(b.protocol.Handle(ctx, "A", TypeInvite, payload(t, again)))
	req.Equal("x", b.channel(t, "c1").Name)

	// sent by someone else than the announced owner
	req.NoError(b.peers.Upsert(domain.Peer{ID: "C", Status: domain.PeerPaired, Key: "k"}))
	spoofed := invite
	spoofed.ChannelID = "c2"
	err = b.protocol.Handle(ctx, "C", TypeInvite, payload(t, spoofed))
	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestProtocol_InvalidMessages(t *testing.T) {
	req := require.New(t)
	net := newNetwork(t, "B")
	b := net.nodes["B"]

	req.ErrorIs(b.protocol.Handle(context.Background(), "A", "channel_party", []byte(`{}`)), errors.ErrInvalidPayload)
	req.ErrorIs(b.protocol.Handle(context.Background(), "A", TypeKick, []byte(`not json`)), errors.ErrInvalidPayload)
	req.ErrorIs(b.protocol.Handle(context.Background(), "A", TypeKick, []byte(`{}`)), errors.ErrInvalidPayload)
	req.ErrorIs(b.protocol.Handle(context.Background(), "A", TypeInvite, payload(t, Invite{ChannelID: "c1", Key: "k"})), errors.ErrInvalidPayload)
}

// Owner removes B: B deletes the channel and its chats, C learns the new membership.
func TestProtocol_KickRemovesChannelAndChats(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B", "C")
	net.pair(t, "A", "B")
	net.pair(t, "A", "C")
	a, b, c := net.nodes["A"], net.nodes["B"], net.nodes["C"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	for _, id := range []string{"B", "C"} {
		_, err = a.protocol.Invite(ctx, ch.ID, id)
		req.NoError(err)
		req.NoError(net.nodes[id].protocol.AcceptInvite(ctx, ch.ID))
	}
	before := a.channel(t, ch.ID).Version

	kicked, err := a.protocol.Kick(ctx, ch.ID, "B")
	req.NoError(err)
	req.False(kicked.HasMember("B"))
	req.Equal(before+1, kicked.Version)

	_, err = b.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)
	req.Equal([]string{ch.ID}, b.purged.channels)
	req.Equal(event.ChannelRemoved{ChannelID: ch.ID, Reason: "kicked"}, b.events.last())
	_, ok := b.keys.Lookup(keycache.ChannelKey, ch.ID)
	req.False(ok)

	req.False(c.channel(t, ch.ID).HasMember("B"))
	req.Equal(kicked.Version, c.channel(t, ch.ID).Version)
}

func TestProtocol_LeaveAndDelete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B", "C")
	net.pair(t, "A", "B")
	net.pair(t, "A", "C")
	a, b, c := net.nodes["A"], net.nodes["B"], net.nodes["C"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	for _, id := range []string{"B", "C"} {
		_, err = a.protocol.Invite(ctx, ch.ID, id)
		req.NoError(err)
		req.NoError(net.nodes[id].protocol.AcceptInvite(ctx, ch.ID))
	}

	req.ErrorIs(a.protocol.Leave(ctx, ch.ID), errors.ErrUnauthorized)

	req.NoError(c.protocol.Leave(ctx, ch.ID))
	_, err = c.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)
	req.False(a.channel(t, ch.ID).HasMember("C"))
	req.False(b.channel(t, ch.ID).HasMember("C"))

	req.NoError(a.protocol.DeleteChannel(ctx, ch.ID))
	_, err = a.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)
	_, err = b.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)
	req.Equal(event.ChannelRemoved{ChannelID: ch.ID, Reason: "kicked"}, b.events.last())
}

func TestProtocol_DeclineInvite(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B")
	net.pair(t, "A", "B")
	a, b := net.nodes["A"], net.nodes["B"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	_, err = a.protocol.Invite(ctx, ch.ID, "B")
	req.NoError(err)

	req.NoError(b.protocol.DeclineInvite(ctx, ch.ID))
	_, err = b.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)
	req.False(a.channel(t, ch.ID).HasMember("B"))
}

func TestProtocol_PendingInviteRetried(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B")
	net.pair(t, "A", "B")
	a, b := net.nodes["A"], net.nodes["B"]
	net.down["B"] = true

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	ch, err = a.protocol.Invite(ctx, ch.ID, "B")
	req.NoError(err)
	req.Equal(domain.MemberPending, memberStatus(ch, "B"))
	_, err = b.channels.Get(ch.ID)
	req.ErrorIs(err, errors.ErrChannelNotFound)

	net.down["B"] = false
	req.Equal(1, a.protocol.RetryPendingInvites(ctx, "B"))
	req.Equal(domain.MemberPending, memberStatus(b.channel(t, ch.ID), "B"))
	req.Zero(a.protocol.RetryPendingInvites(ctx, "nobody"))
}

func TestProtocol_RenameAndOwnership(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B")
	net.pair(t, "A", "B")
	a, b := net.nodes["A"], net.nodes["B"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	_, err = a.protocol.Invite(ctx, ch.ID, "B")
	req.NoError(err)

	renamed, err := a.protocol.Rename(ctx, ch.ID, "crew")
	req.NoError(err)
	req.Equal("crew", b.channel(t, ch.ID).Name)
	req.Equal(renamed.Version, b.channel(t, ch.ID).Version)

	_, err = b.protocol.Rename(ctx, ch.ID, "mine")
	req.ErrorIs(err, errors.ErrUnauthorized)
	_, err = b.protocol.Kick(ctx, ch.ID, "A")
	req.ErrorIs(err, errors.ErrUnauthorized)
	_, err = a.protocol.Invite(ctx, ch.ID, "A")
	req.ErrorIs(err, errors.ErrInvalidPayload)
	_, err = a.protocol.CreateChannel(ctx, "  ")
	req.ErrorIs(err, errors.ErrInvalidPayload)
}

func TestProtocol_UpdateCannotReplaceKnownPublicKey(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "B")
	b := net.nodes["B"]
	req.NoError(b.peers.Upsert(domain.Peer{ID: "A", Status: domain.PeerPaired, Key: "k", PublicKey: "pub-A"}))
	req.NoError(b.peers.Upsert(domain.Peer{ID: "C", Name: "cee", Status: domain.PeerPaired, Key: "kc", PublicKey: "pub-C"}))
	req.NoError(b.channels.Create(domain.Channel{
		ID: "c1", Name: "team", Owner: "A", Key: "ck", Version: 1,
		Members: []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}},
	}))

	update := Update{
		ChannelID:   "c1",
		ChannelName: "team",
		Members:     []domain.ChannelMember{{ID: "A", Status: domain.MemberJoined}, {ID: "B", Status: domain.MemberJoined}, {ID: "C", Status: domain.MemberPending}},
		MemberPeers: []MemberPeer{{ID: "C", Name: "mallory", PublicKey: "attacker-pub"}},
		Version:     2,
	}
	req.NoError(b.protocol.Handle(ctx, "A", TypeUpdate, payload(t, update)))
	req.Equal(int64(2), b.channel(t, "c1").Version)

	c, err := b.peers.Get("C")
	req.NoError(err)
	req.Equal(domain.PeerPaired, c.Status)
	req.Equal("pub-C", c.PublicKey)
	req.Equal("cee", c.Name)
	pub, ok := b.keys.Lookup(keycache.PeerPublicKey, "C")
	req.True(ok)
	req.Equal("pub-C", pub)
}

func TestProtocol_AcceptRequiresPendingInvite(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	net := newNetwork(t, "A", "B", "C")
	net.pair(t, "A", "B")
	net.pair(t, "A", "C")
	a := net.nodes["A"]

	ch, err := a.protocol.CreateChannel(ctx, "team")
	req.NoError(err)
	_, err = a.protocol.Invite(ctx, ch.ID, "B")
	req.NoError(err)
	req.NoError(net.nodes["B"].protocol.AcceptInvite(ctx, ch.ID))
	_, err = a.protocol.Kick(ctx, ch.ID, "B")
	req.NoError(err)
	version := a.channel(t, ch.ID).Version

	accept := InviteAccept{ChannelID: ch.ID, Name: "device B", PublicKey: "pub-B"}
	req.ErrorIs(a.protocol.Handle(ctx, "B", TypeInviteAccept, payload(t, accept)), errors.ErrUnauthorized)

	accept.Name = "device C"
	accept.PublicKey = "pub-C"
	req.ErrorIs(a.protocol.Handle(ctx, "C", TypeInviteAccept, payload(t, accept)), errors.ErrUnauthorized)

	owned := a.channel(t, ch.ID)
	req.False(owned.HasMember("B"))
	req.False(owned.HasMember("C"))
	req.Equal(version, owned.Version)
}
