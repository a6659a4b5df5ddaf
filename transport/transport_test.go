package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"plainchat/auth"
	"plainchat/domain"
	"plainchat/errors"
	"plainchat/filestore"
	"plainchat/keycache"
	"plainchat/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// staticKeys is a fixed key cache.
type staticKeys map[keycache.Kind]map[string]string

func (s staticKeys) Refresh(context.Context) error { return nil }

func (s staticKeys) Lookup(kind keycache.Kind, id string) (string, bool) {
	v, ok := s[kind][id]
	return v, ok && v != ""
}

func (s staticKeys) set(kind keycache.Kind, id, value string) staticKeys {
	if s[kind] == nil {
		s[kind] = map[string]string{}
	}
	s[kind][id] = value
	return s
}

// fiberTransport routes client requests straight into a fiber app.
type fiberTransport struct{ app *fiber.App }

func (f fiberTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	return f.app.Test(r, -1)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("connection refused")
}

type node struct {
	id     *auth.Identity
	keys   staticKeys
	server *Server
	client *Client
	got    []Inbound
}

func newNode(t *testing.T, files filestore.IFileStore) *node {
	t.Helper()
	id, err := auth.NewIdentity(t.Name())
	require.NoError(t, err)
	n := &node{id: id, keys: staticKeys{}}
	n.server = NewServer(NewVerifier(n.keys, DefaultReplayWindow), n.keys, files, 4*1024*1024, slog.Default())
	n.server.Handle(OpCreateChatItem, func(_ context.Context, in Inbound) (any, error) {
		n.got = append(n.got, in)
		return true, nil
	})
	n.client = NewClient(id.DeviceID, id, n.keys, time.Second, slog.Default())
	return n
}

// pair makes a and b know each other with a pairwise key.
func pair(t *testing.T, a, b *node) {
	key, err := auth.NewKey()
	require.NoError(t, err)
	a.keys.set(keycache.PeerKey, b.id.DeviceID, key).set(keycache.PeerPublicKey, b.id.DeviceID, b.id.EncodedPublicKey())
	b.keys.set(keycache.PeerKey, a.id.DeviceID, key).set(keycache.PeerPublicKey, a.id.DeviceID, a.id.EncodedPublicKey())
}

func peerOf(n *node) domain.Peer {
	return domain.Peer{ID: n.id.DeviceID, Name: "peer", Addresses: []string{"192.168.1.2"}, Port: 8443}
}

func chatRequest(t *testing.T, text string) Request {
	content, err := json.Marshal(domain.TextContent(text))
	require.NoError(t, err)
	req, err := NewCreateChatItemRequest(ChatItemVariables{ID: "m1", Content: string(content), CreatedAt: time.Now().UnixMilli()})
	require.NoError(t, err)
	return req
}

func TestEnvelope_BuildAndParse(t *testing.T) {
	req := require.New(t)
	id, err := auth.NewIdentity("x")
	req.NoError(err)

	body := []byte(`{"a":"x|y|z"}`)
	now := time.UnixMilli(1_700_000_000_123)
	env, err := Parse(BuildEnvelope(id, body, now))
	req.NoError(err)
	req.Equal(int64(1_700_000_000_123), env.Timestamp)
	req.Equal(body, env.Body)
	req.NoError(auth.Verify(id.EncodedPublicKey(), env.SignedPart(), env.Signature))

	_, err = Parse([]byte("only|two"))
	req.ErrorIs(err, errors.ErrMalformedEnvelope)
	_, err = Parse([]byte("sig|notanumber|{}"))
	req.ErrorIs(err, errors.ErrMalformedEnvelope)
}

func TestClientServer_PairwiseDelivery(t *testing.T) {
	req := require.New(t)
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	a.client.WithHTTPClient(&http.Client{Transport: fiberTransport{b.server.App()}})

	seen := ""
	b.server.OnSeen(func(id string) { seen = id })

	result := a.client.Send(context.Background(), peerOf(b), "", chatRequest(t, "hello"))
	req.True(result.OK(), "error: %v", result.Error)
	req.Equal(b.id.DeviceID, result.PeerID)
	req.Len(b.got, 1)
	req.Equal(a.id.DeviceID, b.got[0].SenderID)
	req.Empty(b.got[0].ChannelID)
	req.Equal(a.id.DeviceID, seen)

	var vars ChatItemVariables
	req.NoError(b.got[0].Request.Decode(&vars))
	req.Equal("m1", vars.ID)
}

func TestClientServer_ChannelKeyFallback(t *testing.T) {
	req := require.New(t)
	a, c := newNode(t, nil), newNode(t, nil)
	channelKey, err := auth.NewKey()
	req.NoError(err)
	a.keys.set(keycache.ChannelKey, "chan", channelKey)
	c.keys.set(keycache.ChannelKey, "chan", channelKey).set(keycache.PeerPublicKey, a.id.DeviceID, a.id.EncodedPublicKey())
	a.client.WithHTTPClient(&http.Client{Transport: fiberTransport{c.server.App()}})

	result := a.client.Send(context.Background(), peerOf(c), "chan", chatRequest(t, "to the group"))
	req.True(result.OK(), "error: %v", result.Error)
	req.Len(c.got, 1)
	req.Equal("chan", c.got[0].ChannelID)

	// without a channel there is no usable key
	result = a.client.Send(context.Background(), peerOf(c), "", chatRequest(t, "nope"))
	req.False(result.OK())
	req.Contains(*result.Error, errors.ErrKeyUnavailable.Error())
}

func post(t *testing.T, app *fiber.App, senderID, channelID string, body []byte) int {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, PathGraphQL, bytes.NewReader(body))
	r.Header.Set(HeaderDeviceID, senderID)
	if channelID != "" {
		r.Header.Set(HeaderChannelID, channelID)
	}
	resp, err := app.Test(r, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func sealedEnvelope(t *testing.T, signer Signer, key string, at time.Time) []byte {
	t.Helper()
	body, err := json.Marshal(chatRequest(t, "hi"))
	require.NoError(t, err)
	sealed, err := auth.SealWithKey(key, BuildEnvelope(signer, body, at))
	require.NoError(t, err)
	return sealed
}

// An envelope signed 301 seconds ago is rejected and never dispatched.
func TestServer_RejectsStaleEnvelope(t *testing.T) {
	req := require.New(t)
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	key, _ := b.keys.Lookup(keycache.PeerKey, a.id.DeviceID)

	status := post(t, b.server.App(), a.id.DeviceID, "", sealedEnvelope(t, a.id, key, time.Now().Add(-301*time.Second)))
	req.Equal(fiber.StatusBadRequest, status)
	req.Empty(b.got)

	status = post(t, b.server.App(), a.id.DeviceID, "", sealedEnvelope(t, a.id, key, time.Now().Add(301*time.Second)))
	req.Equal(fiber.StatusBadRequest, status)

	status = post(t, b.server.App(), a.id.DeviceID, "", sealedEnvelope(t, a.id, key, time.Now().Add(-299*time.Second)))
	req.Equal(fiber.StatusOK, status)
	req.Len(b.got, 1)
}

func TestServer_Rejections(t *testing.T) {
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	key, _ := b.keys.Lookup(keycache.PeerKey, a.id.DeviceID)
	impostor, err := auth.NewIdentity("impostor")
	require.NoError(t, err)
	otherKey, err := auth.NewKey()
	require.NoError(t, err)

	stranger := newNode(t, nil)
	b.keys.set(keycache.PeerKey, stranger.id.DeviceID, key)

	tests := []struct {
		name    string
		sender  string
		channel string
		body    []byte
		status  int
	}{
		{"bad signature", a.id.DeviceID, "", sealedEnvelope(t, impostor, key, time.Now()), fiber.StatusUnauthorized},
		{"wrong key", a.id.DeviceID, "", sealedEnvelope(t, a.id, otherKey, time.Now()), fiber.StatusUnauthorized},
		{"unknown sender", "nobody", "", sealedEnvelope(t, a.id, key, time.Now()), fiber.StatusUnauthorized},
		{"unknown channel", a.id.DeviceID, "ghost", sealedEnvelope(t, a.id, key, time.Now()), fiber.StatusUnauthorized},
		{"missing public key", stranger.id.DeviceID, "", sealedEnvelope(t, stranger.id, key, time.Now()), fiber.StatusInternalServerError},
		{"garbage", a.id.DeviceID, "", []byte("garbage"), fiber.StatusUnauthorized},
		{"missing sender header", "", "", sealedEnvelope(t, a.id, key, time.Now()), fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.status, post(t, b.server.App(), tt.sender, tt.channel, tt.body))
		})
	}
	require.Empty(t, b.got)
}

func TestServer_MalformedClearText(t *testing.T) {
	req := require.New(t)
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	key, _ := b.keys.Lookup(keycache.PeerKey, a.id.DeviceID)

	sealed, err := auth.SealWithKey(key, []byte("no separators here"))
	req.NoError(err)
	req.Equal(fiber.StatusBadRequest, post(t, b.server.App(), a.id.DeviceID, "", sealed))

	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	body := []byte("not json")
	signed := a.id.Sign(append([]byte(ts), body...))
	sealed, err = auth.SealWithKey(key, []byte(signed+"|"+ts+"|"+string(body)))
	req.NoError(err)
	req.Equal(fiber.StatusBadRequest, post(t, b.server.App(), a.id.DeviceID, "", sealed))
}

func TestClient_RemoteErrorsAndUnknownOperation(t *testing.T) {
	req := require.New(t)
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	a.client.WithHTTPClient(&http.Client{Transport: fiberTransport{b.server.App()}})
	b.server.Handle("boom", func(context.Context, Inbound) (any, error) { return nil, errors.ErrUnauthorized })

	r, err := NewRequest("boom", "mutation boom", map[string]string{})
	req.NoError(err)
	result := a.client.Send(context.Background(), peerOf(b), "", r)
	req.False(result.OK())
	req.Contains(*result.Error, errors.ErrUnauthorized.Error())

	r, err = NewRequest("nope", "mutation nope", map[string]string{})
	req.NoError(err)
	_, err = a.client.Call(context.Background(), peerOf(b), "", r)
	req.ErrorIs(err, errors.ErrTransport)
}

func TestClient_UnreachablePeer(t *testing.T) {
	req := require.New(t)
	a, b := newNode(t, nil), newNode(t, nil)
	pair(t, a, b)
	a.client.WithHTTPClient(&http.Client{Transport: failingTransport{}})

	var reported string
	a.client.OnUnreachable(func(peerID, _ string) { reported = peerID })

	result := a.client.Send(context.Background(), peerOf(b), "", chatRequest(t, "x"))
	req.False(result.OK())
	req.Equal(b.id.DeviceID, reported)

	noAddress := peerOf(b)
	noAddress.Addresses = nil
	result = a.client.Send(context.Background(), noAddress, "", chatRequest(t, "x"))
	req.False(result.OK())
}

func TestClientServer_FetchFile(t *testing.T) {
	req := require.New(t)
	db, err := repositories.OpenInMemory()
	req.NoError(err)
	defer db.Close()
	store, err := filestore.NewStore(filepath.Join(t.TempDir(), "files"), repositories.NewFileRepository(db, slog.Default()), slog.Default())
	req.NoError(err)

	a, b := newNode(t, nil), newNode(t, store)
	pair(t, a, b)
	a.client.WithHTTPClient(&http.Client{Transport: fiberTransport{b.server.App()}})

	data := []byte("attachment bytes")
	stored, err := store.ImportBytes(context.Background(), data, "text/plain")
	req.NoError(err)
	private, err := store.ImportBytes(context.Background(), []byte("never shared"), "text/plain")
	req.NoError(err)

	// nothing is served until sharing is known
	_, err = a.client.FetchFile(context.Background(), peerOf(b), "", stored.ID, &bytes.Buffer{})
	req.ErrorIs(err, errors.ErrUnauthorized)

	b.server.AuthorizeFiles(func(peerID, channelID, fileID string) bool {
		return peerID == a.id.DeviceID && channelID == "" && fileID != private.ID
	})

	var buf bytes.Buffer
	n, err := a.client.FetchFile(context.Background(), peerOf(b), "", stored.ID, &buf)
	req.NoError(err)
	req.Equal(int64(len(data)), n)
	req.Equal(data, buf.Bytes())

	_, err = a.client.FetchFile(context.Background(), peerOf(b), "", "0000missing", &bytes.Buffer{})
	req.ErrorIs(err, errors.ErrFileNotFound)

	_, err = a.client.FetchFile(context.Background(), peerOf(b), "", private.ID, &bytes.Buffer{})
	req.ErrorIs(err, errors.ErrUnauthorized)

	// a token minted by someone without the shared key is refused
	other, err := auth.NewKey()
	req.NoError(err)
	raw, _ := auth.DecodeKey(other)
	token, err := auth.GenerateFileToken(raw, a.id.DeviceID, stored.ID, time.Minute)
	req.NoError(err)
	r := httptest.NewRequest(http.MethodGet, PathFiles+"?id="+stored.ID+"&token="+token, nil)
	r.Header.Set(HeaderDeviceID, a.id.DeviceID)
	resp, err := b.server.App().Test(r, -1)
	req.NoError(err)
	req.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}
