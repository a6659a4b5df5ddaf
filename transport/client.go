//go:generate go run go.uber.org/mock/mockgen -source=client.go -destination=../mocks/mock_transport_client.go -package=mocks
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"plainchat/auth"
	"plainchat/domain"
	"plainchat/errors"
	"plainchat/keycache"
)

type IClient interface {
	// Send never fails: every problem ends up in the DeliveryResult error.
	Send(ctx context.Context, peer domain.Peer, channelID string, req Request) domain.DeliveryResult
	Call(ctx context.Context, peer domain.Peer, channelID string, req Request) (Response, error)
	FetchFile(ctx context.Context, peer domain.Peer, channelID, fileID string, w io.Writer) (int64, error)
}

// UnreachableFunc is told about peers that could not be reached so they can be rediscovered.
type UnreachableFunc func(peerID, reason string)

type Client struct {
	self          string
	signer        Signer
	keys          keycache.IKeyCache
	http          *http.Client
	log           *slog.Logger
	tokenTTL      time.Duration
	onUnreachable UnreachableFunc
	now           func() time.Time
}

func NewClient(self string, signer Signer, keys keycache.IKeyCache, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		self:   self,
		signer: signer,
		keys:   keys,
		http: &http.Client{
			Timeout: timeout,
			// Peers serve self-signed certificates; authenticity comes from the envelope.
			Transport: &http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}},
		},
		log:      log,
		tokenTTL: time.Minute,
		now:      time.Now,
	}
}

func (c *Client) OnUnreachable(fn UnreachableFunc) { c.onUnreachable = fn }

func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) WithTokenTTL(ttl time.Duration) *Client {
	c.tokenTTL = ttl
	return c
}

func (c *Client) Send(ctx context.Context, peer domain.Peer, channelID string, req Request) domain.DeliveryResult {
	name := peer.DisplayName()
	if cached, ok := c.keys.Lookup(keycache.PeerName, peer.ID); ok && peer.Name == "" {
		name = cached
	}
	if _, err := c.Call(ctx, peer, channelID, req); err != nil {
		c.log.Debug("delivery failed", "peer_id", peer.ID, "operation", req.OperationName, "error", err)
		return domain.Undelivered(peer.ID, name, err.Error())
	}
	return domain.Delivered(peer.ID, name)
}

func (c *Client) Call(ctx context.Context, peer domain.Peer, channelID string, req Request) (Response, error) {
	key, err := OutboundKey(c.keys, peer.ID, channelID)
	if err != nil {
		return Response{}, err
	}
	if peer.BestAddress() == "" {
		return Response{}, fmt.Errorf("%w: peer %s has no address", errors.ErrTransport, peer.ID)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	sealed, err := auth.SealWithKey(key.Key, BuildEnvelope(c.signer, body, c.now()))
	if err != nil {
		return Response{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, peer.APIURL(), bytes.NewReader(sealed))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	c.setHeaders(httpReq, key)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.unreachable(peer.ID, err.Error())
		return Response{}, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading response: %v", errors.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%w: %s answered %d: %s", errors.ErrTransport, peer.ID, resp.StatusCode, truncate(raw, 120))
	}

	plain, err := auth.OpenWithKey(key.Key, raw)
	if err != nil {
		return Response{}, fmt.Errorf("%w: undecryptable response: %v", errors.ErrTransport, err)
	}
	var out Response
	if err := json.Unmarshal(plain, &out); err != nil {
		return Response{}, fmt.Errorf("%w: malformed response: %v", errors.ErrTransport, err)
	}
	return out, out.Err()
}

// FetchFile streams a stored file of peer into w, authorized by a short lived
// token signed with the key shared with that peer.
func (c *Client) FetchFile(ctx context.Context, peer domain.Peer, channelID, fileID string, w io.Writer) (int64, error) {
	key, err := OutboundKey(c.keys, peer.ID, channelID)
	if err != nil {
		return 0, err
	}
	raw, err := auth.DecodeKey(key.Key)
	if err != nil {
		return 0, err
	}
	token, err := auth.GenerateFileToken(raw, c.self, fileID, c.tokenTTL)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, peer.FileURL(fileID, token), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	c.setHeaders(httpReq, key)

	// downloads may legitimately take longer than a chat call
	client := *c.http
	client.Timeout = 0
	resp, err := client.Do(httpReq)
	if err != nil {
		c.unreachable(peer.ID, err.Error())
		return 0, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%w: %s on %s", errors.ErrFileNotFound, fileID, peer.ID)
	case resp.StatusCode == http.StatusForbidden:
		return 0, fmt.Errorf("%w: %s not shared by %s", errors.ErrUnauthorized, fileID, peer.ID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return 0, fmt.Errorf("%w: %s answered %d", errors.ErrTransport, peer.ID, resp.StatusCode)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("%w: %v", errors.ErrTransport, err)
	}
	return n, nil
}

func (c *Client) setHeaders(r *http.Request, key SelectedKey) {
	r.Header.Set(HeaderDeviceID, c.self)
	if key.ChannelID != "" {
		r.Header.Set(HeaderChannelID, key.ChannelID)
	}
}

func (c *Client) unreachable(peerID, reason string) {
	if c.onUnreachable != nil {
		c.onUnreachable(peerID, reason)
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
