package transport

import (
	"encoding/json"
	"fmt"
	"time"

	"plainchat/auth"
	"plainchat/errors"
	"plainchat/keycache"
)

// Inbound is an authenticated request, ready to dispatch.
type Inbound struct {
	SenderID  string
	ChannelID string
	Key       SelectedKey
	Request   Request
	SentAt    time.Time
}

// Verifier authenticates inbound envelopes. Every failure maps to a distinct
// sentinel and nothing is dispatched.
type Verifier struct {
	keys   keycache.IKeyCache
	window time.Duration
	now    func() time.Time
}

func NewVerifier(keys keycache.IKeyCache, window time.Duration) *Verifier {
	if window <= 0 {
		window = DefaultReplayWindow
	}
	return &Verifier{keys: keys, window: window, now: time.Now}
}

func (v *Verifier) Open(senderID, channelID string, body []byte) (Inbound, error) {
	key, err := InboundKey(v.keys, senderID, channelID)
	if err != nil {
		return Inbound{}, err
	}
	plain, err := auth.OpenWithKey(key.Key, body)
	if err != nil {
		return Inbound{}, err
	}
	env, err := Parse(plain)
	if err != nil {
		return Inbound{}, err
	}
	if age := env.Age(v.now()); age > v.window || age < -v.window {
		return Inbound{}, fmt.Errorf("%w: envelope age %s", errors.ErrStaleTimestamp, age.Round(time.Second))
	}
	publicKey, ok := v.keys.Lookup(keycache.PeerPublicKey, senderID)
	if !ok {
		return Inbound{}, fmt.Errorf("%w: %s", errors.ErrPublicKeyMissing, senderID)
	}
	if err := auth.Verify(publicKey, env.SignedPart(), env.Signature); err != nil {
		return Inbound{}, err
	}

	var req Request
	if err := json.Unmarshal(env.Body, &req); err != nil {
		return Inbound{}, fmt.Errorf("%w: %v", errors.ErrMalformedEnvelope, err)
	}
	return Inbound{
		SenderID:  senderID,
		ChannelID: channelID,
		Key:       key,
		Request:   req,
		SentAt:    time.UnixMilli(env.Timestamp),
	}, nil
}
