package transport

import (
	"fmt"

	"plainchat/errors"
	"plainchat/keycache"
)

// SelectedKey is the symmetric key chosen for one exchange.
// ChannelID is set exactly when the channel key was chosen and is what goes in c-cid.
type SelectedKey struct {
	Key       string
	ChannelID string
}

// OutboundKey prefers the pairwise key of the peer and falls back to the key
// of the channel the message belongs to.
func OutboundKey(keys keycache.IKeyCache, peerID, channelID string) (SelectedKey, error) {
	if key, ok := keys.Lookup(keycache.PeerKey, peerID); ok {
		return SelectedKey{Key: key}, nil
	}
	if channelID != "" {
		if key, ok := keys.Lookup(keycache.ChannelKey, channelID); ok {
			return SelectedKey{Key: key, ChannelID: channelID}, nil
		}
	}
	return SelectedKey{}, fmt.Errorf("%w: no key for peer %s (channel %q)", errors.ErrKeyUnavailable, peerID, channelID)
}

// InboundKey mirrors OutboundKey from the receiving side: a c-cid header means the channel key.
func InboundKey(keys keycache.IKeyCache, senderID, channelID string) (SelectedKey, error) {
	if channelID != "" {
		key, ok := keys.Lookup(keycache.ChannelKey, channelID)
		if !ok {
			return SelectedKey{}, fmt.Errorf("%w: unknown channel %s", errors.ErrKeyUnavailable, channelID)
		}
		return SelectedKey{Key: key, ChannelID: channelID}, nil
	}
	key, ok := keys.Lookup(keycache.PeerKey, senderID)
	if !ok {
		return SelectedKey{}, fmt.Errorf("%w: no pairwise key for %s", errors.ErrKeyUnavailable, senderID)
	}
	return SelectedKey{Key: key}, nil
}
