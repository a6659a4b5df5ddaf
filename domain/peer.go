// Package domain contains core concepts of the peer chat system.
// This file defines Peer identities and their addressing rules.
package domain

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

type PeerStatus string

const (
	PeerPaired   PeerStatus = "paired"
	PeerUnpaired PeerStatus = "unpaired"
	// PeerChannel marks a device only known through a channel invite or update.
	// It carries a public key but no pairwise key.
	PeerChannel PeerStatus = "channel"
)

type DeviceType string

const (
	DevicePhone  DeviceType = "phone"
	DeviceTablet DeviceType = "tablet"
	DevicePC     DeviceType = "pc"
)

// Peer is the identity record of a remote device.
type Peer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Addresses  []string   `json:"addresses"`
	Port       int        `json:"port"`
	DeviceType DeviceType `json:"device_type"`
	// Key is the base64 pairwise ChaCha20 key, empty when unpaired or channel-only.
	Key       string     `json:"key"`
	PublicKey string     `json:"public_key"`
	Status    PeerStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (p Peer) IsPaired() bool { return p.Status == PeerPaired }

func (p Peer) IsChannel() bool { return p.Status == PeerChannel }

func (p Peer) HasPairwiseKey() bool { return p.Key != "" }

// DisplayName falls back to the id when the peer never advertised a name.
func (p Peer) DisplayName() string {
	if p.Name == "" {
		return p.ID
	}
	return p.Name
}

// BestAddress prefers a private IPv4 address, then any IPv4, then whatever comes first.
func (p Peer) BestAddress() string {
	if len(p.Addresses) == 0 {
		return ""
	}
	var fallback string
	for _, addr := range p.Addresses {
		ip := net.ParseIP(strings.TrimSpace(addr))
		if ip == nil || ip.To4() == nil {
			continue
		}
		if ip.IsPrivate() {
			return ip.String()
		}
		if fallback == "" {
			fallback = ip.String()
		}
	}
	if fallback != "" {
		return fallback
	}
	return strings.TrimSpace(p.Addresses[0])
}

func (p Peer) BaseURL() string {
	return fmt.Sprintf("https://%s", net.JoinHostPort(p.BestAddress(), fmt.Sprint(p.Port)))
}

func (p Peer) APIURL() string {
	return p.BaseURL() + "/peer_graphql"
}

func (p Peer) FileURL(fileID, token string) string {
	q := url.Values{}
	q.Set("id", fileID)
	if token != "" {
		q.Set("token", token)
	}
	return p.BaseURL() + "/fs?" + q.Encode()
}

// ParseAddresses splits the comma separated address list advertised by peers.
func ParseAddresses(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
