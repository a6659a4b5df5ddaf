//go:generate go run go.uber.org/mock/mockgen -source=peer.go -destination=../mocks/mock_peer_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IPeerRepository interface {
	Upsert(peer domain.Peer) error
	// UpsertChannelPeer records a device learned through a channel message.
	// An existing row is never overwritten: only its empty identity fields
	// are filled, so a known public key cannot be replaced through a channel.
	UpsertChannelPeer(peer domain.Peer) error
	Get(id string) (domain.Peer, error)
	List() ([]domain.Peer, error)
	Delete(id string) error
}

type PeerRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPeerRepository(db *badger.DB, log *slog.Logger) *PeerRepository {
	return &PeerRepository{db: db, log: log}
}

func peerKey(id string) string { return "peer:" + id }

func (r PeerRepository) Upsert(peer domain.Peer) error {
	now := time.Now().UTC()
	return update(r.db, func(txn *badger.Txn) error {
		var existing domain.Peer
		switch err := getJSON(txn, peerKey(peer.ID), &existing, errors.ErrPeerNotFound); {
		case err == nil:
			peer.CreatedAt = existing.CreatedAt
		case errors.Is(err, errors.ErrPeerNotFound):
			peer.CreatedAt = now
		default:
			return err
		}
		peer.UpdatedAt = now
		return setJSON(txn, peerKey(peer.ID), peer)
	})
}

func (r PeerRepository) UpsertChannelPeer(peer domain.Peer) error {
	now := time.Now().UTC()
	return update(r.db, func(txn *badger.Txn) error {
		var existing domain.Peer
		err := getJSON(txn, peerKey(peer.ID), &existing, errors.ErrPeerNotFound)
		switch {
		case errors.Is(err, errors.ErrPeerNotFound):
			peer.Status = domain.PeerChannel
			peer.Key = ""
			peer.CreatedAt = now
			peer.UpdatedAt = now
			r.log.Debug("new channel peer", "peer_id", peer.ID, "name", peer.Name)
			return setJSON(txn, peerKey(peer.ID), peer)
		case err != nil:
			return err
		}
		if !fillEmpty(&existing, peer) {
			return nil
		}
		existing.UpdatedAt = now
		return setJSON(txn, peerKey(peer.ID), existing)
	})
}

func fillEmpty(existing *domain.Peer, advertised domain.Peer) bool {
	filled := false
	if existing.Name == "" && advertised.Name != "" {
		existing.Name, filled = advertised.Name, true
	}
	if existing.PublicKey == "" && advertised.PublicKey != "" {
		existing.PublicKey, filled = advertised.PublicKey, true
	}
	if len(existing.Addresses) == 0 && len(advertised.Addresses) > 0 {
		existing.Addresses, filled = advertised.Addresses, true
	}
	if existing.Port == 0 && advertised.Port != 0 {
		existing.Port, filled = advertised.Port, true
	}
	if existing.DeviceType == "" && advertised.DeviceType != "" {
		existing.DeviceType, filled = advertised.DeviceType, true
	}
	return filled
}

func (r PeerRepository) Get(id string) (domain.Peer, error) {
	var peer domain.Peer
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, peerKey(id), &peer, errors.ErrPeerNotFound)
	})
	return peer, err
}

func (r PeerRepository) List() ([]domain.Peer, error) {
	var peers []domain.Peer
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "peer:", func(_ string, p domain.Peer) bool {
			peers = append(peers, p)
			return true
		})
	})
	return peers, err
}

func (r PeerRepository) Delete(id string) error {
	return update(r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(peerKey(id)))
	})
}
