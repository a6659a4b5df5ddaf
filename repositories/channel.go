//go:generate go run go.uber.org/mock/mockgen -source=channel.go -destination=../mocks/mock_channel_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

// Mutation edits a channel inside a transaction. Returning an error aborts the write.
type Mutation func(ch *domain.Channel) error

type IChannelRepository interface {
	Create(channel domain.Channel) error
	Get(id string) (domain.Channel, error)
	List() ([]domain.Channel, error)
	// Mutate is the single read-modify-write of a channel.
	Mutate(id string, fn Mutation) (domain.Channel, error)
	Delete(id string) error
}

type ChannelRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewChannelRepository(db *badger.DB, log *slog.Logger) *ChannelRepository {
	return &ChannelRepository{db: db, log: log}
}

func channelKey(id string) string { return "channel:" + id }

// Create fails when the channel already exists.
func (r ChannelRepository) Create(channel domain.Channel) error {
	now := time.Now().UTC()
	if channel.CreatedAt.IsZero() {
		channel.CreatedAt = now
	}
	channel.UpdatedAt = now
	return update(r.db, func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(channelKey(channel.ID))); err == nil {
			return fmt.Errorf("%w: channel %s already exists", errors.ErrStorage, channel.ID)
		}
		return setJSON(txn, channelKey(channel.ID), channel)
	})
}

func (r ChannelRepository) Get(id string) (domain.Channel, error) {
	var ch domain.Channel
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, channelKey(id), &ch, errors.ErrChannelNotFound)
	})
	return ch, err
}

func (r ChannelRepository) List() ([]domain.Channel, error) {
	var channels []domain.Channel
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "channel:", func(_ string, ch domain.Channel) bool {
			channels = append(channels, ch)
			return true
		})
	})
	return channels, err
}

func (r ChannelRepository) Mutate(id string, fn Mutation) (domain.Channel, error) {
	var out domain.Channel
	err := update(r.db, func(txn *badger.Txn) error {
		var ch domain.Channel
		if err := getJSON(txn, channelKey(id), &ch, errors.ErrChannelNotFound); err != nil {
			return err
		}
		if err := fn(&ch); err != nil {
			return err
		}
		ch.ID = id
		ch.UpdatedAt = time.Now().UTC()
		out = ch
		return setJSON(txn, channelKey(id), ch)
	})
	return out, err
}

func (r ChannelRepository) Delete(id string) error {
	return update(r.db, func(txn *badger.Txn) error {
		return txn.Delete([]byte(channelKey(id)))
	})
}
