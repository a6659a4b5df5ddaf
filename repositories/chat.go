//go:generate go run go.uber.org/mock/mockgen -source=chat.go -destination=../mocks/mock_chat_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IChatRepository interface {
	Store(item domain.ChatItem) error
	Get(id string) (domain.ChatItem, error)
	UpdateStatus(id string, status domain.MessageStatus, data *domain.StatusData) (domain.ChatItem, error)
	UpdateContent(id string, content domain.MessageContent) (domain.ChatItem, error)
	// ListConversation pages backwards in time; a nil cursor starts at the newest item.
	ListConversation(conversationID string, cursor *string, limit int) ([]domain.ChatItem, *string, error)
	Delete(id string) (domain.ChatItem, error)
	DeleteConversation(conversationID string) ([]domain.ChatItem, error)
	List() ([]domain.ChatItem, error)
}

// ChatRepository stores each item once under "chat:{id}" and indexes it under
// "conv:{conversation}:{created_at_padded}:{id}" for chronological paging.
type ChatRepository struct {
	db     *badger.DB
	log    *slog.Logger
	selfID string
}

func NewChatRepository(db *badger.DB, log *slog.Logger, selfID string) *ChatRepository {
	return &ChatRepository{db: db, log: log, selfID: selfID}
}

func chatKey(id string) string { return "chat:" + id }

func conversationPrefix(conversationID string) string { return "conv:" + conversationID + ":" }

func (r ChatRepository) indexKey(item domain.ChatItem) string {
	return fmt.Sprintf("%s%019d:%s", conversationPrefix(item.ConversationID(r.selfID)), item.CreatedAt.UnixNano(), item.ID)
}

// Store inserts or replaces an item. Re-storing an existing id keeps its index entry.
func (r ChatRepository) Store(item domain.ChatItem) error {
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	return update(r.db, func(txn *badger.Txn) error {
		var existing domain.ChatItem
		err := getJSON(txn, chatKey(item.ID), &existing, errors.ErrChatNotFound)
		switch {
		case err == nil:
			item.CreatedAt = existing.CreatedAt
		case !errors.Is(err, errors.ErrChatNotFound):
			return err
		}
		if err := txn.Set([]byte(r.indexKey(item)), []byte(item.ID)); err != nil {
			return err
		}
		return setJSON(txn, chatKey(item.ID), item)
	})
}

func (r ChatRepository) Get(id string) (domain.ChatItem, error) {
	var item domain.ChatItem
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, chatKey(id), &item, errors.ErrChatNotFound)
	})
	return item, err
}

func (r ChatRepository) mutate(id string, fn func(item *domain.ChatItem)) (domain.ChatItem, error) {
	var out domain.ChatItem
	err := update(r.db, func(txn *badger.Txn) error {
		var item domain.ChatItem
		if err := getJSON(txn, chatKey(id), &item, errors.ErrChatNotFound); err != nil {
			return err
		}
		fn(&item)
		item.UpdatedAt = time.Now().UTC()
		out = item
		return setJSON(txn, chatKey(id), item)
	})
	return out, err
}

func (r ChatRepository) UpdateStatus(id string, status domain.MessageStatus, data *domain.StatusData) (domain.ChatItem, error) {
	return r.mutate(id, func(item *domain.ChatItem) {
		item.Status = status
		item.StatusData = data
	})
}

func (r ChatRepository) UpdateContent(id string, content domain.MessageContent) (domain.ChatItem, error) {
	return r.mutate(id, func(item *domain.ChatItem) {
		item.Content = content
	})
}

func (r ChatRepository) ListConversation(conversationID string, cursor *string, limit int) ([]domain.ChatItem, *string, error) {
	var items []domain.ChatItem
	var lastKey string
	prefixStr := conversationPrefix(conversationID)
	prefix := []byte(prefixStr)

	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append([]byte(prefixStr), []byte("9999999999999999999")...)
		default:
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[len(prefix):]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(items) == limit {
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var chat domain.ChatItem
			err = getJSON(txn, chatKey(string(id)), &chat, errors.ErrChatNotFound)
			if errors.Is(err, errors.ErrChatNotFound) {
				r.log.Warn("dangling conversation index entry", "key", string(item.Key()))
				continue
			}
			if err != nil {
				return err
			}
			items = append(items, chat)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if lastKey == "" {
		return items, nil, nil
	}
	return items, &lastKey, nil
}

func (r ChatRepository) Delete(id string) (domain.ChatItem, error) {
	var deleted domain.ChatItem
	err := update(r.db, func(txn *badger.Txn) error {
		if err := getJSON(txn, chatKey(id), &deleted, errors.ErrChatNotFound); err != nil {
			return err
		}
		if err := txn.Delete([]byte(r.indexKey(deleted))); err != nil {
			return err
		}
		return txn.Delete([]byte(chatKey(id)))
	})
	return deleted, err
}

func (r ChatRepository) DeleteConversation(conversationID string) ([]domain.ChatItem, error) {
	var deleted []domain.ChatItem
	err := update(r.db, func(txn *badger.Txn) error {
		deleted = deleted[:0]
		for _, key := range scanKeys(txn, conversationPrefix(conversationID)) {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			id, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var chat domain.ChatItem
			err = getJSON(txn, chatKey(string(id)), &chat, errors.ErrChatNotFound)
			if err == nil {
				deleted = append(deleted, chat)
				if err := txn.Delete([]byte(chatKey(string(id)))); err != nil {
					return err
				}
			} else if !errors.Is(err, errors.ErrChatNotFound) {
				return err
			}
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	return deleted, err
}

func (r ChatRepository) List() ([]domain.ChatItem, error) {
	var items []domain.ChatItem
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "chat:", func(_ string, c domain.ChatItem) bool {
			items = append(items, c)
			return true
		})
	})
	return items, err
}
