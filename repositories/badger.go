package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

const maxConflictRetries = 5

// OpenInMemory is used by tests and the inspect tool when no path is given.
func OpenInMemory() (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func Open(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
}

// OpenReadOnly lets tooling read the store of a running node.
func OpenReadOnly(path string) (*badger.DB, error) {
	return badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
}

// update runs fn in a read-write transaction, retrying on optimistic conflicts.
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * time.Millisecond)
	}
	return fmt.Errorf("%w: %v", errors.ErrStorage, err)
}

func setJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", errors.ErrStorage, key, err)
	}
	return txn.Set([]byte(key), data)
}

// getJSON decodes the value at key into v. A missing key returns notFound.
func getJSON(txn *badger.Txn, key string, v any, notFound error) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrStorage, err)
	}
	return item.Value(func(val []byte) error {
		if err := json.Unmarshal(val, v); err != nil {
			return fmt.Errorf("%w: decoding %s: %v", errors.ErrStorage, key, err)
		}
		return nil
	})
}

// scanJSON calls fn for every value under prefix, in key order.
func scanJSON[T any](txn *badger.Txn, prefix string, fn func(key string, v T) bool) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		item := it.Item()
		var v T
		err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		})
		if err != nil {
			return fmt.Errorf("%w: decoding %s: %v", errors.ErrStorage, item.Key(), err)
		}
		if !fn(string(item.KeyCopy(nil)), v) {
			return nil
		}
	}
	return nil
}

// scanKeys lists the keys under prefix without fetching values.
func scanKeys(txn *badger.Txn, prefix string) []string {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	var keys []string
	for it.Seek(opts.Prefix); it.ValidForPrefix(opts.Prefix); it.Next() {
		keys = append(keys, string(it.Item().KeyCopy(nil)))
	}
	return keys
}
