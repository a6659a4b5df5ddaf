//go:generate go run go.uber.org/mock/mockgen -source=file.go -destination=../mocks/mock_file_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IFileRepository interface {
	Get(id string) (domain.StoredFile, error)
	// FindByWeak returns every row sharing the size and weak hash.
	FindByWeak(size int64, weakHash string) ([]domain.StoredFile, error)
	// InsertOrIncrement inserts the row with refCount 1, or increments it when
	// the id is already known. created reports which branch ran.
	InsertOrIncrement(file domain.StoredFile) (stored domain.StoredFile, created bool, err error)
	Increment(id string) (domain.StoredFile, error)
	// Decrement lowers refCount by one, never below zero.
	Decrement(id string) (domain.StoredFile, error)
	Delete(id string) error
	ListOrphans() ([]domain.StoredFile, error)
	List() ([]domain.StoredFile, error)
}

type FileRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewFileRepository(db *badger.DB, log *slog.Logger) *FileRepository {
	return &FileRepository{db: db, log: log}
}

func fileKey(id string) string { return "file:" + id }

func weakPrefix(size int64, weakHash string) string {
	return fmt.Sprintf("fileweak:%020d:%s:", size, weakHash)
}

func weakKey(f domain.StoredFile) string { return weakPrefix(f.Size, f.WeakHash) + f.ID }

func (r FileRepository) Get(id string) (domain.StoredFile, error) {
	var f domain.StoredFile
	err := r.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, fileKey(id), &f, errors.ErrFileNotFound)
	})
	return f, err
}

func (r FileRepository) FindByWeak(size int64, weakHash string) ([]domain.StoredFile, error) {
	var files []domain.StoredFile
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := weakPrefix(size, weakHash)
		for _, key := range scanKeys(txn, prefix) {
			var f domain.StoredFile
			err := getJSON(txn, fileKey(strings.TrimPrefix(key, prefix)), &f, errors.ErrFileNotFound)
			if errors.Is(err, errors.ErrFileNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			files = append(files, f)
		}
		return nil
	})
	return files, err
}

func (r FileRepository) InsertOrIncrement(file domain.StoredFile) (domain.StoredFile, bool, error) {
	var out domain.StoredFile
	var created bool
	now := time.Now().UTC()
	err := update(r.db, func(txn *badger.Txn) error {
		var existing domain.StoredFile
		err := getJSON(txn, fileKey(file.ID), &existing, errors.ErrFileNotFound)
		switch {
		case err == nil:
			existing.RefCount++
			existing.UpdatedAt = now
			out, created = existing, false
			return setJSON(txn, fileKey(file.ID), existing)
		case !errors.Is(err, errors.ErrFileNotFound):
			return err
		}
		file.RefCount = 1
		file.CreatedAt = now
		file.UpdatedAt = now
		out, created = file, true
		if err := txn.Set([]byte(weakKey(file)), nil); err != nil {
			return err
		}
		return setJSON(txn, fileKey(file.ID), file)
	})
	return out, created, err
}

func (r FileRepository) adjust(id string, delta int) (domain.StoredFile, error) {
	var out domain.StoredFile
	err := update(r.db, func(txn *badger.Txn) error {
		var f domain.StoredFile
		if err := getJSON(txn, fileKey(id), &f, errors.ErrFileNotFound); err != nil {
			return err
		}
		f.RefCount = max(f.RefCount+delta, 0)
		f.UpdatedAt = time.Now().UTC()
		out = f
		return setJSON(txn, fileKey(id), f)
	})
	return out, err
}

func (r FileRepository) Increment(id string) (domain.StoredFile, error) { return r.adjust(id, 1) }

func (r FileRepository) Decrement(id string) (domain.StoredFile, error) { return r.adjust(id, -1) }

func (r FileRepository) Delete(id string) error {
	return update(r.db, func(txn *badger.Txn) error {
		var f domain.StoredFile
		if err := getJSON(txn, fileKey(id), &f, errors.ErrFileNotFound); err != nil {
			return err
		}
		if err := txn.Delete([]byte(weakKey(f))); err != nil {
			return err
		}
		return txn.Delete([]byte(fileKey(id)))
	})
}

func (r FileRepository) ListOrphans() ([]domain.StoredFile, error) {
	var files []domain.StoredFile
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "file:", func(_ string, f domain.StoredFile) bool {
			if f.RefCount <= 0 {
				files = append(files, f)
			}
			return true
		})
	})
	return files, err
}

func (r FileRepository) List() ([]domain.StoredFile, error) {
	var files []domain.StoredFile
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "file:", func(_ string, f domain.StoredFile) bool {
			files = append(files, f)
			return true
		})
	})
	return files, err
}
