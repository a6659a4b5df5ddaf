//go:generate go run go.uber.org/mock/mockgen -source=download.go -destination=../mocks/mock_download_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/errors"

	"github.com/dgraph-io/badger/v4"
)

type IDownloadRepository interface {
	Enqueue(task domain.DownloadTask) error
	GetNextBatch(limit int) ([]domain.DownloadTask, error)
	MarkAsDownloading(task domain.DownloadTask) error
	// Requeue puts a downloading task back to pending with its retry counter increased.
	Requeue(task domain.DownloadTask, reason string) (domain.DownloadTask, error)
	Finish(task domain.DownloadTask, status domain.DownloadStatus, reason string) error
	// RecoverDownloading moves tasks interrupted by a shutdown back to pending.
	RecoverDownloading() (int, error)
	CancelForMessage(messageID string) (int, error)
	List() ([]domain.DownloadTask, error)
}

// DownloadRepository keeps the attachment download queue in BadgerDB:
//
//	download:pending:{priority}:{created_at}:{id}
//	download:active:{id}
//	download:done:{id}
type DownloadRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDownloadRepository(db *badger.DB, log *slog.Logger) *DownloadRepository {
	return &DownloadRepository{db: db, log: log}
}

func pendingKey(task domain.DownloadTask) string {
	return fmt.Sprintf("download:pending:%d:%019d:%s", task.Priority, task.CreatedAt.UnixNano(), task.ID)
}

func activeKey(id string) string { return "download:active:" + id }

func doneKey(id string) string { return "download:done:" + id }

func (r DownloadRepository) Enqueue(task domain.DownloadTask) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}
	task.Status = domain.DownloadPending
	return update(r.db, func(txn *badger.Txn) error {
		return setJSON(txn, pendingKey(task), task)
	})
}

// GetNextBatch returns pending tasks, high priority first then oldest first.
func (r DownloadRepository) GetNextBatch(limit int) ([]domain.DownloadTask, error) {
	var tasks []domain.DownloadTask
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "download:pending:", func(_ string, t domain.DownloadTask) bool {
			tasks = append(tasks, t)
			return len(tasks) < limit
		})
	})
	if err != nil {
		return nil, fmt.Errorf("error during batch fetch: %w", err)
	}
	return tasks, nil
}

func (r DownloadRepository) MarkAsDownloading(task domain.DownloadTask) error {
	return update(r.db, func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(pendingKey(task)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("task %s is no longer pending", task.ID)
		}
		if err := txn.Delete([]byte(pendingKey(task))); err != nil {
			return err
		}
		task.Status = domain.DownloadDownloading
		return setJSON(txn, activeKey(task.ID), task)
	})
}

func (r DownloadRepository) Requeue(task domain.DownloadTask, reason string) (domain.DownloadTask, error) {
	task.RetryCount++
	task.Error = reason
	task.Status = domain.DownloadPending
	task.Downloaded = 0
	err := update(r.db, func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(activeKey(task.ID))); err != nil {
			return err
		}
		return setJSON(txn, pendingKey(task), task)
	})
	return task, err
}

func (r DownloadRepository) Finish(task domain.DownloadTask, status domain.DownloadStatus, reason string) error {
	task.Status = status
	task.Error = reason
	return update(r.db, func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(activeKey(task.ID))); err != nil {
			return err
		}
		return setJSON(txn, doneKey(task.ID), task)
	})
}

func (r DownloadRepository) RecoverDownloading() (int, error) {
	recovered := 0
	err := update(r.db, func(txn *badger.Txn) error {
		recovered = 0
		var tasks []domain.DownloadTask
		if err := scanJSON(txn, "download:active:", func(_ string, t domain.DownloadTask) bool {
			tasks = append(tasks, t)
			return true
		}); err != nil {
			return err
		}
		for _, t := range tasks {
			if err := txn.Delete([]byte(activeKey(t.ID))); err != nil {
				return err
			}
			t.Status = domain.DownloadPending
			t.Downloaded = 0
			if err := setJSON(txn, pendingKey(t), t); err != nil {
				return err
			}
			recovered++
		}
		return nil
	})
	return recovered, err
}

func (r DownloadRepository) CancelForMessage(messageID string) (int, error) {
	canceled := 0
	err := update(r.db, func(txn *badger.Txn) error {
		canceled = 0
		type keyed struct {
			key  string
			task domain.DownloadTask
		}
		var matches []keyed
		if err := scanJSON(txn, "download:pending:", func(key string, t domain.DownloadTask) bool {
			if t.MessageID == messageID {
				matches = append(matches, keyed{key: key, task: t})
			}
			return true
		}); err != nil {
			return err
		}
		for _, m := range matches {
			if err := txn.Delete([]byte(m.key)); err != nil {
				return err
			}
			m.task.Status = domain.DownloadCanceled
			if err := setJSON(txn, doneKey(m.task.ID), m.task); err != nil {
				return err
			}
			canceled++
		}
		return nil
	})
	return canceled, err
}

func (r DownloadRepository) List() ([]domain.DownloadTask, error) {
	var tasks []domain.DownloadTask
	err := r.db.View(func(txn *badger.Txn) error {
		return scanJSON(txn, "download:", func(_ string, t domain.DownloadTask) bool {
			tasks = append(tasks, t)
			return true
		})
	})
	return tasks, err
}
