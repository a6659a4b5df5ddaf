package workers

import (
	"context"
	"log/slog"
	"time"

	"plainchat/domain"
	"plainchat/repositories"
)

// DownloadPollerWorker moves pending download tasks from BadgerDB to the downloaders.
type DownloadPollerWorker struct {
	tasks     chan<- domain.DownloadTask
	downloads repositories.IDownloadRepository
	log       *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewDownloadPollerWorker(
	tasks chan<- domain.DownloadTask,
	downloads repositories.IDownloadRepository,
	log *slog.Logger,
	interval time.Duration,
	batchSize int,
) *DownloadPollerWorker {
	return &DownloadPollerWorker{
		tasks:     tasks,
		downloads: downloads,
		log:       log,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run polls the queue on every tick. Handing a task over blocks while all
// downloaders are busy.
func (w *DownloadPollerWorker) Run(ctx context.Context) error {
	w.log.Debug("Starting download poller", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping download poller")
			return ctx.Err()
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *DownloadPollerWorker) poll(ctx context.Context) error {
	tasks, err := w.downloads.GetNextBatch(w.batchSize)
	if err != nil {
		w.log.Error("Failed to fetch next batch", "error", err)
		return nil
	}
	for _, task := range tasks {
		if err := w.downloads.MarkAsDownloading(task); err != nil {
			w.log.Error("Failed to mark task as downloading", "id", task.ID, "error", err)
			continue
		}
		task.Status = domain.DownloadDownloading
		select {
		case w.tasks <- task:
			w.log.Debug("Task dispatched to downloader", "id", task.ID, "chat_id", task.MessageID)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
