package workers

import (
	"context"
	"log/slog"

	"plainchat/contract"
	"plainchat/domain"
)

// DownloaderWorker runs the tasks handed over by the poller, one at a time.
// Start several to download in parallel.
type DownloaderWorker struct {
	log        *slog.Logger
	tasks      <-chan domain.DownloadTask
	downloader contract.IDownloader
}

func NewDownloaderWorker(log *slog.Logger, tasks <-chan domain.DownloadTask, downloader contract.IDownloader) *DownloaderWorker {
	return &DownloaderWorker{log: log, tasks: tasks, downloader: downloader}
}

func (w *DownloaderWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-w.tasks:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			if err := w.downloader.Download(ctx, task); err != nil {
				w.log.Debug("Download interrupted", "id", task.ID, "error", err)
			}
		}
	}
}
