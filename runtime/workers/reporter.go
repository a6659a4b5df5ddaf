package workers

import (
	"context"
	"log/slog"
	"time"

	"plainchat/observability"
)

type ReporterWorker struct {
	log        *slog.Logger
	monitoring *observability.MonitoringManager
	interval   time.Duration
}

func NewReporterWorker(log *slog.Logger, monitoring *observability.MonitoringManager, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{log: log, monitoring: monitoring, interval: interval}
}

// Run logs a transfer snapshot on every tick and a last one when stopping.
func (w *ReporterWorker) Run(ctx context.Context) error {
	startTime := time.Now()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.report(startTime)
			w.log.Debug("Reporter stopped")
			return ctx.Err()
		case <-ticker.C:
			w.report(startTime)
		}
	}
}

func (w *ReporterWorker) report(startTime time.Time) {
	stats := w.monitoring.Snapshot()
	w.log.Info("Transfer stats",
		"uptime", time.Since(startTime).Round(time.Second).String(),
		"alloc_mb", stats.AllocMemMb,
		"num_gc", stats.NumGC,
		"download_mb_s", stats.DownloadSpeed,
		"bytes_downloaded", stats.BytesDownloaded,
		"downloads_completed", stats.DownloadsCompleted,
		"downloads_failed", stats.DownloadsFailed,
		"files_swept", stats.FilesSwept,
	)
}
