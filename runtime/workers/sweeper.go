package workers

import (
	"context"
	"log/slog"
	"time"

	"plainchat/contract"
	"plainchat/observability"
)

// SweeperWorker periodically purges stored files whose reference count dropped to zero.
type SweeperWorker struct {
	log      *slog.Logger
	sweeper  contract.ISweeper
	stats    *observability.MonitoringManager
	interval time.Duration
}

func NewSweeperWorker(log *slog.Logger, sweeper contract.ISweeper, stats *observability.MonitoringManager, interval time.Duration) *SweeperWorker {
	return &SweeperWorker{log: log, sweeper: sweeper, stats: stats, interval: interval}
}

func (w *SweeperWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := w.sweeper.Sweep(ctx)
			if err != nil {
				w.log.Error("Orphan sweep failed", "error", err)
				continue
			}
			w.stats.AddSwept(n)
			if n > 0 {
				w.log.Info("Orphan files removed", "count", n)
			}
		}
	}
}
