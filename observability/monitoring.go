// Package observability keeps the running counters of attachment transfers.
package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// MonitoringStats is one snapshot of transfer and process metrics.
type MonitoringStats struct {
	DownloadSpeed      float64 `json:"download_speed"` // MB/s since the previous snapshot
	BytesDownloaded    uint64  `json:"bytes_downloaded"`
	DownloadsCompleted uint64  `json:"downloads_completed"`
	DownloadsFailed    uint64  `json:"downloads_failed"`
	FilesSwept         uint64  `json:"files_swept"`
	AllocMemMb         uint64  `json:"alloc_mem_mb"`
	NumGC              uint32  `json:"num_gc"`
}

// MonitoringManager counts transfers. Increments are lock-free; Snapshot
// turns the byte counter into a rate since the previous snapshot.
type MonitoringManager struct {
	log *slog.Logger
	mu  sync.Mutex

	windowBytes        atomic.Uint64
	bytesDownloaded    atomic.Uint64
	downloadsCompleted atomic.Uint64
	downloadsFailed    atomic.Uint64
	filesSwept         atomic.Uint64
	lastCheck          time.Time
	now                func() time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{log: log, lastCheck: time.Now(), now: time.Now}
}

func (mm *MonitoringManager) AddDownloaded(n int64) {
	if n <= 0 {
		return
	}
	mm.windowBytes.Add(uint64(n))
	mm.bytesDownloaded.Add(uint64(n))
}

func (mm *MonitoringManager) IncrDownloadCompleted() { mm.downloadsCompleted.Add(1) }

func (mm *MonitoringManager) IncrDownloadFailed() { mm.downloadsFailed.Add(1) }

func (mm *MonitoringManager) AddSwept(n int) {
	if n > 0 {
		mm.filesSwept.Add(uint64(n))
	}
}

func (mm *MonitoringManager) Snapshot() MonitoringStats {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := mm.now()
	stats := MonitoringStats{
		BytesDownloaded:    mm.bytesDownloaded.Load(),
		DownloadsCompleted: mm.downloadsCompleted.Load(),
		DownloadsFailed:    mm.downloadsFailed.Load(),
		FilesSwept:         mm.filesSwept.Load(),
	}
	window := mm.windowBytes.Swap(0)
	if elapsed := now.Sub(mm.lastCheck).Seconds(); elapsed > 0 {
		stats.DownloadSpeed = (float64(window) / 1024 / 1024) / elapsed
	}
	mm.lastCheck = now

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC
	return stats
}
