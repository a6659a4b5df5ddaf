package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"plainchat/domain/event"

	"github.com/shirou/gopsutil/process"
)

// HealthMonitoringWorker samples CPU, memory and state of the node process.
type HealthMonitoringWorker struct {
	log            *slog.Logger
	telemetryChan  chan<- event.Event
	metricInterval time.Duration
	pid            int32
}

func NewHealthMonitoringWorker(log *slog.Logger, telemetryChan chan<- event.Event, metricInterval time.Duration) *HealthMonitoringWorker {
	return &HealthMonitoringWorker{
		log:            log,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
		pid:            int32(os.Getpid()),
	}
}

func (w *HealthMonitoringWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(w.pid)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping technicalEvent send")
			return nil
		case <-ticker.C:
			health, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			select {
			case w.telemetryChan <- event.Event{Type: event.ProcessHealthType, CreatedAt: time.Now().UTC(), Payload: health}:
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}

// selfStats retrieves memory, CPU and OS status for the given process.
func selfStats(p *process.Process) (event.ProcessHealth, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	cpu, err := p.CPUPercent()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	ram, err := p.MemoryPercent()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	status, err := p.Status()
	if err != nil {
		return event.ProcessHealth{}, err
	}
	return event.ProcessHealth{
		PID:    p.Pid,
		Status: statusLetter(status),
		Cpu:    cpu,
		Ram:    ram,
		RSS:    memInfo.RSS,
	}, nil
}

// statusLetter accepts the process state either as one letter or as a list of them.
func statusLetter[T string | []string](status T) string {
	switch v := any(status).(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
