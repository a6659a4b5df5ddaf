package event

import (
	"log/slog"

	"plainchat/errors"
)

type ProcessHealthHandler struct {
	log           *slog.Logger
	maxRSSBytes   uint64
	maxCPUPercent float64
}

func NewProcessHealthHandler(log *slog.Logger, maxRSSBytes uint64, maxCPUPercent float64) *ProcessHealthHandler {
	return &ProcessHealthHandler{log: log, maxRSSBytes: maxRSSBytes, maxCPUPercent: maxCPUPercent}
}

func (h ProcessHealthHandler) Handle(event Event) {
	if event.Type != ProcessHealthType {
		return
	}
	payload, ok := event.Payload.(ProcessHealth)
	if !ok {
		h.log.Error(errors.ErrInvalidPayload.Error(), "type", event.Type)
		return
	}
	h.log.Debug("process health",
		"pid", payload.PID,
		"status", payload.Status,
		"cpu", payload.Cpu,
		"ram", payload.Ram,
		"rss", payload.RSS)
	if h.maxRSSBytes > 0 && payload.RSS > h.maxRSSBytes {
		h.log.Warn("memory usage above threshold", "rss", payload.RSS, "max", h.maxRSSBytes)
	}
	if h.maxCPUPercent > 0 && payload.Cpu > h.maxCPUPercent {
		h.log.Warn("cpu usage above threshold", "cpu", payload.Cpu, "max", h.maxCPUPercent)
	}
	if halted(payload.Status) {
		h.log.Warn("node process halted", "pid", payload.PID, "status", payload.Status)
	}
}

// halted reports stopped and zombie process states.
func halted(status string) bool {
	return status == "T" || status == "Z"
}
