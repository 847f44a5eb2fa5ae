package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"chat-relay/contract"
	"chat-relay/observability"

	"github.com/shirou/gopsutil/process"
)

var _ contract.Worker = (*HeartbeatWorker)(nil)

// HeartbeatWorker periodically logs process health (CPU, RSS, status)
// together with the relay counters. Purely observational: it reads the
// atomic stats and never touches the history or the tracker.
type HeartbeatWorker struct {
	log      *slog.Logger
	stats    *observability.RelayStats
	interval time.Duration
}

func NewHeartbeatWorker(log *slog.Logger, stats *observability.RelayStats, interval time.Duration) *HeartbeatWorker {
	return &HeartbeatWorker{log: log, stats: stats, interval: interval}
}

// Run emits one heartbeat per interval until the context is canceled.
func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting relay heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := getSelfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			latest := w.stats.GetLatest()
			w.log.Info("Heartbeat",
				"pid", os.Getpid(),
				"pid_status", status,
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"accepted", latest.Accepted,
				"stored", latest.Stored,
				"evicted", latest.Evicted,
				"failures", latest.Failures,
				"pending_tasks", latest.Pending,
				"alloc_mem_mb", latest.AllocMemMb,
			)
		}
	}
}

// getSelfStats retrieves technical metrics (Memory, CPU, and OS Status) for the given process.
func getSelfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
