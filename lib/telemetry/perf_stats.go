package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

const perfSampleInterval = time.Second * 30

var meter = otel.Meter("process_stats")

// InstrumentPerfStats samples process health every 30s until ctx is
// cancelled. Refresh batches hold a headless chromium open for minutes,
// the heap and cpu gauges are what tell a stuck batch apart from a slow
// one.
func InstrumentPerfStats(ctx context.Context) {
	cpuGauge, _ := meter.Float64Gauge("process.cpu_percent")
	heapGauge, _ := meter.Int64Gauge("process.heap_mb")
	objectsGauge, _ := meter.Int64Gauge("process.live_objects")
	goroutineGauge, _ := meter.Int64Gauge("process.goroutines")

	sample := func() {
		var stats runtime.MemStats
		runtime.ReadMemStats(&stats)
		heapGauge.Record(ctx, int64(stats.HeapAlloc/1_000_000))
		objectsGauge.Record(ctx, int64(stats.Mallocs-stats.Frees))
		goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

		// interval 0 compares against the previous call instead of
		// blocking the sampler
		usage, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			slog.Warn("failed to sample cpu usage", "err", err)
			return
		}
		if len(usage) > 0 {
			cpuGauge.Record(ctx, usage[0])
		}
	}

	go func() {
		ticker := time.NewTicker(perfSampleInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sample()
			case <-ctx.Done():
				return
			}
		}
	}()
}
