package debug

// Runtime stats logger, started only when config.Debug is true. Detection
// holds large tensors and decoded photos, so heap and RSS are logged side by
// side to tell Go growth from native (onnxruntime / OpenCV) growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats is one runtime sample.
type Stats struct {
	Goroutines uint64
	HeapAlloc  uint64
	HeapSys    uint64
	StackInuse uint64
	NumGC      uint32
	RSS        uint64 // 0 when the platform query is unavailable
}

// Sample reads the current runtime stats.
func Sample() Stats {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	s := Stats{
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		StackInuse: ms.StackInuse,
		NumGC:      ms.NumGC,
	}
	if samples[0].Value.Kind() == metrics.KindUint64 {
		s.Goroutines = samples[0].Value.Uint64()
	}
	s.RSS, _ = residentSetSize()
	return s
}

// Attrs renders s as slog attributes with human readable sizes.
func (s Stats) Attrs() []any {
	attrs := []any{
		slog.Uint64("goroutines", s.Goroutines),
		slog.String("heap_alloc", humanize.Bytes(s.HeapAlloc)),
		slog.String("heap_sys", humanize.Bytes(s.HeapSys)),
		slog.String("stack_inuse", humanize.Bytes(s.StackInuse)),
		slog.Uint64("num_gc", uint64(s.NumGC)),
	}
	if s.RSS > 0 {
		attrs = append(attrs, slog.String("rss", humanize.Bytes(s.RSS)))
	}
	return attrs
}

// StartStatsLogger logs a Sample every interval until ctx is done.
func StartStatsLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				logger.Info("runtime-stats", Sample().Attrs()...)
			}
		}
	}()
}
