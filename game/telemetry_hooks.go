package game

import (
	"log/slog"

	"github.com/pthm-cable/vortex/systems"
	"github.com/pthm-cable/vortex/telemetry"
)

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.FrameStats)) {
	g.statsCallback = fn
}

// flushTelemetry emits a stats window once enough frames have passed.
func (g *Game) flushTelemetry() {
	frame := g.engine.Frames()
	if !g.collector.ShouldFlush(frame) {
		return
	}

	g.drift, _ = systems.RadialOffsets(g.store, g.drift)
	stats := g.collector.Flush(frame, g.store.Len(), g.drift)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteFrames(stats); err != nil {
			slog.Error("failed to write frames", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
