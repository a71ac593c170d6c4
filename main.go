package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/game"
	"github.com/pthm-cable/vortex/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	gesture := flag.String("gesture", "", "Gesture source: none, keys or sweep (empty = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Gesture:        *gesture,
	}

	if *headless {
		// Pure CPU simulation, no raylib window
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			os.Exit(1)
		}
		defer g.Unload()
		last := trackStats(g)

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"max_frames", *maxFrames,
			"dt", cfg.Telemetry.HeadlessDT,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && g.Frame() >= int64(*maxFrames) {
				logSummary(g, last)
				return
			}
		}
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), game.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer g.Unload()
	last := trackStats(g)

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= int64(*maxFrames) {
			break
		}
	}
	logSummary(g, last)
}

// trackStats keeps the most recent stats window for the exit summary.
func trackStats(g *game.Game) *telemetry.FrameStats {
	last := &telemetry.FrameStats{}
	g.SetStatsCallback(func(s telemetry.FrameStats) {
		*last = s
	})
	return last
}

func logSummary(g *game.Game, last *telemetry.FrameStats) {
	engine := g.Engine()
	slog.Info("run finished",
		"frame", g.Frame(),
		"sim_time", g.SimTime(),
		"particles", g.Store().Len(),
		"pointers", g.Pointers().Len(),
		"wind", engine.Wind(),
		"rotation", engine.Rotation(),
		"drift_max", last.DriftMax,
	)
}
