package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/vortex/camera"
	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/renderer"
	"github.com/pthm-cable/vortex/systems"
	"github.com/pthm-cable/vortex/telemetry"
	"github.com/pthm-cable/vortex/ui"
)

// Title is the window title and HUD heading.
const Title = "Vortex"

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	Gesture        string // overrides gesture.source when non-empty
}

// Game holds the complete star field state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// Core
	store    *systems.ParticleStore
	engine   *systems.FrameEngine
	pointers *systems.InteractionAggregator
	points   []systems.InteractionPoint

	// Gesture
	gesture       systems.GestureSource
	keyGesture    *systems.LatestGesture
	gestureSource string
	signal        systems.GestureSignal

	camera *camera.Camera

	// Rendering (nil when headless)
	stars     *renderer.StarRenderer
	sun       *renderer.SunRenderer
	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	controls  *ui.ControlsPanel
	tuning    *ui.TuningPanel
	tuned     ui.TuningValues
	windGauge *ui.WindGauge
	markers   *ui.PointerMarkers
	perfPanel *ui.PerfPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.FrameStats)
	drift         []float64

	simTime    float64
	headless   bool
	headlessDT float64

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game from the global config.
// config.Init must have been called.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	store, err := systems.NewParticleStore(cfg.Particles.Count, systems.StoreConfigFrom(cfg), rng)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:          cfg,
		rng:          rng,
		store:        store,
		engine:       systems.NewFrameEngine(store, systems.EngineOptionsFrom(cfg)),
		pointers:     systems.NewInteractionAggregator(),
		keyGesture:   &systems.LatestGesture{},
		headless:     opts.Headless,
		headlessDT:   cfg.Telemetry.HeadlessDT,
		logStats:     opts.LogStats,
		screenWidth:  cfg.Derived.ScreenW32,
		screenHeight: cfg.Derived.ScreenH32,
	}
	if g.headlessDT <= 0 {
		g.headlessDT = 1.0 / 60.0
	}

	source := cfg.Gesture.Source
	if opts.Gesture != "" {
		source = opts.Gesture
	}
	if err := g.setGestureSource(source, opts.Seed); err != nil {
		g.engine.Close()
		return nil, err
	}

	g.camera = camera.New(g.screenWidth, g.screenHeight, camera.OptionsFrom(cfg))

	// Telemetry
	windowFrames := int64(cfg.Derived.StatsWindowFrm)
	if opts.StatsWindowSec > 0 {
		windowFrames = max(int64(opts.StatsWindowSec*float64(cfg.Screen.TargetFPS)), 1)
	}
	g.collector = telemetry.NewCollector(windowFrames)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.engine.Close()
		return nil, fmt.Errorf("output: %w", err)
	}
	g.outputManager = om
	if om != nil {
		slog.Info("writing telemetry", "dir", om.Dir())
	}
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !opts.Headless {
		g.initRendering()
	}

	slog.Info("star field ready",
		"particles", store.Len(),
		"gesture", g.gestureSource,
		"workers", cfg.Motion.Workers,
		"accumulate", cfg.Interaction.Accumulate,
		"headless", opts.Headless,
		"stats_window_frames", g.collector.WindowFrames(),
	)
	return g, nil
}

// initRendering creates renderers and UI. Requires the raylib window.
func (g *Game) initRendering() {
	cfg := g.cfg
	g.stars = renderer.NewStarRenderer(g.camera, cfg.Derived.PointScale32, cfg.Render.TwinkleSpeed)
	g.sun = renderer.NewSunRenderer(g.camera, float32(cfg.Render.LightIntensity))
	g.stars.Init()
	g.sun.Init()

	g.hud = ui.NewHUD()
	g.overlays = ui.NewOverlayRegistry()
	g.controls = ui.NewControlsPanel(10, 100, 220)
	g.tuning = ui.NewTuningPanel(g.screenWidth-330, 10, 320)
	g.windGauge = ui.NewWindGauge(10, int32(g.screenHeight)-140, 280)
	g.markers = ui.NewPointerMarkers()
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-260, int32(g.screenHeight)-160)

	wind := g.engine.WindSmoother().Params()
	g.tuned = ui.TuningValues{
		WindGain:       float32(wind.Gain),
		Smoothing:      float32(wind.Smoothing),
		PointScale:     g.stars.PointScale,
		TwinkleSpeed:   float32(g.stars.TwinkleSpeed),
		LightIntensity: g.sun.Intensity,
	}
}

// Update runs one graphical frame: input, then a simulation step at the
// window clock.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.step(g.simTime + frameTime())
	g.camera.Update()
}

// UpdateHeadless runs one fixed-dt simulation step without raylib.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	g.step(g.simTime + g.headlessDT)
	g.perfCollector.EndTick()
}

// step advances the simulation to time t.
// In graphical mode the tick is ended by Draw so render time is counted.
func (g *Game) step(t float64) {
	g.simTime = t

	g.perfCollector.StartPhase(telemetry.PhaseGesture)
	g.signal = g.gesture.Latest()

	g.perfCollector.StartPhase(telemetry.PhaseInteraction)
	g.points = g.pointers.Snapshot(g.points)

	g.perfCollector.StartPhase(telemetry.PhaseUpdate)
	start := time.Now()
	g.engine.Step(t, g.signal, g.points, g.camera.Viewport())
	updateDur := time.Since(start)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.Record(telemetry.FrameSample{
		Frame:         g.engine.Frames(),
		Time:          t,
		Pointers:      len(g.points),
		GestureActive: g.signal.Sanitize(g.engine.WindSmoother().Params().MaxVelocity).Active,
		Wind:          g.engine.Wind(),
		Rotation:      g.engine.Rotation(),
		Update:        updateDur,
	})
	g.flushTelemetry()
}

// Frame returns the number of simulation steps so far.
func (g *Game) Frame() int64 {
	return g.engine.Frames()
}

// SimTime returns the simulation clock in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Store exposes the particle store, e.g. for alternative render sinks.
func (g *Game) Store() *systems.ParticleStore {
	return g.store
}

// Engine exposes the frame engine.
func (g *Game) Engine() *systems.FrameEngine {
	return g.engine
}

// Pointers exposes the interaction aggregator.
func (g *Game) Pointers() *systems.InteractionAggregator {
	return g.pointers
}

// Unload releases renderer resources, stops workers and closes output files.
func (g *Game) Unload() {
	if g.stars != nil {
		g.stars.Unload()
	}
	if g.sun != nil {
		g.sun.Unload()
	}
	g.engine.Close()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
