// Command termstars runs the star field in a terminal.
// Drag with the mouse to repel stars; hold Left/Right for gesture wind.
package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/systems"
)

// keyHold is how long an arrow key press counts as a held gesture.
// Terminals only report key repeats, not releases.
const keyHold = 150 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	count := flag.Int("count", 3000, "Number of stars (terminals cannot show the full field)")
	seed := flag.Int64("seed", 1, "RNG seed")
	fps := flag.Int("fps", 30, "Frames per second")
	flag.Parse()

	// Log to stderr so the screen stays clean
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	store, err := systems.NewParticleStore(*count, systems.StoreConfigFrom(cfg), rand.New(rand.NewSource(*seed)))
	if err != nil {
		slog.Error("failed to create stars", "error", err)
		os.Exit(1)
	}
	engine := systems.NewFrameEngine(store, systems.EngineOptionsFrom(cfg))
	defer engine.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to init screen", "error", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	defer screen.Fini()

	app := &termApp{
		screen:   screen,
		engine:   engine,
		pointers: systems.NewInteractionAggregator(),
		sink:     NewTermSink(screen, cfg.Particles.MaxRadius*1.1, cfg.Render.TwinkleSpeed),
		keySpeed: cfg.Gesture.KeySpeed,
	}
	app.run(time.Second / time.Duration(max(*fps, 1)))
}

type termApp struct {
	screen   tcell.Screen
	engine   *systems.FrameEngine
	pointers *systems.InteractionAggregator
	sink     *TermSink
	points   []systems.InteractionPoint

	keySpeed float64
	keyDir   float64
	keyUntil time.Time
	dragging bool
}

func (a *termApp) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	start := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			sig := systems.GestureSignal{}
			if now.Before(a.keyUntil) {
				sig = systems.GestureSignal{Active: true, VelocityX: a.keyDir * a.keySpeed}
			}
			a.points = a.pointers.Snapshot(a.points)
			a.engine.Step(now.Sub(start).Seconds(), sig, a.points, a.sink.Viewport())
			a.sink.Render(a.engine.Frame())
		}
	}
}

// handleEvent returns false when the user asks to quit.
func (a *termApp) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.holdKey(-1)
		case tcell.KeyRight:
			a.holdKey(1)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		if ev.Buttons()&tcell.Button1 != 0 {
			nx, ny := a.sink.Normalized(col, row)
			a.pointers.Upsert(0, nx, ny)
			a.dragging = true
		} else if a.dragging {
			a.pointers.Remove(0)
			a.dragging = false
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *termApp) holdKey(dir float64) {
	a.keyDir = dir
	a.keyUntil = time.Now().Add(keyHold)
}
