package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/telemetry"
	"github.com/pthm-cable/vortex/ui"
)

const controlsLegend = "Drag: repel | Left/Right: gesture | Wheel: dolly | Tab: tuning | C: overlays | Home: reset view"

// Draw renders the frame and ends the perf tick started by Update.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	bg := g.cfg.Render.Background
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})

	if g.overlays.IsEnabled(ui.OverlaySun) {
		g.sun.Draw()
	}
	g.stars.Render(g.engine.Frame())

	g.drawUI()

	rl.EndDrawing()
	g.perfCollector.EndTick()
}

// drawUI renders the HUD, overlays and panels on top of the scene.
func (g *Game) drawUI() {
	if g.overlays.IsEnabled(ui.OverlayPointers) {
		g.markers.Draw(g.points, g.camera, g.engine.Influence())
	}

	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.hud.Draw(ui.HUDData{
			Title:         Title,
			Particles:     g.store.Len(),
			Pointers:      len(g.points),
			Frame:         g.engine.Frames(),
			FPS:           rl.GetFPS(),
			Wind:          g.engine.Wind(),
			Rotation:      g.engine.Rotation(),
			GestureSource: g.gestureSource,
			GestureActive: g.signal.Active,
			ScreenWidth:   int32(g.screenWidth),
			ScreenHeight:  int32(g.screenHeight),
		})
		g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	}

	if g.overlays.IsEnabled(ui.OverlayWind) {
		smoother := g.engine.WindSmoother()
		p := smoother.Params()
		limit := p.Gain * g.cfg.Gesture.SweepSpeed * 2
		g.windGauge.Draw(g.signal, smoother.Target(g.signal), smoother.Value(), max(limit, 0.1), p.Smoothing)
	}

	if g.overlays.IsEnabled(ui.OverlayPerf) {
		g.perfPanel.Draw(g.perfCollector.Stats(), g.perfCollector.LastPhase(telemetry.PhaseUpdate))
	}

	g.controls.Draw(g.overlays)

	action := g.tuning.Draw(&g.tuned)
	if action.Changed {
		g.applyTuning()
	}
	if action.ClearPointers {
		g.clearPointers()
	}
	if action.ResetWind {
		g.engine.WindSmoother().Reset()
	}
	if action.ResetView {
		g.camera.Reset()
	}
}
