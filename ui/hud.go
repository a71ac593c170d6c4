package ui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/camera"
	"github.com/pthm-cable/vortex/systems"
	"github.com/pthm-cable/vortex/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	Particles     int
	Pointers      int
	Frame         int64
	FPS           int32
	Wind          float64
	Rotation      float64
	GestureSource string
	GestureActive bool
	ScreenWidth   int32
	ScreenHeight  int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.RayWhite)

	rl.DrawText(
		fmt.Sprintf("Stars: %d | Pointers: %d | FPS: %d", data.Particles, data.Pointers, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Frame: %d | Wind: %+.3f | Rotation: %.1f°", data.Frame, data.Wind, math.Mod(data.Rotation*180/math.Pi, 360)),
		10, 55, 16, rl.LightGray,
	)

	status := "gesture: " + data.GestureSource
	color := rl.Gray
	if data.GestureActive {
		status += " (active)"
		color = h.renderer.Theme.SectionHeader
	}
	rl.DrawText(status, 10, 75, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// WindGauge shows the raw gesture velocity next to the smoothed wind.
type WindGauge struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewWindGauge creates a wind gauge panel.
func NewWindGauge(x, y, width int32) *WindGauge {
	return &WindGauge{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (w *WindGauge) SetPosition(x, y int32) {
	w.x = x
	w.y = y
}

// Draw renders the gauge. target and wind share the same scale; alpha is
// the smoother's per-frame lerp factor.
func (w *WindGauge) Draw(sig systems.GestureSignal, target, wind, limit, alpha float64) {
	r := w.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*5 + pad*2 + 2
	r.DrawPanel(w.x, w.y, w.width, height)

	y := r.DrawSectionHeader(w.x+pad, w.y+pad, "Wind")
	inner := w.width - pad*2
	y = r.DrawCenteredBar(w.x+pad, y, "gesture vx", float32(sig.VelocityX), 0.1, inner)
	y = r.DrawCenteredBar(w.x+pad, y, "target", float32(target), float32(limit), inner)
	y = r.DrawCenteredBar(w.x+pad, y, "wind", float32(wind), float32(limit), inner)
	r.DrawBar(w.x+pad, y, "smoothing", float32(alpha), inner)
}

// PointerMarkers outlines each interaction point's influence radius.
type PointerMarkers struct {
	renderer *Renderer
}

// NewPointerMarkers creates a pointer overlay.
func NewPointerMarkers() *PointerMarkers {
	return &PointerMarkers{renderer: NewRenderer()}
}

// Draw renders a circle per point. Radii are converted from world units to
// pixels at the z = 0 plane.
func (p *PointerMarkers) Draw(points []systems.InteractionPoint, cam *camera.Camera, params systems.InfluenceParams) {
	vp := cam.Viewport()
	if vp.ScaleY <= 0 {
		return
	}
	pxPerUnit := float64(cam.ViewportH) / 2 / vp.ScaleY
	for _, pt := range points {
		sx, sy := cam.NormalizedToScreen(pt.X, pt.Y)
		radius := (params.BaseRadius + pt.Speed*params.RadiusPerSpeed) * pxPerUnit
		rl.DrawCircleLines(int32(sx), int32(sy), float32(radius), p.renderer.Theme.PointerColor)
		rl.DrawText(fmt.Sprintf("%d", pt.ID), int32(sx)+4, int32(sy)+4, 10, p.renderer.Theme.PointerColor)
	}
}

// PerfPanel renders the per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

var perfPhases = []string{
	telemetry.PhaseInput,
	telemetry.PhaseGesture,
	telemetry.PhaseInteraction,
	telemetry.PhaseUpdate,
	telemetry.PhaseRender,
	telemetry.PhaseTelemetry,
}

// Draw renders the performance panel. lastUpdate is the position update
// time of the most recent frame.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, lastUpdate time.Duration) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Phases", x, y, 16, rl.RayWhite)
	y += 20

	r := p.renderer
	y = r.DrawLabelValue(x, y, "avg", fmt.Sprintf("%dus", stats.AvgTickDuration.Microseconds()))
	y = r.DrawLabelValue(x, y, "max", fmt.Sprintf("%dus", stats.MaxTickDuration.Microseconds()))
	y = r.DrawLabelValue(x, y, "update", fmt.Sprintf("%dus", lastUpdate.Microseconds()))

	for _, phase := range perfPhases {
		pct := stats.PhasePct[phase]
		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %6dus %5.1f%%", phase, stats.PhaseAvg[phase].Microseconds(), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
