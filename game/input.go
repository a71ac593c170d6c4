package game

import rl "github.com/gen2brain/raylib-go/raylib"

// mousePointerID is the interaction id of the mouse; touch ids are offset past it.
const mousePointerID = 0

// frameTime returns the last frame's duration in seconds.
func frameTime() float64 {
	return float64(rl.GetFrameTime())
}

// handleInput processes keyboard, pointer and wheel input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.controls.Toggle()
	}
	for _, key := range g.overlays.Keys() {
		if rl.IsKeyPressed(key) {
			g.overlays.HandleKeyPress(key)
		}
	}

	g.handleGestureKeys()
	g.handlePointers()
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	g.tuning.SetPosition(w-330, 10)
	g.windGauge.SetPosition(10, int32(h)-140)
	g.perfPanel.SetPosition(int32(w)-260, int32(h)-160)
}

// handleGestureKeys turns held Left/Right into a gesture for the "keys" source.
func (g *Game) handleGestureKeys() {
	left := rl.IsKeyDown(rl.KeyLeft)
	right := rl.IsKeyDown(rl.KeyRight)
	g.keyGesture.Set(keyVelocity(left, right, g.cfg.Gesture.KeySpeed))
}

// handlePointers upserts every held mouse button or touch point and removes
// ids that were released since the last frame.
func (g *Game) handlePointers() {
	seen := make(map[int64]bool)

	mouseDown := rl.IsMouseButtonDown(rl.MouseButtonLeft)
	if mouseDown {
		pos := rl.GetMousePosition()
		if !g.tuning.Contains(pos.X, pos.Y) {
			g.upsertScreen(mousePointerID, pos.X, pos.Y)
			seen[mousePointerID] = true
		}
	}

	// Desktop builds mirror the left button as a single touch point
	n := rl.GetTouchPointCount()
	if mouseDown && n == 1 {
		n = 0
	}
	for i := int32(0); i < n; i++ {
		id := int64(rl.GetTouchPointId(i)) + 1
		pos := rl.GetTouchPosition(i)
		if g.tuning.Contains(pos.X, pos.Y) {
			continue
		}
		g.upsertScreen(id, pos.X, pos.Y)
		seen[id] = true
	}

	// Anything not held this frame was released
	for _, id := range g.pointers.IDs() {
		if !seen[id] {
			g.pointers.Remove(id)
		}
	}
}

func (g *Game) upsertScreen(id int64, sx, sy float32) {
	nx, ny := g.camera.ScreenToNormalized(sx, sy)
	g.pointers.Upsert(id, nx, ny)
}

// handleCameraInput processes dolly controls.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.DollyBy(1 - float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.DollyBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.DollyBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

// applyTuning pushes tuning panel values into the engine and renderers.
func (g *Game) applyTuning() {
	wind := g.engine.WindSmoother()
	p := wind.Params()
	p.Gain = float64(g.tuned.WindGain)
	p.Smoothing = float64(g.tuned.Smoothing)
	wind.SetParams(p)

	g.stars.PointScale = g.tuned.PointScale
	g.stars.TwinkleSpeed = float64(g.tuned.TwinkleSpeed)
	g.sun.Intensity = g.tuned.LightIntensity
}

// clearPointers drops every interaction point, e.g. after a stuck touch.
func (g *Game) clearPointers() {
	g.pointers.Clear()
	g.points = g.points[:0]
}
