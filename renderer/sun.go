package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/camera"
)

// SunRenderer draws the central light the stars orbit.
type SunRenderer struct {
	cam       *camera.Camera
	Intensity float32

	sprite      rl.Texture2D
	source      rl.Rectangle
	initialized bool
}

// NewSunRenderer creates a new sun renderer.
func NewSunRenderer(cam *camera.Camera, intensity float32) *SunRenderer {
	return &SunRenderer{cam: cam, Intensity: intensity}
}

// Init creates the glow texture (must be called after the raylib window is created).
func (r *SunRenderer) Init() {
	if r.initialized {
		return
	}
	r.sprite = loadGlowSprite()
	r.source = rl.Rectangle{Width: spriteSize, Height: spriteSize}
	r.initialized = true
}

// Draw renders the glow layers and core at the origin.
func (r *SunRenderer) Draw() {
	if !r.initialized {
		r.Init()
	}
	if r.Intensity <= 0 {
		return
	}

	view := Camera3D(r.cam)

	// Outer layers are wide and faint
	glowLayers := []struct {
		size  float32
		alpha float32
	}{
		{24, 20},
		{12, 40},
		{6, 90},
		{2.5, 180},
	}

	rl.BeginMode3D(view)
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, layer := range glowLayers {
		alpha := min(layer.alpha*r.Intensity, 255)
		color := rl.Color{R: 255, G: 220, B: 180, A: uint8(alpha)}
		rl.DrawBillboard(view, r.sprite, rl.Vector3{}, layer.size, color)
	}
	rl.EndBlendMode()

	coreAlpha := uint8(min(230*r.Intensity, 255))
	rl.DrawSphere(rl.Vector3{}, 0.35, rl.Color{R: 255, G: 250, B: 230, A: coreAlpha})
	rl.EndMode3D()
}

// Unload frees the glow texture.
func (r *SunRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
}
