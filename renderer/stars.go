package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/vortex/camera"
	"github.com/pthm-cable/vortex/systems"
)

// spriteSize is the side of the generated star sprite in pixels.
const spriteSize = 64

// StarRenderer is the raylib render sink: one additive billboard per star,
// tinted by its color and twinkle, turned by its sprite angle.
type StarRenderer struct {
	cam *camera.Camera

	PointScale   float32
	TwinkleSpeed float64

	sprite      rl.Texture2D
	source      rl.Rectangle
	initialized bool
}

// NewStarRenderer creates a star renderer viewing through cam.
func NewStarRenderer(cam *camera.Camera, pointScale float32, twinkleSpeed float64) *StarRenderer {
	return &StarRenderer{
		cam:          cam,
		PointScale:   pointScale,
		TwinkleSpeed: twinkleSpeed,
	}
}

// Init creates the sprite texture (must be called after the raylib window is created).
func (r *StarRenderer) Init() {
	if r.initialized {
		return
	}
	r.sprite = loadGlowSprite()
	r.source = rl.Rectangle{Width: spriteSize, Height: spriteSize}
	r.initialized = true
}

// Render draws f. It must run between BeginDrawing and EndDrawing.
func (r *StarRenderer) Render(f systems.Frame) {
	if !r.initialized {
		r.Init()
	}

	view := Camera3D(r.cam)
	up := view.Up

	rl.BeginMode3D(view)
	rl.BeginBlendMode(rl.BlendAdditive)

	n := f.Len()
	for i := 0; i < n; i++ {
		x, y, z := f.WorldPosition(i)
		size := f.Sizes[i] * r.PointScale
		tw := f.Twinkle(i, r.TwinkleSpeed)

		c := i * 3
		tint := rl.Color{
			R: channel(f.Colors[c] * tw),
			G: channel(f.Colors[c+1] * tw),
			B: channel(f.Colors[c+2] * tw),
			A: 255,
		}
		half := size / 2
		rl.DrawBillboardPro(view, r.sprite, r.source,
			rl.Vector3{X: x, Y: y, Z: z}, up,
			rl.Vector2{X: size, Y: size}, rl.Vector2{X: half, Y: half},
			f.Angles[i]*180/math.Pi, tint)
	}

	rl.EndBlendMode()
	rl.EndMode3D()
}

// Unload frees the sprite texture.
func (r *StarRenderer) Unload() {
	if r.initialized {
		rl.UnloadTexture(r.sprite)
		r.initialized = false
	}
}

// Camera3D converts the orbit camera to a raylib camera.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	ex, ey, ez := cam.Eye()
	sin, cos := math.Sincos(cam.Elevation * math.Pi / 180)
	return rl.Camera3D{
		Position:   rl.Vector3{X: float32(ex), Y: float32(ey), Z: float32(ez)},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: float32(cos), Z: float32(sin)},
		Fovy:       float32(cam.Fovy),
		Projection: rl.CameraPerspective,
	}
}

// loadGlowSprite builds a soft radial falloff texture.
func loadGlowSprite() rl.Texture2D {
	img := rl.GenImageGradientRadial(spriteSize, spriteSize, 0.1, rl.White, rl.Blank)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// channel converts a [0, 1] intensity to a color byte.
func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
