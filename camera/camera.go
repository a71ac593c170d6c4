// Package camera provides the orbit view onto the star field.
package camera

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/systems"
)

// Camera looks at the origin from a distance along the disc normal, tilted
// back by Elevation. Wheel dolly changes the target distance and a spring
// eases the actual distance toward it.
type Camera struct {
	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Distance is the current eye distance from the origin
	Distance float64

	// Fovy is the vertical field of view in degrees
	Fovy float64

	// Elevation tilts the eye away from the disc normal, in degrees
	Elevation float64

	MinDistance, MaxDistance float64

	target   float64
	home     float64
	velocity float64
	spring   harmonica.Spring
}

// Options configures a Camera.
type Options struct {
	Distance    float64
	MinDistance float64
	MaxDistance float64
	Fovy        float64
	Elevation   float64
	FPS         int
	Frequency   float64 // spring angular frequency
	Damping     float64 // spring damping ratio; 1 is critical
}

// OptionsFrom reads the view section of cfg.
func OptionsFrom(cfg *config.Config) Options {
	v := cfg.View
	return Options{
		Distance:    v.Distance,
		MinDistance: v.MinDistance,
		MaxDistance: v.MaxDistance,
		Fovy:        v.Fovy,
		Elevation:   v.Elevation,
		FPS:         cfg.Screen.TargetFPS,
		Frequency:   v.Frequency,
		Damping:     v.Damping,
	}
}

// New creates a camera at opts.Distance.
func New(viewportW, viewportH float32, opts Options) *Camera {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.MaxDistance < opts.MinDistance {
		opts.MaxDistance = opts.MinDistance
	}
	d := clamp(opts.Distance, opts.MinDistance, opts.MaxDistance)
	return &Camera{
		ViewportW:   viewportW,
		ViewportH:   viewportH,
		Distance:    d,
		Fovy:        opts.Fovy,
		Elevation:   opts.Elevation,
		MinDistance: opts.MinDistance,
		MaxDistance: opts.MaxDistance,
		target:      d,
		home:        d,
		spring:      harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping),
	}
}

// Update advances the dolly spring by one frame.
func (c *Camera) Update() {
	c.Distance, c.velocity = c.spring.Update(c.Distance, c.velocity, c.target)
}

// Target returns the distance the dolly is easing toward.
func (c *Camera) Target() float64 {
	return c.target
}

// DollyBy multiplies the target distance by factor, clamped to min/max.
func (c *Camera) DollyBy(factor float64) {
	c.SetTarget(c.target * factor)
}

// SetTarget sets the target distance, clamped to min/max.
func (c *Camera) SetTarget(d float64) {
	c.target = clamp(d, c.MinDistance, c.MaxDistance)
}

// Reset snaps back to the starting distance.
func (c *Camera) Reset() {
	c.Distance = c.home
	c.target = c.home
	c.velocity = 0
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Aspect returns width over height, or 1 for a degenerate viewport.
func (c *Camera) Aspect() float64 {
	if c.ViewportH <= 0 || c.ViewportW <= 0 {
		return 1
	}
	return float64(c.ViewportW) / float64(c.ViewportH)
}

// Eye returns the eye position in world coordinates.
func (c *Camera) Eye() (x, y, z float64) {
	sin, cos := math.Sincos(c.Elevation * math.Pi / 180)
	return 0, -c.Distance * sin, c.Distance * cos
}

// Viewport returns the half-extents of the visible region at z = 0, which
// map normalized interaction coordinates to world units.
func (c *Camera) Viewport() systems.Viewport {
	halfH := c.Distance * math.Tan(c.Fovy*math.Pi/360)
	return systems.Viewport{ScaleX: halfH * c.Aspect(), ScaleY: halfH}
}

// ScreenToNormalized maps a screen pixel to [-1, 1] on both axes, with +y up.
// Points outside the window map outside the range.
func (c *Camera) ScreenToNormalized(sx, sy float32) (nx, ny float64) {
	if c.ViewportW <= 0 || c.ViewportH <= 0 {
		return 0, 0
	}
	nx = float64(sx)/float64(c.ViewportW)*2 - 1
	ny = 1 - float64(sy)/float64(c.ViewportH)*2
	return nx, ny
}

// NormalizedToScreen is the inverse of ScreenToNormalized.
func (c *Camera) NormalizedToScreen(nx, ny float64) (sx, sy float32) {
	sx = float32((nx + 1) / 2 * float64(c.ViewportW))
	sy = float32((1 - ny) / 2 * float64(c.ViewportH))
	return sx, sy
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
