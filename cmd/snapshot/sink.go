package main

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/pthm-cable/vortex/systems"
)

// minDotRadius keeps the smallest stars visible at small image sizes.
const minDotRadius = 0.6

// PNGSink draws frames into an image with additive-looking soft dots.
type PNGSink struct {
	dc           *gg.Context
	viewport     systems.Viewport
	twinkleSpeed float64
	background   color.RGBA
	dotScale     float64 // pixels per unit of particle size

	Particles int
	Wind      float64
}

// NewPNGSink creates a square sink of size pixels. vp gives the world
// half-extent covered by the image edges.
func NewPNGSink(size int, vp systems.Viewport, twinkleSpeed float64, bg [3]int) *PNGSink {
	return &PNGSink{
		dc:           gg.NewContext(size, size),
		viewport:     vp,
		twinkleSpeed: twinkleSpeed,
		background:   color.RGBA{uint8(bg[0]), uint8(bg[1]), uint8(bg[2]), 255},
		dotScale:     float64(size) / 800,
	}
}

// Project maps world coordinates to pixels, +y up.
func (s *PNGSink) Project(x, y float64) (px, py float64) {
	w := float64(s.dc.Width())
	h := float64(s.dc.Height())
	px = (x/s.viewport.ScaleX + 1) / 2 * w
	py = (1 - y/s.viewport.ScaleY) / 2 * h
	return px, py
}

// Render clears the image and draws every particle of f.
func (s *PNGSink) Render(f systems.Frame) {
	s.dc.SetColor(s.background)
	s.dc.Clear()

	for i := 0; i < f.Len(); i++ {
		x, y, _ := f.WorldPosition(i)
		px, py := s.Project(float64(x), float64(y))
		if px < 0 || py < 0 || px >= float64(s.dc.Width()) || py >= float64(s.dc.Height()) {
			continue
		}

		alpha := float64(f.Twinkle(i, s.twinkleSpeed))
		r := math.Max(minDotRadius, float64(f.Sizes[i])*s.dotScale)
		c := i * 3
		red, green, blue := float64(f.Colors[c]), float64(f.Colors[c+1]), float64(f.Colors[c+2])

		// Halo then core
		s.dc.SetRGBA(red, green, blue, alpha*0.25)
		s.dc.DrawCircle(px, py, r*2.5)
		s.dc.Fill()
		s.dc.SetRGBA(red, green, blue, alpha)
		s.dc.DrawCircle(px, py, r)
		s.dc.Fill()
	}
	s.Particles = f.Len()
}

// Caption writes text in the top-left corner using the Go mono face.
func (s *PNGSink) Caption(text string) error {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    14 * s.dotScale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	s.dc.SetFontFace(face)
	s.dc.SetRGB(0.8, 0.8, 0.9)
	s.dc.DrawStringAnchored(text, 10, 10, 0, 1)
	return nil
}

// Save writes the image as PNG.
func (s *PNGSink) Save(path string) error {
	return s.dc.SavePNG(path)
}
