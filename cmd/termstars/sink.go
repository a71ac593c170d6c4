package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/vortex/systems"
)

// ramp maps accumulated brightness to a glyph, dimmest first.
var ramp = []rune{'.', '·', ':', '+', '*', '✦', '@'}

// cellAspect is how many times taller a terminal cell is than it is wide.
const cellAspect = 2.0

// TermSink renders frames onto a tcell screen, one glyph per cell. Stars that
// land in the same cell add their brightness and the cell takes the color of
// the brightest one.
type TermSink struct {
	screen       tcell.Screen
	halfExtent   float64 // world units from center to the top edge
	twinkleSpeed float64
	background   tcell.Style

	light  []float32
	peak   []float32
	colors []tcell.Color
}

// NewTermSink creates a sink that fits halfExtent world units into half the
// screen height.
func NewTermSink(screen tcell.Screen, halfExtent, twinkleSpeed float64) *TermSink {
	return &TermSink{
		screen:       screen,
		halfExtent:   halfExtent,
		twinkleSpeed: twinkleSpeed,
		background:   tcell.StyleDefault.Background(tcell.ColorBlack),
	}
}

// Viewport returns the world scale of the screen edges for normalized
// pointer coordinates.
func (s *TermSink) Viewport() systems.Viewport {
	w, h := s.screen.Size()
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / (float64(h) * cellAspect)
	}
	return systems.Viewport{ScaleX: s.halfExtent * aspect, ScaleY: s.halfExtent}
}

// Normalized converts a cell coordinate to [-1, 1] with +y up.
func (s *TermSink) Normalized(col, row int) (float64, float64) {
	w, h := s.screen.Size()
	if w <= 1 || h <= 1 {
		return 0, 0
	}
	nx := float64(col)/float64(w-1)*2 - 1
	ny := 1 - float64(row)/float64(h-1)*2
	return nx, ny
}

// Render draws f and shows the screen.
func (s *TermSink) Render(f systems.Frame) {
	w, h := s.screen.Size()
	n := w * h
	if n == 0 {
		return
	}
	s.resize(n)

	vp := s.Viewport()
	for i := 0; i < f.Len(); i++ {
		x, y, _ := f.WorldPosition(i)
		col := int(math.Floor((float64(x)/vp.ScaleX + 1) / 2 * float64(w-1)))
		row := int(math.Floor((1 - float64(y)/vp.ScaleY) / 2 * float64(h-1)))
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		cell := row*w + col
		b := f.Twinkle(i, s.twinkleSpeed) * f.Sizes[i]
		s.light[cell] += b
		if b > s.peak[cell] {
			s.peak[cell] = b
			c := i * 3
			s.colors[cell] = tcell.NewRGBColor(
				int32(f.Colors[c]*255), int32(f.Colors[c+1]*255), int32(f.Colors[c+2]*255),
			)
		}
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			cell := row*w + col
			if s.light[cell] == 0 {
				s.screen.SetContent(col, row, ' ', nil, s.background)
				continue
			}
			style := s.background.Foreground(s.colors[cell])
			s.screen.SetContent(col, row, glyph(s.light[cell]), nil, style)
		}
	}
	s.screen.Show()
}

func (s *TermSink) resize(n int) {
	if cap(s.light) < n {
		s.light = make([]float32, n)
		s.peak = make([]float32, n)
		s.colors = make([]tcell.Color, n)
		return
	}
	s.light = s.light[:n]
	s.peak = s.peak[:n]
	s.colors = s.colors[:n]
	clear(s.light)
	clear(s.peak)
}

// glyph picks a ramp rune for brightness b; one average star is about 1.
func glyph(b float32) rune {
	idx := int(b * 1.5)
	if idx >= len(ramp) {
		idx = len(ramp) - 1
	}
	return ramp[idx]
}
