package main

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/vortex/systems"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func TestTermSinkPlacesStars(t *testing.T) {
	screen := newSimScreen(t, 41, 21)
	sink := NewTermSink(screen, 10, 0)

	// One star at the origin, one at the top edge, one off screen
	store, err := systems.NewStoreFromPositions([][3]float32{
		{0, 0, 0},
		{0, 10, 0},
		{0, 50, 0},
	}, [3]float32{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	sink.Render(store.Frame(0, 0))

	if r, _, _, _ := screen.GetContent(20, 10); r == ' ' {
		t.Error("expected a glyph at the center cell")
	}
	if r, _, _, _ := screen.GetContent(20, 0); r == ' ' {
		t.Error("expected a glyph at the top center cell")
	}

	lit := 0
	for row := 0; row < 21; row++ {
		for col := 0; col < 41; col++ {
			if r, _, _, _ := screen.GetContent(col, row); r != ' ' {
				lit++
			}
		}
	}
	if lit != 2 {
		t.Errorf("lit cells = %d, want 2 (off-screen star dropped)", lit)
	}
}

func TestTermSinkClipsJustPastEdges(t *testing.T) {
	screen := newSimScreen(t, 41, 21)
	sink := NewTermSink(screen, 10, 0)
	vp := sink.Viewport()

	// Fractional cells in (-1, 0) on the left and top edges
	store, err := systems.NewStoreFromPositions([][3]float32{
		{float32(-1.02 * vp.ScaleX), 0, 0},
		{0, float32(1.02 * vp.ScaleY), 0},
	}, [3]float32{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	sink.Render(store.Frame(0, 0))

	for row := 0; row < 21; row++ {
		for col := 0; col < 41; col++ {
			if r, _, _, _ := screen.GetContent(col, row); r != ' ' {
				t.Errorf("cell (%d, %d) = %q, want blank", col, row, r)
			}
		}
	}
}

func TestTermSinkNormalizedMatchesViewport(t *testing.T) {
	screen := newSimScreen(t, 81, 21)
	sink := NewTermSink(screen, 10, 0)

	nx, ny := sink.Normalized(80, 0)
	if nx != 1 || ny != 1 {
		t.Errorf("top-right cell = (%v, %v), want (1, 1)", nx, ny)
	}
	nx, ny = sink.Normalized(40, 10)
	if math.Abs(nx) > 1e-9 || math.Abs(ny) > 1e-9 {
		t.Errorf("center cell = (%v, %v), want (0, 0)", nx, ny)
	}

	// 81 columns over 21 rows of double-height cells
	vp := sink.Viewport()
	want := 10 * 81.0 / (21 * cellAspect)
	if math.Abs(vp.ScaleX-want) > 1e-9 || vp.ScaleY != 10 {
		t.Errorf("Viewport = %+v, want ScaleX %v ScaleY 10", vp, want)
	}
}

func TestGlyphRamp(t *testing.T) {
	if glyph(0.1) != ramp[0] {
		t.Errorf("dim star glyph = %q, want %q", glyph(0.1), ramp[0])
	}
	if glyph(100) != ramp[len(ramp)-1] {
		t.Errorf("bright cluster glyph = %q, want %q", glyph(100), ramp[len(ramp)-1])
	}
}
