package main

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/vortex/config"
	"github.com/pthm-cable/vortex/systems"
)

func TestProject(t *testing.T) {
	sink := NewPNGSink(200, systems.Viewport{ScaleX: 10, ScaleY: 10}, 0, [3]int{0, 0, 0})

	tests := []struct {
		name   string
		x, y   float64
		px, py float64
	}{
		{"center", 0, 0, 100, 100},
		{"top left", -10, 10, 0, 0},
		{"right edge", 10, 0, 200, 100},
		{"bottom", 0, -5, 100, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, py := sink.Project(tt.x, tt.y)
			if math.Abs(px-tt.px) > 1e-9 || math.Abs(py-tt.py) > 1e-9 {
				t.Errorf("Project(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, px, py, tt.px, tt.py)
			}
		})
	}
}

func TestRenderLightsStarPixel(t *testing.T) {
	sink := NewPNGSink(100, systems.Viewport{ScaleX: 10, ScaleY: 10}, 0, [3]int{0, 0, 0})
	store, err := systems.NewStoreFromPositions([][3]float32{{5, 5, 0}}, [3]float32{1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	sink.Render(store.Frame(0, 0))

	img := sink.dc.Image()
	r, _, _, _ := img.At(75, 25).RGBA()
	if r == 0 {
		t.Error("expected the star pixel to be lit")
	}
	r, _, _, _ = img.At(10, 90).RGBA()
	if r != 0 {
		t.Errorf("empty corner red = %d, want 0", r)
	}
	if sink.Particles != 1 {
		t.Errorf("Particles = %d, want 1", sink.Particles)
	}
}

func TestRunWritesPNG(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Particles.Count = 500

	snap, err := run(cfg, 0.5, 7, 64, 1.5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if snap.Particles != 500 {
		t.Errorf("Particles = %d, want 500", snap.Particles)
	}
	if snap.Wind >= 0 {
		t.Errorf("Wind = %v, want < 0 after holding a rightward hand sweep", snap.Wind)
	}
	if err := snap.Caption("test"); err != nil {
		t.Fatalf("Caption: %v", err)
	}
	if err := snap.Save(filepath.Join(t.TempDir(), "out.png")); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestRunRejectsBadSize(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := run(cfg, 1, 1, 0, 0); err == nil {
		t.Error("expected an error for size 0")
	}
}
