package systems

import (
	"math/rand"
	"runtime"
	"testing"
)

func benchStore(b *testing.B) *ParticleStore {
	b.Helper()
	cfg := StoreConfig{
		MinRadius:  2,
		MaxRadius:  22,
		Depth:      6,
		SizeRange:  [2]float64{0.5, 2.5},
		PhaseRange: [2]float64{0, 6.28},
		AngleRange: [2]float64{0, 6.28},
		Palette:    [][3]float32{{1, 1, 1}},
	}
	s, err := NewParticleStore(16000, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}
	return s
}

// Benchmark the per-particle loop with no interaction points
func BenchmarkUpdateBaseline(b *testing.B) {
	s := benchStore(b)
	m := DefaultMotionParams()
	p := DefaultInfluenceParams()
	in := FrameInput{Viewport: Viewport{ScaleX: 20, ScaleY: 12}}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		in.Time = float64(n) / 60
		UpdatePositions(s, in, m, p)
	}
}

// Benchmark with a handful of active pointers and wind
func BenchmarkUpdateInteractive(b *testing.B) {
	s := benchStore(b)
	m := DefaultMotionParams()
	p := DefaultInfluenceParams()
	in := FrameInput{
		Points: []InteractionPoint{
			{ID: 0, X: 0.1, Y: 0.1, Speed: 0.02},
			{ID: 1, X: -0.4, Y: 0.2, Speed: 0.1},
			{ID: 2, X: 0.3, Y: -0.5, Speed: 0},
		},
		Wind:     0.8,
		Viewport: Viewport{ScaleX: 20, ScaleY: 12},
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		in.Time = float64(n) / 60
		UpdatePositions(s, in, m, p)
	}
}

// Benchmark the sharded engine step
func BenchmarkEngineStepSharded(b *testing.B) {
	s := benchStore(b)
	opts := DefaultEngineOptions()
	opts.Workers = runtime.GOMAXPROCS(0)
	e := NewFrameEngine(s, opts)
	defer e.Close()

	pts := []InteractionPoint{{ID: 0, X: 0.1, Y: 0.1, Speed: 0.02}}
	vp := Viewport{ScaleX: 20, ScaleY: 12}
	sig := GestureSignal{Active: true, VelocityX: 0.05}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.Step(float64(n)/60, sig, pts, vp)
	}
}
