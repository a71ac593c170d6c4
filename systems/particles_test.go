package systems

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func testStoreConfig() StoreConfig {
	return StoreConfig{
		MinRadius:  2,
		MaxRadius:  10,
		Depth:      4,
		SizeRange:  [2]float64{0.5, 2},
		PhaseRange: [2]float64{0, 2 * math.Pi},
		AngleRange: [2]float64{-1, 1},
		Palette: [][3]float32{
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}

func TestNewParticleStoreLayout(t *testing.T) {
	cfg := testStoreConfig()
	s, err := NewParticleStore(500, cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}

	if s.Len() != 500 {
		t.Fatalf("Len = %d, want 500", s.Len())
	}
	for name, got := range map[string]int{
		"initial":   len(s.Initial),
		"positions": len(s.Positions),
		"colors":    len(s.Colors),
	} {
		if got != 1500 {
			t.Errorf("len(%s) = %d, want 1500", name, got)
		}
	}
	for name, got := range map[string]int{
		"sizes":  len(s.Sizes),
		"phases": len(s.Phases),
		"angles": len(s.Angles),
	} {
		if got != 500 {
			t.Errorf("len(%s) = %d, want 500", name, got)
		}
	}
}

func TestNewParticleStoreRanges(t *testing.T) {
	cfg := testStoreConfig()
	s, err := NewParticleStore(2000, cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewParticleStore: %v", err)
	}

	const eps = 1e-4
	for i := 0; i < s.Len(); i++ {
		x, y, z := s.InitialAt(i)
		r := math.Hypot(float64(x), float64(y))
		if r < cfg.MinRadius-eps || r > cfg.MaxRadius+eps {
			t.Fatalf("particle %d radius %f outside [%v, %v]", i, r, cfg.MinRadius, cfg.MaxRadius)
		}
		if math.Abs(float64(z)) > cfg.Depth/2+eps {
			t.Fatalf("particle %d z %f outside depth %v", i, z, cfg.Depth)
		}

		px, py, pz := s.PositionAt(i)
		if px != x || py != y || pz != z {
			t.Fatalf("particle %d position %v,%v,%v differs from baseline", i, px, py, pz)
		}

		if s.Sizes[i] < 0.5 || s.Sizes[i] > 2 {
			t.Fatalf("particle %d size %f out of range", i, s.Sizes[i])
		}
		if s.Angles[i] < -1 || s.Angles[i] > 1 {
			t.Fatalf("particle %d angle %f out of range", i, s.Angles[i])
		}
		if s.Phases[i] < 0 || float64(s.Phases[i]) > 2*math.Pi+eps {
			t.Fatalf("particle %d phase %f out of range", i, s.Phases[i])
		}

		c := s.Colors[i*3 : i*3+3]
		found := false
		for _, p := range cfg.Palette {
			if c[0] == p[0] && c[1] == p[1] && c[2] == p[2] {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("particle %d color %v not in palette", i, c)
		}
	}
}

func TestNewParticleStoreSeeded(t *testing.T) {
	cfg := testStoreConfig()
	a, _ := NewParticleStore(100, cfg, rand.New(rand.NewSource(99)))
	b, _ := NewParticleStore(100, cfg, rand.New(rand.NewSource(99)))

	for i := range a.Initial {
		if a.Initial[i] != b.Initial[i] {
			t.Fatalf("same seed produced different baselines at %d", i)
		}
	}
}

func TestNewParticleStoreInvalid(t *testing.T) {
	tests := []struct {
		name   string
		count  int
		mutate func(*StoreConfig)
		want   error
	}{
		{"zero count", 0, nil, ErrInvalidCount},
		{"negative count", -5, nil, ErrInvalidCount},
		{"empty palette", 10, func(c *StoreConfig) { c.Palette = nil }, ErrEmptyPalette},
		{"inverted radius", 10, func(c *StoreConfig) { c.MinRadius, c.MaxRadius = 5, 1 }, ErrInvertedRange},
		{"inverted size", 10, func(c *StoreConfig) { c.SizeRange = [2]float64{2, 1} }, ErrInvertedRange},
		{"inverted phase", 10, func(c *StoreConfig) { c.PhaseRange = [2]float64{1, 0} }, ErrInvertedRange},
		{"inverted angle", 10, func(c *StoreConfig) { c.AngleRange = [2]float64{1, -1} }, ErrInvertedRange},
		{"negative depth", 10, func(c *StoreConfig) { c.Depth = -1 }, ErrInvertedRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testStoreConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			s, err := NewParticleStore(tt.count, cfg, rand.New(rand.NewSource(1)))
			if s != nil {
				t.Error("expected nil store on error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewStoreFromPositions(t *testing.T) {
	s, err := NewStoreFromPositions([][3]float32{{1, 2, 3}, {4, 5, 6}}, [3]float32{1, 1, 1})
	if err != nil {
		t.Fatalf("NewStoreFromPositions: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	x, y, z := s.PositionAt(1)
	if x != 4 || y != 5 || z != 6 {
		t.Errorf("position 1 = (%v, %v, %v), want (4, 5, 6)", x, y, z)
	}

	s.Positions[0] = 99
	s.Reset()
	if s.Positions[0] != 1 {
		t.Errorf("Reset did not restore baseline, got %v", s.Positions[0])
	}

	if _, err := NewStoreFromPositions(nil, [3]float32{}); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("empty positions err = %v, want ErrInvalidCount", err)
	}
}
