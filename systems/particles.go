package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/vortex/config"
)

// Construction errors. NewParticleStore wraps these with context; test with errors.Is.
var (
	ErrInvalidCount  = errors.New("particle count must be positive")
	ErrEmptyPalette  = errors.New("palette is empty")
	ErrInvertedRange = errors.New("range is inverted")
)

// StoreConfig describes how particle attributes are drawn.
type StoreConfig struct {
	MinRadius, MaxRadius float64
	Depth                float64 // z is drawn from [-Depth/2, Depth/2]
	SizeRange            [2]float64
	PhaseRange           [2]float64
	AngleRange           [2]float64
	Palette              [][3]float32
}

// StoreConfigFrom converts the particles config section.
func StoreConfigFrom(cfg *config.Config) StoreConfig {
	p := cfg.Particles
	palette := make([][3]float32, len(p.Palette))
	for i, c := range p.Palette {
		palette[i] = [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
	}
	return StoreConfig{
		MinRadius:  p.MinRadius,
		MaxRadius:  p.MaxRadius,
		Depth:      p.Depth,
		SizeRange:  p.SizeRange,
		PhaseRange: p.PhaseRange,
		AngleRange: p.AngleRange,
		Palette:    palette,
	}
}

func (c StoreConfig) validate(count int) error {
	if count <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	if c.MinRadius > c.MaxRadius {
		return fmt.Errorf("radius [%g, %g]: %w", c.MinRadius, c.MaxRadius, ErrInvertedRange)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth %g: %w", c.Depth, ErrInvertedRange)
	}
	for _, r := range []struct {
		name string
		v    [2]float64
	}{
		{"size", c.SizeRange},
		{"phase", c.PhaseRange},
		{"angle", c.AngleRange},
	} {
		if r.v[0] > r.v[1] {
			return fmt.Errorf("%s [%g, %g]: %w", r.name, r.v[0], r.v[1], ErrInvertedRange)
		}
	}
	return nil
}

// ParticleStore owns the per-particle attribute arrays.
// All slices are allocated once and index-aligned: vector attributes hold
// three floats per particle, scalar attributes one.
// Only Positions changes after construction.
type ParticleStore struct {
	Initial   []float32 // x, y, z baseline; never written after construction
	Positions []float32 // x, y, z recomputed every frame
	Colors    []float32 // r, g, b
	Sizes     []float32
	Phases    []float32
	Angles    []float32

	count int
}

func allocStore(count int) *ParticleStore {
	return &ParticleStore{
		Initial:   make([]float32, count*3),
		Positions: make([]float32, count*3),
		Colors:    make([]float32, count*3),
		Sizes:     make([]float32, count),
		Phases:    make([]float32, count),
		Angles:    make([]float32, count),
		count:     count,
	}
}

// NewParticleStore draws count particles on an annulus around the origin.
func NewParticleStore(count int, cfg StoreConfig, rng *rand.Rand) (*ParticleStore, error) {
	if err := cfg.validate(count); err != nil {
		return nil, fmt.Errorf("particle store: %w", err)
	}

	s := allocStore(count)
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		radius := uniform(rng, cfg.MinRadius, cfg.MaxRadius)
		depth := (rng.Float64() - 0.5) * cfg.Depth

		j := i * 3
		s.Initial[j] = float32(math.Cos(angle) * radius)
		s.Initial[j+1] = float32(math.Sin(angle) * radius)
		s.Initial[j+2] = float32(depth)

		c := cfg.Palette[rng.Intn(len(cfg.Palette))]
		s.Colors[j] = c[0]
		s.Colors[j+1] = c[1]
		s.Colors[j+2] = c[2]

		s.Sizes[i] = float32(uniform(rng, cfg.SizeRange[0], cfg.SizeRange[1]))
		s.Phases[i] = float32(uniform(rng, cfg.PhaseRange[0], cfg.PhaseRange[1]))
		s.Angles[i] = float32(uniform(rng, cfg.AngleRange[0], cfg.AngleRange[1]))
	}
	copy(s.Positions, s.Initial)

	return s, nil
}

// NewStoreFromPositions builds a store with explicit baseline positions,
// a single color and unit size. Used for fixed scenarios and previews.
func NewStoreFromPositions(initial [][3]float32, color [3]float32) (*ParticleStore, error) {
	if len(initial) == 0 {
		return nil, fmt.Errorf("particle store: %w: got 0", ErrInvalidCount)
	}

	s := allocStore(len(initial))
	for i, p := range initial {
		j := i * 3
		copy(s.Initial[j:j+3], p[:])
		copy(s.Colors[j:j+3], color[:])
		s.Sizes[i] = 1
	}
	copy(s.Positions, s.Initial)

	return s, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Len returns the particle count.
func (s *ParticleStore) Len() int {
	return s.count
}

// InitialAt returns the baseline position of particle i.
func (s *ParticleStore) InitialAt(i int) (x, y, z float32) {
	j := i * 3
	return s.Initial[j], s.Initial[j+1], s.Initial[j+2]
}

// PositionAt returns the current position of particle i.
func (s *ParticleStore) PositionAt(i int) (x, y, z float32) {
	j := i * 3
	return s.Positions[j], s.Positions[j+1], s.Positions[j+2]
}

// Reset restores every position to its baseline.
func (s *ParticleStore) Reset() {
	copy(s.Positions, s.Initial)
}
