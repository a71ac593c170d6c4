package systems

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Frame is the per-frame view a render sink consumes.
// Slices alias the store: Positions changes every frame, the rest never do,
// and lengths and index meaning stay fixed for the store's lifetime.
type Frame struct {
	Positions []float32 // x, y, z per particle
	Colors    []float32 // r, g, b per particle
	Sizes     []float32
	Phases    []float32
	Angles    []float32
	RotationZ float32 // scene rotation applied on top of Positions
	Time      float64
}

// Len returns the particle count.
func (f Frame) Len() int {
	return len(f.Sizes)
}

// Sink draws frames. Implementations own all shading; they must not modify the slices.
type Sink interface {
	Render(f Frame)
}

// Frame returns a view of the store with the given scene rotation and time.
func (s *ParticleStore) Frame(rotationZ float32, t float64) Frame {
	return Frame{
		Positions: s.Positions,
		Colors:    s.Colors,
		Sizes:     s.Sizes,
		Phases:    s.Phases,
		Angles:    s.Angles,
		RotationZ: rotationZ,
		Time:      t,
	}
}

// WorldPosition returns particle i with the scene rotation applied.
func (f Frame) WorldPosition(i int) (x, y, z float32) {
	j := i * 3
	x, y, z = f.Positions[j], f.Positions[j+1], f.Positions[j+2]
	if f.RotationZ == 0 {
		return x, y, z
	}
	sin, cos := math.Sincos(float64(f.RotationZ))
	fx, fy := float64(x), float64(y)
	return float32(fx*cos - fy*sin), float32(fx*sin + fy*cos), z
}

// Twinkle returns the brightness multiplier for particle i, in [0.2, 1].
func (f Frame) Twinkle(i int, speed float64) float32 {
	return float32(0.6 + 0.4*math.Sin(f.Time*speed+float64(f.Phases[i])))
}

// RadialOffsets fills dst with |r_current - r_baseline| per particle and
// returns it along with the largest offset. dst is grown as needed.
// Without interaction or wind every offset stays near zero.
func RadialOffsets(s *ParticleStore, dst []float64) ([]float64, float64) {
	n := s.Len()
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]

	for i := 0; i < n; i++ {
		x0, y0, _ := s.InitialAt(i)
		x, y, _ := s.PositionAt(i)
		r0 := math.Hypot(float64(x0), float64(y0))
		r := math.Hypot(float64(x), float64(y))
		dst[i] = math.Abs(r - r0)
	}
	return dst, floats.Max(dst)
}
