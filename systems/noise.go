package systems

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// sweepActiveThreshold is the activity noise level above which the hand is "in frame".
const sweepActiveThreshold = 0.15

// SweepGesture is a synthetic gesture source: a hand that drifts in and out
// of view and sweeps sideways, driven by simplex noise. It stands in for
// hand tracking in headless runs and demos.
type SweepGesture struct {
	noise  opensimplex.Noise
	period float64
	speed  float64
	clock  func() float64
}

// NewSweepGesture creates a sweep source. period is the seconds per noise
// cycle, speed the peak |VelocityX|, and clock supplies the current time.
func NewSweepGesture(seed int64, period, speed float64, clock func() float64) *SweepGesture {
	if period <= 0 {
		period = 1
	}
	return &SweepGesture{
		noise:  opensimplex.New(seed),
		period: period,
		speed:  speed,
		clock:  clock,
	}
}

// At returns the signal at time t. It is a pure function of t and the seed.
func (g *SweepGesture) At(t float64) GestureSignal {
	u := t / g.period
	activity := g.noise.Eval2(u, 0)
	if activity < sweepActiveThreshold {
		return GestureSignal{}
	}

	// Fade in from the threshold so the wind does not jump on entry
	fade := math.Min(1, (activity-sweepActiveThreshold)/(1-sweepActiveThreshold)*4)
	v := g.noise.Eval2(u*3, 17.5) * g.speed * fade
	return GestureSignal{Active: true, VelocityX: v}
}

// Latest returns the signal at the clock's current time.
func (g *SweepGesture) Latest() GestureSignal {
	return g.At(g.clock())
}
