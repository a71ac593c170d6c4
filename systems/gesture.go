package systems

import (
	"math"
	"sync"
)

// GestureSignal is the latest reading from a hand-tracking style source.
// VelocityX is the horizontal hand velocity in normalized image units per sample.
type GestureSignal struct {
	Active    bool
	VelocityX float64
}

// Sanitize treats non-finite or out-of-range velocities as no gesture.
// maxVelocity <= 0 disables the range check.
func (s GestureSignal) Sanitize(maxVelocity float64) GestureSignal {
	if !s.Active {
		return GestureSignal{}
	}
	if math.IsNaN(s.VelocityX) || math.IsInf(s.VelocityX, 0) {
		return GestureSignal{}
	}
	if maxVelocity > 0 && math.Abs(s.VelocityX) > maxVelocity {
		return GestureSignal{}
	}
	return s
}

// GestureSource is polled once per frame for its most recent signal.
// Sources run at their own cadence; the frame loop never waits on them.
type GestureSource interface {
	Latest() GestureSignal
}

// NoGesture is a source that never becomes active.
type NoGesture struct{}

// Latest always returns an inactive signal.
func (NoGesture) Latest() GestureSignal { return GestureSignal{} }

// LatestGesture holds the last signal pushed by a producer.
// Set may be called from any goroutine; intermediate values are overwritten.
type LatestGesture struct {
	mu  sync.Mutex
	sig GestureSignal
}

// Set replaces the held signal.
func (g *LatestGesture) Set(sig GestureSignal) {
	g.mu.Lock()
	g.sig = sig
	g.mu.Unlock()
}

// Latest returns the held signal.
func (g *LatestGesture) Latest() GestureSignal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.sig
}
