package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/vortex/systems"
)

// setGestureSource selects where the wind's gesture signal comes from.
// Headless runs have no keyboard, so "keys" falls back to the sweep.
func (g *Game) setGestureSource(source string, seed int64) error {
	if g.headless && source == "keys" {
		slog.Info("no keyboard in headless mode, using sweep gesture")
		source = "sweep"
	}

	switch source {
	case "none":
		g.gesture = systems.NoGesture{}
	case "keys":
		g.gesture = g.keyGesture
	case "sweep":
		gc := g.cfg.Gesture
		g.gesture = systems.NewSweepGesture(seed, gc.SweepPeriod, gc.SweepSpeed, g.SimTime)
	default:
		return fmt.Errorf("gesture source %q: unknown", source)
	}
	g.gestureSource = source
	return nil
}

// keyVelocity maps held arrow keys to a horizontal gesture velocity.
func keyVelocity(left, right bool, speed float64) systems.GestureSignal {
	switch {
	case left && !right:
		return systems.GestureSignal{Active: true, VelocityX: -speed}
	case right && !left:
		return systems.GestureSignal{Active: true, VelocityX: speed}
	default:
		return systems.GestureSignal{}
	}
}
