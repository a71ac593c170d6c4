// Package components defines the ECS components for interaction points.
package components

// Pointer identifies the input source driving an interaction point
// (mouse, touch id, or a gesture-derived point).
type Pointer struct {
	ID int64
}

// Sample holds the last raw position reported by the source.
// Velocity is derived from it on the next update, so it is kept apart from
// the reported Position even though both start out equal.
type Sample struct {
	LastX, LastY float64
}
