package components

// Position is an interaction point in the normalized [-1, 1] plane.
type Position struct {
	X, Y float64
}

// Velocity is the displacement since the previous sample, in normalized units per sample.
type Velocity struct {
	X, Y float64
}
