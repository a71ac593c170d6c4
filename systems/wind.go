package systems

import "math"

// WindParams tunes the gesture wind smoother.
type WindParams struct {
	Gain        float64 // target = -VelocityX * Gain; the sign undoes the mirrored camera image
	Smoothing   float64 // per-frame lerp factor in [0, 1]
	MaxVelocity float64 // gesture velocities beyond this are ignored (0 = no limit)

	// ReferenceFPS, when positive, rescales Smoothing by elapsed time so the
	// response matches Smoothing-per-frame at that frame rate. Zero keeps the
	// plain per-frame lerp, whose responsiveness depends on frame rate.
	ReferenceFPS float64
}

// DefaultWindParams returns the standard gain and smoothing.
func DefaultWindParams() WindParams {
	return WindParams{
		Gain:        15,
		Smoothing:   0.05,
		MaxVelocity: 5,
	}
}

// WindSmoother turns gesture velocity into a smoothed scalar wind.
// The value persists across frames and decays toward zero when no gesture is active.
type WindSmoother struct {
	params WindParams
	value  float64
}

// NewWindSmoother creates a smoother with zero wind.
func NewWindSmoother(params WindParams) *WindSmoother {
	return &WindSmoother{params: params}
}

// Target returns the wind value sig pulls toward.
func (w *WindSmoother) Target(sig GestureSignal) float64 {
	sig = sig.Sanitize(w.params.MaxVelocity)
	if !sig.Active {
		return 0
	}
	return sig.VelocityX * -w.params.Gain
}

// Update moves the wind one step toward the target for sig and returns it.
// dt is only used when ReferenceFPS is set.
func (w *WindSmoother) Update(sig GestureSignal, dt float64) float64 {
	w.value = lerp(w.value, w.Target(sig), w.alpha(dt))
	return w.value
}

func (w *WindSmoother) alpha(dt float64) float64 {
	a := w.params.Smoothing
	if w.params.ReferenceFPS <= 0 || dt <= 0 {
		return a
	}
	return 1 - math.Pow(1-a, dt*w.params.ReferenceFPS)
}

// Value returns the current wind.
func (w *WindSmoother) Value() float64 {
	return w.value
}

// Params returns the current parameters.
func (w *WindSmoother) Params() WindParams {
	return w.params
}

// SetParams replaces the parameters without touching the current value.
func (w *WindSmoother) SetParams(p WindParams) {
	w.params = p
}

// Reset sets the wind back to zero.
func (w *WindSmoother) Reset() {
	w.value = 0
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
