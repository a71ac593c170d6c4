package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameStats holds aggregated statistics for a window of frames.
type FrameStats struct {
	WindowStartFrame int64   `csv:"-"`
	WindowEndFrame   int64   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`
	Frames           int     `csv:"frames"`
	Particles        int     `csv:"particles"`

	// Interaction
	PointersMean      float64 `csv:"pointers_mean"`
	PointersMax       int     `csv:"pointers_max"`
	InteractiveFrames int     `csv:"interactive_frames"`

	// Gesture and wind
	GestureFrames int     `csv:"gesture_frames"`
	WindMean      float64 `csv:"wind_mean"`
	WindAbsMean   float64 `csv:"wind_abs_mean"`
	WindAbsMax    float64 `csv:"wind_abs_max"`
	Rotation      float64 `csv:"rotation"`

	// Radial offset from baseline, sampled at window end
	DriftMean float64 `csv:"drift_mean"`
	DriftP50  float64 `csv:"drift_p50"`
	DriftP95  float64 `csv:"drift_p95"`
	DriftMax  float64 `csv:"drift_max"`

	// Position update cost
	UpdateMeanUS float64 `csv:"update_mean_us"`
	UpdateP50US  float64 `csv:"update_p50_us"`
	UpdateP95US  float64 `csv:"update_p95_us"`
}

// Percentile returns the empirical p-th quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// Distribution summarizes values as mean, median, 95th percentile and max.
// values is not modified.
func Distribution(values []float64) (mean, p50, p95, maxVal float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = Percentile(sorted, 0.50)
	p95 = Percentile(sorted, 0.95)
	maxVal = floats.Max(sorted)
	return mean, p50, p95, maxVal
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartFrame),
		slog.Int64("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("pointers_mean", s.PointersMean),
		slog.Int("pointers_max", s.PointersMax),
		slog.Int("interactive_frames", s.InteractiveFrames),
		slog.Int("gesture_frames", s.GestureFrames),
		slog.Float64("wind_mean", s.WindMean),
		slog.Float64("wind_abs_mean", s.WindAbsMean),
		slog.Float64("wind_abs_max", s.WindAbsMax),
		slog.Float64("rotation", s.Rotation),
		slog.Float64("drift_mean", s.DriftMean),
		slog.Float64("drift_p95", s.DriftP95),
		slog.Float64("drift_max", s.DriftMax),
		slog.Float64("update_mean_us", s.UpdateMeanUS),
		slog.Float64("update_p95_us", s.UpdateP95US),
	)
}

// LogStats logs the window using slog.
func (s FrameStats) LogStats() {
	slog.Info("stats", "window", s)
}
