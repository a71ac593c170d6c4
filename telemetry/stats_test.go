package telemetry

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"
	"time"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.0},
		{"p25", []float64{1, 2, 3, 4}, 0.25, 1.0},
		{"p95", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.95, 10},
		{"clamped low", []float64{1, 2, 3}, -1, 1},
		{"clamped high", []float64{1, 2, 3}, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	values := []float64{10, 1, 9, 2, 8, 3, 7, 4, 6, 5}
	mean, p50, p95, maxVal := Distribution(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p95 != 10 {
		t.Errorf("p95 = %v, want 10", p95)
	}
	if maxVal != 10 {
		t.Errorf("max = %v, want 10", maxVal)
	}
	if values[0] != 10 || values[1] != 1 {
		t.Error("Distribution must not reorder its input")
	}
}

func TestDistributionEmpty(t *testing.T) {
	mean, p50, p95, maxVal := Distribution(nil)
	if mean != 0 || p50 != 0 || p95 != 0 || maxVal != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(4)

	samples := []FrameSample{
		{Frame: 1, Time: 0.1, Pointers: 0, Wind: 0, Rotation: 0.001, Update: 100 * time.Microsecond},
		{Frame: 2, Time: 0.2, Pointers: 2, Wind: -0.5, Rotation: 0.002, Update: 200 * time.Microsecond},
		{Frame: 3, Time: 0.3, Pointers: 1, GestureActive: true, Wind: -1.5, Rotation: 0.004, Update: 300 * time.Microsecond},
		{Frame: 4, Time: 0.4, Pointers: 1, GestureActive: true, Wind: 1.0, Rotation: 0.007, Update: 400 * time.Microsecond},
	}
	for _, s := range samples {
		if c.ShouldFlush(s.Frame - 1) {
			t.Fatalf("ShouldFlush(%d) = true before window complete", s.Frame-1)
		}
		c.Record(s)
	}
	if !c.ShouldFlush(4) {
		t.Fatal("ShouldFlush(4) = false, want true")
	}

	stats := c.Flush(4, 100, []float64{0, 0.5, 1.5})

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 4 {
		t.Errorf("window = [%d, %d], want [0, 4]", stats.WindowStartFrame, stats.WindowEndFrame)
	}
	if stats.Frames != 4 || stats.Particles != 100 {
		t.Errorf("frames=%d particles=%d", stats.Frames, stats.Particles)
	}
	if stats.PointersMax != 2 || math.Abs(stats.PointersMean-1.0) > 1e-9 {
		t.Errorf("pointers mean=%v max=%d, want 1 and 2", stats.PointersMean, stats.PointersMax)
	}
	if stats.InteractiveFrames != 3 || stats.GestureFrames != 2 {
		t.Errorf("interactive=%d gesture=%d, want 3 and 2", stats.InteractiveFrames, stats.GestureFrames)
	}
	if math.Abs(stats.WindMean-(-0.25)) > 1e-9 {
		t.Errorf("WindMean = %v, want -0.25", stats.WindMean)
	}
	if math.Abs(stats.WindAbsMean-0.75) > 1e-9 || stats.WindAbsMax != 1.5 {
		t.Errorf("wind abs mean=%v max=%v, want 0.75 and 1.5", stats.WindAbsMean, stats.WindAbsMax)
	}
	if stats.Rotation != 0.007 || stats.SimTimeSec != 0.4 {
		t.Errorf("rotation=%v time=%v, want last sample values", stats.Rotation, stats.SimTimeSec)
	}
	if stats.DriftMax != 1.5 || stats.DriftP50 != 0.5 {
		t.Errorf("drift p50=%v max=%v", stats.DriftP50, stats.DriftMax)
	}
	if math.Abs(stats.UpdateMeanUS-250) > 1e-6 {
		t.Errorf("UpdateMeanUS = %v, want 250", stats.UpdateMeanUS)
	}

	// Next window starts clean
	if c.ShouldFlush(5) {
		t.Error("ShouldFlush(5) = true right after a flush")
	}
	next := c.Flush(5, 100, nil)
	if next.WindowStartFrame != 4 || next.Frames != 0 || next.WindAbsMax != 0 || next.UpdateMeanUS != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowFrames() != 1 {
		t.Errorf("WindowFrames() = %d, want 1", c.WindowFrames())
	}
}

// captureLog routes the default logger into a buffer for the test's duration.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestFrameStatsLogStatsGroupsWindow(t *testing.T) {
	buf := captureLog(t)

	FrameStats{WindowStartFrame: 1, WindowEndFrame: 60, Frames: 60, DriftP95: 0.25}.LogStats()

	var rec struct {
		Msg    string         `json:"msg"`
		Window map[string]any `json:"window"`
	}
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec.Msg != "stats" {
		t.Errorf("msg = %q, want stats", rec.Msg)
	}
	if rec.Window["window_end"] != float64(60) {
		t.Errorf("window_end = %v, want 60", rec.Window["window_end"])
	}
	if rec.Window["drift_p95"] != 0.25 {
		t.Errorf("drift_p95 = %v, want 0.25", rec.Window["drift_p95"])
	}
}
