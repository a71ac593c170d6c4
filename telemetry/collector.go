package telemetry

import (
	"math"
	"time"
)

// FrameSample is what the game reports after each frame.
type FrameSample struct {
	Frame         int64
	Time          float64 // seconds since start
	Pointers      int
	GestureActive bool
	Wind          float64
	Rotation      float64
	Update        time.Duration
}

// Collector accumulates frame samples and produces FrameStats per window.
type Collector struct {
	windowFrames int64

	windowStart int64
	lastTime    float64
	lastRot     float64

	frames       int
	pointerSum   int
	pointerMax   int
	interactive  int
	gesture      int
	windSum      float64
	windAbsSum   float64
	windAbsMax   float64
	updateMicros []float64
}

// NewCollector creates a collector flushing every windowFrames frames.
func NewCollector(windowFrames int64) *Collector {
	if windowFrames < 1 {
		windowFrames = 1
	}
	return &Collector{windowFrames: windowFrames}
}

// Record adds one frame to the current window.
func (c *Collector) Record(s FrameSample) {
	c.frames++
	c.pointerSum += s.Pointers
	c.pointerMax = max(c.pointerMax, s.Pointers)
	if s.Pointers > 0 {
		c.interactive++
	}
	if s.GestureActive {
		c.gesture++
	}
	c.windSum += s.Wind
	abs := math.Abs(s.Wind)
	c.windAbsSum += abs
	c.windAbsMax = max(c.windAbsMax, abs)
	c.updateMicros = append(c.updateMicros, float64(s.Update)/float64(time.Microsecond))
	c.lastTime = s.Time
	c.lastRot = s.Rotation
}

// ShouldFlush reports whether the window ending at frame is complete.
func (c *Collector) ShouldFlush(frame int64) bool {
	return frame-c.windowStart >= c.windowFrames
}

// Flush produces the window's FrameStats and starts a new window.
// drift holds per-particle radial offsets from baseline at frame; it is not
// retained.
func (c *Collector) Flush(frame int64, particles int, drift []float64) FrameStats {
	stats := FrameStats{
		WindowStartFrame:  c.windowStart,
		WindowEndFrame:    frame,
		SimTimeSec:        c.lastTime,
		Frames:            c.frames,
		Particles:         particles,
		PointersMax:       c.pointerMax,
		InteractiveFrames: c.interactive,
		GestureFrames:     c.gesture,
		WindAbsMax:        c.windAbsMax,
		Rotation:          c.lastRot,
	}
	if c.frames > 0 {
		n := float64(c.frames)
		stats.PointersMean = float64(c.pointerSum) / n
		stats.WindMean = c.windSum / n
		stats.WindAbsMean = c.windAbsSum / n
	}
	stats.DriftMean, stats.DriftP50, stats.DriftP95, stats.DriftMax = Distribution(drift)
	stats.UpdateMeanUS, stats.UpdateP50US, stats.UpdateP95US, _ = Distribution(c.updateMicros)

	c.windowStart = frame
	c.frames = 0
	c.pointerSum = 0
	c.pointerMax = 0
	c.interactive = 0
	c.gesture = 0
	c.windSum = 0
	c.windAbsSum = 0
	c.windAbsMax = 0
	c.updateMicros = c.updateMicros[:0]

	return stats
}

// WindowFrames returns the number of frames per window.
func (c *Collector) WindowFrames() int64 {
	return c.windowFrames
}
