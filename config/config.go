// Package config provides configuration loading and access for the star field.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all star field configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Particles   ParticlesConfig   `yaml:"particles"`
	Motion      MotionConfig      `yaml:"motion"`
	Interaction InteractionConfig `yaml:"interaction"`
	Wind        WindConfig        `yaml:"wind"`
	Gesture     GestureConfig     `yaml:"gesture"`
	View        ViewConfig        `yaml:"view"`
	Render      RenderConfig      `yaml:"render"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig controls how the particle store is populated.
// Ranges are inclusive [min, max] pairs.
type ParticlesConfig struct {
	Count      int          `yaml:"count"`
	MinRadius  float64      `yaml:"min_radius"`
	MaxRadius  float64      `yaml:"max_radius"`
	Depth      float64      `yaml:"depth"` // Full depth; z is drawn from [-depth/2, depth/2]
	SizeRange  [2]float64   `yaml:"size_range"`
	PhaseRange [2]float64   `yaml:"phase_range"`
	AngleRange [2]float64   `yaml:"angle_range"`
	Palette    [][3]float64 `yaml:"palette"` // RGB in [0, 1]
}

// MotionConfig holds the orbital motion constants.
type MotionConfig struct {
	VortexTimeFreq    float64 `yaml:"vortex_time_freq"`    // sin(time*this + dist*radius_freq)
	VortexRadiusFreq  float64 `yaml:"vortex_radius_freq"`
	VortexAmplitude   float64 `yaml:"vortex_amplitude"`
	BaseAngularSpeed  float64 `yaml:"base_angular_speed"`
	VortexSpeedFactor float64 `yaml:"vortex_speed_factor"`
	RadialDamping     float64 `yaml:"radial_damping"` // speed / (dist*this + 1)
	BreathTimeFreq    float64 `yaml:"breath_time_freq"`
	BreathRadiusFreq  float64 `yaml:"breath_radius_freq"`
	BreathAmplitude   float64 `yaml:"breath_amplitude"`
	IdleRotation      float64 `yaml:"idle_rotation"` // Scene rotation per frame
	WindRotation      float64 `yaml:"wind_rotation"` // Extra rotation per unit |wind|
	Workers           int     `yaml:"workers"`       // Update shards (1 = single-threaded)
}

// InteractionConfig holds pointer repulsion parameters.
type InteractionConfig struct {
	BaseRadius     float64 `yaml:"base_radius"`      // Influence radius at zero speed
	RadiusPerSpeed float64 `yaml:"radius_per_speed"` // Added radius per unit speed
	BaseStrength   float64 `yaml:"base_strength"`
	StrengthPerSpd float64 `yaml:"strength_per_speed"`
	Accumulate     string  `yaml:"accumulate"` // "sequential" or "simultaneous"
}

// WindConfig holds gesture wind smoothing parameters.
type WindConfig struct {
	Gain         float64 `yaml:"gain"`          // target = velocity_x * -gain
	Smoothing    float64 `yaml:"smoothing"`     // Per-frame lerp factor
	Falloff      float64 `yaml:"falloff"`       // Wind fades to zero at this radius
	MaxVelocity  float64 `yaml:"max_velocity"`  // Gesture samples beyond this are ignored
	ReferenceFPS float64 `yaml:"reference_fps"` // 0 = per-frame smoothing; >0 scales by dt
}

// GestureConfig selects and tunes the gesture source.
type GestureConfig struct {
	Source      string  `yaml:"source"`       // "none", "sweep" or "keys"
	SweepPeriod float64 `yaml:"sweep_period"` // Seconds per noise cycle for the synthetic sweep
	SweepSpeed  float64 `yaml:"sweep_speed"`  // Peak horizontal velocity of the synthetic sweep
	KeySpeed    float64 `yaml:"key_speed"`    // Velocity reported while a key is held
}

// ViewConfig holds orbit camera parameters.
type ViewConfig struct {
	Distance    float64 `yaml:"distance"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	Fovy        float64 `yaml:"fovy"` // Vertical field of view in degrees
	Elevation   float64 `yaml:"elevation"`
	Frequency   float64 `yaml:"frequency"` // Dolly spring angular frequency
	Damping     float64 `yaml:"damping"`   // Dolly spring damping ratio
}

// RenderConfig holds render sink parameters.
type RenderConfig struct {
	PointScale     float64 `yaml:"point_scale"`
	TwinkleSpeed   float64 `yaml:"twinkle_speed"`
	LightIntensity float64 `yaml:"light_intensity"`
	Background     [3]int  `yaml:"background"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	HeadlessDT          float64 `yaml:"headless_dt"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32      float32 // Screen.Width as float32
	ScreenH32      float32 // Screen.Height as float32
	PointScale32   float32
	StatsWindowFrm int // Stats window in frames at the target FPS
	Sequential     bool
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot start with.
func (c *Config) Validate() error {
	p := c.Particles
	if p.Count <= 0 {
		return fmt.Errorf("particles.count must be positive, got %d", p.Count)
	}
	if len(p.Palette) == 0 {
		return fmt.Errorf("particles.palette must not be empty")
	}
	if p.MinRadius < 0 || p.MinRadius > p.MaxRadius {
		return fmt.Errorf("particles radius range [%g, %g] is inverted or negative", p.MinRadius, p.MaxRadius)
	}
	if p.Depth < 0 {
		return fmt.Errorf("particles.depth must not be negative, got %g", p.Depth)
	}
	for name, r := range map[string][2]float64{
		"size_range":  p.SizeRange,
		"phase_range": p.PhaseRange,
		"angle_range": p.AngleRange,
	} {
		if r[0] > r[1] {
			return fmt.Errorf("particles.%s [%g, %g] is inverted", name, r[0], r[1])
		}
	}

	switch c.Interaction.Accumulate {
	case "", "sequential", "simultaneous":
	default:
		return fmt.Errorf("interaction.accumulate: unknown mode %q", c.Interaction.Accumulate)
	}
	switch c.Gesture.Source {
	case "", "none", "sweep", "keys":
	default:
		return fmt.Errorf("gesture.source: unknown source %q", c.Gesture.Source)
	}

	if c.Wind.Smoothing < 0 || c.Wind.Smoothing > 1 || math.IsNaN(c.Wind.Smoothing) {
		return fmt.Errorf("wind.smoothing must be in [0, 1], got %g", c.Wind.Smoothing)
	}
	if !(c.Wind.Falloff > 0) {
		return fmt.Errorf("wind.falloff must be positive, got %g", c.Wind.Falloff)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.PointScale32 = float32(c.Render.PointScale)
	c.Derived.Sequential = c.Interaction.Accumulate != "simultaneous"

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.StatsWindowFrm = int(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.StatsWindowFrm < 1 {
		c.Derived.StatsWindowFrm = 1
	}

	if c.Motion.Workers < 1 {
		c.Motion.Workers = 1
	}
	if c.Gesture.Source == "" {
		c.Gesture.Source = "none"
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
