package systems

import (
	"math"

	"github.com/pthm-cable/vortex/config"
)

// MotionParams holds the orbital motion constants.
type MotionParams struct {
	VortexTimeFreq    float64
	VortexRadiusFreq  float64
	VortexAmplitude   float64
	BaseAngularSpeed  float64
	VortexSpeedFactor float64
	RadialDamping     float64 // keeps the angular speed finite at dist = 0
	BreathTimeFreq    float64
	BreathRadiusFreq  float64
	BreathAmplitude   float64
	WindFalloff       float64 // wind weight reaches zero at this radius
	IdleRotation      float64
	WindRotation      float64
}

// DefaultMotionParams returns the standard vortex constants.
func DefaultMotionParams() MotionParams {
	return MotionParams{
		VortexTimeFreq:    0.1,
		VortexRadiusFreq:  0.3,
		VortexAmplitude:   0.5,
		BaseAngularSpeed:  0.04,
		VortexSpeedFactor: 0.02,
		RadialDamping:     0.1,
		BreathTimeFreq:    0.5,
		BreathRadiusFreq:  0.5,
		BreathAmplitude:   0.3,
		WindFalloff:       20,
		IdleRotation:      0.001,
		WindRotation:      0.005,
	}
}

// AccumulateMode selects how several interaction points combine.
type AccumulateMode uint8

const (
	// AccumulateSequential applies points one after another, each seeing the
	// target already displaced by the previous ones.
	AccumulateSequential AccumulateMode = iota
	// AccumulateSimultaneous computes every displacement from the undisplaced
	// target and sums them, so point order does not matter.
	AccumulateSimultaneous
)

// InfluenceParams holds the interaction repulsion constants.
type InfluenceParams struct {
	BaseRadius       float64
	RadiusPerSpeed   float64
	BaseStrength     float64
	StrengthPerSpeed float64
	Mode             AccumulateMode
}

// DefaultInfluenceParams returns the standard repulsion constants.
func DefaultInfluenceParams() InfluenceParams {
	return InfluenceParams{
		BaseRadius:       4,
		RadiusPerSpeed:   10,
		BaseStrength:     0.3,
		StrengthPerSpeed: 2,
		Mode:             AccumulateSequential,
	}
}

// Viewport maps normalized interaction coordinates ([-1, 1]) to world units.
type Viewport struct {
	ScaleX, ScaleY float64
}

// FrameInput is everything a single position update reads besides the store.
type FrameInput struct {
	Time     float64
	Points   []InteractionPoint
	Wind     float64
	Viewport Viewport
}

// influence is an interaction point converted to world units with its
// radius and strength precomputed.
type influence struct {
	x, y     float64
	radius   float64
	strength float64
}

func buildInfluences(dst []influence, in FrameInput, p InfluenceParams) []influence {
	dst = dst[:0]
	for _, pt := range in.Points {
		dst = append(dst, influence{
			x:        pt.X * in.Viewport.ScaleX,
			y:        pt.Y * in.Viewport.ScaleY,
			radius:   p.BaseRadius + pt.Speed*p.RadiusPerSpeed,
			strength: p.BaseStrength + pt.Speed*p.StrengthPerSpeed,
		})
	}
	return dst
}

// UpdatePositions recomputes every position in s from its baseline.
// The result depends only on the arguments and the store's baseline arrays.
func UpdatePositions(s *ParticleStore, in FrameInput, m MotionParams, p InfluenceParams) {
	infl := buildInfluences(nil, in, p)
	updateRange(s, 0, s.Len(), in.Time, in.Wind, infl, m, p.Mode)
}

// updateRange writes positions for particles [start, end).
func updateRange(s *ParticleStore, start, end int, t, wind float64, infl []influence, m MotionParams, mode AccumulateMode) {
	vortexPhase := t * m.VortexTimeFreq
	breathPhase := t * m.BreathTimeFreq

	for i := start; i < end; i++ {
		j := i * 3
		x0 := float64(s.Initial[j])
		y0 := float64(s.Initial[j+1])
		z0 := float64(s.Initial[j+2])

		dist := math.Sqrt(x0*x0 + y0*y0)
		baseAngle := math.Atan2(y0, x0)

		// Slow vortex modulation of angular speed; inner particles turn faster
		vortex := math.Sin(vortexPhase+dist*m.VortexRadiusFreq) * m.VortexAmplitude
		rotationSpeed := (m.BaseAngularSpeed + vortex*m.VortexSpeedFactor) / (dist*m.RadialDamping + 1.0)
		angle := baseAngle + t*rotationSpeed

		sin, cos := math.Sincos(angle)
		tx := cos * dist
		ty := sin * dist
		tz := z0 + math.Sin(breathPhase+dist*m.BreathRadiusFreq)*m.BreathAmplitude

		if len(infl) > 0 {
			tx, ty = repel(tx, ty, infl, mode)
		}

		if wind != 0 {
			if w := 1.0 - dist/m.WindFalloff; w > 0 {
				tx += wind * w
			}
		}

		s.Positions[j] = float32(tx)
		s.Positions[j+1] = float32(ty)
		s.Positions[j+2] = float32(tz)
	}
}

// repel pushes (x, y) away from every influence within its radius.
func repel(x, y float64, infl []influence, mode AccumulateMode) (float64, float64) {
	if mode == AccumulateSimultaneous {
		var ox, oy float64
		for k := range infl {
			dx, dy, ok := displacement(x, y, &infl[k])
			if ok {
				ox += dx
				oy += dy
			}
		}
		return x + ox, y + oy
	}

	for k := range infl {
		dx, dy, ok := displacement(x, y, &infl[k])
		if ok {
			x += dx
			y += dy
		}
	}
	return x, y
}

// displacement returns the push one influence applies at (x, y).
func displacement(x, y float64, p *influence) (float64, float64, bool) {
	dx := x - p.x
	dy := y - p.y
	d := math.Sqrt(dx*dx + dy*dy)
	if d >= p.radius {
		return 0, 0, false
	}
	factor := (p.radius - d) / p.radius * p.strength
	return dx * factor, dy * factor, true
}

// EngineOptions configures a FrameEngine.
type EngineOptions struct {
	Motion    MotionParams
	Influence InfluenceParams
	Wind      WindParams
	Workers   int // shards for the per-particle loop; <= 1 runs inline
}

// DefaultEngineOptions returns single-threaded defaults.
func DefaultEngineOptions() EngineOptions {
	return EngineOptions{
		Motion:    DefaultMotionParams(),
		Influence: DefaultInfluenceParams(),
		Wind:      DefaultWindParams(),
		Workers:   1,
	}
}

// EngineOptionsFrom converts the motion, interaction and wind config sections.
func EngineOptionsFrom(cfg *config.Config) EngineOptions {
	mc := cfg.Motion
	ic := cfg.Interaction
	mode := AccumulateSequential
	if !cfg.Derived.Sequential {
		mode = AccumulateSimultaneous
	}
	return EngineOptions{
		Motion: MotionParams{
			VortexTimeFreq:    mc.VortexTimeFreq,
			VortexRadiusFreq:  mc.VortexRadiusFreq,
			VortexAmplitude:   mc.VortexAmplitude,
			BaseAngularSpeed:  mc.BaseAngularSpeed,
			VortexSpeedFactor: mc.VortexSpeedFactor,
			RadialDamping:     mc.RadialDamping,
			BreathTimeFreq:    mc.BreathTimeFreq,
			BreathRadiusFreq:  mc.BreathRadiusFreq,
			BreathAmplitude:   mc.BreathAmplitude,
			WindFalloff:       cfg.Wind.Falloff,
			IdleRotation:      mc.IdleRotation,
			WindRotation:      mc.WindRotation,
		},
		Influence: InfluenceParams{
			BaseRadius:       ic.BaseRadius,
			RadiusPerSpeed:   ic.RadiusPerSpeed,
			BaseStrength:     ic.BaseStrength,
			StrengthPerSpeed: ic.StrengthPerSpd,
			Mode:             mode,
		},
		Wind: WindParams{
			Gain:         cfg.Wind.Gain,
			Smoothing:    cfg.Wind.Smoothing,
			MaxVelocity:  cfg.Wind.MaxVelocity,
			ReferenceFPS: cfg.Wind.ReferenceFPS,
		},
		Workers: mc.Workers,
	}
}

// FrameEngine advances the star field one frame at a time.
// It owns the wind smoother and the scene rotation so independent engines
// never share state.
type FrameEngine struct {
	store     *ParticleStore
	wind      *WindSmoother
	motion    MotionParams
	influence InfluenceParams

	rotation float64
	lastTime float64
	frames   int64

	infl []influence
	pool *shardPool
}

// NewFrameEngine creates an engine writing into store.
// Call Close to stop shard workers when Workers > 1.
func NewFrameEngine(store *ParticleStore, opts EngineOptions) *FrameEngine {
	e := &FrameEngine{
		store:     store,
		wind:      NewWindSmoother(opts.Wind),
		motion:    opts.Motion,
		influence: opts.Influence,
	}
	if opts.Workers > 1 && store.Len() >= parallelThreshold {
		e.pool = newShardPool(opts.Workers)
	}
	return e
}

// Step runs one frame: smooth the gesture into wind, recompute positions,
// then advance the scene rotation. t is seconds since start.
func (e *FrameEngine) Step(t float64, sig GestureSignal, points []InteractionPoint, vp Viewport) {
	dt := t - e.lastTime
	if e.frames == 0 || dt < 0 {
		dt = 0
	}
	e.lastTime = t
	e.frames++

	wind := e.wind.Update(sig, dt)
	e.Apply(FrameInput{Time: t, Points: points, Wind: wind, Viewport: vp})

	e.rotation += e.motion.IdleRotation + math.Abs(wind)*e.motion.WindRotation
}

// Apply recomputes positions for in without touching wind or rotation.
func (e *FrameEngine) Apply(in FrameInput) {
	e.infl = buildInfluences(e.infl, in, e.influence)
	n := e.store.Len()

	if e.pool == nil {
		updateRange(e.store, 0, n, in.Time, in.Wind, e.infl, e.motion, e.influence.Mode)
		return
	}
	e.pool.run(n, func(start, end int) {
		updateRange(e.store, start, end, in.Time, in.Wind, e.infl, e.motion, e.influence.Mode)
	})
}

// Wind returns the current smoothed wind.
func (e *FrameEngine) Wind() float64 {
	return e.wind.Value()
}

// WindSmoother exposes the smoother for live tuning.
func (e *FrameEngine) WindSmoother() *WindSmoother {
	return e.wind
}

// Influence returns the repulsion parameters.
func (e *FrameEngine) Influence() InfluenceParams {
	return e.influence
}

// Rotation returns the accumulated scene rotation around z, in radians.
func (e *FrameEngine) Rotation() float64 {
	return e.rotation
}

// Frames returns the number of Step calls so far.
func (e *FrameEngine) Frames() int64 {
	return e.frames
}

// Store returns the particle store the engine writes into.
func (e *FrameEngine) Store() *ParticleStore {
	return e.store
}

// Frame returns the render view of the latest step.
func (e *FrameEngine) Frame() Frame {
	return e.store.Frame(float32(e.rotation), e.lastTime)
}

// Close stops any shard workers.
func (e *FrameEngine) Close() {
	if e.pool != nil {
		e.pool.stop()
		e.pool = nil
	}
}
