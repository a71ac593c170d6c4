package systems

import (
	"math"
	"testing"
)

func TestWindTarget(t *testing.T) {
	w := NewWindSmoother(DefaultWindParams())

	tests := []struct {
		name string
		sig  GestureSignal
		want float64
	}{
		{"inactive", GestureSignal{Active: false, VelocityX: 0.3}, 0},
		{"active right", GestureSignal{Active: true, VelocityX: 0.1}, -1.5},
		{"active left", GestureSignal{Active: true, VelocityX: -0.2}, 3},
		{"nan", GestureSignal{Active: true, VelocityX: math.NaN()}, 0},
		{"inf", GestureSignal{Active: true, VelocityX: math.Inf(1)}, 0},
		{"out of range", GestureSignal{Active: true, VelocityX: 50}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Target(tt.sig); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Target = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindFirstUpdate(t *testing.T) {
	w := NewWindSmoother(DefaultWindParams())
	got := w.Update(GestureSignal{Active: true, VelocityX: 0.1}, 0)

	// lerp(0, -1.5, 0.05)
	if math.Abs(got-(-0.075)) > 1e-12 {
		t.Errorf("first update = %v, want -0.075", got)
	}
	if w.Value() != got {
		t.Errorf("Value = %v, want %v", w.Value(), got)
	}
}

func TestWindConvergesToTarget(t *testing.T) {
	w := NewWindSmoother(DefaultWindParams())
	sig := GestureSignal{Active: true, VelocityX: -0.2}

	for i := 0; i < 500; i++ {
		w.Update(sig, 0)
	}
	if math.Abs(w.Value()-3) > 1e-6 {
		t.Errorf("wind after 500 frames = %v, want ~3", w.Value())
	}
}

func TestWindDecaysMonotonically(t *testing.T) {
	w := NewWindSmoother(DefaultWindParams())
	for i := 0; i < 60; i++ {
		w.Update(GestureSignal{Active: true, VelocityX: 0.15}, 0)
	}

	prev := math.Abs(w.Value())
	if prev == 0 {
		t.Fatal("wind did not build up")
	}
	for i := 0; i < 300; i++ {
		w.Update(GestureSignal{}, 0)
		cur := math.Abs(w.Value())
		if cur > prev {
			t.Fatalf("frame %d: |wind| grew from %v to %v", i, prev, cur)
		}
		prev = cur
	}
	if prev > 1e-5 {
		t.Errorf("wind after decay = %v, want ~0", prev)
	}
}

func TestWindNotResetBetweenUpdates(t *testing.T) {
	w := NewWindSmoother(DefaultWindParams())
	w.Update(GestureSignal{Active: true, VelocityX: 0.1}, 0)
	first := w.Value()
	w.Update(GestureSignal{}, 0)

	// One decay step keeps 95% of the previous value
	if math.Abs(w.Value()-first*0.95) > 1e-12 {
		t.Errorf("wind = %v, want %v", w.Value(), first*0.95)
	}

	w.Reset()
	if w.Value() != 0 {
		t.Errorf("Reset left %v", w.Value())
	}
}

func TestWindReferenceFPS(t *testing.T) {
	p := DefaultWindParams()
	p.ReferenceFPS = 60
	w := NewWindSmoother(p)
	sig := GestureSignal{Active: true, VelocityX: 0.1}

	// At the reference rate the step matches the per-frame factor
	got := w.Update(sig, 1.0/60)
	if math.Abs(got-(-0.075)) > 1e-9 {
		t.Errorf("update at reference dt = %v, want -0.075", got)
	}

	// Two half-steps equal one full step
	a := NewWindSmoother(p)
	a.Update(sig, 1.0/120)
	a.Update(sig, 1.0/120)
	if math.Abs(a.Value()-got) > 1e-9 {
		t.Errorf("two half steps = %v, one full step = %v", a.Value(), got)
	}
}

func TestGestureSanitize(t *testing.T) {
	if got := (GestureSignal{Active: true, VelocityX: 0.4}).Sanitize(0); !got.Active {
		t.Error("zero max velocity should disable the range check")
	}
	if got := (GestureSignal{Active: true, VelocityX: math.NaN()}).Sanitize(0); got.Active {
		t.Error("NaN velocity should be inactive")
	}
	if got := (GestureSignal{Active: false, VelocityX: 1}).Sanitize(5); got.VelocityX != 0 {
		t.Errorf("inactive signal kept velocity %v", got.VelocityX)
	}
}

func TestLatestGestureLastValueWins(t *testing.T) {
	var g LatestGesture
	if g.Latest().Active {
		t.Error("zero value should be inactive")
	}
	g.Set(GestureSignal{Active: true, VelocityX: 0.1})
	g.Set(GestureSignal{Active: true, VelocityX: 0.3})
	if got := g.Latest(); got.VelocityX != 0.3 {
		t.Errorf("Latest = %+v, want velocity 0.3", got)
	}
	if (NoGesture{}).Latest().Active {
		t.Error("NoGesture should be inactive")
	}
}

func TestSweepGestureDeterministic(t *testing.T) {
	now := 0.0
	a := NewSweepGesture(3, 10, 0.1, func() float64 { return now })
	b := NewSweepGesture(3, 10, 0.1, func() float64 { return now })

	sawActive := false
	for i := 0; i < 2000; i++ {
		now = float64(i) * 0.05
		sa, sb := a.Latest(), b.Latest()
		if sa != sb {
			t.Fatalf("t=%v: sources with same seed disagree: %+v vs %+v", now, sa, sb)
		}
		if sa.Active {
			sawActive = true
			if math.Abs(sa.VelocityX) > 0.1*1.05 {
				t.Fatalf("t=%v: velocity %v exceeds speed", now, sa.VelocityX)
			}
		} else if sa.VelocityX != 0 {
			t.Fatalf("t=%v: inactive signal has velocity %v", now, sa.VelocityX)
		}
	}
	if !sawActive {
		t.Error("sweep never became active over 100 seconds")
	}
}
