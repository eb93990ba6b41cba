package motion

import (
	"math"
	"testing"
)

func TestSpringBeforeDelay(t *testing.T) {
	for _, frame := range []float64{0, 5, 9.99} {
		v := Spring(SpringParams{Frame: frame, FPS: 30, Delay: 10})
		if v != 0 {
			t.Errorf("Expected 0 before delay at frame %.2f, got %f", frame, v)
		}
	}
}

func TestSpringStartsAtRestAndSettles(t *testing.T) {
	cfg := SpringConfig{Damping: 200, Stiffness: 100, Mass: 1}

	if v := Spring(SpringParams{Frame: 0, FPS: 30, Config: cfg}); v != 0 {
		t.Errorf("Expected 0 at activation, got %f", v)
	}

	v := Spring(SpringParams{Frame: 3000, FPS: 30, Config: cfg})
	if math.Abs(v-1) > 0.001 {
		t.Errorf("Expected spring to settle at 1, got %f", v)
	}
}

func TestSpringCriticalAndOverdampedNeverOvershoot(t *testing.T) {
	configs := []SpringConfig{
		{Damping: 20, Stiffness: 100, Mass: 1},  // ζ = 1
		{Damping: 40, Stiffness: 100, Mass: 1},  // ζ = 2
		{Damping: 200, Stiffness: 100, Mass: 1}, // ζ = 10
		{Damping: 15, Stiffness: 50, Mass: 0.5}, // ζ ≈ 1.5
	}

	for _, cfg := range configs {
		if cfg.DampingRatio() < 1-1e-12 {
			t.Fatalf("Config %+v is not critically damped (ζ=%f)", cfg, cfg.DampingRatio())
		}
		prev := 0.0
		for frame := 0; frame <= 600; frame++ {
			v := Spring(SpringParams{Frame: float64(frame), FPS: 30, Config: cfg})
			if v > 1+1e-12 {
				t.Fatalf("Config %+v overshot at frame %d: %f", cfg, frame, v)
			}
			if v < prev-1e-12 {
				t.Fatalf("Config %+v moved backwards at frame %d: %f < %f", cfg, frame, v, prev)
			}
			prev = v
		}
	}
}

func TestSpringUnderdampedOvershootIsPreserved(t *testing.T) {
	cfg := SpringConfig{Damping: 5, Stiffness: 200, Mass: 1}

	peak := 0.0
	for frame := 0; frame < 120; frame++ {
		peak = math.Max(peak, Spring(SpringParams{Frame: float64(frame), FPS: 30, Config: cfg}))
	}
	if peak <= 1 {
		t.Errorf("Expected under-damped spring to overshoot, peak %f", peak)
	}

	cfg.OvershootClamping = true
	for frame := 0; frame < 120; frame++ {
		if v := Spring(SpringParams{Frame: float64(frame), FPS: 30, Config: cfg}); v > 1 {
			t.Fatalf("Clamped spring exceeded 1 at frame %d: %f", frame, v)
		}
	}
}

func TestSpringDurationOverride(t *testing.T) {
	configs := []SpringConfig{
		{},
		{Damping: 5, Stiffness: 200, Mass: 1},
		{Damping: 12, Stiffness: 180, Mass: 1},
		{Damping: 20, Stiffness: 100, Mass: 1},
		{Damping: 200, Stiffness: 100, Mass: 1},
		{Damping: 1, Stiffness: 10, Mass: 3},
		{Damping: 30, Stiffness: 400, Mass: 0.4},
	}
	durations := []float64{1, 10, 30, 45, 90}
	delays := []float64{0, 7, 20}

	for _, cfg := range configs {
		for _, d := range durations {
			for _, delay := range delays {
				v := Spring(SpringParams{
					Frame:            delay + d,
					FPS:              30,
					Config:           cfg,
					Delay:            delay,
					DurationInFrames: d,
				})
				if math.Abs(v-1) >= 0.01 {
					t.Errorf("Config %+v duration %.0f delay %.0f: expected ~1 at target frame, got %f",
						cfg, d, delay, v)
				}
			}
		}
	}
}

func TestSpringDurationOverrideStaysSettled(t *testing.T) {
	cfg := SpringConfig{Damping: 4, Stiffness: 150, Mass: 1}
	for frame := 30; frame < 200; frame++ {
		v := Spring(SpringParams{Frame: float64(frame), FPS: 30, Config: cfg, DurationInFrames: 30})
		if math.Abs(v-1) > SettleThreshold+1e-12 {
			t.Fatalf("Expected settled spring after target frame, frame %d got %f", frame, v)
		}
	}
}

func TestSpringIsDeterministic(t *testing.T) {
	p := SpringParams{Frame: 17, FPS: 30, Config: SpringConfig{Damping: 8, Stiffness: 120}, Delay: 3, DurationInFrames: 40}
	a := Spring(p)
	// Sample other frames in between to make sure nothing is carried over.
	for i := 0; i < 50; i++ {
		Spring(SpringParams{Frame: float64(i), FPS: 30, Config: p.Config})
	}
	b := Spring(p)
	if math.Float64bits(a) != math.Float64bits(b) {
		t.Errorf("Expected identical samples, got %v and %v", a, b)
	}
}

func TestMeasureSpring(t *testing.T) {
	frames := MeasureSpring(DefaultSpringConfig, 30, SettleThreshold)
	if frames <= 0 {
		t.Fatalf("Expected positive frame count, got %d", frames)
	}

	// Sampling the physical spring at the measured frame must already be settled.
	v := Spring(SpringParams{Frame: float64(frames), FPS: 30})
	if math.Abs(v-1) > SettleThreshold {
		t.Errorf("Expected settled value at frame %d, got %f", frames, v)
	}

	// Same damping ratio, twice the natural frequency.
	stiff := MeasureSpring(SpringConfig{Damping: 20, Stiffness: 400}, 30, SettleThreshold)
	if stiff >= frames {
		t.Errorf("Expected stiffer spring to settle sooner: %d >= %d", stiff, frames)
	}
	t.Logf("default spring settles in %d frames, stiff spring in %d", frames, stiff)
}

func TestSpringConfigValidate(t *testing.T) {
	tests := []struct {
		cfg     SpringConfig
		wantErr bool
	}{
		{SpringConfig{}, false},
		{DefaultSpringConfig, false},
		{SpringConfig{Damping: -1}, true},
		{SpringConfig{Mass: math.NaN()}, true},
		{SpringConfig{Stiffness: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		err := tt.cfg.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v): expected error=%v, got %v", tt.cfg, tt.wantErr, err)
		}
	}
}
