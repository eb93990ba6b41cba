package motion

import (
	"fmt"
	"math"
)

// SettleThreshold is the distance from the target at which a spring counts as settled.
// Duration-constrained springs are within this distance of 1 at their target frame.
const SettleThreshold = 0.005

// SpringConfig holds the physical parameters of a damped harmonic oscillator.
// Zero fields fall back to DefaultSpringConfig.
type SpringConfig struct {
	Damping           float64 `yaml:"damping,omitempty" json:"damping,omitempty"`
	Stiffness         float64 `yaml:"stiffness,omitempty" json:"stiffness,omitempty"`
	Mass              float64 `yaml:"mass,omitempty" json:"mass,omitempty"`
	OvershootClamping bool    `yaml:"overshoot_clamping,omitempty" json:"overshoot_clamping,omitempty"`
}

// DefaultSpringConfig is a lively, slightly under-damped spring.
var DefaultSpringConfig = SpringConfig{
	Damping:   10,
	Stiffness: 100,
	Mass:      1,
}

// Validate rejects negative or non-finite parameters.
func (c SpringConfig) Validate() error {
	for name, v := range map[string]float64{"damping": c.Damping, "stiffness": c.Stiffness, "mass": c.Mass} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("spring %s must be a finite non-negative number, got %v", name, v)
		}
	}
	return nil
}

func (c SpringConfig) withDefaults() SpringConfig {
	if !(c.Damping > 0) {
		c.Damping = DefaultSpringConfig.Damping
	}
	if !(c.Stiffness > 0) {
		c.Stiffness = DefaultSpringConfig.Stiffness
	}
	if !(c.Mass > 0) {
		c.Mass = DefaultSpringConfig.Mass
	}
	return c
}

// DampingRatio returns ζ = c / (2·√(k·m)). Values ≥ 1 never overshoot.
func (c SpringConfig) DampingRatio() float64 {
	c = c.withDefaults()
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// SpringParams addresses a single sample of a spring animation.
type SpringParams struct {
	Frame  float64
	FPS    float64
	Config SpringConfig
	// Delay shifts the activation point; the result is 0 before it.
	Delay float64
	// DurationInFrames, when positive, stretches or compresses the spring so it
	// settles exactly this many frames after Delay.
	DurationInFrames float64
}

// Spring returns the progress of a spring released from rest at 0 toward 1.
// The value is computed in closed form, so any frame can be sampled independently.
// Under-damped configurations overshoot 1 unless OvershootClamping is set.
func Spring(p SpringParams) float64 {
	elapsed := p.Frame - p.Delay
	if elapsed < 0 || math.IsNaN(elapsed) {
		return 0
	}

	cfg := p.Config.withDefaults()

	var t float64
	switch {
	case p.DurationInFrames > 0:
		t = elapsed / p.DurationInFrames * SettleTime(cfg, SettleThreshold)
	case p.FPS > 0:
		t = elapsed / p.FPS
	default:
		return 0
	}

	x := position(cfg, t)
	if cfg.OvershootClamping && x > 1 {
		return 1
	}
	return x
}

// position evaluates x(t) for x(0)=0, x'(0)=0 and rest length 1.
func position(c SpringConfig, t float64) float64 {
	if t <= 0 {
		return 0
	}

	w0 := math.Sqrt(c.Stiffness / c.Mass)
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))

	switch {
	case math.Abs(zeta-1) < 1e-9:
		return 1 - math.Exp(-w0*t)*(1+w0*t)
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * w0 * t)
		return 1 - envelope*(math.Cos(wd*t)+zeta*w0/wd*math.Sin(wd*t))
	default:
		s := w0 * math.Sqrt(zeta*zeta-1)
		r1 := -zeta*w0 + s
		r2 := -zeta*w0 - s
		d := r2 - r1
		return 1 - r2/d*math.Exp(r1*t) + r1/d*math.Exp(r2*t)
	}
}

// SettleTime returns the time in seconds after which the spring stays within
// threshold of its target.
//
// Under-damped springs use the exponential envelope e^(-ζω₀t)/√(1-ζ²), which bounds
// every later oscillation. Critically and over-damped springs approach the target
// monotonically, so the crossing is found by bisection to 1e-9 s.
func SettleTime(c SpringConfig, threshold float64) float64 {
	if !(threshold > 0) {
		threshold = SettleThreshold
	}
	c = c.withDefaults()
	w0 := math.Sqrt(c.Stiffness / c.Mass)
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))

	if zeta < 1 && math.Abs(zeta-1) >= 1e-9 {
		t := math.Log(1/(threshold*math.Sqrt(1-zeta*zeta))) / (zeta * w0)
		return math.Max(t, 0)
	}

	settled := func(t float64) bool {
		return math.Abs(1-position(c, t)) <= threshold
	}

	lo, hi := 0.0, 1/w0
	for i := 0; i < 128 && !settled(hi); i++ {
		lo = hi
		hi *= 2
	}
	for i := 0; i < 200 && hi-lo > 1e-9; i++ {
		mid := (lo + hi) / 2
		if settled(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}
	return hi
}

// MeasureSpring returns the number of frames the spring needs to settle at fps.
func MeasureSpring(c SpringConfig, fps, threshold float64) int {
	if fps <= 0 {
		return 0
	}
	return int(math.Ceil(SettleTime(c, threshold) * fps))
}
