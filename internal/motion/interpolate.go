package motion

import (
	"fmt"
	"math"
)

// Extrapolation selects what happens to values outside the input range.
type Extrapolation string

const (
	// Extend continues the nearest segment linearly. It is the default.
	Extend Extrapolation = "extend"
	// Clamp holds the boundary output value.
	Clamp Extrapolation = "clamp"
	// Identity returns the input value unchanged.
	Identity Extrapolation = "identity"
)

func (e Extrapolation) valid() bool {
	switch e {
	case "", Extend, Clamp, Identity:
		return true
	}
	return false
}

// InterpolateOptions configures out-of-range behavior and per-segment easing.
type InterpolateOptions struct {
	ExtrapolateLeft  Extrapolation
	ExtrapolateRight Extrapolation
	Easing           EasingFunc
}

// Interpolator is a validated piecewise-linear mapping between two ranges.
type Interpolator struct {
	in   []float64
	out  []float64
	opts InterpolateOptions
}

// NewInterpolator validates the ranges once so At never fails.
// Input ranges must be strictly increasing, so a zero-width segment such as [a, a]
// is rejected with ErrRange.
func NewInterpolator(inputRange, outputRange []float64, opts InterpolateOptions) (*Interpolator, error) {
	if len(inputRange) != len(outputRange) {
		return nil, fmt.Errorf("%w: input range has %d entries, output range has %d",
			ErrRange, len(inputRange), len(outputRange))
	}
	if len(inputRange) < 2 {
		return nil, fmt.Errorf("%w: ranges need at least 2 entries, got %d", ErrRange, len(inputRange))
	}
	for i, v := range inputRange {
		if math.IsNaN(v) || math.IsNaN(outputRange[i]) {
			return nil, fmt.Errorf("%w: NaN at index %d", ErrRange, i)
		}
		if i > 0 && !(v > inputRange[i-1]) {
			return nil, fmt.Errorf("%w: input range must be strictly increasing, got %v", ErrRange, inputRange)
		}
	}
	if !opts.ExtrapolateLeft.valid() || !opts.ExtrapolateRight.valid() {
		return nil, fmt.Errorf("%w: unknown extrapolation %q/%q", ErrRange, opts.ExtrapolateLeft, opts.ExtrapolateRight)
	}

	ip := &Interpolator{
		in:   append([]float64(nil), inputRange...),
		out:  append([]float64(nil), outputRange...),
		opts: opts,
	}
	return ip, nil
}

// At maps value through the ranges.
func (ip *Interpolator) At(value float64) float64 {
	last := len(ip.in) - 1

	// Segment whose right edge is the first input point above value
	seg := 0
	for seg < last-1 && value >= ip.in[seg+1] {
		seg++
	}

	a, b := ip.in[seg], ip.in[seg+1]
	c, d := ip.out[seg], ip.out[seg+1]

	if value < a {
		switch ip.opts.ExtrapolateLeft {
		case Clamp:
			return c
		case Identity:
			return value
		}
	}
	if value > b {
		switch ip.opts.ExtrapolateRight {
		case Clamp:
			return d
		case Identity:
			return value
		}
	}

	t := (value - a) / (b - a)
	if ip.opts.Easing != nil {
		t = ip.opts.Easing(t)
	}
	return c + t*(d-c)
}

// Interpolate remaps value from inputRange to outputRange in one call.
func Interpolate(value float64, inputRange, outputRange []float64, opts InterpolateOptions) (float64, error) {
	ip, err := NewInterpolator(inputRange, outputRange, opts)
	if err != nil {
		return 0, err
	}
	return ip.At(value), nil
}
