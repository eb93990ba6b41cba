package motion

import (
	"fmt"
	"math"
	"sort"
)

// EasingFunc reshapes a normalized progress value. Implementations map 0 to 0 and 1 to 1.
type EasingFunc func(t float64) float64

// Linear leaves progress unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseInCubic starts slowly and accelerates.
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseOutCubic starts quickly and decelerates.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic applies smooth easing on both ends
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutQuad is a softer variant of EaseInOutCubic.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

var easings = map[string]EasingFunc{
	"linear":            Linear,
	"ease-in-cubic":     EaseInCubic,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
	"ease-in-out-quad":  EaseInOutQuad,
}

// EasingByName looks up a named easing. An empty name resolves to Linear.
func EasingByName(name string) (EasingFunc, error) {
	if name == "" {
		return Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (available: %v)", name, EasingNames())
	}
	return fn, nil
}

// EasingNames lists the registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
