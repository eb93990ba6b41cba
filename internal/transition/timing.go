package transition

import (
	"math"

	"github.com/ivlev/promoreel/internal/motion"
)

// Timing shapes the linear progress through an overlap window.
type Timing interface {
	Name() string
	// Progress returns the curve value for the frame elapsed frames into a window
	// durationFrames long. Results stay in [0,1].
	Progress(elapsed, durationFrames int, fps float64) float64
}

// Linear advances evenly, optionally reshaped by an easing.
type Linear struct {
	EasingName string
	Easing     motion.EasingFunc
}

func (l Linear) Name() string {
	if l.EasingName != "" {
		return l.EasingName
	}
	return "linear"
}

func (l Linear) Progress(elapsed, durationFrames int, _ float64) float64 {
	if durationFrames <= 0 {
		return 1
	}
	p := clamp01(float64(elapsed) / float64(durationFrames))
	if l.Easing != nil {
		p = l.Easing(p)
	}
	return p
}

// SpringTiming drives the window with a spring fitted to the window length.
type SpringTiming struct {
	Config motion.SpringConfig
}

func (SpringTiming) Name() string { return "spring" }

func (s SpringTiming) Progress(elapsed, durationFrames int, fps float64) float64 {
	if durationFrames <= 0 {
		return 1
	}
	p := motion.Spring(motion.SpringParams{
		Frame:            float64(elapsed),
		FPS:              fps,
		Config:           s.Config,
		DurationInFrames: float64(durationFrames),
	})
	return clamp01(p)
}

// ParseTiming builds a timing curve from its scenario-file name: "linear", "spring"
// or any registered easing name.
func ParseTiming(name string, spring motion.SpringConfig) (Timing, error) {
	switch name {
	case "", "linear":
		return Linear{}, nil
	case "spring":
		if err := spring.Validate(); err != nil {
			return nil, err
		}
		return SpringTiming{Config: spring}, nil
	}
	easing, err := motion.EasingByName(name)
	if err != nil {
		return nil, err
	}
	return Linear{EasingName: name, Easing: easing}, nil
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
