package scene

import (
	"fmt"
	"math"

	"github.com/ivlev/promoreel/internal/motion"
)

// Driver selects the raw signal a track maps to its output.
type Driver string

const (
	// DriverFrame feeds the number of frames elapsed since the track's delay.
	DriverFrame Driver = "frame"
	// DriverSpring feeds spring progress released at the track's delay.
	DriverSpring Driver = "spring"
	// DriverSine and DriverCosine feed Amplitude*sin(2π·(frame-Delay)/Period + Phase)
	// and its cosine twin, for looping motion such as floating.
	DriverSine   Driver = "sine"
	DriverCosine Driver = "cosine"
)

func (d Driver) periodic() bool {
	return d == DriverSine || d == DriverCosine
}

// Track declares one animated parameter.
//
// The driver produces a raw value (elapsed frames, spring progress or a wave), which
// is optionally remapped through Input/Output. Without a mapping the raw value is
// emitted as-is. Spring and DurationInFrames belong to the spring driver; Period,
// Amplitude and Phase to the periodic drivers.
type Track struct {
	Name             string               `yaml:"name"`
	Driver           Driver               `yaml:"driver"`
	Delay            float64              `yaml:"delay,omitempty"`
	Spring           motion.SpringConfig  `yaml:"spring,omitempty"`
	DurationInFrames float64              `yaml:"duration,omitempty"`
	Period           float64              `yaml:"period,omitempty"`    // Frames per cycle
	Amplitude        float64              `yaml:"amplitude,omitempty"` // Zero means 1
	Phase            float64              `yaml:"phase,omitempty"`     // Radians
	Input            []float64            `yaml:"input,omitempty,flow"`
	Output           []float64            `yaml:"output,omitempty,flow"`
	ExtrapolateLeft  motion.Extrapolation `yaml:"extrapolate_left,omitempty"`
	ExtrapolateRight motion.Extrapolation `yaml:"extrapolate_right,omitempty"`
	Easing           string               `yaml:"easing,omitempty"`
	// Round snaps the result to the nearest integer, for counters.
	Round bool `yaml:"round,omitempty"`
}

type compiledTrack struct {
	Track
	mapping *motion.Interpolator
}

func (t compiledTrack) value(localFrame int, fps float64) float64 {
	var raw float64
	switch t.Driver {
	case DriverSpring:
		raw = motion.Spring(motion.SpringParams{
			Frame:            float64(localFrame),
			FPS:              fps,
			Config:           t.Spring,
			Delay:            t.Delay,
			DurationInFrames: t.DurationInFrames,
		})
	case DriverSine, DriverCosine:
		angle := 2*math.Pi*(float64(localFrame)-t.Delay)/t.Period + t.Phase
		wave := math.Sin(angle)
		if t.Driver == DriverCosine {
			wave = math.Cos(angle)
		}
		amplitude := t.Amplitude
		if amplitude == 0 {
			amplitude = 1
		}
		raw = amplitude * wave
	default:
		raw = float64(localFrame) - t.Delay
	}

	if t.mapping != nil {
		raw = t.mapping.At(raw)
	}
	if t.Round {
		raw = math.Round(raw)
	}
	return raw
}

// Tracks is a Program built from independent parameter tracks.
// No track reads another track's value, so evaluation order never matters.
type Tracks struct {
	tracks []compiledTrack
}

// NewTracks validates and compiles the tracks.
func NewTracks(tracks []Track) (*Tracks, error) {
	seen := make(map[string]bool, len(tracks))
	compiled := make([]compiledTrack, 0, len(tracks))

	for i, t := range tracks {
		if t.Name == "" {
			return nil, fmt.Errorf("track %d: name is empty", i)
		}
		if seen[t.Name] {
			return nil, fmt.Errorf("track %q: duplicate name", t.Name)
		}
		seen[t.Name] = true

		switch t.Driver {
		case "":
			t.Driver = DriverFrame
		case DriverFrame, DriverSpring, DriverSine, DriverCosine:
		default:
			return nil, fmt.Errorf("track %q: unknown driver %q", t.Name, t.Driver)
		}

		if t.Delay < 0 || math.IsNaN(t.Delay) {
			return nil, fmt.Errorf("track %q: delay must be non-negative, got %v", t.Name, t.Delay)
		}
		if t.DurationInFrames < 0 || math.IsNaN(t.DurationInFrames) {
			return nil, fmt.Errorf("track %q: duration must be non-negative, got %v", t.Name, t.DurationInFrames)
		}
		if t.Driver != DriverSpring && (t.DurationInFrames != 0 || t.Spring != (motion.SpringConfig{})) {
			return nil, fmt.Errorf("track %q: spring and duration need the spring driver, got %q", t.Name, t.Driver)
		}
		if err := t.Spring.Validate(); err != nil {
			return nil, fmt.Errorf("track %q: %w", t.Name, err)
		}
		if t.Driver.periodic() {
			if !(t.Period > 0) || math.IsInf(t.Period, 0) {
				return nil, fmt.Errorf("track %q: period must be positive, got %v", t.Name, t.Period)
			}
			if math.IsNaN(t.Amplitude) || math.IsInf(t.Amplitude, 0) || math.IsNaN(t.Phase) || math.IsInf(t.Phase, 0) {
				return nil, fmt.Errorf("track %q: amplitude and phase must be finite", t.Name)
			}
		} else if t.Period != 0 || t.Amplitude != 0 || t.Phase != 0 {
			return nil, fmt.Errorf("track %q: period, amplitude and phase need a sine or cosine driver, got %q", t.Name, t.Driver)
		}

		ct := compiledTrack{Track: t}
		if len(t.Input) > 0 || len(t.Output) > 0 {
			easing, err := motion.EasingByName(t.Easing)
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", t.Name, err)
			}
			ct.mapping, err = motion.NewInterpolator(t.Input, t.Output, motion.InterpolateOptions{
				ExtrapolateLeft:  t.ExtrapolateLeft,
				ExtrapolateRight: t.ExtrapolateRight,
				Easing:           easing,
			})
			if err != nil {
				return nil, fmt.Errorf("track %q: %w", t.Name, err)
			}
		} else if t.Easing != "" {
			return nil, fmt.Errorf("track %q: easing needs an input/output mapping", t.Name)
		}

		compiled = append(compiled, ct)
	}

	return &Tracks{tracks: compiled}, nil
}

// Evaluate computes every track at localFrame.
func (p *Tracks) Evaluate(localFrame int, fps float64) ParameterSet {
	out := make(ParameterSet, len(p.tracks))
	for _, t := range p.tracks {
		out[t.Name] = t.value(localFrame, fps)
	}
	return out
}
