// Package director turns a scenario file into a timeline.
package director

import (
	"fmt"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
)

const (
	DefaultFPS    = 30
	DefaultWidth  = 1280
	DefaultHeight = 720
)

func (s *Scenario) applyDefaults() {
	if s.Version == "" {
		s.Version = "1.0"
	}
	if s.FPS == 0 {
		s.FPS = DefaultFPS
	}
	if s.Width == 0 && s.Height == 0 {
		s.Width, s.Height = DefaultWidth, DefaultHeight
	}
}

// Build compiles the scenario into an immutable timeline. Every problem is reported
// as timeline.ErrConfiguration.
func (s *Scenario) Build() (*timeline.Timeline, error) {
	if !(s.FPS > 0) {
		return nil, fmt.Errorf("%w: fps must be positive, got %v", timeline.ErrConfiguration, s.FPS)
	}

	scenes := make([]scene.Descriptor, len(s.Scenes))
	for i, sc := range s.Scenes {
		program, err := scene.NewTracks(sc.Tracks)
		if err != nil {
			return nil, fmt.Errorf("%w: scene %q: %v", timeline.ErrConfiguration, sc.ID, err)
		}
		if err := validateElements(sc.Elements); err != nil {
			return nil, fmt.Errorf("%w: scene %q: %v", timeline.ErrConfiguration, sc.ID, err)
		}
		scenes[i] = scene.Descriptor{
			ID:               sc.ID,
			DurationInFrames: sc.Duration,
			Program:          program,
		}
	}

	transitions := make([]transition.Descriptor, len(s.Transitions))
	for i, tr := range s.Transitions {
		presentation, err := transition.ParsePresentation(tr.Presentation, tr.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: transition %d: %v", timeline.ErrConfiguration, i, err)
		}
		timing, err := transition.ParseTiming(tr.Timing, tr.Spring)
		if err != nil {
			return nil, fmt.Errorf("%w: transition %d: %v", timeline.ErrConfiguration, i, err)
		}
		transitions[i] = transition.Descriptor{
			Presentation:     presentation,
			Timing:           timing,
			DurationInFrames: tr.Duration,
		}
	}

	return timeline.New(scenes, transitions)
}
