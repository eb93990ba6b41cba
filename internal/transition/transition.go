package transition

import "fmt"

// Descriptor is an immutable transition between two adjacent scenes.
type Descriptor struct {
	Presentation     Presentation
	Timing           Timing
	DurationInFrames int
}

// Validate checks the descriptor in isolation; adjacency limits are checked by the timeline.
func (d Descriptor) Validate() error {
	if d.DurationInFrames < 0 {
		return fmt.Errorf("transition duration must not be negative, got %d", d.DurationInFrames)
	}
	switch p := d.Presentation.(type) {
	case nil:
		return fmt.Errorf("transition presentation is nil")
	case Slide:
		if _, _, err := p.Direction.vector(); err != nil {
			return fmt.Errorf("slide: %w", err)
		}
	case Wipe:
		if _, _, err := p.Direction.vector(); err != nil {
			return fmt.Errorf("wipe: %w", err)
		}
	}
	return nil
}

// Progress returns the blend progress elapsed frames into the window.
// A nil Timing is linear.
func (d Descriptor) Progress(elapsed int, fps float64) float64 {
	timing := d.Timing
	if timing == nil {
		timing = Linear{}
	}
	return timing.Progress(elapsed, d.DurationInFrames, fps)
}

// Cut is a zero-length transition: the next scene starts right after the previous ends.
func Cut() Descriptor {
	return Descriptor{Presentation: None{}, Timing: Linear{}}
}
