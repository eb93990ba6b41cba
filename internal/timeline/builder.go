package timeline

import (
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// Builder assembles a timeline from an alternating scene/transition sequence.
// Two scenes added back to back are joined by a transition.Cut.
type Builder struct {
	scenes      []scene.Descriptor
	transitions []transition.Descriptor
	err         error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Scene appends a scene.
func (b *Builder) Scene(s scene.Descriptor) *Builder {
	if len(b.scenes) > 0 && len(b.transitions) < len(b.scenes) {
		b.transitions = append(b.transitions, transition.Cut())
	}
	b.scenes = append(b.scenes, s)
	return b
}

// Transition appends a transition after the most recent scene.
func (b *Builder) Transition(tr transition.Descriptor) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.transitions) >= len(b.scenes) {
		b.err = configError("transition %d does not follow a scene", len(b.transitions))
		return b
	}
	b.transitions = append(b.transitions, tr)
	return b
}

// Build validates the sequence and returns the timeline.
func (b *Builder) Build() (*Timeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.scenes) > 0 && len(b.transitions) == len(b.scenes) {
		return nil, configError("timeline ends with a transition")
	}
	return New(b.scenes, b.transitions)
}
