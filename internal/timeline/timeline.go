// Package timeline composes scenes and transitions into one frame-addressable timeline.
//
// A Timeline is immutable after New returns. Resolve is a pure function of its
// arguments, so frames can be resolved in any order and from any number of goroutines.
package timeline

import (
	"sort"

	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// Timeline is an ordered list of scenes joined by transitions.
// Scene i and scene i+1 overlap for transitions[i].DurationInFrames frames.
type Timeline struct {
	scenes      []scene.Descriptor
	transitions []transition.Descriptor
	starts      []int
	total       int
}

// Window is the half-open frame range [Start, End) in which transition Index blends
// scene Index into scene Index+1.
type Window struct {
	Index int
	Start int
	End   int
}

// New validates the scene and transition lists and precomputes scene start offsets.
// It needs exactly len(scenes)-1 transitions.
func New(scenes []scene.Descriptor, transitions []transition.Descriptor) (*Timeline, error) {
	if len(scenes) == 0 {
		return nil, configError("timeline has no scenes")
	}
	if len(transitions) != len(scenes)-1 {
		return nil, configError("%d scenes need %d transitions, got %d", len(scenes), len(scenes)-1, len(transitions))
	}

	ids := make(map[string]int, len(scenes))
	for i, s := range scenes {
		if err := s.Validate(); err != nil {
			return nil, configError("scene %d: %v", i, err)
		}
		if prev, ok := ids[s.ID]; ok {
			return nil, configError("scene id %q used by scenes %d and %d", s.ID, prev, i)
		}
		ids[s.ID] = i
	}

	for i, tr := range transitions {
		if err := tr.Validate(); err != nil {
			return nil, configError("transition %d: %v", i, err)
		}
		prev, next := scenes[i], scenes[i+1]
		if tr.DurationInFrames > prev.DurationInFrames || tr.DurationInFrames > next.DurationInFrames {
			return nil, configError("transition %d (%d frames) outlasts scene %q (%d) or %q (%d)",
				i, tr.DurationInFrames, prev.ID, prev.DurationInFrames, next.ID, next.DurationInFrames)
		}
	}

	// The leading and trailing windows of a scene must not intersect, otherwise three
	// scenes would be visible at once.
	for i := 1; i < len(scenes)-1; i++ {
		in, out := transitions[i-1].DurationInFrames, transitions[i].DurationInFrames
		if in+out > scenes[i].DurationInFrames {
			return nil, configError("scene %q (%d frames) is shorter than its transitions combined (%d + %d)",
				scenes[i].ID, scenes[i].DurationInFrames, in, out)
		}
	}

	t := &Timeline{
		scenes:      append([]scene.Descriptor(nil), scenes...),
		transitions: append([]transition.Descriptor(nil), transitions...),
		starts:      make([]int, len(scenes)),
	}
	for i := 1; i < len(scenes); i++ {
		t.starts[i] = t.starts[i-1] + scenes[i-1].DurationInFrames - transitions[i-1].DurationInFrames
	}
	last := len(scenes) - 1
	t.total = t.starts[last] + scenes[last].DurationInFrames

	return t, nil
}

// TotalDurationFrames is the sum of scene durations minus the sum of transition durations.
func (t *Timeline) TotalDurationFrames() int {
	return t.total
}

// Len returns the number of scenes.
func (t *Timeline) Len() int {
	return len(t.scenes)
}

// Scene returns scene i.
func (t *Timeline) Scene(i int) scene.Descriptor {
	return t.scenes[i]
}

// SceneStart returns the global frame at which scene i becomes active.
func (t *Timeline) SceneStart(i int) int {
	return t.starts[i]
}

// Transition returns the transition between scene i and scene i+1.
func (t *Timeline) Transition(i int) transition.Descriptor {
	return t.transitions[i]
}

// Overlaps lists the non-empty transition windows in timeline order.
func (t *Timeline) Overlaps() []Window {
	var windows []Window
	for i, tr := range t.transitions {
		if tr.DurationInFrames == 0 {
			continue
		}
		windows = append(windows, Window{
			Index: i,
			Start: t.starts[i+1],
			End:   t.starts[i+1] + tr.DurationInFrames,
		})
	}
	return windows
}

// Resolve reports which scenes are visible at globalFrame, their local frames,
// blend weights and animated parameters.
//
// Overlap windows are half-open: a frame equal to a window's start belongs to the
// window, a frame equal to its end does not.
func (t *Timeline) Resolve(globalFrame int, fps float64) (ResolvedFrame, error) {
	if globalFrame < 0 || globalFrame >= t.total {
		return ResolvedFrame{}, &FrameError{Frame: globalFrame, Total: t.total}
	}
	if !(fps > 0) {
		return ResolvedFrame{}, configError("frame rate must be positive, got %v", fps)
	}

	// Last scene starting at or before the frame
	i := sort.Search(len(t.starts), func(k int) bool { return t.starts[k] > globalFrame }) - 1

	rf := ResolvedFrame{
		Frame:       globalFrame,
		TotalFrames: t.total,
	}

	if i > 0 && globalFrame < t.starts[i-1]+t.scenes[i-1].DurationInFrames {
		tr := t.transitions[i-1]
		elapsed := globalFrame - t.starts[i]
		progress := tr.Progress(elapsed, fps)
		exiting, entering := tr.Presentation.Layers(progress)

		timing := "linear"
		if tr.Timing != nil {
			timing = tr.Timing.Name()
		}

		rf.Active = []ActiveScene{
			t.activate(i-1, globalFrame, 1-progress, exiting, fps),
			t.activate(i, globalFrame, progress, entering, fps),
		}
		rf.Transition = &TransitionState{
			Index:          i - 1,
			Presentation:   tr.Presentation.Name(),
			Timing:         timing,
			Elapsed:        elapsed,
			Duration:       tr.DurationInFrames,
			LinearProgress: float64(elapsed) / float64(tr.DurationInFrames),
			Progress:       progress,
		}
		return rf, nil
	}

	rf.Active = []ActiveScene{t.activate(i, globalFrame, 1, transition.Full, fps)}
	return rf, nil
}

func (t *Timeline) activate(i, globalFrame int, weight float64, layer transition.Layer, fps float64) ActiveScene {
	s := t.scenes[i]
	local := globalFrame - t.starts[i]
	return ActiveScene{
		SceneID:     s.ID,
		Index:       i,
		LocalFrame:  local,
		BlendWeight: weight,
		Layer:       layer,
		Parameters:  s.Evaluate(local, fps),
	}
}
