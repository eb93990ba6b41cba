package timeline

import (
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// ResolvedFrame is the state of the timeline at one frame. It is recomputed per query.
type ResolvedFrame struct {
	Frame       int              `json:"frame" msgpack:"frame"`
	TotalFrames int              `json:"total_frames" msgpack:"total_frames"`
	Active      []ActiveScene    `json:"active" msgpack:"active"`
	Transition  *TransitionState `json:"transition,omitempty" msgpack:"transition,omitempty"`
}

// ActiveScene is one visible scene, in paint order (exiting before entering).
type ActiveScene struct {
	SceneID     string             `json:"scene_id" msgpack:"scene_id"`
	Index       int                `json:"index" msgpack:"index"`
	LocalFrame  int                `json:"local_frame" msgpack:"local_frame"`
	BlendWeight float64            `json:"blend_weight" msgpack:"blend_weight"`
	Layer       transition.Layer   `json:"layer" msgpack:"layer"`
	Parameters  scene.ParameterSet `json:"parameters" msgpack:"parameters"`
}

// TransitionState describes the window a frame falls into.
type TransitionState struct {
	Index          int     `json:"index" msgpack:"index"`
	Presentation   string  `json:"presentation" msgpack:"presentation"`
	Timing         string  `json:"timing" msgpack:"timing"`
	Elapsed        int     `json:"elapsed" msgpack:"elapsed"`
	Duration       int     `json:"duration" msgpack:"duration"`
	LinearProgress float64 `json:"linear_progress" msgpack:"linear_progress"`
	Progress       float64 `json:"progress" msgpack:"progress"`
}

// InTransition reports whether two scenes are blended at this frame.
func (rf ResolvedFrame) InTransition() bool {
	return rf.Transition != nil
}

// Scene returns the active scene with the given id.
func (rf ResolvedFrame) Scene(id string) (ActiveScene, bool) {
	for _, a := range rf.Active {
		if a.SceneID == id {
			return a, true
		}
	}
	return ActiveScene{}, false
}
