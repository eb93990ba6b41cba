// Package transition describes how two adjacent scenes blend over an overlap window.
package transition

import "fmt"

// Direction is the edge an entering scene comes from.
type Direction string

const (
	FromLeft   Direction = "from-left"
	FromRight  Direction = "from-right"
	FromTop    Direction = "from-top"
	FromBottom Direction = "from-bottom"
)

// vector points from the frame center toward the edge the scene enters from.
func (d Direction) vector() (float64, float64, error) {
	switch d {
	case FromLeft:
		return -1, 0, nil
	case FromRight, "":
		return 1, 0, nil
	case FromTop:
		return 0, -1, nil
	case FromBottom:
		return 0, 1, nil
	}
	return 0, 0, fmt.Errorf("unknown direction %q", d)
}

// Layer tells the paint step how to composite one scene during a transition.
type Layer struct {
	Opacity float64 `json:"opacity" msgpack:"opacity"`
	// OffsetX and OffsetY shift the scene by a fraction of the frame size.
	OffsetX float64 `json:"offset_x" msgpack:"offset_x"`
	OffsetY float64 `json:"offset_y" msgpack:"offset_y"`
	// Reveal is the visible fraction of the scene, growing away from RevealFrom.
	Reveal     float64   `json:"reveal" msgpack:"reveal"`
	RevealFrom Direction `json:"reveal_from,omitempty" msgpack:"reveal_from,omitempty"`
}

// Full is a scene painted without any transition effect.
var Full = Layer{Opacity: 1, Reveal: 1}

// Presentation is the closed set of transition styles.
type Presentation interface {
	Name() string
	// Layers maps curve progress in [0,1] to the exiting and entering layers.
	Layers(progress float64) (exiting, entering Layer)
	isPresentation()
}

// Fade cross-fades: the entering scene is painted over the exiting one with rising opacity.
type Fade struct{}

func (Fade) Name() string { return "fade" }

func (Fade) Layers(p float64) (Layer, Layer) {
	entering := Full
	entering.Opacity = p
	return Full, entering
}

func (Fade) isPresentation() {}

// Slide pushes the exiting scene out while the entering scene slides in from Direction.
type Slide struct {
	Direction Direction
}

func (s Slide) Name() string { return "slide" }

func (s Slide) Layers(p float64) (Layer, Layer) {
	dx, dy, _ := s.Direction.vector()
	exiting, entering := Full, Full
	exiting.OffsetX, exiting.OffsetY = -dx*p, -dy*p
	entering.OffsetX, entering.OffsetY = dx*(1-p), dy*(1-p)
	return exiting, entering
}

func (Slide) isPresentation() {}

// Wipe uncovers the entering scene starting from Direction.
type Wipe struct {
	Direction Direction
}

func (w Wipe) Name() string { return "wipe" }

func (w Wipe) Layers(p float64) (Layer, Layer) {
	entering := Full
	entering.Reveal = p
	entering.RevealFrom = w.Direction
	if entering.RevealFrom == "" {
		entering.RevealFrom = FromRight
	}
	return Full, entering
}

func (Wipe) isPresentation() {}

// None keeps both scenes fully visible with the entering scene on top.
type None struct{}

func (None) Name() string { return "none" }

func (None) Layers(float64) (Layer, Layer) { return Full, Full }

func (None) isPresentation() {}

// ParsePresentation builds a presentation from its scenario-file name.
func ParsePresentation(name string, direction Direction) (Presentation, error) {
	if _, _, err := direction.vector(); err != nil {
		return nil, err
	}
	switch name {
	case "fade", "":
		return Fade{}, nil
	case "slide":
		return Slide{Direction: direction}, nil
	case "wipe":
		return Wipe{Direction: direction}, nil
	case "none":
		return None{}, nil
	}
	return nil, fmt.Errorf("unknown presentation %q (available: fade, slide, wipe, none)", name)
}
