package director

import (
	"fmt"
	"math"
)

// Element kinds the painter can draw
const (
	KindText    = "text"
	KindCounter = "counter"
	KindBar     = "bar"
	KindOrb     = "orb"
	KindRing    = "ring"
)

// Element is a label or shape drawn over a scene's background, in declaration order.
// Its animated values are the scene parameters named after it:
//
//	<id>.opacity   multiplies the element's alpha (default 1)
//	<id>.scale     multiplies Size (default 1)
//	<id>.x, <id>.y offset the center, in fractions of the frame height (default 0)
//	<id>.value     counter number (default 0) or bar fill in [0,1] (default 1)
//	<id>.rotation  ring marker angle in degrees (default 0)
type Element struct {
	ID    string  `yaml:"id"`
	Kind  string  `yaml:"kind"`
	Text  string  `yaml:"text,omitempty"`  // Text content, or the counter suffix
	Color string  `yaml:"color,omitempty"` // Hex color, white when empty
	X     float64 `yaml:"x"`               // Center, fraction of frame width
	Y     float64 `yaml:"y"`               // Center, fraction of frame height
	Size  float64 `yaml:"size"`            // Text height, diameter or bar thickness, fraction of frame height
	Width float64 `yaml:"width,omitempty"` // Bar length at full fill, fraction of frame width
}

// Param returns the name of one of the element's animated parameters.
func (e Element) Param(name string) string {
	return e.ID + "." + name
}

func validateElements(elements []Element) error {
	seen := make(map[string]bool, len(elements))
	for i, e := range elements {
		if e.ID == "" {
			return fmt.Errorf("element %d: id is empty", i)
		}
		if seen[e.ID] {
			return fmt.Errorf("element %q: duplicate id", e.ID)
		}
		seen[e.ID] = true

		switch e.Kind {
		case KindText:
			if e.Text == "" {
				return fmt.Errorf("element %q: text is empty", e.ID)
			}
		case KindBar:
			if !(e.Width > 0) {
				return fmt.Errorf("element %q: bar width must be positive, got %v", e.ID, e.Width)
			}
		case KindCounter, KindOrb, KindRing:
		default:
			return fmt.Errorf("element %q: unknown kind %q (text, counter, bar, orb, ring)", e.ID, e.Kind)
		}

		if !(e.Size > 0) || math.IsInf(e.Size, 0) {
			return fmt.Errorf("element %q: size must be positive, got %v", e.ID, e.Size)
		}
	}
	return nil
}
