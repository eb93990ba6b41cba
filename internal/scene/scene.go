// Package scene describes the frame-addressable building blocks of a timeline.
package scene

import (
	"fmt"
	"sort"
)

// ParameterSet holds the named animated values of a scene at one frame.
type ParameterSet map[string]float64

// Names returns the parameter names in sorted order.
func (p ParameterSet) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named value or fallback when the scene does not define it.
func (p ParameterSet) Get(name string, fallback float64) float64 {
	if v, ok := p[name]; ok {
		return v
	}
	return fallback
}

// Program computes a scene's parameters from its local frame.
// Implementations must be pure: the result may depend only on the arguments.
type Program interface {
	Evaluate(localFrame int, fps float64) ParameterSet
}

// ProgramFunc adapts a plain function to Program.
type ProgramFunc func(localFrame int, fps float64) ParameterSet

// Evaluate calls f.
func (f ProgramFunc) Evaluate(localFrame int, fps float64) ParameterSet {
	return f(localFrame, fps)
}

// Static is a program without animated parameters.
var Static Program = ProgramFunc(func(int, float64) ParameterSet {
	return ParameterSet{}
})

// Descriptor is an immutable scene: an identifier, a length and a parameter program.
type Descriptor struct {
	ID               string
	DurationInFrames int
	Program          Program
}

// Validate checks the invariants a timeline relies on.
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("scene id is empty")
	}
	if d.DurationInFrames <= 0 {
		return fmt.Errorf("scene %q: duration must be positive, got %d", d.ID, d.DurationInFrames)
	}
	if d.Program == nil {
		return fmt.Errorf("scene %q: program is nil", d.ID)
	}
	return nil
}

// Evaluate runs the scene program for localFrame.
func (d Descriptor) Evaluate(localFrame int, fps float64) ParameterSet {
	return d.Program.Evaluate(localFrame, fps)
}
