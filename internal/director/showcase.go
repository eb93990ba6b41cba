package director

import (
	"fmt"
	"math"

	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// Showcase palette
const (
	colorBackground = "#0a0a0a"
	colorAccent1    = "#6366f1"
	colorAccent2    = "#8b5cf6"
	colorAccent3    = "#ec4899"
	colorText       = "#ffffff"
	colorTextMuted  = "#a1a1aa"
)

// px converts a length of the 1080-line reference layout to a fraction of the frame height.
const px = 1.0 / 1080

var (
	smooth = motion.SpringConfig{Damping: 200}
	bouncy = motion.SpringConfig{Damping: 12, Stiffness: 100}
	snappy = motion.SpringConfig{Damping: 15, Stiffness: 120}
	settle = motion.SpringConfig{Damping: 15, Stiffness: 100}
)

// DefaultScenario returns the three-scene showcase: an intro with floating orbs,
// kinetic typography with counters, and an outro with rotating rings.
// 100 + 100 + 80 frames joined by two 15-frame transitions make 250 frames.
func DefaultScenario() *Scenario {
	return &Scenario{
		Version: "1.0",
		FPS:     DefaultFPS,
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Scenes:  []Scene{introScene(), kineticScene(), outroScene()},
		Transitions: []Transition{
			{Presentation: "slide", Direction: transition.FromRight, Timing: "linear", Duration: 15},
			{Presentation: "fade", Timing: "linear", Duration: 15},
		},
	}
}

func introScene() Scene {
	s := Scene{
		ID:         "intro",
		Duration:   100,
		Background: colorBackground,
		Title:      "POSTRA",
		Elements: []Element{
			{ID: "orb1", Kind: KindOrb, Color: colorAccent1, X: 0.20, Y: 0.30, Size: 600 * px},
			{ID: "orb2", Kind: KindOrb, Color: colorAccent2, X: 0.75, Y: 0.55, Size: 450 * px},
			{ID: "orb3", Kind: KindOrb, Color: colorAccent3, X: 0.50, Y: 0.20, Size: 350 * px},
			{ID: "line", Kind: KindBar, Color: colorAccent1, X: 0.5, Y: 0.5 + 80*px, Size: 3 * px, Width: 140.0 / 1920},
			{ID: "tagline", Kind: KindText, Color: colorTextMuted, Text: "THE FUTURE OF CONTENT", X: 0.5, Y: 0.5 + 130*px, Size: 24 * px},
		},
		Tracks: []scene.Track{
			springTrack("title.scale", 8, bouncy, 0),
			fadeIn(springTrack("title.opacity", 8, bouncy, 0), 0.5),
			constant("title.y", -40*px),
			springTrack("line.value", 28, smooth, 25),
			mapped(springTrack("tagline.y", 22, smooth, 0), 0, 1, 30*px, 0),
			springTrack("tagline.opacity", 22, smooth, 0),
		},
	}

	orbs := []struct {
		id         string
		delay      float64
		floatSpeed float64
	}{
		{"orb1", 0, 20},
		{"orb2", 5, 25},
		{"orb3", 10, 18},
	}
	for _, o := range orbs {
		s.Tracks = append(s.Tracks,
			springTrack(o.id+".scale", o.delay, smooth, 0),
			mapped(springTrack(o.id+".opacity", o.delay, smooth, 0), 0, 1, 0, 0.35),
			// sin(frame/floatSpeed) has a period of 2π·floatSpeed frames.
			scene.Track{Name: o.id + ".y", Driver: scene.DriverSine, Period: 2 * math.Pi * o.floatSpeed, Amplitude: 12 * px},
			scene.Track{Name: o.id + ".x", Driver: scene.DriverCosine, Period: 2 * math.Pi * o.floatSpeed * 1.3, Amplitude: 8 * px},
		)
	}
	return s
}

func kineticScene() Scene {
	s := Scene{
		ID:         "kinetic",
		Duration:   100,
		Background: colorBackground,
		Elements: []Element{
			{ID: "glow", Kind: KindOrb, Color: colorAccent2, X: 0.5, Y: 0.4, Size: 900 * px},
		},
		Tracks: []scene.Track{
			constant("glow.opacity", 0.1),
		},
	}

	words := []struct {
		id, text, color string
		x, delay        float64
	}{
		{"word1", "Design.", colorAccent1, 0.27, 5},
		{"word2", "Animate.", colorAccent2, 0.50, 20},
		{"word3", "Deliver.", colorAccent3, 0.73, 35},
	}
	for i, w := range words {
		underline := fmt.Sprintf("underline%d", i+1)
		s.Elements = append(s.Elements,
			Element{ID: w.id, Kind: KindText, Color: colorText, Text: w.text, X: w.x, Y: 0.36, Size: 100 * px},
			Element{ID: underline, Kind: KindBar, Color: w.color, X: w.x, Y: 0.36 + 62*px, Size: 6 * px, Width: 0.2},
		)
		s.Tracks = append(s.Tracks,
			mapped(springTrack(w.id+".y", w.delay, snappy, 0), 0, 1, 60*px, 0),
			fadeIn(springTrack(w.id+".opacity", w.delay, snappy, 0), 0.5),
			mapped(springTrack(underline+".y", w.delay, snappy, 0), 0, 1, 60*px, 0),
			fadeIn(springTrack(underline+".opacity", w.delay, snappy, 0), 0.5),
			springTrack(underline+".value", w.delay+10, smooth, 20),
		)
	}

	counters := []struct {
		suffix, label string
		target        float64
		x, delay      float64
	}{
		{" fps", "SMOOTH MOTION", 60, 0.25, 50},
		{"K", "RESOLUTION", 4, 0.50, 55},
		{"%", "CODE-DRIVEN", 100, 0.75, 60},
	}
	for i, c := range counters {
		id := fmt.Sprintf("counter%d", i+1)
		label := fmt.Sprintf("label%d", i+1)
		s.Elements = append(s.Elements,
			Element{ID: id, Kind: KindCounter, Color: colorText, Text: c.suffix, X: c.x, Y: 0.80, Size: 48 * px},
			Element{ID: label, Kind: KindText, Color: colorTextMuted, Text: c.label, X: c.x, Y: 0.80 + 45*px, Size: 14 * px},
		)
		value := mapped(springTrack(id+".value", c.delay, smooth, 30), 0, 1, 0, c.target)
		value.Round = true
		s.Tracks = append(s.Tracks,
			value,
			fadeIn(springTrack(id+".opacity", c.delay, smooth, 30), 0.3),
			mapped(springTrack(id+".y", c.delay, smooth, 30), 0, 1, 20*px, 0),
			fadeIn(springTrack(label+".opacity", c.delay, smooth, 30), 0.3),
			mapped(springTrack(label+".y", c.delay, smooth, 30), 0, 1, 20*px, 0),
		)
	}
	return s
}

func outroScene() Scene {
	return Scene{
		ID:         "outro",
		Duration:   80,
		Background: colorBackground,
		Title:      "See the potential?",
		Elements: []Element{
			{ID: "glow", Kind: KindOrb, Color: colorAccent2, X: 0.5, Y: 0.5, Size: 700 * px},
			{ID: "ring1", Kind: KindRing, Color: colorAccent2, X: 0.5, Y: 0.5, Size: 350 * px},
			{ID: "ring2", Kind: KindRing, Color: colorAccent1, X: 0.5, Y: 0.5, Size: 450 * px},
			{ID: "subtitle", Kind: KindText, Color: colorTextMuted, Text: "EVERY FRAME, CRAFTED BY CODE", X: 0.5, Y: 0.5 + 70*px, Size: 20 * px},
		},
		Tracks: []scene.Track{
			springTrack("glow.scale", 0, smooth, 30),
			mapped(springTrack("glow.opacity", 0, smooth, 30), 0, 1, 0, 0.2),
			mapped(springTrack("ring1.scale", 5, smooth, 40), 0, 1, 0.5, 1),
			mapped(springTrack("ring1.opacity", 5, smooth, 40), 0, 1, 0, 0.5),
			frameTrack("ring1.rotation", 0, 80, 0, 45),
			mapped(springTrack("ring2.scale", 5, smooth, 40), 0, 1, 0.5, 1),
			mapped(springTrack("ring2.opacity", 5, smooth, 40), 0, 1, 0, 0.3),
			frameTrack("ring2.rotation", 0, 80, 0, -45*0.7),
			mapped(springTrack("title.y", 8, settle, 0), 0, 1, 0, -40*px),
			fadeIn(springTrack("title.opacity", 8, settle, 0), 0.6),
			mapped(springTrack("subtitle.y", 18, smooth, 0), 0, 1, 20*px, 0),
			springTrack("subtitle.opacity", 18, smooth, 0),
		},
	}
}

func springTrack(name string, delay float64, cfg motion.SpringConfig, duration float64) scene.Track {
	return scene.Track{Name: name, Driver: scene.DriverSpring, Delay: delay, Spring: cfg, DurationInFrames: duration}
}

// frameTrack maps local frames [f0, f1] linearly to [v0, v1].
func frameTrack(name string, f0, f1, v0, v1 float64) scene.Track {
	return scene.Track{Name: name, Driver: scene.DriverFrame, Input: []float64{f0, f1}, Output: []float64{v0, v1}}
}

func mapped(t scene.Track, in0, in1, out0, out1 float64) scene.Track {
	t.Input = []float64{in0, in1}
	t.Output = []float64{out0, out1}
	return t
}

// fadeIn maps progress [0, full] to opacity [0, 1] and holds 1 afterwards.
func fadeIn(t scene.Track, full float64) scene.Track {
	t = mapped(t, 0, full, 0, 1)
	t.ExtrapolateRight = motion.Clamp
	return t
}

func constant(name string, v float64) scene.Track {
	return frameTrack(name, 0, 1, v, v)
}
