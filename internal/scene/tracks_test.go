package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/ivlev/promoreel/internal/motion"
)

func titleTracks(t *testing.T) *Tracks {
	t.Helper()
	program, err := NewTracks([]Track{
		{
			Name:   "title.scale",
			Driver: DriverSpring,
			Delay:  5,
			Spring: motion.SpringConfig{Damping: 12, Stiffness: 180},
			Input:  []float64{0, 1},
			Output: []float64{0.6, 1},
		},
		{
			Name:             "title.opacity",
			Delay:            10,
			Input:            []float64{0, 20},
			Output:           []float64{0, 1},
			ExtrapolateLeft:  motion.Clamp,
			ExtrapolateRight: motion.Clamp,
		},
		{
			Name:             "users",
			Driver:           DriverSpring,
			Delay:            30,
			DurationInFrames: 40,
			Spring:           motion.SpringConfig{Damping: 200},
			Input:            []float64{0, 1},
			Output:           []float64{0, 12000},
			Round:            true,
		},
	})
	if err != nil {
		t.Fatalf("NewTracks failed: %v", err)
	}
	return program
}

func TestTracksEvaluate(t *testing.T) {
	program := titleTracks(t)

	start := program.Evaluate(0, 30)
	if got := start.Get("title.scale", -1); got != 0.6 {
		t.Errorf("Expected title.scale 0.6 before its delay, got %f", got)
	}
	if got := start.Get("title.opacity", -1); got != 0 {
		t.Errorf("Expected title.opacity 0 before its delay, got %f", got)
	}
	if got := start.Get("users", -1); got != 0 {
		t.Errorf("Expected counter 0 before its delay, got %f", got)
	}

	mid := program.Evaluate(20, 30)
	if got := mid.Get("title.opacity", -1); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected title.opacity 0.5 at frame 20, got %f", got)
	}

	end := program.Evaluate(70, 30)
	if got := end.Get("title.opacity", -1); got != 1 {
		t.Errorf("Expected clamped opacity 1, got %f", got)
	}
	if got := end.Get("users", -1); math.Abs(got-12000) > 12000*0.01 || got != math.Round(got) {
		t.Errorf("Expected rounded counter near 12000 at its target frame, got %f", got)
	}
}

func TestTracksAreIndependentOfEvaluationOrder(t *testing.T) {
	program := titleTracks(t)

	forward := make([]ParameterSet, 90)
	for f := 0; f < 90; f++ {
		forward[f] = program.Evaluate(f, 30)
	}
	for f := 89; f >= 0; f-- {
		again := program.Evaluate(f, 30)
		for _, name := range again.Names() {
			if math.Float64bits(again[name]) != math.Float64bits(forward[f][name]) {
				t.Fatalf("Frame %d %s differs between passes: %v vs %v", f, name, again[name], forward[f][name])
			}
		}
	}
}

func TestNewTracksValidation(t *testing.T) {
	tests := []struct {
		name    string
		tracks  []Track
		isRange bool
	}{
		{"empty name", []Track{{Driver: DriverFrame}}, false},
		{"duplicate", []Track{{Name: "a"}, {Name: "a"}}, false},
		{"unknown driver", []Track{{Name: "a", Driver: "bezier"}}, false},
		{"negative delay", []Track{{Name: "a", Delay: -1}}, false},
		{"bad spring", []Track{{Name: "a", Driver: DriverSpring, Spring: motion.SpringConfig{Mass: -2}}}, false},
		{"easing without mapping", []Track{{Name: "a", Easing: "ease-in-cubic"}}, false},
		{"degenerate range", []Track{{Name: "a", Input: []float64{1, 1}, Output: []float64{0, 1}}}, true},
		{"short output", []Track{{Name: "a", Input: []float64{0, 1}, Output: []float64{0}}}, true},
		{"duration on frame driver", []Track{{Name: "a", DurationInFrames: 30}}, false},
		{"spring on frame driver", []Track{{Name: "a", Driver: DriverFrame, Spring: motion.SpringConfig{Damping: 200}}}, false},
		{"spring on sine driver", []Track{{Name: "a", Driver: DriverSine, Period: 60, Spring: motion.SpringConfig{Damping: 200}}}, false},
		{"sine without period", []Track{{Name: "a", Driver: DriverSine, Amplitude: 2}}, false},
		{"period on spring driver", []Track{{Name: "a", Driver: DriverSpring, Period: 60}}, false},
		{"infinite amplitude", []Track{{Name: "a", Driver: DriverCosine, Period: 60, Amplitude: math.Inf(1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTracks(tt.tracks)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.isRange && !errors.Is(err, motion.ErrRange) {
				t.Errorf("Expected ErrRange in chain, got %v", err)
			}
		})
	}
}

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		desc    Descriptor
		wantErr bool
	}{
		{Descriptor{ID: "intro", DurationInFrames: 10, Program: Static}, false},
		{Descriptor{ID: "", DurationInFrames: 10, Program: Static}, true},
		{Descriptor{ID: "intro", DurationInFrames: 0, Program: Static}, true},
		{Descriptor{ID: "intro", DurationInFrames: -3, Program: Static}, true},
		{Descriptor{ID: "intro", DurationInFrames: 10}, true},
	}
	for _, tt := range tests {
		err := tt.desc.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v): expected error=%v, got %v", tt.desc, tt.wantErr, err)
		}
	}
}

func TestParameterSetNames(t *testing.T) {
	p := ParameterSet{"z": 1, "a": 2, "m": 3}
	names := p.Names()
	want := []string{"a", "m", "z"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, names)
		}
	}
}

func TestPeriodicDrivers(t *testing.T) {
	program, err := NewTracks([]Track{
		{Name: "float.y", Driver: DriverSine, Period: 40, Amplitude: 12},
		{Name: "float.x", Driver: DriverCosine, Period: 40, Amplitude: 8, Delay: 10},
		{Name: "unit", Driver: DriverSine, Period: 40, Phase: math.Pi / 2},
	})
	if err != nil {
		t.Fatalf("NewTracks failed: %v", err)
	}

	tests := []struct {
		frame int
		name  string
		want  float64
	}{
		{0, "float.y", 0},
		{10, "float.y", 12},
		{20, "float.y", 0},
		{30, "float.y", -12},
		{40, "float.y", 0},
		{10, "float.x", 8},
		{30, "float.x", -8},
		{0, "unit", 1},
		{20, "unit", -1},
	}
	for _, tt := range tests {
		got := program.Evaluate(tt.frame, 30).Get(tt.name, math.NaN())
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s at frame %d: got %v, want %v", tt.name, tt.frame, got, tt.want)
		}
	}

	// A wave is a pure function of the frame: one full period later it repeats exactly.
	for f := 0; f < 40; f++ {
		a := program.Evaluate(f, 30)
		b := program.Evaluate(f, 30)
		if math.Float64bits(a["float.y"]) != math.Float64bits(b["float.y"]) {
			t.Fatalf("frame %d evaluated twice differs", f)
		}
		if math.Abs(a["float.y"]-program.Evaluate(f+40, 30)["float.y"]) > 1e-9 {
			t.Errorf("frame %d does not repeat after one period", f)
		}
	}
}
