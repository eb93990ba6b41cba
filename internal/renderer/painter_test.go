package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/system"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
)

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func plainScenario() *director.Scenario {
	return &director.Scenario{
		FPS:    30,
		Width:  64,
		Height: 36,
		Scenes: []director.Scene{
			{ID: "red", Duration: 20, Background: "#ff0000"},
			{ID: "blue", Duration: 20, Background: "#00f"},
		},
	}
}

func newTestPainter(t *testing.T, s *director.Scenario) *Painter {
	t.Helper()
	p, err := NewPainter(s, s.Width, s.Height, system.NewImagePool())
	if err != nil {
		t.Fatalf("NewPainter failed: %v", err)
	}
	return p
}

func active(id string, layer transition.Layer, params scene.ParameterSet) timeline.ActiveScene {
	if params == nil {
		params = scene.ParameterSet{}
	}
	return timeline.ActiveScene{SceneID: id, Layer: layer, Parameters: params}
}

func rgbaAt(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestPaintSingleScene(t *testing.T) {
	p := newTestPainter(t, plainScenario())

	frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{active("red", transition.Full, nil)}})
	defer p.Release(frame)

	if got := rgbaAt(frame, 0, 0); got != red {
		t.Errorf("Expected red background, got %v", got)
	}
	if got := rgbaAt(frame, 63, 35); got != red {
		t.Errorf("Expected red background in the corner, got %v", got)
	}
}

func TestPaintSlideHalfway(t *testing.T) {
	p := newTestPainter(t, plainScenario())
	exiting, entering := transition.Slide{Direction: transition.FromRight}.Layers(0.5)

	frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{
		active("red", exiting, nil),
		active("blue", entering, nil),
	}})
	defer p.Release(frame)

	if got := rgbaAt(frame, 5, 10); got != red {
		t.Errorf("Expected exiting scene on the left, got %v", got)
	}
	if got := rgbaAt(frame, 58, 10); got != blue {
		t.Errorf("Expected entering scene on the right, got %v", got)
	}
}

func TestPaintFadeBlends(t *testing.T) {
	p := newTestPainter(t, plainScenario())
	exiting, entering := transition.Fade{}.Layers(0.5)

	frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{
		active("red", exiting, nil),
		active("blue", entering, nil),
	}})
	defer p.Release(frame)

	got := rgbaAt(frame, 10, 10)
	if got.R < 0x70 || got.R > 0x90 || got.B < 0x70 || got.B > 0x90 {
		t.Errorf("Expected an even red/blue mix, got %v", got)
	}
}

func TestPaintWipe(t *testing.T) {
	p := newTestPainter(t, plainScenario())
	exiting, entering := transition.Wipe{Direction: transition.FromLeft}.Layers(0.25)

	frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{
		active("red", exiting, nil),
		active("blue", entering, nil),
	}})
	defer p.Release(frame)

	if got := rgbaAt(frame, 2, 10); got != blue {
		t.Errorf("Expected uncovered strip on the left, got %v", got)
	}
	if got := rgbaAt(frame, 40, 10); got != red {
		t.Errorf("Expected covered part to show the exiting scene, got %v", got)
	}
}

func TestPaintSceneOpacity(t *testing.T) {
	p := newTestPainter(t, plainScenario())

	frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{
		active("red", transition.Full, scene.ParameterSet{ParamOpacity: 0}),
	}})
	defer p.Release(frame)

	if got := rgbaAt(frame, 10, 10); got != (color.RGBA{A: 0xff}) {
		t.Errorf("Expected black for an invisible scene, got %v", got)
	}
}

func TestPaintDefaultScenario(t *testing.T) {
	scenario := director.DefaultScenario()
	scenario.Width, scenario.Height = 320, 180
	p := newTestPainter(t, scenario)

	tl, err := scenario.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	for _, f := range []int{0, 45, 92, 150, 177, 249} {
		rf, err := tl.Resolve(f, scenario.FPS)
		if err != nil {
			t.Fatalf("Resolve(%d) failed: %v", f, err)
		}
		frame := p.Paint(rf)

		var buf bytes.Buffer
		if err := EncodePNG(&buf, frame); err != nil {
			t.Fatalf("EncodePNG failed: %v", err)
		}
		p.Release(frame)

		decoded, err := png.Decode(&buf)
		if err != nil {
			t.Fatalf("Frame %d is not a valid PNG: %v", f, err)
		}
		if decoded.Bounds().Dx() != 320 || decoded.Bounds().Dy() != 180 {
			t.Errorf("Frame %d has bounds %v", f, decoded.Bounds())
		}
	}
}

func TestNewPainterRejectsBadInput(t *testing.T) {
	s := plainScenario()
	s.Scenes[0].Background = "red"
	if _, err := NewPainter(s, 64, 36, nil); err == nil {
		t.Error("Expected error for a color without #")
	}

	if _, err := NewPainter(plainScenario(), 0, 36, nil); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"#ff0000", red, false},
		{"#00f", blue, false},
		{"", color.RGBA{A: 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := parseHexColor(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("parseHexColor(%q): expected error=%v, got %v", tt.in, tt.err, err)
			continue
		}
		if !tt.err && got != tt.want {
			t.Errorf("parseHexColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func writeSplitPNG(t *testing.T, w, h int) string {
	t.Helper()
	green := color.RGBA{G: 0xff, A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				img.SetRGBA(x, y, green)
			} else {
				img.SetRGBA(x, y, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			}
		}
	}
	path := filepath.Join(t.TempDir(), "bg.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPaintBackgroundZoom(t *testing.T) {
	s := plainScenario()
	s.Scenes[0].Image = &director.Image{Path: writeSplitPNG(t, 128, 72), Anchor: "top-left"}
	p := newTestPainter(t, s)

	tests := []struct {
		name string
		zoom float64
		want color.RGBA
	}{
		{"whole image", 1, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"zoomed to the left half", 2, color.RGBA{G: 0xff, A: 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := scene.ParameterSet{ParamBackgroundZoom: tt.zoom}
			frame := p.Paint(timeline.ResolvedFrame{Active: []timeline.ActiveScene{active("red", transition.Full, params)}})
			defer p.Release(frame)

			if got := rgbaAt(frame, 5, 10); got != (color.RGBA{G: 0xff, A: 0xff}) {
				t.Errorf("left edge: got %v", got)
			}
			if got := rgbaAt(frame, 58, 10); got != tt.want {
				t.Errorf("right side: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBackgroundErrors(t *testing.T) {
	s := plainScenario()
	s.Scenes[0].Image = &director.Image{Path: writeSplitPNG(t, 16, 16), Anchor: "middle"}
	if _, err := NewPainter(s, 64, 36, nil); err == nil {
		t.Error("expected error for unknown anchor")
	}

	s.Scenes[0].Image = &director.Image{Path: filepath.Join(t.TempDir(), "missing.png")}
	if _, err := NewPainter(s, 64, 36, nil); err == nil {
		t.Error("expected error for a missing image")
	}
}
