package analyzer

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func testImage(w, h int, block image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(img, block, image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestContrastDetector(t *testing.T) {
	img := testImage(200, 200, image.Rect(50, 50, 150, 150))

	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
	r := blocks[0].Rect
	if r.Dx() < 90 || r.Dy() < 90 || !r.Overlaps(image.Rect(50, 50, 150, 150)) {
		t.Errorf("unexpected block %v", r)
	}
}

func TestContrastDetectorFlatImage(t *testing.T) {
	img := testImage(100, 100, image.Rectangle{})
	blocks, err := NewContrastDetector().Detect(img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("expected no blocks, got %v", blocks)
	}
}

func TestFocus(t *testing.T) {
	tests := []struct {
		name  string
		img   image.Image
		want  image.Point
		slack int
	}{
		{"block in the top right", testImage(1200, 800, image.Rect(800, 100, 1100, 300)), image.Pt(950, 200), 20},
		{"flat image", testImage(400, 300, image.Rectangle{}), image.Pt(200, 150), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Focus(NewContrastDetector(), tt.img)
			if err != nil {
				t.Fatalf("Focus: %v", err)
			}
			if abs(got.X-tt.want.X) > tt.slack || abs(got.Y-tt.want.Y) > tt.slack {
				t.Errorf("got %v, want %v (±%d)", got, tt.want, tt.slack)
			}
		})
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false},
		{"none", false},
		{"ocr", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if detector == nil {
				t.Error("expected detector, got nil")
			}
		})
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
