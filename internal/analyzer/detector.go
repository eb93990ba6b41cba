// Package analyzer finds regions of interest in background images so a zoom can
// close in on content instead of the geometric center.
package analyzer

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// thumbSide bounds the longer side of the image the detectors work on.
const thumbSide = 320

// Block is a detected region of interest.
type Block struct {
	Rect image.Rectangle
	Area int
}

// Detector is an image analysis strategy.
type Detector interface {
	Detect(img image.Image) ([]Block, error)
}

// NewDetector returns the detector for a variant name.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	case "none":
		return noneDetector{}, nil
	default:
		return nil, fmt.Errorf("unknown detector variant %q (contrast, none)", variant)
	}
}

type noneDetector struct{}

func (noneDetector) Detect(image.Image) ([]Block, error) { return nil, nil }

// Focus returns the center of the largest block in img, in img's coordinates.
// The image is analyzed at a reduced size. Without any block the center of img is returned.
func Focus(d Detector, img image.Image) (image.Point, error) {
	b := img.Bounds()
	center := image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
	if b.Empty() {
		return center, nil
	}

	thumb, scale := thumbnail(img)
	blocks, err := d.Detect(thumb)
	if err != nil {
		return center, err
	}

	var best *Block
	for i := range blocks {
		if best == nil || blocks[i].Area > best.Area {
			best = &blocks[i]
		}
	}
	if best == nil {
		return center, nil
	}

	r := best.Rect
	return image.Pt(
		b.Min.X+int(float64(r.Min.X+r.Dx()/2)*scale),
		b.Min.Y+int(float64(r.Min.Y+r.Dy()/2)*scale),
	), nil
}

// thumbnail shrinks img so its longer side is at most thumbSide. scale maps
// thumbnail coordinates back to img.
func thumbnail(img image.Image) (*image.Gray, float64) {
	b := img.Bounds()
	scale := 1.0
	if long := max(b.Dx(), b.Dy()); long > thumbSide {
		scale = float64(long) / thumbSide
	}

	w := max(1, int(float64(b.Dx())/scale))
	h := max(1, int(float64(b.Dy())/scale))
	thumb := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(thumb, thumb.Bounds(), img, b, xdraw.Src, nil)
	return thumb, scale
}
