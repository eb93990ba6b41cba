// Package effects frames background images: a cover fit to the output aspect and
// a zoom that closes in on an anchor point.
package effects

import (
	"fmt"
	"image"
	"math"
	"math/rand"
)

// Anchor is the point a zoom closes in on.
type Anchor string

const (
	AnchorCenter      Anchor = "center"
	AnchorTopLeft     Anchor = "top-left"
	AnchorTopRight    Anchor = "top-right"
	AnchorBottomLeft  Anchor = "bottom-left"
	AnchorBottomRight Anchor = "bottom-right"
	// AnchorFocus closes in on detected content.
	AnchorFocus Anchor = "focus"
	// AnchorRandom picks one of the fixed anchors, seeded by the scene index.
	AnchorRandom Anchor = "random"
)

var fixedAnchors = []Anchor{AnchorCenter, AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight}

// ParseAnchor validates an anchor name. Empty means center.
func ParseAnchor(s string) (Anchor, error) {
	switch a := Anchor(s); a {
	case "":
		return AnchorCenter, nil
	case AnchorCenter, AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorFocus, AnchorRandom:
		return a, nil
	}
	return "", fmt.Errorf("unknown anchor %q", s)
}

// Camera maps a zoom factor to the part of a source image that fills the frame.
type Camera struct {
	src image.Rectangle
	// base is the largest rectangle of the output aspect that fits in src.
	baseW, baseH float64
	// ax and ay place the crop: 0 keeps the left/top edge, 1 the right/bottom edge.
	ax, ay float64
}

// NewCamera frames src for an output of the given size. focus is only read for
// AnchorFocus; seed only for AnchorRandom.
func NewCamera(src image.Rectangle, width, height int, anchor Anchor, focus image.Point, seed int) (Camera, error) {
	if src.Empty() || width <= 0 || height <= 0 {
		return Camera{}, fmt.Errorf("cannot frame %v into %dx%d", src, width, height)
	}

	c := Camera{src: src}
	sw, sh := float64(src.Dx()), float64(src.Dy())
	aspect := float64(width) / float64(height)
	if sw/sh > aspect {
		c.baseW, c.baseH = sh*aspect, sh
	} else {
		c.baseW, c.baseH = sw, sw/aspect
	}

	if anchor == AnchorRandom {
		r := rand.New(rand.NewSource(int64(seed*99 + 1)))
		anchor = fixedAnchors[r.Intn(len(fixedAnchors))]
	}

	switch anchor {
	case AnchorTopLeft:
		c.ax, c.ay = 0, 0
	case AnchorTopRight:
		c.ax, c.ay = 1, 0
	case AnchorBottomLeft:
		c.ax, c.ay = 0, 1
	case AnchorBottomRight:
		c.ax, c.ay = 1, 1
	case AnchorFocus:
		c.ax = clamp01(float64(focus.X-src.Min.X) / sw)
		c.ay = clamp01(float64(focus.Y-src.Min.Y) / sh)
	case AnchorCenter, "":
		c.ax, c.ay = 0.5, 0.5
	default:
		return Camera{}, fmt.Errorf("unknown anchor %q", anchor)
	}
	return c, nil
}

// Crop returns the source rectangle shown at zoom. Zoom values below 1 are treated as 1.
// The anchor stays at the same relative position of the crop while zooming.
func (c Camera) Crop(zoom float64) image.Rectangle {
	if !(zoom > 1) {
		zoom = 1
	}
	cw, ch := c.baseW/zoom, c.baseH/zoom
	x := float64(c.src.Min.X) + c.ax*(float64(c.src.Dx())-cw)
	y := float64(c.src.Min.Y) + c.ay*(float64(c.src.Dy())-ch)

	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+cw)), int(math.Round(y+ch)),
	).Intersect(c.src)
	if r.Empty() {
		return image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Min.Y+1)
	}
	return r
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
