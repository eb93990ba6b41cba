// Package renderer paints resolved frames into RGBA images for previews.
//
// The painter is the consumer side of timeline.Resolve: it reads scene parameters
// and transition layers and never feeds anything back into the timeline.
package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/system"
	"github.com/ivlev/promoreel/internal/timeline"
	"github.com/ivlev/promoreel/internal/transition"
)

// Parameter names the painter understands. Scenes may define any subset.
const (
	ParamOpacity      = "opacity"
	ParamTitleScale   = "title.scale"
	ParamTitleOpacity = "title.opacity"
	ParamTitleY       = "title.y"
	ParamQRScale      = "qr.scale"
	// ParamBackgroundZoom zooms the background image toward its anchor; 1 shows the whole cover fit.
	ParamBackgroundZoom = "bg.zoom"
)

// Painter composites resolved frames. It is safe for concurrent use.
type Painter struct {
	bounds image.Rectangle
	scenes map[string]*sceneAssets
	pool   *system.ImagePool
}

// NewPainter prepares the static assets of every scene in the scenario.
func NewPainter(s *director.Scenario, width, height int, pool *system.ImagePool) (*Painter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}
	if pool == nil {
		pool = system.NewImagePool()
	}

	p := &Painter{
		bounds: image.Rect(0, 0, width, height),
		scenes: make(map[string]*sceneAssets, len(s.Scenes)),
		pool:   pool,
	}
	for i, sc := range s.Scenes {
		assets, err := loadAssets(i, sc, width, height)
		if err != nil {
			return nil, err
		}
		p.scenes[sc.ID] = assets
	}
	return p, nil
}

// Bounds returns the frame rectangle.
func (p *Painter) Bounds() image.Rectangle {
	return p.bounds
}

// FrameBytes is the size of one frame buffer.
func (p *Painter) FrameBytes() uint64 {
	return uint64(p.bounds.Dx()) * uint64(p.bounds.Dy()) * 4
}

// Paint draws rf into a pooled buffer. Hand it back with Release.
func (p *Painter) Paint(rf timeline.ResolvedFrame) *image.RGBA {
	frame := p.pool.Get(p.bounds)
	xdraw.Draw(frame, p.bounds, image.Black, image.Point{}, xdraw.Src)

	layer := p.pool.Get(p.bounds)
	defer p.pool.Put(layer)

	for _, active := range rf.Active {
		system.Clear(layer)
		p.paintScene(layer, active)
		p.composite(frame, layer, active.Layer, active.Parameters.Get(ParamOpacity, 1))
	}
	return frame
}

// Release returns a painted frame to the pool.
func (p *Painter) Release(frame *image.RGBA) {
	p.pool.Put(frame)
}

func (p *Painter) paintScene(dst *image.RGBA, a timeline.ActiveScene) {
	assets, ok := p.scenes[a.SceneID]
	if !ok {
		return
	}
	w, h := float64(p.bounds.Dx()), float64(p.bounds.Dy())
	params := a.Parameters

	xdraw.Draw(dst, p.bounds, image.NewUniform(assets.background), image.Point{}, xdraw.Src)
	if assets.image != nil {
		crop := assets.camera.Crop(params.Get(ParamBackgroundZoom, 1))
		xdraw.ApproxBiLinear.Scale(dst, p.bounds, assets.image, crop, xdraw.Over, nil)
	}

	p.paintElements(dst, assets.elements, params)

	// Title text is about a twelfth of the frame height at scale 1.
	textZoom := h / 12 / float64(assets.lineHeight())
	centerY := h/2 + params.Get(ParamTitleY, 0)*h

	if assets.title != nil {
		scale := params.Get(ParamTitleScale, 1) * textZoom
		p.drawScaled(dst, assets.title, w/2, centerY, scale, params.Get(ParamTitleOpacity, 1), xdraw.ApproxBiLinear)
	}

	if assets.qr != nil {
		side := math.Min(w, h) * 0.4 * params.Get(ParamQRScale, 1)
		zoom := side / float64(assets.qr.Bounds().Dx())
		p.drawScaled(dst, assets.qr, w/2, h/2+h*0.1, zoom, 1, xdraw.NearestNeighbor)
	}
}

// drawScaled draws src scaled by zoom, centered on (cx, cy), at the given opacity.
func (p *Painter) drawScaled(dst *image.RGBA, src image.Image, cx, cy, zoom, opacity float64, scaler xdraw.Scaler) {
	if zoom <= 0 || opacity <= 0 {
		return
	}
	sw := int(math.Round(float64(src.Bounds().Dx()) * zoom))
	sh := int(math.Round(float64(src.Bounds().Dy()) * zoom))
	if sw <= 0 || sh <= 0 {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, sw, sh))
	scaler.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	origin := image.Pt(int(math.Round(cx))-sw/2, int(math.Round(cy))-sh/2)
	target := scaled.Bounds().Add(origin).Intersect(dst.Bounds())
	if target.Empty() {
		return
	}
	xdraw.DrawMask(dst, target, scaled, target.Min.Sub(origin), alphaMask(opacity), image.Point{}, xdraw.Over)
}

// composite lays a painted scene over the frame according to its transition layer.
func (p *Painter) composite(dst, src *image.RGBA, layer transition.Layer, sceneOpacity float64) {
	opacity := layer.Opacity * sceneOpacity
	if opacity <= 0 || layer.Reveal <= 0 {
		return
	}

	w, h := p.bounds.Dx(), p.bounds.Dy()
	offset := image.Pt(int(math.Round(layer.OffsetX*float64(w))), int(math.Round(layer.OffsetY*float64(h))))

	target := p.bounds.Add(offset).Intersect(p.bounds).Intersect(revealRect(p.bounds, layer))
	if target.Empty() {
		return
	}
	xdraw.DrawMask(dst, target, src, target.Min.Sub(offset), alphaMask(opacity), image.Point{}, xdraw.Over)
}

// revealRect is the part of the frame a wipe has uncovered.
func revealRect(b image.Rectangle, layer transition.Layer) image.Rectangle {
	if layer.Reveal >= 1 {
		return b
	}
	w := int(math.Round(float64(b.Dx()) * layer.Reveal))
	h := int(math.Round(float64(b.Dy()) * layer.Reveal))

	switch layer.RevealFrom {
	case transition.FromLeft:
		return image.Rect(b.Min.X, b.Min.Y, b.Min.X+w, b.Max.Y)
	case transition.FromTop:
		return image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+h)
	case transition.FromBottom:
		return image.Rect(b.Min.X, b.Max.Y-h, b.Max.X, b.Max.Y)
	default:
		return image.Rect(b.Max.X-w, b.Min.Y, b.Max.X, b.Max.Y)
	}
}

func alphaMask(opacity float64) image.Image {
	a := math.Round(math.Min(1, opacity) * 0xff)
	return image.NewUniform(color.Alpha{A: uint8(a)})
}

func (a *sceneAssets) lineHeight() int {
	if a.title != nil {
		return a.title.Bounds().Dy()
	}
	return 13
}

// EncodePNG writes a frame with fast compression; previews favour speed over size.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
