package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/scene"
)

// element is a scenario element with its color resolved and static text rasterized.
type element struct {
	director.Element
	color color.RGBA
	text  *image.RGBA
}

func loadElements(elements []director.Element) ([]element, error) {
	out := make([]element, 0, len(elements))
	for _, e := range elements {
		c := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		if e.Color != "" {
			var err error
			if c, err = parseHexColor(e.Color); err != nil {
				return nil, fmt.Errorf("element %q: %w", e.ID, err)
			}
		}
		el := element{Element: e, color: c}
		if e.Kind == director.KindText {
			el.text = textImage(e.Text, c)
		}
		out = append(out, el)
	}
	return out, nil
}

func (p *Painter) paintElements(dst *image.RGBA, elements []element, params scene.ParameterSet) {
	w, h := float64(p.bounds.Dx()), float64(p.bounds.Dy())

	for _, e := range elements {
		opacity := params.Get(e.Param("opacity"), 1)
		if opacity <= 0 {
			continue
		}
		dx := params.Get(e.Param("x"), 0) * h
		cx := e.X*w + dx
		cy := e.Y*h + params.Get(e.Param("y"), 0)*h
		size := e.Size * h * params.Get(e.Param("scale"), 1)

		switch e.Kind {
		case director.KindText:
			zoom := size / float64(e.text.Bounds().Dy())
			p.drawScaled(dst, e.text, cx, cy, zoom, opacity, xdraw.ApproxBiLinear)

		case director.KindCounter:
			v := math.Round(params.Get(e.Param("value"), 0))
			label := textImage(strconv.FormatFloat(v, 'f', -1, 64)+e.Text, e.color)
			zoom := size / float64(label.Bounds().Dy())
			p.drawScaled(dst, label, cx, cy, zoom, opacity, xdraw.ApproxBiLinear)

		case director.KindBar:
			fill := math.Min(1, math.Max(0, params.Get(e.Param("value"), 1)))
			left := (e.X-e.Width/2)*w + dx
			thick := math.Max(1, size)
			bar := image.Rect(
				int(math.Round(left)), int(math.Round(cy-thick/2)),
				int(math.Round(left+e.Width*w*fill)), int(math.Round(cy+thick/2)),
			).Intersect(dst.Bounds())
			if !bar.Empty() {
				xdraw.DrawMask(dst, bar, image.NewUniform(e.color), image.Point{}, alphaMask(opacity), image.Point{}, xdraw.Over)
			}

		case director.KindOrb:
			drawOrb(dst, cx, cy, size/2, e.color, opacity)

		case director.KindRing:
			thick := math.Max(1, h/540)
			drawRing(dst, cx, cy, size/2, thick, e.color, opacity)
			// The marker shows the ring's rotation, measured clockwise from the top.
			angle := params.Get(e.Param("rotation"), 0) * math.Pi / 180
			mx, my := cx+size/2*math.Sin(angle), cy-size/2*math.Cos(angle)
			drawDisc(dst, mx, my, 3*thick, e.color, opacity)
		}
	}
}

// drawOrb paints a disc whose alpha falls off linearly from the center to the rim.
func drawOrb(dst *image.RGBA, cx, cy, r float64, c color.RGBA, opacity float64) {
	eachPixel(dst, cx, cy, r, func(d float64) float64 {
		return opacity * (1 - d/r)
	}, c)
}

// drawRing paints a circle outline with a one-pixel soft edge.
func drawRing(dst *image.RGBA, cx, cy, r, thick float64, c color.RGBA, opacity float64) {
	eachPixel(dst, cx, cy, r+thick, func(d float64) float64 {
		return opacity * clamp01(thick/2+0.5-math.Abs(d-r))
	}, c)
}

func drawDisc(dst *image.RGBA, cx, cy, r float64, c color.RGBA, opacity float64) {
	eachPixel(dst, cx, cy, r+1, func(d float64) float64 {
		return opacity * clamp01(r+0.5-d)
	}, c)
}

// eachPixel blends c over every pixel within radius of (cx, cy), with the alpha
// alphaAt returns for the pixel's distance from the center.
func eachPixel(dst *image.RGBA, cx, cy, radius float64, alphaAt func(d float64) float64, c color.RGBA) {
	if radius <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(dst.Bounds())

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= radius {
				continue
			}
			a := clamp01(alphaAt(d))
			if a == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			px[0] = blend(c.R, px[0], a)
			px[1] = blend(c.G, px[1], a)
			px[2] = blend(c.B, px[2], a)
			px[3] = blend(0xff, px[3], a)
		}
	}
}

func blend(src, dst uint8, a float64) uint8 {
	return uint8(math.Round(float64(src)*a + float64(dst)*(1-a)))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
