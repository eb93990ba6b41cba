package renderer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ivlev/promoreel/internal/analyzer"
	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/effects"
	"github.com/ivlev/promoreel/internal/source"
)

// qrSourceSize is the resolution the QR code is rasterized at before scaling.
const qrSourceSize = 256

// sceneAssets holds everything of a scene that does not change between frames.
// It is built once and only read afterwards.
type sceneAssets struct {
	background color.RGBA
	image      image.Image
	camera     effects.Camera
	title      *image.RGBA
	qr         image.Image
	elements   []element
}

func loadAssets(index int, s director.Scene, width, height int) (*sceneAssets, error) {
	bg, err := parseHexColor(s.Background)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.ID, err)
	}

	assets := &sceneAssets{background: bg}
	if s.Image != nil {
		if err := assets.loadImage(index, s.Image, width, height); err != nil {
			return nil, fmt.Errorf("scene %q: %w", s.ID, err)
		}
	}
	if s.Title != "" {
		assets.title = textImage(s.Title, color.White)
	}
	if assets.elements, err = loadElements(s.Elements); err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.ID, err)
	}
	if s.QR != "" {
		code, err := qrcode.New(s.QR, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("scene %q: qr code: %w", s.ID, err)
		}
		assets.qr = code.Image(qrSourceSize)
	}
	return assets, nil
}

// loadImage rasterizes the background and frames it for the output size.
func (a *sceneAssets) loadImage(index int, ref *director.Image, width, height int) error {
	anchor, err := effects.ParseAnchor(ref.Anchor)
	if err != nil {
		return err
	}
	img, err := source.Load(ref.Path, ref.Page, ref.DPI)
	if err != nil {
		return err
	}

	var focus image.Point
	if anchor == effects.AnchorFocus {
		detector, err := analyzer.NewDetector(ref.Detector)
		if err != nil {
			return err
		}
		if focus, err = analyzer.Focus(detector, img); err != nil {
			return fmt.Errorf("detect focus: %w", err)
		}
	}

	cam, err := effects.NewCamera(img.Bounds(), width, height, anchor, focus, index)
	if err != nil {
		return err
	}
	a.image, a.camera = img, cam
	return nil
}

// textImage rasterizes s in c on a transparent background with the 7x13 bitmap face.
func textImage(s string, c color.Color) *image.RGBA {
	face := basicfont.Face7x13
	width := font.MeasureString(face, s).Ceil()
	if width == 0 {
		width = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, face.Height))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(s)
	return img
}

// parseHexColor accepts #rgb and #rrggbb. An empty string is black.
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if s == "" {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("invalid color %q: missing #", s)
	}

	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("unexpected length")
	}
	if err != nil {
		return c, fmt.Errorf("invalid color %q: %v", s, err)
	}
	return c, nil
}
