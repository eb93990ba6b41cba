package analyzer

import (
	"image"
	"image/color"
	"math"
)

// ContrastDetector finds blocks of dense edges: Sobel gradients, thresholded,
// dilated so nearby strokes merge, then grouped into connected components.
type ContrastDetector struct {
	MinBlockArea  int     // Pixels of the analyzed image
	EdgeThreshold float64 // Gradient magnitude
	DilateRadius  int
	DilatePasses  int
}

func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		MinBlockArea:  200,
		EdgeThreshold: 30,
		DilateRadius:  2,
		DilatePasses:  2,
	}
}

func (d *ContrastDetector) Detect(img image.Image) ([]Block, error) {
	gray := toGray(img)
	mask := d.dilate(d.edges(gray))

	var blocks []Block
	for _, r := range components(mask) {
		if area := r.Dx() * r.Dy(); area >= d.MinBlockArea {
			blocks = append(blocks, Block{Rect: r.Add(gray.Rect.Min), Area: area})
		}
	}
	return blocks, nil
}

// edgeMask is a row-major bitmap the size of the analyzed image.
type edgeMask struct {
	w, h int
	set  []bool
}

func (m *edgeMask) at(x, y int) bool {
	return m.set[y*m.w+x]
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func (d *ContrastDetector) edges(gray *image.Gray) *edgeMask {
	b := gray.Rect
	m := &edgeMask{w: b.Dx(), h: b.Dy(), set: make([]bool, b.Dx()*b.Dy())}
	pix := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x])
	}

	for y := 1; y < m.h-1; y++ {
		for x := 1; x < m.w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := pix(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			m.set[y*m.w+x] = math.Hypot(gx, gy) > d.EdgeThreshold
		}
	}
	return m
}

func (d *ContrastDetector) dilate(m *edgeMask) *edgeMask {
	r := d.DilateRadius
	for pass := 0; pass < d.DilatePasses && r > 0; pass++ {
		next := &edgeMask{w: m.w, h: m.h, set: make([]bool, len(m.set))}
		for y := 0; y < m.h; y++ {
			for x := 0; x < m.w; x++ {
				if !m.at(x, y) {
					continue
				}
				for ny := max(0, y-r); ny <= min(m.h-1, y+r); ny++ {
					for nx := max(0, x-r); nx <= min(m.w-1, x+r); nx++ {
						next.set[ny*m.w+nx] = true
					}
				}
			}
		}
		m = next
	}
	return m
}

// components returns the bounding box of every 4-connected region of set pixels.
func components(m *edgeMask) []image.Rectangle {
	visited := make([]bool, len(m.set))
	var rects []image.Rectangle
	var stack []image.Point

	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if !m.at(x, y) || visited[y*m.w+x] {
				continue
			}
			r := image.Rect(x, y, x+1, y+1)
			stack = append(stack[:0], image.Pt(x, y))
			visited[y*m.w+x] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				r = r.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

				for _, n := range [4]image.Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
					if n.X < 0 || n.X >= m.w || n.Y < 0 || n.Y >= m.h {
						continue
					}
					i := n.Y*m.w + n.X
					if m.set[i] && !visited[i] {
						visited[i] = true
						stack = append(stack, n)
					}
				}
			}
			rects = append(rects, r)
		}
	}
	return rects
}
