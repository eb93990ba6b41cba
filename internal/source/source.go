// Package source rasterizes scene background images from PDF documents and image files.
package source

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// DefaultDPI is the PDF rasterization density when a scene does not set one.
const DefaultDPI = 150

// ErrPageRange is returned for a page index the source does not have.
var ErrPageRange = errors.New("page out of range")

// Source is an ordered set of pages that can be rasterized.
type Source interface {
	PageCount() int
	PageSize(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// Open picks the source type from the path: PDF documents by extension,
// everything else as an image file or a folder of images.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path)
	}
	return NewImageSource(path)
}

// Load rasterizes one page of the file at path and closes it again.
func Load(path string, page, dpi int) (image.Image, error) {
	src, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer src.Close()

	if page < 0 || page >= src.PageCount() {
		return nil, fmt.Errorf("%s: page %d of %d: %w", path, page, src.PageCount(), ErrPageRange)
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	img, err := src.RenderPage(page, dpi)
	if err != nil {
		return nil, fmt.Errorf("%s: page %d: %w", path, page, err)
	}
	return img, nil
}
