package source

import (
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// PDFSource renders PDF pages with MuPDF.
type PDFSource struct {
	mu  sync.Mutex
	doc *fitz.Document
}

func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc}, nil
}

func (s *PDFSource) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.NumPage()
}

func (s *PDFSource) PageSize(index int) (float64, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.doc.NumPage() {
		return 0, 0, ErrPageRange
	}
	rect, err := s.doc.Bound(index)
	if err != nil {
		return 0, 0, err
	}
	return float64(rect.Dx()), float64(rect.Dy()), nil
}

// RenderPage rasterizes a page. A MuPDF document is not safe for concurrent use,
// so calls are serialized.
func (s *PDFSource) RenderPage(index int, dpi int) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.doc.NumPage() {
		return nil, ErrPageRange
	}
	return s.doc.ImageDPI(index, float64(dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
