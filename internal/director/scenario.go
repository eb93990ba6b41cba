package director

import (
	"github.com/ivlev/promoreel/internal/motion"
	"github.com/ivlev/promoreel/internal/scene"
	"github.com/ivlev/promoreel/internal/transition"
)

// Scenario is the on-disk description of a promo video timeline
type Scenario struct {
	Version     string       `yaml:"version"`
	FPS         float64      `yaml:"fps"`
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	Scenes      []Scene      `yaml:"scenes"`
	Transitions []Transition `yaml:"transitions,omitempty"`
}

// Scene is one scene with its animated tracks and the content the painter needs
type Scene struct {
	ID         string        `yaml:"id"`
	Duration   int           `yaml:"duration"`             // Frames
	Background string        `yaml:"background,omitempty"` // Hex color, e.g. "#0f172a"
	Title      string        `yaml:"title,omitempty"`
	QR         string        `yaml:"qr,omitempty"` // Payload of an optional QR card
	Image      *Image        `yaml:"image,omitempty"`
	Elements   []Element     `yaml:"elements,omitempty"`
	Tracks     []scene.Track `yaml:"tracks,omitempty"`
}

// Transition joins the scene before it to the scene after it
type Transition struct {
	Presentation string               `yaml:"presentation"`
	Direction    transition.Direction `yaml:"direction,omitempty"`
	Timing       string               `yaml:"timing,omitempty"` // linear, spring or an easing name
	Spring       motion.SpringConfig  `yaml:"spring,omitempty"`
	Duration     int                  `yaml:"duration"` // Frames
}

// Image is a picture or a PDF page painted behind a scene's content, cover-fitted
// and zoomed by the scene's bg.zoom track
type Image struct {
	Path     string `yaml:"path"`               // PNG, JPEG, a folder of them or a PDF
	Page     int    `yaml:"page,omitempty"`     // Zero-based page or folder entry
	DPI      int    `yaml:"dpi,omitempty"`      // PDF only
	Anchor   string `yaml:"anchor,omitempty"`   // center, top-left, ..., focus, random
	Detector string `yaml:"detector,omitempty"` // Focus detector: contrast or none
}
