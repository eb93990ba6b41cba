package config

import (
	"fmt"
)

// Config holds the settings of one CLI invocation. Timeline content comes from the
// scenario file; these values only select what to do with it.
type Config struct {
	ScenarioPath string
	OutputDir    string
	// FPS and the Width x Height pair override the scenario when positive.
	FPS    float64
	Width  int
	Height int
	// Workers bounds parallel frame evaluation. Zero sizes the pool from the host.
	Workers int
	// From and To select the half-open frame range [From, To). To <= 0 means the end.
	From int
	To   int
	Step int
	// Format is the frame-state encoding of the resolve command: json or msgpack.
	Format       string
	LogLevel     string
	LogFormat    string
	ShowStats    bool
	BuildVersion string
}

// Validate checks values that do not depend on the scenario.
func (c *Config) Validate() error {
	if c.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %v", c.FPS)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("frame size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if (c.Width > 0) != (c.Height > 0) {
		return fmt.Errorf("width and height must be set together, got %dx%d", c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.From < 0 {
		return fmt.Errorf("from must not be negative, got %d", c.From)
	}
	if c.To > 0 && c.To <= c.From {
		return fmt.Errorf("empty frame range [%d, %d)", c.From, c.To)
	}
	if c.Step < 0 {
		return fmt.Errorf("step must not be negative, got %d", c.Step)
	}
	switch c.Format {
	case "", "json", "msgpack":
	default:
		return fmt.Errorf("unknown format %q (json, msgpack)", c.Format)
	}
	return nil
}

// FrameRange clips the configured range to a timeline of total frames.
func (c *Config) FrameRange(total int) (from, to, step int, err error) {
	from, to, step = c.From, c.To, c.Step
	if to <= 0 || to > total {
		to = total
	}
	if step <= 0 {
		step = 1
	}
	if from >= to {
		return 0, 0, 0, fmt.Errorf("frame range [%d, %d) is empty for a %d-frame timeline", c.From, to, total)
	}
	return from, to, step, nil
}
