package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ivlev/promoreel/internal/config"
	"github.com/ivlev/promoreel/internal/director"
	"github.com/ivlev/promoreel/internal/renderer"
	"github.com/ivlev/promoreel/internal/system"
	"github.com/ivlev/promoreel/internal/timeline"
)

// VideoProject ties a scenario to the settings of one run.
type VideoProject struct {
	Config   *config.Config
	Scenario *director.Scenario
	Timeline *timeline.Timeline
	Painter  *renderer.Painter
	Logger   *zap.Logger

	fps     float64
	workers int
}

// NewVideoProject builds the timeline and the painter. CLI overrides for fps and frame
// size take precedence over the scenario; they apply to a copy, never to the caller's value.
func NewVideoProject(cfg *config.Config, base *director.Scenario, logger *zap.Logger) (*VideoProject, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	scenario := *base
	if cfg.FPS > 0 {
		scenario.FPS = cfg.FPS
	}
	if cfg.Width > 0 {
		scenario.Width, scenario.Height = cfg.Width, cfg.Height
	}

	tl, err := scenario.Build()
	if err != nil {
		return nil, err
	}

	painter, err := renderer.NewPainter(&scenario, scenario.Width, scenario.Height, system.NewImagePool())
	if err != nil {
		return nil, fmt.Errorf("prepare painter: %w", err)
	}

	p := &VideoProject{
		Config:   cfg,
		Scenario: &scenario,
		Timeline: tl,
		Painter:  painter,
		Logger:   logger,
		fps:      scenario.FPS,
		workers:  system.Workers(cfg.Workers, painter.FrameBytes()),
	}

	logger.Debug("project ready",
		zap.Int("scenes", tl.Len()),
		zap.Int("total_frames", tl.TotalDurationFrames()),
		zap.Float64("fps", p.fps),
		zap.Int("workers", p.workers),
	)
	return p, nil
}

// FPS is the frame rate of the run.
func (p *VideoProject) FPS() float64 {
	return p.fps
}

// Workers is the size of the frame worker pool.
func (p *VideoProject) Workers() int {
	return p.workers
}

// Summary describes the timeline layout.
type Summary struct {
	TotalFrames int            `json:"total_frames"`
	FPS         float64        `json:"fps"`
	Seconds     float64        `json:"seconds"`
	Scenes      []SceneSummary `json:"scenes"`
	Overlaps    []OverlapInfo  `json:"overlaps"`
}

// SceneSummary is one scene's placement on the timeline and the parameters it animates.
type SceneSummary struct {
	ID         string   `json:"id"`
	Start      int      `json:"start"`
	Duration   int      `json:"duration"`
	Parameters []string `json:"parameters"`
}

// OverlapInfo is one transition window.
type OverlapInfo struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	Presentation string `json:"presentation"`
}

// Summarize reports where every scene and transition window sits.
func (p *VideoProject) Summarize() Summary {
	tl := p.Timeline
	s := Summary{
		TotalFrames: tl.TotalDurationFrames(),
		FPS:         p.fps,
		Seconds:     float64(tl.TotalDurationFrames()) / p.fps,
	}
	for i := 0; i < tl.Len(); i++ {
		sc := tl.Scene(i)
		s.Scenes = append(s.Scenes, SceneSummary{
			ID:         sc.ID,
			Start:      tl.SceneStart(i),
			Duration:   sc.DurationInFrames,
			Parameters: sc.Evaluate(0, p.fps).Names(),
		})
	}
	for _, w := range tl.Overlaps() {
		s.Overlaps = append(s.Overlaps, OverlapInfo{
			From:         tl.Scene(w.Index).ID,
			To:           tl.Scene(w.Index + 1).ID,
			Start:        w.Start,
			End:          w.End,
			Presentation: tl.Transition(w.Index).Presentation.Name(),
		})
	}
	return s
}
