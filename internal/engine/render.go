package engine

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/promoreel/internal/renderer"
)

// RenderReport summarizes a preview render.
type RenderReport struct {
	Frames   int
	Duration time.Duration
	OutDir   string
}

// FramesPerSecond is the effective render throughput.
func (r RenderReport) FramesPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Duration.Seconds()
}

// Render paints every selected frame to OutputDir as frame_00000.png, ...
// Frames are independent, so they are rendered by a bounded pool in any order.
func (p *VideoProject) Render(ctx context.Context) (RenderReport, error) {
	from, to, step, err := p.Config.FrameRange(p.Timeline.TotalDurationFrames())
	if err != nil {
		return RenderReport{}, err
	}

	outDir := p.Config.OutputDir
	if outDir == "" {
		outDir = "output"
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return RenderReport{}, fmt.Errorf("create output directory: %w", err)
	}

	p.Logger.Info("rendering frames",
		zap.Int("from", from),
		zap.Int("to", to),
		zap.Int("step", step),
		zap.Int("workers", p.workers),
		zap.String("out_dir", outDir),
	)

	start := time.Now()
	var done atomic.Int64
	total := (to - from + step - 1) / step

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for frame := from; frame < to; frame += step {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := p.renderFrame(frame, outDir); err != nil {
				return err
			}
			if n := done.Add(1); n%100 == 0 {
				p.Logger.Debug("progress", zap.Int64("done", n), zap.Int("total", total))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return RenderReport{}, err
	}

	report := RenderReport{Frames: int(done.Load()), Duration: time.Since(start), OutDir: outDir}
	if p.Config.ShowStats {
		p.Logger.Info("performance report",
			zap.String("build", p.Config.BuildVersion),
			zap.Int("frames", report.Frames),
			zap.Duration("total", report.Duration),
			zap.Float64("effective_fps", report.FramesPerSecond()),
		)
	}
	return report, nil
}

func (p *VideoProject) renderFrame(frame int, outDir string) error {
	rf, err := p.Timeline.Resolve(frame, p.fps)
	if err != nil {
		return err
	}

	img := p.Painter.Paint(rf)
	defer p.Painter.Release(img)

	path := filepath.Join(outDir, fmt.Sprintf("frame_%05d.png", frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("frame %d: %w", frame, err)
	}
	w := bufio.NewWriter(f)
	if err := renderer.EncodePNG(w, img); err != nil {
		f.Close()
		return fmt.Errorf("frame %d: encode: %w", frame, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("frame %d: %w", frame, err)
	}
	return f.Close()
}
