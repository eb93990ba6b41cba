package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/ivlev/promoreel/internal/timeline"
)

// weightTolerance absorbs rounding in (1-p) + p.
const weightTolerance = 1e-9

// Issue is one frame that broke a timeline guarantee.
type Issue struct {
	Frame  int
	Reason string
}

// VerifyReport is the outcome of Verify.
type VerifyReport struct {
	Frames        int
	OverlapFrames int
	Issues        []Issue
}

// OK reports whether every frame passed.
func (r VerifyReport) OK() bool {
	return len(r.Issues) == 0
}

// Verify resolves every frame twice on a worker pool and checks that:
// both passes are bit-identical, local frames stay inside their scenes, blend
// weights sum to one, exactly two scenes are active inside transition windows,
// and the frames just outside the timeline are rejected.
func (p *VideoProject) Verify(ctx context.Context) (VerifyReport, error) {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return VerifyReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	total := p.Timeline.TotalDurationFrames()
	windows := p.Timeline.Overlaps()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		report = VerifyReport{Frames: total}
	)

	for frame := 0; frame < total; frame++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return VerifyReport{}, err
		}

		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			overlap, issues := p.checkFrame(frame, windows)

			mu.Lock()
			defer mu.Unlock()
			if overlap {
				report.OverlapFrames++
			}
			report.Issues = append(report.Issues, issues...)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return VerifyReport{}, fmt.Errorf("submit frame %d: %w", frame, err)
		}
	}
	wg.Wait()

	for _, frame := range []int{-1, total} {
		if _, err := p.Timeline.Resolve(frame, p.fps); !errors.Is(err, timeline.ErrOutOfRange) {
			report.Issues = append(report.Issues, Issue{Frame: frame, Reason: fmt.Sprintf("expected out-of-range error, got %v", err)})
		}
	}

	sort.Slice(report.Issues, func(i, j int) bool {
		return report.Issues[i].Frame < report.Issues[j].Frame
	})

	p.Logger.Info("verified timeline",
		zap.Int("frames", report.Frames),
		zap.Int("overlap_frames", report.OverlapFrames),
		zap.Int("issues", len(report.Issues)),
	)
	return report, nil
}

func (p *VideoProject) checkFrame(frame int, windows []timeline.Window) (bool, []Issue) {
	var issues []Issue
	fail := func(format string, args ...any) {
		issues = append(issues, Issue{Frame: frame, Reason: fmt.Sprintf(format, args...)})
	}

	first, err := p.Timeline.Resolve(frame, p.fps)
	if err != nil {
		fail("resolve: %v", err)
		return false, issues
	}
	second, err := p.Timeline.Resolve(frame, p.fps)
	if err != nil {
		fail("second resolve: %v", err)
		return false, issues
	}
	if !identical(first, second) {
		fail("repeated resolve differs")
	}

	inWindow := false
	for _, w := range windows {
		if frame >= w.Start && frame < w.End {
			inWindow = true
			break
		}
	}
	want := 1
	if inWindow {
		want = 2
	}
	if len(first.Active) != want {
		fail("expected %d active scenes, got %d", want, len(first.Active))
	}

	sum := 0.0
	for _, a := range first.Active {
		d := p.Timeline.Scene(a.Index).DurationInFrames
		if a.LocalFrame < 0 || a.LocalFrame >= d {
			fail("scene %s local frame %d outside [0,%d)", a.SceneID, a.LocalFrame, d)
		}
		sum += a.BlendWeight
	}
	if math.Abs(sum-1) > weightTolerance {
		fail("blend weights sum to %v", sum)
	}

	return inWindow, issues
}

func identical(a, b timeline.ResolvedFrame) bool {
	if len(a.Active) != len(b.Active) {
		return false
	}
	for i := range a.Active {
		x, y := a.Active[i], b.Active[i]
		if x.SceneID != y.SceneID || x.LocalFrame != y.LocalFrame ||
			math.Float64bits(x.BlendWeight) != math.Float64bits(y.BlendWeight) ||
			x.Layer != y.Layer || len(x.Parameters) != len(y.Parameters) {
			return false
		}
		for name, v := range x.Parameters {
			w, ok := y.Parameters[name]
			if !ok || math.Float64bits(v) != math.Float64bits(w) {
				return false
			}
		}
	}
	return true
}
