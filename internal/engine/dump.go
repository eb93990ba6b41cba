package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

type frameEncoder interface {
	Encode(v any) error
}

// Dump writes the resolved state of every selected frame to w, one record per frame:
// JSON lines for "json" (the default) or a stream of msgpack maps for "msgpack".
func (p *VideoProject) Dump(ctx context.Context, w io.Writer) error {
	from, to, step, err := p.Config.FrameRange(p.Timeline.TotalDurationFrames())
	if err != nil {
		return err
	}

	var enc frameEncoder
	switch p.Config.Format {
	case "", "json":
		enc = json.NewEncoder(w)
	case "msgpack":
		m := msgpack.NewEncoder(w)
		m.SetSortMapKeys(true)
		enc = m
	default:
		return fmt.Errorf("unknown format %q", p.Config.Format)
	}

	for frame := from; frame < to; frame += step {
		if err := ctx.Err(); err != nil {
			return err
		}
		rf, err := p.Timeline.Resolve(frame, p.fps)
		if err != nil {
			return err
		}
		if err := enc.Encode(rf); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
	}
	return nil
}
