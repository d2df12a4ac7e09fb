package client

import (
	"context"
	"time"

	"djirgha/internal/board"
	"djirgha/internal/highlight"
	"djirgha/internal/renderer"
)

// DrawPoints applies one server state: every point flagged blink is
// animated, all animations are awaited, then every point gets its final fill
// and border. Nothing is drawn when states does not cover the layout.
func DrawPoints(ctx context.Context, s renderer.Surface, v *renderer.ViewState, p board.Params, states map[string]board.PointState, delay time.Duration) error {
	if err := p.CheckStates(states); err != nil {
		return err
	}

	var blinking []board.Point
	for _, pt := range p.Points {
		if states[pt.Name].Blink {
			blinking = append(blinking, pt)
		}
	}
	if len(blinking) > 0 {
		if err := highlight.All(ctx, s, v, blinking, delay); err != nil {
			return err
		}
	}

	for _, pt := range p.Points {
		st := states[pt.Name]
		if err := renderer.FillPoint(s, v, pt, st.Color); err != nil {
			return err
		}
		if err := renderer.BorderPoint(s, pt, st.Border); err != nil {
			return err
		}
	}
	return nil
}
