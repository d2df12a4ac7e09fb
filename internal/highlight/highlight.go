package highlight

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"djirgha/internal/board"
	"djirgha/internal/renderer"
)

const DefaultDelay = 200 * time.Millisecond

// Sequence is the fill cycle of one blink.
var Sequence = []string{"#ff0000", "#00ff00", "#0000ff"}

// Blink runs the blink animation for pt in its own goroutine. The returned
// channel is closed when the animation ends or ctx is done.
func Blink(ctx context.Context, s renderer.Surface, v *renderer.ViewState, pt board.Point, delay time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := blink(ctx, s, v, pt, delay); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("point", pt.Name).Msg("blink failed")
		}
	}()
	return done
}

// All blinks every point concurrently and waits for all of them.
func All(ctx context.Context, s renderer.Surface, v *renderer.ViewState, pts []board.Point, delay time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, pt := range pts {
		pt := pt
		g.Go(func() error {
			<-Blink(ctx, s, v, pt, delay)
			return ctx.Err()
		})
	}
	return g.Wait()
}

func blink(ctx context.Context, s renderer.Surface, v *renderer.ViewState, pt board.Point, delay time.Duration) error {
	log.Debug().Str("point", pt.Name).Dur("delay", delay).Msg("blink")

	timer := time.NewTimer(delay)
	defer timer.Stop()
	for i, c := range Sequence {
		if err := renderer.FillPoint(s, v, pt, c); err != nil {
			return err
		}
		if i > 0 {
			timer.Reset(delay)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
