package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"djirgha/internal/board"
	"djirgha/internal/highlight"
	"djirgha/internal/netwrk"
	"djirgha/internal/renderer"
)

const eventBuffer = 64

// Requester is the game server as the controller sees it.
type Requester interface {
	Current(ctx context.Context) (board.Response, error)
	Turn(ctx context.Context, point string) (board.Response, error)
	NewGame(ctx context.Context) error
}

type Event interface{ event() }

// Click is a pointer press in surface pixels.
type Click struct {
	X float64
	Y float64
}

// Refresh asks for the full current state.
type Refresh struct{}

// NewGame abandons the session's board and starts over.
type NewGame struct{}

// Result carries a finished request back to the loop.
type Result struct {
	Source   string
	Response board.Response
	Err      error
}

func (Click) event()   {}
func (Refresh) event() {}
func (NewGame) event() {}
func (Result) event()  {}

type Options struct {
	Tolerance    float64
	BlinkDelay   time.Duration
	PollInterval time.Duration
	LogLines     int
}

func (o Options) withDefaults() Options {
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.BlinkDelay == 0 {
		o.BlinkDelay = highlight.DefaultDelay
	}
	if o.LogLines == 0 {
		o.LogLines = DefaultLogLines
	}
	return o
}

// Controller owns the event loop. Every click, refresh and server reply goes
// through one channel and is handled on the Run goroutine.
type Controller struct {
	params  board.Params
	surface renderer.Surface
	view    *renderer.ViewState
	server  Requester
	opts    Options
	log     *Log
	events  chan Event
	pending sync.WaitGroup
}

func New(params board.Params, surface renderer.Surface, server Requester, opts Options) *Controller {
	opts = opts.withDefaults()
	return &Controller{
		params:  params,
		surface: surface,
		view:    renderer.NewViewState(params),
		server:  server,
		opts:    opts,
		log:     NewLog(opts.LogLines),
		events:  make(chan Event, eventBuffer),
	}
}

func (c *Controller) Params() board.Params { return c.params }
func (c *Controller) View() *renderer.ViewState { return c.view }
func (c *Controller) Log() *Log { return c.log }

// Click queues a pointer press. Safe from any goroutine.
func (c *Controller) Click(x, y float64) { c.post(Click{X: x, Y: y}) }

// Refresh queues a full state fetch. Safe from any goroutine.
func (c *Controller) Refresh() { c.post(Refresh{}) }

// NewGame asks the server for a fresh board.
func (c *Controller) NewGame() { c.post(NewGame{}) }

func (c *Controller) post(ev Event) {
	select {
	case c.events <- ev:
	default:
		log.Warn().Interface("event", ev).Msg("event queue full, dropping")
	}
}

// Run draws the board, loads the current state and handles events until ctx
// is done.
func (c *Controller) Run(ctx context.Context) error {
	renderer.DrawBoard(c.surface, c.params)
	if err := renderer.DrawBasePoints(c.surface, c.view, c.params); err != nil {
		return err
	}
	c.fetchCurrent(ctx)

	var tick <-chan time.Time
	if c.opts.PollInterval > 0 {
		t := time.NewTicker(c.opts.PollInterval)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			c.pending.Wait()
			return nil
		case <-tick:
			c.fetchCurrent(ctx)
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

func (c *Controller) handle(ctx context.Context, ev Event) {
	switch ev := ev.(type) {
	case Click:
		pt, ok := Hit(c.params, ev.X, ev.Y, c.opts.Tolerance)
		if !ok {
			log.Debug().Float64("x", ev.X).Float64("y", ev.Y).Msg("click missed every point")
			return
		}
		log.Debug().Str("point", pt.Name).Msg("turn")
		c.fetch(ctx, netwrk.TurnPath+pt.Name, func(ctx context.Context) (board.Response, error) {
			return c.server.Turn(ctx, pt.Name)
		})
	case Refresh:
		c.fetchCurrent(ctx)
	case NewGame:
		log.Info().Msg("new game")
		c.fetch(ctx, netwrk.HotSeatPath, func(ctx context.Context) (board.Response, error) {
			if err := c.server.NewGame(ctx); err != nil {
				return board.Response{}, err
			}
			return c.server.Current(ctx)
		})
	case Result:
		c.apply(ctx, ev)
	}
}

func (c *Controller) apply(ctx context.Context, res Result) {
	if res.Err != nil {
		c.fail(res.Err)
		return
	}
	err := DrawPoints(ctx, c.surface, c.view, c.params, res.Response.Points, c.opts.BlinkDelay)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		c.fail(&netwrk.ProtocolError{URL: res.Source, Err: err})
		return
	}
	c.log.Add(res.Response.Message)
}

func (c *Controller) fail(err error) {
	log.Error().Err(err).Msg("board update failed")
	c.log.Add("error: " + err.Error())
}

func (c *Controller) fetchCurrent(ctx context.Context) {
	c.fetch(ctx, netwrk.CurrentPath, c.server.Current)
}

func (c *Controller) fetch(ctx context.Context, source string, call func(context.Context) (board.Response, error)) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		resp, err := call(ctx)
		select {
		case c.events <- Result{Source: source, Response: resp, Err: err}:
		case <-ctx.Done():
		}
	}()
}
