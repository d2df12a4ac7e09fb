// Package window shows the board in a desktop window. The controller draws
// into a display list from any goroutine and every frame replays the new ops
// onto a persistent offscreen image.
package window

import (
	"context"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"djirgha/internal/client"
	"djirgha/internal/renderer"
)

const (
	logRows   = 4
	rowHeight = 16
	logHeight = logRows*rowHeight + 8
)

type Controller interface {
	Click(x, y float64)
	Refresh()
	NewGame()
	Log() *client.Log
}

type Window struct {
	ctx    context.Context
	ctl    Controller
	width  int
	height int
	rec    *renderer.Recorder
	canvas *ebiten.Image
}

func New(width, height int) *Window {
	return &Window{width: width, height: height, rec: &renderer.Recorder{}}
}

// Surface is what the controller draws on.
func (w *Window) Surface() renderer.Surface { return w.rec }

// Run blocks on the ebiten loop, so it has to be called from main.
func (w *Window) Run(ctx context.Context, ctl Controller) error {
	w.ctx = ctx
	w.ctl = ctl
	ebiten.SetWindowSize(w.width, w.height+logHeight)
	ebiten.SetWindowTitle("djirgha")
	ebiten.SetScreenClearedEveryFrame(true)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if x >= 0 && y >= 0 && x < w.width && y < w.height {
			w.ctl.Click(float64(x), float64(y))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.ctl.Refresh()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		w.ctl.NewGame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(w.width, w.height)
	}
	renderer.Replay(painter{dst: w.canvas}, w.rec.Drain())
	screen.DrawImage(w.canvas, nil)

	for i, line := range w.ctl.Log().Lines() {
		if i == logRows {
			break
		}
		line = strings.ReplaceAll(strings.TrimSpace(line), "\n", " / ")
		ebitenutil.DebugPrintAt(screen, line, 4, w.height+4+i*rowHeight)
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height + logHeight
}

// painter draws ops straight onto an ebiten image.
type painter struct {
	dst *ebiten.Image
}

func (p painter) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(p.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (p painter) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	vector.StrokeLine(p.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (p painter) FillCircle(x, y, r float64, c color.RGBA) {
	vector.DrawFilledCircle(p.dst, float32(x), float32(y), float32(r), c, true)
}

func (p painter) StrokeCircle(x, y, r, width float64, c color.RGBA) {
	vector.StrokeCircle(p.dst, float32(x), float32(y), float32(r), float32(width), c, true)
}
