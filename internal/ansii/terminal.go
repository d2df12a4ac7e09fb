package ansii

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"djirgha/internal/client"
)

const frameInterval = 33 * time.Millisecond

// Controller is the part of client.Controller the terminal drives.
type Controller interface {
	Click(x, y float64)
	Refresh()
	NewGame()
	Log() *client.Log
}

type Terminal struct {
	canvas  *Canvas
	logRows int
	out     io.Writer
	in      io.Reader
	lastLog []string
}

// NewTerminal sizes a canvas for a width x height board in the current
// terminal, leaving logRows lines under it for messages.
func NewTerminal(width, height, logRows int) (*Terminal, error) {
	termCols, termRows, err := GetTermSize()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}
	cols, rows := FitGrid(float64(width), float64(height), termCols, termRows-logRows-1)
	return &Terminal{
		canvas:  NewCanvas(float64(width), float64(height), cols, rows),
		logRows: logRows,
		out:     os.Stdout,
		in:      os.Stdin,
	}, nil
}

func (t *Terminal) Canvas() *Canvas { return t.canvas }

// Run owns the terminal until ctx is done or the user quits.
func (t *Terminal) Run(ctx context.Context, ctl Controller) error {
	prev, err := MakeTermRaw()
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer RestoreTerm(prev)

	t.write(string(Screen.HideCursor + Screen.MouseOn + Screen.ClearScreen))
	defer t.write(string(Styles.Reset + Screen.MouseOff + Screen.ShowCursor + Screen.ClearScreen + Screen.PlaceCursor(1, 1)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inputs := make(chan []byte)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := t.in.Read(buf)
			if err != nil {
				log.Debug().Err(err).Msg("stdin closed")
				cancel()
				return
			}
			chunk := slices.Clone(buf[:n])
			select {
			case inputs <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case chunk := <-inputs:
			if quit := t.handleInput(chunk, ctl); quit {
				return nil
			}
		case <-ticker.C:
			t.draw(ctl.Log().Lines())
		}
	}
}

func (t *Terminal) handleInput(chunk []byte, ctl Controller) (quit bool) {
	cols, rows := t.canvas.Size()
	for _, in := range ProcessInput(chunk) {
		switch in.Action {
		case Quit, Interrupt:
			return true
		case Refresh:
			ctl.Refresh()
		case NewGame:
			ctl.NewGame()
		case Click:
			if in.Col < 1 || in.Row < 1 || in.Col > cols || in.Row > rows {
				continue
			}
			x, y := t.canvas.CellCenter(in.Col-1, in.Row-1)
			ctl.Click(x, y)
		}
	}
	return false
}

func (t *Terminal) draw(lines []string) {
	var builder strings.Builder
	if frame, ok := t.canvas.Frame(1); ok {
		builder.WriteString(frame)
	}

	if !slices.Equal(lines, t.lastLog) {
		t.lastLog = lines
		cols, rows := t.canvas.Size()
		for i := 0; i < t.logRows; i++ {
			builder.WriteString(string(Screen.PlaceCursor(1, rows+2+i) + Screen.ClearLine))
			if i < len(lines) {
				builder.WriteString(fitLine(lines[i], cols))
			}
		}
	}

	if builder.Len() > 0 {
		t.write(builder.String())
	}
}

func (t *Terminal) write(s string) {
	_, _ = io.WriteString(t.out, s)
}

// fitLine flattens a message to one row of at most cols runes.
func fitLine(s string, cols int) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\n", " / ")
	r := []rune(s)
	if len(r) > cols {
		r = r[:max(cols, 1)]
	}
	return string(r)
}
