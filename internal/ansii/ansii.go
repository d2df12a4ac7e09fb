package ansii

import (
	"fmt"
	"image/color"
	"os"

	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

type ANSI string

const (
	reset       ANSI = "\033[0m"
	plain       ANSI = ""
	bold        ANSI = "\033[1m"
	clearScreen ANSI = "\033[2J"
	clearLine   ANSI = "\033[2K"
	hideCursor  ANSI = "\033[?25l"
	showCursor  ANSI = "\033[?25h"
	// press/release reporting with SGR extended coordinates
	mouseOn  ANSI = "\033[?1000h\033[?1006h"
	mouseOff ANSI = "\033[?1006l\033[?1000l"
)

type style struct {
	Reset ANSI
	Plain ANSI
	Bold  ANSI
}

type screen struct {
	ClearScreen ANSI
	ClearLine   ANSI
	HideCursor  ANSI
	ShowCursor  ANSI
	MouseOn     ANSI
	MouseOff    ANSI
}

var (
	Styles = style{Reset: reset, Plain: plain, Bold: bold}
	Screen = screen{
		ClearScreen: clearScreen,
		ClearLine:   clearLine,
		HideCursor:  hideCursor,
		ShowCursor:  showCursor,
		MouseOn:     mouseOn,
		MouseOff:    mouseOff,
	}
)

// PlaceCursor moves to column x, row y, both 1-based.
func (s screen) PlaceCursor(x, y int) ANSI {
	return ANSI(fmt.Sprintf("\033[%d;%dH", y, x))
}

// Background is a 24-bit background color escape.
func Background(c color.RGBA) ANSI {
	return ANSI(fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B))
}

func GetTermSize() (width int, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func MakeTermRaw() (*term.State, error) {
	return term.MakeRaw(int(os.Stdin.Fd()))
}

func RestoreTerm(prev *term.State) error {
	return term.Restore(int(os.Stdin.Fd()), prev)
}

func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
