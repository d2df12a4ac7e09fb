package renderer

import (
	"fmt"
	"image/color"

	"djirgha/internal/board"
)

const (
	PointRadius = 15.0
	BorderWidth = 3.0
	LaneWidth   = 1.0
)

var (
	Background = board.MustColor(board.EmptyColor)
	LaneColor  = color.RGBA{A: 0xff}
)

// Surface is anything the board can be drawn on. Implementations must be
// safe for concurrent use, blinks draw from their own goroutines.
type Surface interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA)
	FillCircle(x, y, r float64, c color.RGBA)
	StrokeCircle(x, y, r, width float64, c color.RGBA)
}

// DrawBoard paints the background once and strokes every lane once.
func DrawBoard(s Surface, p board.Params) {
	s.FillRect(0, 0, float64(p.Width), float64(p.Height), Background)
	for _, lane := range p.Lanes {
		s.StrokeLine(lane[0].X, lane[0].Y, lane[1].X, lane[1].Y, LaneWidth, LaneColor)
	}
}

// FillPoint draws the point's disc and records fill as its last drawn color.
func FillPoint(s Surface, v *ViewState, pt board.Point, fill string) error {
	c, err := board.ParseColor(fill)
	if err != nil {
		return err
	}
	s.FillCircle(pt.X, pt.Y, PointRadius, c)
	v.set(pt.Name, fill)
	return nil
}

// BorderPoint strokes the point's outline. The view state is left alone.
func BorderPoint(s Surface, pt board.Point, border string) error {
	c, err := board.ParseColor(border)
	if err != nil {
		return err
	}
	s.StrokeCircle(pt.X, pt.Y, PointRadius, BorderWidth, c)
	return nil
}

// DrawBasePoints paints every point with its layout color, used before the
// first server response arrives.
func DrawBasePoints(s Surface, v *ViewState, p board.Params) error {
	for _, pt := range p.Points {
		if err := FillPoint(s, v, pt, pt.Color); err != nil {
			return fmt.Errorf("point %q: %w", pt.Name, err)
		}
	}
	return nil
}
