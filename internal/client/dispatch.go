package client

import (
	"math"

	"djirgha/internal/board"
)

const DefaultTolerance = 40.0

// Hit returns the first point, in layout order, whose tolerance box holds
// (x, y). Box edges count as inside.
func Hit(p board.Params, x, y, tolerance float64) (board.Point, bool) {
	for _, pt := range p.Points {
		if math.Abs(x-pt.X) <= tolerance && math.Abs(y-pt.Y) <= tolerance {
			return pt, true
		}
	}
	return board.Point{}, false
}
