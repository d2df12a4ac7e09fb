package ansii

import (
	"image/color"
	"math"
	"strings"
	"sync"
)

// Canvas is a Surface that rasterises board pixels into terminal cells.
// Each cell is one space with a background color.
type Canvas struct {
	mu     sync.Mutex
	width  float64
	height float64
	cols   int
	rows   int
	cells  []color.RGBA
	dirty  bool
}

func NewCanvas(width, height float64, cols, rows int) *Canvas {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Canvas{
		width:  width,
		height: height,
		cols:   cols,
		rows:   rows,
		cells:  make([]color.RGBA, cols*rows),
		dirty:  true,
	}
}

// FitGrid picks a cell grid for a board inside a terminal area, keeping the
// board's aspect with cells about twice as tall as wide.
func FitGrid(width, height float64, termCols, termRows int) (cols, rows int) {
	rows = max(termRows, 1)
	cols = int(math.Round(2 * float64(rows) * width / height))
	if cols > termCols {
		cols = max(termCols, 1)
		rows = max(int(math.Round(float64(cols)*height/width/2)), 1)
	}
	return cols, rows
}

func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) cellSize() (float64, float64) {
	return c.width / float64(c.cols), c.height / float64(c.rows)
}

// cellAt maps a board pixel to its cell, clamped to the grid.
func (c *Canvas) cellAt(x, y float64) (int, int) {
	cw, ch := c.cellSize()
	col := clamp(int(math.Floor(x/cw)), 0, c.cols-1)
	row := clamp(int(math.Floor(y/ch)), 0, c.rows-1)
	return col, row
}

func (c *Canvas) set(col, row int, clr color.RGBA) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	c.cells[row*c.cols+col] = clr
	c.dirty = true
}

// CellCenter returns the board pixel at the middle of a 0-based cell.
func (c *Canvas) CellCenter(col, row int) (float64, float64) {
	cw, ch := c.cellSize()
	return (float64(col) + 0.5) * cw, (float64(row) + 0.5) * ch
}

func (c *Canvas) FillRect(x, y, w, h float64, clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cx, cy := c.CellCenter(col, row)
			if cx >= x && cx < x+w && cy >= y && cy < y+h {
				c.set(col, row, clr)
			}
		}
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cw, ch := c.cellSize()
	step := math.Min(cw, ch) / 2
	n := int(math.Ceil(math.Hypot(x1-x0, y1-y0)/step)) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		col, row := c.cellAt(x0+(x1-x0)*t, y0+(y1-y0)*t)
		c.set(col, row, clr)
	}
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cx, cy := c.CellCenter(col, row)
			if math.Hypot(cx-x, cy-y) <= r {
				c.set(col, row, clr)
			}
		}
	}
	// a disc smaller than a cell still shows up
	col, row := c.cellAt(x, y)
	c.set(col, row, clr)
}

// StrokeCircle marks the cells the ring passes through, except the cell
// holding the center so small points keep their fill visible.
func (c *Canvas) StrokeCircle(x, y, r, width float64, clr color.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	centerCol, centerRow := c.cellAt(x, y)
	cw, ch := c.cellSize()
	step := math.Min(cw, ch) / 2
	n := max(int(math.Ceil(2*math.Pi*r/step)), 8)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		col, row := c.cellAt(x+r*math.Cos(a), y+r*math.Sin(a))
		if col == centerCol && row == centerRow {
			continue
		}
		c.set(col, row, clr)
	}
}

// At returns the color of a 0-based cell.
func (c *Canvas) At(col, row int) color.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cells[row*c.cols+col]
}

// Frame renders the grid starting at terminal row top (1-based) and clears
// the dirty flag. ok is false when nothing changed since the last frame.
func (c *Canvas) Frame(top int) (frame string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return "", false
	}
	c.dirty = false

	var builder strings.Builder
	for row := 0; row < c.rows; row++ {
		builder.WriteString(string(Screen.PlaceCursor(1, top+row)))
		var last color.RGBA
		for col := 0; col < c.cols; col++ {
			clr := c.cells[row*c.cols+col]
			if col == 0 || clr != last {
				builder.WriteString(string(Background(clr)))
				last = clr
			}
			builder.WriteByte(' ')
		}
		builder.WriteString(string(Styles.Reset))
	}
	return builder.String(), true
}
