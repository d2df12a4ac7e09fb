// Package raster draws the board into an in-memory RGBA image.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"sync"

	"github.com/fogleman/gg"
)

type Surface struct {
	mu sync.Mutex
	dc *gg.Context
}

func New(width, height int) *Surface {
	return &Surface{dc: gg.NewContext(width, height)}
}

func (s *Surface) FillRect(x, y, w, h float64, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	s.dc.Fill()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(x0, y0, x1, y1)
	s.dc.Stroke()
}

func (s *Surface) FillCircle(x, y, r float64, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetColor(c)
	s.dc.DrawCircle(x, y, r)
	s.dc.Fill()
}

func (s *Surface) StrokeCircle(x, y, r, width float64, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawCircle(x, y, r)
	s.dc.Stroke()
}

// Image returns a copy of the current frame.
func (s *Surface) Image() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.dc.Image()
	out := image.NewRGBA(src.Bounds())
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)
	return out
}

func (s *Surface) EncodePNG(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dc.EncodePNG(w)
}
