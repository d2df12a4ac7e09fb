package renderer

import (
	"image/color"
	"sync"
)

type OpKind int

const (
	OpFillRect OpKind = iota
	OpStrokeLine
	OpFillCircle
	OpStrokeCircle
)

// Op is one recorded drawing call. Lines use X0,Y0 -> X1,Y1, rects use
// X0,Y0 with W,H, circles use X0,Y0 with R.
type Op struct {
	Kind   OpKind
	X0, Y0 float64
	X1, Y1 float64
	W, H   float64
	R      float64
	Width  float64
	Color  color.RGBA
}

// Recorder is a Surface that keeps a display list instead of pixels.
type Recorder struct {
	mu  sync.Mutex
	ops []Op
}

func (r *Recorder) push(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.RGBA) {
	r.push(Op{Kind: OpFillRect, X0: x, Y0: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA) {
	r.push(Op{Kind: OpStrokeLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Width: width, Color: c})
}

func (r *Recorder) FillCircle(x, y, radius float64, c color.RGBA) {
	r.push(Op{Kind: OpFillCircle, X0: x, Y0: y, R: radius, Color: c})
}

func (r *Recorder) StrokeCircle(x, y, radius, width float64, c color.RGBA) {
	r.push(Op{Kind: OpStrokeCircle, X0: x, Y0: y, R: radius, Width: width, Color: c})
}

// Ops returns a copy of everything recorded so far.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Drain returns the recorded ops and empties the list.
func (r *Recorder) Drain() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ops
	r.ops = nil
	return out
}

// Replay issues ops against s in order.
func Replay(s Surface, ops []Op) {
	for _, op := range ops {
		switch op.Kind {
		case OpFillRect:
			s.FillRect(op.X0, op.Y0, op.W, op.H, op.Color)
		case OpStrokeLine:
			s.StrokeLine(op.X0, op.Y0, op.X1, op.Y1, op.Width, op.Color)
		case OpFillCircle:
			s.FillCircle(op.X0, op.Y0, op.R, op.Color)
		case OpStrokeCircle:
			s.StrokeCircle(op.X0, op.Y0, op.R, op.Width, op.Color)
		}
	}
}
