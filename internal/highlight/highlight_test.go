package highlight

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djirgha/internal/board"
	"djirgha/internal/renderer"
)

func fills(ops []renderer.Op) []string {
	var out []string
	for _, op := range ops {
		if op.Kind == renderer.OpFillCircle {
			out = append(out, colorHex(op))
		}
	}
	return out
}

func colorHex(op renderer.Op) string {
	for _, s := range Sequence {
		if board.MustColor(s) == op.Color {
			return s
		}
	}
	return "?"
}

func TestBlinkCyclesSequence(t *testing.T) {
	p := board.Default()
	v := renderer.NewViewState(p)
	rec := &renderer.Recorder{}
	pt, _ := p.Point("a1")

	start := time.Now()
	select {
	case <-Blink(context.Background(), rec, v, pt, 10*time.Millisecond):
	case <-time.After(2 * time.Second):
		t.Fatal("blink did not finish")
	}

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, Sequence, fills(rec.Ops()))
	assert.Equal(t, "#0000ff", v.Fill("a1"))
}

func TestAllWaitsForEveryBlink(t *testing.T) {
	p := board.Default()
	v := renderer.NewViewState(p)
	rec := &renderer.Recorder{}

	require.NoError(t, All(context.Background(), rec, v, p.Points[:5], 5*time.Millisecond))

	assert.Equal(t, 5*len(Sequence), countOps(rec.Ops(), renderer.OpFillCircle))
	for _, pt := range p.Points[:5] {
		assert.Equal(t, "#0000ff", v.Fill(pt.Name))
	}
}

func TestBlinkStopsOnCancel(t *testing.T) {
	p := board.Default()
	v := renderer.NewViewState(p)
	rec := &renderer.Recorder{}

	ctx, cancel := context.WithCancel(context.Background())
	done := Blink(ctx, rec, v, p.Points[0], time.Hour)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("blink ignored cancellation")
	}
	assert.Equal(t, 1, countOps(rec.Ops(), renderer.OpFillCircle))
}

func countOps(ops []renderer.Op, kind renderer.OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
