package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"djirgha/internal/board"
)

func TestDrawBoardStrokesEachLaneOnce(t *testing.T) {
	for _, p := range []board.Params{
		board.Default(),
		{Width: 100, Height: 50, Points: []board.Point{{Name: "a", X: 1, Y: 1, Color: "#808080"}}},
	} {
		rec := &Recorder{}
		DrawBoard(rec, p)

		assert.Equal(t, 1, countOps(rec.Ops(), OpFillRect))
		assert.Equal(t, len(p.Lanes), countOps(rec.Ops(), OpStrokeLine))
		assert.Zero(t, countOps(rec.Ops(), OpFillCircle))

		bg := rec.Ops()[0]
		assert.Equal(t, float64(p.Width), bg.W)
		assert.Equal(t, float64(p.Height), bg.H)
		assert.Equal(t, Background, bg.Color)
	}
}

func TestFillThenBorderKeepsFill(t *testing.T) {
	p := board.Default()
	v := NewViewState(p)
	rec := &Recorder{}
	pt, _ := p.Point("b2")

	require.NoError(t, FillPoint(rec, v, pt, "#ffffff"))
	require.NoError(t, BorderPoint(rec, pt, "#00ff00"))

	assert.Equal(t, "#ffffff", v.Fill("b2"))
	ops := rec.Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, OpFillCircle, ops[0].Kind)
	assert.Equal(t, PointRadius, ops[0].R)
	assert.Equal(t, OpStrokeCircle, ops[1].Kind)
	assert.Equal(t, BorderWidth, ops[1].Width)
	assert.Equal(t, board.MustColor("#00ff00"), ops[1].Color)
}

func TestFillPointRejectsBadColor(t *testing.T) {
	p := board.Default()
	v := NewViewState(p)
	rec := &Recorder{}

	err := FillPoint(rec, v, p.Points[0], "red")
	assert.ErrorIs(t, err, board.ErrInvalidColor)
	assert.Empty(t, rec.Ops())
	assert.Equal(t, board.EmptyColor, v.Fill(p.Points[0].Name))
}

func TestDrawBasePointsRejectsBadLayoutColor(t *testing.T) {
	p := board.Default()
	p.Points[3].Color = "grey"
	rec := &Recorder{}

	err := DrawBasePoints(rec, NewViewState(p), p)
	assert.ErrorIs(t, err, board.ErrInvalidColor)
	assert.ErrorContains(t, err, p.Points[3].Name)
	assert.Equal(t, 3, countOps(rec.Ops(), OpFillCircle))
}

func TestReplayReproducesOps(t *testing.T) {
	p := board.Default()
	src := &Recorder{}
	DrawBoard(src, p)
	require.NoError(t, DrawBasePoints(src, NewViewState(p), p))

	dst := &Recorder{}
	Replay(dst, src.Drain())
	assert.Empty(t, src.Ops())
	assert.Equal(t, 20, countOps(dst.Ops(), OpFillCircle))
	assert.Equal(t, 20, countOps(dst.Ops(), OpStrokeLine))
}

func countOps(ops []Op, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
