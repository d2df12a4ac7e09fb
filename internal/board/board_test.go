package board

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBoard = `{
  "width": 828,
  "height": 828,
  "lanes": [[[30, 30], [798, 30]], [[798, 30], [798, 798]]],
  "punkts": {
    "z9": {"x": 798, "y": 30, "color": "#808080"},
    "a1": {"x": 30, "y": 30, "color": "#808080"},
    "m4": {"x": 414, "y": 30, "color": "#fff"}
  }
}`

func TestParamsKeepDocumentOrder(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(sampleBoard), &p))

	names := []string{}
	for _, pt := range p.Points {
		names = append(names, pt.Name)
	}
	assert.Equal(t, []string{"z9", "a1", "m4"}, names)
	assert.Equal(t, 828, p.Width)
	require.Len(t, p.Lanes, 2)
	assert.Equal(t, Coord{X: 798, Y: 798}, p.Lanes[1][1])
	require.NoError(t, p.Validate())
}

func TestParamsRoundTripKeepsOrder(t *testing.T) {
	var p Params
	require.NoError(t, json.Unmarshal([]byte(sampleBoard), &p))

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var again Params
	require.NoError(t, json.Unmarshal(b, &again))
	assert.Equal(t, p, again)
}

func TestParamsRejectDuplicatePoint(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"width":1,"height":1,"points":{"a":{"x":1,"y":1,"color":"#000"},"a":{"x":2,"y":2,"color":"#000"}}}`), &p)
	assert.ErrorContains(t, err, "duplicate")
}

func TestValidate(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	p.Points = append(p.Points, Point{Name: "x1", Color: "grey"})
	assert.ErrorIs(t, p.Validate(), ErrInvalidColor)

	assert.ErrorIs(t, Params{}.Validate(), ErrInvalidBoard)
}

func TestDefaultLayout(t *testing.T) {
	p := Default()
	assert.Len(t, p.Points, 20)
	assert.Len(t, p.Lanes, 20)

	a1, ok := p.Point("a1")
	require.True(t, ok)
	assert.Equal(t, 30.0, a1.X)
	assert.Equal(t, 30.0, a1.Y)

	c3, ok := p.Point("c3")
	require.True(t, ok)
	assert.Equal(t, 510.0, c3.X)
	assert.Equal(t, 510.0, c3.Y)

	// a8 -> a2 runs through b1
	assert.Equal(t, Lane{{X: 30, Y: 414}, {X: 414, Y: 30}}, p.Lanes[8])
}

func TestCheckStates(t *testing.T) {
	p := Default()
	states := map[string]PointState{}
	for _, pt := range p.Points {
		states[pt.Name] = PointState{Color: "#808080", Border: "#404040"}
	}
	require.NoError(t, p.CheckStates(states))

	delete(states, "b4")
	err := p.CheckStates(states)
	assert.ErrorIs(t, err, ErrMissingPoint)
	assert.ErrorContains(t, err, "b4")

	states["b4"] = PointState{Color: "#808080", Border: "nope"}
	assert.ErrorIs(t, p.CheckStates(states), ErrInvalidColor)
}

func TestResponseAcceptsBothKeys(t *testing.T) {
	var r Response
	require.NoError(t, json.Unmarshal([]byte(`{"punkts":{"a1":{"color":"#fff","border":"#0f0","blink":true}},"message":"Whites places a button"}`), &r))
	assert.Equal(t, PointState{Color: "#fff", Border: "#0f0", Blink: true}, r.Points["a1"])
	assert.Equal(t, "Whites places a button", r.Message)

	r = Response{}
	require.NoError(t, json.Unmarshal([]byte(`{"points":{"a1":{"color":"#000","border":"#404040"}},"message":""}`), &r))
	assert.False(t, r.Points["a1"].Blink)

	err := json.Unmarshal([]byte(`{"points":{"a1":{"color":"#000","border":"#404040"}}}`), &r)
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0xff), c.A)

	c, err = ParseColor("#0f08")
	assert.ErrorIs(t, err, ErrInvalidColor)

	c, err = ParseColor("#0f0")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xff), c.G)
	assert.Equal(t, uint8(0), c.R)

	_, err = ParseColor("808080")
	assert.ErrorIs(t, err, ErrInvalidColor)
}

func TestLoad(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Len(t, p.Points, 20)

	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBoard), 0o644))
	p, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "z9", p.Points[0].Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
