package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrMissingPoint = errors.New("point missing from state")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidBoard = errors.New("invalid board")
)

// Coord is a pixel position, encoded as a two element JSON array.
type Coord struct {
	X float64
	Y float64
}

func (c *Coord) UnmarshalJSON(b []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.X, c.Y})
}

// Lane is a straight segment drawn between two board coordinates.
type Lane [2]Coord

// Point is a named board node the player can click.
type Point struct {
	Name  string  `json:"-"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// Params is the static board layout. Points keep the order they were
// declared in, which decides which point wins an ambiguous click.
type Params struct {
	Width  int
	Height int
	Lanes  []Lane
	Points []Point
}

type paramsJSON struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Lanes  []Lane          `json:"lanes"`
	Points json.RawMessage `json:"points"`
	Punkts json.RawMessage `json:"punkts,omitempty"`
}

func (p *Params) UnmarshalJSON(b []byte) error {
	var raw paramsJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	pointsRaw := raw.Points
	if len(pointsRaw) == 0 {
		pointsRaw = raw.Punkts
	}
	points, err := decodePoints(pointsRaw)
	if err != nil {
		return err
	}

	*p = Params{Width: raw.Width, Height: raw.Height, Lanes: raw.Lanes, Points: points}
	return nil
}

func (p Params) MarshalJSON() ([]byte, error) {
	var points bytes.Buffer
	points.WriteByte('{')
	for i, pt := range p.Points {
		if i > 0 {
			points.WriteByte(',')
		}
		name, err := json.Marshal(pt.Name)
		if err != nil {
			return nil, err
		}
		body, err := json.Marshal(pt)
		if err != nil {
			return nil, err
		}
		points.Write(name)
		points.WriteByte(':')
		points.Write(body)
	}
	points.WriteByte('}')

	lanes := p.Lanes
	if lanes == nil {
		lanes = []Lane{}
	}
	return json.Marshal(paramsJSON{
		Width:  p.Width,
		Height: p.Height,
		Lanes:  lanes,
		Points: points.Bytes(),
	})
}

// decodePoints reads a JSON object of points without going through a map so
// the document order survives.
func decodePoints(raw json.RawMessage) ([]Point, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("points: expected object, got %v", tok)
	}

	var points []Point
	seen := map[string]bool{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("points: %w", err)
		}
		name, _ := tok.(string)
		if seen[name] {
			return nil, fmt.Errorf("points: duplicate point %q", name)
		}
		seen[name] = true

		var pt Point
		if err := dec.Decode(&pt); err != nil {
			return nil, fmt.Errorf("point %q: %w", name, err)
		}
		pt.Name = name
		points = append(points, pt)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	return points, nil
}

// Point looks a point up by name.
func (p Params) Point(name string) (Point, bool) {
	for _, pt := range p.Points {
		if pt.Name == name {
			return pt, true
		}
	}
	return Point{}, false
}

func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBoard, p.Width, p.Height)
	}
	if len(p.Points) == 0 {
		return fmt.Errorf("%w: no points", ErrInvalidBoard)
	}
	seen := make(map[string]bool, len(p.Points))
	for _, pt := range p.Points {
		if pt.Name == "" {
			return fmt.Errorf("%w: unnamed point", ErrInvalidBoard)
		}
		if seen[pt.Name] {
			return fmt.Errorf("%w: duplicate point %q", ErrInvalidBoard, pt.Name)
		}
		seen[pt.Name] = true
		if _, err := ParseColor(pt.Color); err != nil {
			return fmt.Errorf("point %q: %w", pt.Name, err)
		}
	}
	return nil
}

// CheckStates fails on the first layout point that has no entry in states.
func (p Params) CheckStates(states map[string]PointState) error {
	for _, pt := range p.Points {
		st, ok := states[pt.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrMissingPoint, pt.Name)
		}
		if _, err := ParseColor(st.Color); err != nil {
			return fmt.Errorf("point %q fill: %w", pt.Name, err)
		}
		if _, err := ParseColor(st.Border); err != nil {
			return fmt.Errorf("point %q border: %w", pt.Name, err)
		}
	}
	return nil
}

// Load reads a layout file. An empty path returns the default layout.
func Load(path string) (Params, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	var p Params
	if err := json.Unmarshal(b, &p); err != nil {
		return Params{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
