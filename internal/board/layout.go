package board

const (
	padding   = 30
	boardSize = 768 + padding*2

	EmptyColor = "#808080"
)

// Default is the djirgha board: three nested squares joined by twenty
// three-point lanes.
func Default() Params {
	const (
		w   = float64(boardSize)
		h   = float64(boardSize)
		efw = w - padding*2
		efh = h - padding*2
	)

	pts := map[string]Coord{}
	var order []string
	add := func(name string, x, y float64) Coord {
		pts[name] = Coord{X: x, Y: y}
		order = append(order, name)
		return pts[name]
	}

	// outer ring
	a1 := add("a1", padding, padding)
	a2 := add("a2", w/2, a1.Y)
	a3 := add("a3", w-padding, a1.Y)
	a4 := add("a4", a3.X, h/2)
	a5 := add("a5", a3.X, h-padding)
	add("a6", a2.X, a5.Y)
	add("a7", a1.X, a5.Y)
	add("a8", a1.X, a4.Y)

	// middle ring
	b1 := add("b1", a1.X+efw/4, a1.Y+efh/4)
	b2 := add("b2", a2.X, b1.Y)
	b3 := add("b3", a3.X-efw/4, b1.Y)
	b4 := add("b4", b3.X, a4.Y)
	b5 := add("b5", b3.X, a5.Y-efh/4)
	add("b6", b2.X, b5.Y)
	add("b7", b1.X, b5.Y)
	add("b8", b1.X, b4.Y)

	// inner square
	c1 := add("c1", b1.X+efw/8, b1.Y+efh/8)
	c2 := add("c2", b3.X-efw/8, c1.Y)
	c3 := add("c3", c2.X, b5.Y-efh/8)
	add("c4", c1.X, c3.Y)

	triples := [][3]string{
		{"a1", "a2", "a3"}, {"a3", "a4", "a5"}, {"a5", "a6", "a7"}, {"a7", "a8", "a1"},
		{"b1", "b2", "b3"}, {"b3", "b4", "b5"}, {"b5", "b6", "b7"}, {"b7", "b8", "b1"},
		{"a8", "b1", "a2"}, {"a2", "b3", "a4"}, {"a4", "b5", "a6"}, {"a6", "b7", "a8"},
		{"b8", "c1", "b2"}, {"b2", "c2", "b4"}, {"b4", "c3", "b6"}, {"b6", "c4", "b8"},
		{"a1", "b1", "c1"}, {"a3", "b3", "c2"}, {"a5", "b5", "c3"}, {"a7", "b7", "c4"},
	}

	p := Params{Width: boardSize, Height: boardSize}
	for _, name := range order {
		c := pts[name]
		p.Points = append(p.Points, Point{Name: name, X: c.X, Y: c.Y, Color: EmptyColor})
	}
	for _, t := range triples {
		p.Lanes = append(p.Lanes, Lane{pts[t[0]], pts[t[2]]})
	}
	return p
}
