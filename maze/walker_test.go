package maze

import (
	"errors"
	"testing"

	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/vmath"
)

func TestLinksGlyphTable(t *testing.T) {
	tests := []struct {
		dirs []Direction
		want string
	}{
		{nil, " "},
		{[]Direction{Right}, "╶"},
		{[]Direction{Left, Right}, "─"},
		{[]Direction{Up, Down}, "│"},
		{[]Direction{Down, Right}, "┌"},
		{[]Direction{Down, Left}, "┐"},
		{[]Direction{Up, Right}, "└"},
		{[]Direction{Up, Left}, "┘"},
		{[]Direction{Up, Down, Right}, "├"},
		{[]Direction{Up, Down, Left}, "┤"},
		{[]Direction{Down, Left, Right}, "┬"},
		{[]Direction{Up, Left, Right}, "┴"},
		{[]Direction{Up, Down, Left, Right}, "┼"},
	}

	for _, tt := range tests {
		var l Links
		for _, d := range tt.dirs {
			l = l.With(d)
		}
		if got := l.Glyph(); got != tt.want {
			t.Errorf("Links %v: got %q, want %q", tt.dirs, got, tt.want)
		}
	}

	seen := make(map[string]bool)
	for l := Links(0); l < 16; l++ {
		g := l.Glyph()
		if seen[g] {
			t.Errorf("Duplicate glyph %q for links %04b", g, l)
		}
		seen[g] = true
	}
}

func TestOpposite(t *testing.T) {
	for _, d := range directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite not involutive for %v", d)
		}
		a, b := d.Delta(), d.Opposite().Delta()
		if a.X+b.X != 0 || a.Y+b.Y != 0 {
			t.Errorf("Delta of %v and its opposite do not cancel", d)
		}
	}
}

func TestValidDirectionsCorners(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want []Direction
	}{
		{"Top left", Point{0, 0}, []Direction{Down, Right}},
		{"Bottom right", Point{4, 2}, []Direction{Up, Left}},
		{"Interior", Point{2, 1}, []Direction{Up, Down, Left, Right}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidDirections(tt.p, 5, 3)
			if len(got) != len(tt.want) {
				t.Fatalf("Got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Got %v, want %v", got, tt.want)
				}
			}
		})
	}

	if got := ValidDirections(Point{0, 0}, 1, 1); len(got) != 0 {
		t.Errorf("Expected no moves on 1x1 grid, got %v", got)
	}
}

func TestTransitionAddsEntryAndExit(t *testing.T) {
	s := State{Pos: Point{2, 2}, Last: Right, HasLast: true}
	// Always pick the first valid direction (Up)
	next, carved := Transition(s, 5, 5, func(int) int { return 0 })

	if !carved.Has(Left) {
		t.Error("Expected entry link opposite of last move")
	}
	if !carved.Has(Up) {
		t.Error("Expected exit link for sampled direction")
	}
	if next.Pos != (Point{2, 1}) || next.Last != Up || !next.HasLast {
		t.Errorf("Unexpected next state %+v", next)
	}
}

func TestTransitionNeverLeavesBounds(t *testing.T) {
	s := State{Pos: Point{0, 0}}
	for pick := 0; pick < 2; pick++ {
		next, _ := Transition(s, 3, 3, func(int) int { return pick })
		if next.Pos.X < 0 || next.Pos.Y < 0 {
			t.Errorf("Transition left bounds: %+v", next.Pos)
		}
	}
}

func TestNewWalkerGeometry(t *testing.T) {
	if _, err := NewWalker(0, 5, vmath.NewFastRand(1)); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("Expected ErrInvalidGeometry, got %v", err)
	}

	w, err := NewWalker(9, 7, vmath.NewFastRand(1))
	if err != nil {
		t.Fatalf("NewWalker failed: %v", err)
	}
	if w.State().Pos != (Point{4, 3}) {
		t.Errorf("Expected start at center, got %+v", w.State().Pos)
	}
	if w.State().HasLast {
		t.Error("Expected no entry direction at start")
	}
}

func TestWalkerLinksSymmetric(t *testing.T) {
	const width, height = 12, 8
	w, err := NewWalker(width, height, vmath.NewFastRand(2024))
	if err != nil {
		t.Fatalf("NewWalker failed: %v", err)
	}

	for i := 0; i < 3000; i++ {
		at, glyph := w.Step()
		if at.X < 0 || at.X >= width || at.Y < 0 || at.Y >= height {
			t.Fatalf("Step %d carved out of bounds %+v", i, at)
		}
		if glyph == " " {
			t.Fatalf("Step %d carved a cell without links", i)
		}
	}

	// Including the pending entry link, every link must be matched by its neighbor
	cur := w.State().Pos
	linksAt := func(p Point) Links {
		if p == cur {
			return w.Pending()
		}
		return w.LinksAt(p)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := Point{x, y}
			l := linksAt(p)
			for _, d := range directions {
				if !l.Has(d) {
					continue
				}
				n := Point{x + d.Delta().X, y + d.Delta().Y}
				if n.X < 0 || n.X >= width || n.Y < 0 || n.Y >= height {
					t.Fatalf("Cell %+v links %v off the grid", p, d)
				}
				if !linksAt(n).Has(d.Opposite()) {
					t.Fatalf("Cell %+v links %v but neighbor %+v lacks the reverse link", p, d, n)
				}
			}
		}
	}
}

func TestWalkerSingleCell(t *testing.T) {
	w, err := NewWalker(1, 1, vmath.NewFastRand(3))
	if err != nil {
		t.Fatalf("NewWalker failed: %v", err)
	}
	at, glyph := w.Step()
	if at != (Point{0, 0}) || glyph != " " {
		t.Errorf("Expected stationary blank step, got %+v %q", at, glyph)
	}
	if w.State().Pos != (Point{0, 0}) {
		t.Errorf("Expected walker to stay put, got %+v", w.State().Pos)
	}
}

type countingFlusher struct{ calls int }

func (c *countingFlusher) Flush() error {
	c.calls++
	return nil
}

func TestExplorerStepPaints(t *testing.T) {
	grid := render.NewGrid(10, 6)
	out := &countingFlusher{}
	theme, err := render.ThemeByName("cyan")
	if err != nil {
		t.Fatalf("ThemeByName failed: %v", err)
	}
	e, err := NewExplorer(grid, out, theme, 11)
	if err != nil {
		t.Fatalf("NewExplorer failed: %v", err)
	}

	start := e.Walker().State().Pos
	if err := e.Step(0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	c, _ := grid.At(start.Y, start.X)
	if c.Fg != theme.Trail || c.Glyph == " " || c.Glyph == "" {
		t.Errorf("Expected carved start cell in trail color, got %+v", c)
	}
	pos := e.Walker().State().Pos
	h, _ := grid.At(pos.Y, pos.X)
	if h.Fg != theme.Head {
		t.Errorf("Expected current cell in head color, got %+v", h)
	}
	if h.Glyph != e.Walker().Pending().Glyph() {
		t.Errorf("Expected pending glyph %q at head, got %q", e.Walker().Pending().Glyph(), h.Glyph)
	}
	if out.calls != 1 {
		t.Errorf("Expected 1 flush, got %d", out.calls)
	}
}
