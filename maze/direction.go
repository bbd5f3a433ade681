package maze

// Point is a grid coordinate in glyph units
type Point struct {
	X, Y int
}

// Direction is one of the four orthogonal moves
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directions = [4]Direction{Up, Down, Left, Right}

var deltas = [4]Point{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Opposite returns the reverse direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta returns the unit offset of d
func (d Direction) Delta() Point {
	return deltas[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Links is the set of directions a cell connects to, one bit per Direction
type Links uint8

// Has reports whether d is linked
func (l Links) Has(d Direction) bool {
	return l&(1<<d) != 0
}

// With returns l plus d
func (l Links) With(d Direction) Links {
	return l | 1<<d
}

// boxGlyphs is indexed by Links: bit 0 up, bit 1 down, bit 2 left, bit 3 right
var boxGlyphs = [16]string{
	" ", "╵", "╷", "│",
	"╴", "┘", "┐", "┤",
	"╶", "└", "┌", "├",
	"─", "┴", "┬", "┼",
}

// Glyph returns the light box-drawing character for the link set
func (l Links) Glyph() string {
	return boxGlyphs[l&0x0F]
}

// ValidDirections returns the moves from p that stay inside a width x height grid
func ValidDirections(p Point, width, height int) []Direction {
	out := make([]Direction, 0, 4)
	for _, d := range directions {
		n := Point{p.X + deltas[d].X, p.Y + deltas[d].Y}
		if n.X >= 0 && n.X < width && n.Y >= 0 && n.Y < height {
			out = append(out, d)
		}
	}
	return out
}
