package maze

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/termrain/vmath"
)

var ErrInvalidGeometry = errors.New("invalid explorer geometry")

// State is the walk position plus the direction used to enter it
type State struct {
	Pos     Point
	Last    Direction
	HasLast bool
}

// Transition computes one walk step from s without side effects
// The entry link (opposite of Last) and a sampled exit are returned for the cell at s.Pos
// pick(n) must return a value in [0, n); exits are drawn only from in-bounds directions
func Transition(s State, width, height int, pick func(n int) int) (next State, carved Links) {
	if s.HasLast {
		carved = carved.With(s.Last.Opposite())
	}
	valid := ValidDirections(s.Pos, width, height)
	if len(valid) == 0 {
		return s, carved
	}
	exit := valid[pick(len(valid))]
	carved = carved.With(exit)
	d := exit.Delta()
	return State{Pos: Point{s.Pos.X + d.X, s.Pos.Y + d.Y}, Last: exit, HasLast: true}, carved
}

// Walker carves a random walk over a grid, accumulating links per cell
type Walker struct {
	width  int
	height int
	state  State
	links  []Links
	rng    *vmath.FastRand
}

// NewWalker starts a walk at the grid center
func NewWalker(width, height int, rng *vmath.FastRand) (*Walker, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGeometry, width, height)
	}
	return &Walker{
		width:  width,
		height: height,
		state:  State{Pos: Point{width / 2, height / 2}},
		links:  make([]Links, width*height),
		rng:    rng,
	}, nil
}

// State returns the current walk state
func (w *Walker) State() State {
	return w.state
}

// LinksAt returns the links carved at p so far
func (w *Walker) LinksAt(p Point) Links {
	if p.X < 0 || p.X >= w.width || p.Y < 0 || p.Y >= w.height {
		return 0
	}
	return w.links[p.Y*w.width+p.X]
}

// Pending is the link set of the current cell including its entry link
func (w *Walker) Pending() Links {
	l := w.LinksAt(w.state.Pos)
	if w.state.HasLast {
		l = l.With(w.state.Last.Opposite())
	}
	return l
}

// Step carves the current cell and moves on, returning the carved cell and its new glyph
func (w *Walker) Step() (Point, string) {
	at := w.state.Pos
	next, carved := Transition(w.state, w.width, w.height, w.rng.Intn)

	idx := at.Y*w.width + at.X
	w.links[idx] |= carved
	w.state = next
	return at, w.links[idx].Glyph()
}
