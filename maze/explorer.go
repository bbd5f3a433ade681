package maze

import (
	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/terminal"
	"github.com/lixenwraith/termrain/vmath"
)

// Flusher publishes the grid, implemented by render.Renderer
type Flusher interface {
	Flush() error
}

// Explorer renders a Walker onto a grid; it implements engine.Stepper
type Explorer struct {
	walker *Walker
	grid   *render.Grid
	out    Flusher
	theme  render.Theme
}

// NewExplorer creates the effect over the whole grid
func NewExplorer(grid *render.Grid, out Flusher, theme render.Theme, seed uint64) (*Explorer, error) {
	w, err := NewWalker(grid.Cols(), grid.Rows(), vmath.NewFastRand(seed))
	if err != nil {
		return nil, err
	}
	return &Explorer{walker: w, grid: grid, out: out, theme: theme}, nil
}

// Walker exposes the underlying walk
func (e *Explorer) Walker() *Walker {
	return e.walker
}

// Step carves one cell in the trail color and marks the new position in the head color
func (e *Explorer) Step(frame uint64) error {
	carved, glyph := e.walker.Step()
	e.grid.Paint(carved.Y, carved.X, glyph, e.theme.Trail)

	pos := e.walker.State().Pos
	e.grid.PaintCell(pos.Y, pos.X, render.Cell{
		Glyph: e.walker.Pending().Glyph(),
		Fg:    e.theme.Head,
		Attrs: terminal.AttrBold,
	})

	if e.out == nil {
		return nil
	}
	return e.out.Flush()
}
