package render

import (
	"github.com/lixenwraith/termrain/terminal"
)

// Cell is one glyph-unit of the grid; an empty Glyph is blank
type Cell struct {
	Glyph string
	Fg    RGB
	Attrs terminal.Attr
}

// Grid holds the last painted content per glyph-unit cell with per-row dirty tracking
// Columns are glyph units, not terminal columns
type Grid struct {
	cols  int
	rows  int
	cells []Cell
	dirty []bool
}

// NewGrid allocates a blank grid; all rows start dirty so the first flush paints everything
func NewGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := &Grid{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
		dirty: make([]bool, rows),
	}
	for i := range g.dirty {
		g.dirty[i] = true
	}
	return g
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Paint writes a glyph with foreground color, silently ignoring out of range coordinates
func (g *Grid) Paint(row, col int, glyph string, fg RGB) {
	g.PaintCell(row, col, Cell{Glyph: glyph, Fg: fg})
}

// PaintCell writes a full cell, silently ignoring out of range coordinates
func (g *Grid) PaintCell(row, col int, c Cell) {
	if !g.inBounds(row, col) {
		return
	}
	idx := row*g.cols + col
	if g.cells[idx] == c {
		return
	}
	g.cells[idx] = c
	g.dirty[row] = true
}

// Erase blanks a cell
func (g *Grid) Erase(row, col int) {
	g.PaintCell(row, col, Cell{})
}

// At returns the cell content, false when out of range
func (g *Grid) At(row, col int) (Cell, bool) {
	if !g.inBounds(row, col) {
		return Cell{}, false
	}
	return g.cells[row*g.cols+col], true
}

// RowDirty reports whether row changed since the last ClearDirty
func (g *Grid) RowDirty(row int) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	return g.dirty[row]
}

// ClearDirty resets all row flags
func (g *Grid) ClearDirty() {
	clear(g.dirty)
}

// Reset blanks every cell and marks all rows dirty
func (g *Grid) Reset() {
	clear(g.cells)
	for i := range g.dirty {
		g.dirty[i] = true
	}
}
