package render

import (
	"fmt"

	"github.com/lixenwraith/termrain/terminal"
)

// Renderer expands the glyph-unit grid into terminal cells and flushes them
type Renderer struct {
	term       terminal.Terminal
	grid       *Grid
	glyphWidth int
	bg         RGB

	// Terminal-cell back buffer, persistent across frames
	cells  []terminal.Cell
	width  int
	height int
}

// NewRenderer binds a grid to a terminal of width x height cells
// glyphWidth is the number of terminal columns per grid column
func NewRenderer(term terminal.Terminal, grid *Grid, glyphWidth, width, height int, bg RGB) *Renderer {
	if glyphWidth < 1 {
		glyphWidth = 1
	}
	cells := make([]terminal.Cell, width*height)
	for i := range cells {
		cells[i] = terminal.Cell{Bg: bg}
	}
	return &Renderer{
		term:       term,
		grid:       grid,
		glyphWidth: glyphWidth,
		bg:         bg,
		cells:      cells,
		width:      width,
		height:     height,
	}
}

// TerminalColumn maps a grid column to its first terminal column
func (r *Renderer) TerminalColumn(col int) int {
	return col * r.glyphWidth
}

// Grid returns the bound grid
func (r *Renderer) Grid() *Grid {
	return r.grid
}

// Flush rebuilds dirty rows and hands the frame to the terminal
func (r *Renderer) Flush() error {
	rows := min(r.grid.Rows(), r.height)
	for row := 0; row < rows; row++ {
		if !r.grid.RowDirty(row) {
			continue
		}
		r.expandRow(row)
	}
	r.grid.ClearDirty()

	if err := r.term.Flush(r.cells, r.width, r.height); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// expandRow writes one grid row into the terminal-cell buffer
// A wide glyph fills its lead cell plus continuation cells, the rest of the unit is blank
func (r *Renderer) expandRow(row int) {
	base := row * r.width
	gw := r.glyphWidth
	for col := 0; col < r.grid.Cols(); col++ {
		tc := r.TerminalColumn(col)
		if tc+gw > r.width {
			break
		}
		c, _ := r.grid.At(row, col)

		if c.Glyph == "" {
			for i := 0; i < gw; i++ {
				r.cells[base+tc+i] = terminal.Cell{Bg: r.bg}
			}
			continue
		}

		r.cells[base+tc] = terminal.Cell{Glyph: c.Glyph, Fg: c.Fg, Bg: r.bg, Attrs: c.Attrs}
		span := min(terminal.GlyphWidth(c.Glyph), gw)
		for i := 1; i < gw; i++ {
			if i < span {
				r.cells[base+tc+i] = terminal.Cell{Bg: r.bg, Cont: true}
			} else {
				r.cells[base+tc+i] = terminal.Cell{Bg: r.bg}
			}
		}
	}
}
