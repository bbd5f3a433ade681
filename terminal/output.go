package terminal

import (
	"bufio"
	"io"
)

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastBg    RGB
	lastAttr  Attr
	lastValid bool
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
	}
}

// resize updates buffer dimensions and invalidates the front buffer
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	o.forceFullRedraw()
}

// cellEqual compares two cells for equality (standalone for inlining)
// Blank cells only differ by background
func cellEqual(a, b Cell) bool {
	if a.Glyph != b.Glyph || a.Attrs != b.Attrs || a.Cont != b.Cont {
		return false
	}
	if a.Glyph == "" {
		return a.Bg == b.Bg
	}
	return a.Fg == b.Fg && a.Bg == b.Bg
}

// flush writes the back buffer to terminal, diffing against front buffer
// One cursor move is emitted per contiguous dirty run
func (o *outputBuffer) flush(cells []Cell, width, height int) error {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}

	if len(cells) < width*height {
		return nil
	}

	w := o.writer
	dirty := false

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cellEqual(cells[idx], o.front[idx]) {
				x++
				continue
			}
			if cells[idx].Cont {
				// Covered by its lead glyph, nothing to emit
				o.front[idx] = cells[idx]
				x++
				continue
			}
			dirty = true

			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write all contiguous dirty cells, emitting style only when changed
			for x < width {
				cidx := rowStart + x
				c := cells[cidx]

				if cellEqual(c, o.front[cidx]) {
					break
				}
				o.front[cidx] = c
				x++

				if c.Cont {
					continue
				}

				o.writeStyleCoalesced(w, c.Fg, c.Bg, c.Attrs)
				if c.Glyph == "" {
					w.WriteByte(' ')
					o.cursorX++
				} else {
					w.WriteString(c.Glyph)
					o.cursorX += GlyphWidth(c.Glyph)
				}
			}
		}
	}

	if dirty {
		w.Write(csiSGR0)
		o.lastValid = false
	}
	return w.Flush()
}

// writeStyleCoalesced emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyleCoalesced(w *bufio.Writer, fg, bg RGB, attr Attr) {
	fgChanged := !o.lastValid || fg != o.lastFg
	bgChanged := !o.lastValid || bg != o.lastBg
	attrChanged := !o.lastValid || attr != o.lastAttr

	if !fgChanged && !bgChanged && !attrChanged {
		return
	}

	if attrChanged {
		// Attributes can only be cleared by a reset, so restate everything
		w.Write(csi)
		w.WriteByte('0')
		if attr&AttrBold != 0 {
			w.Write([]byte(";1"))
		}
		if attr&AttrDim != 0 {
			w.Write([]byte(";2"))
		}
		o.writeColorInline(w, fg, '3')
		o.writeColorInline(w, bg, '4')
		w.WriteByte('m')
	} else if fgChanged && bgChanged {
		w.Write(csi)
		w.WriteByte('0')
		o.writeColorInline(w, fg, '3')
		o.writeColorInline(w, bg, '4')
		w.WriteByte('m')
	} else if fgChanged {
		o.writeColorFull(w, fg, csiFgRGB, csiFg256)
	} else {
		o.writeColorFull(w, bg, csiBgRGB, csiBg256)
	}

	o.lastFg = fg
	o.lastBg = bg
	o.lastAttr = attr
	o.lastValid = true
}

// writeColorInline writes ;38;... or ;48;... parameters (no CSI prefix, no 'm' suffix)
func (o *outputBuffer) writeColorInline(w *bufio.Writer, c RGB, layer byte) {
	w.WriteByte(';')
	w.WriteByte(layer)
	if o.colorMode == ColorModeTrueColor {
		w.Write([]byte("8;2;"))
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		return
	}
	w.Write([]byte("8;5;"))
	writeInt(w, int(RGBTo256(c)))
}

// writeColorFull writes a complete single-layer color sequence
func (o *outputBuffer) writeColorFull(w *bufio.Writer, c RGB, rgbPrefix, palettePrefix []byte) {
	if o.colorMode == ColorModeTrueColor {
		w.Write(rgbPrefix)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
		return
	}
	w.Write(palettePrefix)
	writeInt(w, int(RGBTo256(c)))
	w.WriteByte('m')
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Glyph: "\x00"}
	}
	o.lastValid = false
	o.cursorValid = false
}

// clear writes a clear screen with specified background
func (o *outputBuffer) clear(bg RGB) error {
	w := o.writer
	w.Write(csiSGR0)
	o.writeColorFull(w, bg, csiBgRGB, csiBg256)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false

	for i := range o.front {
		o.front[i] = Cell{Bg: bg}
	}
	return w.Flush()
}
