package terminal

import (
	"github.com/mattn/go-runewidth"
)

// GlyphWidth returns the number of terminal columns a grapheme cluster occupies
// Zero-width input still consumes one cell once written
func GlyphWidth(glyph string) int {
	if glyph == "" {
		return 1
	}
	w := runewidth.StringWidth(glyph)
	if w < 1 {
		return 1
	}
	return w
}

// MaxGlyphWidth returns the widest cluster in the set, at least 1
func MaxGlyphWidth(glyphs []string) int {
	widest := 1
	for _, g := range glyphs {
		if w := GlyphWidth(g); w > widest {
			widest = w
		}
	}
	return widest
}
