package glyph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/lixenwraith/termrain/terminal"
	"github.com/lixenwraith/termrain/vmath"
)

var (
	ErrEmptyPalette = errors.New("palette has no glyphs")
)

// Palette is an immutable set of grapheme clusters sampled for drops
type Palette struct {
	name   string
	glyphs []string
	width  int
}

// Resolve returns the named palette, or treats name as a custom glyph string
func Resolve(name string) (*Palette, error) {
	if name == "" {
		name = DefaultName
	}
	if set, ok := namedSets[strings.ToLower(name)]; ok {
		return newPalette(strings.ToLower(name), set)
	}
	p, err := newPalette("custom", name)
	if err != nil {
		return nil, fmt.Errorf("custom palette %q: %w", name, err)
	}
	return p, nil
}

// Names lists the built-in palettes in sorted order
func Names() []string {
	names := make([]string, 0, len(namedSets))
	for n := range namedSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func newPalette(name, set string) (*Palette, error) {
	glyphs := Split(set)
	if len(glyphs) == 0 {
		return nil, ErrEmptyPalette
	}
	return &Palette{
		name:   name,
		glyphs: glyphs,
		width:  terminal.MaxGlyphWidth(glyphs),
	}, nil
}

// Split breaks s into grapheme clusters, dropping whitespace-only clusters
func Split(s string) []string {
	var out []string
	seen := make(map[string]struct{})
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if strings.TrimSpace(cluster) == "" {
			continue
		}
		if _, dup := seen[cluster]; dup {
			continue
		}
		seen[cluster] = struct{}{}
		out = append(out, cluster)
	}
	return out
}

// Name returns the palette name, "custom" for user strings
func (p *Palette) Name() string { return p.name }

// Len returns the number of distinct glyphs
func (p *Palette) Len() int { return len(p.glyphs) }

// Width is the terminal column count of the widest glyph, the grid unit size
func (p *Palette) Width() int { return p.width }

// Glyphs returns a copy of the palette contents
func (p *Palette) Glyphs() []string {
	out := make([]string, len(p.glyphs))
	copy(out, p.glyphs)
	return out
}

// Pick samples a glyph uniformly
func (p *Palette) Pick(rng *vmath.FastRand) string {
	return p.glyphs[rng.Intn(len(p.glyphs))]
}
