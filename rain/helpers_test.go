package rain

import (
	"testing"

	"github.com/lixenwraith/termrain/glyph"
	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/vmath"
)

// countingFlusher records flush calls
type countingFlusher struct {
	calls int
	err   error
}

func (f *countingFlusher) Flush() error {
	f.calls++
	return f.err
}

func testPalette(t *testing.T) *glyph.Palette {
	t.Helper()
	p, err := glyph.Resolve("alnum")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	return p
}

func testTheme(t *testing.T) render.Theme {
	t.Helper()
	theme, err := render.ThemeByName("green")
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	return theme
}

func testPool(t *testing.T, maxFall, maxGlyph, spawnRate int) *Pool {
	t.Helper()
	return NewPool(testPalette(t), vmath.NewFastRand(1), maxFall, maxGlyph, spawnRate)
}

// quietConfig disables automatic spawning so tests control the population
func quietConfig(depth int) Config {
	cfg := DefaultConfig()
	cfg.FadeDepth = depth
	cfg.Density = 0
	cfg.InitialDrops = 0
	cfg.Seed = 42
	return cfg
}

func newQuietSim(t *testing.T, cols, rows, depth int) (*Simulation, *countingFlusher) {
	t.Helper()
	out := &countingFlusher{}
	sim, err := NewSimulation(quietConfig(depth), testPalette(t), testTheme(t), render.NewGrid(cols, rows), out)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return sim, out
}
