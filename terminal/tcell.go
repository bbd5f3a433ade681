package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellTerminal implements Terminal on top of a tcell.Screen
// tcell does its own diffing, so Flush only restates every cell and calls Show
type TcellTerminal struct {
	screen    tcell.Screen
	colorMode ColorMode

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// NewTcell creates a terminal backed by the real tcell screen
func NewTcell(colorMode ColorMode) (*TcellTerminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewTcellWithScreen(screen, colorMode), nil
}

// NewTcellWithScreen wraps an existing screen, e.g. tcell.NewSimulationScreen in tests
func NewTcellWithScreen(screen tcell.Screen, colorMode ColorMode) *TcellTerminal {
	return &TcellTerminal{screen: screen, colorMode: colorMode}
}

// Screen exposes the wrapped screen
func (t *TcellTerminal) Screen() tcell.Screen {
	return t.screen
}

func (t *TcellTerminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen.HideCursor()
	t.screen.SetStyle(tcell.StyleDefault.Background(t.color(RGBBlack)))
	t.screen.Clear()
	t.initialized = true
	return nil
}

func (t *TcellTerminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}
	t.screen.Fini()
	t.finalized = true
}

func (t *TcellTerminal) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

func (t *TcellTerminal) ColorMode() ColorMode {
	return t.colorMode
}

func (t *TcellTerminal) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	if len(cells) < width*height {
		return nil
	}

	for y := 0; y < height; y++ {
		row := cells[y*width : (y+1)*width]
		for x, c := range row {
			if c.Cont {
				continue
			}
			mainc, comb := ' ', []rune(nil)
			if c.Glyph != "" {
				runes := []rune(c.Glyph)
				mainc, comb = runes[0], runes[1:]
			}
			t.screen.SetContent(x, y, mainc, comb, t.style(c))
		}
	}
	t.screen.Show()
	return nil
}

func (t *TcellTerminal) Clear(bg RGB) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}
	t.screen.SetStyle(tcell.StyleDefault.Background(t.color(bg)))
	t.screen.Clear()
	t.screen.Show()
	return nil
}

// style converts cell colors and attributes to a tcell.Style
func (t *TcellTerminal) style(c Cell) tcell.Style {
	st := tcell.StyleDefault.Foreground(t.color(c.Fg)).Background(t.color(c.Bg))
	if c.Attrs&AttrBold != 0 {
		st = st.Bold(true)
	}
	if c.Attrs&AttrDim != 0 {
		st = st.Dim(true)
	}
	return st
}

// color maps RGB to tcell, using palette indices in 256-color mode
func (t *TcellTerminal) color(c RGB) tcell.Color {
	if t.colorMode == ColorMode256 {
		return tcell.PaletteColor(int(RGBTo256(c)))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
