package terminal

import (
	"io"
	"os"
	"sync"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone Attr = 0
	AttrBold Attr = 1 << 0
	AttrDim  Attr = 1 << 1
)

// Cell represents a single terminal cell
// Glyph holds one grapheme cluster; empty renders as a space
// Cont marks the right half of a wide glyph, which is never written on its own
type Cell struct {
	Glyph string
	Fg    RGB
	Bg    RGB
	Attrs Attr
	Cont  bool
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode, alternate screen buffer, hides cursor
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int, err error)

	// ColorMode returns the color capability output is encoded for
	ColorMode() ColorMode

	// Flush writes cell buffer to terminal
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int) error

	// Clear fills screen with specified background color
	Clear(bg RGB) error
}

// termImpl implements Terminal using the Backend interface
type termImpl struct {
	backend Backend
	output  *outputBuffer

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on stdin/stdout
func New(colorMode ColorMode) Terminal {
	return NewWithBackend(newBackend(), colorMode)
}

// NewWithBackend creates a Terminal writing through the given backend
func NewWithBackend(b Backend, colorMode ColorMode) Terminal {
	return &termImpl{
		backend: b,
		output:  newOutputBuffer(writerFunc(b.Write), colorMode),
	}
}

// writerFunc adapts a Write method value to io.Writer
type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h, err := t.backend.Size()
	if err != nil {
		t.backend.Fini()
		return err
	}
	t.output.resize(w, h)

	wr := t.output.writer
	wr.Write(csiAltScreenEnter)
	wr.Write(csiCursorHide)
	wr.Write(csiAutoWrapOff)
	if err := t.output.clear(RGBBlack); err != nil {
		t.backend.Fini()
		return err
	}

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	// Re-enable auto-wrap after leaving the alt screen so the main buffer has it
	w.Write(csiAutoWrapOn)
	w.Flush()

	t.backend.Fini()
	t.finalized = true
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int, error) {
	return t.backend.Size()
}

// ColorMode returns the output color mode
func (t *termImpl) ColorMode() ColorMode {
	return t.output.colorMode
}

// Flush writes cell buffer to terminal
// A frame whose size no longer matches the terminal is dropped to avoid resize corruption
func (t *termImpl) Flush(cells []Cell, width, height int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	if currW, currH, err := t.backend.Size(); err == nil && (currW != width || currH != height) {
		return nil
	}

	return t.output.flush(cells, width, height)
}

// Clear fills screen with background color
func (t *termImpl) Clear(bg RGB) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return nil
	}

	return t.output.clear(bg)
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
