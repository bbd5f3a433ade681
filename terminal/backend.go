package terminal

// Backend abstracts platform-specific terminal operations
type Backend interface {
	// Init enters raw mode
	Init() error
	// Fini restores the saved terminal mode
	Fini()

	// Size returns the current dimensions in cells
	Size() (width, height int, err error)

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)
}
