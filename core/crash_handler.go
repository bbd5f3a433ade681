package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/termrain/terminal"
)

var (
	crashMu       sync.Mutex
	crashTerminal terminal.Terminal
	crashOut      io.Writer = os.Stderr
	exitFunc                = os.Exit
)

// SetCrashTerminal registers the terminal restored on panic; nil falls back to EmergencyReset
func SetCrashTerminal(t terminal.Terminal) {
	crashMu.Lock()
	crashTerminal = t
	crashMu.Unlock()
}

// HandleCrash restores the terminal, prints the panic with its stack and exits 1
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	t := crashTerminal
	crashMu.Unlock()

	if t != nil {
		t.Fini()
	} else {
		terminal.EmergencyReset(os.Stdout)
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())
	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	exitFunc(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use instead of the go keyword so a crash off the main loop still restores the terminal
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
