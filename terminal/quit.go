package terminal

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"
)

const (
	byteEsc   = 0x1b
	byteCtrlC = 0x03

	quitPollMillis = 50
)

// WatchQuit blocks until a quit key (q, Esc or Ctrl-C) arrives, then calls onQuit
// Raw mode disables ISIG, so Ctrl-C is seen here rather than as SIGINT
// A tcell terminal is polled for screen events; any other terminal reads raw bytes from in
// Returns without calling onQuit when input ends or ctx is done
// An in with a file descriptor is polled, so cancelling ctx also ends a pending wait on stdin
func WatchQuit(ctx context.Context, t Terminal, in io.Reader, onQuit func()) {
	if tt, ok := t.(*TcellTerminal); ok {
		stop := context.AfterFunc(ctx, func() {
			_ = tt.screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
		defer stop()
		for ctx.Err() == nil {
			ev := tt.screen.PollEvent()
			if ev == nil {
				return
			}
			if isQuitEvent(ev) && ctx.Err() == nil {
				onQuit()
				return
			}
		}
		return
	}

	f, pollable := in.(interface{ Fd() uintptr })
	buf := make([]byte, 64)
	for ctx.Err() == nil {
		if pollable {
			ready, err := waitReadable(ctx, f.Fd())
			if err != nil || !ready {
				return
			}
		}
		n, err := in.Read(buf)
		if n > 0 && quitIn(buf[:n]) {
			onQuit()
			return
		}
		if err != nil {
			return
		}
	}
}

// quitIn scans one read chunk; a lone ESC at chunk end is a keypress, ESC followed by [ or O starts a sequence
func quitIn(data []byte) bool {
	for i := 0; i < len(data); i++ {
		switch b := data[i]; {
		case b == 'q' || b == 'Q' || b == byteCtrlC:
			return true
		case b == byteEsc:
			if i+1 >= len(data) {
				return true
			}
			if next := data[i+1]; next == '[' || next == 'O' {
				i = skipSequence(data, i+2)
			}
		}
	}
	return false
}

// skipSequence returns the index of the final byte of a CSI/SS3 sequence starting at i
func skipSequence(data []byte, i int) int {
	for ; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7e {
			return i
		}
	}
	return len(data)
}

func isQuitEvent(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return key.Rune() == 'q' || key.Rune() == 'Q'
	}
	return false
}
