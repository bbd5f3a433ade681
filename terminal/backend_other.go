//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import "errors"

var errUnsupported = errors.New("ANSI backend is not supported on this platform; use -backend tcell")

type unsupportedBackend struct{}

func newBackend() Backend { return unsupportedBackend{} }

func (unsupportedBackend) Init() error                 { return errUnsupported }
func (unsupportedBackend) Fini()                       {}
func (unsupportedBackend) Size() (int, int, error)     { return 0, 0, errUnsupported }
func (unsupportedBackend) Write(p []byte) (int, error) { return 0, errUnsupported }

func resetTerminalMode() {}
