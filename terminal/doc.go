// Package terminal provides direct ANSI terminal control for full-screen effects.
//
// Features:
//   - True color (24-bit) and 256-color palette output
//   - Double-buffered output with cell-level diffing
//   - Wide glyph support (cells carry grapheme clusters, continuation cells are skipped)
//   - tcell-backed alternative implementation of the same Terminal interface
//   - Clean terminal restoration on exit/panic
//   - Quit key detection while in raw mode (q, Esc, Ctrl-C)
//
// The ANSI backend bypasses terminfo/termcap entirely, emitting direct sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
