package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/lixenwraith/termrain/audio"
	"github.com/lixenwraith/termrain/core"
	"github.com/lixenwraith/termrain/engine"
	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/status"
	"github.com/lixenwraith/termrain/terminal"
)

// session owns the terminal, renderer and ambient services of one effect run
type session struct {
	term     terminal.Terminal
	grid     *render.Grid
	renderer *render.Renderer
	logger   *log.Logger
	registry *status.Registry
	sound    *audio.Engine
	interval time.Duration
	frames   uint64

	closers []func()
}

// openLogger writes to path, or discards when path is empty
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return log.New(f, "termrain: ", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}

func newTerminal(backend string, mode terminal.ColorMode) (terminal.Terminal, error) {
	switch backend {
	case "", "ansi":
		return terminal.New(mode), nil
	case "tcell":
		t, err := terminal.NewTcell(mode)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want ansi or tcell)", backend)
	}
}

// openSession validates timing, opens the log and terminal, and sizes a grid in glyphWidth units
func openSession(c *commonFlags, glyphWidth int) (*session, error) {
	interval, err := c.frameInterval()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := openLogger(c.logPath)
	if err != nil {
		return nil, err
	}
	s := &session{
		logger:   logger,
		registry: status.NewRegistry(),
		interval: interval,
		frames:   c.frames,
		closers:  []func(){closeLog},
	}

	mode := terminal.ParseColorMode(c.color)
	term, err := newTerminal(c.backend, mode)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := term.Init(); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	s.term = term
	core.SetCrashTerminal(term)
	s.closers = append(s.closers, func() {
		term.Fini()
		core.SetCrashTerminal(nil)
	})

	width, height, err := term.Size()
	if err != nil {
		s.Close()
		return nil, err
	}
	cols := width / glyphWidth
	if cols <= 0 || height <= 0 {
		s.Close()
		return nil, fmt.Errorf("terminal too small: %dx%d", width, height)
	}
	logger.Printf("terminal %dx%d, %s color, grid %dx%d", width, height, mode, cols, height)

	if err := term.Clear(render.RGBBlack); err != nil {
		s.Close()
		return nil, err
	}
	s.grid = render.NewGrid(cols, height)
	s.renderer = render.NewRenderer(term, s.grid, glyphWidth, width, height, render.RGBBlack)

	cfg := audio.DefaultConfig()
	cfg.Enabled = c.sound
	cfg.MasterVolume = c.volume
	s.sound = audio.NewEngine(cfg, logger)
	if err := s.sound.Start(); err != nil {
		logger.Printf("audio: %v", err)
	}
	s.closers = append(s.closers, s.sound.Stop)

	return s, nil
}

// run drives st until the frame limit, a quit key, a signal or a frame error
func (s *session) run(ctx context.Context, st engine.Stepper) error {
	ctx, cancel := context.WithCancel(ctx)
	watched := make(chan struct{})
	core.Go(func() {
		defer close(watched)
		terminal.WatchQuit(ctx, s.term, os.Stdin, cancel)
	})
	defer func() {
		cancel()
		<-watched
	}()

	sched := engine.NewScheduler(s.interval,
		engine.WithMaxFrames(s.frames),
		engine.WithLogger(s.logger),
		engine.WithRegistry(s.registry),
	)
	err := sched.Run(ctx, st)

	s.sound.Publish(s.registry)
	s.logger.Printf("exit after %d frames: %s", sched.Frames(), s.registry.Summary())
	return err
}

// Close releases resources in reverse order; the terminal is restored before the log closes
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
