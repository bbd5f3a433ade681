package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/termrain/status"
)

// Stepper computes and presents one frame
type Stepper interface {
	Step(frame uint64) error
}

// StepFunc adapts a function to Stepper
type StepFunc func(frame uint64) error

func (f StepFunc) Step(frame uint64) error { return f(frame) }

// Scheduler drives a Stepper on a fixed tick with one wait per frame
type Scheduler struct {
	interval  time.Duration
	maxFrames uint64

	newTicker TickerFactory
	clock     TimeProvider
	logger    *log.Logger

	frames atomic.Uint64

	// Cached metric pointers, nil without a registry
	statFrames   *atomic.Int64
	statOverruns *atomic.Int64
	statLastCost *atomic.Int64
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithMaxFrames ends Run after n frames, 0 runs until the context ends
func WithMaxFrames(n uint64) Option {
	return func(s *Scheduler) { s.maxFrames = n }
}

// WithTicker replaces the time.Ticker based frame clock
func WithTicker(f TickerFactory) Option {
	return func(s *Scheduler) { s.newTicker = f }
}

// WithTimeProvider replaces the clock used to measure frame cost
func WithTimeProvider(p TimeProvider) Option {
	return func(s *Scheduler) { s.clock = p }
}

// WithLogger sets the logger for overrun reports
func WithLogger(l *log.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithRegistry publishes engine.frames, engine.overruns and engine.frame_cost_us
func WithRegistry(reg *status.Registry) Option {
	return func(s *Scheduler) {
		s.statFrames = reg.Ints.Get("engine.frames")
		s.statOverruns = reg.Ints.Get("engine.overruns")
		s.statLastCost = reg.Ints.Get("engine.frame_cost_us")
	}
}

// NewScheduler creates a scheduler ticking every interval
func NewScheduler(interval time.Duration, opts ...Option) *Scheduler {
	s := &Scheduler{
		interval:  interval,
		newTicker: NewTimeTicker,
		clock:     NewMonotonicTimeProvider(),
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Frames returns the number of completed frames
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Run steps frame 0, 1, 2, ... waiting one tick between frames
// A step error ends the run and is returned; context cancellation ends it with nil
func (s *Scheduler) Run(ctx context.Context, st Stepper) error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler: non-positive interval %v", s.interval)
	}

	ticker := s.newTicker(s.interval)
	defer ticker.Stop()

	for frame := uint64(0); ; frame++ {
		if ctx.Err() != nil {
			return nil
		}

		start := s.clock.Now()
		if err := st.Step(frame); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		s.account(frame, s.clock.Now().Sub(start))

		if s.maxFrames > 0 && frame+1 >= s.maxFrames {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
		}
	}
}

// account records frame completion and cost
func (s *Scheduler) account(frame uint64, cost time.Duration) {
	s.frames.Add(1)
	overrun := cost > s.interval
	if overrun {
		s.logger.Printf("frame %d took %v, over the %v tick", frame, cost, s.interval)
	}

	if s.statFrames == nil {
		return
	}
	s.statFrames.Add(1)
	s.statLastCost.Store(cost.Microseconds())
	if overrun {
		s.statOverruns.Add(1)
	}
}
