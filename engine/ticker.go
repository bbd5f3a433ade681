package engine

import "time"

// Ticker delivers frame boundaries
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker for the given period
type TickerFactory func(d time.Duration) Ticker

// timeTicker wraps time.Ticker; late ticks are dropped, so a slow frame never queues a burst
type timeTicker struct {
	t *time.Ticker
}

// NewTimeTicker is the wall-clock TickerFactory
func NewTimeTicker(d time.Duration) Ticker {
	return &timeTicker{t: time.NewTicker(d)}
}

func (t *timeTicker) C() <-chan time.Time { return t.t.C }
func (t *timeTicker) Stop()               { t.t.Stop() }
