package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/termrain/constant"
	"github.com/lixenwraith/termrain/core"
	"github.com/lixenwraith/termrain/engine"
)

// activeSound tracks a playing sound instance
type activeSound struct {
	buffer floatBuffer
	pos    int
	volume float64
}

type playRequest struct {
	sound  SoundType
	volume float64
}

// Mixer sums active sounds and writes s16le stereo to the output every buffer period
type Mixer struct {
	output    io.Writer
	cache     *soundCache
	newTicker engine.TickerFactory

	playQueue chan playRequest
	stopChan  chan struct{}
	doneChan  chan struct{}
	stopped   atomic.Bool

	// Accessed only by mix goroutine
	active []activeSound

	statsMu sync.Mutex
	played  uint64
	dropped uint64

	errChan chan error
}

// NewMixer creates a mixer writing to out; a nil factory uses the wall clock
func NewMixer(out io.Writer, cache *soundCache, newTicker engine.TickerFactory) *Mixer {
	if newTicker == nil {
		newTicker = engine.NewTimeTicker
	}
	return &Mixer{
		output:    out,
		cache:     cache,
		newTicker: newTicker,
		playQueue: make(chan playRequest, constant.AudioQueueSize),
		stopChan:  make(chan struct{}),
		doneChan:  make(chan struct{}),
		active:    make([]activeSound, 0, constant.AudioMaxVoices),
		errChan:   make(chan error, 1),
	}
}

// Start begins the mixing loop
func (m *Mixer) Start() {
	core.Go(m.loop)
}

// Stop signals the mixer to halt
func (m *Mixer) Stop() {
	if m.stopped.CompareAndSwap(false, true) {
		close(m.stopChan)
	}
}

// Done is closed when the mixing loop has returned
func (m *Mixer) Done() <-chan struct{} {
	return m.doneChan
}

// Play queues a sound; a full queue counts as dropped
func (m *Mixer) Play(st SoundType, volume float64) {
	if m.stopped.Load() {
		return
	}

	select {
	case m.playQueue <- playRequest{sound: st, volume: volume}:
	default:
		m.countDropped()
	}
}

// Errors returns channel for pipe errors
func (m *Mixer) Errors() <-chan error {
	return m.errChan
}

func (m *Mixer) loop() {
	defer close(m.doneChan)

	ticker := m.newTicker(constant.AudioBufferDuration)
	defer ticker.Stop()

	samplesPerTick := constant.AudioBufferSamples
	mixBuf := make([]float64, samplesPerTick)
	outBytes := make([]byte, samplesPerTick*constant.AudioBytesPerFrame)

	for {
		select {
		case <-m.stopChan:
			return

		case req := <-m.playQueue:
			m.activate(req)
			m.drainQueue(constant.AudioQueueSize)

		case <-ticker.C():
			for i := range mixBuf {
				mixBuf[i] = 0
			}
			m.active = m.mixActive(mixBuf, samplesPerTick)
			floatToBytes(mixBuf, outBytes)

			// Silence is written too so the backend pipe stays open
			if _, err := m.output.Write(outBytes); err != nil {
				select {
				case m.errChan <- fmt.Errorf("%w: %v", ErrPipeClosed, err):
				default:
				}
				return
			}
		}
	}
}

// activate starts req unless the voice limit is reached
func (m *Mixer) activate(req playRequest) {
	buf := m.cache.get(req.sound)
	if len(buf) == 0 || req.volume <= 0 {
		return
	}
	if len(m.active) >= constant.AudioMaxVoices {
		m.countDropped()
		return
	}

	m.active = append(m.active, activeSound{buffer: buf, volume: req.volume})
	m.statsMu.Lock()
	m.played++
	m.statsMu.Unlock()
}

// drainQueue processes up to n additional queued requests
func (m *Mixer) drainQueue(n int) {
	for i := 0; i < n; i++ {
		select {
		case req := <-m.playQueue:
			m.activate(req)
		default:
			return
		}
	}
}

// mixActive mixes all active sounds into buf, returns remaining sounds
func (m *Mixer) mixActive(buf []float64, samples int) []activeSound {
	remaining := m.active[:0]

	for i := range m.active {
		s := &m.active[i]
		for j := 0; j < samples && s.pos < len(s.buffer); j++ {
			buf[j] += s.buffer[s.pos] * s.volume
			s.pos++
		}
		if s.pos < len(s.buffer) {
			remaining = append(remaining, *s)
		}
	}

	return remaining
}

func (m *Mixer) countDropped() {
	m.statsMu.Lock()
	m.dropped++
	m.statsMu.Unlock()
}

// floatToBytes converts float64 mono to interleaved stereo int16 LE bytes
// Soft limiting above 0.8 before hard clip
func floatToBytes(in []float64, out []byte) {
	for i, v := range in {
		if v > 0.8 {
			v = 0.8 + 0.2*(1.0-1.0/(1.0+(v-0.8)*5.0))
		} else if v < -0.8 {
			v = -0.8 - 0.2*(1.0-1.0/(1.0+(-v-0.8)*5.0))
		}

		if v > 1.0 {
			v = 1.0
		} else if v < -1.0 {
			v = -1.0
		}

		i16 := int16(v * 32767)
		idx := i * 4
		binary.LittleEndian.PutUint16(out[idx:], uint16(i16))   // L
		binary.LittleEndian.PutUint16(out[idx+2:], uint16(i16)) // R
	}
}

// Stats returns played and dropped counts
func (m *Mixer) Stats() (played, dropped uint64) {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return m.played, m.dropped
}
