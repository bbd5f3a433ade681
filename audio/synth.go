package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/termrain/constant"
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// sweep is a sine whose frequency glides linearly from start to end
type sweep struct {
	start, end float64
	phase      float64
	position   int
	total      int
	rate       beep.SampleRate
}

// NewSweep creates a gliding sine of the given duration
func NewSweep(start, end float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{start: start, end: end, total: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(s.position) / float64(s.total)
		freq := s.start + (s.end-s.start)*progress
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies a linear attack followed by either a linear release or an exponential decay
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
	// decay > 0 selects exponential decay with this time constant in samples
	decay float64
}

// NewEnvelope shapes s with linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

// NewDecay shapes s with linear attack then exp(-t/tau) decay, truncated at duration
func NewDecay(s beep.Streamer, duration, attack, tau time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		total:    rate.N(duration),
		decay:    float64(rate.N(tau)),
	}
}

func (e *envelope) gain() float64 {
	if e.position < e.attack {
		return float64(e.position) / float64(e.attack)
	}
	if e.decay > 0 {
		return math.Exp(-float64(e.position-e.attack) / e.decay)
	}
	releaseStart := e.total - e.release
	if e.release > 0 && e.position >= releaseStart {
		return float64(e.total-e.position) / float64(e.release)
	}
	return 1
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remaining := e.total - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain()
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero means silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateDripSound is a rising sine blip with a fast exponential tail
func CreateDripSound(rate beep.SampleRate) beep.Streamer {
	body := NewSweep(constant.DripStartFreq, constant.DripEndFreq, constant.DripSoundDuration, rate)
	// Octave overtone gives the plink
	ring := NewSweep(2*constant.DripStartFreq, 2*constant.DripEndFreq, constant.DripSoundDuration, rate)

	mixed := beep.Mix(
		newVolume(body, 0.8),
		newVolume(ring, 0.2),
	)
	return NewDecay(mixed, constant.DripSoundDuration, constant.DripSoundAttack, constant.DripDecayRate, rate)
}

// CreateCarveSound is a short soft tick
func CreateCarveSound(rate beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, constant.CarveFreq)
	if err != nil {
		return nil, fmt.Errorf("carve tone: %w", err)
	}
	tone := beep.Take(rate.N(constant.CarveSoundDuration), sine)
	return NewEnvelope(tone, constant.CarveSoundDuration, constant.CarveSoundAttack, constant.CarveSoundRelease, rate), nil
}

// synthesize returns the streamer for st at unity gain
func synthesize(st SoundType, rate beep.SampleRate) (beep.Streamer, error) {
	switch st {
	case SoundDrip:
		return CreateDripSound(rate), nil
	case SoundCarve:
		return CreateCarveSound(rate)
	default:
		return nil, fmt.Errorf("unknown sound type %d", st)
	}
}

// renderMono drains s into a mono buffer using the left channel
func renderMono(s beep.Streamer) floatBuffer {
	var out floatBuffer
	chunk := make([][2]float64, 512)
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			out = append(out, chunk[i][0])
		}
		if !ok || n == 0 {
			return out
		}
	}
}
