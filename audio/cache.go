package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// soundCache stores pre-rendered unity-gain buffers
type soundCache struct {
	mu    sync.RWMutex
	rate  beep.SampleRate
	store [soundTypeCount]floatBuffer
	ready [soundTypeCount]bool
}

func newSoundCache(rate beep.SampleRate) *soundCache {
	return &soundCache{rate: rate}
}

// get returns the cached buffer or renders it on demand; nil for unknown types
func (c *soundCache) get(st SoundType) floatBuffer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[st] {
		buf := c.store[st]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready[st] {
		return c.store[st]
	}

	var buf floatBuffer
	if s, err := synthesize(st, c.rate); err == nil {
		buf = renderMono(s)
	}
	c.store[st] = buf
	c.ready[st] = true
	return buf
}

// preload renders every sound so the mixer never synthesizes on its tick
func (c *soundCache) preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		c.get(st)
	}
}
