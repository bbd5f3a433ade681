package audio

import "github.com/lixenwraith/termrain/constant"

// Config holds audio engine settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	Volumes      map[SoundType]float64
}

// DefaultConfig returns a disabled config at the default volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      false,
		MasterVolume: constant.AudioDefaultVolume,
		SampleRate:   constant.AudioSampleRate,
		Volumes: map[SoundType]float64{
			SoundDrip:  0.6,
			SoundCarve: 0.3,
		},
	}
}

// volumeFor returns master volume scaled by the per-sound volume, clamped to [0,1]
func (c *Config) volumeFor(st SoundType) float64 {
	vol := c.MasterVolume
	if v, ok := c.Volumes[st]; ok {
		vol *= v
	}
	return clampUnit(vol)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
