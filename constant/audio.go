package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate    = 44100
	AudioChannels      = 2
	AudioBitDepth      = 16
	AudioBytesPerFrame = AudioChannels * (AudioBitDepth / 8) // 4 bytes
)

// Audio Engine Timing
const (
	// AudioBufferDuration determines latency and mixer tick rate
	AudioBufferDuration = 50 * time.Millisecond

	// AudioBufferSamples is frames per mixer tick at 44.1kHz
	AudioBufferSamples = (AudioSampleRate * 50) / 1000 // 2205

	// AudioQueueSize bounds pending play requests; overflow is counted as dropped
	AudioQueueSize = 32

	// AudioMaxVoices caps simultaneously mixed sounds
	AudioMaxVoices = 8

	// AudioDefaultVolume is the master volume when -sound is enabled
	AudioDefaultVolume = 0.5
)

// Drip Sound
const (
	DripSoundDuration = 120 * time.Millisecond
	DripSoundAttack   = 2 * time.Millisecond
	DripStartFreq     = 600.0 // Hz
	DripEndFreq       = 1400.0
	DripDecayRate     = 30 * time.Millisecond
)

// Carve Sound (explorer step)
const (
	CarveSoundDuration = 25 * time.Millisecond
	CarveSoundAttack   = 1 * time.Millisecond
	CarveSoundRelease  = 15 * time.Millisecond
	CarveFreq          = 220.0
)
