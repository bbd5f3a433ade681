package audio

import "errors"

// SoundType identifies a synthesized sound
type SoundType int

const (
	// SoundDrip plays when a rain drop leaves the bottom of the screen
	SoundDrip SoundType = iota
	// SoundCarve plays when the explorer carves a cell
	SoundCarve

	soundTypeCount
)

// String returns the flag name of the sound
func (st SoundType) String() string {
	switch st {
	case SoundDrip:
		return "drip"
	case SoundCarve:
		return "carve"
	default:
		return "unknown"
	}
}

// BackendType identifies the audio backend
type BackendType int

const (
	BackendPulse BackendType = iota
	BackendPipeWire
	BackendALSA
	BackendSoX
	BackendFFplay
	BackendOSS
)

// BackendConfig describes a CLI audio backend
type BackendConfig struct {
	Type BackendType
	Name string
	Path string
	Args []string
}

// Sentinel errors
var (
	ErrNoAudioBackend = errors.New("no compatible audio backend found")
	ErrPipeClosed     = errors.New("audio pipe closed")
	ErrAlreadyRunning = errors.New("audio engine already running")
)
