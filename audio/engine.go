package audio

import (
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/termrain/core"
	"github.com/lixenwraith/termrain/engine"
	"github.com/lixenwraith/termrain/status"
)

// Engine plays synthesized sounds through a piped CLI backend
// Missing or failing backends put the engine in silent mode; Play then reports false
type Engine struct {
	config *Config
	cache  *soundCache
	mixer  *Mixer
	logger *log.Logger

	detect    func() (*BackendConfig, error)
	newTicker engine.TickerFactory

	backend *BackendConfig
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	ossFile *os.File

	running    atomic.Bool
	silentMode atomic.Bool

	wg sync.WaitGroup
}

// NewEngine creates an engine; a nil cfg uses DefaultConfig and a nil logger discards
func NewEngine(cfg *Config, logger *log.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ae := &Engine{
		config:    cfg,
		cache:     newSoundCache(beep.SampleRate(cfg.SampleRate)),
		logger:    logger,
		detect:    DetectBackend,
		newTicker: engine.NewTimeTicker,
	}
	if cfg.Enabled {
		ae.cache.preload()
	}
	return ae
}

// Start launches the backend process and mixer; a disabled config or missing backend is not an error
func (ae *Engine) Start() error {
	if ae.running.Load() {
		return ErrAlreadyRunning
	}
	if !ae.config.Enabled {
		ae.goSilent("disabled")
		return nil
	}

	backend, err := ae.detect()
	if err != nil {
		ae.goSilent(err.Error())
		return nil
	}
	ae.backend = backend

	var writer io.Writer
	if backend.Type == BackendOSS {
		f, err := os.OpenFile(backend.Path, os.O_WRONLY, 0)
		if err != nil {
			ae.goSilent(err.Error())
			return nil
		}
		ae.ossFile = f
		writer = f
	} else {
		cmd := exec.Command(backend.Path, backend.Args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			ae.goSilent(err.Error())
			return nil
		}
		if err := cmd.Start(); err != nil {
			stdin.Close()
			ae.goSilent(err.Error())
			return nil
		}

		ae.cmd = cmd
		ae.stdin = stdin
		writer = stdin

		ae.wg.Add(1)
		core.Go(ae.monitorProcess)
	}

	ae.logger.Printf("audio: backend %s", backend.Name)
	ae.startMixer(writer)
	return nil
}

// startMixer runs the mixer against w and marks the engine running
func (ae *Engine) startMixer(w io.Writer) {
	ae.mixer = NewMixer(w, ae.cache, ae.newTicker)
	ae.mixer.Start()

	ae.wg.Add(1)
	core.Go(ae.monitorMixer)

	ae.running.Store(true)
}

func (ae *Engine) goSilent(reason string) {
	ae.logger.Printf("audio: silent mode: %s", reason)
	ae.silentMode.Store(true)
	ae.running.Store(true)
}

// monitorProcess watches for subprocess exit
func (ae *Engine) monitorProcess() {
	defer ae.wg.Done()

	err := ae.cmd.Wait()
	if err != nil && ae.running.Load() && !ae.silentMode.Load() {
		ae.logger.Printf("audio: backend exited: %v", err)
		ae.silentMode.Store(true)
	}
}

// monitorMixer watches for pipe errors
func (ae *Engine) monitorMixer() {
	defer ae.wg.Done()

	select {
	case err := <-ae.mixer.Errors():
		ae.logger.Printf("audio: %v", err)
		ae.silentMode.Store(true)
	case <-ae.mixer.Done():
	}
}

// Stop terminates the mixer and backend; safe to call more than once
func (ae *Engine) Stop() {
	if !ae.running.CompareAndSwap(true, false) {
		return
	}

	if ae.mixer != nil {
		ae.mixer.Stop()
	}
	if ae.stdin != nil {
		ae.stdin.Close()
	}
	if ae.ossFile != nil {
		ae.ossFile.Close()
	}
	if ae.cmd != nil && ae.cmd.Process != nil {
		ae.cmd.Process.Kill()
	}

	ae.wg.Wait()
}

// Play queues st at its configured volume; false when nothing will be heard
func (ae *Engine) Play(st SoundType) bool {
	if !ae.IsEnabled() || ae.mixer == nil {
		return false
	}
	ae.mixer.Play(st, ae.config.volumeFor(st))
	return true
}

// IsEnabled returns true if running with a live backend
func (ae *Engine) IsEnabled() bool {
	return ae.running.Load() && !ae.silentMode.Load()
}

// IsRunning returns true if engine is running (even in silent mode)
func (ae *Engine) IsRunning() bool {
	return ae.running.Load()
}

// Backend returns the detected backend, nil in silent mode
func (ae *Engine) Backend() *BackendConfig {
	return ae.backend
}

// Stats returns played and dropped counts
func (ae *Engine) Stats() (played, dropped uint64) {
	if ae.mixer == nil {
		return 0, 0
	}
	return ae.mixer.Stats()
}

// Publish writes audio counters to reg
func (ae *Engine) Publish(reg *status.Registry) {
	played, dropped := ae.Stats()
	reg.Ints.Get("audio.played").Store(int64(played))
	reg.Ints.Get("audio.dropped").Store(int64(dropped))
	reg.Bools.Get("audio.silent").Store(ae.silentMode.Load())
}
