package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lixenwraith/termrain/constant"
	"github.com/lixenwraith/termrain/glyph"
	"github.com/lixenwraith/termrain/rain"
	"github.com/lixenwraith/termrain/render"
)

const (
	defaultRainInterval     = constant.RainTickInterval
	defaultExplorerInterval = constant.ExplorerTickInterval
)

// commonFlags are shared by every effect subcommand
type commonFlags struct {
	backend  string
	color    string
	theme    string
	fps      int
	interval time.Duration
	seed     uint64
	frames   uint64
	sound    bool
	volume   float64
	logPath  string
}

// rainFlags tune the rain simulation
type rainFlags struct {
	palette   string
	depth     int
	density   float64
	spawnRate int
	maxFall   int
	maxGlyph  int
	initial   int
	list      bool
}

func registerCommon(fs *flag.FlagSet, interval time.Duration) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.backend, "backend", "ansi", "Terminal backend: ansi, tcell")
	fs.StringVar(&c.color, "color", "auto", "Color mode: auto, truecolor, 256")
	fs.StringVar(&c.theme, "theme", render.DefaultTheme, "Color theme: "+strings.Join(render.ThemeNames(), ", "))
	fs.IntVar(&c.fps, "fps", 0, "Frames per second, overrides -interval when set")
	fs.DurationVar(&c.interval, "interval", interval, "Frame interval")
	fs.Uint64Var(&c.seed, "seed", 0, "Random seed, 0 seeds from the clock")
	fs.Uint64Var(&c.frames, "frames", 0, "Stop after this many frames, 0 runs until quit")
	fs.BoolVar(&c.sound, "sound", false, "Play sounds through a detected audio player")
	fs.Float64Var(&c.volume, "volume", constant.AudioDefaultVolume, "Master volume (0.0-1.0)")
	fs.StringVar(&c.logPath, "log", "", "Write a log to this file")
	return c
}

func registerRain(fs *flag.FlagSet) *rainFlags {
	def := rain.DefaultConfig()
	r := &rainFlags{}
	fs.StringVar(&r.palette, "palette", glyph.DefaultName, "Named glyph set or a custom string of glyphs")
	fs.IntVar(&r.depth, "depth", def.FadeDepth, "Trail fade depth in frames")
	fs.Float64Var(&r.density, "density", def.Density, "Target live drops per column")
	fs.IntVar(&r.spawnRate, "spawn-rate", def.SpawnRate, "Maximum drops spawned per frame")
	fs.IntVar(&r.maxFall, "max-fall", def.MaxFallPeriod, "Slowest fall period in frames")
	fs.IntVar(&r.maxGlyph, "max-glyph", def.MaxGlyphPeriod, "Slowest glyph change period in frames, 0 disables")
	fs.IntVar(&r.initial, "initial", def.InitialDrops, "Drops spawned on the first frame")
	fs.BoolVar(&r.list, "list", false, "List palettes and themes, then exit")
	return r
}

// rainConfig applies the flags over the defaults
func (r *rainFlags) rainConfig(seed uint64) rain.Config {
	cfg := rain.DefaultConfig()
	cfg.FadeDepth = r.depth
	cfg.Density = r.density
	cfg.SpawnRate = r.spawnRate
	cfg.MaxFallPeriod = r.maxFall
	cfg.MaxGlyphPeriod = r.maxGlyph
	cfg.InitialDrops = r.initial
	cfg.Seed = seed
	return cfg
}

// frameInterval resolves -fps against -interval
func (c *commonFlags) frameInterval() (time.Duration, error) {
	if c.fps == 0 {
		if c.interval <= 0 {
			return 0, fmt.Errorf("interval must be positive: got %v", c.interval)
		}
		return c.interval, nil
	}
	if c.fps < constant.RainMinFPS || c.fps > constant.RainMaxFPS {
		return 0, fmt.Errorf("fps out of range (%d-%d): got %d", constant.RainMinFPS, constant.RainMaxFPS, c.fps)
	}
	return time.Second / time.Duration(c.fps), nil
}

// resolveSeed returns the flag seed, or a clock-derived one when unset
func (c *commonFlags) resolveSeed(now func() time.Time) uint64 {
	if c.seed != 0 {
		return c.seed
	}
	return uint64(now().UnixNano())
}

func listChoices(w io.Writer) error {
	fmt.Fprintf(w, "palettes: %s\n", strings.Join(glyph.Names(), ", "))
	fmt.Fprintf(w, "themes:   %s\n", strings.Join(render.ThemeNames(), ", "))
	return nil
}
