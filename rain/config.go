package rain

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/termrain/constant"
)

var (
	ErrInvalidGeometry = errors.New("invalid grid geometry")
	ErrInvalidConfig   = errors.New("invalid rain configuration")
)

// Config holds the tunables of a rain simulation
type Config struct {
	FadeDepth      int     // Trail frames kept, level FadeDepth erases
	MaxFallPeriod  int     // Fall cadence sampled in [1, MaxFallPeriod]
	MaxGlyphPeriod int     // Glyph resample cadence sampled in [1, MaxGlyphPeriod], 0 disables
	Density        float64 // Target live drops per grid column
	SpawnRate      int     // Max drops spawned per frame
	InitialDrops   int     // Drops spawned at construction
	Seed           uint64  // RNG seed, 0 is remapped
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		FadeDepth:      constant.RainFadeDepth,
		MaxFallPeriod:  constant.RainMaxFallPeriod,
		MaxGlyphPeriod: constant.RainMaxGlyphPeriod,
		Density:        constant.RainDensity,
		SpawnRate:      constant.RainSpawnRate,
		InitialDrops:   constant.RainInitialDrops,
	}
}

// Validate checks ranges; errors wrap ErrInvalidConfig
func (c *Config) Validate() error {
	if c.FadeDepth < constant.RainMinFadeDepth || c.FadeDepth > constant.RainMaxFadeDepth {
		return fmt.Errorf("%w: fade depth out of range (%d-%d): got %d",
			ErrInvalidConfig, constant.RainMinFadeDepth, constant.RainMaxFadeDepth, c.FadeDepth)
	}
	if c.MaxFallPeriod < 1 || c.MaxFallPeriod > constant.RainMaxCadence {
		return fmt.Errorf("%w: fall period out of range (1-%d): got %d",
			ErrInvalidConfig, constant.RainMaxCadence, c.MaxFallPeriod)
	}
	if c.MaxGlyphPeriod < 0 || c.MaxGlyphPeriod > constant.RainMaxCadence {
		return fmt.Errorf("%w: glyph period out of range (0-%d): got %d",
			ErrInvalidConfig, constant.RainMaxCadence, c.MaxGlyphPeriod)
	}
	if math.IsNaN(c.Density) || c.Density < 0 || c.Density > constant.RainMaxDensity {
		return fmt.Errorf("%w: density out of range (0-%.1f): got %.2f",
			ErrInvalidConfig, constant.RainMaxDensity, c.Density)
	}
	if c.SpawnRate < 1 || c.SpawnRate > constant.RainMaxSpawnRate {
		return fmt.Errorf("%w: spawn rate out of range (1-%d): got %d",
			ErrInvalidConfig, constant.RainMaxSpawnRate, c.SpawnRate)
	}
	if c.InitialDrops < 0 || c.InitialDrops > constant.RainMaxInitialPop {
		return fmt.Errorf("%w: initial drops out of range (0-%d): got %d",
			ErrInvalidConfig, constant.RainMaxInitialPop, c.InitialDrops)
	}
	return nil
}

// Target is the live population for a grid of cols columns
func (c *Config) Target(cols int) int {
	return int(math.Round(c.Density * float64(cols)))
}
