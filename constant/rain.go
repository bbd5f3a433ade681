package constant

import "time"

// Rain defaults
const (
	// RainTickInterval is the frame period
	RainTickInterval = 100 * time.Millisecond

	// RainFadeDepth is the number of trail frames kept; the oldest renders as erase
	RainFadeDepth = 5

	// RainMaxFallPeriod bounds the per-drop fall cadence, sampled in [1, RainMaxFallPeriod]
	RainMaxFallPeriod = 9

	// RainMaxGlyphPeriod bounds the glyph resample cadence, 0 disables mutation
	RainMaxGlyphPeriod = 8

	// RainDensity is the target live drop count per grid column
	RainDensity = 0.7

	// RainSpawnRate caps new drops per frame
	RainSpawnRate = 3

	// RainInitialDrops are spawned before the first frame
	RainInitialDrops = 3
)

// Validation ranges
const (
	RainMinFadeDepth  = 1
	RainMaxFadeDepth  = 64
	RainMaxDensity    = 10.0
	RainMinFPS        = 1
	RainMaxFPS        = 120
	RainMaxCadence    = 1000
	RainMaxSpawnRate  = 1000
	RainMaxInitialPop = 100000
)

// Explorer defaults
const (
	// ExplorerTickInterval is the per-step period of the maze walk
	ExplorerTickInterval = 5 * time.Millisecond
)
