package rain

import (
	"github.com/lixenwraith/termrain/glyph"
	"github.com/lixenwraith/termrain/vmath"
)

// Pool owns the live drops and the spawn policy
type Pool struct {
	drops   []Drop
	nextID  uint64
	palette *glyph.Palette
	rng     *vmath.FastRand

	maxFallPeriod  int
	maxGlyphPeriod int
	spawnRate      int
}

// NewPool creates an empty pool sampling glyphs from palette
func NewPool(palette *glyph.Palette, rng *vmath.FastRand, maxFallPeriod, maxGlyphPeriod, spawnRate int) *Pool {
	return &Pool{
		palette:        palette,
		rng:            rng,
		maxFallPeriod:  max(maxFallPeriod, 1),
		maxGlyphPeriod: max(maxGlyphPeriod, 0),
		spawnRate:      spawnRate,
	}
}

// Len returns the live drop count
func (p *Pool) Len() int {
	return len(p.drops)
}

// Drops returns a copy of the live drops in spawn order
func (p *Pool) Drops() []Drop {
	out := make([]Drop, len(p.drops))
	copy(out, p.drops)
	return out
}

// Each visits live drops in spawn order
func (p *Pool) Each(fn func(d *Drop)) {
	for i := range p.drops {
		fn(&p.drops[i])
	}
}

// Insert adds a prepared drop, assigning its ID
// Zero cadences are normalized: FallPeriod to 1, GlyphPeriod stays disabled
func (p *Pool) Insert(d Drop) uint64 {
	p.nextID++
	d.ID = p.nextID
	if d.FallPeriod < 1 {
		d.FallPeriod = 1
	}
	if d.GlyphPeriod < 0 {
		d.GlyphPeriod = 0
	}
	if d.Glyph == "" {
		d.Glyph = p.palette.Pick(p.rng)
	}
	p.drops = append(p.drops, d)
	return d.ID
}

// spawn creates one drop at row 0 in a random column
func (p *Pool) spawn(width int) {
	d := Drop{
		Col:        p.rng.Intn(width),
		Row:        0,
		Glyph:      p.palette.Pick(p.rng),
		FallPeriod: p.rng.Range(1, p.maxFallPeriod),
	}
	if p.maxGlyphPeriod > 0 {
		d.GlyphPeriod = p.rng.Range(1, p.maxGlyphPeriod)
	}
	p.Insert(d)
}

// SpawnInitial creates count drops at row 0 with random columns and cadences
func (p *Pool) SpawnInitial(count, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		p.spawn(width)
	}
}

// AdvanceAll snapshots every drop at its pre-advance state, then applies fall and glyph cadences
// Drops that do not move this frame are still snapshotted so their trail stays continuous
func (p *Pool) AdvanceAll(frame uint64) []Snapshot {
	snaps := make([]Snapshot, len(p.drops))
	for i := range p.drops {
		d := &p.drops[i]
		snaps[i] = d.Snapshot()
		if d.fallsOn(frame) {
			d.Row++
		}
		if d.mutatesOn(frame) {
			d.Glyph = p.palette.Pick(p.rng)
		}
	}
	return snaps
}

// RetireOutOfBounds removes every drop with Row > height, returns how many were removed
func (p *Pool) RetireOutOfBounds(height int) int {
	kept := p.drops[:0]
	for _, d := range p.drops {
		if d.Row > height {
			continue
		}
		kept = append(kept, d)
	}
	retired := len(p.drops) - len(kept)
	clear(p.drops[len(kept):])
	p.drops = kept
	return retired
}

// TopUp spawns toward target, at most spawnRate drops per call, returns the number spawned
func (p *Pool) TopUp(target, width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}
	spawned := 0
	for len(p.drops) < target && spawned < p.spawnRate {
		p.spawn(width)
		spawned++
	}
	return spawned
}
