package rain

import (
	"fmt"
	"sync/atomic"

	"github.com/lixenwraith/termrain/glyph"
	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/status"
	"github.com/lixenwraith/termrain/terminal"
	"github.com/lixenwraith/termrain/vmath"
)

// Flusher publishes the composited grid, implemented by render.Renderer
type Flusher interface {
	Flush() error
}

// FrameStats reports what one Step did
type FrameStats struct {
	Frame    uint64
	Live     int
	Retired  int
	Spawned  int
	Occluded int
}

// Simulation owns the drop pool, trail ledger and grid of one rain effect
type Simulation struct {
	cfg      Config
	width    int
	height   int
	target   int
	pool     *Pool
	ledger   *Ledger
	grid     *render.Grid
	gradient *render.Gradient
	out      Flusher

	// owners[row*width+col] is the live drop ID painted there plus one, 0 when free
	owners []uint64

	stats FrameStats

	// Cached metric pointers, nil when no registry is attached
	statFrames  *atomic.Int64
	statLive    *atomic.Int64
	statSpawned *atomic.Int64
	statRetired *atomic.Int64
}

// NewSimulation validates cfg and geometry, then spawns the initial drops
func NewSimulation(cfg Config, palette *glyph.Palette, theme render.Theme, grid *render.Grid, out Flusher) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if grid == nil || grid.Cols() <= 0 || grid.Rows() <= 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and column", ErrInvalidGeometry)
	}
	if palette == nil || palette.Len() == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	}

	w, h := grid.Cols(), grid.Rows()
	rng := vmath.NewFastRand(cfg.Seed)
	s := &Simulation{
		cfg:      cfg,
		width:    w,
		height:   h,
		target:   cfg.Target(w),
		pool:     NewPool(palette, rng, cfg.MaxFallPeriod, cfg.MaxGlyphPeriod, cfg.SpawnRate),
		ledger:   NewLedger(cfg.FadeDepth),
		grid:     grid,
		gradient: render.NewGradient(cfg.FadeDepth, theme, render.RGBBlack),
		out:      out,
		owners:   make([]uint64, w*h),
	}
	s.pool.SpawnInitial(cfg.InitialDrops, w, h)
	return s, nil
}

// AttachRegistry publishes per-frame counters to reg
func (s *Simulation) AttachRegistry(reg *status.Registry) {
	s.statFrames = reg.Ints.Get("rain.frames")
	s.statLive = reg.Ints.Get("rain.live")
	s.statSpawned = reg.Ints.Get("rain.spawned")
	s.statRetired = reg.Ints.Get("rain.retired")
}

func (s *Simulation) Pool() *Pool                { return s.pool }
func (s *Simulation) Ledger() *Ledger            { return s.ledger }
func (s *Simulation) Grid() *render.Grid         { return s.grid }
func (s *Simulation) Gradient() *render.Gradient { return s.gradient }
func (s *Simulation) Target() int                { return s.target }
func (s *Simulation) LastStats() FrameStats      { return s.stats }
func (s *Simulation) Size() (width, height int)  { return s.width, s.height }

// Step runs one frame: advance, record, retire, occlude, paint trails, paint heads, top up, flush
// Only the flush can fail
func (s *Simulation) Step(frame uint64) error {
	snaps := s.pool.AdvanceAll(frame)
	s.ledger.Record(snaps)
	s.ledger.EvictIfFull(s.cfg.FadeDepth)

	retired := s.pool.RetireOutOfBounds(s.height)

	s.rebuildOwners()
	occluded := s.ledger.Occlude(s.ownerAt)

	s.ledger.EachOldestFirst(func(level int, snap Snapshot) {
		if fg, ok := s.gradient.Color(level); ok {
			s.grid.Paint(snap.Row, snap.Col, snap.Glyph, fg)
		} else {
			s.grid.Erase(snap.Row, snap.Col)
		}
	})

	head, _ := s.gradient.Color(0)
	s.pool.Each(func(d *Drop) {
		s.grid.PaintCell(d.Row, d.Col, render.Cell{Glyph: d.Glyph, Fg: head, Attrs: terminal.AttrBold})
	})

	spawned := s.pool.TopUp(s.target, s.width, s.height)

	s.stats = FrameStats{
		Frame:    frame,
		Live:     s.pool.Len(),
		Retired:  retired,
		Spawned:  spawned,
		Occluded: occluded,
	}
	s.publish()

	if s.out == nil {
		return nil
	}
	return s.out.Flush()
}

// rebuildOwners records which live drop holds each on-screen cell, later drops win
func (s *Simulation) rebuildOwners() {
	clear(s.owners)
	s.pool.Each(func(d *Drop) {
		if d.Row < 0 || d.Row >= s.height || d.Col < 0 || d.Col >= s.width {
			return
		}
		s.owners[d.Row*s.width+d.Col] = d.ID + 1
	})
}

func (s *Simulation) ownerAt(col, row int) (uint64, bool) {
	if row < 0 || row >= s.height || col < 0 || col >= s.width {
		return 0, false
	}
	v := s.owners[row*s.width+col]
	if v == 0 {
		return 0, false
	}
	return v - 1, true
}

func (s *Simulation) publish() {
	if s.statFrames == nil {
		return
	}
	s.statFrames.Add(1)
	s.statLive.Store(int64(s.stats.Live))
	s.statSpawned.Add(int64(s.stats.Spawned))
	s.statRetired.Add(int64(s.stats.Retired))
}
