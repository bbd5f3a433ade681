package rain

import (
	"errors"
	"testing"

	"github.com/lixenwraith/termrain/render"
	"github.com/lixenwraith/termrain/status"
	"github.com/lixenwraith/termrain/terminal"
)

func TestNewSimulationRejectsDegenerateGeometry(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
	}{
		{"Zero width", 0, 5},
		{"Zero height", 10, 0},
		{"Both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSimulation(DefaultConfig(), testPalette(t), testTheme(t), render.NewGrid(tt.cols, tt.rows), nil)
			if !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("Expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}

func TestNewSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FadeDepth = 0
	_, err := NewSimulation(cfg, testPalette(t), testTheme(t), render.NewGrid(10, 5), nil)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestScenarioSingleDropTrail(t *testing.T) {
	sim, out := newQuietSim(t, 10, 5, 3)
	sim.Pool().Insert(Drop{Col: 3, Row: 0, Glyph: "A", FallPeriod: 1})

	if err := sim.Step(0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	d := sim.Pool().Drops()[0]
	if d.Row != 1 {
		t.Errorf("After frame 1: expected row 1, got %d", d.Row)
	}
	if sim.Ledger().Len() != 1 {
		t.Fatalf("After frame 1: expected 1 ledger entry, got %d", sim.Ledger().Len())
	}
	if s := sim.Ledger().Frame(1)[0]; s.Row != 0 || s.Col != 3 {
		t.Errorf("After frame 1: expected level 1 at (3,0), got %+v", s)
	}

	for frame := uint64(1); frame < 4; frame++ {
		if err := sim.Step(frame); err != nil {
			t.Fatalf("Step %d failed: %v", frame, err)
		}
	}

	d = sim.Pool().Drops()[0]
	if d.Row != 4 {
		t.Errorf("After frame 4: expected row 4, got %d", d.Row)
	}
	if sim.Ledger().Len() != 3 {
		t.Fatalf("After frame 4: expected 3 ledger entries, got %d", sim.Ledger().Len())
	}
	for level, wantRow := range map[int]int{1: 3, 2: 2, 3: 1} {
		f := sim.Ledger().Frame(level)
		if len(f) != 1 || f[0].Row != wantRow {
			t.Errorf("After frame 4: level %d expected row %d, got %+v", level, wantRow, f)
		}
	}
	sim.Ledger().EachByLevel(func(_ int, s Snapshot) {
		if s.Row == 0 {
			t.Error("Row 0 entry should have been evicted")
		}
	})

	// Grid: head at row 4, visible trail at rows 3 and 2, rows 1 and 0 erased
	g := sim.Grid()
	head, _ := sim.Gradient().Color(0)
	if c, _ := g.At(4, 3); c.Glyph != "A" || c.Fg != head {
		t.Errorf("Expected head at row 4, got %+v", c)
	}
	for row, level := range map[int]int{3: 1, 2: 2} {
		want, _ := sim.Gradient().Color(level)
		if c, _ := g.At(row, 3); c.Glyph != "A" || c.Fg != want {
			t.Errorf("Row %d: expected trail level %d, got %+v", row, level, c)
		}
	}
	for _, row := range []int{0, 1} {
		if c, _ := g.At(row, 3); c.Glyph != "" {
			t.Errorf("Row %d: expected erased, got %+v", row, c)
		}
	}
	if out.calls != 4 {
		t.Errorf("Expected 4 flushes, got %d", out.calls)
	}
}

func TestScenarioRetireAtBottom(t *testing.T) {
	sim, _ := newQuietSim(t, 10, 5, 3)
	id := sim.Pool().Insert(Drop{Col: 2, Row: 5, Glyph: "Z", FallPeriod: 1})

	if err := sim.Step(0); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if sim.Pool().Len() != 0 {
		t.Fatalf("Expected drop retired, %d remain", sim.Pool().Len())
	}
	if st := sim.LastStats(); st.Retired != 1 {
		t.Errorf("Expected 1 retired, got %d", st.Retired)
	}

	// Only the trail pass still sees it, at increasing decay until evicted
	for frame := uint64(1); frame < 5; frame++ {
		level := 0
		sim.Ledger().EachByLevel(func(l int, s Snapshot) {
			if s.DropID == id {
				level = l
			}
		})
		wantLevel := int(frame)
		if wantLevel > 3 {
			wantLevel = 0
		}
		if level != wantLevel {
			t.Errorf("Before frame %d: expected trail level %d, got %d", frame, wantLevel, level)
		}
		if err := sim.Step(frame); err != nil {
			t.Fatalf("Step %d failed: %v", frame, err)
		}
		if sim.Pool().Len() != 0 {
			t.Fatalf("Retired drop resurrected at frame %d", frame)
		}
	}

	// The grid never held the out of range position
	for row := 0; row < 5; row++ {
		for col := 0; col < 10; col++ {
			if c, _ := sim.Grid().At(row, col); c.Glyph != "" {
				t.Errorf("Unexpected content at (%d,%d): %+v", row, col, c)
			}
		}
	}
}

func TestFadeDepthLevelAlwaysErases(t *testing.T) {
	for _, glyph := range []string{"A", "日", "❤️"} {
		sim, _ := newQuietSim(t, 4, 10, 2)
		sim.Pool().Insert(Drop{Col: 1, Row: 0, Glyph: glyph, FallPeriod: 1})

		// Frame 0 paints row 0 at level 1, frame 1 brings it to level 2 == depth
		for frame := uint64(0); frame < 2; frame++ {
			if err := sim.Step(frame); err != nil {
				t.Fatalf("Step failed: %v", err)
			}
		}
		if c, _ := sim.Grid().At(0, 1); c.Glyph != "" {
			t.Errorf("Glyph %q: expected erase at fade depth, got %+v", glyph, c)
		}
	}
}

func TestTopUpIdempotentInSimulation(t *testing.T) {
	cfg := quietConfig(3)
	cfg.Density = 0.5
	cfg.SpawnRate = 100
	sim, err := NewSimulation(cfg, testPalette(t), testTheme(t), render.NewGrid(10, 50), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}

	if n := sim.Pool().TopUp(sim.Target(), 10, 50); n != 5 {
		t.Fatalf("Expected 5 spawned to reach target, got %d", n)
	}
	before := sim.Pool().Drops()
	if n := sim.Pool().TopUp(sim.Target(), 10, 50); n != 0 {
		t.Errorf("Expected 0 spawned at target, got %d", n)
	}
	after := sim.Pool().Drops()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Drop %d mutated by idle TopUp", i)
		}
	}
}

func TestRowMonotonicAndRetireOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.Density = 1.5
	cfg.SpawnRate = 4
	const height = 12
	sim, err := NewSimulation(cfg, testPalette(t), testTheme(t), render.NewGrid(16, height), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}

	rows := make(map[uint64]int)
	retired := make(map[uint64]bool)

	for frame := uint64(0); frame < 400; frame++ {
		if err := sim.Step(frame); err != nil {
			t.Fatalf("Step failed: %v", err)
		}

		current := make(map[uint64]int)
		for _, d := range sim.Pool().Drops() {
			if d.Row > height {
				t.Fatalf("Frame %d: live drop %d at row %d past height", frame, d.ID, d.Row)
			}
			if retired[d.ID] {
				t.Fatalf("Frame %d: retired drop %d observed again", frame, d.ID)
			}
			if prev, ok := rows[d.ID]; ok {
				if delta := d.Row - prev; delta != 0 && delta != 1 {
					t.Fatalf("Frame %d: drop %d moved %d rows", frame, d.ID, delta)
				}
			}
			current[d.ID] = d.Row
		}
		for id := range rows {
			if _, ok := current[id]; !ok {
				retired[id] = true
			}
		}
		rows = current

		if sim.Ledger().Len() > cfg.FadeDepth {
			t.Fatalf("Frame %d: ledger length %d exceeds depth", frame, sim.Ledger().Len())
		}
	}

	if len(retired) == 0 {
		t.Error("Expected some drops to retire over 400 frames")
	}
}

func TestCompositingOrder(t *testing.T) {
	const cols, rows, depth = 4, 6, 4
	sim, _ := newQuietSim(t, cols, rows, depth)

	// Crowd a narrow grid with mixed cadences so trails overlap
	periods := []int{1, 2, 3, 1, 2, 1, 3, 2}
	for i, p := range periods {
		sim.Pool().Insert(Drop{Col: i % cols, Row: i % 2, FallPeriod: p, GlyphPeriod: 1 + i%3})
	}

	for frame := uint64(0); frame < 20; frame++ {
		expected := make([]render.Cell, cols*rows)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				expected[r*cols+c], _ = sim.Grid().At(r, c)
			}
		}

		if err := sim.Step(frame); err != nil {
			t.Fatalf("Step failed: %v", err)
		}

		// Replay the documented order over the pre-frame grid
		set := func(r, c int, cell render.Cell) {
			if r < 0 || r >= rows || c < 0 || c >= cols {
				return
			}
			expected[r*cols+c] = cell
		}
		sim.Ledger().EachOldestFirst(func(level int, s Snapshot) {
			if fg, ok := sim.Gradient().Color(level); ok {
				set(s.Row, s.Col, render.Cell{Glyph: s.Glyph, Fg: fg})
			} else {
				set(s.Row, s.Col, render.Cell{})
			}
		})
		for _, d := range sim.Pool().Drops() {
			head, _ := sim.Gradient().Color(0)
			set(d.Row, d.Col, render.Cell{Glyph: d.Glyph, Fg: head, Attrs: terminal.AttrBold})
		}

		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				got, _ := sim.Grid().At(r, c)
				if got != expected[r*cols+c] {
					t.Fatalf("Frame %d cell (%d,%d): got %+v, want %+v", frame, r, c, got, expected[r*cols+c])
				}
			}
		}
	}
}

func TestOcclusionPrunesForeignTrail(t *testing.T) {
	sim, _ := newQuietSim(t, 3, 10, 4)
	// A slow drop trails at column 0; a fast drop catches it from above
	slow := sim.Pool().Insert(Drop{Col: 0, Row: 3, Glyph: "s", FallPeriod: 100})
	sim.Pool().Insert(Drop{Col: 0, Row: 1, Glyph: "f", FallPeriod: 1})

	if err := sim.Step(1); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	// Fast drop moved to row 2, slow stayed at 3; the fast drop's row 1 snapshot is kept
	if err := sim.Step(2); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	// Fast drop now on row 3 together with slow; the later spawned drop owns the cell
	occludedSlow := true
	sim.Ledger().EachByLevel(func(_ int, s Snapshot) {
		if s.DropID == slow && s.Row == 3 {
			occludedSlow = false
		}
	})
	if !occludedSlow {
		t.Error("Expected slow drop snapshots under the fast drop to be pruned")
	}
	if sim.LastStats().Occluded == 0 {
		t.Error("Expected occlusion count in stats")
	}
}

func TestStepPropagatesFlushError(t *testing.T) {
	sentinel := errors.New("broken pipe")
	sim, err := NewSimulation(quietConfig(3), testPalette(t), testTheme(t), render.NewGrid(4, 4), &countingFlusher{err: sentinel})
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	if err := sim.Step(0); !errors.Is(err, sentinel) {
		t.Errorf("Expected flush error, got %v", err)
	}
}

func TestRegistryCounters(t *testing.T) {
	cfg := quietConfig(3)
	cfg.Density = 1
	cfg.SpawnRate = 2
	sim, err := NewSimulation(cfg, testPalette(t), testTheme(t), render.NewGrid(4, 3), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	reg := status.NewRegistry()
	sim.AttachRegistry(reg)

	for frame := uint64(0); frame < 3; frame++ {
		if err := sim.Step(frame); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if got := reg.Ints.Get("rain.frames").Load(); got != 3 {
		t.Errorf("Expected 3 frames, got %d", got)
	}
	if got := reg.Ints.Get("rain.live").Load(); got != int64(sim.Pool().Len()) {
		t.Errorf("Expected live %d, got %d", sim.Pool().Len(), got)
	}
	if got := reg.Ints.Get("rain.spawned").Load(); got < 2 {
		t.Errorf("Expected spawns recorded, got %d", got)
	}
}
