package rain

import "testing"

func frameAt(row int) []Snapshot {
	return []Snapshot{{DropID: 1, Col: 0, Row: row, Glyph: "x"}}
}

func TestLedgerBoundedSingleEviction(t *testing.T) {
	const depth = 3
	l := NewLedger(depth)

	for i := 0; i < 10; i++ {
		l.Record(frameAt(i))
		before := l.Len()
		evicted := l.EvictIfFull(depth)

		if i < depth {
			if evicted {
				t.Errorf("Record %d: unexpected eviction", i)
			}
		} else {
			if !evicted || l.Len() != before-1 {
				t.Errorf("Record %d: expected exactly one eviction, len %d -> %d", i, before, l.Len())
			}
		}
		if l.Len() > depth {
			t.Fatalf("Ledger holds %d frames, depth %d", l.Len(), depth)
		}
		// The oldest retained frame is the one recorded depth-1 records ago
		if oldest := l.Frame(l.Len()); oldest[0].Row != i-l.Len()+1 {
			t.Errorf("Record %d: oldest row %d, want %d", i, oldest[0].Row, i-l.Len()+1)
		}
	}
}

func TestLedgerLevelIsPositional(t *testing.T) {
	const depth = 4
	l := NewLedger(depth)

	// The frame recorded at step k must report level (current - k + 1) until evicted
	for current := 0; current < 8; current++ {
		l.Record(frameAt(current))
		l.EvictIfFull(depth)

		l.EachByLevel(func(level int, s Snapshot) {
			if want := current - s.Row + 1; level != want {
				t.Errorf("Step %d: row %d reported level %d, want %d", current, s.Row, level, want)
			}
		})
	}
}

func TestLedgerIterationOrder(t *testing.T) {
	l := NewLedger(5)
	for i := 0; i < 3; i++ {
		l.Record(frameAt(i))
	}

	var byLevel, oldest []int
	l.EachByLevel(func(level int, _ Snapshot) { byLevel = append(byLevel, level) })
	l.EachOldestFirst(func(level int, _ Snapshot) { oldest = append(oldest, level) })

	wantByLevel := []int{1, 2, 3}
	wantOldest := []int{3, 2, 1}
	for i := range wantByLevel {
		if byLevel[i] != wantByLevel[i] {
			t.Errorf("EachByLevel order %v, want %v", byLevel, wantByLevel)
			break
		}
	}
	for i := range wantOldest {
		if oldest[i] != wantOldest[i] {
			t.Errorf("EachOldestFirst order %v, want %v", oldest, wantOldest)
			break
		}
	}
}

func TestLedgerEmptyFrames(t *testing.T) {
	l := NewLedger(2)
	l.Record(nil)
	l.Record([]Snapshot{})
	if l.Len() != 2 {
		t.Errorf("Expected empty frames to count toward depth, got %d", l.Len())
	}
	if l.Frame(0) != nil || l.Frame(3) != nil {
		t.Error("Expected nil for out of range levels")
	}
}

func TestLedgerOcclude(t *testing.T) {
	l := NewLedger(3)
	l.Record([]Snapshot{
		{DropID: 1, Col: 0, Row: 0},
		{DropID: 2, Col: 1, Row: 1},
	})
	l.Record([]Snapshot{
		{DropID: 2, Col: 1, Row: 1},
		{DropID: 3, Col: 2, Row: 2},
	})

	// Drop 1 now sits on (1,1); drop 2 on its own cell would be kept
	owner := func(col, row int) (uint64, bool) {
		if col == 1 && row == 1 {
			return 1, true
		}
		if col == 2 && row == 2 {
			return 3, true
		}
		return 0, false
	}

	if n := l.Occlude(owner); n != 2 {
		t.Errorf("Expected 2 snapshots occluded, got %d", n)
	}
	if l.Len() != 2 {
		t.Errorf("Expected frame count unchanged, got %d", l.Len())
	}
	if f := l.Frame(1); len(f) != 1 || f[0].DropID != 3 {
		t.Errorf("Unexpected level 1 after occlusion: %+v", f)
	}
	if f := l.Frame(2); len(f) != 1 || f[0].DropID != 1 {
		t.Errorf("Unexpected level 2 after occlusion: %+v", f)
	}
}

func TestLedgerRingWraps(t *testing.T) {
	const depth = 3
	l := NewLedger(depth)

	// Several full laps of the ring; levels must stay newest-first
	for i := 0; i < 4*(depth+1)+2; i++ {
		l.Record(frameAt(i))
		l.EvictIfFull(depth)

		for level := 1; level <= l.Len(); level++ {
			if got := l.Frame(level)[0].Row; got != i-level+1 {
				t.Fatalf("Record %d: level %d row %d, want %d", i, level, got, i-level+1)
			}
		}
	}
}

func TestLedgerRecordWithoutEviction(t *testing.T) {
	const depth = 2
	l := NewLedger(depth)

	for i := 0; i < 6; i++ {
		l.Record(frameAt(i))
	}
	if l.Len() != depth+1 {
		t.Fatalf("Expected %d frames, got %d", depth+1, l.Len())
	}
	if got := l.Frame(1)[0].Row; got != 5 {
		t.Errorf("Expected newest row 5, got %d", got)
	}
	if got := l.Frame(depth + 1)[0].Row; got != 3 {
		t.Errorf("Expected oldest row 3, got %d", got)
	}

	if !l.EvictIfFull(depth) || l.Len() != depth {
		t.Errorf("Expected one eviction down to %d, got %d", depth, l.Len())
	}
	if got := l.Frame(depth)[0].Row; got != 4 {
		t.Errorf("Expected oldest row 4 after eviction, got %d", got)
	}
}
