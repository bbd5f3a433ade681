package rain

// Ledger is the newest-first history of drop snapshots, one entry per frame
// The decay level of an entry is its 1-based index from the newest end
// Frames live in a fixed ring of depth+1 slots; head is the newest slot
type Ledger struct {
	slots [][]Snapshot
	head  int
	count int
}

// NewLedger creates an empty ledger sized for depth frames
func NewLedger(depth int) *Ledger {
	if depth < 0 {
		depth = 0
	}
	return &Ledger{slots: make([][]Snapshot, depth+1)}
}

// Len returns the number of recorded frames
func (l *Ledger) Len() int {
	return l.count
}

// slot maps a 1-based level to its ring index
func (l *Ledger) slot(level int) int {
	return (l.head + level - 1) % len(l.slots)
}

// Record pushes a frame to the front
// A full ring overwrites its oldest frame
func (l *Ledger) Record(frame []Snapshot) {
	l.head = (l.head - 1 + len(l.slots)) % len(l.slots)
	l.slots[l.head] = frame
	if l.count < len(l.slots) {
		l.count++
	}
}

// EvictIfFull drops the oldest frame once the ledger holds more than depth frames
func (l *Ledger) EvictIfFull(depth int) bool {
	if l.count <= depth {
		return false
	}
	l.slots[l.slot(l.count)] = nil
	l.count--
	return true
}

// Frame returns the snapshots at level (1-based), nil when out of range
func (l *Ledger) Frame(level int) []Snapshot {
	if level < 1 || level > l.count {
		return nil
	}
	return l.slots[l.slot(level)]
}

// EachByLevel yields snapshots from the least decayed level 1 up to Len()
func (l *Ledger) EachByLevel(fn func(level int, s Snapshot)) {
	for level := 1; level <= l.count; level++ {
		for _, s := range l.slots[l.slot(level)] {
			fn(level, s)
		}
	}
}

// EachOldestFirst yields snapshots from level Len() down to 1, so fresher writes land last
func (l *Ledger) EachOldestFirst(fn func(level int, s Snapshot)) {
	for level := l.count; level >= 1; level-- {
		for _, s := range l.slots[l.slot(level)] {
			fn(level, s)
		}
	}
}

// Occlude removes snapshots whose cell is currently held by a different live drop
// owner reports the live drop occupying a cell; frame count is unchanged
func (l *Ledger) Occlude(owner func(col, row int) (uint64, bool)) int {
	removed := 0
	for level := 1; level <= l.count; level++ {
		i := l.slot(level)
		kept := l.slots[i][:0]
		for _, s := range l.slots[i] {
			if id, ok := owner(s.Col, s.Row); ok && id != s.DropID {
				removed++
				continue
			}
			kept = append(kept, s)
		}
		l.slots[i] = kept
	}
	return removed
}
