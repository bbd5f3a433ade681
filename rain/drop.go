package rain

// Drop is a single falling glyph
type Drop struct {
	ID          uint64
	Col         int
	Row         int
	Glyph       string
	FallPeriod  int // >= 1
	GlyphPeriod int // 0 disables mutation
}

// Snapshot is an immutable copy of where a drop was drawn
type Snapshot struct {
	DropID uint64
	Col    int
	Row    int
	Glyph  string
}

// Snapshot captures the drop's current position and glyph
func (d *Drop) Snapshot() Snapshot {
	return Snapshot{DropID: d.ID, Col: d.Col, Row: d.Row, Glyph: d.Glyph}
}

// fallsOn reports whether the drop moves on frame
func (d *Drop) fallsOn(frame uint64) bool {
	return d.FallPeriod > 0 && frame%uint64(d.FallPeriod) == 0
}

// mutatesOn reports whether the drop resamples its glyph on frame
func (d *Drop) mutatesOn(frame uint64) bool {
	return d.GlyphPeriod > 0 && frame%uint64(d.GlyphPeriod) == 0
}
